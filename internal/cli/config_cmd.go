package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lcl config.toml settings",
	Long: `Show, initialize and edit lcl's config.toml.

Without a subcommand, shows the effective settings.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func configData() map[string]any {
	c := getConfig()
	_, statErr := os.Stat(resolvedConfigPath)
	return map[string]any{
		"config_path":       resolvedConfigPath,
		"exists":            statErr == nil,
		"commands_dir":      c.CommandsDir,
		"strict_categories": c.StrictCategories,
		"categories":        c.Categories(),
		"result_cap":        c.ResultCap,
		"admin":             c.Admin,
		"editor":            c.GetEditor(),
		"aliases":           c.Aliases,
		"ui": map[string]string{
			"accent":     c.UI.Accent,
			"code_theme": c.UI.CodeTheme,
		},
		"pins_path": config.ResolvePinsPath(configPath),
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data := configData()
	if isJSONOutput() {
		outputSuccess(data, nil)
		return nil
	}

	c := getConfig()
	fmt.Println(ui.Header("Config: ") + ui.FilePath(resolvedConfigPath))
	if exists, _ := data["exists"].(bool); !exists {
		fmt.Println(ui.Hint("(not created yet; run 'lcl config init')"))
	}
	fmt.Println()

	show := func(v string) string {
		if v == "" {
			return ui.Hint("(unset)")
		}
		return v
	}
	tbl := ui.NewTable(2)
	tbl.AddRow("commands_dir", show(c.CommandsDir))
	tbl.AddRow("strict_categories", fmt.Sprint(c.StrictCategories))
	tbl.AddRow("result_cap", fmt.Sprint(c.ResultCap))
	tbl.AddRow("admin", fmt.Sprint(c.Admin))
	tbl.AddRow("editor", show(c.GetEditor()))
	tbl.AddRow("ui.accent", show(c.UI.Accent))
	tbl.AddRow("ui.code_theme", show(c.UI.CodeTheme))
	tbl.AddRow("categories", strings.Join(c.Categories(), ", "))
	fmt.Print(tbl.String())
	return nil
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"config_path": resolvedConfigPath,
				"created":     created,
			}, nil)
			return nil
		}

		if created {
			fmt.Println(ui.Checkf("Created config: %s", ui.FilePath(resolvedConfigPath)))
		} else {
			fmt.Printf("Config already exists: %s\n", ui.FilePath(resolvedConfigPath))
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]any{"config_path": resolvedConfigPath}, nil)
			return nil
		}
		fmt.Println(resolvedConfigPath)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one config.toml value",
	Long: `Set one scalar value in config.toml, creating the file if needed.

Keys: ` + strings.Join(config.SettableKeys, ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		if err := c.Set(args[0], args[1]); err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		if err := config.SaveTo(resolvedConfigPath, c); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{
				"config_path": resolvedConfigPath,
				"key":         args[0],
				"value":       strings.TrimSpace(args[1]),
			}, nil)
			return nil
		}
		fmt.Println(ui.Checkf("Set %s in %s", args[0], ui.FilePath(resolvedConfigPath)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	// Values such as -1 must reach Set instead of the flag parser.
	configSetCmd.Flags().SetInterspersed(false)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
