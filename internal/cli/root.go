// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/ui"
)

var (
	// Global flags
	commandsDirFlag string
	configPath      string
	strictFlag      bool
	debugFlag       bool

	// Resolved values
	resolvedConfigPath string
	resolvedDir        config.CommandsDir
	cfg                *config.Config
	logger             = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// getenv is swapped in tests.
var getenv = os.Getenv

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lcl",
	Short: "Linux Command Library - search and browse curated command references",
	Long: `lcl searches a curated library of Linux command references stored as
YAML files, one directory per category.

A query that exactly names a command shows just that command. Anything else
is matched against command names, categories and option text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(debugFlag)
		slog.SetDefault(logger)

		var err error
		resolvedConfigPath = config.ResolveConfigPath(configPath)
		cfg, err = config.LoadOrDefault(resolvedConfigPath)
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Run 'lcl config path' to locate the file")
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureCodeTheme(cfg.UI.CodeTheme)

		if !needsCommandsDir(cmd) {
			return nil
		}

		cwd, _ := os.Getwd()
		resolvedDir, err = config.ResolveCommandsDir(commandsDirFlag, cfg, getenv, cwd)
		if errors.Is(err, config.ErrNoCommandsDir) {
			return handleErrorMsg(ErrCommandsDirNotFound,
				"no commands directory found",
				"Use --dir, set LCL_COMMANDS_PATH, or set commands_dir in config.toml")
		}
		if err != nil {
			return err
		}
		logger.Debug("commands directory resolved", "path", resolvedDir.Path, "source", resolvedDir.Source)
		return nil
	},
}

// needsCommandsDir reports whether cmd works on the commands tree.
func needsCommandsDir(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "config", "completion", "help", "validate", "pins", "unpin", "docs":
			return false
		}
	}
	return true
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&commandsDirFlag, "dir", "d", "", "Commands directory (overrides config and environment)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "Only load categories from the allow-list")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return handleError(ErrInvalidInput, err, fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// getCommandsDir returns the resolved commands directory.
func getCommandsDir() string {
	return resolvedDir.Path
}
