package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/check"
	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/editor"
	"github.com/linux-command-library/lcl/internal/pages"
	"github.com/linux-command-library/lcl/internal/ui"
)

var (
	newFileFlag     string
	newNameFlag     string
	newCategoryFlag string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Add a command to the library (admin only)",
	Long: `Add a new command file under its category directory.

Opens $EDITOR on a template, or reads --file. The result is validated before
it is written, and the library is reloaded afterwards.

Requires admin access: LCL_ADMIN=1, LCL_ADMIN_TOKEN matching the repository's
.lcl_admin_token file, or admin = true in config.toml.`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	dir := getCommandsDir()
	c := getConfig()
	if !config.IsAdmin(c, config.RepoRoot(dir), getenv) {
		return handleErrorMsg(ErrNotAdmin, "adding commands requires admin access",
			"Set LCL_ADMIN=1 or use 'lcl suggest' to propose a command")
	}

	var data []byte
	var err error
	if newFileFlag != "" {
		data, err = os.ReadFile(newFileFlag)
		if err != nil {
			return handleError(ErrFileNotFound, err, "")
		}
	} else {
		session := editor.Session{Editor: c.GetEditor(), Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
		template := editor.Template(newNameFlag, newCategoryFlag, c.Categories())
		data, err = session.EditTemplate(cmd.Context(), template)
		switch {
		case errors.Is(err, editor.ErrUnchanged):
			if !isJSONOutput() {
				fmt.Println(ui.Hint("Template unchanged; nothing added."))
			}
			return nil
		case errors.Is(err, editor.ErrNoEditor):
			return handleErrorMsg(ErrInvalidInput, "no editor configured",
				"Set $EDITOR, set editor in config.toml, or pass --file")
		case err != nil:
			return handleError(ErrInternal, err, "")
		}
	}

	record, issues, err := validateRecord(data)
	if err != nil {
		return handleError(ErrValidationFailed, err, "")
	}
	if check.HasErrors(issues) {
		return reportValidation("new command", issues)
	}

	result, err := pages.Create(pages.CreateOptions{Root: dir, Record: record})
	if err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	snap := catalog.New(catalogOptions()).Snapshot()
	logger.Debug("catalog reloaded after create", "records", snap.Len())

	if isJSONOutput() {
		outputSuccess(map[string]any{
			"file":          result.FilePath,
			"relative_path": result.RelativePath,
			"commands":      snap.Len(),
		}, nil)
		return nil
	}
	fmt.Println(ui.Checkf("Added %s", ui.FilePath(result.RelativePath)))
	fmt.Println(ui.Hint(fmt.Sprintf("%s in the library", ui.Pluralize(snap.Len(), "command", "commands"))))
	return nil
}

func init() {
	newCmd.Flags().StringVarP(&newFileFlag, "file", "f", "", "Read the command from a YAML file instead of opening the editor")
	newCmd.Flags().StringVar(&newNameFlag, "name", "", "Prefill the template name")
	newCmd.Flags().StringVar(&newCategoryFlag, "category", "", "Prefill the template category")
	rootCmd.AddCommand(newCmd)
}
