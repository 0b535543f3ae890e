package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/suggest"
	"github.com/linux-command-library/lcl/internal/ui"
)

var suggestion suggest.Suggestion

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Propose a new command for the library",
	Long: `Write a suggestion into the repository inbox (.inbox/suggestions) for an
admin to review. No admin access is needed.

Example:
  lcl suggest --name ncdu --category Disk_Storage_Mgmt \
    --description "interactive disk usage viewer" --usage "ncdu [DIR]"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(suggestion.Name) == "" || strings.TrimSpace(suggestion.Description) == "" {
			return handleErrorMsg(ErrInvalidInput, "--name and --description are required", "")
		}

		repo := config.RepoRoot(getCommandsDir())
		path, err := suggest.Save(repo, suggestion, suggest.CurrentMeta())
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		rel, err := filepath.Rel(repo, path)
		if err != nil {
			rel = path
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{"file": path, "relative_path": rel}, nil)
			return nil
		}
		fmt.Println(ui.Checkf("Suggestion saved to %s", ui.FilePath(rel)))
		return nil
	},
}

func init() {
	f := suggestCmd.Flags()
	f.StringVar(&suggestion.Name, "name", "", "Command name (required)")
	f.StringVar(&suggestion.Description, "description", "", "What the command does (required)")
	f.StringVar(&suggestion.Category, "category", "", "Suggested category")
	f.StringVar(&suggestion.Usage, "usage", "", "Usage line")
	f.StringVar(&suggestion.Notes, "notes", "", "Anything the reviewer should know")
	rootCmd.AddCommand(suggestCmd)
}
