package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/atomicfile"
	"github.com/linux-command-library/lcl/internal/export"
	"github.com/linux-command-library/lcl/internal/ui"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a command reference as Markdown",
	Long: `Export a command as a Markdown document.

Without --output the Markdown is printed. With --output naming a directory,
the file is written as <name>.md inside it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		doc, err := findCommand(snap, strings.Join(args, " "))
		if err != nil {
			return err
		}

		content := export.Markdown(doc, export.Options{})
		if exportOutput == "" {
			if isJSONOutput() {
				outputSuccess(map[string]any{"name": doc.Name, "markdown": content}, nil)
				return nil
			}
			fmt.Print(content)
			return nil
		}

		path := exportOutput
		if isDir(path) {
			path = filepath.Join(path, export.Filename(doc))
		}
		if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("failed to write %s: %w", path, err), "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"name": doc.Name, "file": path}, nil)
			return nil
		}
		fmt.Println(ui.Checkf("Exported %s to %s", doc.Name, ui.FilePath(path)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file or directory")
	rootCmd.AddCommand(exportCmd)
}
