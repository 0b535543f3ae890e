package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/export"
	"github.com/linux-command-library/lcl/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the full reference for one command",
	Long: `Show a command's description, usage, options, examples and notes.

On a terminal the page is rendered; use --raw to print the Markdown source.`,
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

		if isJSONOutput() {
			outputSuccess(doc, nil)
			return nil
		}

		page := export.Markdown(doc, export.Options{SourceLink: true})
		display := ui.NewDisplayContext(stdout())
		if showRaw || !display.IsTTY {
			fmt.Print(page)
			return nil
		}

		rendered, err := ui.RenderMarkdown(page, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			logger.Debug("markdown render failed", "err", err)
			fmt.Print(page)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print Markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
