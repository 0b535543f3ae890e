package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/linux-command-library/lcl/docs"
	"github.com/linux-command-library/lcl/internal/ui"
)

var docsSearchLimit int

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guides",
	Long: `Read long-form guides bundled into the lcl binary.

Examples:
  lcl docs
  lcl docs records
  lcl docs search strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := builtindocs.Topics(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild lcl so bundled docs are available")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			tbl := ui.NewTable(2)
			for _, t := range topics {
				tbl.AddRow(ui.AccentBold.Render(t.ID), t.Title)
			}
			fmt.Print(tbl.String())
			fmt.Println()
			fmt.Println(ui.Hint("Run 'lcl docs <topic>' to read one."))
			return nil
		}

		topic, err := builtindocs.Find(topics, args[0])
		if errors.Is(err, builtindocs.ErrTopicNotFound) {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown docs topic: %s", args[0]), "Run 'lcl docs' to list topics")
		}
		data, err := builtindocs.FS.ReadFile(topic.Path)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"id": topic.ID, "title": topic.Title, "content": string(data)}, nil)
			return nil
		}

		display := ui.NewDisplayContext(stdout())
		if !display.IsTTY {
			fmt.Print(string(data))
			return nil
		}
		rendered, err := ui.RenderMarkdown(string(data), display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			logger.Debug("markdown render failed", "err", err)
			rendered = string(data)
		}
		fmt.Print(rendered)
		return nil
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled guides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}
		topics, err := builtindocs.Topics(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		q := strings.Join(args, " ")
		matches, err := builtindocs.Search(builtindocs.FS, topics, q, docsSearchLimit)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		if isJSONOutput() {
			outputSuccess(matches, &Meta{Count: len(matches)})
			return nil
		}
		if len(matches) == 0 {
			fmt.Printf("No docs matched %q.\n", q)
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%s %s\n", ui.Accent.Render(fmt.Sprintf("%s:%d", m.Topic, m.Line)), m.Snippet)
		}
		return nil
	},
}

func init() {
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", 20, "Maximum number of matching lines")
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
