package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
)

var explainCmd = &cobra.Command{
	Use:   "explain <command line>",
	Short: "Explain the flags used in a command line",
	Long: `Split a command line the way a shell would, look up the command by its
first word and describe each flag that appears in its reference.

Anything after the first word is taken as written, flags included. Quote the
line when it holds shell syntax such as pipes or globs:
  lcl explain "tar -xzvf backup.tgz"
  lcl explain 'grep -rin --color=auto TODO .'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		line := strings.Join(args, " ")
		ex, err := query.Explain(snap, line)
		if errors.Is(err, query.ErrEmptyCommandLine) {
			return handleErrorMsg(ErrInvalidInput, "empty command line", "")
		}
		if err != nil {
			return handleError(ErrInvalidInput, err, "Check the quoting of the command line")
		}

		if ex.Command == nil {
			return handleErrorWithDetails(ErrCommandNotFound,
				fmt.Sprintf("command not found: %s", ex.Tokens[0]),
				fmt.Sprintf("Try 'lcl search %s'", ex.Tokens[0]),
				map[string]any{"tokens": ex.Tokens})
		}

		if isJSONOutput() {
			outputSuccess(ex, &Meta{Count: len(ex.Flags)})
			return nil
		}

		fmt.Printf("%s  %s\n", ui.CommandName(*ex.Command), ui.Hint(ex.Command.Category))
		if ex.Command.Description != "" {
			fmt.Println(ui.OneLine(ex.Command.Description))
		}
		fmt.Println()
		fmt.Println(ui.Header("Tokens"))
		fmt.Printf("  %s\n\n", strings.Join(ex.Tokens, " · "))

		if len(ex.Flags) == 0 {
			fmt.Println(ui.Hint("No documented flags found in this command line."))
		} else {
			fmt.Println(ui.Header("Flags found"))
			tbl := ui.NewTable(2)
			for _, m := range ex.Flags {
				tbl.AddRow(ui.Accent.Render(m.Flag), ui.OneLine(m.Option.Explanation))
			}
			fmt.Print(tbl.String())
		}
		if len(ex.Unknown) > 0 {
			fmt.Println()
			fmt.Println(ui.Warningf("Not in the reference: %s", strings.Join(ex.Unknown, " ")))
		}
		return nil
	},
}

func init() {
	// Flags after the command word belong to the explained command line.
	explainCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(explainCmd)
}
