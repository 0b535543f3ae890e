package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search commands by name, category or option text",
	Long: `Search the command library.

If the query exactly names a command (ignoring case), only that command is
shown. Otherwise every word of the query is matched as a substring against
command names, categories and option text, keeping library order.

Examples:
  lcl search grep
  lcl search network
  lcl search "ignore case"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	_, snap, err := loadSnapshot()
	if err != nil {
		return err
	}

	engine := newEngine()
	if searchLimit > 0 {
		engine = query.NewEngine(searchLimit, getConfig().Aliases)
	}

	start := time.Now()
	res := engine.Search(snap, strings.Join(args, " "))
	elapsed := time.Since(start)

	if isJSONOutput() {
		var warnings []Warning
		if res.Truncated {
			warnings = append(warnings, Warning{
				Code:    WarnResultsTrimmed,
				Message: fmt.Sprintf("showing %d of %d matches", len(res.Documents), res.Total),
			})
		}
		outputSuccessWithWarnings(res, warnings, &Meta{
			Count:       len(res.Documents),
			Total:       res.Total,
			QueryTimeMs: elapsed.Milliseconds(),
		})
		return nil
	}

	if res.Tier == query.TierNone {
		fmt.Printf("No commands match: %s\n", res.Query)
		return nil
	}

	printResults(res.Documents)
	if res.Truncated {
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("Showing %d of %d matches. Refine the query to narrow it down.", len(res.Documents), res.Total)))
	}
	return nil
}

// printResults renders documents as a numbered table.
func printResults(docs []model.Document) {
	tbl := ui.NewResultsTable(ui.NewDisplayContext(stdout()), ui.SearchLayout)
	for i, d := range docs {
		tbl.AddRow(ui.ResultRow{Cells: []string{
			ui.FormatRowNum(i+1, len(docs)),
			ui.CommandName(d),
			d.Category,
			d.Description,
		}})
	}
	fmt.Println(tbl.Render())
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum number of partial matches (default from config, else 50)")
	rootCmd.AddCommand(searchCmd)
}
