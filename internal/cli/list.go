package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all commands grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		groups := query.Groups(snap.Documents())
		if listCategory != "" {
			groups = filterGroups(groups, listCategory)
			if len(groups) == 0 {
				return handleErrorMsg(ErrInvalidInput,
					fmt.Sprintf("no category named %s", listCategory),
					"Run 'lcl categories' to see available categories")
			}
		}

		if isJSONOutput() {
			total := 0
			for _, g := range groups {
				total += len(g.Documents)
			}
			outputSuccess(groups, &Meta{Count: total})
			return nil
		}

		printGroups(groups)
		return nil
	},
}

func filterGroups(groups []query.Group, category string) []query.Group {
	want := model.Fold(strings.TrimSpace(category))
	var out []query.Group
	for _, g := range groups {
		if model.Fold(g.Category) == want {
			out = append(out, g)
		}
	}
	return out
}

func printGroups(groups []query.Group) {
	display := ui.NewDisplayContext(stdout())
	for i, g := range groups {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(ui.CategoryHeader(g.Category, len(g.Documents)))
		tbl := ui.NewResultsTable(display, ui.GroupLayout)
		for j, d := range g.Documents {
			tbl.AddRow(ui.ResultRow{Cells: []string{
				ui.FormatRowNum(j+1, len(g.Documents)),
				ui.CommandName(d),
				d.Description,
			}})
		}
		fmt.Println(tbl.Render())
	}
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list one category")
	rootCmd.AddCommand(listCmd)
}
