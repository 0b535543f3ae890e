package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their command counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		cats := snap.Categories()

		if isJSONOutput() {
			outputSuccess(cats, &Meta{Count: len(cats)})
			return nil
		}

		tbl := ui.NewTable(2)
		for _, c := range cats {
			tbl.AddRow(ui.AccentBold.Render(c.Name), strconv.Itoa(c.Count))
		}
		fmt.Print(tbl.String())
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("%s in %s", ui.Pluralize(snap.Len(), "command", "commands"), ui.Pluralize(len(cats), "category", "categories"))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
