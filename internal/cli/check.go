package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/parser"
	"github.com/linux-command-library/lcl/internal/ui"
)

var checkVerbose bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the library and report skipped files, records and fields",
	Long: `Build the catalog once and print what was loaded and what was skipped.

The command fails when no commands could be loaded at all.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := openCatalog().Snapshot()
		diag := snap.Diagnostics()

		if isJSONOutput() {
			if snap.Empty() {
				return emptyCatalogError(diag)
			}
			outputSuccessWithWarnings(map[string]any{
				"diagnostics": diag,
				"categories":  snap.Categories(),
			}, catalogWarnings(diag), &Meta{Count: snap.Len()})
			return nil
		}

		printDiagnostics(snap, checkVerbose)
		if snap.Empty() {
			return emptyCatalogError(diag)
		}
		return nil
	},
}

func printDiagnostics(snap *catalog.Snapshot, verbose bool) {
	diag := snap.Diagnostics()

	fmt.Println(ui.Header("Library: ") + ui.FilePath(diag.Root))
	if diag.Strict {
		fmt.Println(ui.Hint("strict categories enabled"))
	}
	fmt.Println()

	tbl := ui.NewTable(2)
	tbl.AddRow("Directories scanned", strconv.Itoa(diag.DirsScanned))
	tbl.AddRow("Files parsed", strconv.Itoa(diag.FilesParsed))
	tbl.AddRow("Files skipped", strconv.Itoa(diag.FilesSkipped))
	tbl.AddRow("Commands loaded", strconv.Itoa(diag.RecordsLoaded))
	tbl.AddRow("Records skipped", strconv.Itoa(diag.RecordsSkipped))
	tbl.AddRow("Fields coerced", strconv.Itoa(diag.FieldIssues()))
	tbl.AddRow("Load time", diag.Duration.Round(100*time.Microsecond).String())
	fmt.Print(tbl.String())

	if cats := snap.Categories(); len(cats) > 0 {
		fmt.Println()
		fmt.Println(ui.Header("Per category"))
		ct := ui.NewTable(2)
		for _, c := range cats {
			ct.AddRow(c.Name, strconv.Itoa(c.Count))
		}
		fmt.Print(ct.String())
	}

	for _, d := range diag.MissingDirs {
		fmt.Println(ui.Warningf("category directory not found: %s", d))
	}
	if diag.RootError != "" {
		fmt.Println(ui.Error(diag.RootError))
	}

	var shown int
	for _, is := range diag.Issues {
		if !verbose && !is.Skipped() {
			continue
		}
		if shown == 0 {
			fmt.Println()
			fmt.Println(ui.Header("Issues"))
		}
		shown++
		switch is.Kind {
		case parser.IssueFileParse, parser.IssueRecordShape:
			fmt.Println("  " + ui.Warning(is.String()))
		default:
			fmt.Println("  " + ui.Info(is.String()))
		}
	}
	if hidden := diag.FieldIssues(); !verbose && hidden > 0 {
		fmt.Println()
		fmt.Println(ui.Hint(fmt.Sprintf("%s hidden; use --verbose to list them.", ui.Pluralize(hidden, "field issue", "field issues"))))
	}

	if !snap.Empty() {
		fmt.Println()
		fmt.Println(ui.Checkf("%s loaded", ui.Pluralize(snap.Len(), "command", "commands")))
	}
}

func init() {
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Also list coerced fields")
	rootCmd.AddCommand(checkCmd)
}
