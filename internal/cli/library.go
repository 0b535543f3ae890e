package cli

import (
	"fmt"
	"os"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/parser"
	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
)

// catalogOptions builds catalog options from the resolved directory and config.
func catalogOptions() catalog.Options {
	c := getConfig()
	return catalog.Options{
		Root:    getCommandsDir(),
		Strict:  strictFlag || c.StrictCategories,
		Allowed: c.Categories(),
		Logger:  logger,
	}
}

// openCatalog loads the commands tree, showing a spinner on a terminal.
func openCatalog() *catalog.Catalog {
	var spin *ui.Spinner
	if !isJSONOutput() {
		spin = ui.NewSpinner(os.Stderr, "Loading commands")
		spin.Start()
	}
	c := catalog.New(catalogOptions())
	if spin != nil {
		spin.Stop()
	}
	return c
}

// loadSnapshot opens the catalog and reports an empty catalog as an error,
// distinct from a query that simply matches nothing.
func loadSnapshot() (*catalog.Catalog, *catalog.Snapshot, error) {
	c := openCatalog()
	snap := c.Snapshot()
	if snap.Empty() {
		return c, snap, emptyCatalogError(snap.Diagnostics())
	}
	return c, snap, nil
}

func emptyCatalogError(diag catalog.Diagnostics) error {
	msg := fmt.Sprintf("no commands loaded from %s", diag.Root)
	if diag.RootError != "" {
		msg += ": " + diag.RootError
	}
	return handleErrorWithDetails(ErrCatalogEmpty, msg, "Run 'lcl check' for details", diag)
}

func newEngine() *query.Engine {
	c := getConfig()
	return query.NewEngine(c.ResultCap, c.Aliases)
}

// findCommand resolves a command by exact (case-folded) name.
func findCommand(snap *catalog.Snapshot, name string) (model.Document, error) {
	doc, err := snap.Find(name)
	if err != nil {
		return model.Document{}, handleErrorMsg(ErrCommandNotFound,
			fmt.Sprintf("command not found: %s", name),
			fmt.Sprintf("Try 'lcl search %s'", name))
	}
	return doc, nil
}

// catalogWarnings lists skipped files and missing category directories.
func catalogWarnings(diag catalog.Diagnostics) []Warning {
	var out []Warning
	for _, is := range diag.Issues {
		if is.Kind == parser.IssueFileParse {
			out = append(out, Warning{Code: WarnFileSkipped, Message: is.Message, Path: is.Path})
		}
	}
	for _, d := range diag.MissingDirs {
		out = append(out, Warning{Code: WarnMissingDir, Message: "category directory not found", Path: d})
	}
	return out
}
