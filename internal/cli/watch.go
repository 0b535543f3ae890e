package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/ui"
	"github.com/linux-command-library/lcl/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the library and reload it when files change",
	Long: `Watch the commands directory and rebuild the library whenever a .yml or
.yaml file is added, changed or removed.

The watcher:
- Debounces rapid changes (waits for the tree to be quiet)
- Ignores hidden files and directories such as .git/ and .inbox/
- Rebuilds the whole library and prints a one-line summary

Examples:
  lcl watch
  lcl watch --debug`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	printReload(cat.Snapshot())

	w, err := watcher.New(watcher.Config{
		Root:          getCommandsDir(),
		Reloader:      cat,
		DebounceDelay: watchDebounce,
		Logger:        logger,
		OnReload:      printReload,
	})
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !isJSONOutput() {
		fmt.Println(ui.Hint(fmt.Sprintf("Watching %s (Ctrl-C to stop)", getCommandsDir())))
	}
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleError(ErrInternal, err, "")
	}
	return nil
}

// printReload prints one summary line per reload (one JSON object in --json mode).
func printReload(snap *catalog.Snapshot) {
	diag := snap.Diagnostics()
	if isJSONOutput() {
		outputSuccessWithWarnings(map[string]any{
			"generation":  snap.Generation(),
			"built_at":    snap.BuiltAt(),
			"diagnostics": diag,
		}, catalogWarnings(diag), &Meta{Count: snap.Len()})
		return
	}

	stamp := snap.BuiltAt().Format("15:04:05")
	if snap.Empty() {
		fmt.Printf("%s %s\n", ui.Hint(stamp), ui.Warning("library is empty"))
		return
	}
	msg := fmt.Sprintf("%s loaded", ui.Pluralize(snap.Len(), "command", "commands"))
	if diag.FilesSkipped > 0 || diag.RecordsSkipped > 0 {
		msg += fmt.Sprintf(", %s and %s skipped",
			ui.Pluralize(diag.FilesSkipped, "file", "files"),
			ui.Pluralize(diag.RecordsSkipped, "record", "records"))
	}
	fmt.Printf("%s %s\n", ui.Hint(stamp), ui.Check(msg))
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Quiet period before reloading")
	rootCmd.AddCommand(watchCmd)
}
