package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/config"
	"github.com/linux-command-library/lcl/internal/export"
	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/pins"
	"github.com/linux-command-library/lcl/internal/query"
	"github.com/linux-command-library/lcl/internal/ui"
	"github.com/linux-command-library/lcl/internal/watcher"
)

var browseWatch bool

const browseHelp = `Commands:
  :show N|name     show a result or a command by name
  :pin N|name      pin a result or a command
  :explain LINE    explain the flags in a command line
  :categories      list categories
  :reload          reload the library from disk
  :help            show this help
  :quit            leave (also Ctrl-C or Ctrl-D)`

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search the library interactively",
	Long: `Start an interactive prompt. Type a query to search; an empty line lists
the whole library by category.

` + browseHelp,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

// browser is the state behind the interactive prompt.
type browser struct {
	cat     *catalog.Catalog
	engine  *query.Engine
	out     io.Writer
	pins    string
	results []model.Document
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cat, _, err := loadSnapshot()
	if err != nil {
		return err
	}
	b := &browser{
		cat:    cat,
		engine: newEngine(),
		out:    os.Stdout,
		pins:   config.ResolvePinsPath(configPath),
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if browseWatch {
		w, err := watcher.New(watcher.Config{
			Root:     getCommandsDir(),
			Reloader: cat,
			Logger:   logger,
			OnReload: func(s *catalog.Snapshot) {
				fmt.Fprintf(b.out, "\n%s\n", ui.Hint(fmt.Sprintf("library reloaded: %s", ui.Pluralize(s.Len(), "command", "commands"))))
			},
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("watcher stopped", "err", err)
			}
		}()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(b.complete)

	fmt.Fprintf(b.out, "%s %s\n", ui.AccentBold.Render("lcl"), ui.Hint(fmt.Sprintf("%s loaded. Type :help for commands.", ui.Pluralize(cat.Snapshot().Len(), "command", "commands"))))
	for {
		input, err := line.Prompt("lcl> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(b.out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if quit := b.handle(input); quit {
			return nil
		}
	}
}

// handle runs one line of input and reports whether the prompt should exit.
func (b *browser) handle(input string) bool {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, ":") {
		b.search(input)
		return false
	}

	verb, arg, _ := strings.Cut(strings.TrimPrefix(input, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(verb) {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		fmt.Fprintln(b.out, browseHelp)
	case "s", "show":
		if doc, ok := b.pick(arg); ok {
			b.show(doc)
		}
	case "p", "pin":
		if doc, ok := b.pick(arg); ok {
			b.pin(doc)
		}
	case "e", "explain":
		b.explain(arg)
	case "c", "categories":
		for _, c := range b.cat.Snapshot().Categories() {
			fmt.Fprintf(b.out, "  %s %s\n", ui.AccentBold.Render(c.Name), ui.Hint(strconv.Itoa(c.Count)))
		}
	case "r", "reload":
		snap := b.cat.Reload()
		fmt.Fprintln(b.out, ui.Checkf("Reloaded %s", ui.Pluralize(snap.Len(), "command", "commands")))
	default:
		fmt.Fprintln(b.out, ui.Warningf("unknown command :%s (type :help)", verb))
	}
	return false
}

func (b *browser) search(q string) {
	res := b.engine.Search(b.cat.Snapshot(), q)
	b.results = res.Documents

	switch res.Tier {
	case query.TierNone:
		fmt.Fprintf(b.out, "No commands match: %s\n", res.Query)
		return
	case query.TierBrowse:
		if len(res.Documents) == 0 {
			fmt.Fprintln(b.out, ui.Warning("the library is empty"))
			return
		}
	}

	for i, d := range res.Documents {
		fmt.Fprintf(b.out, "%s  %s  %s  %s\n",
			ui.Hint(ui.FormatRowNum(i+1, len(res.Documents))),
			ui.CommandName(d),
			ui.Hint(d.Category),
			ui.TruncateWithEllipsis(ui.OneLine(d.Description), 70))
	}
	if res.Truncated {
		fmt.Fprintln(b.out, ui.Hint(fmt.Sprintf("Showing %d of %d matches.", len(res.Documents), res.Total)))
	}
}

// pick resolves a result number from the last search, or a command name.
func (b *browser) pick(arg string) (model.Document, bool) {
	if arg == "" {
		fmt.Fprintln(b.out, ui.Warning("give a result number or a command name"))
		return model.Document{}, false
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(b.results) {
			fmt.Fprintln(b.out, ui.Warningf("no result %d", n))
			return model.Document{}, false
		}
		return b.results[n-1], true
	}
	doc, err := b.cat.Snapshot().Find(arg)
	if err != nil {
		fmt.Fprintln(b.out, ui.Warningf("command not found: %s", arg))
		return model.Document{}, false
	}
	return doc, true
}

func (b *browser) show(doc model.Document) {
	page := export.Markdown(doc, export.Options{SourceLink: true})
	display := ui.NewDisplayContext(b.out)
	if display.IsTTY {
		if rendered, err := ui.RenderMarkdown(page, display.AvailableWidth(ui.MarkdownRenderMargin)); err == nil {
			page = rendered
		}
	}
	fmt.Fprint(b.out, page)
}

func (b *browser) pin(doc model.Document) {
	store, err := pins.Open(b.pins)
	if err != nil {
		fmt.Fprintln(b.out, ui.Error(err.Error()))
		return
	}
	if !store.Add(doc.Name) {
		fmt.Fprintln(b.out, ui.Hint(doc.Name+" is already pinned"))
		return
	}
	if err := store.Save(); err != nil {
		fmt.Fprintln(b.out, ui.Error(err.Error()))
		return
	}
	fmt.Fprintln(b.out, ui.Checkf("Pinned %s", doc.Name))
}

func (b *browser) explain(line string) {
	ex, err := query.Explain(b.cat.Snapshot(), line)
	if err != nil {
		fmt.Fprintln(b.out, ui.Warning(err.Error()))
		return
	}
	if ex.Command == nil {
		fmt.Fprintln(b.out, ui.Warningf("command not found: %s", ex.Tokens[0]))
		return
	}
	if len(ex.Flags) == 0 {
		fmt.Fprintln(b.out, ui.Hint("No documented flags found."))
	}
	for _, m := range ex.Flags {
		fmt.Fprintf(b.out, "  %s  %s\n", ui.Accent.Render(m.Flag), ui.OneLine(m.Option.Explanation))
	}
	for _, u := range ex.Unknown {
		fmt.Fprintln(b.out, "  "+ui.Warningf("%s is not in the reference", u))
	}
}

var browseVerbs = []string{":show ", ":pin ", ":explain ", ":categories", ":reload", ":help", ":quit"}

// complete offers prompt commands and command names.
func (b *browser) complete(line string) []string {
	var out []string
	if strings.HasPrefix(line, ":") {
		for _, v := range browseVerbs {
			if strings.HasPrefix(v, line) {
				out = append(out, v)
			}
		}
		return out
	}
	prefix := model.Fold(line)
	if prefix == "" {
		return nil
	}
	seen := make(map[string]bool)
	for _, d := range b.cat.Snapshot().Documents() {
		if strings.HasPrefix(model.Fold(d.Name), prefix) && !seen[d.Name] {
			seen[d.Name] = true
			out = append(out, d.Name)
		}
	}
	return out
}

func init() {
	browseCmd.Flags().BoolVarP(&browseWatch, "watch", "w", false, "Reload the library when files change")
	rootCmd.AddCommand(browseCmd)
}
