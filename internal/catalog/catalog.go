// Package catalog builds and owns the in-memory command catalog.
//
// A Catalog holds exactly one live Snapshot. Readers take the current
// snapshot without locking and keep using it for the length of their
// operation; Reload builds a new snapshot off to the side and swaps it in.
package catalog

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linux-command-library/lcl/internal/library"
	"github.com/linux-command-library/lcl/internal/parser"
)

// Options configures a build.
type Options struct {
	// Root is the commands directory.
	Root string

	// Strict limits categories to Allowed and files unknown ones as
	// uncategorized.
	Strict  bool
	Allowed []string

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Build walks the commands tree once and returns a new snapshot. It never
// fails: unreadable directories, unparsable files and malformed records are
// recorded in the snapshot's Diagnostics and left out.
func Build(opts Options) *Snapshot {
	start := time.Now()
	log := opts.logger()
	allowed := parser.NewCategorySet(opts.Allowed)

	snap := &Snapshot{builtAt: start}
	diag := &snap.diag
	diag.Root = opts.Root
	diag.Strict = opts.Strict

	record := func(issues []parser.Issue) {
		for _, is := range issues {
			if is.Kind == parser.IssueRecordShape {
				diag.RecordsSkipped++
			}
			logIssue(log, is)
		}
		diag.Issues = append(diag.Issues, issues...)
	}

	skipFile := func(path string, err error) {
		diag.FilesSkipped++
		record([]parser.Issue{{Kind: parser.IssueFileParse, Path: path, Record: -1, Message: err.Error()}})
	}

	stats, err := library.Walk(opts.Root, library.WalkOptions{Strict: opts.Strict, Allowed: allowed}, func(r library.WalkResult) error {
		if r.Error != nil {
			skipFile(r.Path, r.Error)
			return nil
		}

		roots, err := parser.DecodeFile(r.Content)
		if err != nil {
			skipFile(r.Path, err)
			return nil
		}
		diag.FilesParsed++

		base := 0
		for _, root := range roots {
			docs, issues := parser.Normalize(root, parser.Source{
				Path:        r.Path,
				CategoryDir: r.CategoryDir,
				Strict:      opts.Strict,
				Allowed:     allowed,
				RecordBase:  base,
			})
			base += parser.RecordCount(root)
			record(issues)
			snap.docs = append(snap.docs, docs...)
		}
		return nil
	})
	if err != nil {
		diag.RootError = err.Error()
		log.Warn("failed to walk commands directory", "root", opts.Root, "error", err)
	}

	diag.DirsScanned = stats.DirsScanned
	diag.MissingDirs = stats.MissingDirs
	for _, name := range stats.MissingDirs {
		log.Warn("allowed category has no directory", "category", name)
	}
	for _, d := range stats.DirErrors {
		record([]parser.Issue{{Kind: parser.IssueFileParse, Path: d.Path, Record: -1, Message: d.Error.Error()}})
	}

	diag.RecordsLoaded = len(snap.docs)
	diag.Duration = time.Since(start)

	log.Info("catalog built",
		"root", opts.Root,
		"documents", diag.RecordsLoaded,
		"files", diag.FilesParsed,
		"files_skipped", diag.FilesSkipped,
		"records_skipped", diag.RecordsSkipped,
		"duration", diag.Duration,
	)
	if len(snap.docs) == 0 {
		log.Warn("catalog is empty", "root", opts.Root)
	}
	return snap
}

func logIssue(log *slog.Logger, is parser.Issue) {
	attrs := []any{"path", is.Path, "kind", is.Kind.String(), "reason", is.Message}
	if is.Record >= 0 {
		attrs = append(attrs, "record", is.Record)
	}
	if is.Field != "" {
		attrs = append(attrs, "field", is.Field)
	}
	switch is.Kind {
	case parser.IssueFileParse:
		log.Warn("skipped file", attrs...)
	case parser.IssueRecordShape:
		log.Warn("skipped record", attrs...)
	default:
		log.Info("coerced field", attrs...)
	}
}

// Catalog owns the live snapshot.
type Catalog struct {
	mu      sync.Mutex // serializes Reload
	opts    Options
	current atomic.Pointer[Snapshot]
	gen     uint64
}

// New builds the first snapshot and returns a Catalog serving it.
func New(opts Options) *Catalog {
	c := &Catalog{opts: opts}
	c.Reload()
	return c
}

// Snapshot returns the live snapshot. It never returns nil once New has
// returned.
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Options returns the options the catalog builds with.
func (c *Catalog) Options() Options {
	return c.opts
}

// Reload rebuilds the catalog and swaps in the new snapshot. Snapshots
// already held by readers are unaffected.
func (c *Catalog) Reload() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Build(c.opts)
	c.gen++
	snap.generation = c.gen
	c.current.Store(snap)
	return snap
}
