// Package watcher reloads a command catalog when its YAML files change.
//
// It is used by `lcl watch` and by `lcl browse --watch`.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/linux-command-library/lcl/internal/catalog"
	"github.com/linux-command-library/lcl/internal/library"
)

// DefaultDebounce is how long the tree must stay quiet before a reload.
const DefaultDebounce = 200 * time.Millisecond

// Reloader rebuilds the catalog and returns the new snapshot.
type Reloader interface {
	Reload() *catalog.Snapshot
}

// Watcher monitors a commands directory and triggers full catalog reloads.
type Watcher struct {
	root     string
	reloader Reloader
	debounce time.Duration
	log      *slog.Logger
	onReload func(*catalog.Snapshot)

	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	dirty   bool
	lastHit time.Time
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root     string
	Reloader Reloader

	// DebounceDelay defaults to DefaultDebounce.
	DebounceDelay time.Duration
	Logger        *slog.Logger

	// OnReload is called after every reload with the new snapshot. Optional.
	OnReload func(*catalog.Snapshot)
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("commands directory is required")
	}
	if cfg.Reloader == nil {
		return nil, errors.New("reloader is required")
	}

	debounce := cfg.DebounceDelay
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Watcher{
		root:     cfg.Root,
		reloader: cfg.Reloader,
		debounce: debounce,
		log:      log.With("component", "watcher"),
		onReload: cfg.OnReload,
	}, nil
}

// Start watches the commands directory until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	w.log.Debug("watching commands directory", "root", w.root)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Debug("watcher error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.addWatchRecursive(path); err != nil {
				w.log.Debug("watch new directory failed", "path", path, "err", err)
			}
			// Files may have landed before the watch was in place.
			w.markDirty()
			return
		}
	}

	// Removing or renaming a directory drops every file in it.
	relevant := library.IsCommandFile(filepath.Base(path)) ||
		event.Op&(fsnotify.Remove|fsnotify.Rename) != 0
	if !relevant || event.Op == fsnotify.Chmod {
		return
	}

	w.log.Debug("event", "op", event.Op.String(), "path", path)
	w.markDirty()
}

func (w *Watcher) markDirty() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirty = true
	w.lastHit = time.Now()
}

func (w *Watcher) processDebounced(ctx context.Context) {
	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending reloads once the last event is older than the debounce delay.
func (w *Watcher) processPending() {
	w.mu.Lock()
	ready := w.dirty && time.Since(w.lastHit) >= w.debounce
	if ready {
		w.dirty = false
	}
	w.mu.Unlock()

	if !ready {
		return
	}

	snap := w.reloader.Reload()
	diag := snap.Diagnostics()
	w.log.Debug("reloaded",
		"generation", snap.Generation(),
		"records", diag.RecordsLoaded,
		"skipped_files", diag.FilesSkipped,
	)
	if w.onReload != nil {
		w.onReload(snap)
	}
}

func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			w.log.Debug("watch failed", "path", path, "err", err)
		}
		return nil
	})
}

// shouldIgnore reports whether path lies under a hidden directory or is a
// hidden file, mirroring what the catalog walk skips.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
