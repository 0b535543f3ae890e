// Package library walks the on-disk command tree: category directories
// holding one YAML file per command.
package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/linux-command-library/lcl/internal/parser"
)

// ErrNotDirectory is returned when the catalog root exists but is a file.
var ErrNotDirectory = errors.New("commands path is not a directory")

// WalkResult is one YAML file found while walking the tree.
type WalkResult struct {
	Path         string
	RelativePath string

	// CategoryDir is the top-level directory the file lives under, or ""
	// for files directly under the root.
	CategoryDir string

	Content []byte
	Error   error
}

// WalkOptions controls which category directories are visited.
type WalkOptions struct {
	// Strict limits the walk to top-level directories named in Allowed.
	Strict  bool
	Allowed parser.CategorySet
}

// WalkStats summarizes a walk.
type WalkStats struct {
	DirsScanned int

	// MissingDirs lists allow-listed categories with no directory (strict mode).
	MissingDirs []string

	// DirErrors lists directories that could not be read.
	DirErrors []WalkResult
}

// IsCommandFile reports whether name has a supported YAML extension.
func IsCommandFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Walk visits every command file under root in deterministic order: top-level
// category directories sorted by name, then files and nested directories in
// lexical order. handler is called once per file; a per-file read error is
// delivered through WalkResult.Error rather than stopping the walk.
//
// Walk only returns an error when root itself cannot be used or when handler
// returns one.
func Walk(root string, opts WalkOptions, handler func(WalkResult) error) (WalkStats, error) {
	var stats WalkStats

	info, err := os.Stat(root)
	if err != nil {
		return stats, fmt.Errorf("failed to read commands directory: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return stats, fmt.Errorf("failed to list commands directory: %w", err)
	}
	stats.DirsScanned++

	var categories []string
	var rootFiles []string
	present := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if isHidden(name) {
			continue
		}
		if e.IsDir() {
			present[name] = true
			if opts.Strict && !opts.Allowed.Contains(name) {
				continue
			}
			categories = append(categories, name)
			continue
		}
		if IsCommandFile(name) {
			rootFiles = append(rootFiles, name)
		}
	}
	slices.Sort(categories)

	if opts.Strict {
		for _, name := range opts.Allowed.Sorted() {
			if !present[name] {
				stats.MissingDirs = append(stats.MissingDirs, name)
			}
		}
	}

	visit := func(path, category string) error {
		rel, _ := filepath.Rel(root, path)
		result := WalkResult{Path: path, RelativePath: rel, CategoryDir: category}

		// Security: never follow a symlink out of the tree.
		if err := ValidateWithinRoot(root, path); err != nil {
			result.Error = err
			return handler(result)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			result.Error = err
			return handler(result)
		}
		result.Content = content
		return handler(result)
	}

	for _, category := range categories {
		dir := filepath.Join(root, category)
		// WalkDir reads directory entries in lexical order.
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d == nil || d.IsDir() {
					rel, _ := filepath.Rel(root, path)
					stats.DirErrors = append(stats.DirErrors, WalkResult{Path: path, RelativePath: rel, CategoryDir: category, Error: err})
					return filepath.SkipDir
				}
				return visit(path, category)
			}
			if d.IsDir() {
				if path != dir && isHidden(d.Name()) {
					return filepath.SkipDir
				}
				stats.DirsScanned++
				return nil
			}
			if isHidden(d.Name()) || !IsCommandFile(d.Name()) {
				return nil
			}
			return visit(path, category)
		})
		if err != nil {
			return stats, err
		}
	}

	// Files directly under the root carry no category directory.
	if !opts.Strict {
		slices.Sort(rootFiles)
		for _, name := range rootFiles {
			if err := visit(filepath.Join(root, name), ""); err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}
