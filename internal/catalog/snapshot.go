package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/linux-command-library/lcl/internal/model"
	"github.com/linux-command-library/lcl/internal/parser"
)

// Diagnostics summarizes one build.
type Diagnostics struct {
	Root           string `json:"root"`
	Strict         bool   `json:"strict"`
	DirsScanned    int    `json:"dirs_scanned"`
	FilesParsed    int    `json:"files_parsed"`
	FilesSkipped   int    `json:"files_skipped"`
	RecordsLoaded  int    `json:"records_loaded"`
	RecordsSkipped int    `json:"records_skipped"`

	// MissingDirs lists allow-listed categories that have no directory.
	MissingDirs []string `json:"missing_dirs,omitempty"`

	// RootError is set when the root directory itself could not be walked.
	RootError string `json:"root_error,omitempty"`

	Issues   []parser.Issue `json:"issues,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// FieldIssues counts issues that coerced or dropped a field without skipping
// the record.
func (d Diagnostics) FieldIssues() int {
	n := 0
	for _, is := range d.Issues {
		if !is.Skipped() {
			n++
		}
	}
	return n
}

// Snapshot is one immutable, fully built catalog state.
type Snapshot struct {
	docs       []model.Document
	diag       Diagnostics
	builtAt    time.Time
	generation uint64
}

// Documents returns the documents in build order. The returned slice is a
// copy; the documents themselves must be treated as read-only.
func (s *Snapshot) Documents() []model.Document {
	if s == nil {
		return nil
	}
	return slices.Clone(s.docs)
}

// Len returns the number of documents.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Empty reports whether the snapshot holds no documents at all. This is
// distinct from a search that matched nothing.
func (s *Snapshot) Empty() bool {
	return s.Len() == 0
}

// Diagnostics returns the build summary.
func (s *Snapshot) Diagnostics() Diagnostics {
	if s == nil {
		return Diagnostics{}
	}
	return s.diag
}

// BuiltAt returns when the snapshot was built.
func (s *Snapshot) BuiltAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.builtAt
}

// Generation increases by one with every reload of the owning Catalog.
func (s *Snapshot) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.generation
}

// CategoryCount is the number of documents loaded for one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns per-category document counts sorted case-insensitively.
func (s *Snapshot) Categories() []CategoryCount {
	if s == nil {
		return nil
	}
	counts := make(map[string]int)
	for _, d := range s.docs {
		counts[d.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int {
		if c := strings.Compare(model.Fold(a.Name), model.Fold(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// ErrNotFound is returned by Find when no document has the given name.
var ErrNotFound = errors.New("command not found")

// Find returns the first document, in build order, whose folded name equals
// the folded name given.
func (s *Snapshot) Find(name string) (model.Document, error) {
	want := model.Fold(strings.TrimSpace(name))
	if s != nil {
		for _, d := range s.docs {
			if model.Fold(d.Name) == want {
				return d, nil
			}
		}
	}
	return model.Document{}, fmt.Errorf("%s: %w", name, ErrNotFound)
}
