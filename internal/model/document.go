// Package model defines the canonical command records shared by the catalog,
// the query engine and the presentation layer.
package model

import "strings"

// UncategorizedCategory is the bucket used when no usable category exists,
// or when strict mode rejects the one a record declares.
const UncategorizedCategory = "uncategorized"

// Document is one normalized command entry.
//
// Documents are value objects: once a snapshot has been built they are never
// modified. Callers that receive Documents from the catalog must treat the
// slice fields as read-only.
type Document struct {
	// Name is the command name, e.g. "grep". Never empty inside a snapshot.
	Name string `json:"name"`

	// Category is the category the command belongs to. Never empty inside a snapshot.
	Category string `json:"category"`

	Description string `json:"description,omitempty"`

	// Usage is the synopsis line; falls back to the legacy "syntax" key.
	Usage string `json:"usage,omitempty"`

	Options  []Option `json:"options,omitempty"`
	Examples []string `json:"examples,omitempty"`

	// Tags is a sorted set.
	Tags []string `json:"tags,omitempty"`

	Notes   []string `json:"notes,omitempty"`
	Related []string `json:"related,omitempty"`

	// Dangerous is set for records marked `risk: dangerous`.
	Dangerous bool `json:"dangerous,omitempty"`

	Provenance Provenance `json:"provenance"`

	// Raw is the record as decoded from YAML, including fields the
	// normalizer dropped from the canonical form.
	Raw map[string]any `json:"-"`

	// SearchText is the case-folded option text used by partial matching.
	// Corrupted option fragments are never part of it.
	SearchText string `json:"-"`
}

// Option is one command-line option with all of its spellings.
type Option struct {
	// Flags holds one or more spellings, e.g. ["-a", "--all"].
	Flags       []string `json:"flags"`
	Explanation string   `json:"explanation,omitempty"`
}

// FlagText joins all spellings for display, e.g. "-a, --all".
func (o Option) FlagText() string {
	return strings.Join(o.Flags, ", ")
}

// HasFlag reports whether any spelling equals flag exactly.
func (o Option) HasFlag(flag string) bool {
	for _, f := range o.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Provenance records where a Document came from.
type Provenance struct {
	// SourcePath is the path of the YAML file the record was read from.
	SourcePath string `json:"source_path"`

	// CategoryDir is the name of the top-level category directory, or empty
	// for files directly under the catalog root.
	CategoryDir string `json:"category_dir,omitempty"`

	// Record is the zero-based position of the record inside its file.
	Record int `json:"record"`
}
