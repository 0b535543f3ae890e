// Package parser decodes command YAML files and normalizes their records
// into canonical model.Documents.
//
// Nothing in this package returns an error for malformed input records.
// Every file, record or field it cannot use is reported as an Issue and the
// rest of the input is still processed.
package parser

import "fmt"

// IssueKind classifies a normalization problem.
type IssueKind int

const (
	// IssueFileParse means the whole file could not be read or decoded.
	IssueFileParse IssueKind = iota
	// IssueRecordShape means one record was skipped (not a mapping, no name).
	IssueRecordShape
	// IssueFieldShape means a field had an unexpected shape and was coerced
	// or dropped; the record itself was kept.
	IssueFieldShape
	// IssueCorrupted means a corrupted text fragment was excluded.
	IssueCorrupted
)

func (k IssueKind) String() string {
	switch k {
	case IssueFileParse:
		return "file"
	case IssueRecordShape:
		return "record"
	case IssueFieldShape:
		return "field"
	case IssueCorrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON output.
func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue is one diagnostic produced while loading the catalog.
type Issue struct {
	Kind IssueKind `json:"kind"`

	// Path is the source file the issue belongs to.
	Path string `json:"path"`

	// Record is the zero-based record index inside the file, or -1 when the
	// issue concerns the whole file.
	Record int `json:"record"`

	// Field names the offending field for field-level issues.
	Field string `json:"field,omitempty"`

	Message string `json:"message"`
}

// Skipped reports whether the issue caused data to be left out of the
// catalog entirely (a file or a record), as opposed to a coerced field.
func (i Issue) Skipped() bool {
	return i.Kind == IssueFileParse || i.Kind == IssueRecordShape
}

func (i Issue) String() string {
	loc := i.Path
	if i.Record >= 0 {
		loc = fmt.Sprintf("%s#%d", loc, i.Record)
	}
	if i.Field != "" {
		loc += "." + i.Field
	}
	return fmt.Sprintf("%s: %s (%s)", loc, i.Message, i.Kind)
}
