// Package check validates command records before they are written back to
// the commands tree.
package check

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linux-command-library/lcl/internal/parser"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarning:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the level by name in JSON output.
func (l IssueLevel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level"`
	Field   string     `json:"field"`
	Message string     `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Level, i.Field, i.Message)
}

// HasErrors reports whether any issue is an error (warnings do not block a save).
func HasErrors(issues []Issue) bool {
	for _, is := range issues {
		if is.Level == LevelError {
			return true
		}
	}
	return false
}

// ErrNotMapping is returned by ParseRecord when the input is not a single mapping.
var ErrNotMapping = errors.New("command file must contain a single YAML mapping")

// Validator checks candidate records against the catalog's category rules.
type Validator struct {
	strict  bool
	allowed parser.CategorySet
}

// NewValidator creates a validator. With strict set, categories must be in allowed.
func NewValidator(strict bool, allowed []string) *Validator {
	return &Validator{strict: strict, allowed: parser.NewCategorySet(allowed)}
}

// Validate runs the minimal write-back checks on a decoded record:
// a name (or command/title), a category, a description and a usage (or
// syntax). The shapes of options and examples are only warned about.
func (v *Validator) Validate(record map[string]any) []Issue {
	var issues []Issue
	errorf := func(field, format string, args ...any) {
		issues = append(issues, Issue{Level: LevelError, Field: field, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(field, format string, args ...any) {
		issues = append(issues, Issue{Level: LevelWarning, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if RecordName(record) == "" {
		errorf("name", "missing required 'name' (or 'command'/'title')")
	}

	category := text(record["category"])
	switch {
	case category == "":
		errorf("category", "missing 'category'")
	case v.strict && !v.allowed.Contains(category):
		errorf("category", "category %q is not in the allowed categories", category)
	}

	if text(record["description"]) == "" {
		errorf("description", "missing or empty 'description'")
	}
	if text(record["usage"]) == "" && text(record["syntax"]) == "" {
		errorf("usage", "missing 'usage' or 'syntax'")
	}

	switch record["options"].(type) {
	case nil, []any, map[string]any:
	default:
		warnf("options", "'options' should be a list or mapping")
	}
	switch record["examples"].(type) {
	case nil, []any, string:
	default:
		warnf("examples", "'examples' should be a list or a string")
	}

	return issues
}

// RecordName returns the first non-empty of name, command and title.
func RecordName(record map[string]any) string {
	for _, key := range []string{"name", "command", "title"} {
		if s := text(record[key]); s != "" {
			return s
		}
	}
	return ""
}

// ParseRecord decodes YAML holding one command mapping.
func ParseRecord(data []byte) (map[string]any, error) {
	var record map[string]any
	if err := yaml.Unmarshal(data, &record); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotMapping
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if record == nil {
		return nil, ErrNotMapping
	}
	return record, nil
}

// text returns v trimmed when it is a string, and "" otherwise.
func text(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
