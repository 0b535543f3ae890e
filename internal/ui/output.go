package ui

import (
	"fmt"
	"strings"

	"github.com/linux-command-library/lcl/internal/model"
)

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Check returns a success message with checkmark symbol.
func Check(msg string) string {
	return SymbolSuccess + " " + msg
}

// Checkf returns a formatted success message.
func Checkf(format string, args ...any) string {
	return Check(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol.
func Error(msg string) string {
	return SymbolError + " " + msg
}

// Warning returns a warning message with warning symbol.
func Warning(msg string) string {
	return SymbolWarning + " " + msg
}

// Warningf returns a formatted warning message.
func Warningf(format string, args ...any) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Info returns an info message with info symbol.
func Info(msg string) string {
	return SymbolInfo + " " + msg
}

// Header returns a styled section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// CategoryHeader renders a group heading such as "Networking_Tools (12)".
func CategoryHeader(category string, count int) string {
	return AccentBold.Render(category) + " " + Muted.Render(fmt.Sprintf("(%d)", count))
}

// CommandName returns an accent-styled command name, flagged when dangerous.
func CommandName(doc model.Document) string {
	name := Accent.Render(doc.Name)
	if doc.Dangerous {
		name += " " + SymbolWarning
	}
	return name
}

// FilePath returns a muted file path.
func FilePath(path string) string {
	return Muted.Render(path)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count returns a count badge like "(3 records)".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}

// Pluralize returns "1 file" or "3 files".
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// OneLine collapses whitespace runs, including newlines, to single spaces.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
