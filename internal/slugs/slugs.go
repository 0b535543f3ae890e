// Package slugs turns command names into file name components.
//
// Slugs are built on gosimple/slug, so they are lowercase ASCII with runs of
// anything other than letters, digits, '-' and '_' collapsed into a single '-'.
package slugs

import (
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"
)

// FallbackName is used when a name slugs to nothing (for example "[").
const FallbackName = "command"

// ComponentSlug converts a string to a slug appropriate for a file name
// component. A trailing .yml or .yaml extension is dropped first.
func ComponentSlug(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(filepath.Ext(s)) {
	case ".yml", ".yaml":
		s = strings.TrimSuffix(s, filepath.Ext(s))
	}
	return goslug.Make(s)
}

// Filename returns the base file name (without extension) for a command.
func Filename(name string) string {
	if s := ComponentSlug(name); s != "" {
		return s
	}
	return FallbackName
}

// Truncate shortens a slug to at most max bytes without leaving a trailing
// separator.
func Truncate(slug string, max int) string {
	if max <= 0 || len(slug) <= max {
		return slug
	}
	return strings.TrimRight(slug[:max], "-_")
}
