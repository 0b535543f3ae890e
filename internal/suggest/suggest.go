// Package suggest writes user-submitted command suggestions to the review
// inbox at <repo>/.inbox/suggestions.
package suggest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/linux-command-library/lcl/internal/atomicfile"
	"github.com/linux-command-library/lcl/internal/pages"
	"github.com/linux-command-library/lcl/internal/slugs"
)

// InboxDir is the suggestion inbox, relative to the repository root.
var InboxDir = filepath.Join(".inbox", "suggestions")

// maxSlug bounds the name part of a suggestion file name.
const maxSlug = 60

// timestampLayout is used both in file names and in _meta.created_at.
const timestampLayout = "20060102-150405"

// Suggestion is a proposed command.
type Suggestion struct {
	Name        string
	Category    string
	Description string
	Usage       string
	Notes       string
}

// Meta is attached to every suggestion file under the _meta key.
type Meta struct {
	User string
	Host string
	Now  time.Time
}

// CurrentMeta describes the current user and host.
func CurrentMeta() Meta {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	host, _ := os.Hostname()
	return Meta{User: user, Host: host, Now: time.Now()}
}

// Record converts the suggestion into the record written to disk.
func (s Suggestion) Record(meta Meta) map[string]any {
	record := map[string]any{"name": strings.TrimSpace(s.Name)}
	for key, v := range map[string]string{
		"category":    s.Category,
		"description": s.Description,
		"usage":       s.Usage,
		"notes":       s.Notes,
	} {
		if v = strings.TrimSpace(v); v != "" {
			record[key] = v
		}
	}
	record["_meta"] = map[string]any{
		"type":       "suggestion",
		"created_at": meta.Now.Format(timestampLayout),
		"user":       meta.User,
		"host":       meta.Host,
	}
	return record
}

// Save writes s to the inbox under repoRoot and returns the file path.
func Save(repoRoot string, s Suggestion, meta Meta) (string, error) {
	if strings.TrimSpace(s.Name) == "" {
		return "", errors.New("suggestion needs a name")
	}

	dir := filepath.Join(repoRoot, InboxDir)
	slug := slugs.Truncate(slugs.ComponentSlug(s.Name), maxSlug)
	if slug == "" {
		slug = "suggestion"
	}
	prefix := meta.Now.Format(timestampLayout) + "-" + slug

	content, err := pages.Marshal(s.Record(meta))
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, prefix+".yml")
	for i := 2; ; i++ {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			break
		}
		path = filepath.Join(dir, prefix+"-"+strconv.Itoa(i)+".yml")
	}

	if err := atomicfile.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to save suggestion: %w", err)
	}
	return path, nil
}
