// Package docs bundles the long-form guides shown by "lcl docs".
package docs

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FS contains long-form Markdown docs bundled with the lcl binary.
//
//go:embed index.yaml guide
var FS embed.FS

// ErrTopicNotFound is returned for unknown topic IDs.
var ErrTopicNotFound = errors.New("topic not found")

// Topic is one bundled guide.
type Topic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
	order int
}

// Match is one line of a guide that matched a search.
type Match struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

type index struct {
	Topics map[string]struct {
		Title string `yaml:"title"`
		Order int    `yaml:"order"`
	} `yaml:"topics"`
}

// Topics lists the guides in fsys, ordered by index.yaml and then by ID.
// Guides missing from the index get a title from their first heading.
func Topics(fsys fs.FS) ([]Topic, error) {
	var idx index
	if data, err := fs.ReadFile(fsys, "index.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &idx); err != nil {
			return nil, fmt.Errorf("parse docs index: %w", err)
		}
	}

	entries, err := fs.ReadDir(fsys, "guide")
	if err != nil {
		return nil, fmt.Errorf("read guides: %w", err)
	}

	var topics []Topic
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		t := Topic{ID: strings.TrimSuffix(e.Name(), ".md"), Path: path.Join("guide", e.Name())}
		if meta, ok := idx.Topics[t.ID]; ok {
			t.Title, t.order = meta.Title, meta.Order
		}
		if t.Title == "" {
			t.Title = firstHeading(fsys, t.Path, t.ID)
		}
		topics = append(topics, t)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		oi, oj := topics[i].order, topics[j].order
		if (oi == 0) != (oj == 0) {
			return oi != 0
		}
		if oi != oj {
			return oi < oj
		}
		return topics[i].ID < topics[j].ID
	})
	return topics, nil
}

// Find returns the topic whose ID matches id, ignoring case.
func Find(topics []Topic, id string) (Topic, error) {
	id = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(id)), ".md")
	for _, t := range topics {
		if strings.ToLower(t.ID) == id {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%w: %s", ErrTopicNotFound, id)
}

// Search returns lines of the guides that contain query, at most limit of
// them (limit <= 0 means no limit).
func Search(fsys fs.FS, topics []Topic, query string, limit int) ([]Match, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, errors.New("empty query")
	}

	var out []Match
	for _, t := range topics {
		data, err := fs.ReadFile(fsys, t.Path)
		if err != nil {
			return nil, err
		}
		sc := bufio.NewScanner(bytes.NewReader(data))
		for n := 1; sc.Scan(); n++ {
			line := sc.Text()
			if !strings.Contains(strings.ToLower(line), q) {
				continue
			}
			out = append(out, Match{Topic: t.ID, Title: t.Title, Line: n, Snippet: strings.TrimSpace(line)})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

func firstHeading(fsys fs.FS, p, fallback string) string {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return fallback
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
