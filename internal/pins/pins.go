// Package pins stores the user's favorite commands.
package pins

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/linux-command-library/lcl/internal/atomicfile"
)

// Store is a set of pinned command names persisted as a sorted JSON list.
type Store struct {
	path  string
	names map[string]struct{}
}

// Open loads the pins file at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, names: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pins: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse pins %s: %w", path, err)
	}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s.names[n] = struct{}{}
		}
	}
	return s, nil
}

// Path returns the file the store is saved to.
func (s *Store) Path() string { return s.path }

// Has reports whether name is pinned.
func (s *Store) Has(name string) bool {
	_, ok := s.names[strings.TrimSpace(name)]
	return ok
}

// Add pins name and reports whether it was newly added.
func (s *Store) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.Has(name) {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Remove unpins name and reports whether it was pinned.
func (s *Store) Remove(name string) bool {
	name = strings.TrimSpace(name)
	if !s.Has(name) {
		return false
	}
	delete(s.names, name)
	return true
}

// List returns the pinned names in sorted order.
func (s *Store) List() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Save writes the store atomically.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.List(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode pins: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to save pins: %w", err)
	}
	return nil
}
