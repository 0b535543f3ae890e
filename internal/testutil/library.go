// Package testutil provides reusable test helpers for building command trees.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Library is a temporary commands directory for tests.
type Library struct {
	Path  string
	t     *testing.T
	files map[string]string
	dirs  []string
}

// NewLibrary creates a new library builder.
// Call Build() to create the actual directory tree.
func NewLibrary(t *testing.T) *Library {
	t.Helper()
	return &Library{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the library.
// The path is relative to the library root.
func (l *Library) WithFile(path, content string) *Library {
	l.files[path] = content
	return l
}

// WithCommand adds a minimal command file at <category>/<name>.yml.
func (l *Library) WithCommand(category, name, description string) *Library {
	return l.WithFile(filepath.Join(category, name+".yml"), CommandYAML(name, category, description))
}

// WithDir adds an empty directory.
func (l *Library) WithDir(path string) *Library {
	l.dirs = append(l.dirs, path)
	return l
}

// Build creates the library directory and all configured files.
func (l *Library) Build() *Library {
	l.t.Helper()

	l.Path = l.t.TempDir()

	for _, dir := range l.dirs {
		if err := os.MkdirAll(filepath.Join(l.Path, dir), 0o755); err != nil {
			l.t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	// Sorted so failures are reported in a stable order.
	paths := make([]string, 0, len(l.files))
	for p := range l.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		l.WriteFile(p, l.files[p])
	}

	return l
}

// WriteFile writes a file into the built library, creating directories as needed.
func (l *Library) WriteFile(relPath, content string) {
	l.t.Helper()
	fullPath := filepath.Join(l.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		l.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the library.
func (l *Library) ReadFile(relPath string) string {
	l.t.Helper()
	fullPath := filepath.Join(l.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		l.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the library.
func (l *Library) FileExists(relPath string) bool {
	l.t.Helper()
	_, err := os.Stat(filepath.Join(l.Path, relPath))
	return err == nil
}

// CommandYAML returns a minimal valid command record.
func CommandYAML(name, category, description string) string {
	return "name: " + name + "\n" +
		"category: " + category + "\n" +
		"description: " + description + "\n" +
		"usage: " + name + " [OPTION]...\n"
}

// GrepFixture returns a small tree with overlapping names and categories.
func GrepFixture(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(t).
		WithFile("Text_Processing/grep.yml", `name: grep
category: Text_Processing
description: print lines that match patterns
usage: grep [OPTION]... PATTERNS [FILE]...
options:
  - flags: ["-i", "--ignore-case"]
    explanation: ignore case distinctions
  - flags: "-v"
    explanation: select non-matching lines
`).
		WithFile("Text_Processing/egrep.yml", `name: egrep
category: Text_Processing
description: grep with extended regular expressions
usage: egrep [OPTION]... PATTERNS [FILE]...
`).
		WithFile("Networking_Tools/ping.yml", `name: ping
description: send ICMP ECHO_REQUEST to network hosts
usage: ping [OPTION]... HOST
options:
  "-c": stop after count replies
`).
		WithFile("System_Administration/systemctl.yml", `name: systemctl
description: control the systemd system and service manager
usage: systemctl [COMMAND] [UNIT]
`).
		Build()
}
