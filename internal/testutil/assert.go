package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (l *Library) AssertFileExists(relPath string) {
	l.t.Helper()
	if _, err := os.Stat(filepath.Join(l.Path, relPath)); os.IsNotExist(err) {
		l.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (l *Library) AssertFileNotExists(relPath string) {
	l.t.Helper()
	if _, err := os.Stat(filepath.Join(l.Path, relPath)); err == nil {
		l.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (l *Library) AssertFileContains(relPath, substr string) {
	l.t.Helper()
	content := l.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		l.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}
