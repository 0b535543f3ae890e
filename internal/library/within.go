package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned when a path resolves outside the commands tree.
var ErrPathOutsideRoot = errors.New("path is outside the commands directory")

// ValidateWithinRoot checks that path, after resolving symlinks, stays inside root.
// A path that does not exist yet is checked lexically.
func ValidateWithinRoot(root, path string) error {
	absRoot, err := resolvePath(root)
	if err != nil {
		return err
	}
	absPath, err := resolvePath(path)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrPathOutsideRoot)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s: %w", path, ErrPathOutsideRoot)
	}
	return nil
}

func resolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	// Resolve the nearest existing parent so a not-yet-created file under a
	// symlinked root still compares correctly.
	dir, base := filepath.Split(abs)
	if dir = filepath.Clean(dir); dir != abs {
		if parent, err := resolvePath(dir); err == nil {
			return filepath.Join(parent, base), nil
		}
	}
	return abs, nil
}
