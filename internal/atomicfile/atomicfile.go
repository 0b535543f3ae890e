// Package atomicfile writes files by replacing them in one step, so a reader
// (or the catalog watcher) never sees a half-written file.
package atomicfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFile writes data to path atomically. The data goes to a temporary file
// in the same directory which is then renamed over path.
//
// If perm is 0, the existing file's mode is kept when there is one, and 0644
// is used otherwise. Parent directories are created as needed.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = 0o644
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	// Best-effort; some filesystems do not support chmod.
	_ = os.Chmod(path, perm)
	return nil
}
