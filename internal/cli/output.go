package cli

import (
	"io"
	"os"
)

// stdout returns the current standard output. It is looked up on every call
// so tests that swap os.Stdout see their pipe.
func stdout() io.Writer {
	return os.Stdout
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
