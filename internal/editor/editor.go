// Package editor opens the user's editor on a command template and reads the
// result back.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/linux-command-library/lcl/internal/shellquote"
)

// ErrNoEditor is returned when no editor is configured.
var ErrNoEditor = errors.New("no editor configured")

// ErrUnchanged is returned when the edited file is identical to the template.
var ErrUnchanged = errors.New("template was not changed")

// Session runs an editor attached to the given terminal streams.
type Session struct {
	// Editor is the editor command line, for example "vim" or "code -w".
	Editor string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Command builds the process that edits path. Editors given with arguments
// are run through the shell.
func (s Session) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	editor := strings.TrimSpace(s.Editor)
	if editor == "" {
		return nil, ErrNoEditor
	}

	var cmd *exec.Cmd
	if strings.ContainsAny(editor, " \t") {
		if runtime.GOOS == "windows" {
			cmd = exec.CommandContext(ctx, "cmd", "/C", editor+" "+path)
		} else {
			cmd = exec.CommandContext(ctx, "sh", "-c", editor+" "+shellquote.Quote(path))
		}
	} else {
		cmd = exec.CommandContext(ctx, editor, path)
	}
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return cmd, nil
}

// Edit opens path and waits for the editor to exit.
func (s Session) Edit(ctx context.Context, path string) error {
	cmd, err := s.Command(ctx, path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", s.Editor, err)
	}
	return nil
}

// EditTemplate writes template to a temporary .yml file, opens it and returns
// what was saved. The temporary file is removed afterwards.
func (s Session) EditTemplate(ctx context.Context, template []byte) ([]byte, error) {
	f, err := os.CreateTemp("", "lcl-new-*.yml")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(template); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := s.Edit(ctx, path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	if string(content) == string(template) {
		return nil, ErrUnchanged
	}
	return content, nil
}
