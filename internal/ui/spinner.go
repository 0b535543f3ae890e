package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Spinner displays an animated spinner on a terminal while the catalog loads.
// On anything else it stays silent.
type Spinner struct {
	out     io.Writer
	tty     bool
	message string
	frames  []string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	started bool
}

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner that writes to out.
func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		tty:     isTerminal(out),
		message: message,
		frames:  defaultFrames,
		done:    make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !s.tty {
		return
	}
	s.started = true
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.done:
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s", Bold.Render(s.frames[i%len(s.frames)]), s.message)
			}
		}
	}()
}

// Stop stops the spinner and clears its line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		if s.started {
			s.wg.Wait()
		}
	})
}
