package ui

import (
	"io"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 100

// DisplayContext holds display parameters, auto-detecting terminal width.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether the output is a terminal
}

type fder interface {
	Fd() uintptr
}

// NewDisplayContext inspects w. Writers that are not terminals, such as
// buffers in tests or pipes, get DefaultTermWidth and IsTTY=false.
func NewDisplayContext(w io.Writer) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth}
	f, ok := w.(fder)
	if !ok {
		return d
	}
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return d
	}
	d.IsTTY = true
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		d.TermWidth = width
	}
	return d
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width (for testing).
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{
		TermWidth: width,
		IsTTY:     true,
	}
}

// AvailableWidth returns the usable width after accounting for left margin.
func (d *DisplayContext) AvailableWidth(leftMargin int) int {
	return d.TermWidth - leftMargin
}
