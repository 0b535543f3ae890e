package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerIsSilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "loading")
	s.Start()
	s.Stop()
	s.Stop()
	assert.Empty(t, buf.String())
}
