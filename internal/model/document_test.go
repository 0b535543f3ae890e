package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"GREP", "grep"},
		{"Networking_Tools", "networking_tools"},
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestOptionFlags(t *testing.T) {
	o := Option{Flags: []string{"-a", "--all"}, Explanation: "show all"}

	assert.Equal(t, "-a, --all", o.FlagText())
	assert.True(t, o.HasFlag("--all"))
	assert.False(t, o.HasFlag("-A"))
	assert.Empty(t, Option{}.FlagText())
}
