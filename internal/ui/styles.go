package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (configurable, soft purple by default): command names, headers
// - Muted (gray): categories, paths, hints
// - No colored success/error/warning; use unicode symbols only

// DefaultAccent is the accent color used when none is configured.
const DefaultAccent = "#a78bfa"

var (
	accentColor = DefaultAccent

	// Accent style for command names and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(DefaultAccent)).Bold(true)
)

// ConfigureTheme sets the accent color from a config value. "none", "off"
// and "default" disable the accent; unparseable values also disable it.
// An empty value restores DefaultAccent.
func ConfigureTheme(accent string) {
	if strings.TrimSpace(accent) == "" {
		accent = DefaultAccent
	}
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the configured accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts ANSI 256 codes and #rgb / #rrggbb hex colors.
func normalizeAccentColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return "", false
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return "", false
		}
		return "#" + hex, true
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}
