package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// DefaultCodeTheme is the chroma theme for fenced code blocks.
const DefaultCodeTheme = "monokai"

var (
	codeThemeMu sync.RWMutex
	codeTheme   = DefaultCodeTheme
)

// ConfigureCodeTheme sets the chroma theme used for code blocks. An empty
// value restores DefaultCodeTheme.
func ConfigureCodeTheme(theme string) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultCodeTheme
	}
	codeThemeMu.Lock()
	codeTheme = theme
	codeThemeMu.Unlock()
}

func currentCodeTheme() string {
	codeThemeMu.RLock()
	defer codeThemeMu.RUnlock()
	return codeTheme
}

// RenderMarkdown renders a command page for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(commandPageStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}

// commandPageStyle is glamour's dark style with the accent color on headings
// and inline code, a left margin, and the configured code theme.
func commandPageStyle() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	muted := strPtr("8")
	var accent *string
	if color, ok := AccentColor(); ok {
		accent = strPtr(color)
	}

	cfg.Document.Margin = uintPtr(MarkdownRenderMargin)
	cfg.Heading.Color = accent

	// Plain H1: no background badge.
	cfg.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{
		Color: accent,
		Bold:  boolPtr(true),
	}}

	cfg.Code = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Color: accent}}
	cfg.CodeBlock.Margin = uintPtr(MarkdownRenderMargin)
	// Chroma overrides Theme when set.
	cfg.CodeBlock.Chroma = nil
	cfg.CodeBlock.Theme = currentCodeTheme()
	cfg.BlockQuote.Bold = boolPtr(true)
	cfg.Link.Color = muted
	cfg.LinkText.Color = muted
	cfg.Emph.Color = muted
	return cfg
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }
