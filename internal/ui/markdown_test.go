package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("# grep\n\nsearch text\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected rendered markdown to end with newline, got %q", out)
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected single trailing newline, got %q", out)
	}
	if !strings.Contains(ansi.Strip(out), "search text") {
		t.Fatalf("expected body text in output, got %q", out)
	}
}

func TestRenderMarkdownDefaultsWidthWhenNonPositive(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatalf("expected non-empty rendered output")
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	out, err := RenderMarkdown("```bash\ngrep -i foo file\n```\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.Contains(ansi.Strip(out), "grep -i foo file") {
		t.Fatalf("expected code block content, got %q", out)
	}
}

func TestConfigureCodeTheme(t *testing.T) {
	t.Cleanup(func() { ConfigureCodeTheme("") })

	ConfigureCodeTheme("dracula")
	if got := commandPageStyle().CodeBlock.Theme; got != "dracula" {
		t.Fatalf("expected dracula theme, got %q", got)
	}

	ConfigureCodeTheme("  ")
	if got := commandPageStyle().CodeBlock.Theme; got != DefaultCodeTheme {
		t.Fatalf("expected default theme, got %q", got)
	}
}
