package render

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/tutorchat/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji {
		t.Error("expected EnableEmoji=true")
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle("light")

	if opts.Width != 100 {
		t.Errorf("expected Width=100, got %d", opts.Width)
	}
	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines {
		t.Error("expected other fields untouched")
	}
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("**Torque** is a moment", DefaultOptions().WithStyle(ThemeNoTTY))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Torque") {
		t.Errorf("expected output to contain 'Torque', got %q", out)
	}
}

func TestReply(t *testing.T) {
	out := Reply("- stress\n- strain", DefaultOptions().WithStyle(ThemeASCII))

	if !strings.Contains(out, "stress") || !strings.Contains(out, "strain") {
		t.Errorf("expected list items in output, got %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("expected surrounding newlines trimmed, got %q", out)
	}
}

func TestReply_FallsBackToRawText(t *testing.T) {
	renderers.reset()
	defer renderers.reset()

	raw := "**keep me**"
	out := Reply(raw, DefaultOptions().WithStyle("/nonexistent/style.json"))
	if out != raw {
		t.Errorf("expected raw text on render failure, got %q", out)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	md := config.MarkdownConfig{Style: "dracula", EnableEmoji: false, PreserveNewLines: true}
	opts, err := OptionsFromConfig(md)
	if err != nil {
		t.Fatalf("OptionsFromConfig() error = %v", err)
	}

	if opts.Style != "dracula" {
		t.Errorf("expected Style='dracula', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}

	if got, _ := OptionsFromConfig(config.MarkdownConfig{}); got.Style != ThemeDark {
		t.Errorf("expected empty style to keep default, got %s", got.Style)
	}
}

func TestOptionsFromConfig_UnknownStyle(t *testing.T) {
	md := config.MarkdownConfig{Style: filepath.Join(t.TempDir(), "missing.json"), PreserveNewLines: true}
	opts, err := OptionsFromConfig(md)

	if err == nil {
		t.Fatal("expected an error for a missing style file")
	}
	if opts.Style != ThemeDark {
		t.Errorf("expected fallback to %s, got %s", ThemeDark, opts.Style)
	}
	if !opts.PreserveNewLines {
		t.Error("expected the rest of the section to be kept")
	}
}
