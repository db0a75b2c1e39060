package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(AvailableThemes()) {
		t.Fatalf("expected %d names, got %d", len(AvailableThemes()), len(names))
	}
	if names[0] != ThemeDark {
		t.Errorf("expected dark first, got %s", names[0])
	}
}

func TestIsBuiltinStyle(t *testing.T) {
	for _, name := range []string{ThemeDark, ThemeLight, ThemeTokyoNight, ThemeAuto, ThemeASCII} {
		if !IsBuiltinStyle(name) {
			t.Errorf("expected %s to be builtin", name)
		}
	}
	if IsBuiltinStyle("/tmp/custom.json") {
		t.Error("did not expect a path to be builtin")
	}
}

func TestValidateStyle(t *testing.T) {
	if err := ValidateStyle(""); err != nil {
		t.Errorf("empty style: %v", err)
	}
	if err := ValidateStyle(ThemeDracula); err != nil {
		t.Errorf("builtin style: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "style.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateStyle(path); err != nil {
		t.Errorf("file style: %v", err)
	}
	if err := ValidateStyle(dir); err == nil {
		t.Error("expected error for directory")
	}
	if err := ValidateStyle(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderEveryNamedStyle(t *testing.T) {
	renderers.reset()
	defer renderers.reset()

	for _, name := range ThemeNames() {
		if _, err := Markdown("*hi*", DefaultOptions().WithStyle(name)); err != nil {
			t.Errorf("style %s: %v", name, err)
		}
	}
}
