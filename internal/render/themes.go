package render

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// Glamour standard styles accepted by name
const (
	ThemeAuto       = "auto"
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyo-night"
	ThemeDracula    = "dracula"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the named markdown styles.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeAuto, Description: "Pick dark or light from the terminal background"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// IsBuiltinStyle returns true if style names a glamour standard style.
func IsBuiltinStyle(style string) bool {
	for _, name := range ThemeNames() {
		if name == style {
			return true
		}
	}
	return false
}

// ValidateStyle checks that style is a known name or a readable JSON file.
func ValidateStyle(style string) error {
	if style == "" || IsBuiltinStyle(style) {
		return nil
	}
	info, err := os.Stat(style)
	if err != nil {
		return fmt.Errorf("unknown markdown style %q: %w", style, err)
	}
	if info.IsDir() {
		return fmt.Errorf("markdown style %q is a directory", style)
	}
	return nil
}

// styleOption maps a style name or path to a renderer option.
func styleOption(style string) glamour.TermRendererOption {
	switch {
	case style == "":
		return glamour.WithStandardStyle(ThemeDark)
	case style == ThemeAuto:
		return glamour.WithAutoStyle()
	case IsBuiltinStyle(style):
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStylePath(style)
	}
}
