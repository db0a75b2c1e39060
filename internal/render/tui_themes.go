package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme of the chat window
type TUITheme struct {
	Name        string
	Description string

	// Window chrome
	Border  lipgloss.Color
	Surface lipgloss.Color

	// Message senders
	User lipgloss.Color
	Bot  lipgloss.Color

	// Status colors
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color

	// Text colors
	Text    lipgloss.Color
	TextDim lipgloss.Color
}

// Built-in TUI themes
var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - Dark theme with blue accents",

		Border:  lipgloss.Color("#414868"),
		Surface: lipgloss.Color("#24283b"),

		User: lipgloss.Color("#9ece6a"),
		Bot:  lipgloss.Color("#7aa2f7"),

		Accent:  lipgloss.Color("#bb9af7"),
		Success: lipgloss.Color("#73daca"),
		Error:   lipgloss.Color("#f7768e"),

		Text:    lipgloss.Color("#c0caf5"),
		TextDim: lipgloss.Color("#565f89"),
	}

	// CatppuccinMochaTheme is based on the Catppuccin Mocha palette
	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - Warm dark theme with pastel colors",

		Border:  lipgloss.Color("#45475a"),
		Surface: lipgloss.Color("#313244"),

		User: lipgloss.Color("#a6e3a1"),
		Bot:  lipgloss.Color("#89b4fa"),

		Accent:  lipgloss.Color("#cba6f7"),
		Success: lipgloss.Color("#94e2d5"),
		Error:   lipgloss.Color("#f38ba8"),

		Text:    lipgloss.Color("#cdd6f4"),
		TextDim: lipgloss.Color("#6c7086"),
	}

	// CampusTheme is a light theme for bright terminals
	CampusTheme = TUITheme{
		Name:        "campus",
		Description: "Campus - Light theme with navy accents",

		Border:  lipgloss.Color("#a0aec0"),
		Surface: lipgloss.Color("#edf2f7"),

		User: lipgloss.Color("#276749"),
		Bot:  lipgloss.Color("#2c5282"),

		Accent:  lipgloss.Color("#6b46c1"),
		Success: lipgloss.Color("#2f855a"),
		Error:   lipgloss.Color("#c53030"),

		Text:    lipgloss.Color("#1a202c"),
		TextDim: lipgloss.Color("#718096"),
	}
)

var (
	tuiThemeMu      sync.RWMutex
	currentTUITheme = TokyoNightTheme
)

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	tuiThemeMu.RLock()
	defer tuiThemeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	tuiThemeMu.Lock()
	currentTUITheme = theme
	tuiThemeMu.Unlock()
	return true
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{
		TokyoNightTheme,
		CatppuccinMochaTheme,
		CampusTheme,
	}
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
