package models

import "strings"

const (
	// ThemeDark is the key of the dark workspace theme.
	ThemeDark = "dark"
	// ThemeLight is the key of the light workspace theme.
	ThemeLight = "light"
	// DefaultDarkMode is the theme flag applied when none was saved.
	DefaultDarkMode = true
)

// ThemeKey maps the persisted theme flag onto a theme key.
func ThemeKey(dark bool) string {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// ParseThemeFlag interprets the "true"/"false" strings written by the theme toggle.
func ParseThemeFlag(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return DefaultDarkMode, false
	}
}
