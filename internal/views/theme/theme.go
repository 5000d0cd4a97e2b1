package theme

import (
	"strings"

	"doubtsolver/models"
)

// WorkspaceTheme contains resolved styling primitives for the application shell.
type WorkspaceTheme struct {
	Key               string
	Dark              bool
	HTMLClass         string
	BodyClass         string
	PanelSurfaceClass string
	BorderSoftClass   string
	AccentTextClass   string
	MutedTextClass    string
	InputClass        string
	ToggleLabel       string
}

var catalogue = map[string]WorkspaceTheme{
	models.ThemeDark: {
		Key:               models.ThemeDark,
		Dark:              true,
		HTMLClass:         "dark",
		BodyClass:         "min-h-screen bg-gray-900 text-gray-100",
		PanelSurfaceClass: "rounded-lg bg-gray-800 p-6 shadow",
		BorderSoftClass:   "border border-gray-700",
		AccentTextClass:   "text-indigo-400",
		MutedTextClass:    "text-gray-400",
		InputClass:        "w-full rounded border border-gray-600 bg-gray-700 px-3 py-2 text-gray-100",
		ToggleLabel:       "Switch to light mode",
	},
	models.ThemeLight: {
		Key:               models.ThemeLight,
		Dark:              false,
		HTMLClass:         "",
		BodyClass:         "min-h-screen bg-gray-50 text-gray-900",
		PanelSurfaceClass: "rounded-lg bg-white p-6 shadow",
		BorderSoftClass:   "border border-gray-200",
		AccentTextClass:   "text-indigo-600",
		MutedTextClass:    "text-gray-600",
		InputClass:        "w-full rounded border border-gray-300 bg-white px-3 py-2 text-gray-900",
		ToggleLabel:       "Switch to dark mode",
	},
}

// Resolve returns the theme for the persisted dark mode flag.
func Resolve(dark bool) WorkspaceTheme {
	return catalogue[models.ThemeKey(dark)]
}

// ResolveKey returns the registered theme for key, falling back to the default.
func ResolveKey(key string) WorkspaceTheme {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return Resolve(models.DefaultDarkMode)
}
