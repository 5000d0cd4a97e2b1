package handlers

import (
	"net/http"
	"strings"

	applog "doubtsolver/internal/log"
	"doubtsolver/models"
)

type preferencesResponse struct {
	Theme    string `json:"theme"`
	DarkMode bool   `json:"darkMode"`
}

// ToggleTheme flips and persists the dark mode flag for the profile. A "dark"
// form value of "true" or "false" sets the flag instead of flipping it.
func ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		applog.Debug(r.Context(), "theme toggle with unsupported method", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ws, ok := requireWorkspace(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse theme form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	var dark bool
	if flag, ok := models.ParseThemeFlag(r.PostFormValue("dark")); ok {
		ws.SetDarkMode(r.Context(), flag)
		dark = flag
	} else {
		dark = ws.ToggleTheme(r.Context())
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, preferencesResponse{Theme: models.ThemeKey(dark), DarkMode: dark})
		return
	}
	redirectToApp(w, r)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
