package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	applog "doubtsolver/internal/log"
)

// Original serves the legacy static page byte for byte. Both /original and
// /original.html resolve here.
func Original(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := os.ReadFile(options.LegacyHTMLPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applog.Warn(r.Context(), "legacy page missing", "path", options.LegacyHTMLPath)
			http.NotFound(w, r)
			return
		}
		applog.Error(r.Context(), "failed to read legacy page", "path", options.LegacyHTMLPath, "error", err)
		http.Error(w, "unable to load page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		applog.Error(r.Context(), "failed to write legacy page", "error", err)
	}
}
