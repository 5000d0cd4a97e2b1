package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHomeRendersLanding(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	Home(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `href="/original"`) {
		t.Fatalf("expected landing links: %s", w.Body.String())
	}
}

func TestHomeUnknownPath(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Home(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestOriginalServesFileVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "original.html")
	content := "<!DOCTYPE html>\n<html><body><h1>Legacy</h1></body></html>\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write legacy page: %v", err)
	}
	withTestHandlers(t, Options{LegacyHTMLPath: path})

	for _, target := range []string{"/original", "/original.html"} {
		w := httptest.NewRecorder()
		Original(w, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, w.Code)
		}
		if w.Body.String() != content {
			t.Fatalf("%s: expected verbatim body, got %q", target, w.Body.String())
		}
	}
}

func TestOriginalMissingFile(t *testing.T) {
	withTestHandlers(t, Options{LegacyHTMLPath: filepath.Join(t.TempDir(), "absent.html")})

	w := httptest.NewRecorder()
	Original(w, httptest.NewRequest(http.MethodGet, "/original", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
