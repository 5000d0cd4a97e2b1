package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doubtsolver/internal/handlers"
	"doubtsolver/internal/store"
)

func resetHandlers(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		handlers.Configure(nil, nil, handlers.Options{})
	})
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	mem := store.NewMemory()
	cfg := Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Store: mem, DemoProfile: "demo"}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	resetHandlers(t)

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	data := url.Values{}
	data.Set("username", "admin")
	data.Set("password", "password123")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != defaultCookieName {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}
	if cookies[0].MaxAge <= 0 {
		t.Fatal("expected a persistent cookie")
	}

	if _, ok := mem.Raw(store.ScopedKey("demo", store.KeyActiveUser)); !ok {
		t.Fatal("expected active user persisted under the demo profile")
	}
	if _, ok := mem.Raw("session/" + cookies[0].Value); !ok {
		t.Fatal("expected session data persisted in the profile store")
	}
}

func TestSessionSurvivesServerRestart(t *testing.T) {
	mem := store.NewMemory()
	first, err := New(Config{Store: mem})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resetHandlers(t)

	data := url.Values{"username": {"student"}, "password": {"study123"}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	first.Handler().ServeHTTP(rr, req)
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	second, err := New(Config{Store: mem})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/app", nil)
	req.AddCookie(cookies[0])
	second.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected workspace after restart, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "student") {
		t.Fatal("expected the restored user in the workspace")
	}
}

func TestServerServesLegacyPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "original.html")
	if err := os.WriteFile(path, []byte("<html>legacy</html>"), 0o600); err != nil {
		t.Fatalf("write legacy page: %v", err)
	}
	srv, err := New(Config{LegacyHTMLPath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resetHandlers(t)

	for _, target := range []string{"/original", "/original.html"} {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusOK || rr.Body.String() != "<html>legacy</html>" {
			t.Fatalf("%s: unexpected response %d %q", target, rr.Code, rr.Body.String())
		}
	}
}

func TestServerHandler(t *testing.T) {
	srv, err := New(Config{Addr: ":9090"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resetHandlers(t)

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app", nil))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("expected /app to redirect to login, got %d", rr.Code)
	}
}
