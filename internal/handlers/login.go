package handlers

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"doubtsolver/internal/accounts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/views/pages"
)

const invalidCredentialsMessage = "Invalid credentials!"

// Login renders the authentication view and processes sign-in submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	applog.Debug(r.Context(), "handling login request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		applog.Debug(r.Context(), "method not allowed for login", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, release, err := openWorkspace(r, r.Method == http.MethodPost)
	if err != nil {
		http.Error(w, "authentication not available", http.StatusServiceUnavailable)
		return
	}
	defer release()

	form := pages.AuthForm{Mode: pages.AuthModeLogin, Dark: ws.DarkMode()}

	if r.Method != http.MethodPost {
		if _, ok := ws.Sessions.Current(); ok {
			applog.Debug(r.Context(), "active user detected, redirecting to app")
			redirectToApp(w, r)
			return
		}
		form.Message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		renderAuth(w, r, form)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse login form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form.Username = r.PostFormValue("username")
	password := r.PostFormValue("password")

	if _, err := ws.Sessions.Login(r.Context(), form.Username, password); err != nil {
		if !errors.Is(err, accounts.ErrInvalidCredentials) {
			applog.Error(r.Context(), "login failed", "error", err)
		}
		applog.Debug(r.Context(), "authentication failed", "username", form.Username)
		form.Message = invalidCredentialsMessage
		renderAuth(w, r, form)
		return
	}

	renewSession(r)
	applog.Debug(r.Context(), "authentication succeeded", "username", form.Username)
	redirectToApp(w, r)
}

func renderAuth(w http.ResponseWriter, r *http.Request, form pages.AuthForm) {
	var component templ.Component
	if isHTMX(r) {
		applog.Debug(r.Context(), "rendering HTMX auth partial", "mode", form.Mode, "messagePresent", form.Message != "")
		component = pages.LoginPartial(form)
	} else {
		applog.Debug(r.Context(), "rendering full auth page", "mode", form.Mode, "messagePresent", form.Message != "")
		component = pages.Login(form)
	}

	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render auth component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
