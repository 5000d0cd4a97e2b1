package handlers

import (
	"errors"
	"net/http"

	"doubtsolver/internal/accounts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/views/pages"
)

// Signup displays the account creation form and processes new registrations.
func Signup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	applog.Debug(r.Context(), "handling signup request", "method", r.Method, "htmx", isHTMX(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		applog.Debug(r.Context(), "method not allowed for signup", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ws, release, err := openWorkspace(r, r.Method == http.MethodPost)
	if err != nil {
		http.Error(w, "registration not available", http.StatusServiceUnavailable)
		return
	}
	defer release()

	form := pages.AuthForm{Mode: pages.AuthModeSignup, Dark: ws.DarkMode()}

	if r.Method != http.MethodPost {
		if _, ok := ws.Sessions.Current(); ok {
			applog.Debug(r.Context(), "active user detected during signup, redirecting to app")
			redirectToApp(w, r)
			return
		}
		renderAuth(w, r, form)
		return
	}

	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse signup form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	form.Username = r.PostFormValue("username")
	form.Email = r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := ws.Sessions.Signup(r.Context(), form.Username, password, form.Email)
	if err != nil {
		if errors.Is(err, accounts.ErrValidation) {
			form.Message = "Username and password are required."
		} else {
			applog.Error(r.Context(), "signup failed", "error", err)
			form.Message = "We couldn't create your account right now. Please try again."
		}
		renderAuth(w, r, form)
		return
	}

	renewSession(r)
	applog.Debug(r.Context(), "signup completed successfully", "username", user.Username)
	redirectToApp(w, r)
}
