package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"doubtsolver/internal/doubts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/views/pages"
	"doubtsolver/internal/workspace"
)

// AddDoubt posts a new doubt. Blank fields leave the list unchanged.
func AddDoubt(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	doubt, err := ws.Doubts.Add(r.Context(), r.PostFormValue("subject"), r.PostFormValue("question"))
	switch {
	case errors.Is(err, doubts.ErrValidation):
		applog.Debug(r.Context(), "ignoring incomplete doubt", "error", err)
	case err != nil:
		applog.Error(r.Context(), "failed to add doubt", "error", err)
	default:
		applog.Debug(r.Context(), "doubt added", "id", doubt.ID, "subject", doubt.Subject)
	}
	redirectToApp(w, r)
}

// AnswerDoubt appends an answer to the referenced doubt.
func AnswerDoubt(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	id := pages.ParseID(r.PostFormValue("id"))
	if err := ws.Doubts.AddAnswer(r.Context(), id, r.PostFormValue("answer")); err != nil {
		applog.Debug(r.Context(), "answer not recorded", "id", id, "error", err)
		redirectToApp(w, r)
		return
	}
	redirectTo(w, r, fmt.Sprintf("/app#doubt-%d", id))
}

// ResolveDoubt marks the referenced doubt resolved.
func ResolveDoubt(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	id := pages.ParseID(r.PostFormValue("id"))
	if err := ws.Doubts.Resolve(r.Context(), id); err != nil {
		applog.Debug(r.Context(), "resolve ignored", "id", id, "error", err)
	}
	redirectToApp(w, r)
}

// ClearResolved removes every resolved doubt after confirmation.
func ClearResolved(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	removed, err := ws.ClearResolved(r.Context(), confirmed(r))
	if errors.Is(err, workspace.ErrConfirmationRequired) {
		renderConfirm(w, r, ws, pages.ConfirmPrompt{
			Title:   "Clear resolved doubts?",
			Message: "Are you sure you want to clear all resolved doubts?",
			Action:  "/app/doubts/clear-resolved",
		})
		return
	}
	putFlash(r, fmt.Sprintf("Cleared %d resolved doubts.", removed))
	redirectToApp(w, r)
}

// ClearUnresolved removes every unresolved doubt after confirmation.
func ClearUnresolved(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	removed, err := ws.ClearUnresolved(r.Context(), confirmed(r))
	if errors.Is(err, workspace.ErrConfirmationRequired) {
		renderConfirm(w, r, ws, pages.ConfirmPrompt{
			Title:   "Clear unresolved doubts?",
			Message: "Are you sure you want to clear all unresolved doubts?",
			Action:  "/app/doubts/clear-unresolved",
		})
		return
	}
	putFlash(r, fmt.Sprintf("Cleared %d unresolved doubts.", removed))
	redirectToApp(w, r)
}

// ResetAll returns the profile to its factory state after confirmation. The
// active user is cleared, so the browser lands on the login page.
func ResetAll(w http.ResponseWriter, r *http.Request) {
	ws, ok := postedForm(w, r)
	if !ok {
		return
	}
	if err := ws.ResetAll(r.Context(), confirmed(r)); errors.Is(err, workspace.ErrConfirmationRequired) {
		renderConfirm(w, r, ws, pages.ConfirmPrompt{
			Title:   "Clear all data?",
			Message: "This will remove all doubts, accounts and preferences. Are you sure?",
			Action:  "/app/reset",
		})
		return
	}
	putLoginMessage(r, resetMessage)
	redirectToLogin(w, r)
}

func postedForm(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return nil, false
	}
	ws, ok := requireWorkspace(w, r)
	if !ok {
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		applog.Debug(r.Context(), "failed to parse form", "path", r.URL.Path, "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return nil, false
	}
	return ws, true
}

func confirmed(r *http.Request) bool {
	return r.PostFormValue("confirm") == "yes"
}

func renderConfirm(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, prompt pages.ConfirmPrompt) {
	prompt.Dark = ws.DarkMode()
	render(w, r, pages.Confirm(prompt))
}
