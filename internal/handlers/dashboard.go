package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	applog "doubtsolver/internal/log"
	"doubtsolver/internal/views/pages"
	"doubtsolver/internal/workspace"
)

// Dashboard renders the doubt workspace for the active user.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ws, ok := requireWorkspace(w, r)
	if !ok {
		return
	}

	view := workspaceView(r, ws)
	view.Message = popFlash(r)

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.WorkspacePartial(view)
	} else {
		component = pages.Workspace(view)
	}
	render(w, r, component)
}

// Doubts lists the filtered doubt sections on GET and posts a new doubt on POST.
func Doubts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		ws, ok := requireWorkspace(w, r)
		if !ok {
			return
		}
		render(w, r, pages.DoubtSections(workspaceView(r, ws)))
	case http.MethodPost:
		AddDoubt(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func workspaceView(r *http.Request, ws *workspace.Workspace) pages.WorkspaceView {
	user, _ := ws.Sessions.Current()
	return pages.NewWorkspaceView(user, ws.DarkMode(), ws.Doubts.All(), pages.DoubtQueryFromRequest(r))
}

func render(w http.ResponseWriter, r *http.Request, component templpkg.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
