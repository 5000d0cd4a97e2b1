package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"doubtsolver/internal/doubts"
	applog "doubtsolver/internal/log"
	"doubtsolver/internal/views/pages"
	"doubtsolver/models"
)

type doubtsResponse struct {
	Doubts []models.Doubt `json:"doubts"`
	Stats  doubts.Stats   `json:"stats"`
}

// DoubtsAPI returns the filtered doubt list and the overall statistics as JSON.
func DoubtsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ws, ok := workspaceFrom(r)
	if !ok {
		writeJSONError(w, http.StatusServiceUnavailable, errWorkspaceUnavailable.Error())
		return
	}

	query := pages.DoubtQueryFromRequest(r)
	all := ws.Doubts.All()
	visible := doubts.Filter(all, query.Term, query.Mode)
	writeJSON(w, http.StatusOK, doubtsResponse{Doubts: visible, Stats: doubts.Summarize(all)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
