package pages

import (
	"doubtsolver/internal/doubts"
	"doubtsolver/models"
)

// doubtSection is one listing block of the workspace with its bulk clear action.
type doubtSection struct {
	Key         string
	Title       string
	ClearAction string
	ClearLabel  string
	Resolved    bool
	Doubts      []models.Doubt
}

// sections returns the listing blocks shown for the current filter, unresolved first.
func (v WorkspaceView) sections() []doubtSection {
	var out []doubtSection
	if v.ShowUnresolved() {
		out = append(out, doubtSection{
			Key:         "unresolved",
			Title:       "Unresolved Doubts",
			ClearAction: "/app/doubts/clear-unresolved",
			ClearLabel:  "Clear Unresolved",
			Doubts:      v.Unresolved,
		})
	}
	if v.ShowResolved() {
		out = append(out, doubtSection{
			Key:         "resolved",
			Title:       "Resolved Doubts",
			ClearAction: "/app/doubts/clear-resolved",
			ClearLabel:  "Clear Resolved",
			Resolved:    true,
			Doubts:      v.Resolved,
		})
	}
	return out
}

func filterLabel(mode doubts.FilterMode) string {
	switch mode {
	case doubts.FilterResolved:
		return "Resolved"
	case doubts.FilterUnresolved:
		return "Unresolved"
	default:
		return "All Doubts"
	}
}
