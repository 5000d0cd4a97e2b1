package pages

import (
	"doubtsolver/internal/doubts"
	"doubtsolver/internal/views/theme"
	"doubtsolver/models"
)

// WorkspaceView aggregates the data required to render the doubt workspace.
type WorkspaceView struct {
	User       models.User
	Theme      theme.WorkspaceTheme
	Query      DoubtQuery
	Visible    []models.Doubt
	Unresolved []models.Doubt
	Resolved   []models.Doubt
	Stats      doubts.Stats
	Message    string
}

// NewWorkspaceView filters list by query and splits the result into the two listing sections.
// Statistics always describe the whole list.
func NewWorkspaceView(user models.User, dark bool, list []models.Doubt, query DoubtQuery) WorkspaceView {
	if query.Mode == "" {
		query.Mode = doubts.FilterAll
	}
	visible := doubts.Filter(list, query.Term, query.Mode)
	unresolved, resolved := doubts.Partition(visible)
	return WorkspaceView{
		User:       user,
		Theme:      theme.Resolve(dark),
		Query:      query,
		Visible:    visible,
		Unresolved: unresolved,
		Resolved:   resolved,
		Stats:      doubts.Summarize(list),
	}
}

// ShowUnresolved reports whether the unresolved section is part of the current filter.
func (v WorkspaceView) ShowUnresolved() bool {
	return v.Query.Mode != doubts.FilterResolved
}

// ShowResolved reports whether the resolved section is part of the current filter.
func (v WorkspaceView) ShowResolved() bool {
	return v.Query.Mode != doubts.FilterUnresolved
}
