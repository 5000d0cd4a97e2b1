package doubts

import (
	"strings"

	"doubtsolver/models"
)

// FilterMode restricts a listing by resolution state.
type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterResolved   FilterMode = "resolved"
	FilterUnresolved FilterMode = "unresolved"
)

// FilterModes lists the modes in the order they are offered to users.
func FilterModes() []FilterMode {
	return []FilterMode{FilterAll, FilterResolved, FilterUnresolved}
}

// ParseFilterMode normalises value, falling back to FilterAll.
func ParseFilterMode(value string) (FilterMode, bool) {
	switch mode := FilterMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case FilterAll, FilterResolved, FilterUnresolved:
		return mode, true
	default:
		return FilterAll, false
	}
}

// Matches reports whether doubt satisfies the search term and mode.
func Matches(doubt models.Doubt, term string, mode FilterMode) bool {
	needle := strings.ToLower(term)
	if !strings.Contains(strings.ToLower(doubt.Subject), needle) &&
		!strings.Contains(strings.ToLower(doubt.Question), needle) {
		return false
	}
	switch mode {
	case FilterResolved:
		return doubt.IsResolved
	case FilterUnresolved:
		return !doubt.IsResolved
	default:
		return true
	}
}

// Filter returns the doubts matching term and mode in their original order.
func Filter(list []models.Doubt, term string, mode FilterMode) []models.Doubt {
	filtered := make([]models.Doubt, 0, len(list))
	for _, doubt := range list {
		if Matches(doubt, term, mode) {
			filtered = append(filtered, doubt)
		}
	}
	return filtered
}

// Partition splits list into unresolved and resolved doubts, keeping order.
func Partition(list []models.Doubt) (unresolved, resolved []models.Doubt) {
	unresolved = make([]models.Doubt, 0, len(list))
	resolved = make([]models.Doubt, 0, len(list))
	for _, doubt := range list {
		if doubt.IsResolved {
			resolved = append(resolved, doubt)
		} else {
			unresolved = append(unresolved, doubt)
		}
	}
	return unresolved, resolved
}

// Stats counts doubts by resolution state.
type Stats struct {
	Total      int `json:"total"`
	Resolved   int `json:"resolved"`
	Unresolved int `json:"unresolved"`
}

// Summarize computes Stats for list.
func Summarize(list []models.Doubt) Stats {
	stats := Stats{Total: len(list)}
	for _, doubt := range list {
		if doubt.IsResolved {
			stats.Resolved++
		}
	}
	stats.Unresolved = stats.Total - stats.Resolved
	return stats
}
