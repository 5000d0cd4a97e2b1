package pages

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"doubtsolver/internal/doubts"
)

// DoubtQuery captures the client-driven search state for the doubt listing.
type DoubtQuery struct {
	Term string
	Mode doubts.FilterMode
}

// DoubtQueryFromRequest extracts the search term and filter mode from an HTTP request.
// The term is kept verbatim so that surrounding spaces take part in matching.
func DoubtQueryFromRequest(r *http.Request) DoubtQuery {
	query := DoubtQuery{Mode: doubts.FilterAll}
	if err := r.ParseForm(); err != nil {
		return query
	}
	query.Term = r.FormValue("q")
	query.Mode, _ = doubts.ParseFilterMode(r.FormValue("filter"))
	return query
}

// Encode renders the query as URL parameters, omitting defaults.
func (q DoubtQuery) Encode() string {
	values := url.Values{}
	if q.Term != "" {
		values.Set("q", q.Term)
	}
	if q.Mode != "" && q.Mode != doubts.FilterAll {
		values.Set("filter", string(q.Mode))
	}
	return values.Encode()
}

// ParseID extracts a doubt identifier from the provided string, returning zero on failure.
func ParseID(value string) int64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
