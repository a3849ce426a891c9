package shared

import (
	"net/http"
	"strconv"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// PageQuery carries skip/limit listing parameters.
type PageQuery struct {
	Skip  int
	Limit int
}

// ParsePageQuery reads skip/limit query parameters with clamped defaults.
func ParsePageQuery(r *http.Request) PageQuery {
	q := PageQuery{Limit: defaultPageLimit}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			q.Skip = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			q.Limit = v
		}
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	return q
}
