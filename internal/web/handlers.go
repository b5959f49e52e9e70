package web

import (
	"net/http"
	"strconv"

	"github.com/fieldserv/openorders/internal/orders"
)

// handleHealth is a liveness probe. It never touches the cache.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleSearch serves GET /open-orders: the filtered, sorted, paginated
// view of the cached collection.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r)
	writeJSON(w, s.service.Search(criteria))
}

// handleStats serves GET /open-orders/stats: aggregate counts over the
// full cached collection.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Stats())
}

// handleFilterOptions serves GET /open-orders/filter-options: distinct
// filter values present in the current collection.
func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.FilterOptions())
}

// parseCriteria maps query parameters onto SearchCriteria. Invalid
// values fall back to defaults; nothing here produces an error.
func parseCriteria(r *http.Request) orders.SearchCriteria {
	q := r.URL.Query()

	criteria := orders.SearchCriteria{
		Search:        q.Get("search"),
		Status:        q.Get("status"),
		PlanningArea:  q.Get("planningArea"),
		AssignedTech:  q.Get("assignedTech"),
		RiskLevel:     q.Get("riskLevel"),
		Profitability: q.Get("profitability"),
		Limit:         parseIntParam(r, "limit", orders.DefaultPageSize),
		Offset:        parseIntParam(r, "offset", 0),
	}

	if v := q.Get("hasPartsOrdered"); v != "" && v != orders.FilterAll {
		if b, err := strconv.ParseBool(v); err == nil {
			criteria.HasPartsOrdered = &b
		}
	}

	return criteria
}

// parseIntParam parses a non-negative integer query parameter with a
// default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
