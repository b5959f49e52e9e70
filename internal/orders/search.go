package orders

import (
	"sort"
	"strings"
)

// DefaultPageSize is the page size applied when a request omits limit.
const DefaultPageSize = 50

// FilterAll is the sentinel value meaning "do not filter on this field".
const FilterAll = "all"

// SearchCriteria are the inputs to Search. Zero values (and FilterAll)
// disable their filter; HasPartsOrdered is nil when the predicate is
// not requested.
type SearchCriteria struct {
	Search          string
	Status          string
	PlanningArea    string
	AssignedTech    string
	RiskLevel       string
	Profitability   string
	HasPartsOrdered *bool
	Limit           int
	Offset          int
}

// SearchResult is one page of matching records plus the collection and
// filtered-set sizes.
type SearchResult struct {
	Orders        []OrderRecord `json:"orders"`
	TotalCount    int           `json:"totalCount"`
	FilteredCount int           `json:"filteredCount"`
}

// Search filters the cached collection conjunctively, sorts by priority
// score descending (stable, so equal scores keep load order), and slices
// the requested page. Unrecognized filter values match nothing; no input
// causes an error.
func (s *Service) Search(c SearchCriteria) *SearchResult {
	if s.metrics != nil {
		s.metrics.SearchRequests.Inc()
	}

	records := s.Records()
	result := &SearchResult{TotalCount: len(records)}

	filtered := make([]OrderRecord, 0, len(records))
	for _, rec := range records {
		if c.matches(&rec) {
			filtered = append(filtered, rec)
		}
	}
	result.FilteredCount = len(filtered)

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PriorityScore > filtered[j].PriorityScore
	})

	limit := c.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := c.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(filtered) {
		offset = len(filtered)
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	result.Orders = filtered[offset:end]
	return result
}

// matches applies every active predicate; filters are ANDed.
func (c *SearchCriteria) matches(rec *OrderRecord) bool {
	if !matchText(c.Search, rec) {
		return false
	}
	if active(c.Status) && rec.OrderStatus != c.Status {
		return false
	}
	if active(c.PlanningArea) && rec.PlanningArea != c.PlanningArea {
		return false
	}
	if active(c.AssignedTech) && rec.AssignedTech != c.AssignedTech {
		return false
	}
	if active(c.RiskLevel) && rec.RiskLevel != c.RiskLevel {
		return false
	}
	if active(c.Profitability) && rec.Profitability != c.Profitability {
		return false
	}
	if c.HasPartsOrdered != nil {
		if *c.HasPartsOrdered != (rec.PartsOrderedQty > 0) {
			return false
		}
	}
	return true
}

// matchText is the free-text predicate: a case-insensitive substring
// match ORed across order number, customer name, assigned technician,
// and work-item id.
func matchText(query string, rec *OrderRecord) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(rec.OrderNum), q) ||
		strings.Contains(strings.ToLower(rec.CustomerName), q) ||
		strings.Contains(strings.ToLower(rec.AssignedTech), q) ||
		strings.Contains(strings.ToLower(rec.WorkItemID), q)
}

// active reports whether an exact-match filter value should be applied.
func active(v string) bool {
	return v != "" && v != FilterAll
}
