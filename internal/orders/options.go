package orders

import "sort"

// FilterOptions are the distinct values currently present in the cached
// collection, one list per exact-match filter. Each list is sorted and
// prefixed with the FilterAll sentinel so a UI can render it directly.
type FilterOptions struct {
	PlanningAreas       []string `json:"planningAreas"`
	Technicians         []string `json:"technicians"`
	Statuses            []string `json:"statuses"`
	RiskLevels          []string `json:"riskLevels"`
	ProfitabilityLevels []string `json:"profitabilityLevels"`
}

// FilterOptions scans the cached collection for distinct filter values.
func (s *Service) FilterOptions() *FilterOptions {
	records := s.Records()

	areas := make(map[string]struct{})
	techs := make(map[string]struct{})
	statuses := make(map[string]struct{})
	risks := make(map[string]struct{})
	profits := make(map[string]struct{})

	for i := range records {
		rec := &records[i]
		if rec.PlanningArea != "" {
			areas[rec.PlanningArea] = struct{}{}
		}
		if rec.AssignedTech != "" {
			techs[rec.AssignedTech] = struct{}{}
		}
		if rec.OrderStatus != "" {
			statuses[rec.OrderStatus] = struct{}{}
		}
		if rec.RiskLevel != "" {
			risks[rec.RiskLevel] = struct{}{}
		}
		if rec.Profitability != "" {
			profits[rec.Profitability] = struct{}{}
		}
	}

	return &FilterOptions{
		PlanningAreas:       sortedWithAll(areas),
		Technicians:         sortedWithAll(techs),
		Statuses:            sortedWithAll(statuses),
		RiskLevels:          sortedWithAll(risks),
		ProfitabilityLevels: sortedWithAll(profits),
	}
}

// sortedWithAll flattens a distinct-value set into a sorted list
// prefixed with the FilterAll sentinel.
func sortedWithAll(set map[string]struct{}) []string {
	values := make([]string, 0, len(set)+1)
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{FilterAll}, values...)
}
