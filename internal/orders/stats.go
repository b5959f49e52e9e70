package orders

// Age bucket labels. Buckets are mutually exclusive and exhaustive over
// daysSinceCreate, aligned with the risk tier thresholds.
const (
	AgeBucket0to7   = "0-7"
	AgeBucket8to14  = "8-14"
	AgeBucket15to30 = "15-30"
	AgeBucket30Plus = "30+"
)

// OpenOrdersStats aggregates the full cached collection in a single
// pass. Every count partition (status, risk, age) sums to TotalOrders.
type OpenOrdersStats struct {
	TotalOrders        int            `json:"totalOrders"`
	ByStatus           map[string]int `json:"byStatus"`
	ByProfitability    map[string]int `json:"byProfitability"`
	ByRiskLevel        map[string]int `json:"byRiskLevel"`
	ByAgeBucket        map[string]int `json:"byAgeBucket"`
	WithPartsOrdered   int            `json:"withPartsOrdered"`
	OverdueCount       int            `json:"overdueCount"`
	AvgDaysSinceCreate float64        `json:"avgDaysSinceCreate"`
	ByTechnician       map[string]int `json:"byTechnician"`
}

// Stats computes aggregate counts and averages over the full cached
// collection, never a filtered subset. Pure read, no side effects.
func (s *Service) Stats() *OpenOrdersStats {
	if s.metrics != nil {
		s.metrics.StatsRequests.Inc()
	}

	records := s.Records()
	stats := &OpenOrdersStats{
		TotalOrders:     len(records),
		ByStatus:        make(map[string]int),
		ByProfitability: make(map[string]int),
		ByRiskLevel:     make(map[string]int),
		ByAgeBucket:     make(map[string]int),
		ByTechnician:    make(map[string]int),
	}

	totalDays := 0
	for i := range records {
		rec := &records[i]

		stats.ByStatus[rec.OrderStatus]++
		stats.ByProfitability[rec.Profitability]++
		stats.ByRiskLevel[rec.RiskLevel]++
		stats.ByAgeBucket[ageBucketFor(rec.DaysSinceCreate)]++

		if rec.PartsOrderedQty > 0 {
			stats.WithPartsOrdered++
		}
		if rec.IsOverdue {
			stats.OverdueCount++
		}
		if rec.AssignedTech != "" {
			stats.ByTechnician[rec.AssignedTech]++
		}
		totalDays += rec.DaysSinceCreate
	}

	if len(records) > 0 {
		stats.AvgDaysSinceCreate = float64(totalDays) / float64(len(records))
	}
	return stats
}

// ageBucketFor maps an order age onto its reporting bucket.
func ageBucketFor(days int) string {
	switch {
	case days <= riskMediumDays:
		return AgeBucket0to7
	case days <= riskHighDays:
		return AgeBucket8to14
	case days <= riskCriticalDays:
		return AgeBucket15to30
	default:
		return AgeBucket30Plus
	}
}
