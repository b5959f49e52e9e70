package orders

import "testing"

func TestStats_Aggregates(t *testing.T) {
	svc := newTestService(fixtureRecords())

	stats := svc.Stats()
	if stats.TotalOrders != 5 {
		t.Fatalf("TotalOrders = %d, want 5", stats.TotalOrders)
	}

	// Every count partition must sum back to the collection size.
	partitions := map[string]map[string]int{
		"ByStatus":        stats.ByStatus,
		"ByRiskLevel":     stats.ByRiskLevel,
		"ByAgeBucket":     stats.ByAgeBucket,
		"ByProfitability": stats.ByProfitability,
	}
	for name, m := range partitions {
		sum := 0
		for _, n := range m {
			sum += n
		}
		if sum != stats.TotalOrders {
			t.Errorf("%s sums to %d, want %d", name, sum, stats.TotalOrders)
		}
	}

	if got := stats.ByStatus["AP"]; got != 3 {
		t.Errorf("ByStatus[AP] = %d, want 3", got)
	}
	if got := stats.ByRiskLevel[RiskCritical]; got != 1 {
		t.Errorf("ByRiskLevel[critical] = %d, want 1", got)
	}
	if got := stats.ByAgeBucket[AgeBucket0to7]; got != 2 {
		t.Errorf("ByAgeBucket[0-7] = %d, want 2", got)
	}
	if stats.WithPartsOrdered != 1 {
		t.Errorf("WithPartsOrdered = %d, want 1", stats.WithPartsOrdered)
	}
	// Ages 2, 20, 40, 10, 2; only 20 and 40 exceed the overdue threshold.
	if stats.OverdueCount != 2 {
		t.Errorf("OverdueCount = %d, want 2", stats.OverdueCount)
	}
	if want := 74.0 / 5.0; stats.AvgDaysSinceCreate != want {
		t.Errorf("AvgDaysSinceCreate = %v, want %v", stats.AvgDaysSinceCreate, want)
	}
}

func TestStats_TechnicianExcludesUnassigned(t *testing.T) {
	svc := newTestService(fixtureRecords())

	stats := svc.Stats()
	if _, ok := stats.ByTechnician[""]; ok {
		t.Error("ByTechnician contains the empty technician key")
	}
	if got := stats.ByTechnician["T1"]; got != 2 {
		t.Errorf("ByTechnician[T1] = %d, want 2", got)
	}
	if len(stats.ByTechnician) != 3 {
		t.Errorf("len(ByTechnician) = %d, want 3", len(stats.ByTechnician))
	}
}

func TestStats_EmptyCollection(t *testing.T) {
	svc := newTestService(nil)

	stats := svc.Stats()
	if stats.TotalOrders != 0 {
		t.Errorf("TotalOrders = %d, want 0", stats.TotalOrders)
	}
	if stats.AvgDaysSinceCreate != 0 {
		t.Errorf("AvgDaysSinceCreate = %v, want 0", stats.AvgDaysSinceCreate)
	}
	if stats.ByStatus == nil || stats.ByTechnician == nil {
		t.Error("partition maps must be non-nil even when empty")
	}
}

func TestAgeBucketFor(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, AgeBucket0to7},
		{7, AgeBucket0to7},
		{8, AgeBucket8to14},
		{14, AgeBucket8to14},
		{15, AgeBucket15to30},
		{30, AgeBucket15to30},
		{31, AgeBucket30Plus},
		{365, AgeBucket30Plus},
	}

	for _, tt := range tests {
		if got := ageBucketFor(tt.days); got != tt.want {
			t.Errorf("ageBucketFor(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}
