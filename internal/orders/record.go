package orders

import (
	"math"
	"strings"
	"time"
)

// Risk tiers, ordered by escalating order age.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Age thresholds (whole days since creation) for risk and overdue
// derivation. These are fixed business constants, not tunables.
const (
	riskMediumDays   = 7
	riskHighDays     = 14
	riskCriticalDays = 30
	overdueDays      = 14
)

// Priority score weights. The score is a synthetic urgency ranking, not a
// business-validated SLA value.
const (
	weightPerDay       = 2
	weightReschedule   = 20
	weightPartsOrdered = 10
	weightRecall       = 15
	weightLoss         = -5
)

// rescheduleStatus is the order-status code meaning the appointment must
// be rebooked.
const rescheduleStatus = "RN"

// lossMarker flags a profitability label as a losing order.
const lossMarker = "loss"

// OrderRecord is the canonical in-memory form of one source row, with
// scheduling and risk metrics derived at load time. Derived fields are a
// pure function of the record's own fields and are never recomputed after
// the load.
type OrderRecord struct {
	ID       string `json:"id"`
	OrderNum string `json:"orderNum"`
	ApptSeq  string `json:"apptSeq"`

	OrderStatus    string `json:"orderStatus"`
	WorkItemStatus string `json:"workItemStatus"`
	WorkItemID     string `json:"workItemId"`
	SchedReason    string `json:"schedReason"`
	CurrentStatus  string `json:"currentStatus"`

	CreateDate       time.Time  `json:"createDate"`
	ScheduledDate    *time.Time `json:"scheduledDate,omitempty"`
	StatusChangeDate *time.Time `json:"statusChangeDate,omitempty"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerAddr  string `json:"customerAddr"`
	CustomerCity  string `json:"customerCity"`
	CustomerZip   string `json:"customerZip"`

	Appliance       string `json:"appliance"`
	Manufacturer    string `json:"manufacturer"`
	Model           string `json:"model"`
	CoverageCode    string `json:"coverageCode"`
	JobDescription  string `json:"jobDescription"`
	Difficulty      string `json:"difficulty"`
	ProductCategory string `json:"productCategory"`
	PlanningArea    string `json:"planningArea"`
	District        string `json:"district"`

	AssignedTech string `json:"assignedTech"`
	RoutedTechs  string `json:"routedTechs"`
	ActiveTechs  string `json:"activeTechs"`

	PartsCost     float64 `json:"partsCost"`
	PartsSell     float64 `json:"partsSell"`
	PartsTax      float64 `json:"partsTax"`
	UnitPrice     float64 `json:"unitPrice"`
	Profitability string  `json:"profitability"`

	PartsOrderedQty   int  `json:"partsOrderedQty"`
	PartsInstalledQty int  `json:"partsInstalledQty"`
	RecallFlag        bool `json:"recallFlag"`

	DaysSinceCreate    int    `json:"daysSinceCreate"`
	DaysSinceScheduled int    `json:"daysSinceScheduled"`
	IsOverdue          bool   `json:"isOverdue"`
	RiskLevel          string `json:"riskLevel"`
	PriorityScore      int    `json:"priorityScore"`
}

// derive fills the computed fields from the record's own values. ref is
// the reference instant ages are measured against.
func (r *OrderRecord) derive(ref time.Time) {
	r.ID = r.OrderNum + "-" + r.ApptSeq

	r.DaysSinceCreate = daysBetween(ref, r.CreateDate)
	if r.ScheduledDate != nil {
		r.DaysSinceScheduled = daysBetween(ref, *r.ScheduledDate)
	} else {
		r.DaysSinceScheduled = 0
	}

	r.RiskLevel = riskLevelFor(r.DaysSinceCreate)
	// Overdue is computed from the age directly, not from the risk tier:
	// the two share a threshold but are independent facts.
	r.IsOverdue = r.DaysSinceCreate > overdueDays
	r.PriorityScore = r.priorityScore()
}

// priorityScore is the weighted urgency sum. Signed, unclamped.
func (r *OrderRecord) priorityScore() int {
	score := r.DaysSinceCreate * weightPerDay
	if r.OrderStatus == rescheduleStatus {
		score += weightReschedule
	}
	if r.PartsOrderedQty > 0 {
		score += weightPartsOrdered
	}
	if r.RecallFlag {
		score += weightRecall
	}
	if strings.Contains(strings.ToLower(r.Profitability), lossMarker) {
		score += weightLoss
	}
	return score
}

// riskLevelFor buckets an order age into a risk tier.
func riskLevelFor(daysSinceCreate int) string {
	switch {
	case daysSinceCreate > riskCriticalDays:
		return RiskCritical
	case daysSinceCreate > riskHighDays:
		return RiskHigh
	case daysSinceCreate > riskMediumDays:
		return RiskMedium
	default:
		return RiskLow
	}
}

// daysBetween returns the whole number of days from t to ref, using floor
// division so a partial day in the past still counts as zero.
func daysBetween(ref, t time.Time) int {
	return int(math.Floor(ref.Sub(t).Hours() / 24))
}
