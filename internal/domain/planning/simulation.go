package planning

import (
	"slices"
	"strings"
)

// Status classifies a component's projected availability
type Status string

const (
	StatusNotAvailable Status = "NOT_AVAILABLE"
	StatusPartial      Status = "PARTIAL"
	StatusOK           Status = "OK"
)

// Severity orders statuses from most to least urgent
func (s Status) Severity() int {
	switch s {
	case StatusNotAvailable:
		return 0
	case StatusPartial:
		return 1
	default:
		return 2
	}
}

// Classify derives the status from simulated stock and safety stock.
// Falling below zero always wins over falling below safety stock.
func Classify(simulated, safetyStock int64) Status {
	switch {
	case simulated < 0:
		return StatusNotAvailable
	case simulated < safetyStock:
		return StatusPartial
	default:
		return StatusOK
	}
}

// SimulationResult is the projected availability of one component
type SimulationResult struct {
	Code                  string
	Description           string
	ParentCodes           string
	RequestedQuantity     int64
	CurrentAvailability   int64
	SimulatedAvailability int64
	LeadTime              int64
	SafetyStock           int64
	TimePeriod            Period
	Status                Status
}

// BuildResults joins the explosion with availability rows and computes one
// result per component, in explosion order. Components without a row are
// treated as having no stock at all.
func BuildResults(explosion *Explosion, rows []AvailabilityRow, period Period) []SimulationResult {
	byCode := make(map[string]AvailabilityRow, len(rows))
	for _, row := range rows {
		if _, dup := byCode[row.Code]; !dup {
			byCode[row.Code] = row
		}
	}

	results := make([]SimulationResult, 0, explosion.Len())
	for _, req := range explosion.Requirements() {
		result := SimulationResult{
			Code:              req.Code,
			Description:       req.Description,
			ParentCodes:       strings.Join(req.ParentCodes, ", "),
			RequestedQuantity: req.TotalRequiredQuantity,
			TimePeriod:        period,
		}
		if row, ok := byCode[req.Code]; ok {
			result.Description = row.Description
			result.CurrentAvailability = row.NetAvailability(period)
			result.LeadTime = row.LeadTimeDays()
			result.SafetyStock = row.SafetyStockLevel()
		}
		result.SimulatedAvailability = subQuantities(result.CurrentAvailability, result.RequestedQuantity)
		result.Status = Classify(result.SimulatedAvailability, result.SafetyStock)
		results = append(results, result)
	}
	return results
}

// RankResults sorts results in place by severity. The sort is stable so
// components of equal severity keep their explosion order.
func RankResults(results []SimulationResult) {
	slices.SortStableFunc(results, func(a, b SimulationResult) int {
		return a.Status.Severity() - b.Status.Severity()
	})
}

// StatusCounts tallies results per status
func StatusCounts(results []SimulationResult) map[Status]int {
	counts := make(map[Status]int, 3)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
