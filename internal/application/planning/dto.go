package planning

import (
	"github.com/alessandrv/FEC-mrp/internal/domain/planning"
	"github.com/samber/lo"
)

// SimulateOrderItem is one ordered article. Quantity is accepted as any JSON
// value and coerced, so "12", 12 and 12.7 all order 12 units. A code that is
// not a JSON string is treated as missing and the line is skipped.
type SimulateOrderItem struct {
	Code     any `json:"code"`
	Quantity any `json:"quantity"`
}

// SimulateOrderRequest is the body of an order simulation. A time period
// that is not one of the known names, or not a string at all, means today.
type SimulateOrderRequest struct {
	Items      []SimulateOrderItem `json:"items"`
	TimePeriod any                 `json:"time_period"`
}

// SimulationResultResponse is the projected availability of one component
type SimulationResultResponse struct {
	Code                  string `json:"code"`
	Description           string `json:"description"`
	ParentCodes           string `json:"parent_codes"`
	RequestedQuantity     int64  `json:"requested_quantity"`
	CurrentAvailability   int64  `json:"current_availability"`
	SimulatedAvailability int64  `json:"simulated_availability"`
	LeadTime              int64  `json:"lead_time"`
	SafetyStock           int64  `json:"safety_stock"`
	TimePeriod            string `json:"time_period"`
	Status                string `json:"status"`
}

// ArticleDescriptionResponse carries the display description of an article
type ArticleDescriptionResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ArticleAvailabilityResponse is the netted stock position of one article.
// NetByPeriod holds the cascade for every period, NetAvailability and Status
// refer to TimePeriod.
type ArticleAvailabilityResponse struct {
	Code            string           `json:"code"`
	Description     string           `json:"description"`
	LeadTime        int64            `json:"lead_time"`
	SafetyStock     int64            `json:"safety_stock"`
	StockOnHand     int64            `json:"stock_on_hand"`
	NetByPeriod     map[string]int64 `json:"net_by_period"`
	TimePeriod      string           `json:"time_period"`
	NetAvailability int64            `json:"net_availability"`
	Status          string           `json:"status"`
}

// toLineItems converts request items to engine line items
func toLineItems(items []SimulateOrderItem) []planning.LineItem {
	return lo.Map(items, func(item SimulateOrderItem, _ int) planning.LineItem {
		return planning.LineItem{Code: stringOrEmpty(item.Code), Quantity: item.Quantity}
	})
}

// requestedPeriod resolves the raw time_period value
func requestedPeriod(v any) planning.Period {
	return planning.ParsePeriod(stringOrEmpty(v))
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

// ToSimulationResultResponse converts a domain result to its response form
func ToSimulationResultResponse(r planning.SimulationResult) SimulationResultResponse {
	return SimulationResultResponse{
		Code:                  r.Code,
		Description:           r.Description,
		ParentCodes:           r.ParentCodes,
		RequestedQuantity:     r.RequestedQuantity,
		CurrentAvailability:   r.CurrentAvailability,
		SimulatedAvailability: r.SimulatedAvailability,
		LeadTime:              r.LeadTime,
		SafetyStock:           r.SafetyStock,
		TimePeriod:            r.TimePeriod.String(),
		Status:                string(r.Status),
	}
}

// ToSimulationResultResponses converts ranked domain results, keeping order
func ToSimulationResultResponses(results []planning.SimulationResult) []SimulationResultResponse {
	return lo.Map(results, func(r planning.SimulationResult, _ int) SimulationResultResponse {
		return ToSimulationResultResponse(r)
	})
}

// ToArticleAvailabilityResponse nets row for every period and selects period
func ToArticleAvailabilityResponse(row planning.AvailabilityRow, period planning.Period) ArticleAvailabilityResponse {
	positions := row.NetPositions()
	byPeriod := make(map[string]int64, len(planning.Periods))
	for i, p := range planning.Periods {
		byPeriod[p.String()] = positions[i]
	}

	resp := ArticleAvailabilityResponse{
		Code:        row.Code,
		Description: row.Description,
		LeadTime:    row.LeadTimeDays(),
		SafetyStock: row.SafetyStockLevel(),
		StockOnHand: positions[0],
		NetByPeriod: byPeriod,
	}
	return resp.forPeriod(period)
}

// forPeriod returns a copy of r focused on period
func (r ArticleAvailabilityResponse) forPeriod(period planning.Period) ArticleAvailabilityResponse {
	r.TimePeriod = period.String()
	r.NetAvailability = r.NetByPeriod[period.String()]
	r.Status = string(planning.Classify(r.NetAvailability, r.SafetyStock))
	return r
}
