package planning

// AvailabilityRow carries the stock figures of one component. Every numeric
// field may be NULL and is coerced on use.
type AvailabilityRow struct {
	Code        string
	Description string
	LeadTime    RawNumber
	SafetyStock RawNumber
	StockOnHand RawNumber
	// Demand holds committed demand per forward bucket (mc, ms, msa, mss)
	Demand [BucketCount]RawNumber
	// Supply holds incoming supply per forward bucket (mc, ms, msa, mss)
	Supply [BucketCount]RawNumber
}

// NetPositions returns the projected net stock at the end of each period, in
// cascade order: today, mc, ms, msa, mss. Each bucket starts from the
// previous one's result. Arithmetic saturates at the int64 bounds.
func (r AvailabilityRow) NetPositions() [PeriodCount]int64 {
	var out [PeriodCount]int64
	running := CoerceQuantity(r.StockOnHand, 0)
	out[0] = running
	for i := 0; i < BucketCount; i++ {
		running = addQuantities(subQuantities(running, CoerceQuantity(r.Demand[i], 0)), CoerceQuantity(r.Supply[i], 0))
		out[i+1] = running
	}
	return out
}

// NetAvailability returns the projected net stock for period. Unknown periods
// are netted as today.
func (r AvailabilityRow) NetAvailability(period Period) int64 {
	idx := period.Index()
	if idx < 0 {
		idx = 0
	}
	return r.NetPositions()[idx]
}

// LeadTimeDays returns the coerced lead time, 0 when absent
func (r AvailabilityRow) LeadTimeDays() int64 {
	return CoerceQuantity(r.LeadTime, 0)
}

// SafetyStockLevel returns the coerced safety stock, 0 when absent
func (r AvailabilityRow) SafetyStockLevel() int64 {
	return CoerceQuantity(r.SafetyStock, 0)
}
