package planning

// Period is the planning horizon a simulation nets stock up to
type Period string

const (
	PeriodToday        Period = "today"
	PeriodCurrentMonth Period = "mc"
	PeriodNextMonth    Period = "ms"
	PeriodTwoMonths    Period = "msa"
	PeriodBeyond       Period = "mss"
)

const (
	// BucketCount is the number of forward demand/supply buckets (mc, ms, msa, mss)
	BucketCount = 4
	// PeriodCount is today plus the forward buckets
	PeriodCount = BucketCount + 1
)

// Periods lists every period in cascade order
var Periods = []Period{
	PeriodToday,
	PeriodCurrentMonth,
	PeriodNextMonth,
	PeriodTwoMonths,
	PeriodBeyond,
}

// ParsePeriod returns the period named by s. Unknown or empty values are
// treated as today.
func ParsePeriod(s string) Period {
	p := Period(s)
	if p.IsValid() {
		return p
	}
	return PeriodToday
}

// IsValid reports whether p is one of the known periods
func (p Period) IsValid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in the cascade: 0 for today, 1..4 for the
// buckets. Unknown periods return -1.
func (p Period) Index() int {
	for i, candidate := range Periods {
		if candidate == p {
			return i
		}
	}
	return -1
}

// String implements fmt.Stringer
func (p Period) String() string {
	return string(p)
}
