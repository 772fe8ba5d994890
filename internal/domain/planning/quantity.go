package planning

import (
	"encoding/json"
	"math"
	"math/bits"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
	minQuantity = decimal.NewFromInt(math.MinInt64)
)

// RawNumber is a numeric figure as read from an external source: numeric text
// that may be NULL. Coerce it with CoerceQuantity before doing arithmetic.
type RawNumber struct {
	Value string
	Valid bool
}

// Num returns a valid RawNumber holding s
func Num(s string) RawNumber {
	return RawNumber{Value: s, Valid: true}
}

// NullNumber is the absent figure
var NullNumber = RawNumber{}

// CoerceQuantity normalizes value into whole units: parse as a number, then
// truncate toward zero. Anything that does not parse (nil, NULL, garbage text,
// NaN, infinities, values outside int64) yields fallback. It never panics.
//
// Truncation, not rounding, is deliberate: 2.9 units per parent counts as 2.
func CoerceQuantity(value any, fallback int64) int64 {
	d, ok := toDecimal(value)
	if !ok {
		return fallback
	}
	d = d.Truncate(0)
	if d.GreaterThan(maxQuantity) || d.LessThan(minQuantity) {
		return fallback
	}
	return d.IntPart()
}

// CoerceCoefficient coerces a BOM coefficient. Unparseable coefficients count
// as 1 and negative ones as 0, so a component is never credited back.
func CoerceCoefficient(value any) int64 {
	c := CoerceQuantity(value, 1)
	if c < 0 {
		return 0
	}
	return c
}

// scaleQuantity multiplies two non-negative quantities, saturating at
// math.MaxInt64. A negative operand counts as 0.
func scaleQuantity(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(lo)
}

// addQuantities adds a and b, saturating at the int64 bounds so a huge
// requirement never wraps into a surplus.
func addQuantities(a, b int64) int64 {
	sum := a + b
	switch {
	case a > 0 && b > 0 && sum < 0:
		return math.MaxInt64
	case a < 0 && b < 0 && sum >= 0:
		return math.MinInt64
	}
	return sum
}

// subQuantities returns a - b, saturating at the int64 bounds
func subQuantities(a, b int64) int64 {
	if b == math.MinInt64 {
		if a >= 0 {
			return math.MaxInt64
		}
		return a - b
	}
	return addQuantities(a, -b)
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, false
	case RawNumber:
		if !v.Valid {
			return decimal.Zero, false
		}
		return parseDecimal(v.Value)
	case *RawNumber:
		if v == nil {
			return decimal.Zero, false
		}
		return toDecimal(*v)
	case string:
		return parseDecimal(v)
	case *string:
		if v == nil {
			return decimal.Zero, false
		}
		return parseDecimal(*v)
	case json.Number:
		return parseDecimal(v.String())
	case decimal.Decimal:
		return v, true
	case float64:
		return fromFloat(v)
	case *float64:
		if v == nil {
			return decimal.Zero, false
		}
		return fromFloat(*v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt32(v), true
	case int64:
		return decimal.NewFromInt(v), true
	case *int64:
		if v == nil {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(*v), true
	case uint:
		return fromUint(uint64(v))
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return fromUint(v)
	case bool:
		if v {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	default:
		return decimal.Zero, false
	}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromUint(u uint64) (decimal.Decimal, bool) {
	if u > math.MaxInt64 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(u)), true
}
