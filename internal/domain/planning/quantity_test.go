package planning

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoerceQuantity(t *testing.T) {
	str := "7.9"
	f := 3.5

	tests := []struct {
		name     string
		value    any
		fallback int64
		want     int64
	}{
		{"integer", 12, 0, 12},
		{"int64", int64(40), 0, 40},
		{"positive float truncates", 2.9, 0, 2},
		{"negative float truncates toward zero", -2.9, 0, -2},
		{"numeric text", "15", 0, 15},
		{"decimal text truncates", "10.99", 0, 10},
		{"text with spaces", "  4.2 ", 0, 4},
		{"exponent text", "1e3", 0, 1000},
		{"negative text", "-3.7", 0, -3},
		{"json number", json.Number("8.5"), 0, 8},
		{"decimal", decimal.RequireFromString("6.99"), 0, 6},
		{"raw number", Num("21.4"), 0, 21},
		{"null raw number", NullNumber, 9, 9},
		{"string pointer", &str, 0, 7},
		{"nil string pointer", (*string)(nil), 5, 5},
		{"float pointer", &f, 0, 3},
		{"nil", nil, 1, 1},
		{"empty text", "", 3, 3},
		{"garbage", "abc", 2, 2},
		{"NaN", math.NaN(), 4, 4},
		{"positive infinity", math.Inf(1), 4, 4},
		{"negative infinity", math.Inf(-1), 4, 4},
		{"overflow text", "1e30", 6, 6},
		{"true", true, 0, 1},
		{"false", false, 9, 0},
		{"unsupported type", struct{}{}, 11, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceQuantity(tt.value, tt.fallback))
		})
	}
}

func TestCoerceQuantity_TruncatesInsteadOfRounding(t *testing.T) {
	assert.Equal(t, int64(0), CoerceQuantity(0.99, 5))
	assert.Equal(t, int64(1), CoerceQuantity("1.999999", 5))
	assert.Equal(t, int64(0), CoerceQuantity(-0.5, 5))
}

func TestCoerceCoefficient(t *testing.T) {
	t.Run("parses valid coefficient", func(t *testing.T) {
		assert.Equal(t, int64(3), CoerceCoefficient(Num("3.6")))
	})

	t.Run("falls back to one", func(t *testing.T) {
		assert.Equal(t, int64(1), CoerceCoefficient(NullNumber))
		assert.Equal(t, int64(1), CoerceCoefficient(Num("n/a")))
	})

	t.Run("clamps negative to zero", func(t *testing.T) {
		assert.Equal(t, int64(0), CoerceCoefficient(Num("-4")))
	})

	t.Run("keeps zero", func(t *testing.T) {
		assert.Equal(t, int64(0), CoerceCoefficient(Num("0.4")))
	})
}

func TestQuantityArithmeticSaturates(t *testing.T) {
	const maxQ, minQ = int64(math.MaxInt64), int64(math.MinInt64)

	t.Run("scale", func(t *testing.T) {
		assert.Equal(t, int64(12), scaleQuantity(4, 3))
		assert.Equal(t, int64(0), scaleQuantity(0, 5))
		assert.Equal(t, int64(0), scaleQuantity(-2, 5))
		assert.Equal(t, maxQ, scaleQuantity(4, 3_000_000_000_000_000_000))
		assert.Equal(t, maxQ, scaleQuantity(maxQ, 2))
		assert.Equal(t, maxQ, scaleQuantity(maxQ, 1))
	})

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, int64(5), addQuantities(2, 3))
		assert.Equal(t, int64(-1), addQuantities(2, -3))
		assert.Equal(t, maxQ, addQuantities(maxQ, 1))
		assert.Equal(t, maxQ, addQuantities(maxQ/2+1, maxQ/2+1))
		assert.Equal(t, minQ, addQuantities(minQ, -1))
	})

	t.Run("sub", func(t *testing.T) {
		assert.Equal(t, int64(-5), subQuantities(10, 15))
		assert.Equal(t, -maxQ+10, subQuantities(10, maxQ))
		assert.Equal(t, minQ, subQuantities(-10, maxQ))
		assert.Equal(t, maxQ, subQuantities(0, minQ))
		assert.Equal(t, int64(-1)-minQ, subQuantities(-1, minQ))
	})
}
