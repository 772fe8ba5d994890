package watchlist

import (
	"strings"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
)

// ParkingPosition is the temporary slot used while swapping two positions,
// so the unique position key is never violated mid-transaction.
const ParkingPosition = 2147483647

// Entry is one article pinned on the availability dashboard.
// Position is the 1-based display slot and the natural key.
type Entry struct {
	Position    int
	Code        string
	Description string
}

// NewEntry creates a validated watchlist entry
func NewEntry(position int, code, description string) (*Entry, error) {
	e := &Entry{
		Position:    position,
		Code:        strings.TrimSpace(code),
		Description: strings.TrimSpace(description),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that every field is set
func (e *Entry) Validate() error {
	if e.Position <= 0 || e.Position >= ParkingPosition {
		return shared.ErrValidation.WithMessage("Position must be a positive integer")
	}
	if e.Code == "" {
		return shared.ErrValidation.WithMessage("Code is required")
	}
	if e.Description == "" {
		return shared.ErrValidation.WithMessage("Description is required")
	}
	return nil
}

// Relabel replaces the code and description kept at this position
func (e *Entry) Relabel(code, description string) error {
	next := Entry{Position: e.Position, Code: strings.TrimSpace(code), Description: strings.TrimSpace(description)}
	if err := next.Validate(); err != nil {
		return err
	}
	*e = next
	return nil
}

// ValidateSwap checks a pair of positions can be exchanged
func ValidateSwap(a, b int) error {
	if a <= 0 || b <= 0 || a >= ParkingPosition || b >= ParkingPosition {
		return shared.ErrValidation.WithMessage("Positions must be positive integers")
	}
	if a == b {
		return shared.ErrValidation.WithMessage("Positions to swap must differ")
	}
	return nil
}
