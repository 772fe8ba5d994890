package watchlist

import "context"

// Repository persists watchlist entries
type Repository interface {
	// List returns every entry ordered by position
	List(ctx context.Context) ([]Entry, error)

	// FindByPosition returns the entry at position or shared.ErrNotFound
	FindByPosition(ctx context.Context, position int) (*Entry, error)

	// Create inserts a new entry. Returns shared.ErrAlreadyExists when the
	// position is taken.
	Create(ctx context.Context, entry *Entry) error

	// Update overwrites code and description of an existing entry
	Update(ctx context.Context, entry *Entry) error

	// DeleteAndRenumber removes the entry at position and shifts every later
	// entry up by one, atomically. Returns shared.ErrNotFound when missing.
	DeleteAndRenumber(ctx context.Context, position int) error

	// Swap exchanges two positions atomically. Returns shared.ErrNotFound
	// when either position is empty.
	Swap(ctx context.Context, a, b int) error
}
