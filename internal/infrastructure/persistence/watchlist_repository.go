package persistence

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/domain/watchlist"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE of a unique key violation
const pgUniqueViolation = "23505"

// GormWatchlistRepository implements watchlist.Repository using GORM
type GormWatchlistRepository struct {
	db *Database
}

// NewGormWatchlistRepository creates a new GormWatchlistRepository
func NewGormWatchlistRepository(db *Database) *GormWatchlistRepository {
	return &GormWatchlistRepository{db: db}
}

// List returns every entry ordered by position
func (r *GormWatchlistRepository) List(ctx context.Context) ([]watchlist.Entry, error) {
	var rows []models.WatchlistEntryModel
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Order("position").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}

	entries := make([]watchlist.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].ToDomain())
	}
	return entries, nil
}

// FindByPosition returns the entry at position
func (r *GormWatchlistRepository) FindByPosition(ctx context.Context, position int) (*watchlist.Entry, error) {
	var row models.WatchlistEntryModel
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Where("position = ?", position).First(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, positionNotFound(position)
		}
		return nil, fmt.Errorf("failed to load watchlist position %d: %w", position, err)
	}
	entry := row.ToDomain()
	return &entry, nil
}

// Create inserts a new entry
func (r *GormWatchlistRepository) Create(ctx context.Context, entry *watchlist.Entry) error {
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Create(models.WatchlistEntryModelFromDomain(entry)).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists.WithMessage("Position %d is already taken", entry.Position)
		}
		return fmt.Errorf("failed to create watchlist entry: %w", err)
	}
	return nil
}

// Update overwrites code and description of the entry at entry.Position
func (r *GormWatchlistRepository) Update(ctx context.Context, entry *watchlist.Entry) error {
	var affected int64
	err := r.db.Conn(ctx, func(tx *gorm.DB) error {
		result := tx.Model(&models.WatchlistEntryModel{}).
			Where("position = ?", entry.Position).
			Updates(map[string]any{
				"code":        entry.Code,
				"description": entry.Description,
			})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("failed to update watchlist position %d: %w", entry.Position, err)
	}
	if affected == 0 {
		return positionNotFound(entry.Position)
	}
	return nil
}

// DeleteAndRenumber removes the entry at position and closes the gap.
// Later positions pass through negative values so the primary key is never
// violated while rows move, whatever order the database updates them in.
func (r *GormWatchlistRepository) DeleteAndRenumber(ctx context.Context, position int) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		result := tx.Where("position = ?", position).Delete(&models.WatchlistEntryModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete watchlist position %d: %w", position, result.Error)
		}
		if result.RowsAffected == 0 {
			return positionNotFound(position)
		}

		if err := tx.Model(&models.WatchlistEntryModel{}).
			Where("position > ?", position).
			Update("position", gorm.Expr("-(position - 1)")).Error; err != nil {
			return fmt.Errorf("failed to renumber watchlist: %w", err)
		}
		if err := tx.Model(&models.WatchlistEntryModel{}).
			Where("position < 0").
			Update("position", gorm.Expr("-position")).Error; err != nil {
			return fmt.Errorf("failed to renumber watchlist: %w", err)
		}
		return nil
	})
}

// Swap exchanges positions a and b through the parking slot
func (r *GormWatchlistRepository) Swap(ctx context.Context, a, b int) error {
	return r.db.Transaction(ctx, func(tx *gorm.DB) error {
		var found []int
		if err := tx.Model(&models.WatchlistEntryModel{}).
			Where("position IN ?", []int{a, b}).
			Pluck("position", &found).Error; err != nil {
			return fmt.Errorf("failed to load watchlist positions: %w", err)
		}
		for _, p := range []int{a, b} {
			if !slices.Contains(found, p) {
				return positionNotFound(p)
			}
		}

		moves := [][2]int{
			{a, watchlist.ParkingPosition},
			{b, a},
			{watchlist.ParkingPosition, b},
		}
		for _, m := range moves {
			if err := tx.Model(&models.WatchlistEntryModel{}).
				Where("position = ?", m[0]).
				Update("position", m[1]).Error; err != nil {
				return fmt.Errorf("failed to move watchlist position %d: %w", m[0], err)
			}
		}
		return nil
	})
}

func positionNotFound(position int) error {
	return shared.ErrNotFound.WithMessage("Watchlist position %d not found", position)
}

// isUniqueViolation recognizes duplicate keys from PostgreSQL directly and from
// any dialect that translates driver errors
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
