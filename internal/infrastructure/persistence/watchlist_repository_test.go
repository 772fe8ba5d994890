package persistence

import (
	"context"
	"testing"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/domain/watchlist"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedWatchlist(t *testing.T, repo *GormWatchlistRepository, codes ...string) {
	t.Helper()
	for i, code := range codes {
		entry, err := watchlist.NewEntry(i+1, code, "Article "+code)
		require.NoError(t, err)
		require.NoError(t, repo.Create(context.Background(), entry))
	}
}

func listCodes(t *testing.T, repo *GormWatchlistRepository) ([]int, []string) {
	t.Helper()
	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	positions := make([]int, 0, len(entries))
	codes := make([]string, 0, len(entries))
	for _, e := range entries {
		positions = append(positions, e.Position)
		codes = append(codes, e.Code)
	}
	return positions, codes
}

func TestGormWatchlistRepository_CreateAndList(t *testing.T) {
	repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		entries, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	seedWatchlist(t, repo, "A", "B", "C")

	t.Run("lists in position order", func(t *testing.T) {
		positions, codes := listCodes(t, repo)
		assert.Equal(t, []int{1, 2, 3}, positions)
		assert.Equal(t, []string{"A", "B", "C"}, codes)
	})

	t.Run("duplicate position is rejected", func(t *testing.T) {
		err := repo.Create(ctx, &watchlist.Entry{Position: 2, Code: "X", Description: "dup"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("find by position", func(t *testing.T) {
		entry, err := repo.FindByPosition(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "B", entry.Code)
		assert.Equal(t, "Article B", entry.Description)

		_, err = repo.FindByPosition(ctx, 99)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormWatchlistRepository_Update(t *testing.T) {
	repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
	ctx := context.Background()
	seedWatchlist(t, repo, "A")

	require.NoError(t, repo.Update(ctx, &watchlist.Entry{Position: 1, Code: "Z", Description: "Zeta"}))
	entry, err := repo.FindByPosition(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Z", entry.Code)
	assert.Equal(t, "Zeta", entry.Description)

	err = repo.Update(ctx, &watchlist.Entry{Position: 5, Code: "Q", Description: "Q"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormWatchlistRepository_DeleteAndRenumber(t *testing.T) {
	t.Run("closes the gap", func(t *testing.T) {
		repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
		seedWatchlist(t, repo, "A", "B", "C", "D")

		require.NoError(t, repo.DeleteAndRenumber(context.Background(), 2))

		positions, codes := listCodes(t, repo)
		assert.Equal(t, []int{1, 2, 3}, positions)
		assert.Equal(t, []string{"A", "C", "D"}, codes)
	})

	t.Run("deleting the last entry leaves others alone", func(t *testing.T) {
		repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
		seedWatchlist(t, repo, "A", "B")

		require.NoError(t, repo.DeleteAndRenumber(context.Background(), 2))

		positions, codes := listCodes(t, repo)
		assert.Equal(t, []int{1}, positions)
		assert.Equal(t, []string{"A"}, codes)
	})

	t.Run("missing position", func(t *testing.T) {
		repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
		seedWatchlist(t, repo, "A")

		err := repo.DeleteAndRenumber(context.Background(), 3)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, codes := listCodes(t, repo)
		assert.Equal(t, []string{"A"}, codes)
	})
}

func TestGormWatchlistRepository_Swap(t *testing.T) {
	t.Run("exchanges two entries", func(t *testing.T) {
		repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
		seedWatchlist(t, repo, "A", "B", "C")

		require.NoError(t, repo.Swap(context.Background(), 1, 3))

		positions, codes := listCodes(t, repo)
		assert.Equal(t, []int{1, 2, 3}, positions)
		assert.Equal(t, []string{"C", "B", "A"}, codes)
	})

	t.Run("missing side leaves the list untouched", func(t *testing.T) {
		repo := NewGormWatchlistRepository(newSQLiteDatabase(t))
		seedWatchlist(t, repo, "A", "B")

		err := repo.Swap(context.Background(), 1, 7)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, codes := listCodes(t, repo)
		assert.Equal(t, []string{"A", "B"}, codes)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(assert.AnError))
}
