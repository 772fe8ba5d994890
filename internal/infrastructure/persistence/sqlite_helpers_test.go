package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteDatabase opens an in-memory database with every planning table.
// A single connection keeps all sessions on the same in-memory schema.
func newSQLiteDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.ArticleModel{},
		&models.BOMLinkModel{},
		&models.AvailabilityModel{},
		&models.WatchlistEntryModel{},
	))

	return NewDatabaseFromGorm(db, time.Second)
}

func num(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
