package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"github.com/alessandrv/FEC-mrp/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultAcquireTimeout = 5 * time.Second

// Database holds the shared connection pool and provides methods for database operations
type Database struct {
	DB             *gorm.DB
	acquireTimeout time.Duration
}

// NewDatabase creates a new database connection with the given configuration.
// A nil gormLogger silences statement logging.
func NewDatabase(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	database := NewDatabaseFromGorm(db, cfg.AcquireTimeout)
	if err := database.Ping(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// NewDatabaseFromGorm wraps an already opened GORM connection
func NewDatabaseFromGorm(db *gorm.DB, acquireTimeout time.Duration) *Database {
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}
	return &Database{DB: db, acquireTimeout: acquireTimeout}
}

// AcquireTimeout returns how long a caller may wait for a pooled connection
func (d *Database) AcquireTimeout() time.Duration {
	return d.acquireTimeout
}

// Conn borrows one connection from the pool and runs fn on a session bound
// to it. Waiting for the connection is bounded by the acquire timeout and by
// ctx, whichever ends first. Statements issued by fn run under ctx.
func (d *Database) Conn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	acquireCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	conn, err := sqlDB.Conn(acquireCtx)
	cancel()
	if err != nil {
		return acquireError(ctx, err)
	}
	defer conn.Close()

	tx := d.DB.WithContext(ctx)
	tx.Statement.ConnPool = conn
	return fn(tx)
}

// Transaction executes fn within a database transaction on a borrowed connection
func (d *Database) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.Conn(ctx, func(tx *gorm.DB) error {
		return tx.Transaction(fn)
	})
}

// Ping checks that a connection can be borrowed and is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Stats returns database connection pool statistics and an error if unable to retrieve
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxIdleTimeClosed  int64
	MaxLifetimeClosed  int64
}

// acquireError classifies a failed borrow. Running out of the acquire budget
// while the caller still has time left means the pool is saturated.
func acquireError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return shared.ErrTimeout.Wrap(err)
		}
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return shared.ErrTimeout.WithMessage("Timed out waiting for a database connection").Wrap(err)
	default:
		return shared.ErrUpstreamData.Wrap(err)
	}
}
