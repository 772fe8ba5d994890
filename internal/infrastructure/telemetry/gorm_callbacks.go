package telemetry

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type queryStartKey struct{}

// markQueryStart stores the statement start time in the statement context
func markQueryStart(db *gorm.DB) {
	if db.Statement.Context == nil {
		db.Statement.Context = context.Background()
	}
	db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
}

// queryElapsed returns the time since markQueryStart ran for this statement
func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartKey{}).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// registerAround registers before and after on every GORM processor. After
// hooks run ahead of otelgorm's own after hook so the span is still open.
// The after hook receives the SQL verb of the processor, or "" for row and
// raw statements.
func registerAround(db *gorm.DB, name string, before func(*gorm.DB), after func(db *gorm.DB, operation string)) error {
	cb := db.Callback()
	chains := []struct {
		kind      string
		operation string
		before    func() error
		after     func(fn func(*gorm.DB)) error
	}{
		{
			kind: "create", operation: "INSERT",
			before: func() error { return cb.Create().Before("gorm:create").Register(name+":before_create", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Create().After("gorm:create").Before("otel:after:create").Register(name+":after_create", fn)
			},
		},
		{
			kind: "query", operation: "SELECT",
			before: func() error { return cb.Query().Before("gorm:query").Register(name+":before_query", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Query().After("gorm:query").Before("otel:after:query").Register(name+":after_query", fn)
			},
		},
		{
			kind: "update", operation: "UPDATE",
			before: func() error { return cb.Update().Before("gorm:update").Register(name+":before_update", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Update().After("gorm:update").Before("otel:after:update").Register(name+":after_update", fn)
			},
		},
		{
			kind: "delete", operation: "DELETE",
			before: func() error { return cb.Delete().Before("gorm:delete").Register(name+":before_delete", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register(name+":after_delete", fn)
			},
		},
		{
			kind: "row",
			before: func() error { return cb.Row().Before("gorm:row").Register(name+":before_row", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Row().After("gorm:row").Before("otel:after:row").Register(name+":after_row", fn)
			},
		},
		{
			kind: "raw",
			before: func() error { return cb.Raw().Before("gorm:raw").Register(name+":before_raw", before) },
			after: func(fn func(*gorm.DB)) error {
				return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register(name+":after_raw", fn)
			},
		},
	}

	for _, c := range chains {
		operation := c.operation
		if err := c.before(); err != nil {
			return err
		}
		if err := c.after(func(db *gorm.DB) { after(db, operation) }); err != nil {
			return err
		}
	}
	return nil
}
