package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGorm(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func query(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("logs errors", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Error)

		gl.Trace(ctx, time.Now(), query("SELECT 1", 0), errors.New("conn refused"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("ignores record not found", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Error)

		gl.Trace(ctx, time.Now(), query("SELECT 1", 0), gormlogger.ErrRecordNotFound)

		assert.Empty(t, recorded.All())
	})

	t.Run("warns on slow queries", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		gl.Trace(ctx, time.Now().Add(-50*time.Millisecond), query("SELECT pg_sleep(1)", 1), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "Slow SQL", logs[0].Message)
	})

	t.Run("debug logs normal queries at info level", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Info)

		gl.Trace(WithRequestID(ctx, "req-9"), time.Now(), query("SELECT * FROM products_availability", 3), nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
		assert.Equal(t, "req-9", logs[0].ContextMap()["request_id"])
		assert.Equal(t, int64(3), logs[0].ContextMap()["rows"])
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGorm(gormlogger.Silent)

		gl.Trace(ctx, time.Now(), query("SELECT 1", 0), errors.New("x"))

		assert.Empty(t, recorded.All())
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, recorded := newObservedGorm(gormlogger.Silent)

	loud := gl.LogMode(gormlogger.Info)
	loud.Info(context.Background(), "hello %s", "world")
	gl.Info(context.Background(), "suppressed")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "hello world", logs[0].Message)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}

func TestGormLoggerImplementsInterface(t *testing.T) {
	var _ gormlogger.Interface = (*GormLogger)(nil)
}
