package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_Trace(t *testing.T) {
	t.Run("errors are logged, record not found is ignored", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn)

		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), gormlogger.ErrRecordNotFound)

		assert.Equal(t, 1, logs.FilterMessage("SQL Error").Len())
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(time.Millisecond))

		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("UPDATE sections"), nil)

		entries := logs.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
			assert.Equal(t, "UPDATE sections", entries[0].ContextMap()["sql"])
		}
	})

	t.Run("sql text can be omitted", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Info, WithSQL(false))
		ctx := context.WithValue(context.Background(), RequestIDKey, "req-3")

		l.Trace(ctx, time.Now(), sqlFn("INSERT INTO quote_requests"), nil)

		fields := logs.All()[0].ContextMap()
		_, hasSQL := fields["sql"]
		assert.False(t, hasSQL)
		assert.Equal(t, "req-3", fields["request_id"])
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := NewGormLogger(zap.New(core), gormlogger.Silent)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))
		assert.Equal(t, 0, logs.Len())
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("unknown"))
}

var _ gormlogger.Interface = (*GormLogger)(nil)
