package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atedres/boldnet-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestAfterQuery_SlowAndFailed(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	p := NewDBTracingPlugin(config.TelemetryConfig{DBSlowQueryThresh: 10 * time.Millisecond}, "", zap.NewNop())
	assert.Equal(t, "postgresql", p.dbSystem)

	ctx, span := tp.Tracer("test").Start(context.Background(), "gorm.Update")
	ctx = context.WithValue(ctx, queryStartTimeKey, time.Now().Add(-time.Second))
	db := &gorm.DB{
		Config:    &gorm.Config{},
		Statement: &gorm.Statement{Context: ctx, Table: "sections"},
		Error:     errors.New("deadlock detected"),
	}
	db.Statement.DB = db
	db.RowsAffected = 2
	p.afterQuery(db)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "true", attrs["db.slow_query"])
	assert.Equal(t, "sections", attrs["db.sql.table"])
	assert.Equal(t, "2", attrs["db.rows_affected"])
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestAfterQuery_RecordNotFoundIsNotAnError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer tp.Shutdown(context.Background())

	p := NewDBTracingPlugin(config.TelemetryConfig{}, "sqlite", zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "gorm.Query")
	db := &gorm.DB{
		Config:    &gorm.Config{},
		Statement: &gorm.Statement{Context: ctx},
		Error:     gorm.ErrRecordNotFound,
	}
	db.Statement.DB = db
	p.afterQuery(db)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}
