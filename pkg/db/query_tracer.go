package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/metrics"
)

type queryStartKey struct{}
type querySQLKey struct{}

// QueryTracer records query durations and warns on slow queries.
type QueryTracer struct {
	logger        *zap.Logger
	slowThreshold time.Duration
}

func NewQueryTracer(logger *zap.Logger, slowThreshold time.Duration) *QueryTracer {
	if slowThreshold == 0 {
		slowThreshold = 100 * time.Millisecond
	}
	return &QueryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (t *QueryTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	ctx = context.WithValue(ctx, queryStartKey{}, time.Now())
	ctx = context.WithValue(ctx, querySQLKey{}, data.SQL)
	return ctx
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	startTime, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}

	duration := time.Since(startTime)
	metrics.RecordDBQueryDuration(data.CommandTag.String(), duration)

	if duration > t.slowThreshold {
		sql, _ := ctx.Value(querySQLKey{}).(string)
		if len(sql) > 200 {
			sql = sql[:200] + "..."
		}
		t.logger.Warn("slow-query",
			zap.String("sql", sql),
			zap.Duration("took", duration),
			zap.String("command_tag", data.CommandTag.String()),
		)
	}
}
