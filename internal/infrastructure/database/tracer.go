package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// QueryTracer logs every statement pgx executes. Development only.
type QueryTracer struct {
	logger zerolog.Logger
}

type traceStartKey struct{}

type traceStart struct {
	sql   string
	args  int
	start time.Time
}

// NewQueryTracer returns a pgx.QueryTracer writing to logger at debug level
func NewQueryTracer(logger zerolog.Logger) *QueryTracer {
	return &QueryTracer{logger: logger}
}

var _ pgx.QueryTracer = (*QueryTracer)(nil)

func (t *QueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, traceStart{
		sql:   data.SQL,
		args:  len(data.Args),
		start: time.Now(),
	})
}

func (t *QueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(traceStartKey{}).(traceStart)
	if !ok {
		return
	}

	event := t.logger.Debug()
	if data.Err != nil {
		event = t.logger.Warn().Err(data.Err)
	}

	event.
		Str("sql", started.sql).
		Int("args", started.args).
		Str("command", data.CommandTag.String()).
		Dur("took", time.Since(started.start)).
		Msg("[DATABASE] Query")
}
