package postgres

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	pgxuuid "github.com/jackc/pgx-gofrs-uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
)

type PoolConfigOption func(cfg *pgxpool.Config)

func WithTracer(tracer pgx.QueryTracer) PoolConfigOption {
	return func(cfg *pgxpool.Config) {
		cfg.ConnConfig.Tracer = tracer
	}
}

// InitWithURL creates a connection pool and checks the connection.
func InitWithURL(ctx context.Context, url string, opts ...PoolConfigOption) (
	*pgxpool.Pool, error,
) {
	dbConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	dbConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}
	for _, opt := range opts {
		opt(dbConfig)
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create the database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to get a valid database connection: %w", err)
	}
	return pool, nil
}

// NewOtlpTracer creates spans for each query
func NewOtlpTracer() pgx.QueryTracer {
	return otelpgx.NewTracer()
}

// NewMyTracer logs queries on level
func NewMyTracer(l *log.Logger, level log.Level) pgx.QueryTracer {
	return &myQueryTracer{log: l, level: level}
}

type myQueryTracer struct {
	log   *log.Logger
	level log.Level
}

func (tracer *myQueryTracer) logAt(msg string, fields ...log.Field) {
	switch tracer.level {
	case log.DebugLevel:
		tracer.log.Debug(msg, fields...)
	case log.InfoLevel:
		tracer.log.Info(msg, fields...)
	default:
		tracer.log.Warn(msg, fields...)
	}
}

func (tracer *myQueryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	tracer.logAt("Executing", log.String("sql", data.SQL), log.Any("args", data.Args))
	return ctx
}

//nolint:whitespace // can't make the linters happy
func (tracer *myQueryTracer) TraceQueryEnd(
	ctx context.Context,
	conn *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	if data.Err != nil {
		tracer.log.Warn("query failed", log.ErrorField(data.Err))
	}
}
