package db

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New creates a new PostgreSQL connection pool. Every connection registers the
// shopspring decimal codec so NUMERIC columns scan into decimal.Decimal.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}

	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("platform/db: new pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}

	return pool, nil
}

// TxOptions returns the options write transactions run with. ReadCommitted is
// required, not merely sufficient: a FOR UPDATE that waited on a row lock
// re-reads the latest committed row once the lock is granted, so a losing
// concurrent writer sees the updated stock instead of failing with a
// serialization error as it would under RepeatableRead.
func TxOptions() pgx.TxOptions {
	return pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
}

// WithTx runs fn inside a transaction. Combined with row locks this serialises
// writes per product without blocking unrelated rows. The transaction is
// rolled back unless fn returns nil and the commit succeeds.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, TxOptions())
	if err != nil {
		return fmt.Errorf("platform/db: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("platform/db: commit: %w", err)
	}
	return nil
}
