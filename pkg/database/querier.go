package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx operations shared by the pool and an open
// transaction. Repository read paths run against the pool; clear-and-rebuild
// write paths take a Querier so the whole rebuild shares one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is what repositories depend on: pool-level queries plus the
// ability to scope a function to a single transaction.
type Store interface {
	Querier
	WithinTx(ctx context.Context, fn func(q Querier) error) error
}

var _ Store = (*DB)(nil)

// WithinTx runs fn inside a single transaction. Any error from fn rolls
// the transaction back; the transaction commits only if fn returns nil.
func (db *DB) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback on defer is best-effort

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
