package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"roombooking/internal/domain"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// WithDateLock runs fn inside a transaction holding a transaction-scoped advisory
// lock for date. Repository calls made with the context given to fn use that
// transaction. The lock is released on commit or rollback.
func (r *eventRepository) WithDateLock(ctx context.Context, date domain.Date, fn func(ctx context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		if err := lockDate(ctx, tx, date); err != nil {
			return err
		}
		return fn(ctx)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := lockDate(ctx, tx, date); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func lockDate(ctx context.Context, tx *sql.Tx, date domain.Date) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "event_date:"+date.String()); err != nil {
		return fmt.Errorf("lock event date %s: %w", date, err)
	}
	return nil
}
