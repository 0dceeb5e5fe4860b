package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/npadigital/correspondence_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// wrapStoreError classifies a write failure. Check and not-null violations
// become a RemoteError keyed by the offending column or constraint so
// handlers can return field-level messages; everything else is wrapped as a
// plain RemoteError.
func wrapStoreError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23514", "23502": // check constraint, not-null
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			if field != "" {
				return &apperrors.RemoteError{
					Fields: map[string][]string{field: {pgErr.Message}},
					Err:    err,
				}
			}
		}
	}
	return apperrors.NewRemoteError(err)
}

// nullString converts an optional string to its sql representation.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
