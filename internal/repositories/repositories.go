package repositories

import (
	"context"
	"database/sql"

	"github.com/desertthunder/vibes/internal/shared"
)

// Querier is the subset of [*sql.DB] and [*sql.Tx] used by the repositories.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// base carries the connection and dialect shared by every repository.
type base struct {
	q       Querier
	dialect shared.Dialect
}

func (b base) rebind(query string) string {
	return shared.Rebind(b.dialect, query)
}

// nullString converts an optional string into a [sql.NullString] for inserts.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringPtr converts a scanned [sql.NullString] back to an optional string.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
