package db

import (
	"context"
	"database/sql"
)

// Queryer is satisfied by *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NullString converts an optional string pointer into a driver value.
func NullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// NullInt64 converts an optional id into a driver value.
func NullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// NullFloat64 converts an optional quantity into a driver value.
func NullFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
