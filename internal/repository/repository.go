// Package repository provides the data access layer.
package repository

import (
	"context"
	"database/sql"
)

// DB is the subset of database operations repositories use.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ListFilter narrows roster list queries.
type ListFilter struct {
	Role     string `json:"role,omitempty"`
	MonthKey string `json:"month_key,omitempty"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

// DefaultListFilter returns the default filter.
func DefaultListFilter() ListFilter {
	return ListFilter{Limit: 20}
}

// WithRole sets the role filter.
func (f ListFilter) WithRole(role string) ListFilter {
	f.Role = role
	return f
}

// WithMonth sets the month filter.
func (f ListFilter) WithMonth(monthKey string) ListFilter {
	f.MonthKey = monthKey
	return f
}
