// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/bitelog/bitelog/internal/models"
)

// ListFilter narrows an entry listing. Zero values mean "no filter".
type ListFilter struct {
	// Date restricts results to one logged date (YYYY-MM-DD).
	Date string

	// UserID restricts results to one user's entries.
	UserID string

	// Limit caps the number of rows returned; 0 means no cap.
	Limit int
}

// Store defines the interface for food-log persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateEntry persists a new entry. The entry's ID, LoggedDate, and
	// CreatedAt fields are populated by the store.
	CreateEntry(ctx context.Context, entry *models.FoodLogEntry) error

	// ListEntries returns entries matching the filter, most recent first.
	ListEntries(ctx context.Context, filter ListFilter) ([]models.FoodLogEntry, error)

	// DeleteAllEntries removes every entry and returns how many were
	// deleted. Naturally idempotent.
	DeleteAllEntries(ctx context.Context) (int64, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
