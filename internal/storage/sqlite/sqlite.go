// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/bitelog/bitelog/internal/models"
	"github.com/bitelog/bitelog/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	// now returns the current time; overridable in tests.
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks database reachability.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateEntry persists a new entry, assigning its id, logged date, and
// creation timestamp. The logged date is the UTC calendar date of the
// server clock.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.FoodLogEntry) error {
	now := s.now().UTC()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = now.Unix()
	}
	if entry.LoggedDate == "" {
		entry.LoggedDate = now.Format("2006-01-02")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries
			(user_id, food_name, quantity, unit, calories, protein, carbs, fat, fiber, sugar, sodium, logged_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.FoodName, entry.Quantity, entry.Unit,
		nullable(entry.Calories), nullable(entry.Protein), nullable(entry.Carbs),
		nullable(entry.Fat), nullable(entry.Fiber), nullable(entry.Sugar), nullable(entry.Sodium),
		entry.LoggedDate, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	entry.ID = id

	return nil
}

// ListEntries returns entries matching the filter, most recent first.
func (s *SQLiteStore) ListEntries(ctx context.Context, filter storage.ListFilter) ([]models.FoodLogEntry, error) {
	query := `SELECT id, user_id, food_name, quantity, unit,
		calories, protein, carbs, fat, fiber, sugar, sodium,
		logged_date, created_at FROM entries`

	var conditions []string
	var args []any
	if filter.Date != "" {
		conditions = append(conditions, "logged_date = ?")
		args = append(args, filter.Date)
	}
	if filter.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.FoodLogEntry
	for rows.Next() {
		var e models.FoodLogEntry
		var calories, protein, carbs, fat, fiber, sugar, sodium sql.NullFloat64
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.FoodName, &e.Quantity, &e.Unit,
			&calories, &protein, &carbs, &fat, &fiber, &sugar, &sodium,
			&e.LoggedDate, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Calories = floatPtr(calories)
		e.Protein = floatPtr(protein)
		e.Carbs = floatPtr(carbs)
		e.Fat = floatPtr(fat)
		e.Fiber = floatPtr(fiber)
		e.Sugar = floatPtr(sugar)
		e.Sodium = floatPtr(sodium)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// DeleteAllEntries removes every entry and returns the deleted count.
func (s *SQLiteStore) DeleteAllEntries(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	if err != nil {
		return 0, fmt.Errorf("failed to delete entries: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries: %w", err)
	}
	return count, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
