// Package service orchestrates food logging: validation, nutrition
// resolution, quantity scaling, persistence, and daily aggregation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bitelog/bitelog/internal/calculator"
	"github.com/bitelog/bitelog/internal/mealtext"
	"github.com/bitelog/bitelog/internal/models"
	"github.com/bitelog/bitelog/internal/nutrition"
	"github.com/bitelog/bitelog/internal/storage"
)

// DefaultListLimit caps entry listings when the client does not ask for a
// specific limit.
const DefaultListLimit = 50

// healthProbeTimeout bounds each reachability check on the health endpoint.
const healthProbeTimeout = 2 * time.Second

var resolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "bitelog_resolution_failures_total",
	Help: "Number of food logs stored without nutrient data because lookup failed.",
})

// LogService implements the food-log operations behind the HTTP surface.
type LogService struct {
	store    storage.Store
	resolver nutrition.Resolver
	parser   mealtext.Parser
}

// NewLogService creates a LogService with the given collaborators.
func NewLogService(store storage.Store, resolver nutrition.Resolver, parser mealtext.Parser) *LogService {
	return &LogService{store: store, resolver: resolver, parser: parser}
}

// LogRequest is one food-logging request.
type LogRequest struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	UserID   string  `json:"user_id,omitempty"`
}

// validate fails fast on malformed input, before any resolution work.
func (r LogRequest) validate() error {
	var bad []string
	if r.FoodName == "" {
		bad = append(bad, "food_name")
	}
	if r.Quantity <= 0 || math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) {
		bad = append(bad, "quantity")
	}
	if r.Unit == "" {
		bad = append(bad, "unit")
	}
	if len(bad) > 0 {
		return newValidationError(bad...)
	}
	return nil
}

// LogFood validates the request, resolves and scales nutrient data, and
// persists the entry. A failed resolution degrades the entry to nil
// nutrient fields; it never fails the request. Only validation and storage
// errors surface to the caller.
func (s *LogService) LogFood(ctx context.Context, req LogRequest) (*models.FoodLogEntry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	entry := &models.FoodLogEntry{
		UserID:   req.UserID,
		FoodName: req.FoodName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	}

	lookup, err := s.resolver.Resolve(ctx, req.FoodName)
	switch {
	case err != nil:
		// Every lookup failure collapses here; the entry is stored with
		// nil nutrients so the user can still log the meal.
		if !errors.Is(err, nutrition.ErrNotResolved) {
			err = errors.Join(nutrition.ErrNotResolved, err)
		}
		resolutionFailures.Inc()
		slog.Warn("Nutrition resolution failed, storing entry without nutrients",
			"food", req.FoodName, "error", err)
	default:
		scaled, scaleErr := calculator.Scale(lookup.Per100g, req.Quantity, req.Unit)
		if scaleErr != nil {
			// Quantity was validated above; this cannot happen.
			return nil, newValidationError("quantity")
		}
		entry.SetNutrition(scaled)
		if lookup.Name != "" {
			entry.FoodName = lookup.Name
		}
	}

	if err := s.store.CreateEntry(ctx, entry); err != nil {
		slog.Error("CreateEntry failed", "food", entry.FoodName, "error", err)
		return nil, storageErr("saving entry", err)
	}

	slog.Info("Food logged",
		"id", entry.ID,
		"food", entry.FoodName,
		"quantity", entry.Quantity,
		"unit", entry.Unit,
		"resolved", entry.Resolved(),
	)
	return entry, nil
}

// LogText parses a free-form meal description and logs each extracted item.
// Returns a ValidationError when nothing loggable was found.
func (s *LogService) LogText(ctx context.Context, text, userID string) ([]*models.FoodLogEntry, error) {
	items := s.parser.Parse(text)
	if len(items) == 0 {
		return nil, newValidationError("text")
	}

	entries := make([]*models.FoodLogEntry, 0, len(items))
	for _, item := range items {
		entry, err := s.LogFood(ctx, LogRequest{
			FoodName: item.FoodName,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			UserID:   userID,
		})
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListEntries returns recent entries, most recent first, optionally
// filtered by date and user.
func (s *LogService) ListEntries(ctx context.Context, date, userID string, limit int) ([]models.FoodLogEntry, error) {
	if date != "" {
		if err := validateDate(date); err != nil {
			return nil, err
		}
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	entries, err := s.store.ListEntries(ctx, storage.ListFilter{
		Date:   date,
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		slog.Error("ListEntries failed", "date", date, "error", err)
		return nil, storageErr("listing entries", err)
	}
	return entries, nil
}

// DailySummary aggregates one calendar date's entries into per-nutrient
// totals. Date defaults to today (UTC server clock). A day with no entries
// yields zero totals, not an error.
func (s *LogService) DailySummary(ctx context.Context, date, userID string) (*models.DailySummary, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if err := validateDate(date); err != nil {
		return nil, err
	}

	entries, err := s.store.ListEntries(ctx, storage.ListFilter{
		Date:   date,
		UserID: userID,
	})
	if err != nil {
		slog.Error("DailySummary failed", "date", date, "error", err)
		return nil, storageErr("loading entries", err)
	}

	if entries == nil {
		entries = []models.FoodLogEntry{}
	}
	return &models.DailySummary{
		Date:       date,
		Totals:     calculator.Summarize(entries),
		EntryCount: len(entries),
		Entries:    entries,
	}, nil
}

// ClearEntries deletes all entries and returns the count. Backs both the
// operator endpoint and the scheduled purge job.
func (s *LogService) ClearEntries(ctx context.Context) (int64, error) {
	count, err := s.store.DeleteAllEntries(ctx)
	if err != nil {
		slog.Error("ClearEntries failed", "error", err)
		return 0, storageErr("clearing entries", err)
	}
	slog.Info("Entries cleared", "count", count)
	return count, nil
}

// HealthStatus reports each collaborator's reachability independently.
type HealthStatus struct {
	Storage bool `json:"storage"`
	Lookup  bool `json:"lookup"`
}

// Health probes storage and the lookup provider. A degraded lookup never
// marks the service unhealthy; callers decide status codes from the
// Storage flag alone.
func (s *LogService) Health(ctx context.Context) HealthStatus {
	var status HealthStatus

	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if err := s.store.Ping(probeCtx); err != nil {
		slog.Warn("Storage health probe failed", "error", err)
	} else {
		status.Storage = true
	}

	probeCtx, cancel = context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()
	if err := s.resolver.Ping(probeCtx); err != nil {
		slog.Warn("Lookup health probe failed", "error", err)
	} else {
		status.Lookup = true
	}

	return status
}

func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return newValidationError("date")
	}
	return nil
}
