// Package nutrition resolves free-text food names into per-100g nutrient
// vectors using an external lookup provider.
package nutrition

import (
	"context"
	"errors"

	"github.com/bitelog/bitelog/internal/models"
)

// ErrNotResolved is the single signal for every way a lookup can fail:
// network error, timeout, empty result set, or no candidate carrying
// nutrient data. Callers are expected to absorb it and log the entry with
// nil nutrient fields; it must never turn into a request failure.
var ErrNotResolved = errors.New("nutrition: no usable nutrient data")

// Lookup is a successful resolution result.
type Lookup struct {
	// Name is the provider's display name for the matched product.
	// Empty when the provider returned nutrients but no usable name.
	Name string

	// Per100g is the nutrient vector normalized to 100 grams.
	Per100g models.Nutrition
}

// Resolver looks up nutrient data for a food name. Implementations wrap a
// specific external provider; the rest of the service depends only on this
// interface.
type Resolver interface {
	// Resolve returns per-100g nutrient data for the given food name, or
	// ErrNotResolved when nothing usable could be obtained.
	Resolve(ctx context.Context, name string) (*Lookup, error)

	// Ping reports whether the provider is reachable. Used by the health
	// endpoint only; a failing Ping never affects logging requests.
	Ping(ctx context.Context) error
}
