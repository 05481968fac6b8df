// Package calculator provides the pure nutrition arithmetic: converting a
// logged (quantity, unit) pair into a scale factor against the 100g
// reference, scaling per-100g nutrient vectors, and summing entries into
// daily totals. No I/O happens here.
package calculator

import (
	"errors"
	"math"
	"strings"

	"github.com/bitelog/bitelog/internal/models"
)

// ErrInvalidQuantity is returned for zero, negative, or non-finite
// quantities. Validation happens here so callers can fail fast before any
// network lookup is attempted.
var ErrInvalidQuantity = errors.New("quantity must be a positive finite number")

// Grams per unit, against the 100g reference.
const (
	gramsPerKilogram = 1000.0
	gramsPerPound    = 453.592
	gramsPerOunce    = 28.35
	gramsPerLiter    = 1000.0 // density ~1 g/ml assumed
	referenceGrams   = 100.0
)

// ScaleFactor converts a user-supplied quantity and free-text unit into a
// dimensionless multiplier against the 100g reference. Matching is
// case-insensitive substring match in priority order; anything unrecognized
// ("piece", "serving", "cup", ...) is treated as a count of 100g-equivalent
// servings, a documented approximation.
func ScaleFactor(quantity float64, unit string) (float64, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, ErrInvalidQuantity
	}

	u := strings.ToLower(strings.TrimSpace(unit))
	switch {
	case strings.Contains(u, "kg") || strings.Contains(u, "kilogram"):
		return quantity * gramsPerKilogram / referenceGrams, nil
	case strings.Contains(u, "lb") || strings.Contains(u, "pound"):
		return quantity * gramsPerPound / referenceGrams, nil
	case strings.Contains(u, "oz") || strings.Contains(u, "ounce"):
		return quantity * gramsPerOunce / referenceGrams, nil
	// Exact "l" so "ml" and "slice" don't land in the whole-liter case.
	case u == "l" || strings.Contains(u, "liter") || strings.Contains(u, "litre"):
		return quantity * gramsPerLiter / referenceGrams, nil
	case strings.Contains(u, "ml"):
		return quantity / referenceGrams, nil
	// Exact "g" so "serving" doesn't land in the default mass case.
	case u == "g" || strings.Contains(u, "gram"):
		return quantity / referenceGrams, nil
	default:
		return quantity, nil
	}
}

// Scale multiplies a per-100g nutrient vector by the scale factor for
// (quantity, unit), rounding each value to 2 decimal places. Deterministic:
// same inputs always produce the same output.
func Scale(per100g models.Nutrition, quantity float64, unit string) (models.Nutrition, error) {
	factor, err := ScaleFactor(quantity, unit)
	if err != nil {
		return models.Nutrition{}, err
	}
	return models.Nutrition{
		Calories: round2(per100g.Calories * factor),
		Protein:  round2(per100g.Protein * factor),
		Carbs:    round2(per100g.Carbs * factor),
		Fat:      round2(per100g.Fat * factor),
		Fiber:    round2(per100g.Fiber * factor),
		Sugar:    round2(per100g.Sugar * factor),
		Sodium:   round2(per100g.Sodium * factor),
	}, nil
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
