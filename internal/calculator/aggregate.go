package calculator

import "github.com/bitelog/bitelog/internal/models"

// Summarize sums the nutrient columns across entries. Entries whose
// resolution failed (nil nutrient fields) contribute zero to every total but
// still count toward the caller's entry count. An empty slice yields all
// zeros; it is not an error.
func Summarize(entries []models.FoodLogEntry) models.Totals {
	var totals models.Totals
	for _, e := range entries {
		totals.Calories += deref(e.Calories)
		totals.Protein += deref(e.Protein)
		totals.Carbs += deref(e.Carbs)
		totals.Fat += deref(e.Fat)
		totals.Fiber += deref(e.Fiber)
		totals.Sugar += deref(e.Sugar)
		totals.Sodium += deref(e.Sodium)
	}
	return totals
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
