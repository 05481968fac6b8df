package models

// Nutrition is a nutrient vector. The resolver produces it normalized to a
// 100-gram reference mass (the lookup database's native granularity); the
// calculator scales it to absolute values for a logged quantity. It is
// ephemeral and never persisted as-is.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Totals holds per-nutrient sums across a set of entries.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// DailySummary aggregates one calendar date's entries.
type DailySummary struct {
	Date       string         `json:"date"`
	Totals     Totals         `json:"totals"`
	EntryCount int            `json:"entry_count"`
	Entries    []FoodLogEntry `json:"entries"`
}
