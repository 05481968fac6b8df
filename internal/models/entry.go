package models

// FoodLogEntry represents one logged intake event.
// Entries are append-only; the only mutation is bulk deletion.
type FoodLogEntry struct {
	// ID is the storage-assigned autoincrement identifier.
	ID int64 `json:"id"`

	// UserID optionally scopes the entry to a user. Empty means the single
	// implicit user; no authentication backs this field.
	UserID string `json:"user_id,omitempty"`

	// FoodName is the resolved display name, falling back to the
	// user-supplied input when nutrition lookup failed.
	FoodName string `json:"food_name"`

	// Quantity is the logged amount, interpreted against Unit.
	Quantity float64 `json:"quantity"`

	// Unit is the free-text unit token as supplied ("g", "kg", "piece", ...).
	Unit string `json:"unit"`

	// Nutrient values for the logged quantity. Either all are set
	// (successful resolution) or all are nil (resolution failed) — never a
	// partial mix.
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`

	// LoggedDate is the UTC calendar date (YYYY-MM-DD) the entry aggregates
	// under, derived from the server clock at creation.
	LoggedDate string `json:"logged_date"`

	// CreatedAt is the Unix timestamp when the entry was created.
	CreatedAt int64 `json:"created_at"`
}

// SetNutrition fills all nutrient fields from an absolute (already scaled)
// vector, keeping the all-or-nothing invariant in one place.
func (e *FoodLogEntry) SetNutrition(n Nutrition) {
	e.Calories = ptr(n.Calories)
	e.Protein = ptr(n.Protein)
	e.Carbs = ptr(n.Carbs)
	e.Fat = ptr(n.Fat)
	e.Fiber = ptr(n.Fiber)
	e.Sugar = ptr(n.Sugar)
	e.Sodium = ptr(n.Sodium)
}

// Resolved reports whether the entry carries nutrient values.
func (e *FoodLogEntry) Resolved() bool {
	return e.Calories != nil
}

func ptr(v float64) *float64 { return &v }
