package calculator

import (
	"math"
	"testing"

	"github.com/bitelog/bitelog/internal/models"
)

func fptr(v float64) *float64 { return &v }

func totalsNear(t *testing.T, got, want models.Totals) {
	t.Helper()
	fields := []struct {
		name      string
		got, want float64
	}{
		{"calories", got.Calories, want.Calories},
		{"protein", got.Protein, want.Protein},
		{"carbs", got.Carbs, want.Carbs},
		{"fat", got.Fat, want.Fat},
		{"fiber", got.Fiber, want.Fiber},
		{"sugar", got.Sugar, want.Sugar},
		{"sodium", got.Sodium, want.Sodium},
	}
	for _, f := range fields {
		if math.Abs(f.got-f.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", f.name, f.got, f.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.FoodLogEntry
		want    models.Totals
	}{
		{
			name:    "empty day is all zeros",
			entries: nil,
			want:    models.Totals{},
		},
		{
			name: "nil nutrients contribute zero",
			entries: []models.FoodLogEntry{
				{FoodName: "mystery stew"},
				{FoodName: "banana", Calories: fptr(100), Protein: fptr(1.1), Carbs: fptr(23), Fat: fptr(0.3)},
			},
			want: models.Totals{Calories: 100, Protein: 1.1, Carbs: 23, Fat: 0.3},
		},
		{
			name: "multiple entries sum per column",
			entries: []models.FoodLogEntry{
				{Calories: fptr(106.8), Protein: fptr(1.32), Carbs: fptr(27.6), Fat: fptr(0.36), Fiber: fptr(3.1), Sugar: fptr(14.4), Sodium: fptr(0.01)},
				{Calories: fptr(200), Protein: fptr(10), Carbs: fptr(5), Fat: fptr(12), Fiber: fptr(0), Sugar: fptr(1), Sodium: fptr(0.5)},
			},
			want: models.Totals{Calories: 306.8, Protein: 11.32, Carbs: 32.6, Fat: 12.36, Fiber: 3.1, Sugar: 15.4, Sodium: 0.51},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totalsNear(t, Summarize(tt.entries), tt.want)
		})
	}
}
