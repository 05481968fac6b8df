// Package mealtext extracts (food, quantity, unit) triples from free-form
// meal descriptions like "2 cups rice and 120g chicken". It is best-effort
// heuristic glue, deliberately independent of nutrition resolution.
package mealtext

import (
	"regexp"
	"strconv"
	"strings"
)

// Item is one food reference extracted from free text.
type Item struct {
	FoodName string
	Quantity float64
	Unit     string
}

// Parser extracts loggable items from free text.
type Parser interface {
	// Parse returns the items found in text, possibly none.
	Parse(text string) []Item
}

// Ensure RegexParser implements Parser
var _ Parser = (*RegexParser)(nil)

// RegexParser is a regex-based Parser. Segments without a leading number
// are skipped rather than guessed at.
type RegexParser struct{}

// NewRegexParser creates a regex-based parser.
func NewRegexParser() *RegexParser {
	return &RegexParser{}
}

// segmentPattern splits a description into item segments.
var segmentPattern = regexp.MustCompile(`(?i)\s*(?:,|;|\band\b|\bwith\b|\bplus\b)\s*`)

// itemPattern matches "<number> [word] [of] <food>" within one segment.
var itemPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:[.,]\d+)?)\s*([a-zA-Z]+)?\s+(?:of\s+)?(.+?)\s*$`)

// knownUnits are the tokens treated as a unit when they directly follow the
// number. Any other word belongs to the food name and the quantity becomes
// a serving count.
var knownUnits = map[string]bool{
	"g": true, "gram": true, "grams": true,
	"kg": true, "kilogram": true, "kilograms": true,
	"oz": true, "ounce": true, "ounces": true,
	"lb": true, "lbs": true, "pound": true, "pounds": true,
	"ml": true, "l": true,
	"liter": true, "liters": true, "litre": true, "litres": true,
	"cup": true, "cups": true,
	"tbsp": true, "tsp": true,
	"slice": true, "slices": true,
	"piece": true, "pieces": true,
	"serving": true, "servings": true,
	"bowl": true, "bowls": true,
	"glass": true, "glasses": true,
}

// Parse extracts items from text, one per recognized segment.
func (p *RegexParser) Parse(text string) []Item {
	var items []Item
	for _, segment := range segmentPattern.Split(text, -1) {
		if segment == "" {
			continue
		}
		m := itemPattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}

		quantity, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		if err != nil || quantity <= 0 {
			continue
		}

		unit := strings.ToLower(m[2])
		food := m[3]
		if unit != "" && !knownUnits[unit] {
			// Not a unit; it is the first word of the food name.
			food = m[2] + " " + food
			unit = "serving"
		}
		if unit == "" {
			unit = "serving"
		}

		items = append(items, Item{
			FoodName: strings.TrimSpace(food),
			Quantity: quantity,
			Unit:     unit,
		})
	}
	return items
}
