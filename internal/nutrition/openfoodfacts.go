package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/bitelog/bitelog/internal/models"
)

// kJ per kcal, used when the provider only reports energy in kilojoules.
const kjPerKcal = 4.184

// Candidates requested per search. The top-ranked match frequently lacks
// nutrient data, so a single result is not enough.
const searchPageSize = 5

// Ensure OpenFoodFacts implements Resolver
var _ Resolver = (*OpenFoodFacts)(nil)

// OpenFoodFacts resolves food names against the Open Food Facts search API.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFacts creates a resolver for the given API base URL. The
// timeout bounds every lookup so a slow provider degrades one request
// instead of hanging the service.
func NewOpenFoodFacts(baseURL string, timeout time.Duration) *OpenFoodFacts {
	return &OpenFoodFacts{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// offProduct is the subset of an Open Food Facts search hit we care about.
// Nutriment values arrive as either JSON numbers or strings depending on
// the product, so the map stays untyped until extraction.
type offProduct struct {
	ProductName   string         `json:"product_name"`
	ProductNameEn string         `json:"product_name_en"`
	GenericName   string         `json:"generic_name"`
	Nutriments    map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

// Resolve queries the search API for a page of candidates and returns the
// first one whose nutriment map is non-empty.
func (o *OpenFoodFacts) Resolve(ctx context.Context, name string) (*Lookup, error) {
	endpoint := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		o.baseURL, url.QueryEscape(name), searchPageSize,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrNotResolved, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %v", ErrNotResolved, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned status %d", ErrNotResolved, resp.StatusCode)
	}

	var result offSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrNotResolved, err)
	}

	for _, p := range result.Products {
		if len(p.Nutriments) == 0 {
			continue
		}
		slog.Debug("Nutrition candidate selected",
			"query", name,
			"product", p.displayName(),
			"nutriment_fields", len(p.Nutriments),
		)
		return &Lookup{
			Name:    p.displayName(),
			Per100g: extractNutrition(p.Nutriments),
		}, nil
	}

	return nil, fmt.Errorf("%w: no candidate with nutriments for %q", ErrNotResolved, name)
}

// Ping checks provider reachability with a cheap request against the base
// URL. Only the health endpoint calls this.
func (o *OpenFoodFacts) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, o.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("lookup provider returned status %d", resp.StatusCode)
	}
	return nil
}

// displayName returns the best available product name using the fallback
// order product_name → product_name_en → generic_name.
func (p *offProduct) displayName() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

// extractNutrition pulls a per-100g vector out of a nutriment map, trying
// the known field-name aliases for each nutrient. Missing fields default to
// zero; scaling a zero is harmless.
func extractNutrition(nutriments map[string]any) models.Nutrition {
	return models.Nutrition{
		Calories: extractEnergy(nutriments),
		Protein:  firstFloat(nutriments, "proteins_100g", "proteins"),
		Carbs:    firstFloat(nutriments, "carbohydrates_100g", "carbohydrates"),
		Fat:      firstFloat(nutriments, "fat_100g", "fat"),
		Fiber:    firstFloat(nutriments, "fiber_100g", "fiber"),
		Sugar:    firstFloat(nutriments, "sugars_100g", "sugars"),
		Sodium:   firstFloat(nutriments, "sodium_100g", "sodium"),
	}
}

// extractEnergy resolves the energy-unit ambiguity: kcal-labeled fields win;
// kJ-labeled fields are converted; a bare "energy" field on Open Food Facts
// is kilojoules and gets converted too.
func extractEnergy(nutriments map[string]any) float64 {
	if v, ok := lookupFloat(nutriments, "energy-kcal_100g", "energy-kcal"); ok {
		return v
	}
	if v, ok := lookupFloat(nutriments, "energy-kj_100g", "energy-kj"); ok {
		return v / kjPerKcal
	}
	if v, ok := lookupFloat(nutriments, "energy_100g", "energy"); ok {
		return v / kjPerKcal
	}
	return 0
}

func firstFloat(nutriments map[string]any, keys ...string) float64 {
	v, _ := lookupFloat(nutriments, keys...)
	return v
}

func lookupFloat(nutriments map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := coerceFloat(nutriments[key]); ok && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

// coerceFloat handles the provider's mix of numeric and string-encoded
// nutriment values.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(x, "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}
