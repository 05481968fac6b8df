package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitelog/bitelog/internal/mealtext"
	"github.com/bitelog/bitelog/internal/models"
	"github.com/bitelog/bitelog/internal/nutrition"
	"github.com/bitelog/bitelog/internal/service"
	"github.com/bitelog/bitelog/internal/storage/sqlite"
)

type stubResolver struct {
	lookup  *nutrition.Lookup
	err     error
	pingErr error
}

func (s *stubResolver) Resolve(ctx context.Context, name string) (*nutrition.Lookup, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lookup, nil
}

func (s *stubResolver) Ping(ctx context.Context) error { return s.pingErr }

// setupTestServer runs the full stack (handlers, service, SQLite store)
// against a stubbed nutrition lookup.
func setupTestServer(t *testing.T, resolver *stubResolver) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "bitelog-server-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := service.NewLogService(store, resolver, mealtext.NewRegexParser())
	server := httptest.NewServer(New(svc).Handler())
	t.Cleanup(server.Close)
	return server
}

func bananaResolver() *stubResolver {
	return &stubResolver{lookup: &nutrition.Lookup{
		Name:    "Banana",
		Per100g: models.Nutrition{Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3},
	}}
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestLogFoodEndpoint(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp := postJSON(t, server.URL+"/food-log", `{"food_name":"banana","quantity":120,"unit":"g"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[models.FoodLogEntry](t, resp)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "Banana", entry.FoodName)
	require.NotNil(t, entry.Calories)
	assert.Equal(t, 106.8, *entry.Calories)
	assert.Equal(t, 1.32, *entry.Protein)
	assert.Equal(t, 27.6, *entry.Carbs)
	assert.Equal(t, 0.36, *entry.Fat)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), entry.LoggedDate)
}

func TestLogFoodEndpoint_PieceApproximation(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp := postJSON(t, server.URL+"/food-log", `{"food_name":"banana","quantity":3,"unit":"piece"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[models.FoodLogEntry](t, resp)
	require.NotNil(t, entry.Calories)
	assert.Equal(t, 267.0, *entry.Calories)
}

func TestLogFoodEndpoint_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"zero quantity", `{"food_name":"banana","quantity":0,"unit":"g"}`, "quantity"},
		{"missing food name", `{"quantity":100,"unit":"g"}`, "food_name"},
		{"missing unit", `{"food_name":"banana","quantity":100}`, "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := setupTestServer(t, bananaResolver())

			resp := postJSON(t, server.URL+"/food-log", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decode[errorResponse](t, resp)
			assert.Equal(t, codeValidation, body.Error.Code)
			assert.Contains(t, body.Error.Fields, tt.wantField)
		})
	}
}

func TestLogFoodEndpoint_MalformedJSON(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp := postJSON(t, server.URL+"/food-log", `{"food_name":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode[errorResponse](t, resp)
	assert.Equal(t, codeBadJSON, body.Error.Code)
}

func TestLogFoodEndpoint_LookupFailureStillLogs(t *testing.T) {
	server := setupTestServer(t, &stubResolver{err: nutrition.ErrNotResolved})

	resp := postJSON(t, server.URL+"/food-log", `{"food_name":"mystery stew","quantity":1,"unit":"bowl"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decode[models.FoodLogEntry](t, resp)
	assert.Equal(t, "mystery stew", entry.FoodName)
	assert.Nil(t, entry.Calories)
}

func TestLogTextEndpoint(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp := postJSON(t, server.URL+"/food-log/text", `{"text":"2 cups rice and 120 g chicken"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode[struct {
		Entries []models.FoodLogEntry `json:"entries"`
	}](t, resp)
	require.Len(t, body.Entries, 2)
	assert.Equal(t, 2.0, body.Entries[0].Quantity)
	assert.Equal(t, 120.0, body.Entries[1].Quantity)
}

func TestDailySummaryEndpoint_RoundTrip(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	created := decode[models.FoodLogEntry](t,
		postJSON(t, server.URL+"/food-log", `{"food_name":"banana","quantity":120,"unit":"g"}`))

	resp, err := http.Get(server.URL + "/daily-summary")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := decode[models.DailySummary](t, resp)
	assert.Equal(t, 1, summary.EntryCount)
	assert.Equal(t, 106.8, summary.Totals.Calories)
	require.Len(t, summary.Entries, 1)

	// Stored values come back untouched; no further transformation on read.
	got := summary.Entries[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, *created.Calories, *got.Calories)
	assert.Equal(t, *created.Protein, *got.Protein)
	assert.Equal(t, *created.Carbs, *got.Carbs)
	assert.Equal(t, *created.Fat, *got.Fat)
}

func TestDailySummaryEndpoint_EmptyDay(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp, err := http.Get(server.URL + "/daily-summary?date=2030-01-01")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := decode[models.DailySummary](t, resp)
	assert.Equal(t, 0, summary.EntryCount)
	assert.Zero(t, summary.Totals.Calories)
	assert.Empty(t, summary.Entries)
}

func TestListEntriesEndpoint(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	for i := 0; i < 3; i++ {
		resp := postJSON(t, server.URL+"/food-log",
			fmt.Sprintf(`{"food_name":"banana","quantity":%d,"unit":"g"}`, 100+i))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := http.Get(server.URL + "/food-log?limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Entries []models.FoodLogEntry `json:"entries"`
	}](t, resp)
	assert.Len(t, body.Entries, 2)

	resp, err = http.Get(server.URL + "/food-log?limit=banana")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		server := setupTestServer(t, bananaResolver())

		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		status := decode[service.HealthStatus](t, resp)
		assert.True(t, status.Storage)
		assert.True(t, status.Lookup)
	})

	t.Run("lookup outage stays 200", func(t *testing.T) {
		server := setupTestServer(t, &stubResolver{pingErr: errors.New("unreachable")})

		resp, err := http.Get(server.URL + "/health")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		status := decode[service.HealthStatus](t, resp)
		assert.True(t, status.Storage)
		assert.False(t, status.Lookup)
	})
}

func TestClearLogsEndpoint(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp := postJSON(t, server.URL+"/food-log", `{"food_name":"banana","quantity":100,"unit":"g"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/clear-logs", ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]int64](t, resp)
	assert.Equal(t, int64(1), body["deleted"])
}

func TestUnknownRoute(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp, err := http.Get(server.URL + "/no-such-route")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[errorResponse](t, resp)
	assert.Equal(t, codeNotFound, body.Error.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t, bananaResolver())

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
