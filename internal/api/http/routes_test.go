package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/JDeep1234/airwise/internal/aqi/providers"
	"github.com/JDeep1234/airwise/internal/forecast"
	"github.com/JDeep1234/airwise/internal/ml"
	"github.com/JDeep1234/airwise/internal/service"
	"github.com/JDeep1234/airwise/internal/store"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	params := ml.DefaultGBDTParams()
	params.Rounds = 15
	params.MaxDepth = 3

	loc := aqi.Location{City: "Gurugram", Lat: 28.4595, Lon: 77.0266}
	engine := forecast.NewEngine(forecast.NewModelStore(t.TempDir()), forecast.WithParams(params))
	svc := service.New(
		store.NewMemoryStore(0, time.Hour),
		nil, // no real provider in tests
		providers.NewSyntheticProvider(loc),
		engine,
		7,
	)

	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

// TestForecastDaysValidation verifies that the forecast endpoint enforces the
// expected range for the `days` query parameter.
func TestForecastDaysValidation(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?days=200", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/forecast?days=abc", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

// TestForecastFallsBackWithoutModel verifies an untrained service still
// answers with the synthetic outlook.
func TestForecastFallsBackWithoutModel(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast?days=3", nil)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		Source   string             `json:"source"`
		Forecast []aqi.DailySummary `json:"forecast"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Source != "fallback" {
		t.Fatalf("expected fallback source, got %q", body.Source)
	}
	if len(body.Forecast) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(body.Forecast))
	}
}

// TestTrainThenStatus trains from the synthetic bootstrap series and checks
// the status endpoint reflects the loaded model.
func TestTrainThenStatus(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ml/train", strings.NewReader(`{"days": 7}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 60000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var trainBody struct {
		Status  string                  `json:"status"`
		Results forecast.TrainingReport `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&trainBody); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if trainBody.Status != "success" || trainBody.Results.ModelID == "" {
		t.Fatalf("unexpected train response: %+v", trainBody)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ml/status", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var statusBody struct {
		ModelLoaded bool `json:"model_loaded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&statusBody); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !statusBody.ModelLoaded {
		t.Fatal("expected model_loaded true after training")
	}

	// With a trained model the hourly trend comes from the recursion.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/forecast/hourly", nil)
	resp, err = app.Test(req, 15000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var hourlyBody struct {
		Source string              `json:"source"`
		Trend  []aqi.ForecastPoint `json:"trend"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hourlyBody); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if hourlyBody.Source != "ml" {
		t.Fatalf("expected ml source after training, got %q", hourlyBody.Source)
	}
	if len(hourlyBody.Trend) != forecast.HorizonHourly {
		t.Fatalf("expected %d trend points, got %d", forecast.HorizonHourly, len(hourlyBody.Trend))
	}
}

// TestTrainInsufficientData asks for a window too short to produce rows.
func TestTrainInsufficientDays(t *testing.T) {
	app := newTestApp(t)

	// days below the validator minimum is a plain bad request
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ml/train", strings.NewReader(`{"days": 1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var body struct {
		AQI             float64  `json:"aqi"`
		Category        string   `json:"category"`
		Recommendations []string `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Category == "" || len(body.Recommendations) == 0 {
		t.Fatalf("unexpected recommendations response: %+v", body)
	}
}
