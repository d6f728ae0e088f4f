package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/JDeep1234/airwise/internal/aqi"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// Location the service monitors and forecasts for.
	Location aqi.Location

	// FetchInterval controls how often the scheduler captures an observation.
	FetchInterval time.Duration

	// RetrainInterval controls how often the model is refitted from the
	// accumulated history (0 disables scheduled retraining).
	RetrainInterval time.Duration

	// In-memory observation store retention.
	StoreMaxHistory int           // max number of observations (0 = unlimited)
	StoreMaxAge     time.Duration // max age of observations (0 = unlimited)

	// ModelDir is where the trained model/scaler pair is persisted.
	ModelDir string

	// PM25Curve selects the AQI-to-PM2.5 derivation variant.
	PM25Curve string

	// TrainingDays is the length of the synthetic bootstrap series used when
	// the store has not accumulated enough real history to train on.
	TrainingDays int

	HTTPTimeout time.Duration
	Port        string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")

	cfg.Location = aqi.Location{
		City: getenvDefault("AQI_LOCATION_CITY", "Gurugram"),
		Lat:  getenvFloat("AQI_LOCATION_LAT", 28.4595),
		Lon:  getenvFloat("AQI_LOCATION_LON", 77.0266),
	}

	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	retrain, err := time.ParseDuration(getenvDefault("RETRAIN_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETRAIN_INTERVAL: %w", err)
	}
	cfg.RetrainInterval = retrain

	// Retention: default three weeks of hourly observations, enough to keep
	// retraining viable while bounding memory.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 21*24)

	maxAge, err := time.ParseDuration(getenvDefault("STORE_MAX_AGE", "504h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge

	cfg.ModelDir = getenvDefault("MODEL_DIR", "models")
	cfg.PM25Curve = getenvDefault("PM25_CURVE", "standard")
	cfg.TrainingDays = getenvInt("TRAINING_DAYS", 90)

	httpTimeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = httpTimeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
