package aqi

import (
	"time"
)

// Category represents a normalized high-level air quality band on the
// 0-500 AQI scale.
type Category string

const (
	CategoryGood          Category = "good"
	CategoryModerate      Category = "moderate"
	CategoryUnhealthySens Category = "unhealthy_for_sensitive"
	CategoryUnhealthy     Category = "unhealthy"
	CategoryVeryUnhealthy Category = "very_unhealthy"
	CategoryHazardous     Category = "hazardous"
)

// Categorize maps an AQI value to its band.
func Categorize(aqi float64) Category {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategoryModerate
	case aqi <= 150:
		return CategoryUnhealthySens
	case aqi <= 200:
		return CategoryUnhealthy
	case aqi <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}

// Location is the fixed place this service monitors.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Pollutants holds concentration readings in µg/m³ (CO in mg/m³).
type Pollutants struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	O3   float64 `json:"o3"`
	NO2  float64 `json:"no2"`
	SO2  float64 `json:"so2,omitempty"`
	CO   float64 `json:"co,omitempty"`
}

// Observation is a point-in-time air quality record. The forecasting core
// only consumes Timestamp, AQI and Pollutants.PM25; the remaining fields
// ride along for API responses.
type Observation struct {
	Timestamp  time.Time  `json:"timestamp"` // always UTC
	AQI        float64    `json:"aqi"`
	Pollutants Pollutants `json:"pollutants"`
	Location   string     `json:"location,omitempty"`
	Source     string     `json:"source,omitempty"`
}

// PM25 is a convenience accessor for the primary correlated pollutant.
func (o Observation) PM25() float64 {
	return o.Pollutants.PM25
}

// ForecastPoint is a single predicted hour. Values are clamped to >= 0 and
// rounded for presentation (AQI to an integer, PM2.5 to one decimal).
type ForecastPoint struct {
	Timestamp     time.Time `json:"timestamp"` // always UTC
	HourLabel     string    `json:"hour"`      // "HH:MM"
	PredictedAQI  int       `json:"aqi"`
	PredictedPM25 float64   `json:"pm25"`
}

// DailySummary rolls a day's worth of ForecastPoints into min/max AQI and
// estimated pollutant means. PM10/O3/NO2 are derived from PM2.5/AQI, not
// independently modeled.
type DailySummary struct {
	Date       string            `json:"date"` // e.g. "Mon, Jan 02"
	AQIMax     int               `json:"aqi_max"`
	AQIMin     int               `json:"aqi_min"`
	Pollutants SummaryPollutants `json:"pollutants"`
}

// SummaryPollutants are the derived per-day pollutant estimates.
type SummaryPollutants struct {
	PM25 float64 `json:"pm25"`
	PM10 float64 `json:"pm10"`
	O3   float64 `json:"o3"`
	NO2  float64 `json:"no2"`
}
