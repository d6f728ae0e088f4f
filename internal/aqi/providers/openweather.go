package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/sony/gobreaker"
)

// owmRecord is one entry of the OpenWeatherMap air pollution payload.
type owmRecord struct {
	Dt   int64 `json:"dt"`
	Main struct {
		AQI int `json:"aqi"` // 1-5 scale
	} `json:"main"`
	Components struct {
		PM25 float64 `json:"pm2_5"`
		PM10 float64 `json:"pm10"`
		O3   float64 `json:"o3"`
		NO2  float64 `json:"no2"`
		SO2  float64 `json:"so2"`
		CO   float64 `json:"co"`
	} `json:"components"`
}

type owmPayload struct {
	List []owmRecord `json:"list"`
}

// OpenWeatherProvider fetches current and historical air pollution data for a
// fixed location from the OpenWeatherMap air pollution API.
type OpenWeatherProvider struct {
	name       string
	apiKey     string
	baseURL    string
	historyURL string
	location   aqi.Location
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, loc aqi.Location) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:       "openweathermap",
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org/data/2.5/air_pollution",
		historyURL: "https://api.openweathermap.org/data/2.5/air_pollution/history",
		location:   loc,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: defaultBreaker("openweathermap"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch returns the latest observation for the configured location.
func (p *OpenWeatherProvider) Fetch(ctx context.Context) (aqi.Observation, error) {
	if p.apiKey == "" {
		return aqi.Observation{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", p.location.Lat))
	values.Set("lon", fmt.Sprintf("%f", p.location.Lon))
	values.Set("appid", p.apiKey)

	var payload owmPayload
	if err := fetchJSON(ctx, p.httpCfg, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return aqi.Observation{}, err
	}
	if len(payload.List) == 0 {
		return aqi.Observation{}, fmt.Errorf("openweather returned no air pollution records")
	}

	return p.toObservation(payload.List[0]), nil
}

// FetchHistory returns up to `hours` hourly observations ending now, oldest
// first. OpenWeatherMap serves the history endpoint with unix second bounds.
func (p *OpenWeatherProvider) FetchHistory(ctx context.Context, hours int) ([]aqi.Observation, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}
	if hours <= 0 {
		return nil, fmt.Errorf("hours must be greater than zero")
	}

	end := time.Now().UTC()
	start := end.Add(-time.Duration(hours) * time.Hour)

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", p.location.Lat))
	values.Set("lon", fmt.Sprintf("%f", p.location.Lon))
	values.Set("start", fmt.Sprintf("%d", start.Unix()))
	values.Set("end", fmt.Sprintf("%d", end.Unix()))
	values.Set("appid", p.apiKey)

	var payload owmPayload
	if err := fetchJSON(ctx, p.httpCfg, p.circuit, p.historyURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	obs := make([]aqi.Observation, 0, len(payload.List))
	for _, rec := range payload.List {
		obs = append(obs, p.toObservation(rec))
	}
	return obs, nil
}

func (p *OpenWeatherProvider) toObservation(rec owmRecord) aqi.Observation {
	ts := time.Unix(rec.Dt, 0).UTC()
	if rec.Dt == 0 {
		ts = time.Now().UTC()
	}

	return aqi.Observation{
		Timestamp: ts,
		AQI:       float64(aqi.FromOpenWeatherIndex(rec.Main.AQI, rec.Components.PM25)),
		Pollutants: aqi.Pollutants{
			PM25: rec.Components.PM25,
			PM10: rec.Components.PM10,
			O3:   rec.Components.O3,
			NO2:  rec.Components.NO2,
			SO2:  rec.Components.SO2,
			CO:   rec.Components.CO,
		},
		Location: p.location.City,
		Source:   p.name,
	}
}
