package providers

import (
	"context"
	"time"

	"github.com/JDeep1234/airwise/internal/aqi"
)

// SyntheticProvider generates deterministic air quality data shaped like the
// monitored city's traffic pattern (morning and evening peaks, cleaner
// nights). It backs local development and serves as the fallback source when
// the real provider or the forecasting model is unavailable.
type SyntheticProvider struct {
	name     string
	location aqi.Location
}

func NewSyntheticProvider(loc aqi.Location) *SyntheticProvider {
	return &SyntheticProvider{
		name:     "synthetic",
		location: loc,
	}
}

func (p *SyntheticProvider) Name() string {
	return p.name
}

// Fetch returns a plausible current observation.
func (p *SyntheticProvider) Fetch(ctx context.Context) (aqi.Observation, error) {
	now := time.Now().UTC()
	return p.at(now, hourIndex(now)), nil
}

// FetchHistory returns `hours` hourly observations ending at the most recent
// full hour, oldest first.
func (p *SyntheticProvider) FetchHistory(ctx context.Context, hours int) ([]aqi.Observation, error) {
	end := time.Now().UTC().Truncate(time.Hour)
	obs := make([]aqi.Observation, 0, hours)
	for i := 0; i < hours; i++ {
		ts := end.Add(-time.Duration(hours-1-i) * time.Hour)
		obs = append(obs, p.at(ts, i))
	}
	return obs, nil
}

// FallbackDaily produces a synthetic multi-day outlook for when no trained
// model is available.
func (p *SyntheticProvider) FallbackDaily(days int) []aqi.DailySummary {
	today := time.Now().UTC()
	out := make([]aqi.DailySummary, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i)
		out = append(out, aqi.DailySummary{
			Date:   day.Format("Mon, Jan 02"),
			AQIMax: 150 - i*10 + i*i,
			AQIMin: 120 - i*8 + i*i,
			Pollutants: aqi.SummaryPollutants{
				PM25: float64(75 - i*5),
				PM10: float64(135 - i*8),
				O3:   float64(45 - i*2),
				NO2:  float64(34 - i),
			},
		})
	}
	return out
}

// at builds the observation for a timestamp. The step index varies the series
// deterministically so consecutive hours are not identical.
func (p *SyntheticProvider) at(ts time.Time, step int) aqi.Observation {
	base := 150.0
	switch hour := ts.Hour(); {
	case hour >= 7 && hour <= 10: // morning traffic peak
		base = 180
	case hour >= 17 && hour <= 20: // evening traffic peak
		base = 190
	case hour <= 4: // night time, better air
		base = 120
	}

	aqiVal := base + float64((step*7)%30) - 15
	pm25 := aqiVal/2 - 5 + float64((step*3)%15)

	return aqi.Observation{
		Timestamp: ts,
		AQI:       aqiVal,
		Pollutants: aqi.Pollutants{
			PM25: pm25,
			PM10: pm25 * 1.8,
			O3:   40 + aqiVal*0.05,
			NO2:  20 + aqiVal*0.1,
			SO2:  15,
			CO:   0.8,
		},
		Location: p.location.City,
		Source:   p.name,
	}
}

func hourIndex(ts time.Time) int {
	return ts.Hour()
}
