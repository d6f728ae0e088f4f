package forecast

import (
	"math"

	"github.com/JDeep1234/airwise/internal/aqi"
)

// dateLabel is the calendar-date grouping key for daily summaries.
const dateLabel = "Mon, Jan 02"

// ToDaily reduces an hourly forecast to per-day summaries: max/min AQI and
// mean-derived pollutant estimates. Group membership follows each point's
// calendar date, and output order follows the first occurrence of each date
// in the input rather than a re-sort.
func ToDaily(points []aqi.ForecastPoint) []aqi.DailySummary {
	type bucket struct {
		aqiSum  float64
		pm25Sum float64
		aqiMax  int
		aqiMin  int
		count   int
	}

	var order []string
	buckets := make(map[string]*bucket)

	for _, p := range points {
		key := p.Timestamp.Format(dateLabel)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{aqiMax: p.PredictedAQI, aqiMin: p.PredictedAQI}
			buckets[key] = b
			order = append(order, key)
		}

		b.aqiSum += float64(p.PredictedAQI)
		b.pm25Sum += p.PredictedPM25
		b.count++
		if p.PredictedAQI > b.aqiMax {
			b.aqiMax = p.PredictedAQI
		}
		if p.PredictedAQI < b.aqiMin {
			b.aqiMin = p.PredictedAQI
		}
	}

	out := make([]aqi.DailySummary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		n := float64(b.count)
		meanAQI := b.aqiSum / n
		meanPM25 := b.pm25Sum / n

		out = append(out, aqi.DailySummary{
			Date:   key,
			AQIMax: b.aqiMax,
			AQIMin: b.aqiMin,
			Pollutants: aqi.SummaryPollutants{
				PM25: round1(meanPM25),
				PM10: round1(meanPM25 * 1.5),
				O3:   40 + round1(meanAQI*0.2),
				NO2:  20 + round1(meanAQI*0.15),
			},
		})
	}
	return out
}

// ToHourly truncates a forecast to its first limit points.
func ToHourly(points []aqi.ForecastPoint, limit int) []aqi.ForecastPoint {
	if limit <= 0 {
		limit = HorizonHourly
	}
	if len(points) > limit {
		points = points[:limit]
	}
	out := make([]aqi.ForecastPoint, len(points))
	copy(out, points)
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
