package forecast

import (
	"fmt"
	"math"

	"github.com/JDeep1234/airwise/internal/aqi"
)

// Forecast produces horizon hourly forecast points anchored at the current
// observation, with no previously-known lag values.
func (e *Engine) Forecast(current aqi.Observation, horizon int) ([]aqi.ForecastPoint, error) {
	return e.ForecastSeed(Seed{Current: current}, horizon)
}

// ForecastSeed runs the auto-regressive recursion: each hour's feature row is
// built from earlier predictions (or seed values at the start), scaled with
// the frozen scaler, and fed to the model; the clamped, rounded prediction
// then becomes a lag input for later hours. Rows depend strictly on their
// predecessors, so the loop is sequential by construction. A failure at any
// row aborts the whole sequence; no partial forecast is returned.
func (e *Engine) ForecastSeed(seed Seed, horizon int) ([]aqi.ForecastPoint, error) {
	pair := e.pair.Load()
	if pair == nil {
		return nil, ErrModelNotLoaded
	}
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be greater than zero")
	}

	rows := BuildForecastSkeleton(seed, horizon)

	for i := range rows {
		if i > 0 {
			resolveRow(rows, i)
		}

		scaled, err := pair.Scaler.TransformRow(rows[i].FeatureVector())
		if err != nil {
			return nil, fmt.Errorf("scale features for hour %d: %w", i, err)
		}

		predicted := math.Max(0, pair.Model.Predict(scaled))
		pm25 := math.Max(0, e.curve.Convert(predicted))

		rows[i].PredictedAQI = math.Round(predicted)
		rows[i].PredictedPM25 = math.Round(pm25*10) / 10
		rows[i].Predicted = true
	}

	points := make([]aqi.ForecastPoint, len(rows))
	for i, row := range rows {
		points[i] = aqi.ForecastPoint{
			Timestamp:     row.Timestamp,
			HourLabel:     row.Timestamp.Format("15:04"),
			PredictedAQI:  int(row.PredictedAQI),
			PredictedPM25: row.PredictedPM25,
		}
	}
	return points, nil
}

// ForecastDaily runs the full weekly recursion and rolls it up per day.
func (e *Engine) ForecastDaily(current aqi.Observation) ([]aqi.DailySummary, error) {
	points, err := e.Forecast(current, HorizonDaily)
	if err != nil {
		return nil, err
	}
	return ToDaily(points), nil
}

// ForecastHourly returns the next 24 hours, a prefix of the same recursion
// used for the weekly view.
func (e *Engine) ForecastHourly(current aqi.Observation) ([]aqi.ForecastPoint, error) {
	points, err := e.Forecast(current, HorizonHourly)
	if err != nil {
		return nil, err
	}
	return ToHourly(points, HorizonHourly), nil
}

// resolveRow fills row i's lag and rolling fields from already-predicted
// rows. Offsets reaching before the anchor fall back to the anchor row's
// seed values; the recursion never looks further back than row 0. The same
// policy applies to rolling windows: a window that would extend before the
// anchor uses the seeded rolling value rather than a partial mean, matching
// the training-time shift-by-one semantics at the series edge.
func resolveRow(rows []ForecastRow, i int) {
	row := &rows[i]

	for _, lag := range Lags {
		if i >= lag {
			row.AQILag[lag] = rows[i-lag].PredictedAQI
			row.PM25Lag[lag] = rows[i-lag].PredictedPM25
		} else {
			row.AQILag[lag] = rows[0].AQILag[lag]
			row.PM25Lag[lag] = rows[0].PM25Lag[lag]
		}
	}

	for _, w := range RollingWindows {
		if i >= w {
			var sum float64
			for j := i - w; j < i; j++ {
				sum += rows[j].PredictedAQI
			}
			row.AQIRoll[w] = sum / float64(w)
		} else {
			row.AQIRoll[w] = rows[0].AQIRoll[w]
		}
	}
}
