package forecast

import (
	"fmt"
	"time"

	"github.com/JDeep1234/airwise/internal/aqi"
)

// Lags are the backward offsets, in hours, used as lag features on both the
// AQI and PM2.5 series.
var Lags = []int{1, 3, 6, 12, 24}

// RollingWindows are the trailing window widths, in hours, used for rolling
// AQI means. A window ending at hour h excludes hour h itself.
var RollingWindows = []int{6, 12, 24}

// FeatureColumns is the fixed feature order shared by training and
// inference. Models and scalers are only valid against this exact layout.
var FeatureColumns = buildFeatureColumns()

func buildFeatureColumns() []string {
	cols := []string{"hour", "day", "month", "day_of_week", "is_weekend"}
	for _, lag := range Lags {
		cols = append(cols, fmt.Sprintf("aqi_lag_%dh", lag))
	}
	for _, lag := range Lags {
		cols = append(cols, fmt.Sprintf("pm25_lag_%dh", lag))
	}
	for _, w := range RollingWindows {
		cols = append(cols, fmt.Sprintf("aqi_rolling_%dh", w))
	}
	return cols
}

// MinHistory is the number of leading observations that cannot yield a valid
// training row, derived from the configured lag and window sets rather than
// hardcoded.
func MinHistory() int {
	return maxInt(Lags) + maxInt(RollingWindows)
}

func maxInt(vs []int) int {
	m := 0
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

// calendar holds the temporal features extracted from a timestamp.
// DayOfWeek is Monday=0..Sunday=6 to match the training data convention.
type calendar struct {
	Hour      int
	Day       int
	Month     int
	DayOfWeek int
	IsWeekend int
}

func calendarAt(ts time.Time) calendar {
	dow := (int(ts.Weekday()) + 6) % 7
	weekend := 0
	if dow >= 5 {
		weekend = 1
	}
	return calendar{
		Hour:      ts.Hour(),
		Day:       ts.Day(),
		Month:     int(ts.Month()),
		DayOfWeek: dow,
		IsWeekend: weekend,
	}
}

// TrainingTable is the supervised-learning view of a historical series:
// one 18-column feature vector plus the AQI label per surviving row.
type TrainingTable struct {
	X [][]float64
	Y []float64
}

// BuildTrainingTable turns an ordered hourly observation series into a
// training table. Rows whose lag or rolling fields would reach before the
// start of the series are dropped, so the first MinHistory observations
// never produce rows; with MinHistory or fewer observations the table is
// empty. Timestamps must be strictly increasing.
func BuildTrainingTable(obs []aqi.Observation) (*TrainingTable, error) {
	for i := 1; i < len(obs); i++ {
		if !obs[i].Timestamp.After(obs[i-1].Timestamp) {
			return nil, fmt.Errorf("observations must be strictly increasing in time (index %d)", i)
		}
	}

	start := MinHistory()
	table := &TrainingTable{}

	for i := start; i < len(obs); i++ {
		row := make([]float64, 0, len(FeatureColumns))

		cal := calendarAt(obs[i].Timestamp)
		row = append(row,
			float64(cal.Hour),
			float64(cal.Day),
			float64(cal.Month),
			float64(cal.DayOfWeek),
			float64(cal.IsWeekend),
		)

		for _, lag := range Lags {
			row = append(row, obs[i-lag].AQI)
		}
		for _, lag := range Lags {
			row = append(row, obs[i-lag].PM25())
		}
		for _, w := range RollingWindows {
			var sum float64
			for j := i - w; j < i; j++ {
				sum += obs[j].AQI
			}
			row = append(row, sum/float64(w))
		}

		table.X = append(table.X, row)
		table.Y = append(table.Y, obs[i].AQI)
	}

	return table, nil
}

// Seed carries the current observation plus any previously-known lag and
// rolling values. Missing entries fall back to the current AQI/PM2.5.
type Seed struct {
	Current    aqi.Observation
	AQILags    map[int]float64 // keyed by lag hours
	PM25Lags   map[int]float64
	AQIRolling map[int]float64 // keyed by window hours
}

// ForecastRow is one hour of the forecast skeleton. Lag and rolling fields
// of rows past the anchor are populated in lock-step by the recursion as
// earlier rows are predicted.
type ForecastRow struct {
	Timestamp time.Time
	Calendar  calendar

	AQILag  map[int]float64
	PM25Lag map[int]float64
	AQIRoll map[int]float64

	PredictedAQI  float64
	PredictedPM25 float64
	Predicted     bool
}

// FeatureVector assembles the row into the fixed FeatureColumns layout.
func (r *ForecastRow) FeatureVector() []float64 {
	row := make([]float64, 0, len(FeatureColumns))
	row = append(row,
		float64(r.Calendar.Hour),
		float64(r.Calendar.Day),
		float64(r.Calendar.Month),
		float64(r.Calendar.DayOfWeek),
		float64(r.Calendar.IsWeekend),
	)
	for _, lag := range Lags {
		row = append(row, r.AQILag[lag])
	}
	for _, lag := range Lags {
		row = append(row, r.PM25Lag[lag])
	}
	for _, w := range RollingWindows {
		row = append(row, r.AQIRoll[w])
	}
	return row
}

// BuildForecastSkeleton lays out horizon hourly rows anchored at the current
// observation. Row 0 is seeded entirely from the seed values; later rows get
// their timestamps and calendar fields here and their lag/rolling fields
// during the recursion.
func BuildForecastSkeleton(seed Seed, horizon int) []ForecastRow {
	anchor := seed.Current.Timestamp.UTC()
	rows := make([]ForecastRow, horizon)

	for i := range rows {
		ts := anchor.Add(time.Duration(i) * time.Hour)
		rows[i] = ForecastRow{
			Timestamp: ts,
			Calendar:  calendarAt(ts),
			AQILag:    make(map[int]float64, len(Lags)),
			PM25Lag:   make(map[int]float64, len(Lags)),
			AQIRoll:   make(map[int]float64, len(RollingWindows)),
		}
	}

	if horizon == 0 {
		return rows
	}

	// Seed the anchor row. The 1-hour lag is always the current reading;
	// longer offsets use supplied values when known.
	for _, lag := range Lags {
		rows[0].AQILag[lag] = seedValue(seed.AQILags, lag, seed.Current.AQI)
		rows[0].PM25Lag[lag] = seedValue(seed.PM25Lags, lag, seed.Current.PM25())
	}
	rows[0].AQILag[1] = seed.Current.AQI
	rows[0].PM25Lag[1] = seed.Current.PM25()

	for _, w := range RollingWindows {
		rows[0].AQIRoll[w] = seedValue(seed.AQIRolling, w, seed.Current.AQI)
	}

	return rows
}

func seedValue(known map[int]float64, key int, fallback float64) float64 {
	if v, ok := known[key]; ok {
		return v
	}
	return fallback
}
