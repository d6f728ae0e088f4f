package forecast

import (
	"errors"
	"reflect"
	"testing"
)

func TestForecastWithoutModelFails(t *testing.T) {
	engine := newTestEngine(t)

	if _, err := engine.Forecast(testCurrent(), HorizonHourly); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
	if _, err := engine.ForecastDaily(testCurrent()); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestForecastHourlyShape(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Train(genObservations(14 * 24)); err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	points, err := engine.ForecastHourly(testCurrent())
	if err != nil {
		t.Fatalf("unexpected forecast error: %v", err)
	}

	if len(points) != HorizonHourly {
		t.Fatalf("expected %d points, got %d", HorizonHourly, len(points))
	}

	prev := points[0].Timestamp
	for i, p := range points {
		if p.PredictedAQI < 0 || p.PredictedPM25 < 0 {
			t.Fatalf("negative prediction at %d: %+v", i, p)
		}
		if i > 0 {
			if !p.Timestamp.After(prev) {
				t.Fatalf("timestamps must increase: %v then %v", prev, p.Timestamp)
			}
			prev = p.Timestamp
		}
		if p.HourLabel != p.Timestamp.Format("15:04") {
			t.Fatalf("hour label mismatch at %d: %q", i, p.HourLabel)
		}
	}
}

func TestHourlyIsPrefixOfDaily(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Train(genObservations(14 * 24)); err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	weekly, err := engine.Forecast(testCurrent(), HorizonDaily)
	if err != nil {
		t.Fatalf("unexpected forecast error: %v", err)
	}
	if len(weekly) != HorizonDaily {
		t.Fatalf("expected %d points, got %d", HorizonDaily, len(weekly))
	}

	hourly, err := engine.ForecastHourly(testCurrent())
	if err != nil {
		t.Fatalf("unexpected forecast error: %v", err)
	}

	if !reflect.DeepEqual(hourly, weekly[:HorizonHourly]) {
		t.Fatal("hourly forecast is not a prefix of the weekly recursion")
	}
}

func TestForecastDeterminism(t *testing.T) {
	engine := newTestEngine(t)
	if _, err := engine.Train(genObservations(14 * 24)); err != nil {
		t.Fatalf("unexpected training error: %v", err)
	}

	a, err := engine.Forecast(testCurrent(), HorizonDaily)
	if err != nil {
		t.Fatalf("unexpected forecast error: %v", err)
	}
	b, err := engine.Forecast(testCurrent(), HorizonDaily)
	if err != nil {
		t.Fatalf("unexpected forecast error: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must give identical forecasts")
	}
}

func TestPM25CurveSegments(t *testing.T) {
	cases := []struct {
		aqi  float64
		want float64
	}{
		{40, 8},     // 40 * 0.2
		{70, 20},    // 10 + 20*0.5
		{120, 43.4}, // 35 + 20*0.42
		{170, 66.6}, // 55 + 20*0.58
		{250, 200},  // 150 + 50*1.0
		{350, 290},  // 250 + 50*0.8
	}

	var prev float64 = -1
	for _, tc := range cases {
		got := CurveStandard.Convert(tc.aqi)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("standard curve at aqi=%v: got %v want %v", tc.aqi, got, tc.want)
		}
		if got < prev {
			t.Fatalf("curve not monotonic at aqi=%v", tc.aqi)
		}
		prev = got
	}
}

func TestPM25LegacyHourlyCurve(t *testing.T) {
	// The variants agree up to AQI 100 and diverge past it.
	for _, a := range []float64{20, 60, 100} {
		if CurveLegacyHourly.Convert(a) != CurveStandard.Convert(a) {
			t.Fatalf("curves should agree at aqi=%v", a)
		}
	}
	if got := CurveLegacyHourly.Convert(120); got != 45 {
		t.Fatalf("legacy curve at aqi=120: got %v want 45", got)
	}
	if got := CurveLegacyHourly.Convert(350); got != 160 {
		t.Fatalf("legacy curve at aqi=350: got %v want 160", got)
	}
}

func TestCurveByName(t *testing.T) {
	if c, err := CurveByName(""); err != nil || c.Name != CurveStandard.Name {
		t.Fatalf("empty name should default to standard: %v %v", c.Name, err)
	}
	if c, err := CurveByName("legacy-hourly"); err != nil || c.Name != CurveLegacyHourly.Name {
		t.Fatalf("legacy-hourly lookup failed: %v %v", c.Name, err)
	}
	if _, err := CurveByName("bogus"); err == nil {
		t.Fatal("expected error for unknown curve")
	}
}
