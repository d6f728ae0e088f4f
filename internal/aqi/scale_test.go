package aqi

import "testing"

func TestFromOpenWeatherIndexUsesBaseScale(t *testing.T) {
	cases := []struct {
		index int
		want  int
	}{
		{1, 50},
		{2, 100},
		{3, 150},
		{4, 200},
		{5, 300},
		{9, 150}, // unknown index falls back to moderate
	}
	for _, tc := range cases {
		if got := FromOpenWeatherIndex(tc.index, 5); got != tc.want {
			t.Fatalf("index %d: got %d want %d", tc.index, got, tc.want)
		}
	}
}

func TestFromOpenWeatherIndexPMOverride(t *testing.T) {
	// High PM2.5 readings override the coarse index.
	cases := []struct {
		pm25 float64
		want int
	}{
		{20, 84},  // 50 + 8*4.3
		{45, 175}, // 150 + 10*2.5
		{80, 216}, // 200 + floor(25/1.5)
		{200, 325},
		{300, 450},
		{400, 500}, // capped
	}
	for _, tc := range cases {
		if got := FromOpenWeatherIndex(3, tc.pm25); got != tc.want {
			t.Fatalf("pm25 %v: got %d want %d", tc.pm25, got, tc.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		aqi  float64
		want Category
	}{
		{30, CategoryGood},
		{80, CategoryModerate},
		{120, CategoryUnhealthySens},
		{180, CategoryUnhealthy},
		{250, CategoryVeryUnhealthy},
		{400, CategoryHazardous},
	}
	for _, tc := range cases {
		if got := Categorize(tc.aqi); got != tc.want {
			t.Fatalf("aqi %v: got %v want %v", tc.aqi, got, tc.want)
		}
	}
}

func TestRecommendationsNeverEmpty(t *testing.T) {
	for _, a := range []float64{10, 75, 125, 175, 350} {
		if len(Recommendations(a)) == 0 {
			t.Fatalf("no recommendations for aqi %v", a)
		}
	}
}
