package forecast

import (
	"fmt"
	"math"
)

// pm25Segment maps one AQI band to a PM2.5 estimate:
// pm25 = Base + (aqi - Start) * Slope for aqi <= Upper.
type pm25Segment struct {
	Upper float64
	Start float64
	Base  float64
	Slope float64
}

// PM25Curve is a piecewise-linear monotonic AQI to PM2.5 concentration map.
// PM2.5 is not modeled independently; it is derived from the predicted AQI
// at every step of the recursion.
type PM25Curve struct {
	Name     string
	Segments []pm25Segment
}

// Convert derives the PM2.5 estimate for an AQI value.
func (c PM25Curve) Convert(aqi float64) float64 {
	for _, seg := range c.Segments {
		if aqi <= seg.Upper {
			return seg.Base + (aqi-seg.Start)*seg.Slope
		}
	}
	return 0
}

// CurveStandard reflects real-world AQI-to-concentration breakpoints at
// 50/100/150/200/300 with distinct per-segment slopes. Used by default for
// every horizon.
var CurveStandard = PM25Curve{
	Name: "standard",
	Segments: []pm25Segment{
		{Upper: 50, Start: 0, Base: 0, Slope: 0.2},
		{Upper: 100, Start: 50, Base: 10, Slope: 0.5},
		{Upper: 150, Start: 100, Base: 35, Slope: 0.42},
		{Upper: 200, Start: 150, Base: 55, Slope: 0.58},
		{Upper: 300, Start: 200, Base: 150, Slope: 1.0},
		{Upper: math.Inf(1), Start: 300, Base: 250, Slope: 0.8},
	},
}

// CurveLegacyHourly is the simplified map the hourly trend endpoint
// historically used, with a single flat slope past AQI 100. Kept as a
// selectable variant; the two curves agree up to AQI 100.
var CurveLegacyHourly = PM25Curve{
	Name: "legacy-hourly",
	Segments: []pm25Segment{
		{Upper: 50, Start: 0, Base: 0, Slope: 0.2},
		{Upper: 100, Start: 50, Base: 10, Slope: 0.5},
		{Upper: math.Inf(1), Start: 100, Base: 35, Slope: 0.5},
	},
}

// CurveByName resolves a configured curve name.
func CurveByName(name string) (PM25Curve, error) {
	switch name {
	case "", CurveStandard.Name:
		return CurveStandard, nil
	case CurveLegacyHourly.Name:
		return CurveLegacyHourly, nil
	default:
		return PM25Curve{}, fmt.Errorf("unknown pm25 curve %q", name)
	}
}
