package aqi

import "math"

// owmIndexBase maps the OpenWeatherMap 1-5 air quality index onto the
// 0-500 AQI scale used throughout this service.
var owmIndexBase = map[int]float64{
	1: 50,  // Good
	2: 100, // Fair
	3: 150, // Moderate
	4: 200, // Poor
	5: 300, // Very Poor
}

// FromOpenWeatherIndex converts an OpenWeatherMap index plus PM
// concentrations into a 0-500 AQI value. High PM2.5 readings override the
// coarse 1-5 index so severe episodes are not flattened to 300.
func FromOpenWeatherIndex(index int, pm25 float64) int {
	switch {
	case pm25 > 250:
		return int(math.Round(400 + math.Min(pm25-250, 100)))
	case pm25 > 150:
		return int(math.Round(300 + math.Floor((pm25-150)/2)))
	case pm25 > 55:
		return int(math.Round(200 + math.Floor((pm25-55)/1.5)))
	case pm25 > 35:
		return int(math.Round(150 + (pm25-35)*2.5))
	case pm25 > 12:
		return int(math.Round(50 + (pm25-12)*4.3))
	}

	base, ok := owmIndexBase[index]
	if !ok {
		base = 150
	}
	return int(math.Round(base))
}

// Recommendations returns health guidance for an AQI level.
func Recommendations(aqi float64) []string {
	switch {
	case aqi <= 50:
		return []string{
			"Air quality is good, enjoy outdoor activities",
			"No special precautions needed",
			"Great day for outdoor exercise",
			"Open windows for natural ventilation",
		}
	case aqi <= 100:
		return []string{
			"Air quality is acceptable for most individuals",
			"Sensitive groups should consider limiting prolonged outdoor exertion",
			"Good day for moderate outdoor activities",
			"Keep windows open during cleaner periods of the day",
		}
	case aqi <= 150:
		return []string{
			"Moderate outdoor activities",
			"Sensitive groups should limit outdoor exposure",
			"Use air purifiers indoors if available",
			"Consider wearing masks when outdoors",
		}
	case aqi <= 200:
		return []string{
			"Avoid prolonged outdoor exertion",
			"Keep windows closed and use air purifiers",
			"Wear N95 masks when outdoors",
			"Consider working from home if possible",
		}
	default:
		return []string{
			"Limit outdoor activities, especially for sensitive groups",
			"Keep windows closed during peak pollution hours",
			"Use air purifiers indoors if available",
			"Consider wearing masks when outdoors",
			"Stay indoors as much as possible",
		}
	}
}
