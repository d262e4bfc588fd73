// Package severity maps condition descriptors onto a three-level scale used
// purely for display color selection.
package severity

import "strings"

type Level int

const (
	Good Level = iota
	Fair
	Poor
)

func (l Level) String() string {
	switch l {
	case Good:
		return "good"
	case Poor:
		return "poor"
	default:
		return "fair"
	}
}

// Keyword classes for weather descriptions. A descriptor matching several
// classes takes the worst match.
var (
	poorKeywords = []string{
		"thunderstorm", "tornado", "hurricane", "blizzard", "freezing",
		"ice", "sleet", "storm", "squall", "severe", "extreme",
	}
	fairKeywords = []string{
		"rain", "showers", "drizzle", "snow", "overcast", "fog", "mist",
		"haze", "smoke", "scattered", "partly", "few clouds", "broken clouds",
	}
	goodKeywords = []string{"clear", "sun", "fair"}
)

// FromWeatherDescription classifies a textual weather descriptor. Empty or
// unrecognized descriptors are Fair: a safe middle default, never silently
// treated as Good.
func FromWeatherDescription(desc string) Level {
	d := strings.ToLower(strings.TrimSpace(desc))
	if d == "" {
		return Fair
	}
	if containsAny(d, poorKeywords) {
		return Poor
	}
	if containsAny(d, fairKeywords) {
		return Fair
	}
	if containsAny(d, goodKeywords) {
		return Good
	}
	return Fair
}

// FromSolarIndices classifies overall HF propagation from the solar flux
// index and planetary K-index. Higher flux and lower K mean better
// conditions.
func FromSolarIndices(solarFlux, kIndex float64) Level {
	if kIndex >= 5 || solarFlux < 80 {
		return Poor
	}
	if kIndex <= 2 && solarFlux >= 120 {
		return Good
	}
	return Fair
}

// FromBandLabel classifies a per-band condition string as published by the
// propagation feed ("Poor", "Fair", "Good"). Anything else is Fair.
func FromBandLabel(label string) Level {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(l, "poor"):
		return Poor
	case strings.HasPrefix(l, "good"):
		return Good
	default:
		return Fair
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
