package severity

import "testing"

func TestFromWeatherDescription(t *testing.T) {
	tests := []struct {
		desc string
		want Level
	}{
		{"clear sky", Good},
		{"Sunny", Good},
		{"light rain", Fair},
		{"broken clouds", Fair},
		{"thunderstorm with heavy rain", Poor},
		{"severe squall", Poor},
		// Poor wins over other matches in the same description
		{"clear then storm", Poor},
		{"", Fair},
		{"   ", Fair},
		{"haboob", Fair},
	}
	for _, tt := range tests {
		if got := FromWeatherDescription(tt.desc); got != tt.want {
			t.Errorf("FromWeatherDescription(%q) = %v, want %v", tt.desc, got, tt.want)
		}
	}
}

func TestFromSolarIndices(t *testing.T) {
	tests := []struct {
		name      string
		solarFlux float64
		kIndex    float64
		want      Level
	}{
		{"quiet and strong flux", 150, 1, Good},
		{"good boundary", 120, 2, Good},
		{"storming", 150, 5, Poor},
		{"weak flux", 75, 1, Poor},
		{"poor boundary flux", 79, 0, Poor},
		{"middling", 100, 3, Fair},
		{"strong flux but active", 150, 3, Fair},
		{"quiet but modest flux", 100, 1, Fair},
	}
	for _, tt := range tests {
		if got := FromSolarIndices(tt.solarFlux, tt.kIndex); got != tt.want {
			t.Errorf("%s: FromSolarIndices(%v, %v) = %v, want %v", tt.name, tt.solarFlux, tt.kIndex, got, tt.want)
		}
	}
}

func TestFromBandLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Level
	}{
		{"Good", Good},
		{"good", Good},
		{"Poor", Poor},
		{"Fair", Fair},
		{"", Fair},
		{"Band Closed", Fair},
	}
	for _, tt := range tests {
		if got := FromBandLabel(tt.label); got != tt.want {
			t.Errorf("FromBandLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
