package slide

import (
	"fmt"
	"strings"
	"time"

	"github.com/verone3d/esp32-rotating-display/internal/cache"
	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
	"github.com/verone3d/esp32-rotating-display/internal/severity"
)

// Display band order across the bottom of the HF slide.
var hfBands = []struct {
	label string
	key   string
	x     int
}{
	{"10M", "10m", 40},
	{"20M", "20m", 140},
	{"40M", "40m", 240},
}

// Render composes the draw plan for a slide from the snapshot. A slide
// whose reading was never valid gets a placeholder line instead of any
// value field, so default-zero readings can never masquerade as data.
func Render(s Slide, snap cache.Snapshot, now time.Time, layout Layout) DrawPlan {
	plan := DrawPlan{Background: ili9341.Black}
	switch s {
	case Weather:
		renderWeather(&plan, snap, layout)
	case HF:
		renderHF(&plan, snap)
	case UTC:
		renderUTC(&plan, snap, now, layout)
	}
	return plan
}

func renderWeather(plan *DrawPlan, snap cache.Snapshot, layout Layout) {
	plan.centered(strings.ToUpper(layout.LocationName), 20, 2, ili9341.Cyan)

	if !snap.Weather.Valid {
		plan.centered(placeholder("WEATHER", snap.WeatherAttempted), 120, 3, ili9341.Yellow)
		return
	}

	w := snap.Weather.Value
	plan.centered(fmt.Sprintf("%.0f F", w.TempF), 100, 5, ili9341.White)

	desc := strings.ToUpper(w.Description)
	plan.centered(desc, 180, 2, weatherColor(severity.FromWeatherDescription(desc)))
}

func renderHF(plan *DrawPlan, snap cache.Snapshot) {
	plan.centered("HF CONDITIONS", 20, 2, ili9341.Cyan)

	if !snap.Solar.Valid {
		plan.centered(placeholder("HF", snap.SolarAttempted), 120, 3, ili9341.Yellow)
		return
	}

	r := snap.Solar.Value
	plan.centered(fmt.Sprintf("SFI %.0f", r.SolarFlux), 70, 4, ili9341.White)
	plan.centered(fmt.Sprintf("K %.0f   A %.0f", r.KIndex, r.AIndex), 135, 3, ili9341.White)

	// Band labels use the feed's per-band quality when present, otherwise
	// fall back to the overall severity derived from SFI and K.
	overall := severity.FromSolarIndices(r.SolarFlux, r.KIndex)
	for _, band := range hfBands {
		color := overallColor(overall)
		if label, ok := r.Bands[band.key]; ok {
			color = bandColor(severity.FromBandLabel(label))
		}
		plan.at(band.label, band.x, 190, 3, color)
	}
}

func renderUTC(plan *DrawPlan, snap cache.Snapshot, now time.Time, layout Layout) {
	plan.centered("UTC / LOCAL", 10, 2, ili9341.Cyan)

	if !snap.Clock.Valid {
		plan.centered("SYNCING...", 120, 3, ili9341.Yellow)
		return
	}

	utc := snap.Clock.Value.Now(now).UTC()
	plan.centered(utc.Format("15:04:05"), 60, 4, ili9341.White)
	plan.centered(utc.Format("2006-01-02"), 110, 2, ili9341.Green)

	local := utc.Add(time.Duration(layout.LocalOffsetHours) * time.Hour)
	plan.centered("LOCAL "+local.Format("15:04:05"), 170, 3, ili9341.White)
}

func placeholder(prefix string, attempted bool) string {
	if attempted {
		return prefix + " UNAVAILABLE"
	}
	return prefix + " LOADING..."
}

// weatherColor maps description severity for the weather slide.
func weatherColor(l severity.Level) ili9341.Color {
	switch l {
	case severity.Good:
		return ili9341.Green
	case severity.Poor:
		return ili9341.Red
	default:
		return ili9341.Yellow
	}
}

// bandColor maps per-band quality labels: fair bands show cyan, matching
// the original palette choice for band conditions.
func bandColor(l severity.Level) ili9341.Color {
	switch l {
	case severity.Good:
		return ili9341.Green
	case severity.Poor:
		return ili9341.Red
	default:
		return ili9341.Cyan
	}
}

// overallColor is the fallback coloring when a band has no label of its own.
func overallColor(l severity.Level) ili9341.Color {
	switch l {
	case severity.Good:
		return ili9341.Green
	case severity.Poor:
		return ili9341.Red
	default:
		return ili9341.Yellow
	}
}

func (p *DrawPlan) centered(text string, y, scale int, fg ili9341.Color) {
	p.Ops = append(p.Ops, TextOp{Text: text, Y: y, Centered: true, Scale: scale, Fg: fg})
}

func (p *DrawPlan) at(text string, x, y, scale int, fg ili9341.Color) {
	p.Ops = append(p.Ops, TextOp{Text: text, X: x, Y: y, Scale: scale, Fg: fg})
}
