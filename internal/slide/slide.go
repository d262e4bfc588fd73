// Package slide composes draw plans for the rotating full-screen layouts.
// Rendering is a pure function of the cache snapshot: it does not care
// whether a reading is fresh or last-known, only whether one exists at all.
package slide

import (
	"fmt"

	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
	"github.com/verone3d/esp32-rotating-display/internal/poll"
)

// Slide identifies one of the fixed full-screen layouts.
type Slide int

const (
	Weather Slide = iota
	HF
	UTC
)

func (s Slide) String() string {
	switch s {
	case Weather:
		return "weather"
	case HF:
		return "hf"
	case UTC:
		return "utc"
	default:
		return "unknown"
	}
}

// Source returns the reading source the slide is bound to.
func (s Slide) Source() poll.Source {
	switch s {
	case Weather:
		return poll.Weather
	case HF:
		return poll.Solar
	default:
		return poll.Clock
	}
}

// Parse maps a config name onto a slide.
func Parse(name string) (Slide, error) {
	switch name {
	case "weather":
		return Weather, nil
	case "hf":
		return HF, nil
	case "utc":
		return UTC, nil
	default:
		return 0, fmt.Errorf("unknown slide %q", name)
	}
}

// TextOp places one text run. Centered ops ignore X.
type TextOp struct {
	Text     string
	X, Y     int
	Centered bool
	Scale    int
	Fg       ili9341.Color
}

// DrawPlan is the ephemeral output of one render pass: cleared background
// plus ordered text runs. It is consumed immediately and discarded.
type DrawPlan struct {
	Background ili9341.Color
	Ops        []TextOp
}

// Layout is the static configuration the renderer folds into plans.
type Layout struct {
	LocationName     string
	LocalOffsetHours int
}
