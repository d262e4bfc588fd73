package srv

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/internal/slide"
)

// rotation holds the slide cycle. It only changes on explicit advance or
// skip, never as a side effect of rendering.
type rotation struct {
	order      []slide.Slide
	duration   time.Duration
	index      int
	lastChange time.Time
}

func newRotation(names []string, duration time.Duration, now time.Time) *rotation {
	order := make([]slide.Slide, 0, len(names))
	for _, name := range names {
		s, err := slide.Parse(name)
		if err != nil {
			logrus.Fatalf("Invalid slide order: %v", err)
		}
		order = append(order, s)
	}

	return &rotation{
		order:      order,
		duration:   duration,
		lastChange: now,
	}
}

func (r *rotation) active() slide.Slide {
	return r.order[r.index]
}

// advance moves to the next slide when the current one has been shown for
// the full duration. Returns true when the cycle moved on.
func (r *rotation) advance(now time.Time) bool {
	if now.Sub(r.lastChange) < r.duration {
		return false
	}
	r.skip(now)
	return true
}

// skip forces the next slide immediately and restarts the dwell timer.
func (r *rotation) skip(now time.Time) {
	r.index = (r.index + 1) % len(r.order)
	r.lastChange = now
}
