package srv

import (
	"testing"
	"time"

	"github.com/verone3d/esp32-rotating-display/internal/slide"
)

func TestRotationCycles(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newRotation([]string{"weather", "hf", "utc"}, 10*time.Second, start)

	want := []slide.Slide{slide.Weather, slide.HF, slide.UTC, slide.Weather, slide.HF, slide.UTC}
	now := start
	for i, w := range want {
		if r.active() != w {
			t.Fatalf("step %d: active = %v, want %v", i, r.active(), w)
		}
		now = now.Add(10 * time.Second)
		if !r.advance(now) {
			t.Fatalf("step %d: advance at %v did not change slide", i, now)
		}
	}
}

func TestRotationHoldsForDuration(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newRotation([]string{"weather", "hf", "utc"}, 10*time.Second, start)

	for elapsed := time.Second; elapsed < 10*time.Second; elapsed += time.Second {
		if r.advance(start.Add(elapsed)) {
			t.Fatalf("slide changed after only %v", elapsed)
		}
		if r.active() != slide.Weather {
			t.Fatalf("active = %v before duration elapsed", r.active())
		}
	}
	if !r.advance(start.Add(10 * time.Second)) {
		t.Fatal("slide did not change once duration elapsed")
	}
}

func TestRotationSkipRestartsDwell(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newRotation([]string{"weather", "hf", "utc"}, 10*time.Second, start)

	at := start.Add(7 * time.Second)
	r.skip(at)
	if r.active() != slide.HF {
		t.Fatalf("active = %v after skip, want hf", r.active())
	}

	// The dwell timer counts from the skip, not the original change.
	if r.advance(start.Add(12 * time.Second)) {
		t.Fatal("slide changed before full dwell after skip")
	}
	if !r.advance(at.Add(10 * time.Second)) {
		t.Fatal("slide did not change a full dwell after skip")
	}
}

func TestRotationSingleSlide(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := newRotation([]string{"utc"}, 10*time.Second, start)

	if !r.advance(start.Add(10 * time.Second)) {
		t.Fatal("advance reported no change")
	}
	if r.active() != slide.UTC {
		t.Fatalf("active = %v, want utc", r.active())
	}
}
