package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/verone3d/esp32-rotating-display/internal/poll"
)

func TestEmptyCache(t *testing.T) {
	c := New()

	if c.Weather().Valid || c.Solar().Valid || c.Clock().Valid {
		t.Fatal("fresh cache reports valid readings")
	}

	snap := c.Snapshot()
	if snap.WeatherAttempted || snap.SolarAttempted || snap.ClockAttempted {
		t.Fatal("fresh cache reports attempted polls")
	}
}

func TestCommitReplacesAsUnit(t *testing.T) {
	c := New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	c.CommitWeather(poll.WeatherReading{TempF: 41, Description: "light rain"}, at)

	w := c.Weather()
	if !w.Valid {
		t.Fatal("committed reading not valid")
	}
	if w.Value.TempF != 41 || w.Value.Description != "light rain" {
		t.Fatalf("unexpected reading: %+v", w.Value)
	}
	if !w.LastSuccess.Equal(at) {
		t.Fatalf("LastSuccess = %v, want %v", w.LastSuccess, at)
	}

	later := at.Add(10 * time.Minute)
	c.CommitWeather(poll.WeatherReading{TempF: 44, Description: "overcast clouds"}, later)

	w = c.Weather()
	if w.Value.TempF != 44 || !w.LastSuccess.Equal(later) {
		t.Fatalf("second commit not fully applied: %+v", w)
	}
}

func TestFailedPollKeepsLastGood(t *testing.T) {
	c := New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	c.NoteAttempt(poll.Solar, at)
	c.CommitSolar(poll.SolarReading{SolarFlux: 132, KIndex: 2}, at)

	// A failed poll only notes the attempt, so nothing else changes.
	c.NoteAttempt(poll.Solar, at.Add(30*time.Minute))

	s := c.Solar()
	if !s.Valid || s.Value.SolarFlux != 132 || !s.LastSuccess.Equal(at) {
		t.Fatalf("failed poll disturbed the cached reading: %+v", s)
	}
}

func TestAttemptedWithoutSuccess(t *testing.T) {
	c := New()
	c.NoteAttempt(poll.Weather, time.Now())

	snap := c.Snapshot()
	if !snap.WeatherAttempted {
		t.Fatal("attempt not recorded")
	}
	if snap.Weather.Valid {
		t.Fatal("attempt alone made the reading valid")
	}
	if snap.SolarAttempted || snap.ClockAttempted {
		t.Fatal("attempt leaked to other sources")
	}
}

func TestStaleAge(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := Stale[poll.WeatherReading]{Valid: true, LastSuccess: at}

	if got := s.Age(at.Add(90 * time.Second)); got != 90*time.Second {
		t.Fatalf("Age = %v, want 90s", got)
	}

	var never Stale[poll.WeatherReading]
	if got := never.Age(at); got != 0 {
		t.Fatalf("Age of invalid reading = %v, want 0", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.CommitClock(poll.ClockReading{UTC: time.Unix(int64(n), 0)}, time.Now())
			c.NoteAttempt(poll.Clock, time.Now())
		}(i)
		go func() {
			defer wg.Done()
			_ = c.Snapshot()
			_ = c.Clock()
		}()
	}
	wg.Wait()

	if !c.Clock().Valid {
		t.Fatal("clock reading lost after concurrent commits")
	}
}
