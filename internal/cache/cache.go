// Package cache keeps the last known-good reading per source. Records are
// replaced as a unit on a successful poll and never touched on failure, so
// a transient network error keeps the previous values on screen instead of
// blanking the slide.
package cache

import (
	"sync"
	"time"

	"github.com/verone3d/esp32-rotating-display/internal/poll"
)

// Stale wraps a reading with its validity. Valid is false only before the
// first successful poll ever completes.
type Stale[T any] struct {
	Value       T
	Valid       bool
	LastSuccess time.Time
}

// Age reports how old the reading is, or zero when never valid.
func (s Stale[T]) Age(now time.Time) time.Duration {
	if !s.Valid {
		return 0
	}
	return now.Sub(s.LastSuccess)
}

// Cache holds exactly one record per source for the process lifetime. The
// poller goroutines write, the event loop reads.
type Cache struct {
	mu      sync.RWMutex
	weather Stale[poll.WeatherReading]
	solar   Stale[poll.SolarReading]
	clock   Stale[poll.ClockReading]

	lastAttempt map[poll.Source]time.Time
}

func New() *Cache {
	return &Cache{lastAttempt: make(map[poll.Source]time.Time)}
}

func (c *Cache) Weather() Stale[poll.WeatherReading] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weather
}

func (c *Cache) Solar() Stale[poll.SolarReading] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solar
}

func (c *Cache) Clock() Stale[poll.ClockReading] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clock
}

func (c *Cache) CommitWeather(r poll.WeatherReading, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.weather = Stale[poll.WeatherReading]{Value: r, Valid: true, LastSuccess: at}
}

func (c *Cache) CommitSolar(r poll.SolarReading, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.solar = Stale[poll.SolarReading]{Value: r, Valid: true, LastSuccess: at}
}

func (c *Cache) CommitClock(r poll.ClockReading, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock = Stale[poll.ClockReading]{Value: r, Valid: true, LastSuccess: at}
}

// NoteAttempt records that a poll was issued, successful or not. The
// renderer uses it to tell "still loading" apart from "unavailable".
func (c *Cache) NoteAttempt(s poll.Source, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastAttempt[s] = at
}

// Snapshot is a consistent read-only copy handed to the slide renderer.
type Snapshot struct {
	Weather Stale[poll.WeatherReading]
	Solar   Stale[poll.SolarReading]
	Clock   Stale[poll.ClockReading]

	WeatherAttempted bool
	SolarAttempted   bool
	ClockAttempted   bool
}

func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, wa := c.lastAttempt[poll.Weather]
	_, sa := c.lastAttempt[poll.Solar]
	_, ca := c.lastAttempt[poll.Clock]
	return Snapshot{
		Weather:          c.weather,
		Solar:            c.solar,
		Clock:            c.clock,
		WeatherAttempted: wa,
		SolarAttempted:   sa,
		ClockAttempted:   ca,
	}
}
