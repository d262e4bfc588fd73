// Package poll fetches and parses the remote data sources. Each poller
// performs exactly one request per call: retry cadence belongs to the
// scheduler, not here.
package poll

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Source int

const (
	Weather Source = iota
	Solar
	Clock
)

func (s Source) String() string {
	switch s {
	case Weather:
		return "weather"
	case Solar:
		return "solar"
	case Clock:
		return "clock"
	default:
		return "unknown"
	}
}

// Sources lists every source in display order.
var Sources = []Source{Weather, Solar, Clock}

type ErrorKind int

const (
	ConnectionFailed ErrorKind = iota
	Timeout
	HTTPStatus
	ParseFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectionFailed:
		return "connection failed"
	case Timeout:
		return "timeout"
	case HTTPStatus:
		return "http status"
	case ParseFailed:
		return "parse failed"
	default:
		return "unknown"
	}
}

// Error is the recoverable failure of a single poll. It never propagates
// past the acquisition layer: the caller logs it and keeps the previous
// cache entry.
type Error struct {
	Source     Source
	Kind       ErrorKind
	StatusCode int    // set for HTTPStatus
	Field      string // set for ParseFailed
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case HTTPStatus:
		return fmt.Sprintf("poll %s: unexpected status %d", e.Source, e.StatusCode)
	case ParseFailed:
		return fmt.Sprintf("poll %s: missing or malformed field %q", e.Source, e.Field)
	default:
		return fmt.Sprintf("poll %s: %s: %v", e.Source, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func parseError(src Source, field string) *Error {
	return &Error{Source: src, Kind: ParseFailed, Field: field}
}

// transportError classifies a failed request as a timeout or a connection
// failure.
func transportError(src Source, err error) *Error {
	kind := ConnectionFailed
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = Timeout
	}
	return &Error{Source: src, Kind: kind, Err: err}
}

// get issues one GET and enforces a 2xx status.
func get(ctx context.Context, client *http.Client, src Source, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Source: src, Kind: ConnectionFailed, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(src, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &Error{Source: src, Kind: HTTPStatus, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// WeatherReading is the last successfully parsed weather report.
type WeatherReading struct {
	TempF       float64
	Description string
}

// SolarReading is the last successfully parsed HF propagation summary.
// Bands maps display band names (10m/20m/40m) to the feed's quality labels;
// absent bands simply have no key.
type SolarReading struct {
	SolarFlux float64
	KIndex    float64
	AIndex    float64
	Bands     map[string]string
}

// ClockReading anchors UTC at the moment the sync completed. Current time
// is derived from the local monotonic clock, not by re-polling.
type ClockReading struct {
	UTC      time.Time
	SyncedAt time.Time
}

// Now projects the reading forward to the given local instant.
func (c ClockReading) Now(at time.Time) time.Time {
	return c.UTC.Add(at.Sub(c.SyncedAt))
}
