package poll

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ClockPoller syncs UTC from a worldtimeapi-style JSON endpoint.
type ClockPoller struct {
	client *http.Client
	url    string
	now    func() time.Time
}

func NewClockPoller(client *http.Client, url string) *ClockPoller {
	return &ClockPoller{client: client, url: url, now: time.Now}
}

func (p *ClockPoller) Poll(ctx context.Context) (ClockReading, error) {
	resp, err := get(ctx, p.client, Clock, p.url)
	if err != nil {
		return ClockReading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Unixtime int64 `json:"unixtime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ClockReading{}, &Error{Source: Clock, Kind: ParseFailed, Field: "body", Err: err}
	}
	if payload.Unixtime == 0 {
		return ClockReading{}, parseError(Clock, "unixtime")
	}

	return ClockReading{
		UTC:      time.Unix(payload.Unixtime, 0).UTC(),
		SyncedAt: p.now(),
	}, nil
}
