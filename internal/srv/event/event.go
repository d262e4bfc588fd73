package event

import (
	"time"

	"github.com/verone3d/esp32-rotating-display/apimodel"
	"github.com/verone3d/esp32-rotating-display/internal/poll"
)

// Ticker
type TickerEvent struct {
	Data interface{}
}

type TickerEventTickData struct {
	At time.Time
}

// Poller
type PollEvent struct {
	Data interface{}
}

// PollEventCommittedData announces a fresh reading committed to the cache,
// so the loop can redraw without waiting for the next tick.
type PollEventCommittedData struct {
	Source poll.Source
}

// Api
type ApiEvent struct {
	Result chan error
	Data   interface{}
}

type ApiEventNextSlideData struct{}

type ApiEventDisplaySwitchData struct{}

type ApiEventStatusData struct {
	Reply chan apimodel.Status
}
