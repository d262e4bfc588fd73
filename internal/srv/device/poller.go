package device

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bpradana/weave"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/internal/cache"
	"github.com/verone3d/esp32-rotating-display/internal/poll"
	"github.com/verone3d/esp32-rotating-display/internal/srv/config"
	"github.com/verone3d/esp32-rotating-display/internal/srv/event"
)

const pollTimeout = 10 * time.Second

// Poller fetches the three upstream sources on their own cadences and
// commits successful readings to the cache. Failures only log: the cache
// keeps serving the previous reading.
type Poller struct {
	lock         sync.RWMutex
	eventChannel chan event.PollEvent

	serverConfig *config.ServerConfig
	cache        *cache.Cache

	weatherPoller *poll.WeatherPoller
	solarPoller   *poll.SolarPoller
	clockPoller   *poll.ClockPoller

	scheduler *gocron.Scheduler

	clockSynced     bool
	clockLastResync time.Time
}

func NewPoller(serverConfig *config.ServerConfig, pollCache *cache.Cache) *Poller {
	client := &http.Client{Timeout: pollTimeout}

	poller := Poller{
		eventChannel:  make(chan event.PollEvent),
		serverConfig:  serverConfig,
		cache:         pollCache,
		weatherPoller: poll.NewWeatherPoller(client, serverConfig.Weather.ApiKey, serverConfig.Location.Zip, serverConfig.Location.Country),
		solarPoller:   poll.NewSolarPoller(client, serverConfig.Solar.Url),
		clockPoller:   poll.NewClockPoller(client, serverConfig.Clock.Url),
		scheduler:     gocron.NewScheduler(time.UTC),
	}
	return &poller
}

func (d *Poller) Start() {
	logrus.Infof("Start poller device")
	d.lock.Lock()
	defer d.lock.Unlock()

	go d.prime()

	// Steady-state cadences. The clock job runs at the short retry period
	// and skips itself until a resync is actually due.
	_, err := d.scheduler.Every(d.serverConfig.Weather.GetPollPeriod()).Do(func() {
		d.pollWeather()
	})
	if err != nil {
		logrus.Fatalf("Unable to schedule weather poll: %v", err)
	}
	_, err = d.scheduler.Every(d.serverConfig.Solar.GetPollPeriod()).Do(func() {
		d.pollSolar()
	})
	if err != nil {
		logrus.Fatalf("Unable to schedule solar poll: %v", err)
	}
	_, err = d.scheduler.Every(d.serverConfig.Clock.GetRetryPeriod()).Do(func() {
		if d.clockDue() {
			d.pollClock()
		}
	})
	if err != nil {
		logrus.Fatalf("Unable to schedule clock sync: %v", err)
	}
	d.scheduler.StartAsync()
}

// prime fetches all sources in parallel once at startup so the first
// rendered slides already carry data when the upstreams are reachable.
func (d *Poller) prime() {
	graph := weave.NewGraph()

	hooks := weave.Hooks{
		OnStart: func(ctx context.Context, taskEvent weave.TaskEvent) {
			logrus.Debugf("Priming %s", taskEvent.Metadata.Name)
		},
		OnSuccess: func(ctx context.Context, taskEvent weave.TaskEvent) {
			logrus.Infof("Primed %s in %s", taskEvent.Metadata.Name, taskEvent.Metrics.Duration)
		},
		OnFailure: func(ctx context.Context, taskEvent weave.TaskEvent) {
			logrus.Warnf("Priming %s failed: %v", taskEvent.Metadata.Name, taskEvent.Metrics.Error)
		},
	}

	weave.AddTask(graph, poll.Weather.String(), func(ctx context.Context, deps weave.DependencyResolver) (struct{}, error) {
		return struct{}{}, d.pollWeather()
	})
	weave.AddTask(graph, poll.Solar.String(), func(ctx context.Context, deps weave.DependencyResolver) (struct{}, error) {
		return struct{}{}, d.pollSolar()
	})
	weave.AddTask(graph, poll.Clock.String(), func(ctx context.Context, deps weave.DependencyResolver) (struct{}, error) {
		return struct{}{}, d.pollClock()
	})

	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout+time.Second)
	defer cancel()
	graph.Run(ctx, weave.WithErrorStrategy(weave.ContinueOnError), weave.WithGlobalHooks(hooks))
}

func (d *Poller) pollWeather() error {
	d.cache.NoteAttempt(poll.Weather, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	reading, err := d.weatherPoller.Poll(ctx)
	if err != nil {
		logrus.Warnf("Weather poll failed: %v", err)
		return err
	}
	d.cache.CommitWeather(reading, time.Now())
	d.eventChannel <- event.PollEvent{Data: event.PollEventCommittedData{Source: poll.Weather}}
	return nil
}

func (d *Poller) pollSolar() error {
	d.cache.NoteAttempt(poll.Solar, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	reading, err := d.solarPoller.Poll(ctx)
	if err != nil {
		logrus.Warnf("Solar poll failed: %v", err)
		return err
	}
	d.cache.CommitSolar(reading, time.Now())
	d.eventChannel <- event.PollEvent{Data: event.PollEventCommittedData{Source: poll.Solar}}
	return nil
}

func (d *Poller) pollClock() error {
	d.cache.NoteAttempt(poll.Clock, time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	reading, err := d.clockPoller.Poll(ctx)
	if err != nil {
		logrus.Warnf("Clock poll failed: %v", err)
		return err
	}
	d.cache.CommitClock(reading, time.Now())
	d.noteClockSync(time.Now())
	d.eventChannel <- event.PollEvent{Data: event.PollEventCommittedData{Source: poll.Clock}}
	return nil
}

// clockDue reports whether the clock job should actually fetch: always
// before the first successful sync, then only once per resync period.
func (d *Poller) clockDue() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if !d.clockSynced {
		return true
	}
	return time.Since(d.clockLastResync) >= d.serverConfig.Clock.GetResyncPeriod()
}

func (d *Poller) noteClockSync(at time.Time) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.clockSynced = true
	d.clockLastResync = at
}

func (d *Poller) StopSendingEvent() {
	logrus.Infof("Stop poller device")
	d.scheduler.Stop()
}

func (d *Poller) EventChannel() chan event.PollEvent {
	return d.eventChannel
}
