package device

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/internal/srv/event"
)

type Ticker struct {
	lock         sync.RWMutex
	eventChannel chan event.TickerEvent

	refreshTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewTicker() *Ticker {
	ticker := Ticker{
		eventChannel: make(chan event.TickerEvent),
		askDone:      make(chan bool),
		done:         make(chan bool),
	}
	return &ticker
}

func (d *Ticker) Start() {
	logrus.Infof("Start ticker device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker = time.NewTicker(time.Second)

	go func() {
		for loop := true; loop; {
			select {
			case now := <-d.refreshTicker.C:
				d.eventChannel <- event.TickerEvent{Data: event.TickerEventTickData{At: now}}
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

func (d *Ticker) StopSendingEvent() {
	logrus.Infof("Stop ticker device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Ticker) EventChannel() chan event.TickerEvent {
	return d.eventChannel
}
