package srv

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/apimodel"
	"github.com/verone3d/esp32-rotating-display/internal/poll"
	"github.com/verone3d/esp32-rotating-display/internal/srv/event"
)

func (s *ServerApp) eventLoop() {
	for loop := true; loop; {
		select {
		case ev := <-s.tickerDevice.EventChannel():
			switch data := ev.Data.(type) {
			case event.TickerEventTickData:
				changed := s.rotation.advance(data.At)
				if changed {
					logrus.Debugf("Rotate to slide %s", s.rotation.active())
				}
				if s.needsRepaint(changed) {
					s.refreshDisplay()
				}
			}
		case ev := <-s.pollerDevice.EventChannel():
			switch data := ev.Data.(type) {
			case event.PollEventCommittedData:
				logrus.Debugf("Receive committed reading for %s", data.Source)
				if s.rotation.active().Source() == data.Source {
					s.refreshDisplay()
				}
			}
		case ev := <-s.apiEventChannel():
			switch data := ev.Data.(type) {
			case event.ApiEventNextSlideData:
				s.rotation.skip(time.Now())
				logrus.Infof("Skip to slide %s", s.rotation.active())
				ev.Result <- nil
				s.refreshDisplay()
			case event.ApiEventDisplaySwitchData:
				on := s.panelDevice.Switch()
				s.ServerState.SetDisplayOn(on)
				logrus.Infof("Display switched %s", onOff(on))
				ev.Result <- nil
				if on {
					s.refreshDisplay()
				}
			case event.ApiEventStatusData:
				data.Reply <- s.buildStatus()
			}
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

// apiEventChannel returns a nil channel when the API is disabled, which
// simply removes the case from the select.
func (s *ServerApp) apiEventChannel() chan event.ApiEvent {
	if s.apiDevice == nil {
		return nil
	}
	return s.apiDevice.EventChannel()
}

func (s *ServerApp) buildStatus() apimodel.Status {
	snap := s.pollCache.Snapshot()
	now := time.Now()

	status := apimodel.Status{
		ActiveSlide: s.rotation.active().String(),
		SlideOrder:  s.ServerParam.Display.SlideOrder,
		DisplayOn:   s.panelDevice.IsOn(),
	}
	status.Sources = append(status.Sources,
		sourceStatus(poll.Weather, snap.Weather.Valid, snap.Weather.LastSuccess, now),
		sourceStatus(poll.Solar, snap.Solar.Valid, snap.Solar.LastSuccess, now),
		sourceStatus(poll.Clock, snap.Clock.Valid, snap.Clock.LastSuccess, now))
	return status
}

func sourceStatus(src poll.Source, valid bool, lastSuccess time.Time, now time.Time) apimodel.SourceStatus {
	st := apimodel.SourceStatus{
		Source: src.String(),
		Valid:  valid,
	}
	if valid {
		st.AgeSeconds = now.Sub(lastSuccess).Seconds()
		st.LastSuccess = lastSuccess.UTC().Format(time.RFC3339)
	}
	return st
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
