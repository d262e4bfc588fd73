package srv

import (
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
	"github.com/verone3d/esp32-rotating-display/internal/slide"
)

// panelSurface is what a repaint needs from the panel device.
type panelSurface interface {
	IsOn() bool
	Size() (w, h int)
	Clear(c ili9341.Color) error
	BlitPixels(r image.Rectangle, pix []ili9341.Color) error
	Present()
}

func (s *ServerApp) refreshDisplay() {
	s.repaint(s.panelDevice)
}

// repaint draws the active slide from the reading cache. A bus failure
// abandons the frame and marks it dirty, so the next tick repaints instead
// of leaving a partial slide on the glass until the next rotation.
func (s *ServerApp) repaint(p panelSurface) {
	if !p.IsOn() {
		return
	}

	layout := slide.Layout{
		LocationName:     s.ServerParam.Location.Name,
		LocalOffsetHours: s.ServerParam.Clock.LocalOffsetHours,
	}
	plan := slide.Render(s.rotation.active(), s.pollCache.Snapshot(), time.Now(), layout)

	if err := p.Clear(plan.Background); err != nil {
		logrus.Warnf("Abandon frame: %v", err)
		s.frameDirty = true
		return
	}
	for _, op := range plan.Ops {
		var err error
		if op.Centered {
			err = s.renderer.DrawCenteredText(p, op.Text, op.Y, op.Scale, op.Fg, plan.Background)
		} else {
			err = s.renderer.DrawText(p, op.Text, op.X, op.Y, op.Scale, op.Fg, plan.Background)
		}
		if err != nil {
			logrus.Warnf("Abandon frame: %v", err)
			s.frameDirty = true
			return
		}
	}

	p.Present()
	s.frameDirty = false
}

// needsRepaint decides whether a tick repaints: on slide change, while a
// previous frame was abandoned, and every second on the clock slide.
func (s *ServerApp) needsRepaint(changed bool) bool {
	return changed || s.frameDirty || s.rotation.active() == slide.UTC
}
