package device

import (
	"image"
	"image/draw"
	"log"
	"sync"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
	"github.com/verone3d/esp32-rotating-display/internal/srv/config"
)

// Panel owns the physical bus; nothing else issues bus transactions.
type Panel struct {
	param config.DisplayParam

	busLock     sync.Mutex
	driver      *ili9341.Device
	framebuffer *ili9341.Framebuffer
	spiPort     spi.PortCloser
	backlight   gpio.PinOut

	lock           sync.RWMutex
	on             bool
	simulationMode bool

	simulationWindow *app.Window
}

func (d *Panel) startSimulation() {
	d.simulationWindow = app.NewWindow(app.Size(unit.Px(640), unit.Px(480)), app.MinSize(unit.Px(320), unit.Px(240)))
	go func() {
		if err := d.gioloop(); err != nil {
			log.Fatal(err)
		}
	}()
	go app.Main()
}

func (d *Panel) invalidateSimulationWindow() {
	d.simulationWindow.Invalidate()
}

func (d *Panel) closeSimulationWindow() {
	d.simulationWindow.Close()
}

func (d *Panel) gioloop() error {
	var ops op.Ops
	for {
		e := <-d.simulationWindow.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			frame := d.frameCopy()

			img := widget.Image{Src: paint.NewImageOp(frame), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// frameCopy snapshots the simulated framebuffer under the bus lock, black
// when the panel is switched off.
func (d *Panel) frameCopy() *image.RGBA {
	d.busLock.Lock()
	defer d.busLock.Unlock()

	src := d.framebuffer.Image()
	frame := image.NewRGBA(src.Bounds())
	if d.framebuffer.On() {
		draw.Draw(frame, frame.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	return frame
}
