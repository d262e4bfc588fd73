package device

import (
	"image"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
	"github.com/verone3d/esp32-rotating-display/internal/srv/config"
)

func NewPanel(param config.DisplayParam, simulationMode bool) *Panel {
	device := Panel{
		param:          param,
		simulationMode: simulationMode,
	}
	return &device
}

// Start opens the bus and runs the controller init sequence exactly once.
// A panel that does not come up is fatal: nothing can be presented.
func (d *Panel) Start() {
	logrus.Infof("Start panel device")

	d.on = true

	if d.simulationMode {
		d.framebuffer = ili9341.NewFramebuffer()
		d.driver = ili9341.New(d.framebuffer, ili9341.Config{Orientation: ili9341.Landscape})
		if err := d.driver.Init(); err != nil {
			logrus.Fatalf("Unable to initialize simulated panel: %v\n", err)
		}
		d.startSimulation()
		return
	}

	if _, err := host.Init(); err != nil {
		logrus.Fatalf("Unable to initialize periph host: %v\n", err)
	}

	var err error
	d.spiPort, err = spireg.Open(d.param.SpiPort)
	if err != nil {
		logrus.Fatalf("Unable to open spi port: %v\n", err)
	}
	conn, err := d.spiPort.Connect(physic.Frequency(d.param.SpiHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		logrus.Fatalf("Unable to connect spi: %v\n", err)
	}

	dc := gpioreg.ByName(d.param.DcPin)
	if dc == nil {
		logrus.Fatalf("Unknown dc pin: %s\n", d.param.DcPin)
	}
	var rst gpio.PinOut
	if d.param.ResetPin != "" {
		if rst = gpioreg.ByName(d.param.ResetPin); rst == nil {
			logrus.Fatalf("Unknown reset pin: %s\n", d.param.ResetPin)
		}
	}
	if d.param.BacklightPin != "" {
		d.backlight = gpioreg.ByName(d.param.BacklightPin)
		if d.backlight == nil {
			logrus.Fatalf("Unknown backlight pin: %s\n", d.param.BacklightPin)
		}
		if err = d.backlight.Out(gpio.High); err != nil {
			logrus.Fatalf("Unable to drive backlight pin: %v\n", err)
		}
	}

	d.driver = ili9341.New(ili9341.NewSPIBus(conn, dc, rst), ili9341.Config{Orientation: ili9341.Landscape})
	if err = d.driver.Init(); err != nil {
		logrus.Fatalf("Unable to initialize panel: %v\n", err)
	}
}

func (d *Panel) Stop() {
	logrus.Infof("Stop panel device")

	if d.simulationMode {
		d.closeSimulationWindow()
		return
	}
	d.busLock.Lock()
	defer d.busLock.Unlock()
	if d.backlight != nil {
		_ = d.backlight.Out(gpio.Low)
	}
	_ = d.driver.DisplayOff()
	_ = d.spiPort.Close()
}

// Size returns the logical panel dimensions.
func (d *Panel) Size() (w, h int) {
	return d.driver.Size()
}

func (d *Panel) Clear(c ili9341.Color) error {
	d.busLock.Lock()
	defer d.busLock.Unlock()
	return d.driver.Clear(c)
}

func (d *Panel) FillRect(r image.Rectangle, c ili9341.Color) error {
	d.busLock.Lock()
	defer d.busLock.Unlock()
	return d.driver.FillRect(r, c)
}

func (d *Panel) BlitPixels(r image.Rectangle, pix []ili9341.Color) error {
	d.busLock.Lock()
	defer d.busLock.Unlock()
	return d.driver.BlitPixels(r, pix)
}

// Present pushes the finished frame to the simulation window. On hardware
// the pixels are already on the glass.
func (d *Panel) Present() {
	if d.simulationMode {
		d.invalidateSimulationWindow()
	}
}

func (d *Panel) SetOff() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.setOff()
}

func (d *Panel) setOff() {
	d.on = false
	d.busLock.Lock()
	defer d.busLock.Unlock()
	_ = d.driver.DisplayOff()
	if d.backlight != nil {
		_ = d.backlight.Out(gpio.Low)
	}
	if d.simulationMode {
		d.invalidateSimulationWindow()
	}
}

func (d *Panel) SetOn() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.setOn()
}

func (d *Panel) setOn() {
	d.on = true
	d.busLock.Lock()
	defer d.busLock.Unlock()
	_ = d.driver.DisplayOn()
	if d.backlight != nil {
		_ = d.backlight.Out(gpio.High)
	}
	if d.simulationMode {
		d.invalidateSimulationWindow()
	}
}

func (d *Panel) Switch() bool {
	d.lock.Lock()
	on := d.on
	d.lock.Unlock()

	if on {
		d.SetOff()
	} else {
		d.SetOn()
	}
	return !on
}

func (d *Panel) IsOn() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.on
}
