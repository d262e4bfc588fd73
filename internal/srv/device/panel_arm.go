package device

import (
	"sync"

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
}

func (d *Panel) startSimulation() {
}

func (d *Panel) invalidateSimulationWindow() {
}

func (d *Panel) closeSimulationWindow() {
}
