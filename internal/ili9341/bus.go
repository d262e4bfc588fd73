package ili9341

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Bus is the synchronous command/data-select bus the panel controller sits
// on. Command sends one command byte followed by its parameter bytes, Data
// streams a raw payload (pixel data after a RAMWR), Read issues a command
// and reads back n bytes. Reset performs a hardware reset when the wiring
// provides one; performed=false tells the driver to fall back to a software
// reset command.
type Bus interface {
	Command(cmd byte, args ...byte) error
	Data(p []byte) error
	Read(cmd byte, n int) ([]byte, error)
	Reset() (performed bool, err error)
}

// spi.Conn implementations commonly cap a single transfer at one DMA page.
const maxTxSize = 4096

// SPIBus drives the controller over a SPI port with a data/command GPIO
// line. The reset pin is optional: boards wiring RST to the supply leave it
// nil and rely on the driver's software reset.
type SPIBus struct {
	conn spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
}

func NewSPIBus(conn spi.Conn, dc gpio.PinOut, rst gpio.PinOut) *SPIBus {
	return &SPIBus{conn: conn, dc: dc, rst: rst}
}

func (b *SPIBus) Command(cmd byte, args ...byte) error {
	if err := b.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("ili9341: dc low: %w", err)
	}
	if err := b.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("ili9341: command %#02x: %w", cmd, err)
	}
	if len(args) == 0 {
		return nil
	}
	if err := b.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("ili9341: dc high: %w", err)
	}
	if err := b.conn.Tx(args, nil); err != nil {
		return fmt.Errorf("ili9341: command %#02x args: %w", cmd, err)
	}
	return nil
}

func (b *SPIBus) Data(p []byte) error {
	if err := b.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("ili9341: dc high: %w", err)
	}
	for len(p) > 0 {
		chunk := p
		if len(chunk) > maxTxSize {
			chunk = chunk[:maxTxSize]
		}
		if err := b.conn.Tx(chunk, nil); err != nil {
			return fmt.Errorf("ili9341: data: %w", err)
		}
		p = p[len(chunk):]
	}
	return nil
}

func (b *SPIBus) Read(cmd byte, n int) ([]byte, error) {
	if err := b.dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("ili9341: dc low: %w", err)
	}
	if err := b.conn.Tx([]byte{cmd}, nil); err != nil {
		return nil, fmt.Errorf("ili9341: read command %#02x: %w", cmd, err)
	}
	if err := b.dc.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("ili9341: dc high: %w", err)
	}
	rx := make([]byte, n)
	if err := b.conn.Tx(make([]byte, n), rx); err != nil {
		return nil, fmt.Errorf("ili9341: read %#02x: %w", cmd, err)
	}
	return rx, nil
}

func (b *SPIBus) Reset() (bool, error) {
	if b.rst == nil {
		return false, nil
	}
	if err := b.rst.Out(gpio.High); err != nil {
		return false, fmt.Errorf("ili9341: rst high: %w", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := b.rst.Out(gpio.Low); err != nil {
		return false, fmt.Errorf("ili9341: rst low: %w", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := b.rst.Out(gpio.High); err != nil {
		return false, fmt.Errorf("ili9341: rst high: %w", err)
	}
	time.Sleep(150 * time.Millisecond)
	return true, nil
}
