// Package ili9341 drives an ILI9341 TFT controller over a command/data bus.
// The driver owns the controller's addressing window: every drawing
// primitive reestablishes the window before streaming pixel data, because
// the window is shared mutable state on the bus.
package ili9341

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Controller command subset used by this driver.
const (
	cmdNOP     = 0x00
	cmdSWRESET = 0x01
	cmdRDDST   = 0x09
	cmdSLPOUT  = 0x11
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2a
	cmdPASET   = 0x2b
	cmdRAMWR   = 0x2c
	cmdMADCTL  = 0x36
	cmdPIXFMT  = 0x3a
)

// MADCTL bits.
const (
	madctlMY  = 0x80
	madctlMX  = 0x40
	madctlMV  = 0x20
	madctlBGR = 0x08
)

// The glass is 240x320 portrait; orientation remaps it at the controller.
const (
	physicalWidth  = 240
	physicalHeight = 320
)

// Orientation selects the MADCTL memory access order applied at Init.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
	PortraitFlipped
	LandscapeFlipped
)

func (o Orientation) madctl() byte {
	switch o {
	case Landscape:
		return madctlMV | madctlBGR
	case PortraitFlipped:
		return madctlMY | madctlBGR
	case LandscapeFlipped:
		return madctlMX | madctlMY | madctlMV | madctlBGR
	default:
		return madctlMX | madctlBGR
	}
}

// Size returns the logical panel dimensions under this orientation.
func (o Orientation) Size() (w, h int) {
	if o == Landscape || o == LandscapeFlipped {
		return physicalHeight, physicalWidth
	}
	return physicalWidth, physicalHeight
}

// ErrNotAcknowledged means the controller status readback after the init
// sequence returned nothing plausible: no panel, or broken wiring.
var ErrNotAcknowledged = errors.New("ili9341: controller did not acknowledge init sequence")

type Config struct {
	Orientation Orientation
}

// Device sequences drawing primitives into controller commands. It is not
// safe for concurrent use; the caller serializes access to the bus.
type Device struct {
	bus         Bus
	orientation Orientation
	width       int
	height      int

	window      image.Rectangle
	initialized bool
}

func New(bus Bus, cfg Config) *Device {
	w, h := cfg.Orientation.Size()
	return &Device{
		bus:         bus,
		orientation: cfg.Orientation,
		width:       w,
		height:      h,
	}
}

func (d *Device) Size() (w, h int) {
	return d.width, d.height
}

func (d *Device) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Init performs the power-on sequence: reset, pixel format, memory access
// order, sleep-out, display-on, then a status readback. It must be called
// exactly once before any drawing primitive. An error here is fatal to the
// caller; the system cannot present anything without a working panel.
func (d *Device) Init() error {
	hardReset, err := d.bus.Reset()
	if err != nil {
		return err
	}
	if !hardReset {
		if err := d.bus.Command(cmdSWRESET); err != nil {
			return err
		}
		time.Sleep(150 * time.Millisecond)
	}

	steps := []struct {
		cmd   byte
		args  []byte
		delay time.Duration
	}{
		{cmd: cmdPIXFMT, args: []byte{0x55}}, // 16bpp RGB565
		{cmd: cmdMADCTL, args: []byte{d.orientation.madctl()}},
		{cmd: cmdSLPOUT, delay: 120 * time.Millisecond},
		{cmd: cmdDISPON, delay: 20 * time.Millisecond},
	}
	for _, step := range steps {
		if err := d.bus.Command(step.cmd, step.args...); err != nil {
			return err
		}
		if step.delay > 0 {
			time.Sleep(step.delay)
		}
	}

	status, err := d.bus.Read(cmdRDDST, 4)
	if err != nil {
		return err
	}
	if !plausibleStatus(status) {
		return ErrNotAcknowledged
	}

	d.initialized = true
	d.window = d.Bounds()
	return nil
}

// plausibleStatus rejects the two patterns a floating or dead bus produces.
func plausibleStatus(status []byte) bool {
	zeros, ones := true, true
	for _, b := range status {
		if b != 0x00 {
			zeros = false
		}
		if b != 0xff {
			ones = false
		}
	}
	return !zeros && !ones
}

// SetWindow constrains subsequent pixel writes to the given sub-rectangle.
// Out-of-range or inverted coordinates are a programming error and panic.
func (d *Device) SetWindow(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x0 > x1 || y0 > y1 || x1 >= d.width || y1 >= d.height {
		panic(fmt.Sprintf("ili9341: window (%d,%d)-(%d,%d) outside %dx%d panel", x0, y0, x1, y1, d.width, d.height))
	}
	if !d.initialized {
		panic("ili9341: drawing before Init")
	}
	if err := d.bus.Command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.bus.Command(cmdPASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	if err := d.bus.Command(cmdRAMWR); err != nil {
		return err
	}
	d.window = image.Rect(x0, y0, x1+1, y1+1)
	return nil
}

// FillRect floods a rectangle with one color.
func (d *Device) FillRect(r image.Rectangle, c Color) error {
	r = r.Canon()
	if err := d.SetWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1); err != nil {
		return err
	}
	total := r.Dx() * r.Dy()
	chunk := make([]byte, 0, 2*512)
	for i := 0; i < total; i++ {
		chunk = append(chunk, c.hi(), c.lo())
		if len(chunk) == cap(chunk) {
			if err := d.bus.Data(chunk); err != nil {
				return err
			}
			chunk = chunk[:0]
		}
	}
	if len(chunk) > 0 {
		return d.bus.Data(chunk)
	}
	return nil
}

// BlitPixels writes a row-major RGB565 pixel stream into a rectangle. The
// stream length must match the rectangle; a mismatch is a programming error.
func (d *Device) BlitPixels(r image.Rectangle, pix []Color) error {
	r = r.Canon()
	if len(pix) != r.Dx()*r.Dy() {
		panic(fmt.Sprintf("ili9341: %d pixels for %dx%d blit", len(pix), r.Dx(), r.Dy()))
	}
	if err := d.SetWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1); err != nil {
		return err
	}
	buf := make([]byte, 0, 2*len(pix))
	for _, c := range pix {
		buf = append(buf, c.hi(), c.lo())
	}
	return d.bus.Data(buf)
}

// Clear fills the entire panel.
func (d *Device) Clear(c Color) error {
	return d.FillRect(d.Bounds(), c)
}

// DisplayOff blanks the panel without losing GRAM contents.
func (d *Device) DisplayOff() error {
	return d.bus.Command(cmdDISPOFF)
}

// DisplayOn re-enables output after DisplayOff.
func (d *Device) DisplayOn() error {
	return d.bus.Command(cmdDISPON)
}
