package ili9341

import (
	"image"
)

// Framebuffer is a Bus that interprets the controller command stream into an
// in-memory image. The simulation display device renders it into a window,
// and tests assert on it instead of real glass.
type Framebuffer struct {
	img      *image.RGBA
	madctl   byte
	sleeping bool
	on       bool

	window  image.Rectangle
	cursor  image.Point
	writing bool

	// Commands records every command byte seen, in order.
	Commands []byte
}

func NewFramebuffer() *Framebuffer {
	fb := &Framebuffer{}
	fb.reset()
	return fb
}

func (fb *Framebuffer) reset() {
	fb.madctl = 0
	fb.sleeping = true
	fb.on = false
	fb.writing = false
	fb.resize()
	fb.window = fb.img.Bounds()
	fb.cursor = fb.window.Min
}

func (fb *Framebuffer) resize() {
	w, h := physicalWidth, physicalHeight
	if fb.madctl&madctlMV != 0 {
		w, h = h, w
	}
	fb.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Image exposes the current frame contents.
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// At reads back one pixel as RGB565.
func (fb *Framebuffer) At(x, y int) Color {
	return FromColor(fb.img.RGBAAt(x, y))
}

// On reports whether the simulated panel is out of sleep and displaying.
func (fb *Framebuffer) On() bool {
	return fb.on && !fb.sleeping
}

func (fb *Framebuffer) Command(cmd byte, args ...byte) error {
	fb.Commands = append(fb.Commands, cmd)
	fb.writing = false
	switch cmd {
	case cmdSWRESET:
		fb.reset()
	case cmdSLPOUT:
		fb.sleeping = false
	case cmdDISPON:
		fb.on = true
	case cmdDISPOFF:
		fb.on = false
	case cmdMADCTL:
		if len(args) == 1 && args[0] != fb.madctl {
			fb.madctl = args[0]
			fb.resize()
			fb.window = fb.img.Bounds()
		}
	case cmdCASET:
		if len(args) == 4 {
			fb.window.Min.X = int(args[0])<<8 | int(args[1])
			fb.window.Max.X = (int(args[2])<<8 | int(args[3])) + 1
		}
	case cmdPASET:
		if len(args) == 4 {
			fb.window.Min.Y = int(args[0])<<8 | int(args[1])
			fb.window.Max.Y = (int(args[2])<<8 | int(args[3])) + 1
		}
	case cmdRAMWR:
		fb.cursor = fb.window.Min
		fb.writing = true
	}
	return nil
}

func (fb *Framebuffer) Data(p []byte) error {
	if !fb.writing {
		return nil
	}
	for i := 0; i+1 < len(p); i += 2 {
		c := Color(uint16(p[i])<<8 | uint16(p[i+1]))
		fb.img.SetRGBA(fb.cursor.X, fb.cursor.Y, c.RGBA())
		fb.advance()
	}
	return nil
}

// advance moves the write cursor row-major within the window, wrapping back
// to the window origin like the controller's GRAM pointer does.
func (fb *Framebuffer) advance() {
	fb.cursor.X++
	if fb.cursor.X >= fb.window.Max.X {
		fb.cursor.X = fb.window.Min.X
		fb.cursor.Y++
		if fb.cursor.Y >= fb.window.Max.Y {
			fb.cursor.Y = fb.window.Min.Y
		}
	}
}

func (fb *Framebuffer) Read(cmd byte, n int) ([]byte, error) {
	out := make([]byte, n)
	if cmd == cmdRDDST && n >= 2 {
		// Good-enough display status: sleep-out and display-on bits.
		if !fb.sleeping {
			out[1] |= 0x10
		}
		if fb.on {
			out[1] |= 0x04
		}
	}
	return out, nil
}

func (fb *Framebuffer) Reset() (bool, error) {
	fb.reset()
	return true, nil
}

// Uniform reports whether every pixel equals c, for tests.
func (fb *Framebuffer) Uniform(c Color) bool {
	want := c.RGBA()
	b := fb.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if fb.img.RGBAAt(x, y) != want {
				return false
			}
		}
	}
	return true
}

var _ Bus = (*Framebuffer)(nil)
