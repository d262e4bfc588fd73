package ili9341

import "image/color"

// Color is a pixel value in the panel's native RGB565 format.
type Color uint16

const (
	Black  Color = 0x0000
	White  Color = 0xFFFF
	Yellow Color = 0xFFE0
	Cyan   Color = 0x07FF
	Green  Color = 0x07E0
	Red    Color = 0xF800
)

// FromColor converts any color.Color to RGB565.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color((r>>11)<<11 | (g>>10)<<5 | b>>11)
}

// RGBA expands the RGB565 value back to 8-bit channels.
func (c Color) RGBA() color.RGBA {
	r := uint8((c >> 11) & 0x1f)
	g := uint8((c >> 5) & 0x3f)
	b := uint8(c & 0x1f)
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

func (c Color) hi() byte { return byte(c >> 8) }
func (c Color) lo() byte { return byte(c) }
