// Package glyph rasterizes text into fixed-size pixel cells and blits them
// onto a panel. It has no knowledge of slide semantics: pure mapping from
// (rune, size class) to a pixel block, one blit per glyph cell.
package glyph

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/verone3d/esp32-rotating-display/internal/ili9341"
)

// Unscaled glyph cell geometry of the bitmap font.
const (
	CellWidth  = 6
	CellHeight = 12
)

// Target is the drawing surface glyphs are blitted onto. The panel device
// implements it.
type Target interface {
	Size() (w, h int)
	BlitPixels(r image.Rectangle, pix []ili9341.Color) error
}

// Renderer turns strings into pixel blits. It keeps no state between calls.
type Renderer struct {
	face font.Face
}

func NewRenderer() *Renderer {
	return &Renderer{face: bitmapfont.Face}
}

// TextWidth returns the pixel width of text at the given size class. Every
// glyph has the same fixed advance.
func TextWidth(text string, scale int) int {
	n := 0
	for range text {
		n++
	}
	return n * CellWidth * scale
}

// DrawText draws text with its top-left corner at (x, y), advancing by one
// scaled cell per rune. Glyph cells falling outside the panel are clipped
// whole. Unsupported codepoints render as a placeholder box.
func (rd *Renderer) DrawText(t Target, text string, x, y int, scale int, fg, bg ili9341.Color) error {
	if scale < 1 {
		scale = 1
	}
	w, h := t.Size()
	cw, ch := CellWidth*scale, CellHeight*scale
	cx := x
	for _, r := range text {
		cell := image.Rect(cx, y, cx+cw, y+ch)
		cx += cw
		if !cell.In(image.Rect(0, 0, w, h)) {
			continue
		}
		pix := rd.renderCell(r, scale, fg, bg)
		if err := t.BlitPixels(cell, pix); err != nil {
			return err
		}
	}
	return nil
}

// DrawCenteredText draws text horizontally centered at row y.
func (rd *Renderer) DrawCenteredText(t Target, text string, y int, scale int, fg, bg ili9341.Color) error {
	w, _ := t.Size()
	x := (w - TextWidth(text, scale)) / 2
	if x < 0 {
		x = 0
	}
	return rd.DrawText(t, text, x, y, scale, fg, bg)
}

func (rd *Renderer) renderCell(r rune, scale int, fg, bg ili9341.Color) []ili9341.Color {
	cell := image.NewRGBA(image.Rect(0, 0, CellWidth, CellHeight))
	draw.Draw(cell, cell.Bounds(), image.NewUniform(bg.RGBA()), image.Point{}, draw.Src)

	if _, ok := rd.face.GlyphAdvance(r); ok {
		d := &font.Drawer{
			Dst:  cell,
			Src:  image.NewUniform(fg.RGBA()),
			Face: rd.face,
			Dot:  fixed.P(0, rd.face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(string(r))
	} else {
		drawPlaceholder(cell, fg.RGBA())
	}

	out := cell
	if scale > 1 {
		out = image.NewRGBA(image.Rect(0, 0, CellWidth*scale, CellHeight*scale))
		draw.NearestNeighbor.Scale(out, out.Bounds(), cell, cell.Bounds(), draw.Src, nil)
	}

	b := out.Bounds()
	pix := make([]ili9341.Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pix = append(pix, ili9341.FromColor(out.RGBAAt(x, y)))
		}
	}
	return pix
}

// drawPlaceholder outlines the glyph cell, leaving a one-pixel margin.
func drawPlaceholder(cell *image.RGBA, fg color.RGBA) {
	b := cell.Bounds().Inset(1)
	for x := b.Min.X; x < b.Max.X; x++ {
		cell.SetRGBA(x, b.Min.Y, fg)
		cell.SetRGBA(x, b.Max.Y-1, fg)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		cell.SetRGBA(b.Min.X, y, fg)
		cell.SetRGBA(b.Max.X-1, y, fg)
	}
}
