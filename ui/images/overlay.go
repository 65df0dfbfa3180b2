package images

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay lists debug annotations in frame coordinates.
type Overlay struct {
	ROI        image.Rectangle
	Block      image.Rectangle // empty when nothing was detected
	Acting     bool            // draw the block in the action colour
	TriggerX   int             // <= 0 hides the trigger line
	SafeClearX int             // <= 0 hides the safe-clear line
	Lines      []string
}

var (
	ColorROI     = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	ColorBlock   = color.RGBA{R: 0x10, G: 0xb9, B: 0x81, A: 0xff}
	ColorAction  = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	ColorTrigger = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	ColorSafe    = color.RGBA{R: 0xc0, G: 0x26, B: 0xd3, A: 0xff}
	ColorText    = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
)

const lineHeight = 13

// Annotate returns an RGBA copy of src with o drawn on top. src is not modified.
func Annotate(src image.Image, o Overlay) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)

	strokeRect(dst, o.ROI, ColorROI)
	if !o.Block.Empty() {
		c := ColorBlock
		if o.Acting {
			c = ColorAction
		}
		strokeRect(dst, o.Block, c)
	}
	span := o.ROI
	if span.Empty() {
		span = b
	}
	if o.TriggerX > 0 {
		vline(dst, o.TriggerX, span.Min.Y, span.Max.Y, ColorTrigger)
	}
	if o.SafeClearX > 0 {
		vline(dst, o.SafeClearX, span.Min.Y, span.Max.Y, ColorSafe)
	}

	d := font.Drawer{Dst: dst, Src: image.NewUniform(ColorText), Face: basicfont.Face7x13}
	for i, line := range o.Lines {
		d.Dot = fixed.P(b.Min.X+3, b.Min.Y+lineHeight*(i+1)-2)
		d.DrawString(line)
	}
	return dst
}

func strokeRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetRGBA(x, r.Min.Y, c)
		dst.SetRGBA(x, r.Max.Y-1, c)
	}
	vline(dst, r.Min.X, r.Min.Y, r.Max.Y, c)
	vline(dst, r.Max.X-1, r.Min.Y, r.Max.Y, c)
}

func vline(dst *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		dst.SetRGBA(x, y, c)
	}
}
