package vision

import (
	"image"
	"image/draw"
)

// ROI is a lookahead window relative to the frame origin.
type ROI struct {
	X, Width, Y, Height int
}

// Rect returns the unclamped rectangle in frame coordinates.
func (r ROI) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Clamp intersects the ROI with frame bounds. The result may be empty.
func (r ROI) Clamp(bounds image.Rectangle) image.Rectangle {
	if r.Width <= 0 || r.Height <= 0 {
		return image.Rectangle{}
	}
	return r.Rect().Add(bounds.Min).Intersect(bounds)
}

// ExtractROI returns the sub-image of frame covered by roi after clamping,
// together with the clamped rectangle in frame coordinates. An empty rect
// yields a nil image.
func ExtractROI(frame image.Image, roi ROI) (image.Image, image.Rectangle) {
	if frame == nil {
		return nil, image.Rectangle{}
	}
	rect := roi.Clamp(frame.Bounds())
	if rect.Empty() {
		return nil, image.Rectangle{}
	}
	if s, ok := frame.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return s.SubImage(rect), rect
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), frame, rect.Min, draw.Src)
	return out, rect
}
