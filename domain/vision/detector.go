package vision

import (
	"image"

	"github.com/disintegration/gift"
)

// Params configures obstacle detection.
type Params struct {
	Threshold         uint8   // intensity below which a pixel is obstacle-like
	OccupancyFraction float64 // per-column fraction needed to mark a column occupied
	GapBridgeLength   int     // widest gap (columns) bridged by the closing
	MinRunLength      int     // shortest run accepted as an obstacle
	Invert            bool    // flip polarity for light-on-dark themes
}

// Block describes the nearest obstacle run in frame coordinates.
// LeadX <= TrailX and WidthPx == TrailX-LeadX+1.
type Block struct {
	LeadX   int
	TrailX  int
	WidthPx int
	Rect    image.Rectangle // clamped ROI the block was found in
}

// Detector finds the nearest obstacle in a frame's ROI.
// Not safe for concurrent use; buffers are reused between calls.
type Detector struct {
	params Params
	filter *gift.GIFT
	gray   *image.Gray
	occ    []float64
	hit    []bool
}

// NewDetector returns a detector for p.
func NewDetector(p Params) *Detector {
	filters := []gift.Filter{gift.Grayscale()}
	if p.Invert {
		filters = append(filters, gift.Invert())
	}
	return &Detector{params: p, filter: gift.New(filters...)}
}

// Params returns the detection parameters.
func (d *Detector) Params() Params { return d.params }

// Detect scans roi of frame and returns the first occupied run of columns.
// ok is false for an empty ROI or when no run reaches MinRunLength.
func (d *Detector) Detect(frame image.Image, roi ROI) (Block, bool) {
	sub, rect := ExtractROI(frame, roi)
	if sub == nil {
		return Block{}, false
	}
	g := d.intensity(sub)
	d.occ = ColumnOccupancy(g, d.params.Threshold, d.occ)
	d.hit = Binarize(d.occ, d.params.OccupancyFraction, d.hit)
	closed := CloseGaps(d.hit, d.params.GapBridgeLength)
	lead, trail, ok := FirstRun(closed)
	if !ok {
		return Block{}, false
	}
	width := trail - lead + 1
	if width < d.params.MinRunLength {
		return Block{}, false
	}
	return Block{
		LeadX:   rect.Min.X + lead,
		TrailX:  rect.Min.X + trail,
		WidthPx: width,
		Rect:    rect,
	}, true
}

// intensity converts src to grayscale (inverted when configured) into a
// reused buffer whose origin is (0,0).
func (d *Detector) intensity(src image.Image) *image.Gray {
	bounds := d.filter.Bounds(src.Bounds())
	if d.gray == nil || d.gray.Rect != bounds {
		d.gray = image.NewGray(bounds)
	}
	d.filter.Draw(d.gray, src)
	return d.gray
}

// Detect is a one-shot helper over a fresh Detector.
func Detect(frame image.Image, roi ROI, p Params) (Block, bool) {
	return NewDetector(p).Detect(frame, roi)
}
