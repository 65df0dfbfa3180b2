package vision

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	light = 247
	dark  = 83
)

// synthFrame creates a uniform light RGBA frame.
func synthFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = light, light, light, 255
	}
	return img
}

// paintColumns sets columns [x0,x1) between rows [y0,y1) to lum.
func paintColumns(img *image.RGBA, x0, x1, y0, y1 int, lum byte) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = lum, lum, lum
		}
	}
}

func defaultParams() Params {
	return Params{Threshold: 100, OccupancyFraction: 0.12, GapBridgeLength: 4, MinRunLength: 2}
}

var lookahead = ROI{X: 55, Width: 450, Y: 70, Height: 50}

func TestDetect_EmptyFrameNoObstacle(t *testing.T) {
	frame := synthFrame(600, 155)
	if b, ok := Detect(frame, lookahead, defaultParams()); ok {
		t.Fatalf("expected no obstacle, got %+v", b)
	}
}

func TestDetect_SparseDarkPixelsBelowOccupancy(t *testing.T) {
	frame := synthFrame(600, 155)
	// 5 of 50 rows per column = 0.10 < 0.12
	paintColumns(frame, 200, 230, 70, 75, dark)
	if b, ok := Detect(frame, lookahead, defaultParams()); ok {
		t.Fatalf("expected no obstacle below occupancy fraction, got %+v", b)
	}
}

func TestDetect_SingleRunOffsetByROIOrigin(t *testing.T) {
	frame := synthFrame(600, 155)
	// ROI-local columns 65..94 -> frame columns 120..149.
	paintColumns(frame, 120, 150, 80, 120, dark)
	b, ok := Detect(frame, lookahead, defaultParams())
	if !ok {
		t.Fatalf("expected obstacle")
	}
	want := Block{LeadX: 120, TrailX: 149, WidthPx: 30, Rect: image.Rect(55, 70, 505, 120)}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Fatalf("block mismatch (-want +got):\n%s", diff)
	}
}

func TestDetect_PartialHeightSilhouette(t *testing.T) {
	frame := synthFrame(600, 155)
	// 10 of 50 rows = 0.2 occupancy
	paintColumns(frame, 300, 310, 110, 120, dark)
	b, ok := Detect(frame, lookahead, defaultParams())
	if !ok || b.LeadX != 300 || b.WidthPx != 10 {
		t.Fatalf("unexpected result ok=%v block=%+v", ok, b)
	}
}

func TestDetect_GapBridging(t *testing.T) {
	cases := []struct {
		name      string
		gap       int
		wantTrail int
	}{
		{"gap equal to bridge merges", 4, 100 + 10 + 4 + 10 - 1},
		{"gap smaller merges", 2, 100 + 10 + 2 + 10 - 1},
		{"gap wider keeps first only", 5, 109},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame := synthFrame(600, 155)
			paintColumns(frame, 100, 110, 70, 120, dark)
			second := 110 + tc.gap
			paintColumns(frame, second, second+10, 70, 120, dark)
			b, ok := Detect(frame, lookahead, defaultParams())
			if !ok {
				t.Fatalf("expected obstacle")
			}
			if b.LeadX != 100 || b.TrailX != tc.wantTrail {
				t.Fatalf("lead=%d trail=%d, want 100..%d", b.LeadX, b.TrailX, tc.wantTrail)
			}
			if b.WidthPx != b.TrailX-b.LeadX+1 {
				t.Fatalf("width invariant broken: %+v", b)
			}
		})
	}
}

func TestDetect_RunShorterThanMinimumRejected(t *testing.T) {
	frame := synthFrame(600, 155)
	paintColumns(frame, 200, 201, 70, 120, dark)
	p := defaultParams()
	p.GapBridgeLength = 0
	if b, ok := Detect(frame, lookahead, p); ok {
		t.Fatalf("single column should be rejected as noise, got %+v", b)
	}
	p.MinRunLength = 1
	if _, ok := Detect(frame, lookahead, p); !ok {
		t.Fatalf("single column should pass with min run 1")
	}
}

func TestDetect_NearestRunWins(t *testing.T) {
	frame := synthFrame(600, 155)
	paintColumns(frame, 400, 440, 70, 120, dark)
	paintColumns(frame, 150, 170, 70, 120, dark)
	b, ok := Detect(frame, lookahead, defaultParams())
	if !ok || b.LeadX != 150 || b.TrailX != 169 {
		t.Fatalf("expected nearest block 150..169, got ok=%v %+v", ok, b)
	}
}

func TestDetect_Invert(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 600, 155))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i], frame.Pix[i+1], frame.Pix[i+2], frame.Pix[i+3] = 20, 20, 20, 255
	}
	paintColumns(frame, 250, 262, 70, 120, 230)
	p := defaultParams()
	b, ok := Detect(frame, lookahead, p)
	if !ok || b.LeadX != 55 || b.TrailX != 249 {
		t.Fatalf("dark theme without invert should flood from roi start, got ok=%v %+v", ok, b)
	}
	p.Invert = true
	b, ok = Detect(frame, lookahead, p)
	if !ok || b.LeadX != 250 || b.WidthPx != 12 {
		t.Fatalf("inverted detection mismatch ok=%v %+v", ok, b)
	}
}

func TestDetect_ROIClampedAndEmpty(t *testing.T) {
	frame := synthFrame(200, 100)
	paintColumns(frame, 150, 200, 70, 100, dark)
	b, ok := Detect(frame, lookahead, defaultParams())
	if !ok {
		t.Fatalf("expected obstacle inside clamped roi")
	}
	if b.Rect != image.Rect(55, 70, 200, 100) || b.TrailX != 199 {
		t.Fatalf("clamp mismatch: %+v", b)
	}
	if _, ok := Detect(frame, ROI{X: 300, Width: 50, Y: 0, Height: 10}, defaultParams()); ok {
		t.Fatalf("roi outside frame must yield no obstacle")
	}
	if _, ok := Detect(nil, lookahead, defaultParams()); ok {
		t.Fatalf("nil frame must yield no obstacle")
	}
}

func TestDetector_ReusesBuffersAcrossFrames(t *testing.T) {
	d := NewDetector(defaultParams())
	frame := synthFrame(600, 155)
	paintColumns(frame, 300, 320, 70, 120, dark)
	if _, ok := d.Detect(frame, lookahead); !ok {
		t.Fatalf("expected obstacle")
	}
	if b, ok := d.Detect(synthFrame(600, 155), lookahead); ok {
		t.Fatalf("stale buffer leaked detection: %+v", b)
	}
}
