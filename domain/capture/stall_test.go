package capture

import (
	"image"
	"testing"
)

func fill(w, h int, split int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := byte(240)
			if x < split {
				v = 20
			}
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
		}
	}
	return img
}

func TestStallDetector_FlagsRepeatedFrames(t *testing.T) {
	d := NewStallDetector(3)
	frozen := fill(600, 155, 300)
	moving := fill(600, 155, 0)

	if s, e := d.Observe(frozen); s || e {
		t.Fatalf("first frame cannot be a stall")
	}
	for i := 0; i < 2; i++ {
		if s, _ := d.Observe(frozen); s {
			t.Fatalf("stalled too early at repeat %d", i+1)
		}
	}
	s, e := d.Observe(frozen)
	if !s || !e {
		t.Fatalf("expected stall entry on third repeat, got stalled=%v entered=%v", s, e)
	}
	s, e = d.Observe(frozen)
	if !s || e {
		t.Fatalf("stall should persist without re-entering, got stalled=%v entered=%v", s, e)
	}
	if s, _ := d.Observe(moving); s {
		t.Fatalf("changed frame must clear the stall")
	}
	if d.Stalled() {
		t.Fatalf("Stalled() should be false after change")
	}
}

func TestStallDetector_Disabled(t *testing.T) {
	d := NewStallDetector(0)
	img := fill(64, 16, 10)
	for i := 0; i < 10; i++ {
		if s, _ := d.Observe(img); s {
			t.Fatalf("disabled detector reported stall")
		}
	}
	var nilDetector *StallDetector
	if s, _ := nilDetector.Observe(img); s {
		t.Fatalf("nil detector reported stall")
	}
}
