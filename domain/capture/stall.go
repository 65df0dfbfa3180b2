package capture

import (
	"image"

	"github.com/corona10/goimagehash"
)

const (
	stallHashWidth  = 64
	stallHashHeight = 16
)

// StallDetector flags a frozen feed: the game-over screen stops scrolling and
// consecutive frames hash identically.
type StallDetector struct {
	limit   int
	last    *goimagehash.ExtImageHash
	repeats int
	stalled bool
}

// NewStallDetector reports a stall after limit identical frames in a row.
// limit <= 0 disables detection.
func NewStallDetector(limit int) *StallDetector {
	return &StallDetector{limit: limit}
}

// Observe hashes img and returns whether the feed is stalled and whether this
// call is the one that entered the stalled state.
func (d *StallDetector) Observe(img image.Image) (stalled, entered bool) {
	if d == nil || d.limit <= 0 || img == nil {
		return false, false
	}
	hash, err := goimagehash.ExtDifferenceHash(img, stallHashWidth, stallHashHeight)
	if err != nil {
		return d.stalled, false
	}
	same := false
	if d.last != nil {
		if dist, err := d.last.Distance(hash); err == nil && dist == 0 {
			same = true
		}
	}
	d.last = hash
	if !same {
		d.repeats = 0
		d.stalled = false
		return false, false
	}
	d.repeats++
	if d.repeats >= d.limit && !d.stalled {
		d.stalled = true
		return true, true
	}
	return d.stalled, false
}

// Stalled reports the current state.
func (d *StallDetector) Stalled() bool { return d != nil && d.stalled }

// Reset forgets the previous frame.
func (d *StallDetector) Reset() {
	if d == nil {
		return
	}
	d.last = nil
	d.repeats = 0
	d.stalled = false
}
