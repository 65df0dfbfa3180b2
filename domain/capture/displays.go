package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// DisplayBounds returns the union of all active display bounds. It is empty
// when no display can be enumerated (headless CI, missing X server).
func DisplayBounds() image.Rectangle {
	var union image.Rectangle
	for i := 0; i < screenshot.NumActiveDisplays(); i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union
}

// ValidateRect checks that r lies on the active displays.
func ValidateRect(r image.Rectangle) error {
	return validateRectIn(r, DisplayBounds())
}

func validateRectIn(r, screen image.Rectangle) error {
	if r.Empty() {
		return ErrEmptyRect
	}
	if screen.Empty() {
		return nil
	}
	if !r.In(screen) {
		return fmt.Errorf("capture: game rect %v outside displays %v", r, screen)
	}
	return nil
}
