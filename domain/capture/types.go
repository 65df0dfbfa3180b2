package capture

import (
	"context"
	"errors"
	"image"
	"time"
)

var (
	// ErrEmptyRect is returned for a zero-area capture rectangle.
	ErrEmptyRect = errors.New("capture: empty rectangle")
	// ErrEmptyFrame is returned when the platform grab yields no pixels.
	ErrEmptyFrame = errors.New("capture: empty frame")
)

// FrameSnapshot carries a captured frame and metadata. Image bounds start at
// (0,0) and map to the top-left corner of the game rectangle.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Empty reports whether the snapshot carries no pixels.
func (f FrameSnapshot) Empty() bool { return f.Image == nil || f.Image.Rect.Empty() }

// Source supplies the most recent frame of the game rectangle.
type Source interface {
	Grab(ctx context.Context) (FrameSnapshot, error)
}
