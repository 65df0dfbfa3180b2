package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vova616/screenshot"
)

const captureStatsLogInterval = 5 * time.Second

// ScreenSource grabs a fixed screen rectangle on demand. Grab is called from
// the sampling loop; Stats may be read from any goroutine.
type ScreenSource struct {
	rect         image.Rectangle
	grab         func(image.Rectangle) (*image.RGBA, error)
	logger       *slog.Logger
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastLog      time.Time
}

var _ Source = (*ScreenSource)(nil)

// NewScreenSource returns a source for rect in virtual screen coordinates.
func NewScreenSource(rect image.Rectangle, logger *slog.Logger) (*ScreenSource, error) {
	if rect.Empty() {
		return nil, ErrEmptyRect
	}
	return &ScreenSource{rect: rect, grab: screenshot.CaptureRect, logger: logger, lastLog: time.Now()}, nil
}

// Rect returns the captured screen rectangle.
func (s *ScreenSource) Rect() image.Rectangle { return s.rect }

// Grab captures the rectangle once. The returned image is rebased so that
// (0,0) is the rectangle's top-left corner.
func (s *ScreenSource) Grab(ctx context.Context) (FrameSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return FrameSnapshot{}, err
	}
	start := time.Now()
	img, err := s.grab(s.rect)
	if err != nil {
		s.failures.Add(1)
		return FrameSnapshot{}, fmt.Errorf("capture %v: %w", s.rect, err)
	}
	if img == nil || img.Rect.Empty() {
		s.failures.Add(1)
		return FrameSnapshot{}, ErrEmptyFrame
	}
	img.Rect = img.Rect.Sub(img.Rect.Min)

	now := time.Now()
	s.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	snap := FrameSnapshot{Image: img, CapturedAt: now, Sequence: s.sequence.Add(1)}
	s.latest.Store(&snap)

	if now.Sub(s.lastLog) >= captureStatsLogInterval {
		s.lastLog = now
		s.logStats()
	}
	return snap, nil
}

// LatestFrame returns the last successful grab.
func (s *ScreenSource) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *ScreenSource) Stats() CaptureStats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:         captures,
		Failures:         s.failures.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
	}
}

func (s *ScreenSource) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
