package runner

import (
	"time"

	"github.com/soocke/dino-bot-go/domain/vision"
)

// TrackerParams configures the corrective drop.
type TrackerParams struct {
	SafeClearX int
	MinGrace   time.Duration // earliest drop after the jump (inclusive)
}

// ObstacleTracker schedules at most one fast drop per jump: once the jumped
// obstacle's trail edge passes SafeClearX and the grace period has elapsed.
type ObstacleTracker struct {
	params TrackerParams
	rec    TrackingRecord
}

func NewObstacleTracker(p TrackerParams) *ObstacleTracker {
	return &ObstacleTracker{params: p}
}

// Start opens a record for block, superseding any previous one.
func (t *ObstacleTracker) Start(block vision.Block, now time.Time) {
	t.rec = TrackingRecord{Active: true, TrailXLast: block.TrailX, JumpTime: now}
}

// Observe refreshes the trail edge. A missing block keeps the last value.
func (t *ObstacleTracker) Observe(block vision.Block, ok bool) {
	if !t.rec.Active || !ok {
		return
	}
	t.rec.TrailXLast = block.TrailX
}

// ShouldDrop reports whether the corrective drop is due now.
func (t *ObstacleTracker) ShouldDrop(now time.Time) bool {
	r := t.rec
	return r.Active && !r.DropDone &&
		now.Sub(r.JumpTime) >= t.params.MinGrace &&
		r.TrailXLast < t.params.SafeClearX
}

// Finish marks the drop done and deactivates the record.
func (t *ObstacleTracker) Finish() {
	t.rec.DropDone = true
	t.rec.Active = false
}

// Record returns a copy of the current record.
func (t *ObstacleTracker) Record() TrackingRecord { return t.rec }

// Reset discards any record.
func (t *ObstacleTracker) Reset() { t.rec = TrackingRecord{} }
