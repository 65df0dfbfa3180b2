package runner

import (
	"context"
	"image"
	"time"

	"github.com/soocke/dino-bot-go/domain/action"
	"github.com/soocke/dino-bot-go/domain/capture"
	"github.com/soocke/dino-bot-go/domain/vision"
)

// ArmState enumerates TimingController states.
type ArmState int

const (
	StateArmed ArmState = iota
	StateDisarmed
)

func (s ArmState) String() string {
	switch s {
	case StateArmed:
		return "armed"
	case StateDisarmed:
		return "disarmed"
	default:
		return "unknown"
	}
}

// TimingState is the decision state owned by the TimingController.
type TimingState struct {
	Armed    bool
	InAir    bool
	LastJump time.Time
	LastDrop time.Time
}

// State maps Armed onto ArmState.
func (t TimingState) State() ArmState {
	if t.Armed {
		return StateArmed
	}
	return StateDisarmed
}

// TrackingRecord follows the obstacle of the most recent jump until its
// corrective drop fires. Values are copies; mutate through ObstacleTracker.
type TrackingRecord struct {
	Active     bool
	TrailXLast int
	JumpTime   time.Time
	DropDone   bool
}

// TickReport is everything one loop iteration observed and decided.
// Renderers consume it read-only.
type TickReport struct {
	Sequence   uint64
	Now        time.Time
	Frame      capture.FrameSnapshot
	ROI        vision.ROI
	Block      vision.Block
	HasBlock   bool
	TriggerX   int
	SafeClearX int
	Timing     TimingState
	Tracking   TrackingRecord
	Jumped     bool
	Dropped    bool
	Stalled    bool
	Gated      bool // decisions skipped (paused or focus lost)
	Err        error
	Elapsed    time.Duration
}

// StateListener is called on each Armed/Disarmed transition.
type StateListener func(prev, next ArmState)

// Actions is the subset of action.Executor the loop drives.
type Actions interface {
	Tap(ctx context.Context, k action.Key) error
	Hold(ctx context.Context, k action.Key, d time.Duration) error
	ReleaseAll() error
}

// Renderer consumes tick reports for display. It must not block.
type Renderer interface {
	Render(TickReport)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(TickReport)

func (f RendererFunc) Render(r TickReport) { f(r) }

// Gate reports whether actions may be issued right now.
type Gate interface {
	Open() bool
}

// StallWatcher flags a frozen video feed.
type StallWatcher interface {
	Observe(img image.Image) (stalled, entered bool)
}

// Recorder receives loop instrumentation. All methods must be cheap.
type Recorder interface {
	Tick(elapsed time.Duration, detected bool)
	Jump()
	Drop()
	Stall()
	CaptureError()
	ActionError()
	Armed(bool)
}

var (
	_ Actions      = (*action.Executor)(nil)
	_ Renderer     = RendererFunc(nil)
	_ StallWatcher = (*capture.StallDetector)(nil)
)
