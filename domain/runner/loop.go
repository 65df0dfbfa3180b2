package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/dino-bot-go/config"
	"github.com/soocke/dino-bot-go/domain/action"
	"github.com/soocke/dino-bot-go/domain/capture"
	"github.com/soocke/dino-bot-go/domain/vision"
)

// Params configures a Loop.
type Params struct {
	ROI            vision.ROI
	Detect         vision.Params
	Timing         TimingParams
	Tracker        TrackerParams
	JumpKey        action.Key
	DropKey        action.Key
	DropHold       time.Duration
	SampleInterval time.Duration
}

// ParamsFromConfig maps a validated config onto loop parameters.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	jump, err := action.ParseKey(cfg.JumpKey)
	if err != nil {
		return Params{}, fmt.Errorf("jump key: %w", err)
	}
	drop, err := action.ParseKey(cfg.DropKey)
	if err != nil {
		return Params{}, fmt.Errorf("drop key: %w", err)
	}
	return Params{
		ROI: vision.ROI{X: cfg.ROIX, Width: cfg.ROIWidth, Y: cfg.ROIY, Height: cfg.ROIHeight},
		Detect: vision.Params{
			Threshold:         uint8(cfg.Threshold),
			OccupancyFraction: cfg.OccupancyFraction,
			GapBridgeLength:   cfg.GapBridgeLength,
			MinRunLength:      cfg.MinRunLength,
			Invert:            cfg.Invert,
		},
		Timing: TimingParams{
			EarlyThreshold:   cfg.EarlyThreshold,
			LateThreshold:    cfg.LateThreshold,
			SizeCutoff:       cfg.SizeCutoff,
			SafeClearX:       cfg.SafeClearX,
			Cooldown:         cfg.InterJumpCooldown(),
			AirborneDuration: cfg.AirborneDuration(),
		},
		Tracker: TrackerParams{
			SafeClearX: cfg.SafeClearX,
			MinGrace:   cfg.MinAirborneGrace(),
		},
		JumpKey:        jump,
		DropKey:        drop,
		DropHold:       cfg.DropHoldDuration(),
		SampleInterval: cfg.SampleInterval(),
	}, nil
}

// Deps are the loop collaborators. Source and Actions are required.
type Deps struct {
	Source    capture.Source
	Actions   Actions
	Renderers []Renderer
	Gate      Gate
	Stall     StallWatcher
	Metrics   Recorder
	Airborne  AirborneSignal
	Logger    *slog.Logger
	Now       func() time.Time
}

// Loop is the synchronous sampling loop: grab, detect, decide, act, render.
// Step and Run must be called from a single goroutine; Pause and Resume may be
// called from any goroutine.
type Loop struct {
	params   Params
	deps     Deps
	detector *vision.Detector
	timing   *TimingController
	tracker  *ObstacleTracker
	logger   *slog.Logger
	metrics  Recorder
	now      func() time.Time
	seq      uint64

	paused         atomic.Bool
	releasePending atomic.Bool
	resetPending   atomic.Bool
}

func NewLoop(p Params, d Deps) (*Loop, error) {
	if d.Source == nil {
		return nil, errors.New("runner: nil frame source")
	}
	if d.Actions == nil {
		return nil, errors.New("runner: nil actions")
	}
	l := &Loop{deps: d, logger: d.Logger, metrics: d.Metrics, now: d.Now}
	if l.logger == nil {
		l.logger = slog.New(slog.DiscardHandler)
	}
	if l.metrics == nil {
		l.metrics = noopRecorder{}
	}
	if l.now == nil {
		l.now = time.Now
	}
	l.build(p)
	return l, nil
}

// Reconfigure swaps the parameters and restarts from the initial state.
// Call it from the loop goroutine, typically while paused.
func (l *Loop) Reconfigure(p Params) {
	l.build(p)
	l.logger.Info("loop reconfigured", "roi", p.ROI.Rect().String(), "invert", p.Detect.Invert)
}

func (l *Loop) build(p Params) {
	l.params = p
	l.detector = vision.NewDetector(p.Detect)
	l.tracker = NewObstacleTracker(p.Tracker)
	l.timing = NewTimingController(p.Timing, l.deps.Airborne)
	l.timing.AddListener(func(prev, next ArmState) {
		l.metrics.Armed(next == StateArmed)
		l.logger.Debug("arm state", "from", prev.String(), "to", next.String())
	})
	l.metrics.Armed(true)
}

// Params returns the loop configuration.
func (l *Loop) Params() Params { return l.params }

// AddRenderer appends r to the per-tick renderers. Call it before the loop
// starts stepping.
func (l *Loop) AddRenderer(r Renderer) {
	if r != nil {
		l.deps.Renderers = append(l.deps.Renderers, r)
	}
}

// SetGate replaces the focus gate. Call it from the loop goroutine.
func (l *Loop) SetGate(g Gate) { l.deps.Gate = g }

// Timing exposes the controller for listeners.
func (l *Loop) Timing() *TimingController { return l.timing }

// Pause stops decisions and releases held keys on the next tick.
func (l *Loop) Pause() {
	if !l.paused.Swap(true) {
		l.releasePending.Store(true)
	}
}

// Resume restarts decisions from a fresh Armed state.
func (l *Loop) Resume() {
	if l.paused.Swap(false) {
		l.resetPending.Store(true)
	}
}

// Paused reports whether decisions are suspended.
func (l *Loop) Paused() bool { return l.paused.Load() }

// Reset returns timing and tracking to their startup values.
func (l *Loop) Reset() {
	l.timing.Reset()
	l.tracker.Reset()
	if r, ok := l.deps.Stall.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Step runs one tick and returns what happened.
func (l *Loop) Step(ctx context.Context) TickReport {
	if l.releasePending.Swap(false) {
		l.releaseAll()
	}
	if l.resetPending.Swap(false) {
		l.Reset()
	}

	start := l.now()
	l.seq++
	rep := TickReport{
		Sequence:   l.seq,
		Now:        start,
		ROI:        l.params.ROI,
		SafeClearX: l.params.Timing.SafeClearX,
	}

	frame, err := l.deps.Source.Grab(ctx)
	if err != nil {
		rep.Err = err
		if !errors.Is(err, context.Canceled) {
			l.metrics.CaptureError()
			l.logger.Debug("grab failed", "error", err)
		}
	}
	rep.Frame = frame
	if !frame.Empty() {
		if l.deps.Stall != nil {
			stalled, entered := l.deps.Stall.Observe(frame.Image)
			rep.Stalled = stalled
			if entered {
				l.metrics.Stall()
				l.logger.Warn("feed stalled", "sequence", frame.Sequence)
			}
		}
		rep.Block, rep.HasBlock = l.detector.Detect(frame.Image, l.params.ROI)
	}

	if l.paused.Load() || (l.deps.Gate != nil && !l.deps.Gate.Open()) {
		rep.Gated = true
		return l.finish(rep, start)
	}

	l.tracker.Observe(rep.Block, rep.HasBlock)
	d := l.timing.Update(rep.Block, rep.HasBlock, start)
	rep.TriggerX = d.TriggerX

	// A failed tap starts no tracking record, so no drop can follow it. The
	// controller stays disarmed and the cooldown paces the retry.
	if d.Jump && l.act(ctx, "jump", func(ctx context.Context) error {
		return l.deps.Actions.Tap(ctx, l.params.JumpKey)
	}) {
		l.tracker.Start(rep.Block, start)
		l.metrics.Jump()
		rep.Jumped = true
		l.logger.Info("jump",
			"lead_x", rep.Block.LeadX,
			"trail_x", rep.Block.TrailX,
			"width_px", rep.Block.WidthPx,
			"trigger_x", d.TriggerX,
		)
	}

	if l.tracker.ShouldDrop(start) {
		rec := l.tracker.Record()
		if err := l.deps.Actions.Hold(ctx, l.params.DropKey, l.params.DropHold); err != nil {
			l.actionFailed("fast drop", err)
		}
		l.tracker.Finish()
		l.timing.MarkDrop(start)
		l.metrics.Drop()
		rep.Dropped = true
		l.logger.Info("fast drop",
			"trail_x", rec.TrailXLast,
			"since_jump", start.Sub(rec.JumpTime),
			"hold", l.params.DropHold,
		)
	}
	return l.finish(rep, start)
}

func (l *Loop) finish(rep TickReport, start time.Time) TickReport {
	rep.Timing = l.timing.State()
	rep.Tracking = l.tracker.Record()
	rep.Elapsed = l.now().Sub(start)
	l.metrics.Tick(rep.Elapsed, rep.HasBlock)
	for _, r := range l.deps.Renderers {
		r.Render(rep)
	}
	return rep
}

// act runs fn and reports whether the action took place. A tap cut short by
// cancellation still counts: the key went down and was released.
func (l *Loop) act(ctx context.Context, what string, fn func(context.Context) error) bool {
	err := fn(ctx)
	if err == nil {
		return true
	}
	l.actionFailed(what, err)
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (l *Loop) actionFailed(what string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	l.metrics.ActionError()
	l.logger.Error(what+" failed", "error", err)
}

// Run steps until ctx is done, pacing ticks by the sample interval. Held keys
// are released before it returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.releaseAll()
	interval := l.params.SampleInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Step(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Shutdown releases any key still held.
func (l *Loop) Shutdown() error { return l.releaseAll() }

func (l *Loop) releaseAll() error {
	err := l.deps.Actions.ReleaseAll()
	if err != nil {
		l.logger.Error("release keys", "error", err)
	}
	return err
}

type noopRecorder struct{}

func (noopRecorder) Tick(time.Duration, bool) {}
func (noopRecorder) Jump()                    {}
func (noopRecorder) Drop()                    {}
func (noopRecorder) Stall()                   {}
func (noopRecorder) CaptureError()            {}
func (noopRecorder) ActionError()             {}
func (noopRecorder) Armed(bool)               {}
