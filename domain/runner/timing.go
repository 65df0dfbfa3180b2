package runner

import (
	"time"

	"github.com/soocke/dino-bot-go/domain/vision"
)

// TimingParams configures the jump decision.
type TimingParams struct {
	EarlyThreshold   int // trigger x for blocks wider than SizeCutoff
	LateThreshold    int // trigger x otherwise
	SizeCutoff       int
	SafeClearX       int
	Cooldown         time.Duration // minimum gap between jumps (strict)
	AirborneDuration time.Duration
}

// TriggerX returns the lead-edge coordinate at which a block of width w is
// jumped. Obstacles scroll toward smaller x, so a larger value commits earlier.
func TriggerX(w int, p TimingParams) int {
	if w > p.SizeCutoff {
		return p.EarlyThreshold
	}
	return p.LateThreshold
}

// AirborneSignal decides whether the player is still in the air. The default
// is a fixed timer; an observed-displacement signal can replace it.
type AirborneSignal interface {
	Airborne(jumpedAt, now time.Time) bool
}

// TimedAirborne is airborne until the duration has strictly elapsed.
type TimedAirborne time.Duration

func (d TimedAirborne) Airborne(jumpedAt, now time.Time) bool {
	return now.Sub(jumpedAt) <= time.Duration(d)
}

// Decision is the TimingController output for one tick.
type Decision struct {
	Jump     bool
	Rearmed  bool
	TriggerX int // zero when no block was present
}

// TimingController is the Armed/Disarmed state machine deciding when to jump.
// Not safe for concurrent use.
type TimingController struct {
	params    TimingParams
	airborne  AirborneSignal
	state     TimingState
	listeners []StateListener
}

// NewTimingController starts Armed and on the ground. A nil signal uses
// TimedAirborne(p.AirborneDuration).
func NewTimingController(p TimingParams, signal AirborneSignal) *TimingController {
	if signal == nil {
		signal = TimedAirborne(p.AirborneDuration)
	}
	return &TimingController{params: p, airborne: signal, state: TimingState{Armed: true}}
}

// Params returns the configured parameters.
func (c *TimingController) Params() TimingParams { return c.params }

// AddListener registers fn for Armed/Disarmed transitions.
func (c *TimingController) AddListener(fn StateListener) {
	if fn != nil {
		c.listeners = append(c.listeners, fn)
	}
}

// State returns a copy of the current timing state.
func (c *TimingController) State() TimingState { return c.state }

// Update advances the state machine with this tick's detection result.
// Order: landing, re-arm, jump decision.
func (c *TimingController) Update(block vision.Block, ok bool, now time.Time) Decision {
	var d Decision
	if c.state.InAir && !c.airborne.Airborne(c.state.LastJump, now) {
		c.state.InAir = false
	}

	// Re-arm when the obstacle is gone OR its trail edge is behind the clear
	// line. Earlier variants only re-armed on "gone"; both are accepted here.
	if !c.state.Armed && (!ok || block.TrailX < c.params.SafeClearX) {
		c.setArmed(true)
		d.Rearmed = true
	}
	if !ok {
		return d
	}

	d.TriggerX = TriggerX(block.WidthPx, c.params)
	if c.state.Armed && block.LeadX <= d.TriggerX && c.cooldownElapsed(now) {
		c.state.LastJump = now
		c.state.InAir = true
		c.setArmed(false)
		d.Jump = true
	}
	return d
}

func (c *TimingController) cooldownElapsed(now time.Time) bool {
	if c.state.LastJump.IsZero() {
		return true
	}
	return now.Sub(c.state.LastJump) > c.params.Cooldown
}

// MarkDrop records the time of a corrective drop.
func (c *TimingController) MarkDrop(now time.Time) { c.state.LastDrop = now }

// Reset returns to the startup state (Armed, on the ground, no history).
func (c *TimingController) Reset() {
	c.setArmed(true)
	c.state = TimingState{Armed: true}
}

func (c *TimingController) setArmed(armed bool) {
	if c.state.Armed == armed {
		return
	}
	prev := c.state.State()
	c.state.Armed = armed
	next := c.state.State()
	for _, fn := range c.listeners {
		fn(prev, next)
	}
}
