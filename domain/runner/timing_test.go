package runner

import (
	"testing"
	"time"

	"github.com/soocke/dino-bot-go/domain/vision"
)

func testTimingParams() TimingParams {
	return TimingParams{
		EarlyThreshold:   160,
		LateThreshold:    156,
		SizeCutoff:       45,
		SafeClearX:       100,
		Cooldown:         250 * time.Millisecond,
		AirborneDuration: 100 * time.Millisecond,
	}
}

func block(lead, width int) vision.Block {
	return vision.Block{LeadX: lead, TrailX: lead + width - 1, WidthPx: width}
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestTriggerX_StepAtSizeCutoff(t *testing.T) {
	p := testTimingParams()
	if got := TriggerX(45, p); got != 156 {
		t.Fatalf("width at cutoff: got %d want 156", got)
	}
	if got := TriggerX(46, p); got != 160 {
		t.Fatalf("width above cutoff: got %d want 160", got)
	}
	prev := TriggerX(0, p)
	for w := 1; w < 200; w++ {
		cur := TriggerX(w, p)
		if cur < prev {
			t.Fatalf("trigger x not monotonic at width %d: %d < %d", w, cur, prev)
		}
		if cur != TriggerX(w, p) {
			t.Fatalf("trigger x not deterministic at width %d", w)
		}
		prev = cur
	}
}

func TestTimingController_ScenarioA(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	d := c.Update(block(120, 30), true, at(0))
	if !d.Jump || d.TriggerX != 156 {
		t.Fatalf("expected jump at trigger 156, got %+v", d)
	}
	s := c.State()
	if s.Armed || !s.InAir || !s.LastJump.Equal(at(0)) {
		t.Fatalf("unexpected state after jump: %+v", s)
	}
}

func TestTimingController_WaitsForTrigger(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	if d := c.Update(block(157, 30), true, at(0)); d.Jump {
		t.Fatalf("narrow block at 157 is beyond trigger 156")
	}
	if d := c.Update(block(157, 50), true, at(5)); !d.Jump {
		t.Fatalf("wide block at 157 is inside early trigger 160")
	}
}

func TestTimingController_NoDuplicateWithinCooldown(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	jumps := 0
	steps := []struct {
		ms int
		ok bool
	}{
		{0, true}, {10, false}, {20, true}, {100, true}, {250, true},
	}
	for _, s := range steps {
		if c.Update(block(120, 30), s.ok, at(s.ms)).Jump {
			jumps++
		}
	}
	if jumps != 1 {
		t.Fatalf("expected a single jump inside the cooldown, got %d", jumps)
	}
	if !c.Update(block(120, 30), true, at(251)).Jump {
		t.Fatalf("expected a jump once the cooldown has strictly elapsed")
	}
}

func TestTimingController_RearmConditions(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	c.Update(block(120, 30), true, at(0))

	if d := c.Update(block(110, 30), true, at(10)); d.Rearmed || c.State().Armed {
		t.Fatalf("trail 139 is still ahead of the clear line")
	}
	if d := c.Update(block(60, 30), true, at(20)); !d.Rearmed || !c.State().Armed {
		t.Fatalf("trail 89 behind the clear line must re-arm")
	}

	c.Reset()
	c.Update(block(120, 30), true, at(0))
	if d := c.Update(vision.Block{}, false, at(10)); !d.Rearmed {
		t.Fatalf("no block must re-arm")
	}
}

func TestTimingController_AirborneClears(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	c.Update(block(120, 30), true, at(0))
	c.Update(vision.Block{}, false, at(100))
	if !c.State().InAir {
		t.Fatalf("in_air must hold until the duration strictly elapses")
	}
	c.Update(vision.Block{}, false, at(101))
	if c.State().InAir {
		t.Fatalf("in_air should clear after 100ms")
	}
}

type stuckAirborne struct{}

func (stuckAirborne) Airborne(time.Time, time.Time) bool { return true }

func TestTimingController_CustomAirborneSignal(t *testing.T) {
	c := NewTimingController(testTimingParams(), stuckAirborne{})
	c.Update(block(120, 30), true, at(0))
	c.Update(vision.Block{}, false, at(5000))
	if !c.State().InAir {
		t.Fatalf("custom signal should keep in_air set")
	}
}

func TestTimingController_ListenerAndReset(t *testing.T) {
	c := NewTimingController(testTimingParams(), nil)
	var seq []ArmState
	c.AddListener(func(prev, next ArmState) { seq = append(seq, next) })
	c.Update(block(120, 30), true, at(0))
	c.Reset()
	if len(seq) != 2 || seq[0] != StateDisarmed || seq[1] != StateArmed {
		t.Fatalf("unexpected transitions %v", seq)
	}
	if s := c.State(); !s.Armed || s.InAir || !s.LastJump.IsZero() {
		t.Fatalf("reset state mismatch: %+v", s)
	}
}
