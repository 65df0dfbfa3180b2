package action

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recordingDriver struct {
	events  []string
	failUp  bool
	pressed map[Key]bool
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{pressed: make(map[Key]bool)}
}

func (d *recordingDriver) KeyDown(k Key) error {
	d.events = append(d.events, "down:"+string(k))
	d.pressed[k] = true
	return nil
}

func (d *recordingDriver) KeyUp(k Key) error {
	d.events = append(d.events, "up:"+string(k))
	if d.failUp {
		return errors.New("boom")
	}
	d.pressed[k] = false
	return nil
}

func TestExecutor_TapPressesAndReleases(t *testing.T) {
	d := newRecordingDriver()
	e := NewExecutor(d, time.Millisecond, nil)
	if err := e.Tap(context.Background(), KeySpace); err != nil {
		t.Fatalf("tap: %v", err)
	}
	if len(d.events) != 2 || d.events[0] != "down:space" || d.events[1] != "up:space" {
		t.Fatalf("unexpected events %v", d.events)
	}
	if len(e.Held()) != 0 {
		t.Fatalf("nothing should remain held: %v", e.Held())
	}
}

func TestExecutor_HoldWaitsDuration(t *testing.T) {
	d := newRecordingDriver()
	e := NewExecutor(d, 0, nil)
	start := time.Now()
	if err := e.Hold(context.Background(), KeyDown, 30*time.Millisecond); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if el := time.Since(start); el < 30*time.Millisecond {
		t.Fatalf("hold returned early after %v", el)
	}
	if d.pressed[KeyDown] {
		t.Fatalf("down still pressed")
	}
}

func TestExecutor_CancelMidHoldReleases(t *testing.T) {
	d := newRecordingDriver()
	e := NewExecutor(d, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	err := e.Hold(ctx, KeyDown, 5*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("hold ignored cancellation")
	}
	if d.pressed[KeyDown] {
		t.Fatalf("key left stuck after cancellation")
	}
	if got := d.events[len(d.events)-1]; got != "up:down" {
		t.Fatalf("last event = %s, want up:down", got)
	}
}

func TestExecutor_ReleaseAllRetriesFailedRelease(t *testing.T) {
	d := newRecordingDriver()
	d.failUp = true
	e := NewExecutor(d, 0, nil)
	if err := e.Hold(context.Background(), KeyDown, 0); err == nil {
		t.Fatalf("expected release error")
	}
	if held := e.Held(); len(held) != 1 || held[0] != KeyDown {
		t.Fatalf("failed release must stay tracked, held=%v", held)
	}
	if err := e.ReleaseAll(); err == nil {
		t.Fatalf("expected error while the driver still fails")
	}
	d.failUp = false
	if err := e.ReleaseAll(); err != nil {
		t.Fatalf("release all: %v", err)
	}
	if d.pressed[KeyDown] {
		t.Fatalf("key left pressed after ReleaseAll")
	}
	if len(e.Held()) != 0 {
		t.Fatalf("held after successful release: %v", e.Held())
	}
}

func TestExecutor_NilDriver(t *testing.T) {
	e := NewExecutor(nil, 0, nil)
	if err := e.Tap(context.Background(), KeySpace); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if err := e.ReleaseAll(); err != nil {
		t.Fatalf("release all on nil driver: %v", err)
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]Key{" Space ": KeySpace, "DOWN": KeyDown, "up": KeyUp, "W": Key("w")}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil || got != want {
			t.Fatalf("ParseKey(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKey("F13"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
