package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/soocke/dino-bot-go/domain/action"
)

type titleScript struct {
	title string
	err   error
	calls int
}

func (s *titleScript) fg() (string, error) {
	s.calls++
	return s.title, s.err
}

func newTestGate(want string, s *titleScript, clk *fakeClock) *FocusGate {
	g := NewFocusGate(want, s.fg, nil)
	g.now = clk.now
	return g
}

func TestFocusGate_EmptyTitleAlwaysOpen(t *testing.T) {
	s := &titleScript{}
	g := newTestGate("", s, &fakeClock{t: t0})
	if !g.Open() || s.calls != 0 {
		t.Fatalf("empty title should be open without polling")
	}
	var nilGate *FocusGate
	if !nilGate.Open() {
		t.Fatalf("nil gate should be open")
	}
}

func TestFocusGate_MatchesSubstringAndThrottles(t *testing.T) {
	s := &titleScript{title: "chrome://dino/ - Google Chrome"}
	clk := &fakeClock{t: t0}
	g := newTestGate("Google Chrome", s, clk)
	if !g.Open() {
		t.Fatalf("expected open for matching title")
	}
	s.title = "Terminal"
	clk.t = t0.Add(100 * time.Millisecond)
	if !g.Open() || s.calls != 1 {
		t.Fatalf("gate polled before the interval: calls=%d", s.calls)
	}
	clk.t = t0.Add(250 * time.Millisecond)
	if g.Open() {
		t.Fatalf("expected closed after focus moved away")
	}
}

func TestFocusGate_ErrorsCloseAndUnsupportedDisables(t *testing.T) {
	s := &titleScript{title: "dino", err: errors.New("x11 gone")}
	clk := &fakeClock{t: t0}
	g := newTestGate("dino", s, clk)
	if g.Open() {
		t.Fatalf("poll error should close the gate")
	}
	s.err = nil
	clk.t = t0.Add(time.Second)
	if !g.Open() {
		t.Fatalf("gate should reopen once the title is readable")
	}
	s.err = action.ErrUnsupported
	clk.t = t0.Add(2 * time.Second)
	if !g.Open() {
		t.Fatalf("unsupported platform should disable the gate")
	}
	calls := s.calls
	clk.t = t0.Add(3 * time.Second)
	g.Open()
	if s.calls != calls {
		t.Fatalf("disabled gate kept polling")
	}
}
