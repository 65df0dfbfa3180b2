package model

import (
	"testing"
	"time"

	"github.com/soocke/dino-bot-go/domain/runner"
)

func TestPreviewModel_Throttles(t *testing.T) {
	m := NewPreviewModel(100 * time.Millisecond)
	base := time.Unix(0, 0)
	if _, ok := m.Due(base); ok {
		t.Fatalf("nothing offered yet")
	}
	m.Offer(runner.TickReport{Sequence: 1})
	if r, ok := m.Due(base); !ok || r.Sequence != 1 {
		t.Fatalf("first report should be due immediately")
	}
	m.Offer(runner.TickReport{Sequence: 2})
	if _, ok := m.Due(base.Add(50 * time.Millisecond)); ok {
		t.Fatalf("report due before interval")
	}
	m.Offer(runner.TickReport{Sequence: 3})
	if r, ok := m.Due(base.Add(100 * time.Millisecond)); !ok || r.Sequence != 3 {
		t.Fatalf("expected latest report 3, got %d ok=%v", r.Sequence, ok)
	}
}

func TestPreviewModel_KeepsActionFrame(t *testing.T) {
	m := NewPreviewModel(time.Second)
	base := time.Unix(0, 0)
	m.Offer(runner.TickReport{Sequence: 1})
	m.Due(base)
	m.Offer(runner.TickReport{Sequence: 2, Jumped: true})
	m.Offer(runner.TickReport{Sequence: 3})
	r, ok := m.Due(base.Add(time.Second))
	if !ok || r.Sequence != 2 {
		t.Fatalf("jump frame should survive until shown, got %d", r.Sequence)
	}
	m.Offer(runner.TickReport{Sequence: 4})
	m.Reset()
	if _, ok := m.Due(base.Add(3 * time.Second)); ok {
		t.Fatalf("reset should drop pending report")
	}
}

func TestActiveModel(t *testing.T) {
	var m ActiveModel
	if m.Active() {
		t.Fatalf("zero value should be inactive")
	}
	if !m.SetActive(true) || m.SetActive(true) {
		t.Fatalf("SetActive should report changes only")
	}
	var nilModel *ActiveModel
	if nilModel.Active() || nilModel.SetActive(true) {
		t.Fatalf("nil model should be inert")
	}
}
