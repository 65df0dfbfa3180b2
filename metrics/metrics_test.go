package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.Tick(2*time.Millisecond, true)
	m.Tick(time.Millisecond, false)
	m.Tick(time.Millisecond, false)
	m.Jump()
	m.Drop()
	m.Stall()
	m.CaptureError()
	m.ActionError()
	m.Armed(false)

	if got := testutil.ToFloat64(m.ticks); got != 3 {
		t.Fatalf("ticks = %v", got)
	}
	if got := testutil.ToFloat64(m.detections.WithLabelValues("obstacle")); got != 1 {
		t.Fatalf("obstacle detections = %v", got)
	}
	if got := testutil.ToFloat64(m.detections.WithLabelValues("none")); got != 2 {
		t.Fatalf("empty detections = %v", got)
	}
	for name, c := range map[string]float64{
		"jumps":          testutil.ToFloat64(m.jumps),
		"drops":          testutil.ToFloat64(m.drops),
		"stalls":         testutil.ToFloat64(m.stalls),
		"capture errors": testutil.ToFloat64(m.captureErrors),
		"action errors":  testutil.ToFloat64(m.actionErrors),
	} {
		if c != 1 {
			t.Fatalf("%s = %v, want 1", name, c)
		}
	}
	if got := testutil.ToFloat64(m.armed); got != 0 {
		t.Fatalf("armed = %v", got)
	}
	if n := testutil.CollectAndCount(m.tickDuration); n != 1 {
		t.Fatalf("histogram series = %d", n)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.Tick(time.Millisecond, true)
	m.Jump()
	m.Drop()
	m.Stall()
	m.CaptureError()
	m.ActionError()
	m.Armed(true)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Jump()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "dinobot_jumps_total 1") {
		t.Fatalf("jumps counter missing from exposition:\n%s", body)
	}
}
