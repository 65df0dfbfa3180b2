package model

import (
	"time"

	"github.com/soocke/dino-bot-go/domain/runner"
)

// PreviewModel keeps the latest tick report and throttles how often it is
// pushed to the preview. Zero interval means every report is due.
type PreviewModel struct {
	interval time.Duration
	latest   runner.TickReport
	has      bool
	lastPush time.Time
	sticky   bool // an action happened since the last push
}

func NewPreviewModel(interval time.Duration) *PreviewModel {
	return &PreviewModel{interval: interval}
}

// Offer stores rep as the latest report.
func (m *PreviewModel) Offer(rep runner.TickReport) {
	if m == nil {
		return
	}
	if m.sticky && !rep.Jumped && !rep.Dropped {
		// keep the action frame until it has been shown
		return
	}
	m.latest = rep
	m.has = true
	if rep.Jumped || rep.Dropped {
		m.sticky = true
	}
}

// Due returns the report to show when the throttle interval has passed.
func (m *PreviewModel) Due(now time.Time) (runner.TickReport, bool) {
	if m == nil || !m.has {
		return runner.TickReport{}, false
	}
	if !m.lastPush.IsZero() && now.Sub(m.lastPush) < m.interval {
		return runner.TickReport{}, false
	}
	m.lastPush = now
	m.has = false
	m.sticky = false
	return m.latest, true
}

// Reset drops any pending report.
func (m *PreviewModel) Reset() {
	if m == nil {
		return
	}
	*m = PreviewModel{interval: m.interval}
}
