package presenter

import "time"

const defaultUIInterval = 250 * time.Millisecond

// Loop drives one sampling step per Tk tick and refreshes presenters.
//
// Step runs every tick; the session view refreshes at most every UIInterval.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Step       func()
	Render     *RenderPresenter
	Session    *SessionPresenter
	Schedule   func()
	UIInterval time.Duration
	Now        func() time.Time
	lastUI     time.Time
}

func NewLoop(step func(), render *RenderPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Step: step, Render: render, Session: sess, Schedule: schedule, UIInterval: defaultUIInterval}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Step != nil {
		l.Step()
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	if l.Render != nil {
		l.Render.Tick(now)
	}
	if l.Session != nil && (l.lastUI.IsZero() || now.Sub(l.lastUI) >= l.UIInterval) {
		l.lastUI = now
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
