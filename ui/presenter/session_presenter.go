package presenter

import (
	"time"

	"github.com/soocke/dino-bot-go/ui/model"
)

// ActiveSource reports whether the bot is acting.
type ActiveSource interface{ Active() bool }

// SessionView displays session durations and run counters.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetStats(model.RunStats)
}

// SessionPresenter pushes session timing and counters from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	active ActiveSource
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, active ActiveSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, active: active, view: view}
}

// Tick advances the session model and updates the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.active == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.active.Active(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	p.view.SetStats(p.sess.Stats())
}
