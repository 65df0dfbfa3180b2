package model

import (
	"time"

	"github.com/soocke/dino-bot-go/domain/runner"
)

// RunStats is a point-in-time copy of the run counters.
type RunStats struct {
	Session    time.Duration
	Total      time.Duration
	Ticks      uint64
	Detections uint64
	Jumps      uint64
	Drops      uint64
	Stalls     uint64
	Errors     uint64
	AvgTick    time.Duration
}

// SessionModel tracks active session time and the counters of every tick it
// observes. The zero value is ready to use. Not safe for concurrent use: the
// loop goroutine owns it.
type SessionModel struct {
	active              bool
	sessionStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration

	ticks, detections uint64
	jumps, drops      uint64
	stalls, errors    uint64
	tickTotal         time.Duration
	stalled           bool
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances session timing for the current active state.
func (m *SessionModel) OnTick(active bool, now time.Time) {
	if m == nil {
		return
	}
	if active {
		if !m.active {
			m.active = true
			m.sessionStart = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.sessionStart)
	} else if m.active {
		m.lastSessionDuration = now.Sub(m.sessionStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// Observe folds one loop tick into the counters. A stall is counted once per
// frozen stretch.
func (m *SessionModel) Observe(rep runner.TickReport) {
	if m == nil {
		return
	}
	m.ticks++
	m.tickTotal += rep.Elapsed
	if rep.HasBlock {
		m.detections++
	}
	if rep.Jumped {
		m.jumps++
	}
	if rep.Dropped {
		m.drops++
	}
	if rep.Err != nil {
		m.errors++
	}
	if rep.Stalled && !m.stalled {
		m.stalls++
	}
	m.stalled = rep.Stalled
}

// Values returns the current session duration and the total accumulated duration.
// The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Stats returns a copy of all counters.
func (m *SessionModel) Stats() RunStats {
	if m == nil {
		return RunStats{}
	}
	s := RunStats{
		Ticks:      m.ticks,
		Detections: m.detections,
		Jumps:      m.jumps,
		Drops:      m.drops,
		Stalls:     m.stalls,
		Errors:     m.errors,
	}
	s.Session, s.Total = m.Values()
	if m.ticks > 0 {
		s.AvgTick = m.tickTotal / time.Duration(m.ticks)
	}
	return s
}
