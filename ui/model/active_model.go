package model

import "sync/atomic"

// ActiveModel tracks whether the bot is allowed to act. The zero value is
// inactive and usable. Atomic because Tk callbacks and ticks may interleave
// with headless signal handlers.
type ActiveModel struct{ active atomic.Bool }

// Active reports whether the bot is acting.
func (m *ActiveModel) Active() bool {
	if m == nil {
		return false
	}
	return m.active.Load()
}

// SetActive stores the flag and reports whether it changed.
func (m *ActiveModel) SetActive(b bool) bool {
	if m == nil {
		return false
	}
	return m.active.Swap(b) != b
}
