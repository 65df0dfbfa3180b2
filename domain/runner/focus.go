package runner

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/dino-bot-go/domain/action"
)

const focusPollInterval = 250 * time.Millisecond

// FocusGate keeps actions off while the game window is not in the foreground.
// The foreground title is polled lazily from Open, at most every 250ms, so the
// gate lives on the loop goroutine.
type FocusGate struct {
	Foreground func() (string, error)
	Logger     *slog.Logger
	now        func() time.Time
	want       string // lower-cased substring of the wanted title
	interval   time.Duration
	lastPoll   time.Time
	lastTitle  string
	open       bool
	disabled   bool
}

var _ Gate = (*FocusGate)(nil)

// NewFocusGate matches titles containing title (case-insensitive). An empty
// title yields a gate that is always open. fg defaults to
// action.ForegroundWindowTitle.
func NewFocusGate(title string, fg func() (string, error), logger *slog.Logger) *FocusGate {
	if fg == nil {
		fg = action.ForegroundWindowTitle
	}
	want := strings.ToLower(strings.TrimSpace(title))
	return &FocusGate{
		Foreground: fg,
		Logger:     logger,
		now:        time.Now,
		want:       want,
		interval:   focusPollInterval,
		disabled:   want == "",
	}
}

// Open reports whether the wanted window had focus at the last poll.
func (g *FocusGate) Open() bool {
	if g == nil || g.disabled {
		return true
	}
	now := g.now()
	if g.lastPoll.IsZero() || now.Sub(g.lastPoll) >= g.interval {
		g.lastPoll = now
		g.poll()
	}
	return g.open
}

func (g *FocusGate) poll() {
	title, err := g.Foreground()
	if err != nil {
		if errors.Is(err, action.ErrUnsupported) {
			g.disabled = true
			g.open = true
			if g.Logger != nil {
				g.Logger.Warn("focus gate disabled", "error", err)
			}
			return
		}
		if g.Logger != nil {
			g.Logger.Debug("foreground title error", "error", err)
		}
		g.open = false
		g.lastTitle = ""
		return
	}
	current := strings.ToLower(strings.TrimSpace(title))
	if current == g.lastTitle {
		return
	}
	g.lastTitle = current
	g.open = current != "" && strings.Contains(current, g.want)
	if g.Logger != nil {
		g.Logger.Info("focus changed", "window", title, "open", g.open)
	}
}
