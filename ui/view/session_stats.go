package view

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/dino-bot-go/ui/model"
	"github.com/soocke/dino-bot-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows session durations and run counters.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetStats(s model.RunStats)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countsLbl  *TLabelWidget
}

// NewSessionStats creates the duration labels at (row, startCol) and
// (row, startCol+1) and the counters label on the next row.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14)),
		totalLbl:   Label(Width(14)),
		countsLbl:  TLabel(Style(theme.StyleAccentLabel), Anchor("w")),
	}
	if parent != nil {
		Grid(s.sessionLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
		Grid(s.countsLbl, In(parent), Row(row+1), Column(startCol), Columnspan(3), Sticky("we"), Padx("0.2m"))
	} else {
		Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
		Grid(s.countsLbl, Row(row+1), Column(startCol), Columnspan(3), Sticky("we"), Padx("0.2m"))
	}
	s.sessionLbl.Configure(Txt("Session: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.countsLbl.Configure(Txt(FormatStats(model.RunStats{})))
	return s
}

func clock(prefix string, d time.Duration) string {
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	return fmt.Sprintf("%s: %02d:%02d", prefix, min, sec)
}

// SetSession updates the session duration display.
func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt(clock("Session", d)))
}

// SetTotal updates the total duration display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt(clock("Total", d)))
}

func (s *sessionStats) SetStats(st model.RunStats) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(FormatStats(st)))
}

// FormatStats renders the counters line.
func FormatStats(st model.RunStats) string {
	return fmt.Sprintf("Jumps %s  Drops %s  Seen %s/%s ticks  Stalls %s  Errors %s  Avg %s",
		humanize.Comma(int64(st.Jumps)),
		humanize.Comma(int64(st.Drops)),
		humanize.Comma(int64(st.Detections)),
		humanize.Comma(int64(st.Ticks)),
		humanize.Comma(int64(st.Stalls)),
		humanize.Comma(int64(st.Errors)),
		st.AvgTick.Round(time.Microsecond),
	)
}
