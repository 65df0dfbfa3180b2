package view

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/dino-bot-go/config"
	"github.com/soocke/dino-bot-go/ui/model"
	"github.com/soocke/dino-bot-go/ui/presenter"
	"github.com/soocke/dino-bot-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	CapturePrev CapturePreview

	// Widgets
	StateLabel    *TLabelWidget
	ToggleButton  *TButtonWidget
	ProfileSelect *TComboboxWidget
	captureRow    int
}

// UI is the set of view operations the presenters need.
type UI interface {
	presenter.PreviewView
	presenter.StateView
	presenter.ControlView
	presenter.SessionView
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Handlers are the user actions wired by Build.
type Handlers struct {
	Toggle  func()
	Exit    func()
	Apply   func(*config.Config)
	Profile func(name string)
}

// Build constructs the layout. profiles lists the built-in profile names for
// the selection dropdown.
func (rv *RootView) Build(profiles []string, h Handlers) {
	if rv == nil {
		return
	}
	// Rows 0-1: session stats and counters, state label, buttons frame
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.StateLabel = TLabel(Txt("State: paused"), Style(theme.StyleGatedLabel))
	Grid(rv.StateLabel, Row(0), Column(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Rowspan(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.ToggleButton = TButton(Txt("Start (F1)"), Command(h.Toggle), Style(theme.StylePrimaryButton))
	Grid(rv.ToggleButton, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	if len(profiles) == 0 {
		profiles = []string{"<none>"}
	}
	rv.ProfileSelect = TCombobox(Values(profiles), Width(18))
	Grid(rv.ProfileSelect, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ProfileSelect.Current(profileIndex(profiles, rv.cfg))
	Bind(rv.ProfileSelect, "<<ComboboxSelected>>", Command(func() {
		idx, err := strconv.Atoi(rv.ProfileSelect.Current(nil))
		if err != nil || idx < 0 || idx >= len(profiles) {
			if rv.logger != nil {
				rv.logger.Error("profile selection parse error", "error", err)
			}
			return
		}
		if h.Profile != nil {
			h.Profile(profiles[idx])
		}
		if rv.ConfigPanel != nil {
			rv.ConfigPanel.Refresh()
		}
	}))
	exitBtn := TButton(Txt("Exit (q)"), Command(h.Exit), Style(theme.StyleDangerButton))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.Apply)
	rv.captureRow = rv.ConfigPanel.Build(2)

	rv.CapturePrev = NewCapturePreview(rv.captureRow)
}

func profileIndex(profiles []string, cfg *config.Config) int {
	if cfg == nil {
		return 0
	}
	for i, p := range profiles {
		if p == cfg.Profile {
			return i
		}
	}
	return 0
}

// SetStateLabel updates the state label text and colour.
func (rv *RootView) SetStateLabel(text string, status presenter.Status) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text), Style(theme.StateStyle(string(status))))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
	if rv != nil && rv.ToggleButton != nil {
		label := "Pause (F1)"
		if enabled {
			label = "Start (F1)"
		}
		rv.ToggleButton.Configure(Txt(label))
	}
	if rv != nil && rv.ProfileSelect != nil {
		state := "disabled"
		if enabled {
			state = "readonly"
		}
		rv.ProfileSelect.Configure(State(state))
	}
}

// UpdateCapture proxies to underlying capture preview view.
func (rv *RootView) UpdateCapture(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateCapture(img)
	}
}

// UpdateDetection proxies to underlying capture preview view.
func (rv *RootView) UpdateDetection(img image.Image) {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.UpdateDetection(img)
	}
}

// SetSession updates both session and total active durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetStats updates the counters line.
func (rv *RootView) SetStats(s model.RunStats) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetStats(s)
}

// PreviewReset clears the preview labels.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.CapturePrev != nil {
		rv.CapturePrev.Reset()
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy ControlView.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }
