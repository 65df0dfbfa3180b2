package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/dino-bot-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	Refresh()      // reloads widget text from the config
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func(*config.Config)
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by field id
	fields   []field
}

type field struct {
	id, label string
	get       func(c *config.Config) string
	set       func(c *config.Config, s string) bool
}

// NewConfigPanel creates the view bound to cfg. onApply runs after a
// successful apply with the updated config.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget), fields: configFields()}
}

func intField(id, label string, p func(c *config.Config) *int) field {
	return field{id: id, label: label,
		get: func(c *config.Config) string { return strconv.Itoa(*p(c)) },
		set: func(c *config.Config, s string) bool {
			i, ok := parseIntField(s)
			if ok {
				*p(c) = i
			}
			return ok
		},
	}
}

func floatField(id, label string, p func(c *config.Config) *float64) field {
	return field{id: id, label: label,
		get: func(c *config.Config) string { return fmt.Sprintf("%.3f", *p(c)) },
		set: func(c *config.Config, s string) bool {
			f, ok := parseFloatField(s)
			if ok {
				*p(c) = f
			}
			return ok
		},
	}
}

func boolField(id, label string, p func(c *config.Config) *bool) field {
	return field{id: id, label: label,
		get: func(c *config.Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *config.Config, s string) bool {
			b, ok := parseBoolLoose(s)
			if ok {
				*p(c) = b
			}
			return ok
		},
	}
}

func stringField(id, label string, p func(c *config.Config) *string, allowEmpty bool) field {
	return field{id: id, label: label,
		get: func(c *config.Config) string { return *p(c) },
		set: func(c *config.Config, s string) bool {
			if s == "" && !allowEmpty {
				return false
			}
			*p(c) = s
			return true
		},
	}
}

func configFields() []field {
	return []field{
		intField("roiX", "ROI X", func(c *config.Config) *int { return &c.ROIX }),
		intField("roiWidth", "ROI Width", func(c *config.Config) *int { return &c.ROIWidth }),
		intField("roiY", "ROI Y", func(c *config.Config) *int { return &c.ROIY }),
		intField("roiHeight", "ROI Height", func(c *config.Config) *int { return &c.ROIHeight }),
		intField("threshold", "Dark Threshold (1-255)", func(c *config.Config) *int { return &c.Threshold }),
		floatField("occupancy", "Occupancy Fraction", func(c *config.Config) *float64 { return &c.OccupancyFraction }),
		intField("gapBridge", "Gap Bridge Px", func(c *config.Config) *int { return &c.GapBridgeLength }),
		intField("minRun", "Min Run Px", func(c *config.Config) *int { return &c.MinRunLength }),
		boolField("invert", "Invert (true/false)", func(c *config.Config) *bool { return &c.Invert }),
		intField("early", "Early Threshold X", func(c *config.Config) *int { return &c.EarlyThreshold }),
		intField("late", "Late Threshold X", func(c *config.Config) *int { return &c.LateThreshold }),
		intField("sizeCutoff", "Size Cutoff Px", func(c *config.Config) *int { return &c.SizeCutoff }),
		intField("safeClear", "Safe Clear X", func(c *config.Config) *int { return &c.SafeClearX }),
		intField("cooldown", "Jump Cooldown ms", func(c *config.Config) *int { return &c.InterJumpCooldownMs }),
		intField("airborne", "Airborne ms", func(c *config.Config) *int { return &c.AirborneDurationMs }),
		intField("grace", "Drop Grace ms", func(c *config.Config) *int { return &c.MinAirborneGraceMs }),
		intField("dropHold", "Drop Hold ms", func(c *config.Config) *int { return &c.DropHoldDurationMs }),
		stringField("jumpKey", "Jump Key (space/up/a-z)", func(c *config.Config) *string { return &c.JumpKey }, false),
		stringField("dropKey", "Drop Key (down/a-z)", func(c *config.Config) *string { return &c.DropKey }, false),
		stringField("windowTitle", "Window Title (empty = any)", func(c *config.Config) *string { return &c.WindowTitle }, true),
	}
}

func (v *configPanel) Build(startRow int) (row int) {
	row = startRow
	for _, f := range v.fields {
		lbl := Label(Txt(f.label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		v.widgets[f.id] = w
		row++
	}
	v.Refresh()
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) Refresh() {
	if v.cfg == nil {
		return
	}
	for _, f := range v.fields {
		if w := v.widgets[f.id]; w != nil {
			w.Delete("1.0", END)
			w.Insert("1.0", f.get(v.cfg))
		}
	}
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	for _, f := range v.fields {
		w := v.widgets[f.id]
		if w == nil {
			continue
		}
		if !f.set(&cfg, v.text(w)) && v.logger != nil {
			v.logger.Warn("config field ignored", "field", f.id)
		}
	}
	if err := cfg.Validate(); err != nil {
		if v.logger != nil {
			v.logger.Error("config rejected", "error", err)
		}
		return
	}
	*v.cfg = cfg
	v.Refresh()
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
