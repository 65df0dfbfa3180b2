package theme

// Styles for the dino bot window. The dark palette follows night mode so the
// preview and the window share a background.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// colors holds the resolved colors for one mode.
type colors struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Accent    string
	Warn      string
	Text      string
	TextMuted string
}

var (
	light = colors{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Warn:      "#f59e0b",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = colors{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#059669",
		Warn:      "#d97706",
		Text:      "#f1f5f9",
		TextMuted: "#475569",
	}
)

// Style names used with Style(...).
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAccentLabel   = "accent.TLabel"
	StyleArmedLabel    = "armed.TLabel"
	StyleDisarmedLabel = "disarmed.TLabel"
	StyleGatedLabel    = "gated.TLabel"
	StyleStalledLabel  = "stalled.TLabel"
)

var darkMode bool

// currentColors returns the colors of the active mode.
func currentColors() colors {
	if darkMode {
		return dark
	}
	return light
}

// StateStyle maps a status name ("armed", "disarmed", "gated", "stalled") to
// its label style. Unknown names get the gated style.
func StateStyle(status string) string {
	switch status {
	case "armed":
		return StyleArmedLabel
	case "disarmed":
		return StyleDisarmedLabel
	case "stalled":
		return StyleStalledLabel
	}
	return StyleGatedLabel
}

// InitStyles activates the base theme and configures the semantic styles.
func InitStyles(darkUI bool) {
	darkMode = darkUI
	p := currentColors()
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))

	button := func(name, bg string) {
		StyleConfigure(name, Background(bg), Foreground("white"), Padding("4p 3p"), Borderwidth(1), Relief("ridge"))
	}
	button(StylePrimaryButton, p.Primary)
	button(StyleDangerButton, p.Danger)

	StyleConfigure(StyleAccentLabel, Foreground(p.Primary), Background(p.Surface), Padding("2p 1p"))

	state := func(name, bg string) {
		StyleConfigure(name, Foreground("white"), Background(bg), Padding("4p 2p"), Borderwidth(1), Relief("groove"))
	}
	state(StyleArmedLabel, p.Accent)
	state(StyleDisarmedLabel, p.Primary)
	state(StyleGatedLabel, p.TextMuted)
	state(StyleStalledLabel, p.Warn)
}
