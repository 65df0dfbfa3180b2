package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration for detection, timing and app behavior.
// Fields may be loaded from a JSON file, seeded from a named profile and
// overridden by command-line flags.
type Config struct {
	Debug   bool   `json:"debug"`
	Profile string `json:"profile"`

	// Game rectangle in absolute screen coordinates.
	GameX      int `json:"game_x"`
	GameY      int `json:"game_y"`
	GameWidth  int `json:"game_width"`
	GameHeight int `json:"game_height"`

	// Lookahead ROI relative to the game rectangle.
	ROIX      int `json:"roi_x"`
	ROIWidth  int `json:"roi_width"`
	ROIY      int `json:"roi_y"`
	ROIHeight int `json:"roi_height"`

	// Detection parameters
	Threshold         int     `json:"threshold"`
	OccupancyFraction float64 `json:"occupancy_fraction"`
	GapBridgeLength   int     `json:"gap_bridge_length"`
	MinRunLength      int     `json:"min_run_length"`
	Invert            bool    `json:"invert"`

	// Trigger geometry. Obstacles scroll toward smaller x, so the larger
	// trigger coordinate commits earlier.
	EarlyThreshold int `json:"early_threshold"`
	LateThreshold  int `json:"late_threshold"`
	SizeCutoff     int `json:"size_cutoff"`
	SafeClearX     int `json:"safe_clear_x"`

	// Timing (milliseconds)
	InterJumpCooldownMs int `json:"inter_jump_cooldown_ms"`
	AirborneDurationMs  int `json:"airborne_duration_ms"`
	MinAirborneGraceMs  int `json:"min_airborne_grace_ms"`
	DropHoldDurationMs  int `json:"drop_hold_duration_ms"`
	TapDurationMs       int `json:"tap_duration_ms"`
	SampleIntervalMs    int `json:"sample_interval_ms"`
	StartDelayMs        int `json:"start_delay_ms"`

	// Input
	JumpKey     string `json:"jump_key"`
	DropKey     string `json:"drop_key"`
	WindowTitle string `json:"window_title"`

	// Instrumentation and display
	StallTicks        int    `json:"stall_ticks"`
	MetricsAddr       string `json:"metrics_addr"`
	PreviewIntervalMs int    `json:"preview_interval_ms"`
}

// DefaultConfig returns a Config populated with the "adaptive" profile values.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		Profile:             "adaptive",
		GameX:               580,
		GameY:               240,
		GameWidth:           600,
		GameHeight:          155,
		ROIX:                55,
		ROIWidth:            450,
		ROIY:                70,
		ROIHeight:           50,
		Threshold:           100,
		OccupancyFraction:   0.12,
		GapBridgeLength:     4,
		MinRunLength:        2,
		Invert:              false,
		EarlyThreshold:      160,
		LateThreshold:       156,
		SizeCutoff:          45,
		SafeClearX:          100,
		InterJumpCooldownMs: 250,
		AirborneDurationMs:  100,
		MinAirborneGraceMs:  90,
		DropHoldDurationMs:  100,
		TapDurationMs:       20,
		SampleIntervalMs:    5,
		StartDelayMs:        1000,
		JumpKey:             "space",
		DropKey:             "down",
		WindowTitle:         "",
		StallTicks:          200,
		MetricsAddr:         "",
		PreviewIntervalMs:   100,
	}
}

// Validate clamps/normalizes values to safe ranges. It returns an error only
// for values that cannot be repaired.
func (c *Config) Validate() error {
	if c.GameWidth <= 0 || c.GameHeight <= 0 {
		return fmt.Errorf("config: invalid game rect %dx%d", c.GameWidth, c.GameHeight)
	}
	if c.ROIWidth <= 0 || c.ROIHeight <= 0 {
		return fmt.Errorf("config: invalid roi %dx%d", c.ROIWidth, c.ROIHeight)
	}
	if c.ROIX < 0 {
		c.ROIX = 0
	}
	if c.ROIY < 0 {
		c.ROIY = 0
	}
	c.Threshold = min(max(c.Threshold, 0), 255)
	if c.OccupancyFraction <= 0 || c.OccupancyFraction > 1 {
		c.OccupancyFraction = 0.12
	}
	if c.GapBridgeLength < 0 {
		c.GapBridgeLength = 0
	}
	if c.MinRunLength < 1 {
		c.MinRunLength = 1
	}
	if c.SizeCutoff < 0 {
		c.SizeCutoff = 0
	}
	clampMs := func(v *int) {
		if *v < 0 {
			*v = 0
		}
	}
	clampMs(&c.InterJumpCooldownMs)
	clampMs(&c.AirborneDurationMs)
	clampMs(&c.MinAirborneGraceMs)
	clampMs(&c.DropHoldDurationMs)
	clampMs(&c.TapDurationMs)
	clampMs(&c.SampleIntervalMs)
	clampMs(&c.StartDelayMs)
	clampMs(&c.PreviewIntervalMs)
	if c.StallTicks < 0 {
		c.StallTicks = 0
	}
	c.JumpKey = strings.TrimSpace(c.JumpKey)
	c.DropKey = strings.TrimSpace(c.DropKey)
	if c.JumpKey == "" {
		c.JumpKey = "space"
	}
	if c.DropKey == "" {
		c.DropKey = "down"
	}
	c.WindowTitle = strings.TrimSpace(c.WindowTitle)
	return nil
}

// GameRect returns the captured screen rectangle.
func (c *Config) GameRect() image.Rectangle {
	return image.Rect(c.GameX, c.GameY, c.GameX+c.GameWidth, c.GameY+c.GameHeight)
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (c *Config) InterJumpCooldown() time.Duration { return ms(c.InterJumpCooldownMs) }
func (c *Config) AirborneDuration() time.Duration  { return ms(c.AirborneDurationMs) }
func (c *Config) MinAirborneGrace() time.Duration  { return ms(c.MinAirborneGraceMs) }
func (c *Config) DropHoldDuration() time.Duration  { return ms(c.DropHoldDurationMs) }
func (c *Config) TapDuration() time.Duration       { return ms(c.TapDurationMs) }
func (c *Config) SampleInterval() time.Duration    { return ms(c.SampleIntervalMs) }
func (c *Config) StartDelay() time.Duration        { return ms(c.StartDelayMs) }
func (c *Config) PreviewInterval() time.Duration   { return ms(c.PreviewIntervalMs) }

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). A "profile" field in the file
// is applied first and the file's remaining fields override it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	var head struct {
		Profile string `json:"profile"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if head.Profile != "" {
		if err := cfg.ApplyProfile(head.Profile); err != nil {
			return cfg, err
		}
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
