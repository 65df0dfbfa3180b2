package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.LateThreshold != 156 || cfg.EarlyThreshold != 160 || cfg.SizeCutoff != 45 {
		t.Fatalf("unexpected trigger defaults: %+v", cfg)
	}
	if got := cfg.DropHoldDuration(); got != 100*time.Millisecond {
		t.Fatalf("drop hold = %v, want 100ms", got)
	}
}

func TestValidate_ThresholdClampedNotReset(t *testing.T) {
	for in, want := range map[int]int{0: 0, -4: 0, 1: 1, 255: 255, 300: 255} {
		cfg := DefaultConfig()
		cfg.Threshold = in
		if err := cfg.Validate(); err != nil {
			t.Fatalf("validate: %v", err)
		}
		if cfg.Threshold != want {
			t.Fatalf("threshold %d validated to %d, want %d", in, cfg.Threshold, want)
		}
	}
}

func TestValidate_ClampsOutOfRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 900
	cfg.OccupancyFraction = 1.5
	cfg.GapBridgeLength = -3
	cfg.MinRunLength = 0
	cfg.InterJumpCooldownMs = -10
	cfg.JumpKey = "  "
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Threshold != 255 || cfg.OccupancyFraction != 0.12 || cfg.GapBridgeLength != 0 || cfg.MinRunLength != 1 {
		t.Fatalf("clamp failed: %+v", cfg)
	}
	if cfg.InterJumpCooldownMs != 0 || cfg.JumpKey != "space" {
		t.Fatalf("clamp failed: cooldown=%d key=%q", cfg.InterJumpCooldownMs, cfg.JumpKey)
	}
}

func TestValidate_RejectsEmptyROI(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ROIWidth = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty roi")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Threshold != DefaultConfig().Threshold {
		t.Fatalf("expected defaults, got threshold %d", cfg.Threshold)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.SafeClearX = 87
	cfg.Invert = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SafeClearX != 87 || !got.Invert {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}

func TestLoad_ProfileThenFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	doc := `{"profile":"classic","roi_width":90}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ROIX != 83 {
		t.Fatalf("profile not applied: roi_x=%d", cfg.ROIX)
	}
	if cfg.ROIWidth != 90 {
		t.Fatalf("file override lost: roi_width=%d", cfg.ROIWidth)
	}
}

func TestApplyProfile(t *testing.T) {
	cfg, err := FromProfile("night")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !cfg.Invert || cfg.Profile != "night" {
		t.Fatalf("night profile not applied: %+v", cfg)
	}
	if cfg.ROIWidth != DefaultConfig().ROIWidth {
		t.Fatalf("night profile should keep defaults for unspecified fields")
	}
	if err := cfg.ApplyProfile("does-not-exist"); err == nil {
		t.Fatalf("expected unknown profile error")
	}
}

func TestProfileNames_Sorted(t *testing.T) {
	names := ProfileNames()
	want := []string{"adaptive", "classic", "lookahead", "night"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}
