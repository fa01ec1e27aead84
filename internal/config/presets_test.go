package config

import (
	"errors"
	"testing"
)

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.CellSize != 40 {
		t.Errorf("expected cell size 40, got %f", cfg.CellSize)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected preset to keep default fps, got %d", cfg.FPS)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 30
	if err := ApplyPreset(cfg, "calm"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if cfg.Damping != 0.02 || cfg.FPS != 30 {
		t.Errorf("expected calm damping over custom fps, got %f/%d", cfg.Damping, cfg.FPS)
	}
	if err := ApplyPreset(cfg, "nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
