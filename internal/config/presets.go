package config

import (
	"fmt"
	"sort"
)

// Presets overlay the defaults. Only the fields a preset changes are set.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.CellSize = 40
		c.Proximity = 60
	},
	"sparse": func(c *Config) {
		c.CellSize = 90
		c.Proximity = 120
		c.LineAlpha = 0.05
	},
	"calm": func(c *Config) {
		c.Repulsion = 0.01
		c.Damping = 0.02
		c.InfluenceRadius = 150
	},
	"storm": func(c *Config) {
		c.Repulsion = 0.08
		c.Damping = 0.08
		c.InfluenceRadius = 320
		c.LineAlpha = 0.06
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg.
func ApplyPreset(cfg *Config, name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
