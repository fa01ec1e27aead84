package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultBackground = "#0a0e17"
	DefaultTheme      = "nextech"
	// DefaultCellScale is viewport units per braille dot in terminal hosts.
	DefaultCellScale = 8.0
	// DefaultGain boosts alpha in terminal hosts so faint connectors stay visible.
	DefaultGain = 3.0
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	CellSize        float64    `yaml:"cell_size"`
	InfluenceRadius float64    `yaml:"influence_radius"`
	Repulsion       float64    `yaml:"repulsion"`
	Damping         float64    `yaml:"damping"`
	Proximity       float64    `yaml:"proximity"`
	LineAlpha       float64    `yaml:"line_alpha"`
	LineWidth       float64    `yaml:"line_width"`
	RadiusMin       float64    `yaml:"radius_min"`
	RadiusMax       float64    `yaml:"radius_max"`
	OpacityMin      float64    `yaml:"opacity_min"`
	OpacityMax      float64    `yaml:"opacity_max"`
	Color           string     `yaml:"color"`
	Background      string     `yaml:"background"`
	FPS             int        `yaml:"fps"`
	Seed            int64      `yaml:"seed"`
	Dedupe          bool       `yaml:"dedupe"`
	Theme           string     `yaml:"theme"`
	Terminal        TermConfig `yaml:"terminal"`
}

// TermConfig maps viewport units onto terminal cells.
type TermConfig struct {
	Scale float64 `yaml:"scale"`
	Gain  float64 `yaml:"gain"`
}

func DefaultConfig() *Config {
	return &Config{
		CellSize:        mesh.DefaultCellSize,
		InfluenceRadius: mesh.DefaultInfluenceRadius,
		Repulsion:       mesh.DefaultRepulsion,
		Damping:         mesh.DefaultDamping,
		Proximity:       render.DefaultProximity,
		LineAlpha:       render.DefaultLineAlpha,
		LineWidth:       render.DefaultLineWidth,
		RadiusMin:       mesh.DefaultRadiusMin,
		RadiusMax:       mesh.DefaultRadiusMax,
		OpacityMin:      mesh.DefaultOpacityMin,
		OpacityMax:      mesh.DefaultOpacityMax,
		Color:           render.DefaultColor,
		Background:      DefaultBackground,
		FPS:             DefaultFPS,
		Theme:           DefaultTheme,
		Terminal: TermConfig{
			Scale: DefaultCellScale,
			Gain:  DefaultGain,
		},
	}
}

// Load overlays the YAML file at path on the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.MeshParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !(c.Proximity > 0) {
		return fmt.Errorf("%w: proximity must be positive, got %g", ErrInvalidConfig, c.Proximity)
	}
	if !(c.LineAlpha >= 0 && c.LineAlpha <= 1) {
		return fmt.Errorf("%w: line_alpha must be within [0, 1], got %g", ErrInvalidConfig, c.LineAlpha)
	}
	if !(c.LineWidth > 0) {
		return fmt.Errorf("%w: line_width must be positive, got %g", ErrInvalidConfig, c.LineWidth)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if !(c.Terminal.Scale > 0) || !(c.Terminal.Gain > 0) {
		return fmt.Errorf("%w: terminal scale and gain must be positive", ErrInvalidConfig)
	}
	for _, hex := range []string{c.Color, c.Background} {
		if _, err := render.ParseHex(hex); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c *Config) MeshParams() mesh.Params {
	return mesh.Params{
		CellSize:        c.CellSize,
		InfluenceRadius: c.InfluenceRadius,
		Repulsion:       c.Repulsion,
		Damping:         c.Damping,
		RadiusMin:       c.RadiusMin,
		RadiusMax:       c.RadiusMax,
		OpacityMin:      c.OpacityMin,
		OpacityMax:      c.OpacityMax,
	}
}

// RenderParams assumes Validate has passed; an unparsable colour falls back
// to the default.
func (c *Config) RenderParams() render.Params {
	col, err := render.ParseHex(c.Color)
	if err != nil {
		col = render.MustParseHex(render.DefaultColor)
	}
	return render.Params{
		Proximity: c.Proximity,
		LineAlpha: c.LineAlpha,
		LineWidth: c.LineWidth,
		Color:     col,
		Dedupe:    c.Dedupe,
	}
}

func (c *Config) BackgroundColor() render.Color {
	col, err := render.ParseHex(c.Background)
	if err != nil {
		return render.MustParseHex(DefaultBackground)
	}
	return col
}
