// Package config provides configuration loading for glyphfall.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/glyphfall"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the overlay and its backends.
type Config struct {
	Window        WindowConfig    `yaml:"window"`
	Particles     ParticlesConfig `yaml:"particles"`
	Trail         TrailConfig     `yaml:"trail"`
	Motion        MotionConfig    `yaml:"motion"`
	Font          FontConfig      `yaml:"font"`
	Terminal      TerminalConfig  `yaml:"terminal"`
	Telemetry     TelemetryConfig `yaml:"telemetry"`
	ScreenshotDir string          `yaml:"screenshot_dir"`
}

// WindowConfig holds Ebitengine window settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`  // 0 = monitor width
	Height   int    `yaml:"height"` // 0 = monitor height
	Windowed bool   `yaml:"windowed"`
	ShowFPS  bool   `yaml:"show_fps"`
}

// RangeConfig is a [min, max) range.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ParticlesConfig holds per-particle parameters.
type ParticlesConfig struct {
	Alphabet     string      `yaml:"alphabet"`
	Glyphs       string      `yaml:"glyphs"` // overrides Alphabet when set
	Color        string      `yaml:"color"`  // "#rrggbb" or "#rrggbbaa"
	Size         RangeConfig `yaml:"size"`
	Speed        RangeConfig `yaml:"speed"`
	Decay        RangeConfig `yaml:"decay"`
	GlitchChance float64     `yaml:"glitch_chance"`
}

// TrailConfig holds spawn tracking parameters.
type TrailConfig struct {
	SpawnThreshold float64 `yaml:"spawn_threshold"`
}

// MotionConfig holds the reduced-motion policy.
type MotionConfig struct {
	RespectReducedMotion bool `yaml:"respect_reduced_motion"`
}

// FontConfig selects the glyph font for the window backend.
type FontConfig struct {
	Path string `yaml:"path"`
}

// TerminalConfig holds terminal backend settings.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	FPS        int     `yaml:"fps"`
	Background string  `yaml:"background"`
}

// TelemetryConfig holds stats window settings.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	checkRange := func(name string, r RangeConfig, floor float64) {
		if r.Min < floor || r.Max < r.Min {
			errs = append(errs, fmt.Errorf("particles.%s: want %g <= min <= max, got [%g, %g]", name, floor, r.Min, r.Max))
		}
	}
	checkRange("size", c.Particles.Size, 1)
	checkRange("speed", c.Particles.Speed, 0)
	checkRange("decay", c.Particles.Decay, 0)
	if c.Particles.Decay.Min <= 0 {
		errs = append(errs, errors.New("particles.decay: min must be positive"))
	}
	if c.Particles.GlitchChance < 0 || c.Particles.GlitchChance > 1 {
		errs = append(errs, fmt.Errorf("particles.glitch_chance: want [0, 1], got %g", c.Particles.GlitchChance))
	}
	if c.Particles.Alphabet == "" && c.Particles.Glyphs == "" {
		errs = append(errs, errors.New("particles: alphabet or glyphs required"))
	}
	if c.Trail.SpawnThreshold <= 0 {
		errs = append(errs, fmt.Errorf("trail.spawn_threshold: must be > 0, got %g", c.Trail.SpawnThreshold))
	}
	if col, err := glyphfall.ParseHexColor(c.Particles.Color); err != nil {
		errs = append(errs, fmt.Errorf("particles.color: %w", err))
	} else if col.A == 0 {
		errs = append(errs, fmt.Errorf("particles.color: %q is fully transparent", c.Particles.Color))
	}
	if _, err := glyphfall.ParseHexColor(c.Terminal.Background); err != nil {
		errs = append(errs, fmt.Errorf("terminal.background: %w", err))
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window: negative size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("terminal: cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight))
	}
	if c.Terminal.FPS < 1 || c.Terminal.FPS > 240 {
		errs = append(errs, fmt.Errorf("terminal.fps: want 1-240, got %d", c.Terminal.FPS))
	}
	if c.Telemetry.WindowTicks < 1 {
		errs = append(errs, fmt.Errorf("telemetry.window_ticks: must be >= 1, got %d", c.Telemetry.WindowTicks))
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
