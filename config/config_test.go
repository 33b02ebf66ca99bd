package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Alphabet != "katakana" {
		t.Errorf("alphabet = %q, want katakana", cfg.Particles.Alphabet)
	}
	if cfg.Particles.Color != "#0ca3a3" {
		t.Errorf("color = %q, want #0ca3a3", cfg.Particles.Color)
	}
	if cfg.Particles.Size != (RangeConfig{10, 24}) {
		t.Errorf("size = %+v", cfg.Particles.Size)
	}
	if cfg.Particles.Decay != (RangeConfig{0.002, 0.007}) {
		t.Errorf("decay = %+v", cfg.Particles.Decay)
	}
	if cfg.Particles.GlitchChance != 0.1 {
		t.Errorf("glitch = %v, want 0.1", cfg.Particles.GlitchChance)
	}
	if cfg.Trail.SpawnThreshold != 30 {
		t.Errorf("spawn threshold = %v, want 30", cfg.Trail.SpawnThreshold)
	}
	if !cfg.Motion.RespectReducedMotion {
		t.Error("reduced motion should be respected by default")
	}
	if cfg.Terminal.FPS != 60 || cfg.Telemetry.WindowTicks != 600 {
		t.Errorf("terminal fps = %d, window ticks = %d", cfg.Terminal.FPS, cfg.Telemetry.WindowTicks)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := writeFile(t, `
particles:
  alphabet: greek
  speed:
    max: 3
trail:
  spawn_threshold: 12
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Particles.Alphabet != "greek" {
		t.Errorf("alphabet = %q, want greek", cfg.Particles.Alphabet)
	}
	if cfg.Particles.Speed != (RangeConfig{0.5, 3}) {
		t.Errorf("speed = %+v, want {0.5 3}", cfg.Particles.Speed)
	}
	if cfg.Trail.SpawnThreshold != 12 {
		t.Errorf("spawn threshold = %v, want 12", cfg.Trail.SpawnThreshold)
	}
	if cfg.Particles.Color != "#0ca3a3" {
		t.Error("unrelated keys should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "particles: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"size below one", func(c *Config) { c.Particles.Size.Min = 0 }, "particles.size"},
		{"inverted speed", func(c *Config) { c.Particles.Speed = RangeConfig{2, 1} }, "particles.speed"},
		{"zero decay", func(c *Config) { c.Particles.Decay.Min = 0 }, "min must be positive"},
		{"glitch above one", func(c *Config) { c.Particles.GlitchChance = 1.5 }, "glitch_chance"},
		{"no glyphs", func(c *Config) { c.Particles.Alphabet = "" }, "alphabet or glyphs"},
		{"negative threshold", func(c *Config) { c.Trail.SpawnThreshold = -1 }, "spawn_threshold"},
		{"zero threshold", func(c *Config) { c.Trail.SpawnThreshold = 0 }, "spawn_threshold"},
		{"bad color", func(c *Config) { c.Particles.Color = "teal" }, "particles.color"},
		{"transparent color", func(c *Config) { c.Particles.Color = "#00000000" }, "fully transparent"},
		{"bad background", func(c *Config) { c.Terminal.Background = "#12" }, "terminal.background"},
		{"negative window", func(c *Config) { c.Window.Width = -5 }, "negative size"},
		{"zero cell", func(c *Config) { c.Terminal.CellHeight = 0 }, "cell size"},
		{"fps too high", func(c *Config) { c.Terminal.FPS = 1000 }, "terminal.fps"},
		{"zero window ticks", func(c *Config) { c.Telemetry.WindowTicks = 0 }, "window_ticks"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Terminal.FPS = 0
	cfg.Particles.GlitchChance = -1
	err = cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "terminal.fps") || !strings.Contains(msg, "glitch_chance") {
		t.Errorf("error %q should report both problems", msg)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Glyphs = "01"
	cfg.Terminal.Background = "#101010"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *back, *cfg)
	}
}
