package glyphfall

import "log/slog"

const (
	// DefaultSpawnThreshold is the pointer travel, in pixels, required since
	// the last spawn before another particle is created.
	DefaultSpawnThreshold = 30.0
	// DefaultGlitchChance is the per-tick probability of a glyph swap.
	DefaultGlitchChance = 0.1
)

// Default particle ranges.
var (
	DefaultSizeRange  = Range{Min: 10, Max: 24}
	DefaultSpeedRange = Range{Min: 0.5, Max: 1.5}
	DefaultDecayRange = Range{Min: 0.002, Max: 0.007}
)

// Options configures an Overlay. Start from DefaultOptions; zero-valued
// ranges, alphabet, color, threshold and logger are filled with defaults by
// NewOverlay. A zero GlitchChance disables the glitch effect.
type Options struct {
	// Alphabet is the glyph set particles draw from.
	Alphabet Alphabet
	// Color is the display color shared by every particle.
	Color Color
	// Size is the glyph pixel size range, fixed per particle.
	Size Range
	// Speed is the vertical fall speed range in pixels per tick.
	Speed Range
	// Decay is the per-tick life reduction range.
	Decay Range
	// GlitchChance is the per-tick probability of reassigning a glyph.
	GlitchChance float64
	// SpawnThreshold is the minimum pointer travel since the last spawn.
	SpawnThreshold float64

	// ReducedMotion is the host's "prefers reduced motion" signal, read once.
	ReducedMotion bool
	// RespectReducedMotion, when true, turns Mount into a no-op while
	// ReducedMotion is set.
	RespectReducedMotion bool

	// Seed seeds the particle RNG. Zero picks a random seed.
	Seed uint64
	// Logger receives lifecycle and debug records. Nil uses slog.Default().
	Logger *slog.Logger
	// Debug enables periodic frame timing logs.
	Debug bool
	// OnFrame, if set, is called after every tick with that tick's stats.
	OnFrame func(FrameStats)
}

// DefaultOptions returns the stock katakana-trail configuration.
func DefaultOptions() Options {
	return Options{
		Alphabet:             AlphabetKatakana,
		Color:                ColorTeal,
		Size:                 DefaultSizeRange,
		Speed:                DefaultSpeedRange,
		Decay:                DefaultDecayRange,
		GlitchChance:         DefaultGlitchChance,
		SpawnThreshold:       DefaultSpawnThreshold,
		RespectReducedMotion: true,
	}
}

func (o Options) withDefaults() Options {
	if len(o.Alphabet) == 0 {
		o.Alphabet = AlphabetKatakana
	}
	if o.Color == (Color{}) {
		o.Color = ColorTeal
	}
	if o.Size == (Range{}) {
		o.Size = DefaultSizeRange
	}
	if o.Speed == (Range{}) {
		o.Speed = DefaultSpeedRange
	}
	if o.Decay == (Range{}) {
		o.Decay = DefaultDecayRange
	}
	if o.GlitchChance < 0 {
		o.GlitchChance = 0
	}
	if o.SpawnThreshold <= 0 {
		o.SpawnThreshold = DefaultSpawnThreshold
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
