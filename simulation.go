package glyphfall

import (
	"math/rand/v2"
	"slices"
	"time"
)

// FrameStats describes a single simulation tick.
type FrameStats struct {
	Tick     uint64        // 1-based tick counter
	Alive    int           // particles remaining after the tick
	Spawned  int           // particles created since the previous tick
	Expired  int           // particles removed by this tick
	Drawn    int           // particles painted this tick
	Duration time.Duration // wall time spent in the tick

	// Lives holds the Life of every surviving particle. The slice is reused
	// between ticks and is only valid during the OnFrame callback.
	Lives []float64
}

// Simulation owns the active particle list.
type Simulation struct {
	particles []Particle
	rng       *rand.Rand

	alphabet Alphabet
	color    Color
	size     Range
	speed    Range
	decay    Range
	glitch   float64

	tick    uint64
	spawned int // since last tick
	lives   []float64
}

// NewSimulation creates an empty simulation. opts is used as given; callers
// normally pass Options that went through withDefaults.
func NewSimulation(opts Options, rng *rand.Rand) *Simulation {
	return &Simulation{
		rng:      rng,
		alphabet: opts.Alphabet,
		color:    opts.Color,
		size:     opts.Size,
		speed:    opts.Speed,
		decay:    opts.Decay,
		glitch:   opts.GlitchChance,
	}
}

// Spawn creates one particle at (x, y) with full life and returns a copy of it.
func (s *Simulation) Spawn(x, y float64) Particle {
	p := Particle{
		X:     x,
		Y:     y,
		Size:  s.size.Random(s.rng),
		Glyph: s.alphabet.Random(s.rng),
		Color: s.color,
		VX:    0,
		VY:    s.speed.Random(s.rng),
		Life:  1,
		Decay: s.decay.Random(s.rng),
	}
	s.particles = append(s.particles, p)
	s.spawned++
	return p
}

// Tick clears surf, updates and draws every particle in list order, then
// drops the dead ones. Dead particles are never drawn.
func (s *Simulation) Tick(surf Surface) FrameStats {
	start := time.Now()
	s.tick++

	surf.Clear()

	drawn := 0
	for i := range s.particles {
		p := &s.particles[i]
		p.update(s.rng, s.alphabet, s.glitch)
		if p.Alive() {
			p.draw(surf)
			drawn++
		}
	}

	before := len(s.particles)
	s.particles = slices.DeleteFunc(s.particles, func(p Particle) bool {
		return !p.Alive()
	})

	s.lives = s.lives[:0]
	for i := range s.particles {
		s.lives = append(s.lives, s.particles[i].Life)
	}

	stats := FrameStats{
		Tick:     s.tick,
		Alive:    len(s.particles),
		Spawned:  s.spawned,
		Expired:  before - len(s.particles),
		Drawn:    drawn,
		Duration: time.Since(start),
		Lives:    s.lives,
	}
	s.spawned = 0
	return stats
}

// Len returns the number of active particles.
func (s *Simulation) Len() int {
	return len(s.particles)
}

// Particles returns the active particle list. The returned slice MUST NOT be
// mutated or retained across ticks.
func (s *Simulation) Particles() []Particle {
	return s.particles
}

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() uint64 {
	return s.tick
}

// Reset drops every particle.
func (s *Simulation) Reset() {
	clear(s.particles)
	s.particles = s.particles[:0]
	s.spawned = 0
}
