package glyphfall

import "math/rand/v2"

// Particle is a single falling glyph. Position advances by (VX, VY) each tick
// and Life drops by Decay; the particle is dead once Life reaches 0.
type Particle struct {
	X, Y   float64
	Size   float64
	Glyph  rune
	Color  Color
	VX, VY float64
	Life   float64
	Decay  float64
}

// lifeEpsilon absorbs the rounding left by repeated Decay subtraction, so a
// particle with decay d dies on tick ceil(1/d) rather than one tick late.
const lifeEpsilon = 1e-9

// Alive reports whether the particle still has life left.
func (p *Particle) Alive() bool {
	return p.Life > lifeEpsilon
}

// update advances the particle by one tick. With probability glitch the glyph
// is replaced by a fresh uniform pick from alphabet (it may repeat).
func (p *Particle) update(rng *rand.Rand, alphabet Alphabet, glitch float64) {
	p.X += p.VX
	p.Y += p.VY
	p.Life -= p.Decay

	if rng.Float64() < glitch {
		p.Glyph = alphabet.Random(rng)
	}
}

// draw paints the particle at its current opacity and restores full opacity.
func (p *Particle) draw(s Surface) {
	s.SetAlpha(p.Life)
	s.DrawGlyph(p.Glyph, p.X, p.Y, p.Size, p.Color)
	s.SetAlpha(1)
}
