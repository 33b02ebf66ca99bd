package glyphfall

import (
	"math/rand/v2"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Autopilot moves a synthetic pointer between waypoints so the overlay can be
// demonstrated without a mouse. Each leg tweens X and Y simultaneously.
// Once the fixed waypoints are used up, random targets inside the viewport
// are chosen.
//
// There is no global driver; backends call Update once per frame.
type Autopilot struct {
	// LegDuration is the range of seconds each leg takes.
	LegDuration Range
	// Ease shapes each leg.
	Ease ease.TweenFunc

	rng       *rand.Rand
	pos       Vec2
	waypoints []Vec2
	tweens    [2]*gween.Tween
	legs      int
}

// NewAutopilot creates an autopilot starting at start.
func NewAutopilot(seed uint64, start Vec2) *Autopilot {
	return &Autopilot{
		LegDuration: Range{Min: 0.6, Max: 1.8},
		Ease:        ease.InOutSine,
		rng:         rand.New(rand.NewPCG(seed, seed+1)),
		pos:         start,
	}
}

// SetWaypoints queues fixed targets visited before random ones.
func (a *Autopilot) SetWaypoints(points ...Vec2) {
	a.waypoints = append(a.waypoints[:0], points...)
}

// Position returns the current synthetic pointer position.
func (a *Autopilot) Position() Vec2 {
	return a.pos
}

// Legs returns the number of legs started so far.
func (a *Autopilot) Legs() int {
	return a.legs
}

// Update advances the pointer by dt seconds within a w×h viewport and
// returns its new position.
func (a *Autopilot) Update(dt float32, w, h int) Vec2 {
	if a.tweens[0] == nil {
		a.nextLeg(w, h)
	}
	x, xDone := a.tweens[0].Update(dt)
	y, yDone := a.tweens[1].Update(dt)
	a.pos = Vec2{X: float64(x), Y: float64(y)}
	if xDone && yDone {
		a.nextLeg(w, h)
	}
	return a.pos
}

func (a *Autopilot) nextLeg(w, h int) {
	var target Vec2
	if len(a.waypoints) > 0 {
		target = a.waypoints[0]
		a.waypoints = a.waypoints[1:]
	} else {
		target = Vec2{
			X: a.rng.Float64() * float64(max(w, 1)),
			Y: a.rng.Float64() * float64(max(h, 1)),
		}
	}
	d := float32(a.LegDuration.Random(a.rng))
	if d <= 0 {
		d = 1
	}
	a.tweens[0] = gween.New(float32(a.pos.X), float32(target.X), d, a.Ease)
	a.tweens[1] = gween.New(float32(a.pos.Y), float32(target.Y), d, a.Ease)
	a.legs++
}
