package glyphfall

import "math"

// Trail decides when pointer movement should spawn a particle. It remembers
// the last spawn point and fires when the pointer is strictly farther than the
// threshold from it. Distance is measured per event, never accumulated.
type Trail struct {
	last      Vec2
	threshold float64
}

// NewTrail creates a Trail whose last spawn point is the origin.
func NewTrail(threshold float64) *Trail {
	return &Trail{threshold: threshold}
}

// Observe reports whether a pointer at (x, y) qualifies for a spawn. On true
// the last spawn point moves to (x, y).
func (t *Trail) Observe(x, y float64) bool {
	if math.Hypot(x-t.last.X, y-t.last.Y) <= t.threshold {
		return false
	}
	t.last = Vec2{X: x, Y: y}
	return true
}

// LastSpawn returns the last spawn point.
func (t *Trail) LastSpawn() Vec2 {
	return t.last
}

// Threshold returns the spawn distance threshold.
func (t *Trail) Threshold() float64 {
	return t.threshold
}
