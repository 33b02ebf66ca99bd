package glyphfall

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAutopilotVisitsWaypoints(t *testing.T) {
	a := NewAutopilot(7, Vec2{})
	a.LegDuration = Range{Min: 1, Max: 1}
	a.Ease = ease.Linear
	a.SetWaypoints(Vec2{100, 0}, Vec2{100, 50})

	steps := []struct {
		want Vec2
		legs int
	}{
		{Vec2{50, 0}, 1},
		{Vec2{100, 0}, 2},  // first leg done, second leg starts
		{Vec2{100, 25}, 2}, // halfway down
		{Vec2{100, 50}, 3},
	}
	for i, st := range steps {
		got := a.Update(0.5, 800, 600)
		assertNear(t, "x", got.X, st.want.X)
		assertNear(t, "y", got.Y, st.want.Y)
		if a.Legs() != st.legs {
			t.Errorf("step %d: legs = %d, want %d", i, a.Legs(), st.legs)
		}
		if a.Position() != got {
			t.Errorf("step %d: Position() = %+v, want %+v", i, a.Position(), got)
		}
	}
}

func TestAutopilotStaysInViewport(t *testing.T) {
	a := NewAutopilot(3, Vec2{10, 10})
	for i := 0; i < 600; i++ {
		p := a.Update(1.0/60, 320, 200)
		if p.X < 0 || p.X > 320 || p.Y < 0 || p.Y > 200 {
			t.Fatalf("frame %d: position %+v left the 320x200 viewport", i, p)
		}
	}
	if a.Legs() < 2 {
		t.Errorf("legs = %d after 10s, want several", a.Legs())
	}
}

func TestAutopilotDrivesOverlay(t *testing.T) {
	ov, hub, _ := mountTest(t, testOptions())
	a := NewAutopilot(9, Vec2{})
	a.LegDuration = Range{Min: 0.5, Max: 0.5}
	a.Ease = ease.Linear
	a.SetWaypoints(Vec2{600, 0})

	for i := 0; i < 30; i++ {
		p := a.Update(1.0/60, 800, 600)
		hub.MovePointer(p.X, p.Y)
		hub.Frame()
	}
	// 20px per frame along x: one spawn every second frame.
	if n := ov.Simulation().Len(); n < 10 {
		t.Errorf("particles = %d, want at least 10", n)
	}
}
