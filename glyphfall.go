package glyphfall

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorTeal is the default particle color (#0ca3a3).
var ColorTeal = Color{R: 12.0 / 255, G: 163.0 / 255, B: 163.0 / 255, A: 1}

// ColorBlack is the default terminal background.
var ColorBlack = Color{0, 0, 0, 1}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("glyphfall: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("glyphfall: invalid hex color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*c.A*255 + 0.5),
		G: uint8(c.G*c.A*255 + 0.5),
		B: uint8(c.B*c.A*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Range is a general-purpose min/max range. Random draws from [Min, Max).
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// EventType identifies a kind of host event.
type EventType uint8

const (
	EventResize      EventType = iota // fires when the viewport changes size
	EventPointerMove                  // fires when the global pointer moves
)

func (e EventType) String() string {
	switch e {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointermove"
	default:
		return "unknown"
	}
}
