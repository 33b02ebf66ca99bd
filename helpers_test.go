package glyphfall

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// drawCall is one recorded DrawGlyph.
type drawCall struct {
	glyph rune
	x, y  float64
	size  float64
	alpha float64
	color Color
}

// recordingSurface is an in-memory Surface that records every call.
type recordingSurface struct {
	w, h      int
	alpha     float64
	resizes   int
	clears    int
	draws     []drawCall // since the last Clear
	allDraws  []drawCall
	mutations int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{alpha: 1}
}

func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func (s *recordingSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
	s.draws = s.draws[:0]
	s.mutations++
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.draws = s.draws[:0]
	s.mutations++
}

func (s *recordingSurface) SetAlpha(a float64) { s.alpha = a }

func (s *recordingSurface) DrawGlyph(g rune, x, y, size float64, c Color) {
	d := drawCall{glyph: g, x: x, y: y, size: size, alpha: s.alpha, color: c}
	s.draws = append(s.draws, d)
	s.allDraws = append(s.allDraws, d)
	s.mutations++
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 42
	opts.Logger = discardLogger()
	return opts
}
