package glyphfall

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// imageSurface draws glyphs onto an offscreen ebiten.Image that the game
// composites onto the transparent window each frame.
type imageSurface struct {
	img   *ebiten.Image
	font  *GlyphFont
	alpha float64
}

func newImageSurface(font *GlyphFont, w, h int) *imageSurface {
	s := &imageSurface{font: font, alpha: 1}
	s.Resize(w, h)
	return s
}

func (s *imageSurface) Size() (int, int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *imageSurface) Resize(w, h int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	s.img = ebiten.NewImage(w, h)
}

func (s *imageSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *imageSurface) SetAlpha(a float64) {
	s.alpha = a
}

func (s *imageSurface) DrawGlyph(g rune, x, y, size float64, c Color) {
	if s.img == nil || s.alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	// text/v2 anchors at the top of the line; callers give the baseline.
	op.GeoM.Translate(x, y-s.font.Ascent(size))
	op.ColorScale.ScaleWithColor(c.toRGBA())
	op.ColorScale.ScaleAlpha(float32(s.alpha))
	text.Draw(s.img, string(g), s.font.Face(size), op)
}

// Image returns the backing image, or nil for a zero-sized surface.
func (s *imageSurface) Image() *ebiten.Image {
	return s.img
}
