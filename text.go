package glyphfall

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ascentProbeSize is the face size used to measure the font's ascent ratio.
const ascentProbeSize = 100

// GlyphFont wraps Ebitengine's text/v2 face source for drawing single glyphs
// at arbitrary pixel sizes.
type GlyphFont struct {
	source *text.GoTextFaceSource
	ascent float64 // ascent per pixel of face size
}

// LoadGlyphFont loads a TrueType or OpenType font from raw data.
func LoadGlyphFont(data []byte) (*GlyphFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyphfall: failed to parse font data: %w", err)
	}
	probe := &text.GoTextFace{Source: source, Size: ascentProbeSize}
	return &GlyphFont{
		source: source,
		ascent: probe.Metrics().HAscent / ascentProbeSize,
	}, nil
}

// DefaultGlyphFont loads Go Regular. It covers Latin, Greek and Cyrillic but
// has no kana; pair katakana with a CJK font.
func DefaultGlyphFont() (*GlyphFont, error) {
	return LoadGlyphFont(goregular.TTF)
}

// Face returns a face of the given pixel size.
func (f *GlyphFont) Face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// Ascent returns the distance from the top of a line to the baseline for a
// face of the given size.
func (f *GlyphFont) Ascent(size float64) float64 {
	return f.ascent * size
}
