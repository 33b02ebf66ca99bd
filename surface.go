package glyphfall

// Surface is the drawing target the overlay paints every frame. Coordinates
// are device-independent pixels with the origin at the top-left.
//
// Backends: imageSurface (Ebitengine window) and cellSurface (terminal).
type Surface interface {
	// Size reports the current surface dimensions.
	Size() (w, h int)
	// Resize reallocates the surface. Drawn content is discarded.
	Resize(w, h int)
	// Clear erases all drawn content.
	Clear()
	// SetAlpha sets the global opacity applied to subsequent draws.
	SetAlpha(a float64)
	// DrawGlyph draws g with its baseline at (x, y) at the given pixel size.
	DrawGlyph(g rune, x, y, size float64, c Color)
}

// syncSurface resizes s to w×h unless it already has those dimensions.
// Reports whether a resize happened.
func syncSurface(s Surface, w, h int) bool {
	if cw, ch := s.Size(); cw == w && ch == h {
		return false
	}
	s.Resize(w, h)
	return true
}
