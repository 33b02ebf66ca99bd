package glyphfall

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudRefresh is how often the HUD text is re-rendered.
const hudRefresh = 500 * time.Millisecond

// hud displays FPS, TPS and the live particle count in the top-left corner.
// It uses a small internal image and ebitenutil.DebugPrint for rendering.
type hud struct {
	img        *ebiten.Image
	lastUpdate time.Time
}

func newHUD() *hud {
	// 120x48 is enough for "FPS: 60.0\nTPS: 60.0\nGlyphs: 1234"
	return &hud{img: ebiten.NewImage(120, 48)}
}

func (h *hud) update(alive int) {
	now := time.Now()
	if now.Sub(h.lastUpdate) < hudRefresh {
		return
	}
	h.lastUpdate = now

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nGlyphs: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), alive))
}

func (h *hud) draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, op)
}
