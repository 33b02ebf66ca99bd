package glyphfall

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional settings for Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the window size. Zero uses the monitor size.
	Width, Height int
	// Windowed opens a regular decorated, opaque window instead of the
	// transparent click-through overlay. Useful for screenshots.
	Windowed bool
	// ShowFPS draws a small FPS/TPS/particle counter in the corner.
	ShowFPS bool
	// Font draws the glyphs. Nil loads DefaultGlyphFont.
	Font *GlyphFont
	// ScreenshotDir receives PNG captures. Empty defaults to "screenshots".
	ScreenshotDir string
	// Script, if set, drives synthetic input and ends the run when done.
	Script *TestRunner
	// Autopilot, if set, moves a synthetic pointer every frame.
	Autopilot *Autopilot
	// Logger receives backend records. Nil uses slog.Default().
	Logger *slog.Logger
}

// Run opens an Ebitengine window, mounts ov and blocks until the window is
// closed, ctx is cancelled, or Script finishes. The overlay is unmounted
// before Run returns.
func Run(ctx context.Context, ov *Overlay, cfg RunConfig) error {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	log := cfg.Logger.With("backend", "ebiten")

	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = ebiten.Monitor().Size()
	}

	font := cfg.Font
	if font == nil {
		var err error
		if font, err = DefaultGlyphFont(); err != nil {
			log.Error("default font unavailable", "error", err)
		}
	}

	g := &game{
		ctx:    ctx,
		ov:     ov,
		cfg:    cfg,
		log:    log,
		layout: [2]int{w, h},
	}
	var surf Surface
	if font != nil {
		g.surface = newImageSurface(font, w, h)
		surf = g.surface
	}
	g.hub = NewHub(surf, w, h)
	if cfg.ShowFPS {
		g.hud = newHUD()
	}

	title := cfg.Title
	if title == "" {
		title = "glyphfall"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	if !cfg.Windowed {
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
		ebiten.SetWindowMousePassthrough(true)
		ebiten.SetWindowPosition(0, 0)
	}

	if err := ov.Mount(ctx, g.hub); err != nil {
		return fmt.Errorf("glyphfall: mount overlay: %w", err)
	}
	defer ov.Unmount()

	log.Info("window opened", "width", w, "height", h, "overlay", !cfg.Windowed)
	op := &ebiten.RunGameOptions{ScreenTransparent: !cfg.Windowed}
	if err := ebiten.RunGameWithOptions(g, op); err != nil {
		return fmt.Errorf("glyphfall: run game: %w", err)
	}
	return nil
}

// game adapts a Hub to ebiten.Game.
type game struct {
	ctx     context.Context
	ov      *Overlay
	cfg     RunConfig
	log     *slog.Logger
	hub     *Hub
	surface *imageSurface
	hud     *hud

	layout      [2]int
	cursor      [2]int
	cursorKnown bool
	lastUpdate  time.Time

	screenshotQueue []string
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if w, h := g.hub.ViewportSize(); w != g.layout[0] || h != g.layout[1] {
		g.hub.Resize(g.layout[0], g.layout[1])
	}

	mx, my := ebiten.CursorPosition()
	if !g.cursorKnown || mx != g.cursor[0] || my != g.cursor[1] {
		g.cursor = [2]int{mx, my}
		g.cursorKnown = true
		g.hub.MovePointer(float64(mx), float64(my))
	}

	if g.cfg.Autopilot != nil {
		now := time.Now()
		dt := float32(1.0 / 60.0)
		if !g.lastUpdate.IsZero() {
			dt = float32(now.Sub(g.lastUpdate).Seconds())
		}
		g.lastUpdate = now
		w, h := g.hub.ViewportSize()
		p := g.cfg.Autopilot.Update(dt, w, h)
		g.hub.MovePointer(p.X, p.Y)
	}

	if r := g.cfg.Script; r != nil {
		r.step(g.hub, g)
		if r.Done() && len(g.screenshotQueue) == 0 && g.hub.PendingInjections() == 0 {
			g.log.Info("test script finished", "frames", g.hub.FrameCount())
			return ebiten.Termination
		}
	}

	g.hub.Frame()
	if g.hud != nil {
		g.hud.update(g.ov.Simulation().Len())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface != nil {
		if img := g.surface.Image(); img != nil {
			screen.DrawImage(img, nil)
		}
	}
	if g.hud != nil {
		g.hud.draw(screen)
	}
	g.flushScreenshots(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layout = [2]int{outsideWidth, outsideHeight}
	return outsideWidth, outsideHeight
}
