package glyphfall

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// TerminalConfig holds optional settings for RunTerminal.
type TerminalConfig struct {
	// CellWidth and CellHeight map one terminal cell to virtual pixels so the
	// spawn threshold and fall speed keep their pixel meaning.
	CellWidth, CellHeight float64
	// FPS is the frame rate of the redraw loop.
	FPS int
	// Background is the color faded glyphs blend toward.
	Background Color
	// ScreenshotDir receives text captures of the cell grid.
	ScreenshotDir string
	// Script, if set, drives synthetic input and ends the run when done.
	Script *TestRunner
	// Autopilot, if set, moves a synthetic pointer every frame.
	Autopilot *Autopilot
	// Logger receives backend records. Nil uses slog.Default().
	Logger *slog.Logger
}

func (c TerminalConfig) withDefaults() TerminalConfig {
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Background == (Color{}) {
		c.Background = ColorBlack
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// RunTerminal renders ov into an initialized tcell screen until ctx is
// cancelled, the user presses Esc, q or Ctrl-C, or Script finishes. The
// caller owns the screen and calls Fini after RunTerminal returns.
func RunTerminal(ctx context.Context, ov *Overlay, screen tcell.Screen, cfg TerminalConfig) error {
	t := newTerminal(screen, cfg)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	if err := ov.Mount(ctx, t.hub); err != nil {
		return fmt.Errorf("glyphfall: mount overlay: %w", err)
	}
	defer ov.Unmount()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.cfg.FPS))
	defer ticker.Stop()

	w, h := t.hub.ViewportSize()
	t.log.Info("terminal opened", "width", w, "height", h, "fps", t.cfg.FPS)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if !t.step() {
				t.log.Info("test script finished", "frames", t.hub.FrameCount())
				return nil
			}
			screen.Show()
		}
	}
}

// terminal adapts tcell events and a fixed-rate ticker to a Hub.
type terminal struct {
	screen  tcell.Screen
	cfg     TerminalConfig
	log     *slog.Logger
	hub     *Hub
	surface *cellSurface

	screenshotQueue []string
}

func newTerminal(screen tcell.Screen, cfg TerminalConfig) *terminal {
	cfg = cfg.withDefaults()
	cols, rows := screen.Size()
	w, h := int(float64(cols)*cfg.CellWidth), int(float64(rows)*cfg.CellHeight)
	surf := newCellSurface(screen, cfg.CellWidth, cfg.CellHeight, cfg.Background)
	surf.Resize(w, h)
	return &terminal{
		screen:  screen,
		cfg:     cfg,
		log:     cfg.Logger.With("backend", "terminal"),
		hub:     NewHub(surf, w, h),
		surface: surf,
	}
}

// handleEvent translates one tcell event. Returns false when the user asked
// to quit.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.screen.Sync()
		t.hub.Resize(int(float64(cols)*t.cfg.CellWidth), int(float64(rows)*t.cfg.CellHeight))
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.hub.MovePointer((float64(x)+0.5)*t.cfg.CellWidth, (float64(y)+0.5)*t.cfg.CellHeight)
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	}
	return true
}

// step runs one frame. Returns false once the script has finished.
func (t *terminal) step() bool {
	if t.cfg.Autopilot != nil {
		w, h := t.hub.ViewportSize()
		p := t.cfg.Autopilot.Update(1/float32(t.cfg.FPS), w, h)
		t.hub.MovePointer(p.X, p.Y)
	}
	if r := t.cfg.Script; r != nil {
		r.step(t.hub, t)
	}
	t.hub.Frame()
	t.flushScreenshots()

	if r := t.cfg.Script; r != nil && r.Done() && t.hub.PendingInjections() == 0 {
		return false
	}
	return true
}

// Screenshot queues a text capture of the cell grid, written after the next
// frame.
func (t *terminal) Screenshot(label string) {
	t.screenshotQueue = append(t.screenshotQueue, label)
}

func (t *terminal) flushScreenshots() {
	if len(t.screenshotQueue) == 0 {
		return
	}
	defer func() { t.screenshotQueue = t.screenshotQueue[:0] }()

	if err := os.MkdirAll(t.cfg.ScreenshotDir, 0o755); err != nil {
		t.log.Error("screenshot dir", "dir", t.cfg.ScreenshotDir, "error", err)
		return
	}
	dump := []byte(t.surface.dump())
	stamp := time.Now()
	for _, label := range t.screenshotQueue {
		path := screenshotPath(t.cfg.ScreenshotDir, label, "txt", stamp)
		if err := os.WriteFile(path, dump, 0o644); err != nil {
			t.log.Error("screenshot", "error", fmt.Errorf("write %s: %w", path, err))
			continue
		}
		t.log.Info("screenshot saved", "path", path)
	}
}

// --- cellSurface ---

// cellScreen is the subset of tcell.Screen the surface draws through.
type cellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Clear()
}

// cellSurface maps virtual pixel coordinates onto terminal cells. Opacity is
// emulated by blending the glyph color toward the background.
type cellSurface struct {
	screen       cellScreen
	cellW, cellH float64
	bg           colorful.Color

	w, h       int
	cols, rows int
	alpha      float64
	grid       []rune
}

func newCellSurface(screen cellScreen, cellW, cellH float64, bg Color) *cellSurface {
	return &cellSurface{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		bg:     colorful.Color{R: bg.R, G: bg.G, B: bg.B},
		alpha:  1,
	}
}

func (s *cellSurface) Size() (int, int) {
	return s.w, s.h
}

func (s *cellSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.cols = int(float64(w) / s.cellW)
	s.rows = int(float64(h) / s.cellH)
	s.grid = make([]rune, s.cols*s.rows)
	s.Clear()
}

func (s *cellSurface) Clear() {
	s.screen.Clear()
	for i := range s.grid {
		s.grid[i] = ' '
	}
}

func (s *cellSurface) SetAlpha(a float64) {
	s.alpha = a
}

// DrawGlyph places g in the cell containing (x, y). Size is ignored; the
// terminal font decides glyph size.
func (s *cellSurface) DrawGlyph(g rune, x, y, size float64, c Color) {
	if s.alpha <= 0 || x < 0 || y < 0 {
		return
	}
	col := int(math.Floor(x / s.cellW))
	row := int(math.Floor(y / s.cellH))
	if col >= s.cols || row >= s.rows {
		return
	}
	s.screen.SetContent(col, row, g, nil, tcell.StyleDefault.Foreground(s.blend(c)))
	s.grid[row*s.cols+col] = g
}

// blend fades c toward the background by the current alpha.
func (s *cellSurface) blend(c Color) tcell.Color {
	fg := colorful.Color{R: c.R, G: c.G, B: c.B}
	r, g, b := s.bg.BlendRgb(fg, s.alpha*c.A).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// cellAt returns the glyph last drawn at (col, row) this frame.
func (s *cellSurface) cellAt(col, row int) rune {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return 0
	}
	return s.grid[row*s.cols+col]
}

// dump renders the grid as text, one line per row, trailing blanks trimmed.
func (s *cellSurface) dump() string {
	var b strings.Builder
	for row := 0; row < s.rows; row++ {
		line := string(s.grid[row*s.cols : (row+1)*s.cols])
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}
