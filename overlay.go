package glyphfall

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
)

// ErrAlreadyMounted is returned by Mount when the overlay is already mounted.
var ErrAlreadyMounted = errors.New("glyphfall: overlay already mounted")

// Overlay is the falling-glyph effect. It keeps its surface sized to the
// viewport, spawns a particle whenever the pointer travels past the spawn
// threshold, and repaints every particle once per frame until unmounted.
type Overlay struct {
	opts  Options
	log   *slog.Logger
	sim   *Simulation
	trail *Trail
	seed  uint64

	hub     *Hub
	surface Surface
	ctx     context.Context
	cancel  context.CancelFunc
	resizeH CallbackHandle
	moveH   CallbackHandle
	frame   FrameHandle
	mounted bool

	debug debugStats
}

// NewOverlay creates an unmounted overlay.
func NewOverlay(opts Options) *Overlay {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Overlay{
		opts:  opts,
		log:   opts.Logger.With("component", "glyphfall"),
		sim:   NewSimulation(opts, rng),
		trail: NewTrail(opts.SpawnThreshold),
		seed:  seed,
	}
}

// Mount attaches the overlay to hub: the surface is synced to the viewport,
// resize and pointer-move listeners are registered and the frame loop
// starts. When the hub has no surface, or reduced motion is preferred and
// respected, Mount does nothing and returns nil.
//
// Cancelling ctx stops the frame loop; Unmount must still be called to
// release the listeners.
func (o *Overlay) Mount(ctx context.Context, hub *Hub) error {
	if o.mounted {
		return ErrAlreadyMounted
	}
	if o.opts.ReducedMotion && o.opts.RespectReducedMotion {
		o.log.Info("reduced motion preferred, overlay stays idle")
		return nil
	}
	surf := hub.Surface()
	if surf == nil {
		o.log.Warn("drawing surface unavailable, overlay stays idle")
		return nil
	}

	o.hub = hub
	o.surface = surf
	o.ctx, o.cancel = context.WithCancel(ctx)

	w, h := hub.ViewportSize()
	o.resize(w, h)
	o.resizeH = hub.OnResize(o.resize)
	o.moveH = hub.OnPointerMove(o.pointerMove)
	o.frame = hub.RequestFrame(o.tick)
	o.mounted = true

	o.log.Debug("overlay mounted", "width", w, "height", h, "seed", o.seed,
		"glyphs", len(o.opts.Alphabet), "reduced_motion", o.opts.ReducedMotion)
	return nil
}

// Unmount removes both listeners, cancels the pending frame and stops the
// loop. No tick runs after Unmount returns. Unmounting an overlay that is
// not mounted is a no-op.
func (o *Overlay) Unmount() {
	if !o.mounted {
		return
	}
	o.cancel()
	o.resizeH.Remove()
	o.moveH.Remove()
	o.frame.Cancel()

	o.mounted = false
	o.hub = nil
	o.surface = nil
	o.log.Debug("overlay unmounted", "ticks", o.sim.Ticks(), "alive", o.sim.Len())
}

// Mounted reports whether the overlay is attached and animating.
func (o *Overlay) Mounted() bool {
	return o.mounted
}

// Simulation exposes the particle simulation for inspection.
func (o *Overlay) Simulation() *Simulation {
	return o.sim
}

// Trail exposes the spawn tracker for inspection.
func (o *Overlay) Trail() *Trail {
	return o.trail
}

// Options returns the effective options, defaults applied.
func (o *Overlay) Options() Options {
	return o.opts
}

// Seed returns the RNG seed in use.
func (o *Overlay) Seed() uint64 {
	return o.seed
}

func (o *Overlay) resize(w, h int) {
	if o.ctx.Err() != nil {
		return
	}
	if syncSurface(o.surface, w, h) {
		o.log.Debug("surface resized", "width", w, "height", h)
	}
}

func (o *Overlay) pointerMove(x, y float64) {
	if o.ctx.Err() != nil {
		return
	}
	if o.trail.Observe(x, y) {
		o.sim.Spawn(x, y)
	}
}

func (o *Overlay) tick() {
	if o.ctx.Err() != nil {
		return
	}
	stats := o.sim.Tick(o.surface)
	if o.opts.Debug {
		o.debug.observe(o.log, stats)
	}
	if o.opts.OnFrame != nil {
		o.opts.OnFrame(stats)
	}
	// OnFrame may have unmounted the overlay.
	if o.ctx.Err() != nil {
		return
	}
	o.frame = o.hub.RequestFrame(o.tick)
}
