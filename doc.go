// Package glyphfall renders a falling-glyph particle trail that follows the
// pointer, on a transparent full-screen overlay drawn with [Ebitengine] or in
// a terminal through [tcell].
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a click-through
// overlay window the size of the monitor:
//
//	ov := glyphfall.NewOverlay(glyphfall.DefaultOptions())
//	if err := glyphfall.Run(ctx, ov, glyphfall.RunConfig{Font: font}); err != nil {
//		log.Fatal(err)
//	}
//
// For a terminal, initialize a tcell screen and call [RunTerminal].
//
// # How it works
//
// Every pointer move is measured against the last spawn point. Once the
// pointer is more than [Options.SpawnThreshold] pixels away, one [Particle]
// is spawned there and the spawn point moves. Each frame the overlay clears
// its [Surface], moves every particle down by its speed, fades it by its
// decay, occasionally swaps its glyph, draws it at an opacity equal to its
// remaining life, and finally drops the particles whose life ran out.
//
// # Hosts
//
// An [Overlay] mounts into a [Hub]. The hub is fed by a backend (or by a test)
// with viewport resizes, pointer moves and one [Hub.Frame] call per display
// refresh. [Overlay.Unmount] removes every listener and the pending frame
// request, after which the overlay never touches its surface again.
//
// # Reduced motion
//
// [Options.ReducedMotion] carries the host's motion preference. With
// [Options.RespectReducedMotion] set (the default) a mounted overlay stays
// idle when reduced motion is preferred.
//
// # Scripts and screenshots
//
// [LoadTestScript] parses a JSON list of pointer moves, sweeps, waits and
// screenshots that both backends replay frame by frame. [Autopilot] wanders
// a synthetic pointer around the viewport using [gween] tweens.
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [gween]: https://github.com/tanema/gween
package glyphfall
