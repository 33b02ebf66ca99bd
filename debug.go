package glyphfall

import (
	"log/slog"
	"time"
)

// debugLogInterval is the number of ticks aggregated per debug record.
const debugLogInterval = 120

// debugStats accumulates tick timing and particle counts between debug
// records. Only populated when Options.Debug is true.
type debugStats struct {
	ticks    int
	total    time.Duration
	slowest  time.Duration
	drawn    int
	spawned  int
	expired  int
	maxAlive int
}

// observe folds one tick into the window and logs the window once full.
func (d *debugStats) observe(log *slog.Logger, f FrameStats) {
	d.ticks++
	d.total += f.Duration
	d.slowest = max(d.slowest, f.Duration)
	d.drawn += f.Drawn
	d.spawned += f.Spawned
	d.expired += f.Expired
	d.maxAlive = max(d.maxAlive, f.Alive)

	if d.ticks < debugLogInterval {
		return
	}
	log.Debug("frame stats",
		"tick", f.Tick,
		"avg_tick", d.total/time.Duration(d.ticks),
		"slowest_tick", d.slowest,
		"draws", d.drawn,
		"spawned", d.spawned,
		"expired", d.expired,
		"max_alive", d.maxAlive,
	)
	*d = debugStats{}
}
