// Package telemetry aggregates per-tick overlay stats into fixed windows and
// writes them as CSV.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/phanxgames/glyphfall"
)

// WindowStats is one CSV row summarizing a window of ticks.
type WindowStats struct {
	WindowEnd  uint64  `csv:"window_end"`
	Ticks      int     `csv:"ticks"`
	Spawned    int     `csv:"spawned"`
	Expired    int     `csv:"expired"`
	Drawn      int     `csv:"drawn"`
	AliveMean  float64 `csv:"alive_mean"`
	AliveMax   int     `csv:"alive_max"`
	LifeMean   float64 `csv:"life_mean"`
	LifeStdDev float64 `csv:"life_stddev"`
	TickMeanUS float64 `csv:"tick_mean_us"`
	TickMaxUS  float64 `csv:"tick_max_us"`
}

// Recorder accumulates FrameStats and emits a WindowStats row every
// windowTicks ticks. A nil *Recorder ignores every call.
type Recorder struct {
	windowTicks int
	out         *os.File
	header      bool

	alive    []float64
	lives    []float64
	tickUS   []float64
	spawned  int
	expired  int
	drawn    int
	aliveMax int
	last     uint64
}

// NewRecorder creates dir and opens dir/telemetry.csv. Returns nil if dir is
// empty (telemetry disabled).
func NewRecorder(dir string, windowTicks int) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if windowTicks < 1 {
		windowTicks = 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	return &Recorder{windowTicks: windowTicks, out: f}, nil
}

// Observe folds one tick into the current window. When the window is full
// its row is written and the window restarts.
func (r *Recorder) Observe(f glyphfall.FrameStats) error {
	if r == nil {
		return nil
	}
	r.alive = append(r.alive, float64(f.Alive))
	r.lives = append(r.lives, f.Lives...)
	r.tickUS = append(r.tickUS, float64(f.Duration)/float64(time.Microsecond))
	r.spawned += f.Spawned
	r.expired += f.Expired
	r.drawn += f.Drawn
	r.aliveMax = max(r.aliveMax, f.Alive)
	r.last = f.Tick

	if len(r.alive) < r.windowTicks {
		return nil
	}
	return r.Flush()
}

// Flush writes the partial window, if any, and restarts it.
func (r *Recorder) Flush() error {
	if r == nil || len(r.alive) == 0 {
		return nil
	}
	row := r.summarize()
	r.reset()

	records := []WindowStats{row}
	if !r.header {
		// First write includes headers
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.header = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close flushes the partial window and closes the CSV file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	flushErr := r.Flush()
	if err := r.out.Close(); err != nil {
		return err
	}
	return flushErr
}

func (r *Recorder) summarize() WindowStats {
	s := WindowStats{
		WindowEnd:  r.last,
		Ticks:      len(r.alive),
		Spawned:    r.spawned,
		Expired:    r.expired,
		Drawn:      r.drawn,
		AliveMean:  stat.Mean(r.alive, nil),
		AliveMax:   r.aliveMax,
		TickMeanUS: stat.Mean(r.tickUS, nil),
	}
	for _, us := range r.tickUS {
		s.TickMaxUS = max(s.TickMaxUS, us)
	}
	if len(r.lives) > 0 {
		s.LifeMean = stat.Mean(r.lives, nil)
	}
	if len(r.lives) > 1 {
		s.LifeStdDev = stat.StdDev(r.lives, nil)
	}
	return s
}

func (r *Recorder) reset() {
	r.alive = r.alive[:0]
	r.lives = r.lives[:0]
	r.tickUS = r.tickUS[:0]
	r.spawned, r.expired, r.drawn, r.aliveMax = 0, 0, 0, 0
}
