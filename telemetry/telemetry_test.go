package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/phanxgames/glyphfall"
)

func readRows(t *testing.T, dir string) []WindowStats {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	var rows []WindowStats
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatalf("parsing telemetry.csv: %v", err)
	}
	return rows
}

func TestRecorderWindows(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, 2)
	if err != nil {
		t.Fatal(err)
	}

	frames := []glyphfall.FrameStats{
		{Tick: 1, Alive: 2, Spawned: 2, Drawn: 2, Duration: 10 * time.Microsecond, Lives: []float64{0.5, 1.0}},
		{Tick: 2, Alive: 1, Expired: 1, Drawn: 1, Duration: 30 * time.Microsecond, Lives: []float64{0.75}},
		{Tick: 3, Alive: 4, Spawned: 3, Drawn: 4, Duration: 20 * time.Microsecond, Lives: []float64{1, 1, 1, 1}},
	}
	for _, f := range frames {
		if err := rec.Observe(f); err != nil {
			t.Fatalf("Observe: %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rows := readRows(t, dir)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.WindowEnd != 2 || first.Ticks != 2 || first.Spawned != 2 || first.Expired != 1 || first.Drawn != 3 {
		t.Errorf("first window = %+v", first)
	}
	if math.Abs(first.AliveMean-1.5) > 0.001 || first.AliveMax != 2 {
		t.Errorf("alive mean/max = %v/%d, want 1.5/2", first.AliveMean, first.AliveMax)
	}
	if math.Abs(first.LifeMean-0.75) > 0.001 {
		t.Errorf("life mean = %v, want 0.75", first.LifeMean)
	}
	if math.Abs(first.LifeStdDev-0.25) > 0.001 {
		t.Errorf("life stddev = %v, want 0.25", first.LifeStdDev)
	}
	if math.Abs(first.TickMeanUS-20) > 0.001 || math.Abs(first.TickMaxUS-30) > 0.001 {
		t.Errorf("tick mean/max = %v/%v, want 20/30", first.TickMeanUS, first.TickMaxUS)
	}

	second := rows[1]
	if second.WindowEnd != 3 || second.Ticks != 1 || second.AliveMax != 4 {
		t.Errorf("partial window = %+v", second)
	}
	if second.LifeStdDev != 0 {
		t.Errorf("identical lives stddev = %v, want 0", second.LifeStdDev)
	}
}

func TestRecorderEmptyWindowWritesNothing(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("telemetry.csv = %q, want empty", data)
	}
}

func TestNilRecorder(t *testing.T) {
	rec, err := NewRecorder("", 10)
	if err != nil || rec != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v; want nil, nil", rec, err)
	}
	if err := rec.Observe(glyphfall.FrameStats{Tick: 1}); err != nil {
		t.Error(err)
	}
	if err := rec.Flush(); err != nil {
		t.Error(err)
	}
	if err := rec.Close(); err != nil {
		t.Error(err)
	}
}

func TestRecorderWithOverlay(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir, 5)
	if err != nil {
		t.Fatal(err)
	}

	opts := glyphfall.DefaultOptions()
	opts.Seed = 1
	opts.OnFrame = func(f glyphfall.FrameStats) {
		if err := rec.Observe(f); err != nil {
			t.Errorf("Observe: %v", err)
		}
	}
	ov := glyphfall.NewOverlay(opts)
	hub := glyphfall.NewHub(nopSurface{}, 100, 100)
	if err := ov.Mount(t.Context(), hub); err != nil {
		t.Fatal(err)
	}
	hub.MovePointer(50, 50)
	for i := 0; i < 10; i++ {
		hub.Frame()
	}
	ov.Unmount()
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, dir)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Spawned != 1 || rows[0].AliveMax != 1 || rows[1].WindowEnd != 10 {
		t.Errorf("rows = %+v", rows)
	}
}

type nopSurface struct{}

func (nopSurface) Size() (int, int)                                        { return 100, 100 }
func (nopSurface) Resize(w, h int)                                         {}
func (nopSurface) Clear()                                                  {}
func (nopSurface) SetAlpha(a float64)                                      {}
func (nopSurface) DrawGlyph(g rune, x, y, size float64, c glyphfall.Color) {}
