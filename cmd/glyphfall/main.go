// Command glyphfall draws a falling katakana trail behind the mouse pointer,
// either on a transparent click-through window or inside the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/glyphfall"
	"github.com/phanxgames/glyphfall/config"
	"github.com/phanxgames/glyphfall/telemetry"
)

// reducedMotionEnv lets the desktop session pass its motion preference.
const reducedMotionEnv = "GLYPHFALL_REDUCED_MOTION"

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", "ebiten", "Renderer: ebiten (overlay window) or terminal")
	reducedMotion := flag.Bool("reduced-motion", false, "Prefer reduced motion (also $"+reducedMotionEnv+")")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = random)")
	scriptPath := flag.String("script", "", "JSON test script to replay; exits when done")
	autopilot := flag.Bool("autopilot", false, "Drive a synthetic pointer around the screen")
	statsDir := flag.String("stats-dir", "", "Directory for telemetry.csv (empty = disabled)")
	fontPath := flag.String("font", "", "TTF/OTF font for the window backend (overrides config)")
	windowed := flag.Bool("windowed", false, "Open a regular window instead of the overlay")
	showFPS := flag.Bool("show-fps", false, "Show FPS and particle count")
	debug := flag.Bool("debug", false, "Log debug records and frame stats")
	logJSON := flag.Bool("log-json", false, "Log JSON instead of text")
	logFile := flag.String("log-file", "", "Write logs to this file (terminal backend discards logs otherwise)")
	writeConfig := flag.String("write-config", "", "Write the effective config to this path and exit")

	flag.Parse()

	logger, closeLog, err := newLogger(*backend, *logFile, *logJSON, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "glyphfall: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}
	if *windowed {
		cfg.Window.Windowed = true
	}
	if *showFPS {
		cfg.Window.ShowFPS = true
	}

	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		slog.Info("config written", "path", *writeConfig)
		return
	}

	opts, err := optionsFromConfig(cfg)
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	opts.Seed = *seed
	opts.Debug = *debug
	opts.Logger = logger
	opts.ReducedMotion = *reducedMotion || envBool(reducedMotionEnv)

	var script *glyphfall.TestRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			slog.Error("failed to read script", "error", err)
			os.Exit(1)
		}
		if script, err = glyphfall.LoadTestScript(data); err != nil {
			slog.Error("failed to load script", "error", err)
			os.Exit(1)
		}
	}

	rec, err := telemetry.NewRecorder(*statsDir, cfg.Telemetry.WindowTicks)
	if err != nil {
		slog.Error("failed to open telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := rec.Close(); err != nil {
			slog.Error("failed to close telemetry", "error", err)
		}
	}()
	if rec != nil {
		var reported bool
		opts.OnFrame = func(f glyphfall.FrameStats) {
			if err := rec.Observe(f); err != nil && !reported {
				reported = true
				slog.Error("telemetry write failed", "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *backend {
	case "ebiten":
		err = runWindow(ctx, cfg, opts, script, *autopilot, *seed)
	case "terminal":
		err = runTerminal(ctx, cfg, opts, script, *autopilot, *seed)
	default:
		err = fmt.Errorf("unknown backend %q (want ebiten or terminal)", *backend)
	}
	if err != nil {
		slog.Error("glyphfall stopped", "error", err)
		os.Exit(1)
	}
}

func runWindow(ctx context.Context, cfg *config.Config, opts glyphfall.Options, script *glyphfall.TestRunner, pilot bool, seed uint64) error {
	var font *glyphfall.GlyphFont
	if cfg.Font.Path != "" {
		data, err := os.ReadFile(cfg.Font.Path)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
		if font, err = glyphfall.LoadGlyphFont(data); err != nil {
			return err
		}
	} else if cfg.Particles.Glyphs == "" && cfg.Particles.Alphabet == "katakana" {
		slog.Warn("default font has no kana, falling back to greek; set font.path to a CJK font for katakana")
		opts.Alphabet = glyphfall.AlphabetGreek
	}

	ov := glyphfall.NewOverlay(opts)
	rc := glyphfall.RunConfig{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Windowed:      cfg.Window.Windowed,
		ShowFPS:       cfg.Window.ShowFPS,
		Font:          font,
		ScreenshotDir: cfg.ScreenshotDir,
		Script:        script,
		Logger:        opts.Logger,
	}
	if pilot {
		rc.Autopilot = glyphfall.NewAutopilot(seed, glyphfall.Vec2{})
	}
	return glyphfall.Run(ctx, ov, rc)
}

func runTerminal(ctx context.Context, cfg *config.Config, opts glyphfall.Options, script *glyphfall.TestRunner, pilot bool, seed uint64) error {
	bg, err := glyphfall.ParseHexColor(cfg.Terminal.Background)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	ov := glyphfall.NewOverlay(opts)
	tc := glyphfall.TerminalConfig{
		CellWidth:     cfg.Terminal.CellWidth,
		CellHeight:    cfg.Terminal.CellHeight,
		FPS:           cfg.Terminal.FPS,
		Background:    bg,
		ScreenshotDir: cfg.ScreenshotDir,
		Script:        script,
		Logger:        opts.Logger,
	}
	if pilot {
		tc.Autopilot = glyphfall.NewAutopilot(seed, glyphfall.Vec2{})
	}
	return glyphfall.RunTerminal(ctx, ov, screen, tc)
}

// optionsFromConfig maps the YAML config onto overlay options.
func optionsFromConfig(cfg *config.Config) (glyphfall.Options, error) {
	opts := glyphfall.DefaultOptions()

	if cfg.Particles.Glyphs != "" {
		opts.Alphabet = glyphfall.Alphabet([]rune(cfg.Particles.Glyphs))
	} else {
		a, err := glyphfall.LookupAlphabet(cfg.Particles.Alphabet)
		if err != nil {
			return opts, err
		}
		opts.Alphabet = a
	}

	c, err := glyphfall.ParseHexColor(cfg.Particles.Color)
	if err != nil {
		return opts, err
	}
	opts.Color = c

	opts.Size = glyphfall.Range{Min: cfg.Particles.Size.Min, Max: cfg.Particles.Size.Max}
	opts.Speed = glyphfall.Range{Min: cfg.Particles.Speed.Min, Max: cfg.Particles.Speed.Max}
	opts.Decay = glyphfall.Range{Min: cfg.Particles.Decay.Min, Max: cfg.Particles.Decay.Max}
	opts.GlitchChance = cfg.Particles.GlitchChance
	opts.SpawnThreshold = cfg.Trail.SpawnThreshold
	opts.RespectReducedMotion = cfg.Motion.RespectReducedMotion
	return opts, nil
}

// newLogger builds the process logger. The terminal backend owns the screen,
// so its logs go to -log-file or nowhere.
func newLogger(backend, path string, asJSON, debug bool) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case backend == "terminal":
		w = io.Discard
	}

	hopts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		hopts.Level = slog.LevelDebug
	}
	var h slog.Handler = slog.NewTextHandler(w, hopts)
	if asJSON {
		h = slog.NewJSONHandler(w, hopts)
	}
	return slog.New(h), closeFn, nil
}

// envBool reports whether the named variable holds a true boolean.
func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
