package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/faiface/mainthread"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/loop"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/game"
	"github.com/pkg/errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// options are the command line overrides. Zero values leave the config
// untouched.
type options struct {
	configPath string
	scenario   string
	mode       string
	texture    string
	logFile    string
	demo       bool
	frames     uint64
	width      int
	height     int
}

func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet("termcraft", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&opts.configPath, "config", "", "YAML config file (default $"+game.ConfigEnv+")")
	flags.StringVar(&opts.scenario, "scenario", "", "physics or classic")
	flags.StringVar(&opts.mode, "mode", "", "render mode: glyph, shaded or textured")
	flags.StringVar(&opts.texture, "texture", "", "checker, bricks, a color name or an image file")
	flags.StringVar(&opts.logFile, "log", "", "log file")
	flags.BoolVar(&opts.demo, "demo", false, "let the autopilot play")
	flags.Uint64Var(&opts.frames, "frames", 0, "stop after this many frames")
	flags.IntVar(&opts.width, "width", 0, "surface width in cells")
	flags.IntVar(&opts.height, "height", 0, "surface height in cells")
	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() > 0 {
		return opts, errors.Errorf("unexpected arguments %v", flags.Args())
	}
	return opts, nil
}

func (o options) apply(cfg *game.Config) {
	if o.scenario != "" {
		cfg.Loop.Scenario = o.scenario
	}
	if o.mode != "" {
		cfg.Render.Mode = o.mode
	}
	if o.texture != "" {
		cfg.Render.Texture = o.texture
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	if o.demo {
		cfg.Loop.Demo = true
	}
	if o.frames > 0 {
		cfg.Loop.MaxFrames = o.frames
	}
	if o.width > 0 {
		cfg.Screen.Width = o.width
		cfg.Screen.AutoSize = false
	}
	if o.height > 0 {
		cfg.Screen.Height = o.height
		cfg.Screen.AutoSize = false
	}
}

func loadConfig(opts options) (game.Config, error) {
	cfg, err := game.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}
	opts.apply(&cfg)
	return cfg, cfg.Validate()
}

// setupLogging opens the log file and applies level and categories. The
// returned closer is never nil.
func setupLogging(cfg game.LogConfig) (io.Writer, func() error, error) {
	level, err := util.ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	categories, err := util.ParseLogCategories(cfg.Categories)
	if err != nil {
		return nil, nil, err
	}
	util.GLOBAL_LOG_LEVEL = level
	util.GLOBAL_LOG_CATEGORIES = categories
	if cfg.File == "" {
		return io.Discard, func() error { return nil }, nil
	}
	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", cfg.File)
	}
	return file, file.Close, nil
}

// surfaceSize prefers the terminal size when auto sizing is on and there
// is a terminal to ask.
func surfaceSize(cfg game.ScreenConfig, terminal *term.Terminal) (int, int) {
	if !cfg.AutoSize || !terminal.IsRaw() {
		return cfg.Width, cfg.Height
	}
	width, height, err := terminal.Size()
	if err != nil {
		util.LogSystemWarning(fmt.Sprintf("[App] Could not read terminal size, using %dx%d: %v", cfg.Width, cfg.Height, err))
		return cfg.Width, cfg.Height
	}
	return width, height
}

func runGame(opts options) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logOutput, closeLog, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	util.SetLogOutput(logOutput, "")

	metrics := game.NewMetrics()
	if cfg.Metrics.Addr != "" {
		if _, err := metrics.Serve(cfg.Metrics.Addr); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if closeErr := metrics.Close(ctx); closeErr != nil {
				util.LogSystemError(closeErr.Error())
			}
		}()
	}

	var keyboard input.Keyboard
	var scripted *input.ScriptedKeyboard
	if cfg.Loop.Demo {
		scripted = input.NewScriptedKeyboard()
		keyboard = scripted
	}

	terminal, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer mainthread.Call(func() {
		if restoreErr := terminal.Restore(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	})

	if keyboard == nil {
		terminalKeyboard := input.NewTerminalKeyboard(terminal.Input(), cfg.Input.HoldWindow)
		defer terminalKeyboard.Close()
		keyboard = terminalKeyboard
	}

	session, err := game.NewSession(cfg, keyboard, metrics)
	if err != nil {
		return err
	}
	util.SetLogOutput(logOutput, session.ShortID())

	width, height := surfaceSize(cfg.Screen, terminal)
	surface, err := term.NewSurface(width, height)
	if err != nil {
		return err
	}

	renderer, err := game.NewRenderer(cfg.Render, cfg.Screen.CellAspect)
	if err != nil {
		return err
	}

	gameLoop := loop.New(surface, terminal.Output(), keyboard, loop.Options{
		TargetFPS:  cfg.Loop.TargetFPS,
		MaxFrames:  cfg.Loop.MaxFrames,
		ShowFPS:    cfg.Loop.ShowFPS,
		ShowTimers: cfg.Render.ShowTimers,
	})
	gameLoop.OnFrame = func(stats loop.FrameStats) {
		metrics.ObserveFrame(stats.DeltaTime)
	}

	scenario, err := game.NewScenario(cfg.Loop.Scenario, session, renderer, gameLoop.Quit)
	if err != nil {
		renderer.Close()
		return err
	}
	if scripted != nil {
		scenario = game.NewDemoScenario(scenario, game.NewAutopilot(session, scripted))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.LogSystemInfo(fmt.Sprintf("[App] Session %s: %s scenario, %s mode, %dx%d surface", session.ID, cfg.Loop.Scenario, renderer.Mode(), width, height))
	var runErr error
	mainthread.Call(func() {
		runErr = gameLoop.Run(ctx, scenario)
	})
	if runErr != nil {
		util.LogSystemError(runErr.Error())
		return errors.Wrap(runErr, "game loop")
	}
	if tk, ok := keyboard.(*input.TerminalKeyboard); ok && tk.Err() != nil {
		util.LogIOError(tk.Err().Error())
	}
	return nil
}
