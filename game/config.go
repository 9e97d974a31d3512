package game

import (
	"bytes"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"time"
)

// ConfigEnv names the environment variable consulted when no config path
// is given.
const ConfigEnv = "TERMCRAFT_CONFIG"

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Screen  ScreenConfig  `yaml:"screen"`
	Render  RenderConfig  `yaml:"render"`
	Player  PlayerConfig  `yaml:"player"`
	Loop    LoopConfig    `yaml:"loop"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"`
	// Generator is "flat" or "hills".
	Generator     string   `yaml:"generator"`
	GroundLayers  int      `yaml:"ground_layers"`
	ScatterBlocks int      `yaml:"scatter_blocks"`
	ExtraBlocks   [][3]int `yaml:"extra_blocks"`
	Seed          int64    `yaml:"seed"`
	HillAmplitude float64  `yaml:"hill_amplitude"`
	HillScale     float64  `yaml:"hill_scale"`
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// AutoSize uses the terminal size when there is a terminal.
	AutoSize bool `yaml:"auto_size"`
	// CellAspect is how much taller a terminal cell is than wide.
	CellAspect float64 `yaml:"cell_aspect"`
}

type RenderConfig struct {
	Mode           string  `yaml:"mode"`
	FOV            float64 `yaml:"fov"`
	BorderWidth    float64 `yaml:"border_width"`
	Workers        int     `yaml:"workers"`
	Texture        string  `yaml:"texture"`
	SelectionColor string  `yaml:"selection_color"`
	Crosshair      bool    `yaml:"crosshair"`
	HUD            bool    `yaml:"hud"`
	ShowTimers     bool    `yaml:"show_timers"`
}

type PlayerConfig struct {
	Spawn       [3]float64 `yaml:"spawn"`
	Yaw         float64    `yaml:"yaw"`
	Pitch       float64    `yaml:"pitch"`
	MoveSpeed   float64    `yaml:"move_speed"`
	TurnSpeed   float64    `yaml:"turn_speed"`
	Gravity     float64    `yaml:"gravity"`
	JumpImpulse float64    `yaml:"jump_impulse"`
	EyeHeight   float64    `yaml:"eye_height"`
	Height      float64    `yaml:"height"`
	Radius      float64    `yaml:"radius"`
	Margin      float64    `yaml:"margin"`
	GroundProbe float64    `yaml:"ground_probe"`
	PitchLimit  float64    `yaml:"pitch_limit"`
	Reach       float64    `yaml:"reach"`
	VoidDepth   float64    `yaml:"void_depth"`
}

type LoopConfig struct {
	// Scenario is "physics" or "classic".
	Scenario  string  `yaml:"scenario"`
	TargetFPS float64 `yaml:"target_fps"`
	MaxFrames uint64  `yaml:"max_frames"`
	ShowFPS   bool    `yaml:"show_fps"`
	Demo      bool    `yaml:"demo"`
}

type InputConfig struct {
	HoldWindow time.Duration       `yaml:"hold_window"`
	Bindings   map[string][]string `yaml:"bindings"`
}

type LogConfig struct {
	File       string   `yaml:"file"`
	Level      string   `yaml:"level"`
	Categories []string `yaml:"categories"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig reproduces the reference scene: a 20³ world with five
// ground layers, one loose block and a 90° view.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:         20,
			Height:        20,
			Depth:         20,
			Generator:     "flat",
			GroundLayers:  5,
			ExtraBlocks:   [][3]int{{5, 6, 8}},
			Seed:          1,
			HillAmplitude: 6,
			HillScale:     0.12,
		},
		Screen: ScreenConfig{
			Width:      400,
			Height:     100,
			AutoSize:   true,
			CellAspect: 2,
		},
		Render: RenderConfig{
			Mode:           "glyph",
			FOV:            90,
			BorderWidth:    0.1,
			Workers:        4,
			Texture:        "checker",
			SelectionColor: "green",
			Crosshair:      true,
			HUD:            true,
		},
		Player: PlayerConfig{
			Spawn:       [3]float64{5.5, 5, 5.5},
			MoveSpeed:   5,
			TurnSpeed:   2,
			Gravity:     20,
			JumpImpulse: 7,
			EyeHeight:   1.5,
			Height:      1.8,
			Radius:      0.3,
			Margin:      0.2,
			GroundProbe: 0.05,
			PitchLimit:  89,
			Reach:       6,
			VoidDepth:   10,
		},
		Loop: LoopConfig{
			Scenario:  "physics",
			TargetFPS: 30,
			ShowFPS:   true,
		},
		Input: InputConfig{
			HoldWindow: 250 * time.Millisecond,
			Bindings:   DefaultBindingNames(),
		},
		Log: LogConfig{
			File:  "termcraft.log",
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults. An empty path falls
// back to $TERMCRAFT_CONFIG and then to the defaults alone.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := cfg.Merge(data); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	util.LogIOInfo("[Config] Loaded " + path)
	return cfg, nil
}

// Merge decodes YAML over the current values. Keys missing from data keep
// their value.
func (c *Config) Merge(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (c Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.Depth <= 0 {
		return errors.Errorf("world: invalid size %dx%dx%d", w.Width, w.Height, w.Depth)
	}
	if w.Generator != "flat" && w.Generator != "hills" {
		return errors.Errorf("world: unknown generator %q", w.Generator)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return errors.Errorf("screen: invalid size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.CellAspect <= 0 {
		return errors.New("screen: cell_aspect must be positive")
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return errors.Errorf("render: fov %.1f out of range (0, 180)", c.Render.FOV)
	}
	if _, err := ParseRenderMode(c.Render.Mode); err != nil {
		return err
	}
	if _, ok := term.ColorByName(c.Render.SelectionColor); !ok {
		return errors.Errorf("render: unknown selection color %q", c.Render.SelectionColor)
	}
	if c.Loop.Scenario != "physics" && c.Loop.Scenario != "classic" {
		return errors.Errorf("loop: unknown scenario %q", c.Loop.Scenario)
	}
	p := c.Player
	if p.Height <= 0 || p.EyeHeight <= 0 || p.EyeHeight > p.Height {
		return errors.Errorf("player: eye height %.2f must be within height %.2f", p.EyeHeight, p.Height)
	}
	if p.Margin < 0 || p.GroundProbe <= 0 || p.Reach <= 0 {
		return errors.New("player: margin, ground_probe and reach must be positive")
	}
	if p.PitchLimit <= 0 || p.PitchLimit >= 90 {
		return errors.Errorf("player: pitch_limit %.1f out of range (0, 90)", p.PitchLimit)
	}
	if _, err := ParseBindings(c.Input.Bindings); err != nil {
		return err
	}
	if _, err := util.ParseLogLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log")
	}
	if _, err := util.ParseLogCategories(c.Log.Categories); err != nil {
		return errors.Wrap(err, "log")
	}
	return nil
}
