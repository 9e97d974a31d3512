package game

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/texture"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/engine/voxel"
	"github.com/pkg/errors"
)

// Session holds everything one running game needs. Update and render
// receive it explicitly.
type Session struct {
	ID        uuid.UUID
	Config    Config
	Grid      *voxel.Grid
	Player    *Player
	Physics   *Physics
	Selection Selection
	Keyboard  input.Keyboard
	Bindings  Bindings
	Texture   texture.Sampler
	Metrics   *Metrics
}

func NewSession(cfg Config, keyboard input.Keyboard, metrics *Metrics) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	grid, err := BuildWorld(cfg.World)
	if err != nil {
		return nil, err
	}
	bindings, err := ParseBindings(cfg.Input.Bindings)
	if err != nil {
		return nil, err
	}
	sampler, err := LoadSampler(cfg.Render.Texture)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	s := &Session{
		ID:       uuid.New(),
		Config:   cfg,
		Grid:     grid,
		Player:   NewPlayer(cfg.Player),
		Physics:  NewPhysics(cfg.Player, grid),
		Keyboard: keyboard,
		Bindings: bindings,
		Texture:  sampler,
		Metrics:  metrics,
	}
	s.Physics.OnRespawn = s.Metrics.Respawns.Inc
	util.LogVoxelInfo(fmt.Sprintf("[Session] %s created %s", s.ID, grid))
	return s, nil
}

// BuildWorld creates the grid and runs the configured generators.
func BuildWorld(cfg WorldConfig) (*voxel.Grid, error) {
	grid, err := voxel.NewGrid(cfg.Width, cfg.Height, cfg.Depth)
	if err != nil {
		return nil, errors.Wrap(err, "create world")
	}
	var generators []voxel.Generator
	switch cfg.Generator {
	case "hills":
		generators = append(generators, voxel.HillsGenerator{
			BaseHeight: cfg.GroundLayers - 1,
			Amplitude:  cfg.HillAmplitude,
			Scale:      cfg.HillScale,
			Seed:       cfg.Seed,
		})
	default:
		generators = append(generators, voxel.FlatGenerator{GroundLayers: cfg.GroundLayers})
	}
	extra := make([]voxel.Int3, 0, len(cfg.ExtraBlocks))
	for _, b := range cfg.ExtraBlocks {
		extra = append(extra, voxel.Int3{X: b[0], Y: b[1], Z: b[2]})
	}
	generators = append(generators, voxel.ScatterGenerator{Count: cfg.ScatterBlocks, Seed: cfg.Seed, Extra: extra})
	voxel.Populate(grid, generators...)
	return grid, nil
}

// LoadSampler resolves a texture setting: a procedural pattern, a color
// name or an image file.
func LoadSampler(name string) (texture.Sampler, error) {
	if name == "" {
		return texture.NewChecker(), nil
	}
	if sampler, ok := texture.ByName(name); ok {
		return sampler, nil
	}
	tex, err := texture.LoadImageTexture(name, texture.DefaultTileSize)
	if err != nil {
		return nil, err
	}
	util.LogIOInfo(fmt.Sprintf("[Session] Loaded texture %s (%dpx tile)", name, tex.Size()))
	return tex, nil
}

// ShortID is the session id prefix used to tag log lines.
func (s *Session) ShortID() string {
	return s.ID.String()[:8]
}

func (s *Session) Intent() Intent {
	return ReadIntent(s.Keyboard, s.Bindings)
}
