package game

import (
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/voxel"
	"github.com/stretchr/testify/require"
	"testing"
)

// newTestSession builds a session on the default config with the given
// changes, driven by a scripted keyboard.
func newTestSession(t testing.TB, change func(cfg *Config)) (*Session, *input.ScriptedKeyboard) {
	cfg := DefaultConfig()
	cfg.Render.Workers = 1
	if change != nil {
		change(&cfg)
	}
	kb := input.NewScriptedKeyboard()
	s, err := NewSession(cfg, kb, nil)
	require.NoError(t, err)
	return s, kb
}

// newTestPhysics returns physics on an empty world of the given size with
// the default player settings.
func newTestPhysics(t testing.TB, w, h, d int, blocks ...voxel.Int3) (*Physics, *voxel.Grid) {
	grid, err := voxel.NewGrid(w, h, d)
	require.NoError(t, err)
	for _, b := range blocks {
		grid.Create(b.X, b.Y, b.Z)
	}
	return NewPhysics(DefaultConfig().Player, grid), grid
}

func TestNewSessionBuildsReferenceWorld(t *testing.T) {
	s, _ := newTestSession(t, nil)
	require.Equal(t, 20*20*5+1, s.Grid.Count())
	require.True(t, s.Grid.Has(5, 6, 8))
	require.False(t, s.Grid.Has(5, 5, 5))
	require.Equal(t, Airborne, s.Player.State)
	require.Len(t, s.ShortID(), 8)
	require.NotNil(t, s.Texture)
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.World.Width = 0
	_, err := NewSession(cfg, input.NewScriptedKeyboard(), nil)
	require.Error(t, err)
}

func TestBuildWorldHills(t *testing.T) {
	cfg := DefaultConfig().World
	cfg.Generator = "hills"
	cfg.ExtraBlocks = nil
	grid, err := BuildWorld(cfg)
	require.NoError(t, err)
	for x := 0; x < grid.Width(); x++ {
		for z := 0; z < grid.Depth(); z++ {
			top := grid.HighestSolid(x, z)
			require.GreaterOrEqual(t, top, 0)
			require.Less(t, top, grid.Height())
		}
	}

	again, err := BuildWorld(cfg)
	require.NoError(t, err)
	require.Equal(t, grid.String(), again.String())
}

func TestLoadSampler(t *testing.T) {
	for _, name := range []string{"checker", "bricks", "steelblue"} {
		sampler, err := LoadSampler(name)
		require.NoError(t, err, name)
		require.NotNil(t, sampler)
	}
	_, err := LoadSampler("does/not/exist.png")
	require.Error(t, err)
}
