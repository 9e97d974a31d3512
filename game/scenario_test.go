package game

import (
	"bytes"
	"context"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/loop"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type headless struct {
	session  *Session
	keyboard *input.ScriptedKeyboard
	loop     *loop.Loop
	output   *bytes.Buffer
	frames   int
}

func newHeadless(t *testing.T, maxFrames uint64, change func(cfg *Config)) *headless {
	s, kb := newTestSession(t, change)
	surface, err := term.NewSurface(48, 16)
	require.NoError(t, err)
	h := &headless{session: s, keyboard: kb, output: &bytes.Buffer{}}
	h.loop = loop.New(surface, h.output, kb, loop.Options{MaxFrames: maxFrames, ShowFPS: true})
	h.loop.OnFrame = func(stats loop.FrameStats) {
		h.frames++
		s.Metrics.ObserveFrame(stats.DeltaTime)
	}
	return h
}

func (h *headless) scenario(t *testing.T) loop.Scenario {
	r, err := NewRenderer(h.session.Config.Render, h.session.Config.Screen.CellAspect)
	require.NoError(t, err)
	sc, err := NewScenario(h.session.Config.Loop.Scenario, h.session, r, h.loop.Quit)
	require.NoError(t, err)
	return sc
}

func TestNewScenario(t *testing.T) {
	h := newHeadless(t, 1, nil)
	r := newTestRenderer(t, h.session.Config.Render)

	sc, err := NewScenario("physics", h.session, r, nil)
	require.NoError(t, err)
	assert.IsType(t, &PhysicsScenario{}, sc)

	sc, err = NewScenario("classic", h.session, r, nil)
	require.NoError(t, err)
	assert.IsType(t, &ClassicScenario{}, sc)

	_, err = NewScenario("flying", h.session, r, nil)
	assert.Error(t, err)
}

func TestPhysicsScenarioRunsFrames(t *testing.T) {
	h := newHeadless(t, 5, nil)
	require.NoError(t, h.loop.Run(context.Background(), h.scenario(t)))

	assert.Equal(t, uint64(5), h.loop.Frame())
	assert.Equal(t, 5, h.frames)
	assert.Contains(t, h.output.String(), "frame: 4")
	assert.Greater(t, testutil.ToFloat64(h.session.Metrics.RaysCast), float64(5*48*16))
}

func TestQuitKeyStopsTheLoop(t *testing.T) {
	h := newHeadless(t, 100, nil)
	h.keyboard.Tap(h.session.Bindings.First(ActionQuit))
	require.NoError(t, h.loop.Run(context.Background(), h.scenario(t)))
	assert.Equal(t, uint64(1), h.loop.Frame())
}

func TestPlaceKeyCreatesBlock(t *testing.T) {
	h := newHeadless(t, 2, nil)
	h.keyboard.Tap(h.session.Bindings.First(ActionPlace))
	require.NoError(t, h.loop.Run(context.Background(), h.scenario(t)))
	assert.True(t, h.session.Grid.Has(5, 6, 7))
}

func TestClassicScenarioJumpPlacesBlock(t *testing.T) {
	h := newHeadless(t, 2, func(cfg *Config) {
		cfg.Loop.Scenario = "classic"
	})
	h.keyboard.Tap(h.session.Bindings.First(ActionJump))
	require.NoError(t, h.loop.Run(context.Background(), h.scenario(t)))

	assert.True(t, h.session.Grid.Has(5, 6, 7))
	assert.InDelta(t, 6.5, h.session.Player.Eye().Y(), 1e-9)
}

func TestDemoRunsToCompletion(t *testing.T) {
	h := newHeadless(t, 2000, nil)
	autopilot := NewAutopilot(h.session, h.keyboard)
	demo := NewDemoScenario(h.scenario(t), autopilot)

	require.NoError(t, h.loop.Run(context.Background(), demo))

	assert.Less(t, h.loop.Frame(), uint64(2000))
	assert.False(t, autopilot.Running())
	assert.NotZero(t, h.session.Player.View.Yaw)
}

func TestDemoDisposeStopsAutopilot(t *testing.T) {
	h := newHeadless(t, 30, nil)
	autopilot := NewAutopilot(h.session, h.keyboard)
	demo := NewDemoScenario(h.scenario(t), autopilot)

	require.NoError(t, h.loop.Run(context.Background(), demo))

	assert.Equal(t, uint64(30), h.loop.Frame())
	assert.False(t, autopilot.Running())
	autopilot.Update()
	autopilot.Stop()
}
