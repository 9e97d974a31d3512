package loop

import (
	"bytes"
	"context"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

type recordingScenario struct {
	calls    []string
	deltas   []float64
	initErr  error
	onUpdate func(frame int)
	keyboard input.Keyboard
	pressed  []bool
}

func (r *recordingScenario) Init() error {
	r.calls = append(r.calls, "init")
	return r.initErr
}

func (r *recordingScenario) Update(deltaTime float64) {
	r.calls = append(r.calls, "update")
	r.deltas = append(r.deltas, deltaTime)
	if r.keyboard != nil {
		r.pressed = append(r.pressed, r.keyboard.WasPressed('q'))
	}
	if r.onUpdate != nil {
		r.onUpdate(len(r.deltas))
	}
}

func (r *recordingScenario) Render(surface *term.Surface) {
	r.calls = append(r.calls, "render")
	surface.SetGlyph('x')
	surface.DrawPoint(surface.Width()-1, surface.Height()-1)
}

func (r *recordingScenario) Dispose() {
	r.calls = append(r.calls, "dispose")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newTestLoop(t *testing.T, out *bytes.Buffer, kb input.Keyboard, options Options) *Loop {
	surface, err := term.NewSurface(30, 4)
	require.NoError(t, err)
	l := New(surface, out, kb, options)
	clock := time.Unix(0, 0)
	l.now = func() time.Time {
		clock = clock.Add(20 * time.Millisecond)
		return clock
	}
	l.sleep = func(time.Duration) {}
	return l
}

func TestLoopRunsFramesInOrder(t *testing.T) {
	var out bytes.Buffer
	l := newTestLoop(t, &out, input.NewScriptedKeyboard(), Options{MaxFrames: 3})
	scenario := &recordingScenario{}

	require.NoError(t, l.Run(context.Background(), scenario))
	assert.Equal(t, []string{"init", "update", "render", "update", "render", "update", "render", "dispose"}, scenario.calls)
	assert.Equal(t, uint64(3), l.Frame())
	for _, delta := range scenario.deltas {
		assert.Greater(t, delta, 0.0)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "\x1b[H"))
	assert.NotNil(t, l.Timer().GetState("update"))
}

func TestLoopQuitAndFPS(t *testing.T) {
	var out bytes.Buffer
	l := newTestLoop(t, &out, input.NewScriptedKeyboard(), Options{ShowFPS: true})
	scenario := &recordingScenario{}
	scenario.onUpdate = func(frame int) {
		if frame == 12 {
			l.Quit()
		}
	}
	var stats []FrameStats
	l.OnFrame = func(s FrameStats) { stats = append(stats, s) }

	require.NoError(t, l.Run(context.Background(), scenario))
	assert.Equal(t, uint64(12), l.Frame())
	assert.Len(t, stats, 12)
	// one clock read of 20ms per frame
	assert.InDelta(t, 50.0, l.FPS(), 0.5)
	assert.Contains(t, out.String(), "fps: 50.0")
	assert.Contains(t, out.String(), "frame: 11")
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	var out bytes.Buffer
	l := newTestLoop(t, &out, input.NewScriptedKeyboard(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	scenario := &recordingScenario{onUpdate: func(frame int) {
		if frame == 2 {
			cancel()
		}
	}}
	require.NoError(t, l.Run(ctx, scenario))
	assert.Equal(t, uint64(2), l.Frame())
	assert.Equal(t, "dispose", scenario.calls[len(scenario.calls)-1])
}

func TestLoopPollsInputBeforeUpdate(t *testing.T) {
	var out bytes.Buffer
	kb := input.NewScriptedKeyboard()
	l := newTestLoop(t, &out, kb, Options{MaxFrames: 2})
	kb.Tap('q')
	scenario := &recordingScenario{keyboard: kb}
	require.NoError(t, l.Run(context.Background(), scenario))
	assert.Equal(t, []bool{true, false}, scenario.pressed)
}

func TestLoopInitError(t *testing.T) {
	var out bytes.Buffer
	l := newTestLoop(t, &out, input.NewScriptedKeyboard(), Options{MaxFrames: 1})
	scenario := &recordingScenario{initErr: errors.New("no world")}
	err := l.Run(context.Background(), scenario)
	assert.Error(t, err)
	assert.Equal(t, []string{"init"}, scenario.calls)
}

func TestLoopPresentErrorDisposes(t *testing.T) {
	surface, err := term.NewSurface(4, 2)
	require.NoError(t, err)
	l := New(surface, failingWriter{}, input.NewScriptedKeyboard(), Options{MaxFrames: 5})
	scenario := &recordingScenario{}
	err = l.Run(context.Background(), scenario)
	assert.Error(t, err)
	assert.Equal(t, []string{"init", "update", "render", "dispose"}, scenario.calls)
}
