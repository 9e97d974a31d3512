package loop

import (
	"context"
	"fmt"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/pkg/errors"
	"io"
	"sync/atomic"
	"time"
)

// Scenario is the game side of the loop. Init runs once before the first
// frame and Dispose once after the last, even when a frame fails.
type Scenario interface {
	Init() error
	Update(deltaTime float64)
	Render(surface *term.Surface)
	Dispose()
}

type Options struct {
	// TargetFPS caps the frame rate, 0 runs unthrottled.
	TargetFPS float64
	// MaxFrames stops the loop after that many frames, 0 runs until Quit.
	MaxFrames uint64
	ShowFPS   bool
	// ShowTimers adds the per section frame timings to the overlay.
	ShowTimers bool
}

type FrameStats struct {
	Frame     uint64
	DeltaTime float64
	FPS       float64
}

const fpsWindow = 10

// Loop drives a Scenario: delta time, input polling, update, render and
// presenting the surface, once per frame.
type Loop struct {
	surface  *term.Surface
	output   io.Writer
	keyboard input.Keyboard
	options  Options
	timer    *util.Timer

	OnFrame func(stats FrameStats)

	quit  atomic.Bool
	now   func() time.Time
	sleep func(time.Duration)

	ticks         uint64
	fps           float64
	fpsWindowTime float64
}

func New(surface *term.Surface, output io.Writer, keyboard input.Keyboard, options Options) *Loop {
	return &Loop{
		surface:  surface,
		output:   output,
		keyboard: keyboard,
		options:  options,
		timer:    util.NewTimer(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Quit ends the loop after the current frame.
func (l *Loop) Quit() {
	l.quit.Store(true)
}

func (l *Loop) Frame() uint64 {
	return l.ticks
}

func (l *Loop) FPS() float64 {
	return l.fps
}

func (l *Loop) Timer() *util.Timer {
	return l.timer
}

func (l *Loop) Keyboard() input.Keyboard {
	return l.keyboard
}

func (l *Loop) Run(ctx context.Context, scenario Scenario) error {
	if err := scenario.Init(); err != nil {
		return errors.Wrap(err, "init scenario")
	}
	defer scenario.Dispose()

	util.LogSystemInfo(fmt.Sprintf("[Loop] Starting with surface %dx%d", l.surface.Width(), l.surface.Height()))
	previousTime := l.now()
	for !l.quit.Load() {
		if ctx.Err() != nil {
			util.LogSystemInfo("[Loop] Context done, stopping")
			break
		}
		if l.options.MaxFrames > 0 && l.ticks >= l.options.MaxFrames {
			break
		}
		frameStart := l.now()
		elapsed := frameStart.Sub(previousTime).Seconds()
		previousTime = frameStart

		l.keyboard.Poll()

		stopUpdate := l.timer.Start("update")
		scenario.Update(elapsed)
		stopUpdate()

		stopRender := l.timer.Start("render")
		l.surface.Clear()
		l.surface.SaveContext()
		scenario.Render(l.surface)
		l.surface.RestoreContext()
		stopRender()

		l.updateFPS(elapsed)
		if l.options.ShowFPS {
			l.drawOverlay(elapsed)
		}

		stopPresent := l.timer.Start("present")
		err := l.surface.Present(l.output)
		stopPresent()
		if err != nil {
			return err
		}

		if l.OnFrame != nil {
			l.OnFrame(FrameStats{Frame: l.ticks, DeltaTime: elapsed, FPS: l.fps})
		}
		l.ticks++

		if l.options.TargetFPS > 0 {
			budget := time.Duration(float64(time.Second) / l.options.TargetFPS)
			if remaining := budget - l.now().Sub(frameStart); remaining > 0 {
				l.sleep(remaining)
			}
		}
	}
	util.LogSystemInfo(fmt.Sprintf("[Loop] Stopped after %d frames", l.ticks))
	return nil
}

// updateFPS averages over fpsWindow frames.
func (l *Loop) updateFPS(elapsed float64) {
	l.fpsWindowTime += elapsed
	if (l.ticks+1)%fpsWindow != 0 {
		return
	}
	if l.fpsWindowTime > 0 {
		l.fps = fpsWindow / l.fpsWindowTime
	}
	l.fpsWindowTime = 0
}

func (l *Loop) drawOverlay(elapsed float64) {
	l.surface.SaveContext()
	l.surface.ResetContext()
	l.surface.SetForeground(term.White)
	l.surface.DrawText(0, 0, "frame: %d, delta time: %.4f", l.ticks, elapsed)
	l.surface.DrawText(0, 1, "fps: %.1f", l.fps)
	if l.options.ShowTimers {
		for i, line := range l.timer.Lines() {
			l.surface.DrawText(0, 2+i, "%s", line)
		}
	}
	l.surface.RestoreContext()
}
