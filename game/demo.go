package game

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/input"
	"github.com/memmaker/termcraft/engine/loop"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/solarlune/gocoro"
)

// maxLandingFrames bounds the wait for the player to touch ground.
const maxLandingFrames = 120

// Autopilot plays the game by pressing keys on a scripted keyboard, one
// script step per frame.
type Autopilot struct {
	session   *Session
	keyboard  *input.ScriptedKeyboard
	bindings  Bindings
	coroutine gocoro.Coroutine
}

func NewAutopilot(session *Session, keyboard *input.ScriptedKeyboard) *Autopilot {
	return &Autopilot{
		session:   session,
		keyboard:  keyboard,
		bindings:  session.Bindings,
		coroutine: gocoro.NewCoroutine(),
	}
}

func (a *Autopilot) Start() error {
	return a.coroutine.Run(a.script)
}

func (a *Autopilot) Running() bool {
	return a.coroutine.Running()
}

// Update advances the script by one frame.
func (a *Autopilot) Update() {
	if a.coroutine.Running() {
		a.coroutine.Update()
	}
}

// Stop abandons the script. It returns at its next yield.
func (a *Autopilot) Stop() {
	if a.coroutine.Running() {
		a.coroutine.Stop()
	}
}

func (a *Autopilot) script(exe *gocoro.Execution) {
	util.LogInputInfo("[Autopilot] Waiting for the player to land")
	waited := 0
	err := exe.YieldFunc(func() bool {
		waited++
		return a.session.Player.State == Grounded || waited > maxLandingFrames
	})
	steps := []func() error{
		func() error { return a.hold(exe, ActionForward, 20) },
		func() error { return a.hold(exe, ActionTurnLeft, 10) },
		func() error { return a.tap(exe, ActionJump) },
		func() error { return a.hold(exe, ActionForward, 10) },
		func() error { return a.hold(exe, ActionLookDown, 12) },
		func() error { return a.tap(exe, ActionPlace) },
		func() error { return a.hold(exe, ActionTurnRight, 15) },
		func() error { return a.tap(exe, ActionRemove) },
		func() error { return a.hold(exe, ActionBack, 10) },
	}
	for _, step := range steps {
		if err != nil {
			break
		}
		err = step()
	}
	if err != nil {
		util.LogInputInfo(fmt.Sprintf("[Autopilot] Stopped: %v", err))
		return
	}

	util.LogInputInfo(fmt.Sprintf("[Autopilot] Done at %s", a.session.Player))
	// Nothing may follow: the loop quits at its next poll.
	a.keyboard.Tap(a.bindings.First(ActionQuit))
}

// hold keeps the action's key down for the given number of frames.
func (a *Autopilot) hold(exe *gocoro.Execution, action Action, frames int) error {
	key := a.bindings.First(action)
	a.keyboard.Press(key)
	err := exe.YieldTicks(frames)
	a.keyboard.Release(key)
	if err != nil {
		return err
	}
	return exe.YieldTicks(1)
}

func (a *Autopilot) tap(exe *gocoro.Execution, action Action) error {
	a.keyboard.Tap(a.bindings.First(action))
	return exe.YieldTicks(2)
}

// DemoScenario runs a scenario with the autopilot at the keyboard. Its keys
// reach the game at the next poll.
type DemoScenario struct {
	loop.Scenario
	autopilot *Autopilot
}

func NewDemoScenario(inner loop.Scenario, autopilot *Autopilot) *DemoScenario {
	return &DemoScenario{Scenario: inner, autopilot: autopilot}
}

func (d *DemoScenario) Init() error {
	if err := d.Scenario.Init(); err != nil {
		return err
	}
	return d.autopilot.Start()
}

func (d *DemoScenario) Update(deltaTime float64) {
	d.Scenario.Update(deltaTime)
	d.autopilot.Update()
}

func (d *DemoScenario) Dispose() {
	d.autopilot.Stop()
	d.Scenario.Dispose()
}

func (d *DemoScenario) Render(surface *term.Surface) {
	d.Scenario.Render(surface)
	if d.autopilot.Running() && surface.Height() > 2 {
		surface.SaveContext()
		surface.ResetContext()
		surface.SetForeground(term.Yellow)
		surface.DrawText(0, 2, "demo")
		surface.RestoreContext()
	}
}
