package game

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/loop"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/pkg/errors"
)

// scenario is the part both walkers share: selection, block edits,
// rendering and teardown.
type scenario struct {
	name     string
	session  *Session
	renderer *Renderer
	quit     func()
}

func (s *scenario) Init() error {
	if s.session.Grid.Count() == 0 {
		util.LogVoxelInfo("[Scenario] Starting in an empty world")
	}
	s.session.UpdateSelection()
	util.LogSystemInfo(fmt.Sprintf("[Scenario] %s started, player at %s", s.name, s.session.Player))
	return nil
}

func (s *scenario) Render(surface *term.Surface) {
	s.renderer.Render(surface, s.session)
}

func (s *scenario) Dispose() {
	s.renderer.Close()
	util.LogSystemInfo(fmt.Sprintf("[Scenario] %s stopped, player at %s", s.name, s.session.Player))
}

// handleQuit reports whether the frame should stop here.
func (s *scenario) handleQuit(intent Intent) bool {
	if !intent.Quit {
		return false
	}
	util.LogInputDebug("[Scenario] Quit requested")
	if s.quit != nil {
		s.quit()
	}
	return true
}

func (s *scenario) edit(place, remove bool) {
	if place {
		s.session.CreateBlock()
	}
	if remove {
		s.session.DeleteBlock()
	}
}

// PhysicsScenario walks with gravity, jumping and wall collision.
type PhysicsScenario struct {
	scenario
}

func NewPhysicsScenario(session *Session, renderer *Renderer, quit func()) *PhysicsScenario {
	return &PhysicsScenario{scenario{name: "physics", session: session, renderer: renderer, quit: quit}}
}

func (p *PhysicsScenario) Update(deltaTime float64) {
	s := p.session
	intent := s.Intent()
	if p.handleQuit(intent) {
		return
	}
	s.Physics.Step(s.Player, intent, deltaTime)
	s.UpdateSelection()
	p.edit(intent.Place, intent.Remove)
	s.Metrics.ObserveState(s.Player.State)
}

// ClassicScenario is the collision free camera that snaps to the terrain a
// block at a time. Jump places a block here.
type ClassicScenario struct {
	scenario
}

func NewClassicScenario(session *Session, renderer *Renderer, quit func()) *ClassicScenario {
	return &ClassicScenario{scenario{name: "classic", session: session, renderer: renderer, quit: quit}}
}

func (c *ClassicScenario) Update(deltaTime float64) {
	s := c.session
	intent := s.Intent()
	if c.handleQuit(intent) {
		return
	}
	s.Physics.ClassicWalk(s.Player, intent, deltaTime)
	s.UpdateSelection()
	c.edit(intent.Place || s.Bindings.Pressed(s.Keyboard, ActionJump), intent.Remove)
}

// NewScenario picks the walker named by the loop config.
func NewScenario(name string, session *Session, renderer *Renderer, quit func()) (loop.Scenario, error) {
	switch name {
	case "physics", "":
		return NewPhysicsScenario(session, renderer, quit), nil
	case "classic":
		return NewClassicScenario(session, renderer, quit), nil
	}
	return nil, errors.Errorf("unknown scenario %q", name)
}
