package game

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/engine/voxel"
	"math"
)

// SkinEpsilon keeps a landed player a hair above the floor so the next
// ground probe starts outside the block below.
const SkinEpsilon = 1e-3

// Physics moves a player through the grid. Every collision question is a
// ray cast.
type Physics struct {
	cfg   PlayerConfig
	grid  *voxel.Grid
	spawn util.Vector3

	OnRespawn func()
}

func NewPhysics(cfg PlayerConfig, grid *voxel.Grid) *Physics {
	return &Physics{
		cfg:   cfg,
		grid:  grid,
		spawn: util.Vector3{cfg.Spawn[0], cfg.Spawn[1], cfg.Spawn[2]},
	}
}

// Step runs one frame: look, walk, then vertical movement.
func (ph *Physics) Step(p *Player, intent Intent, deltaTime float64) {
	ph.Look(p, intent, deltaTime)
	ph.Walk(p, intent, deltaTime)
	if intent.Jump {
		ph.Jump(p)
	}
	ph.Vertical(p, deltaTime)
	if p.Position.Y() < -ph.cfg.VoidDepth {
		ph.Respawn(p)
	}
}

func (ph *Physics) Look(p *Player, intent Intent, deltaTime float64) {
	if intent.Turn == 0 && intent.Look == 0 {
		return
	}
	turn := ph.cfg.TurnSpeed * deltaTime
	p.View = p.View.Rotate(intent.Turn*turn, intent.Look*turn).ClampPitch(util.ToRadian(ph.cfg.PitchLimit))
}

// probeHeights are the body heights, measured from the feet, that
// horizontal movement is checked at.
func (ph *Physics) probeHeights(p *Player) []float64 {
	heights := []float64{0.5}
	if p.EyeHeight > 0.5 {
		heights = append(heights, p.EyeHeight)
	}
	return heights
}

// Walk moves the player horizontally. A blocked probe stops in front of the
// wall and slides along it, every probe sees the movement the previous one
// allowed.
func (ph *Physics) Walk(p *Player, intent Intent, deltaTime float64) {
	if !intent.Moving() {
		return
	}
	forward, right := p.View.Planar()
	direction := forward.Mul(intent.Forward).Add(right.Mul(intent.Strafe))
	displacement := util.Normalize(direction).Mul(ph.cfg.MoveSpeed * deltaTime)
	if displacement.Len() == 0 {
		return
	}
	// The body must not reach into the wall, so never stop closer than its radius.
	stop := math.Max(ph.cfg.Margin, p.Radius)
	for _, height := range ph.probeHeights(p) {
		origin := p.Position.Add(util.Up.Mul(height))
		result := util.Sweep(ph.grid, origin, displacement, stop)
		if result.Collided {
			displacement = result.Displacement(origin)
			util.LogPhysicsDebug(fmt.Sprintf("[Physics] Probe %.2f blocked by %s", height, result.Hit))
		}
	}
	displacement[1] = 0
	p.Position = p.Position.Add(displacement)
}

func (ph *Physics) Jump(p *Player) {
	if p.State != Grounded {
		return
	}
	p.VerticalVelocity = ph.cfg.JumpImpulse
	p.State = Airborne
	util.LogPhysicsDebug("[Physics] Jump")
}

// Vertical applies gravity while airborne and probes for ground while
// grounded.
func (ph *Physics) Vertical(p *Player, deltaTime float64) {
	if p.State == Grounded {
		if _, onGround := util.CastRay(util.Ray{Origin: p.Position, Direction: util.Down}, ph.cfg.GroundProbe, ph.grid); !onGround {
			p.State = Airborne
			p.VerticalVelocity = 0
			util.LogPhysicsDebug("[Physics] Lost ground at " + p.String())
		}
		return
	}

	p.VerticalVelocity -= ph.cfg.Gravity * deltaTime
	dy := p.VerticalVelocity * deltaTime
	if dy == 0 {
		return
	}
	origin, direction := p.Position, util.Down
	if dy > 0 {
		origin, direction = p.Head(), util.Up
	}
	hit, blocked := util.CastRay(util.Ray{Origin: origin, Direction: direction}, math.Abs(dy), ph.grid)
	if !blocked {
		p.Position[1] += dy
		return
	}
	p.VerticalVelocity = 0
	if dy < 0 {
		p.Position[1] = hit.Point.Y() + SkinEpsilon
		p.State = Grounded
		util.LogPhysicsDebug("[Physics] Landed at " + p.String())
		return
	}
	p.Position[1] = hit.Point.Y() - p.Height - SkinEpsilon
	util.LogPhysicsDebug("[Physics] Bumped head at " + hit.String())
}

func (ph *Physics) Respawn(p *Player) {
	util.LogPhysicsInfo("[Physics] Fell out of the world, respawning")
	p.Position = ph.spawn
	p.VerticalVelocity = 0
	p.State = Airborne
	if ph.OnRespawn != nil {
		ph.OnRespawn()
	}
}

// ClassicWalk is the collision free camera: it moves freely in the plane
// and snaps up and down whole blocks so the eye floats one block above the
// terrain.
func (ph *Physics) ClassicWalk(p *Player, intent Intent, deltaTime float64) {
	ph.Look(p, intent, deltaTime)
	if intent.Moving() {
		forward, right := p.View.Planar()
		direction := forward.Mul(intent.Forward).Add(right.Mul(intent.Strafe))
		p.Position = p.Position.Add(util.Normalize(direction).Mul(ph.cfg.MoveSpeed * deltaTime))
	}
	eye := p.Eye()
	for i := 0; i < ph.grid.Height(); i++ {
		cell := voxel.ToGridInt3(eye)
		if ph.grid.IsSolidBlockAt(cell.Add(voxel.Int3{Y: -1})) || ph.grid.IsSolidBlockAt(cell) {
			eye[1]++
			continue
		}
		break
	}
	cell := voxel.ToGridInt3(eye)
	below := cell.Add(voxel.Int3{Y: -2})
	if below.Y >= 0 && !ph.grid.IsSolidBlockAt(below) {
		eye[1]--
	}
	p.SetEye(eye)
	p.State = Grounded
	p.VerticalVelocity = 0
}
