package game

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/memmaker/termcraft/engine/voxel"
)

type PlayerState int

const (
	Grounded PlayerState = iota
	Airborne
)

func (s PlayerState) String() string {
	if s == Grounded {
		return "grounded"
	}
	return "airborne"
}

// Player is a vertical column standing on Position (the feet). Vertical
// velocity is in blocks per second.
type Player struct {
	Position         util.Vector3
	View             util.View
	VerticalVelocity float64
	State            PlayerState

	EyeHeight float64
	Height    float64
	Radius    float64
}

func NewPlayer(cfg PlayerConfig) *Player {
	return &Player{
		Position: util.Vector3{cfg.Spawn[0], cfg.Spawn[1], cfg.Spawn[2]},
		View: util.View{
			Yaw:   util.ToRadian(cfg.Yaw),
			Pitch: util.ToRadian(cfg.Pitch),
		},
		State:     Airborne,
		EyeHeight: cfg.EyeHeight,
		Height:    cfg.Height,
		Radius:    cfg.Radius,
	}
}

func (p *Player) Eye() util.Vector3 {
	return p.Position.Add(util.Up.Mul(p.EyeHeight))
}

func (p *Player) Head() util.Vector3 {
	return p.Position.Add(util.Up.Mul(p.Height))
}

func (p *Player) SetEye(eye util.Vector3) {
	p.Position = eye.Sub(util.Up.Mul(p.EyeHeight))
}

// Occupies reports whether the body overlaps the unit cube at cell.
func (p *Player) Occupies(cell voxel.Int3) bool {
	overlaps := func(minA, maxA, minB, maxB float64) bool {
		return minA < maxB && minB < maxA
	}
	x, y, z := p.Position.X(), p.Position.Y(), p.Position.Z()
	cx, cy, cz := float64(cell.X), float64(cell.Y), float64(cell.Z)
	return overlaps(x-p.Radius, x+p.Radius, cx, cx+1) &&
		overlaps(y, y+p.Height, cy, cy+1) &&
		overlaps(z-p.Radius, z+p.Radius, cz, cz+1)
}

func (p *Player) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f) %s %s", p.Position.X(), p.Position.Y(), p.Position.Z(), p.State, p.View)
}
