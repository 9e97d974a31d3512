package util

import (
	"fmt"
	"math"
)

// DefaultPitchLimit keeps the view away from straight up and down, where
// yaw stops being meaningful.
var DefaultPitchLimit = ToRadian(89)

// View is a first person orientation. Yaw and Pitch are in radians.
// Yaw 0 looks along +z, pitch 0 is level.
type View struct {
	Yaw   float64
	Pitch float64
}

// ToDirection maps yaw and pitch to a unit direction.
func ToDirection(yaw, pitch float64) Vector3 {
	return Vector3{
		math.Cos(yaw+math.Pi/2) * math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw+math.Pi/2) * math.Cos(pitch),
	}
}

func (v View) Direction() Vector3 {
	return ToDirection(v.Yaw, v.Pitch)
}

// Basis returns forward, right and up for the current orientation. Right is
// taken at zero pitch so the three vectors stay orthonormal.
func (v View) Basis() (forward, right, up Vector3) {
	forward = ToDirection(v.Yaw, v.Pitch)
	right = ToDirection(v.Yaw-math.Pi/2, 0)
	up = ToDirection(v.Yaw, v.Pitch+math.Pi/2)
	return forward, right, up
}

// Planar returns the pitch free forward and right directions used for walking.
func (v View) Planar() (forward, right Vector3) {
	return ToDirection(v.Yaw, 0), ToDirection(v.Yaw-math.Pi/2, 0)
}

func (v View) Rotate(deltaYaw, deltaPitch float64) View {
	v.Yaw += deltaYaw
	v.Pitch += deltaPitch
	return v
}

func (v View) ClampPitch(limit float64) View {
	v.Pitch = Clamp(v.Pitch, -limit, limit)
	return v
}

func (v View) String() string {
	return fmt.Sprintf("yaw: %.1f°, pitch: %.1f°", ToDegree(v.Yaw), ToDegree(v.Pitch))
}
