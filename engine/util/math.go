package util

import (
	"github.com/go-gl/mathgl/mgl64"
	"math"
)

// Vector3 is the value type used for positions and directions throughout
// the engine. All helpers return new values.
type Vector3 = mgl64.Vec3

// VectorTolerance is the component-wise tolerance used by ApproxEqual.
const VectorTolerance = 1e-4

var (
	Forward = Vector3{0, 0, 1}
	Back    = Vector3{0, 0, -1}
	Right   = Vector3{1, 0, 0}
	Left    = Vector3{-1, 0, 0}
	Up      = Vector3{0, 1, 0}
	Down    = Vector3{0, -1, 0}
	Zero    = Vector3{0, 0, 0}
)

func Floor3(v Vector3) Vector3 {
	return Vector3{math.Floor(v.X()), math.Floor(v.Y()), math.Floor(v.Z())}
}

func Round3(v Vector3) Vector3 {
	return Vector3{math.Round(v.X()), math.Round(v.Y()), math.Round(v.Z())}
}

// Frac returns the fractional part of x in [0, 1).
func Frac(x float64) float64 {
	return x - math.Floor(x)
}

// ApproxEqual compares component-wise with an absolute tolerance.
func ApproxEqual(a, b Vector3) bool {
	return a.ApproxFuncEqual(b, func(x, y float64) bool {
		return math.Abs(x-y) <= VectorTolerance
	})
}

// Normalize returns the unit vector, or the zero vector for a zero input.
func Normalize(v Vector3) Vector3 {
	length := v.Len()
	if length == 0 {
		return Zero
	}
	return v.Mul(1 / length)
}

func Clamp(value, min, max float64) float64 {
	return mgl64.Clamp(value, min, max)
}

func ToRadian(angle float64) float64 {
	return mgl64.DegToRad(angle)
}

func ToDegree(angle float64) float64 {
	return mgl64.RadToDeg(angle)
}

func Mix(a, b, factor float64) float64 {
	return a*(1-factor) + factor*b
}

func Lerp3(one, two Vector3, factor float64) Vector3 {
	return Vector3{Mix(one.X(), two.X(), factor), Mix(one.Y(), two.Y(), factor), Mix(one.Z(), two.Z(), factor)}
}

// AxisNormal returns the unit vector along axis pointing to sign.
func AxisNormal(axis int, sign float64) Vector3 {
	var n Vector3
	if sign < 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return n
}

// DominantAxis returns the axis with the largest absolute component.
func DominantAxis(v Vector3) int {
	axis := 0
	for i := 1; i < 3; i++ {
		if math.Abs(v[i]) > math.Abs(v[axis]) {
			axis = i
		}
	}
	return axis
}
