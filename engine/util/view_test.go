package util

import (
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestToDirectionAxes(t *testing.T) {
	assertVec(t, Forward, ToDirection(0, 0))
	assertVec(t, Left, ToDirection(math.Pi/2, 0))
	assertVec(t, Right, ToDirection(-math.Pi/2, 0))
	assertVec(t, Up, ToDirection(0, math.Pi/2))
}

func TestViewBasisIsOrthonormal(t *testing.T) {
	for _, yaw := range []float64{0, 0.3, -2, math.Pi} {
		for _, pitch := range []float64{0, 0.5, -1.2, ToRadian(89)} {
			forward, right, up := View{Yaw: yaw, Pitch: pitch}.Basis()
			assert.InDelta(t, 1, forward.Len(), 1e-9)
			assert.InDelta(t, 1, right.Len(), 1e-9)
			assert.InDelta(t, 1, up.Len(), 1e-9)
			assert.InDelta(t, 0, forward.Dot(right), 1e-9)
			assert.InDelta(t, 0, forward.Dot(up), 1e-9)
			assert.InDelta(t, 0, right.Dot(up), 1e-9)
		}
	}
}

func TestViewPlanarIgnoresPitch(t *testing.T) {
	forward, right := View{Yaw: 0.7, Pitch: 1.1}.Planar()
	assert.InDelta(t, 0, forward.Y(), 1e-12)
	assert.InDelta(t, 0, right.Y(), 1e-12)
	assert.InDelta(t, 1, forward.Len(), 1e-9)
}

func TestViewClampPitch(t *testing.T) {
	v := View{Pitch: 2}.ClampPitch(DefaultPitchLimit)
	assert.InDelta(t, ToRadian(89), v.Pitch, 1e-12)
	v = v.Rotate(0.1, -10).ClampPitch(DefaultPitchLimit)
	assert.InDelta(t, -ToRadian(89), v.Pitch, 1e-12)
	assert.InDelta(t, 0.1, v.Yaw, 1e-12)
}

func TestMathHelpers(t *testing.T) {
	assert.Equal(t, Vector3{1, -2, 0}, Floor3(Vector3{1.9, -1.1, 0.2}))
	assert.Equal(t, Vector3{2, -1, 0}, Round3(Vector3{1.9, -1.1, 0.2}))
	assert.InDelta(t, 0.75, Frac(-0.25), 1e-12)
	assert.Equal(t, Zero, Normalize(Zero))
	assert.True(t, ApproxEqual(Vector3{1, 1, 1}, Vector3{1.00005, 1, 0.99995}))
	assert.False(t, ApproxEqual(Vector3{1, 1, 1}, Vector3{1.001, 1, 1}))
	assert.Equal(t, 2, DominantAxis(Vector3{0.1, -0.2, -0.9}))
	assert.Equal(t, Down, AxisNormal(1, -0.5))
}
