package voxel

import (
	"fmt"
	"github.com/go-gl/mathgl/mgl64"
	"math"
)

type Int3 struct {
	X, Y, Z int
}

func (i Int3) Add(other Int3) Int3 {
	return Int3{i.X + other.X, i.Y + other.Y, i.Z + other.Z}
}

func (i Int3) Sub(tr Int3) Int3 {
	return Int3{i.X - tr.X, i.Y - tr.Y, i.Z - tr.Z}
}

func (i Int3) Mul(factor int) Int3 {
	i.X *= factor
	i.Y *= factor
	i.Z *= factor
	return i
}

func (i Int3) ToVec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(i.X), float64(i.Y), float64(i.Z)}
}

// ToBlockCenterVec3 returns the center of the block's bottom face.
func (i Int3) ToBlockCenterVec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(i.X) + 0.5, float64(i.Y), float64(i.Z) + 0.5}
}

func (i Int3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", i.X, i.Y, i.Z)
}

func ToGridInt3(pos mgl64.Vec3) Int3 {
	return Int3{int(math.Floor(pos.X())), int(math.Floor(pos.Y())), int(math.Floor(pos.Z()))}
}

func ManhattanDistance3(a, b Int3) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y) + Abs(a.Z-b.Z)
}

func Abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
