package util

import (
	"fmt"
	"github.com/memmaker/termcraft/engine/voxel"
	"math"
)

const (
	// DetectEpsilon is the smallest direction component that still
	// constrains stepping along its axis.
	DetectEpsilon = 1e-3
	// ForwardEpsilon pushes the ray past every boundary it reaches, so the
	// next occupancy query lands in the cell on the far side.
	ForwardEpsilon = 1e-3
	// MaxStep caps a single traversal step.
	MaxStep = 2.0
)

// Occupancy is what the traversal needs to know about the world.
// *voxel.Grid satisfies it.
type Occupancy interface {
	InBounds(x, y, z float64) bool
	Has(x, y, z int) bool
	Size() (int, int, int)
}

type Ray struct {
	Origin    Vector3
	Direction Vector3
}

func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

type CubeSide int

const (
	FrontSide CubeSide = iota
	BackSide
	LeftSide
	RightSide
	TopSide
	BottomSide
)

func (c CubeSide) String() string {
	switch c {
	case FrontSide:
		return "front"
	case BackSide:
		return "back"
	case LeftSide:
		return "left"
	case RightSide:
		return "right"
	case TopSide:
		return "top"
	}
	return "bottom"
}

// SideFromNormal names the cube face a surface normal points out of.
func SideFromNormal(normal Vector3) CubeSide {
	switch DominantAxis(normal) {
	case 0:
		if normal.X() > 0 {
			return RightSide
		}
		return LeftSide
	case 1:
		if normal.Y() > 0 {
			return TopSide
		}
		return BottomSide
	}
	if normal.Z() > 0 {
		return FrontSide
	}
	return BackSide
}

// Hit describes the first occupied voxel along a ray. Point lies on the
// struck face, Normal points out of it and Distance is measured in units of
// the ray direction.
type Hit struct {
	Point    Vector3
	Normal   Vector3
	Distance float64
	Cell     voxel.Int3
}

func (h Hit) Side() CubeSide {
	return SideFromNormal(h.Normal)
}

// Adjacent is the empty cell in front of the struck face.
func (h Hit) Adjacent() voxel.Int3 {
	n := Round3(h.Normal)
	return h.Cell.Add(voxel.Int3{X: int(n.X()), Y: int(n.Y()), Z: int(n.Z())})
}

func (h Hit) String() string {
	return fmt.Sprintf("hit %v at (%.3f, %.3f, %.3f) normal %s dist %.3f", h.Cell, h.Point.X(), h.Point.Y(), h.Point.Z(), h.Side(), h.Distance)
}

type crossing struct {
	point    Vector3
	normal   Vector3
	distance float64
	valid    bool
}

// CastRay walks the grid cell by cell from ray.Origin along ray.Direction and
// returns the first occupied voxel no further than maxDistance. The returned
// hit point is the boundary crossing that led into the occupied cell.
//
// Origins outside the grid are first advanced to where the ray enters it.
// An origin inside an occupied cell has no crossing to report and misses.
func CastRay(ray Ray, maxDistance float64, grid Occupancy) (Hit, bool) {
	dir := ray.Direction
	if !constrains(dir[0]) && !constrains(dir[1]) && !constrains(dir[2]) {
		return Hit{}, false
	}
	pos := ray.Origin
	total := 0.0
	var last crossing

	if !IsInGrid(pos, grid) {
		w, h, d := grid.Size()
		size := Vector3{float64(w), float64(h), float64(d)}
		tEnter, tExit, axis, ok := clipToBox(pos, dir, size)
		if !ok || tExit < 0 || tEnter > maxDistance {
			return Hit{}, false
		}
		entry := ray.At(tEnter)
		for i := 0; i < 3; i++ {
			entry[i] = Clamp(entry[i], 0, size[i])
		}
		entry[axis] = math.Round(entry[axis])
		last = crossing{
			point:    entry,
			normal:   AxisNormal(axis, -dir[axis]),
			distance: tEnter,
			valid:    true,
		}
		total = tEnter + ForwardEpsilon
		pos = entry.Add(dir.Mul(ForwardEpsilon))
	} else if axis, onPlane := startPlane(pos, dir); onPlane {
		last = crossing{
			point:    pos,
			normal:   AxisNormal(axis, -dir[axis]),
			distance: 0,
			valid:    true,
		}
		total = ForwardEpsilon
		pos = pos.Add(dir.Mul(ForwardEpsilon))
	}

	for IsInGrid(pos, grid) {
		x, y, z := int(pos.X()), int(pos.Y()), int(pos.Z())
		if grid.Has(x, y, z) {
			if !last.valid {
				return Hit{}, false
			}
			return Hit{
				Point:    last.point,
				Normal:   last.normal,
				Distance: last.distance,
				Cell:     voxel.Int3{X: x, Y: y, Z: z},
			}, true
		}

		step := math.Inf(1)
		stepAxis := -1
		for i := 0; i < 3; i++ {
			if !constrains(dir[i]) {
				continue
			}
			dist := boundaryDistance(pos[i], dir[i])
			if dist < step {
				step = dist
				stepAxis = i
			}
		}
		if step > MaxStep {
			step = MaxStep
			stepAxis = DominantAxis(dir)
		}
		if total+step > maxDistance {
			return Hit{}, false
		}
		total += step
		last = crossing{
			point:    pos.Add(dir.Mul(step)),
			normal:   AxisNormal(stepAxis, -dir[stepAxis]),
			distance: total,
			valid:    true,
		}
		pos = pos.Add(dir.Mul(step + ForwardEpsilon))
		total += ForwardEpsilon
	}
	return Hit{}, false
}

// CastSegment casts from start towards end and reports hits up to end.
func CastSegment(start, end Vector3, grid Occupancy) (Hit, bool) {
	delta := end.Sub(start)
	length := delta.Len()
	if length == 0 {
		return Hit{}, false
	}
	return CastRay(Ray{Origin: start, Direction: delta.Mul(1 / length)}, length, grid)
}

func constrains(component float64) bool {
	return math.Abs(component) > DetectEpsilon
}

// boundaryDistance is the parametric distance from p to the next integer
// plane in the direction of d.
func boundaryDistance(p, d float64) float64 {
	if d > 0 {
		return (math.Floor(p) + 1 - p) / d
	}
	return (p - math.Floor(p)) / -d
}

// startPlane reports whether the origin sits on an integer plane of an axis
// the ray moves along. With several candidates the fastest axis wins.
func startPlane(pos, dir Vector3) (int, bool) {
	axis := -1
	for i := 0; i < 3; i++ {
		if !constrains(dir[i]) {
			continue
		}
		if math.Abs(pos[i]-math.Round(pos[i])) > ForwardEpsilon {
			continue
		}
		if axis < 0 || math.Abs(dir[i]) > math.Abs(dir[axis]) {
			axis = i
		}
	}
	return axis, axis >= 0
}

// clipToBox intersects the ray with the box [0, size] using the slab method.
// axis is the axis of the entry face.
func clipToBox(origin, dir, size Vector3) (tEnter, tExit float64, axis int, ok bool) {
	tEnter = math.Inf(-1)
	tExit = math.Inf(1)
	axis = DominantAxis(dir)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < 0 || origin[i] > size[i] {
				return 0, 0, 0, false
			}
			continue
		}
		t1 := -origin[i] / dir[i]
		t2 := (size[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			axis = i
		}
		if t2 < tExit {
			tExit = t2
		}
	}
	if tEnter > tExit {
		return 0, 0, 0, false
	}
	if tEnter < 0 {
		tEnter = 0
	}
	return tEnter, tExit, axis, true
}

// IsNearCellEdge reports whether at least two coordinates of point lie
// within tolerance of an integer, i.e. the point is close to a grid line.
func IsNearCellEdge(point Vector3, tolerance float64) bool {
	near := 0
	for i := 0; i < 3; i++ {
		if math.Abs(point[i]-math.Round(point[i])) < tolerance {
			near++
		}
	}
	return near >= 2
}

// IsInGrid reports whether point lies inside the grid volume.
func IsInGrid(point Vector3, grid Occupancy) bool {
	return grid.InBounds(point.X(), point.Y(), point.Z())
}

// FaceUV projects the hit point onto the struck face and returns texture
// coordinates in [0, 1]. v grows downwards on the side faces.
func FaceUV(hit Hit) (u, v float64) {
	p := hit.Point
	switch DominantAxis(hit.Normal) {
	case 0:
		return Frac(p.Z()), 1 - Frac(p.Y())
	case 1:
		return Frac(p.X()), Frac(p.Z())
	}
	return Frac(p.X()), 1 - Frac(p.Y())
}
