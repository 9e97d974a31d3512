package voxel

import (
	"fmt"
	"github.com/pkg/errors"
	"math"
)

// Grid is a dense, fixed size occupancy store. Cells live in one contiguous
// slice indexed x + y*width + z*width*height.
type Grid struct {
	cells  []BlockState
	width  int
	height int
	depth  int
}

func NewGrid(width, height, depth int) (*Grid, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, errors.Errorf("invalid grid dimensions %dx%dx%d", width, height, depth)
	}
	g := &Grid{
		cells:  make([]BlockState, width*height*depth),
		width:  width,
		height: height,
		depth:  depth,
	}
	return g, nil
}

func (g *Grid) index(x, y, z int) int {
	return x + y*g.width + z*g.width*g.height
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Depth() int { return g.depth }

func (g *Grid) Size() (int, int, int) {
	return g.width, g.height, g.depth
}

// Create marks the cell as occupied. Coordinates must be in bounds.
func (g *Grid) Create(x, y, z int) {
	g.cells[g.index(x, y, z)] = Occupied
}

// Delete marks the cell as empty. Coordinates must be in bounds.
func (g *Grid) Delete(x, y, z int) {
	g.cells[g.index(x, y, z)] = Empty
}

// Has reports whether the cell is occupied. Coordinates must be in bounds.
func (g *Grid) Has(x, y, z int) bool {
	return g.cells[g.index(x, y, z)] == Occupied
}

// InBounds uses real coordinates: 0 <= x < width and so on.
func (g *Grid) InBounds(x, y, z float64) bool {
	return x >= 0 && x < float64(g.width) &&
		y >= 0 && y < float64(g.height) &&
		z >= 0 && z < float64(g.depth)
}

func (g *Grid) Contains(pos Int3) bool {
	return pos.X >= 0 && pos.X < g.width &&
		pos.Y >= 0 && pos.Y < g.height &&
		pos.Z >= 0 && pos.Z < g.depth
}

// IsSolidBlockAt is the bounds checked variant of Has. Cells outside the
// grid are reported as empty.
func (g *Grid) IsSolidBlockAt(pos Int3) bool {
	return g.Contains(pos) && g.Has(pos.X, pos.Y, pos.Z)
}

// Set writes the cell when it is inside the grid and reports whether it did.
func (g *Grid) Set(pos Int3, state BlockState) bool {
	if !g.Contains(pos) {
		return false
	}
	g.cells[g.index(pos.X, pos.Y, pos.Z)] = state
	return true
}

func (g *Grid) Diagonal() float64 {
	w, h, d := float64(g.width), float64(g.height), float64(g.depth)
	return math.Sqrt(w*w + h*h + d*d)
}

func (g *Grid) Count() int {
	count := 0
	for _, cell := range g.cells {
		if cell == Occupied {
			count++
		}
	}
	return count
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

func (g *Grid) SetFloorAtHeight(yLevel int) {
	if yLevel < 0 || yLevel >= g.height {
		return
	}
	for x := 0; x < g.width; x++ {
		for z := 0; z < g.depth; z++ {
			g.Create(x, yLevel, z)
		}
	}
}

// HighestSolid returns the y of the topmost occupied cell in the column, or -1.
func (g *Grid) HighestSolid(x, z int) int {
	if x < 0 || x >= g.width || z < 0 || z >= g.depth {
		return -1
	}
	for y := g.height - 1; y >= 0; y-- {
		if g.Has(x, y, z) {
			return y
		}
	}
	return -1
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid %dx%dx%d (%d blocks)", g.width, g.height, g.depth, g.Count())
}
