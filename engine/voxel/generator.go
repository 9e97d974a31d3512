package voxel

import (
	"github.com/aquilax/go-perlin"
	"math"
	"math/rand"
)

// Generator populates a grid. Generators run in order, later ones see the
// blocks placed by earlier ones.
type Generator interface {
	Generate(g *Grid)
}

type GeneratorFunc func(g *Grid)

func (f GeneratorFunc) Generate(g *Grid) { f(g) }

func Populate(g *Grid, generators ...Generator) {
	for _, gen := range generators {
		gen.Generate(g)
	}
}

// FlatGenerator fills the bottom GroundLayers layers completely.
type FlatGenerator struct {
	GroundLayers int
}

func (f FlatGenerator) Generate(g *Grid) {
	for y := 0; y < f.GroundLayers; y++ {
		g.SetFloorAtHeight(y)
	}
}

// ScatterGenerator drops single blocks on top of the terrain at random
// columns. Extra positions are placed as given, when they fit.
type ScatterGenerator struct {
	Count int
	Seed  int64
	Extra []Int3
}

func (s ScatterGenerator) Generate(g *Grid) {
	rng := rand.New(rand.NewSource(s.Seed))
	for i := 0; i < s.Count; i++ {
		x := rng.Intn(g.Width())
		z := rng.Intn(g.Depth())
		y := g.HighestSolid(x, z) + 1
		g.Set(Int3{x, y, z}, Occupied)
	}
	for _, pos := range s.Extra {
		g.Set(pos, Occupied)
	}
}

// HillsGenerator fills every column up to a height taken from 2D perlin noise.
type HillsGenerator struct {
	BaseHeight int
	Amplitude  float64
	Scale      float64
	Seed       int64
}

func (h HillsGenerator) Generate(g *Grid) {
	alpha := 2.0
	beta := 2.0
	n := int32(3)
	noise := perlin.NewPerlin(alpha, beta, n, h.Seed)
	scale := h.Scale
	if scale <= 0 {
		scale = 0.1
	}
	for x := 0; x < g.Width(); x++ {
		for z := 0; z < g.Depth(); z++ {
			// octave sums can leave -1..1 slightly
			value := (noise.Noise2D(float64(x)*scale, float64(z)*scale) + 1.0) / 2.0
			value = math.Min(math.Max(value, 0), 1)
			top := h.BaseHeight + int(math.Round(value*h.Amplitude))
			if top >= g.Height() {
				top = g.Height() - 1
			}
			for y := 0; y <= top; y++ {
				g.Create(x, y, z)
			}
		}
	}
}
