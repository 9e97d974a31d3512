package texture

import (
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
)

// Sampler maps face coordinates to a color. u and v are in [0, 1], values
// outside wrap around.
type Sampler interface {
	Sample(u, v float64) color.RGBA
}

func wrap(x float64) float64 {
	return x - math.Floor(x)
}

// ImageTexture is a square tile resampled from a decoded image.
type ImageTexture struct {
	size   int
	pixels []color.RGBA
}

// DefaultTileSize is the edge length images are resampled to. Terminal
// faces rarely cover more cells than this.
const DefaultTileSize = 16

func LoadImageTexture(path string, tileSize int) (*ImageTexture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open texture %s", path)
	}
	defer file.Close()
	tex, err := NewImageTextureFromReader(file, tileSize)
	if err != nil {
		return nil, errors.Wrapf(err, "load texture %s", path)
	}
	return tex, nil
}

func NewImageTextureFromReader(reader io.Reader, tileSize int) (*ImageTexture, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return NewImageTexture(img, tileSize), nil
}

func NewImageTexture(img image.Image, tileSize int) *ImageTexture {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	tile := image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
	draw.NearestNeighbor.Scale(tile, tile.Bounds(), img, img.Bounds(), draw.Src, nil)

	pixels := make([]color.RGBA, tileSize*tileSize)
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			pixels[x+y*tileSize] = tile.RGBAAt(x, y)
		}
	}
	return &ImageTexture{size: tileSize, pixels: pixels}
}

func (t *ImageTexture) Size() int {
	return t.size
}

func (t *ImageTexture) Sample(u, v float64) color.RGBA {
	x := int(wrap(u) * float64(t.size))
	y := int(wrap(v) * float64(t.size))
	if x >= t.size {
		x = t.size - 1
	}
	if y >= t.size {
		y = t.size - 1
	}
	return t.pixels[x+y*t.size]
}

// Checker alternates two colors in a Cells x Cells pattern.
type Checker struct {
	Cells int
	A, B  color.RGBA
}

func NewChecker() Checker {
	return Checker{Cells: 4, A: colornames.Forestgreen, B: colornames.Darkolivegreen}
}

func (c Checker) Sample(u, v float64) color.RGBA {
	cells := c.Cells
	if cells <= 0 {
		cells = 1
	}
	x := int(wrap(u) * float64(cells))
	y := int(wrap(v) * float64(cells))
	if (x+y)%2 == 0 {
		return c.A
	}
	return c.B
}

// Bricks draws rows of offset bricks separated by mortar lines.
type Bricks struct {
	Rows   int
	Brick  color.RGBA
	Mortar color.RGBA
}

func NewBricks() Bricks {
	return Bricks{Rows: 4, Brick: colornames.Firebrick, Mortar: colornames.Lightgray}
}

func (b Bricks) Sample(u, v float64) color.RGBA {
	rows := b.Rows
	if rows <= 0 {
		rows = 1
	}
	u, v = wrap(u), wrap(v)
	row := int(v * float64(rows))
	rowV := v*float64(rows) - float64(row)
	if rowV < 0.15 {
		return b.Mortar
	}
	// every other row is shifted by half a brick
	bricksPerRow := float64(rows) / 2
	shifted := u*bricksPerRow + float64(row%2)*0.5
	if shifted-math.Floor(shifted) < 0.08 {
		return b.Mortar
	}
	return b.Brick
}

// Shade scales a color towards black. factor 1 keeps it unchanged.
func Shade(c color.RGBA, factor float64) color.RGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// ByName returns a procedural sampler for a configuration name.
func ByName(name string) (Sampler, bool) {
	switch name {
	case "checker":
		return NewChecker(), true
	case "bricks":
		return NewBricks(), true
	}
	if c, ok := colornames.Map[name]; ok {
		return Solid{Color: c}, true
	}
	return nil, false
}

type Solid struct {
	Color color.RGBA
}

func (s Solid) Sample(u, v float64) color.RGBA {
	return s.Color
}
