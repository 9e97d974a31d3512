package texture

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := colornames.Red
			if x >= 2 {
				c = colornames.Blue
			}
			if y >= 2 {
				c = colornames.Yellow
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestImageTextureSamples(t *testing.T) {
	tex := NewImageTexture(quadrants(), 8)
	assert.Equal(t, 8, tex.Size())
	assert.Equal(t, colornames.Red, tex.Sample(0.1, 0.1))
	assert.Equal(t, colornames.Blue, tex.Sample(0.9, 0.1))
	assert.Equal(t, colornames.Yellow, tex.Sample(0.5, 0.9))
	// coordinates wrap
	assert.Equal(t, colornames.Blue, tex.Sample(1.9, -0.9))
	assert.Equal(t, colornames.Yellow, tex.Sample(0.1, 1.0-1e-9))
}

func TestImageTextureDecodesPNGAndBMP(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, quadrants()))
	tex, err := NewImageTextureFromReader(&pngBuf, 4)
	require.NoError(t, err)
	assert.Equal(t, colornames.Red, tex.Sample(0, 0))

	var bmpBuf bytes.Buffer
	require.NoError(t, bmp.Encode(&bmpBuf, quadrants()))
	tex, err = NewImageTextureFromReader(&bmpBuf, 4)
	require.NoError(t, err)
	assert.Equal(t, colornames.Blue, tex.Sample(0.8, 0.2))

	_, err = NewImageTextureFromReader(bytes.NewBufferString("not an image"), 4)
	assert.Error(t, err)

	_, err = LoadImageTexture("does/not/exist.png", 4)
	assert.Error(t, err)
}

func TestChecker(t *testing.T) {
	c := Checker{Cells: 2, A: colornames.White, B: colornames.Black}
	assert.Equal(t, colornames.White, c.Sample(0.1, 0.1))
	assert.Equal(t, colornames.Black, c.Sample(0.6, 0.1))
	assert.Equal(t, colornames.White, c.Sample(0.6, 0.6))
}

func TestBricksHasMortarAndBrick(t *testing.T) {
	b := NewBricks()
	assert.Equal(t, b.Mortar, b.Sample(0.5, 0.01))
	assert.Equal(t, b.Brick, b.Sample(0.3, 0.15))
}

func TestShadeAndByName(t *testing.T) {
	c := Shade(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 0.5)
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 255}, c)

	s, ok := ByName("checker")
	assert.True(t, ok)
	assert.NotNil(t, s)
	s, ok = ByName("teal")
	require.True(t, ok)
	assert.Equal(t, colornames.Teal, s.Sample(0.3, 0.3))
	_, ok = ByName("nope")
	assert.False(t, ok)
}
