package term

import (
	"image/color"
	"strconv"
)

type colorKind uint8

const (
	kindDefault colorKind = iota
	kindANSI
	kindRGB
)

// Color is a terminal color: the terminal default, one of the eight basic
// ANSI colors or a 24 bit truecolor value.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

var (
	Default = Color{}
	Black   = ANSI(0)
	Red     = ANSI(1)
	Green   = ANSI(2)
	Yellow  = ANSI(3)
	Blue    = ANSI(4)
	Magenta = ANSI(5)
	Cyan    = ANSI(6)
	White   = ANSI(7)
)

var colorNames = map[string]Color{
	"default": Default,
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
}

func ANSI(index uint8) Color {
	return Color{kind: kindANSI, index: index % 8}
}

func RGB(r, g, b uint8) Color {
	return Color{kind: kindRGB, r: r, g: g, b: b}
}

func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}

// ColorByName resolves the basic color names used in configuration.
func ColorByName(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}

func (c Color) IsDefault() bool {
	return c.kind == kindDefault
}

func (c Color) foreground() string {
	switch c.kind {
	case kindANSI:
		return strconv.Itoa(30 + int(c.index))
	case kindRGB:
		return "38;2;" + c.rgb()
	}
	return "39"
}

func (c Color) background() string {
	switch c.kind {
	case kindANSI:
		return strconv.Itoa(40 + int(c.index))
	case kindRGB:
		return "48;2;" + c.rgb()
	}
	return "49"
}

func (c Color) rgb() string {
	return strconv.Itoa(int(c.r)) + ";" + strconv.Itoa(int(c.g)) + ";" + strconv.Itoa(int(c.b))
}
