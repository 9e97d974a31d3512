package term

import (
	"bufio"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"math"
)

const (
	escReset      = "\x1b[0m"
	escCursorHome = "\x1b[H"
)

// Style is everything about a cell except its depth.
type Style struct {
	Glyph rune
	Dim   bool
	Fg    Color
	Bg    Color
}

// sgr renders the select graphic rendition sequence for the style.
func (s Style) sgr() string {
	intensity := "22"
	if s.Dim {
		intensity = "2"
	}
	return "\x1b[" + intensity + ";" + s.Fg.foreground() + ";" + s.Bg.background() + "m"
}

type Cell struct {
	Style
	Empty bool
	Depth float64
}

type drawContext struct {
	style Style
	depth float64
}

var defaultContext = drawContext{style: Style{Glyph: '#'}}

// Surface is a character cell framebuffer. Drawing calls use the current
// context (glyph, dim flag, colors, depth), which can be saved and restored
// around a block of drawing.
type Surface struct {
	width  int
	height int
	cells  []Cell

	context      drawContext
	contextStack []drawContext

	out *bufio.Writer
}

func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid surface size %dx%d", width, height)
	}
	s := &Surface{
		width:   width,
		height:  height,
		cells:   make([]Cell, width*height),
		context: defaultContext,
	}
	s.Clear()
	return s, nil
}

func (s *Surface) Width() int { return s.width }
func (s *Surface) Height() int { return s.height }

// AspectRatio is height over width in cells.
func (s *Surface) AspectRatio() float64 {
	return float64(s.height) / float64(s.width)
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{Style: Style{Glyph: ' '}, Empty: true, Depth: math.Inf(1)}
	}
}

func (s *Surface) Cell(x, y int) Cell {
	if !s.inside(x, y) {
		return Cell{Style: Style{Glyph: ' '}, Empty: true, Depth: math.Inf(1)}
	}
	return s.cells[x+y*s.width]
}

func (s *Surface) IsEmpty(x, y int) bool {
	return s.Cell(x, y).Empty
}

func (s *Surface) SaveContext() {
	s.contextStack = append(s.contextStack, s.context)
}

// RestoreContext pops the last saved context. Without a saved context it
// does nothing.
func (s *Surface) RestoreContext() {
	if len(s.contextStack) == 0 {
		return
	}
	last := len(s.contextStack) - 1
	s.context = s.contextStack[last]
	s.contextStack = s.contextStack[:last]
}

func (s *Surface) ResetContext() {
	s.context = defaultContext
}

func (s *Surface) SetGlyph(glyph rune) { s.context.style.Glyph = glyph }
func (s *Surface) SetDim(dim bool) { s.context.style.Dim = dim }
func (s *Surface) SetForeground(c Color) { s.context.style.Fg = c }
func (s *Surface) SetBackground(c Color) { s.context.style.Bg = c }
func (s *Surface) SetDepth(depth float64) { s.context.depth = depth }
func (s *Surface) ResetForeground() { s.context.style.Fg = Default }
func (s *Surface) ResetBackground() { s.context.style.Bg = Default }
func (s *Surface) ContextStyle() Style { return s.context.style }
func (s *Surface) ContextDepth() float64 { return s.context.depth }
func (s *Surface) ContextStackDepth() int { return len(s.contextStack) }

// DrawPoint writes the context style unconditionally.
func (s *Surface) DrawPoint(x, y int) {
	s.DrawStyled(x, y, s.context.style, s.context.depth)
}

// DrawPointDepth writes the context style only if the cell is empty or
// holds something further away than depth.
func (s *Surface) DrawPointDepth(x, y int, depth float64) {
	s.DrawStyledDepth(x, y, s.context.style, depth)
}

// DrawStyled writes an explicit style, bypassing the context. Concurrent
// callers are fine as long as they write disjoint cells.
func (s *Surface) DrawStyled(x, y int, style Style, depth float64) {
	if !s.inside(x, y) {
		return
	}
	s.cells[x+y*s.width] = Cell{Style: style, Depth: depth}
}

func (s *Surface) DrawStyledDepth(x, y int, style Style, depth float64) {
	if !s.inside(x, y) {
		return
	}
	cell := &s.cells[x+y*s.width]
	if !cell.Empty && cell.Depth <= depth {
		return
	}
	*cell = Cell{Style: style, Depth: depth}
}

// DrawText prints formatted text starting at x, y with the context colors.
// Text wraps at the right edge and on newlines.
func (s *Surface) DrawText(x, y int, format string, args ...interface{}) {
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	style := s.context.style
	cx, cy := x, y
	for _, r := range text {
		if r == '\n' {
			cx, cy = x, cy+1
			continue
		}
		if cx >= s.width {
			cx, cy = x, cy+1
		}
		style.Glyph = r
		s.DrawStyled(cx, cy, style, s.context.depth)
		cx++
	}
}

// Present writes the frame to w: cursor home, then every row with the
// escape sequences needed to reproduce each cell's style.
func (s *Surface) Present(w io.Writer) error {
	if s.out == nil {
		s.out = bufio.NewWriterSize(w, s.width*s.height*4)
	} else {
		s.out.Reset(w)
	}
	out := s.out
	out.WriteString(escCursorHome)
	for y := 0; y < s.height; y++ {
		current := ""
		for x := 0; x < s.width; x++ {
			cell := s.cells[x+y*s.width]
			style := cell.Style
			if cell.Empty {
				style = Style{Glyph: ' '}
			}
			if seq := style.sgr(); seq != current {
				out.WriteString(seq)
				current = seq
			}
			out.WriteRune(style.Glyph)
		}
		out.WriteString(escReset)
		if y < s.height-1 {
			out.WriteString("\r\n")
		}
	}
	return errors.Wrap(out.Flush(), "present frame")
}

// String returns the glyphs only, one line per row.
func (s *Surface) String() string {
	buf := make([]rune, 0, (s.width+1)*s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			buf = append(buf, s.cells[x+y*s.width].Glyph)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
