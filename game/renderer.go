package game

import (
	"fmt"
	"github.com/alitto/pond/v2"
	"github.com/memmaker/termcraft/engine/term"
	"github.com/memmaker/termcraft/engine/texture"
	"github.com/memmaker/termcraft/engine/util"
	"github.com/pkg/errors"
	"sync"
)

type RenderMode int

const (
	ModeGlyph RenderMode = iota
	ModeShaded
	ModeTextured
)

func ParseRenderMode(name string) (RenderMode, error) {
	switch name {
	case "glyph", "":
		return ModeGlyph, nil
	case "shaded":
		return ModeShaded, nil
	case "textured":
		return ModeTextured, nil
	}
	return ModeGlyph, errors.Errorf("render: unknown mode %q", name)
}

func (m RenderMode) String() string {
	switch m {
	case ModeShaded:
		return "shaded"
	case ModeTextured:
		return "textured"
	}
	return "glyph"
}

const (
	faceGlyph   = '#'
	borderGlyph = '.'
)

// Viewport spans the screen: LeftTop is the direction through the top left
// corner, HStep and VStep advance one cell to the right and one row down.
type Viewport struct {
	Origin  util.Vector3
	LeftTop util.Vector3
	HStep   util.Vector3
	VStep   util.Vector3
}

// NewViewport builds the corner directions for a width x height surface.
// The vertical half angle follows from the horizontal one, the surface
// shape and how tall a cell is compared to its width.
func NewViewport(origin util.Vector3, view util.View, fov float64, width, height int, cellAspect float64) Viewport {
	halfH := fov / 2
	halfV := halfH * float64(height) / float64(width) * cellAspect

	center := util.ToDirection(view.Yaw, view.Pitch)
	left := util.ToDirection(view.Yaw+halfH, view.Pitch)
	right := util.ToDirection(view.Yaw-halfH, view.Pitch)
	top := util.ToDirection(view.Yaw, view.Pitch+halfV)
	bottom := util.ToDirection(view.Yaw, view.Pitch-halfV)

	return Viewport{
		Origin:  origin,
		LeftTop: top.Add(left).Sub(center),
		HStep:   right.Sub(left).Mul(1 / float64(width)),
		VStep:   bottom.Sub(top).Mul(1 / float64(height)),
	}
}

func (v Viewport) Direction(x, y int) util.Vector3 {
	return v.LeftTop.Add(v.HStep.Mul(float64(x))).Add(v.VStep.Mul(float64(y)))
}

// Renderer raycasts one ray per cell. Rows are independent and run on a
// worker pool when more than one worker is configured.
type Renderer struct {
	mode           RenderMode
	fov            float64
	cellAspect     float64
	borderWidth    float64
	selectionColor term.Color
	crosshair      bool
	hud            bool
	pool           pond.Pool
}

func NewRenderer(cfg RenderConfig, cellAspect float64) (*Renderer, error) {
	mode, err := ParseRenderMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	selectionColor, ok := term.ColorByName(cfg.SelectionColor)
	if !ok {
		return nil, errors.Errorf("render: unknown selection color %q", cfg.SelectionColor)
	}
	r := &Renderer{
		mode:           mode,
		fov:            util.ToRadian(cfg.FOV),
		cellAspect:     cellAspect,
		borderWidth:    cfg.BorderWidth,
		selectionColor: selectionColor,
		crosshair:      cfg.Crosshair,
		hud:            cfg.HUD,
	}
	if cfg.Workers > 1 {
		r.pool = pond.NewPool(cfg.Workers)
	}
	util.LogRenderInfo(fmt.Sprintf("[Renderer] Mode %s, fov %.0f°, %d workers", mode, cfg.FOV, cfg.Workers))
	return r, nil
}

func (r *Renderer) Mode() RenderMode {
	return r.mode
}

func (r *Renderer) Close() {
	if r.pool != nil {
		r.pool.StopAndWait()
	}
}

// Render draws the world as seen from the player's eye, then the
// crosshair and status line on top.
func (r *Renderer) Render(surface *term.Surface, s *Session) {
	width, height := surface.Width(), surface.Height()
	eye := s.Player.Eye()
	viewport := NewViewport(eye, s.Player.View, r.fov, width, height, r.cellAspect)

	w, h, d := s.Grid.Size()
	gridCenter := util.Vector3{float64(w), float64(h), float64(d)}.Mul(0.5)
	reach := s.Grid.Diagonal() + eye.Sub(gridCenter).Len()
	selection := s.Selection

	renderRow := func(y int) {
		hits := 0
		for x := 0; x < width; x++ {
			direction := viewport.Direction(x, y)
			length := direction.Len()
			if length == 0 {
				continue
			}
			hit, ok := util.CastRay(util.Ray{Origin: eye, Direction: direction}, reach/length, s.Grid)
			if !ok {
				continue
			}
			hits++
			surface.DrawStyledDepth(x, y, r.shade(hit, selection, s.Texture), hit.Distance*length)
		}
		s.Metrics.ObserveRays(width, hits)
	}

	if r.pool == nil {
		for y := 0; y < height; y++ {
			renderRow(y)
		}
	} else {
		var wg sync.WaitGroup
		for y := 0; y < height; y++ {
			row := y
			wg.Add(1)
			r.pool.Submit(func() {
				defer wg.Done()
				renderRow(row)
			})
		}
		wg.Wait()
	}

	r.drawOverlay(surface, s)
}

var sideLight = map[util.CubeSide]float64{
	util.TopSide:    1.0,
	util.BottomSide: 0.45,
	util.LeftSide:   0.8,
	util.RightSide:  0.8,
	util.FrontSide:  0.65,
	util.BackSide:   0.65,
}

var sideColor = map[util.CubeSide]term.Color{
	util.TopSide:    term.Green,
	util.BottomSide: term.Blue,
	util.LeftSide:   term.Yellow,
	util.RightSide:  term.Yellow,
	util.FrontSide:  term.Cyan,
	util.BackSide:   term.Cyan,
}

var sideGlyph = map[util.CubeSide]rune{
	util.TopSide:    '#',
	util.BottomSide: '=',
	util.LeftSide:   '%',
	util.RightSide:  '%',
	util.FrontSide:  '+',
	util.BackSide:   '+',
}

// shade picks the style for one struck cell.
func (r *Renderer) shade(hit util.Hit, selection Selection, sampler texture.Sampler) term.Style {
	onEdge := util.IsNearCellEdge(hit.Point, r.borderWidth)
	side := hit.Side()

	style := term.Style{Glyph: faceGlyph}
	switch r.mode {
	case ModeShaded:
		style.Glyph = sideGlyph[side]
		style.Fg = sideColor[side]
	case ModeTextured:
		u, v := util.FaceUV(hit)
		style.Glyph = ' '
		style.Bg = term.FromRGBA(texture.Shade(sampler.Sample(u, v), sideLight[side]))
		style.Fg = term.Black
	}
	if onEdge {
		style.Glyph = borderGlyph
	}

	if selection.Contains(hit) {
		style.Fg = r.selectionColor
		if r.mode == ModeTextured && !onEdge {
			style.Glyph = '+'
		}
		if !selection.IsSelectedFace(hit) {
			style.Dim = true
		}
	}
	return style
}

func (r *Renderer) drawOverlay(surface *term.Surface, s *Session) {
	surface.SaveContext()
	defer surface.RestoreContext()
	surface.SetDim(false)
	surface.ResetBackground()
	surface.SetForeground(term.White)
	surface.SetDepth(0)

	if r.crosshair {
		surface.SetGlyph('+')
		surface.DrawPoint(surface.Width()/2, surface.Height()/2)
	}
	if r.hud && surface.Height() > 3 {
		p := s.Player
		surface.ResetForeground()
		surface.DrawText(0, surface.Height()-1, "pos %.1f %.1f %.1f | %s | %s | sel %s | blocks %d",
			p.Position.X(), p.Position.Y(), p.Position.Z(), p.State, p.View, s.Selection, s.Grid.Count())
	}
}
