package main

import (
	"math"
	"strings"

	"stickerpad/designer"
	"stickerpad/element"
	"stickerpad/scene"
)

// cellVisual is the terminal rendering of one element. It keeps the shared
// base geometry and the element scale handed over by the scene cache, and is
// drawn into a rune grid by renderCanvas.
type cellVisual struct {
	id          string
	kind        element.Type
	bounds      scene.Rect
	angle       float64
	interactive bool
	base        []scene.Primitive
	scaleX      float64
	scaleY      float64
}

func newCellVisual(el element.Element, originX, originY float64) scene.Visual {
	return &cellVisual{
		id:          el.Base().ID,
		kind:        el.Type(),
		bounds:      scene.Placement(el, originX, originY),
		angle:       el.Base().Rotation,
		interactive: true,
		scaleX:      1,
		scaleY:      1,
	}
}

func (v *cellVisual) ID() string            { return v.id }
func (v *cellVisual) Bounds() scene.Rect    { return v.bounds }
func (v *cellVisual) SetBounds(r scene.Rect) { v.bounds = r }
func (v *cellVisual) Angle() float64        { return v.angle }
func (v *cellVisual) SetInteractive(b bool) { v.interactive = b }

func (v *cellVisual) SetShape(base []scene.Primitive, scaleX, scaleY float64) {
	v.base = base
	v.scaleX, v.scaleY = scaleX, scaleY
}

// primitives returns the scaled geometry relative to the visual's corner.
func (v *cellVisual) primitives() []scene.Primitive {
	return scene.Scale(v.base, v.scaleX, v.scaleY)
}

type grid [][]rune

func newGrid(cols, rows int) grid {
	g := make(grid, max(rows, 0))
	for y := range g {
		g[y] = []rune(strings.Repeat(" ", max(cols, 0)))
	}
	return g
}

func (g grid) set(x, y int, r rune) {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return
	}
	g[y][x] = r
}

func (g grid) lines() []string {
	out := make([]string, len(g))
	for i, row := range g {
		out[i] = string(row)
	}
	return out
}

// cellAt maps a logical point to the terminal cell under it.
func cellAt(d *designer.Designer, x, y float64) (int, int) {
	sx, sy := d.Viewport().ToScreen(x, y)
	return int(math.Floor(sx / charWidth)), int(math.Floor(sy / charHeight))
}

// renderCanvas draws the page boundary and every visual, bottom to top.
func renderCanvas(d *designer.Designer, cols, rows int) []string {
	g := newGrid(cols, rows)

	w, h := d.Viewport().DocumentSize()
	x0, y0 := cellAt(d, scene.OriginX, scene.OriginY)
	x1, y1 := cellAt(d, scene.OriginX+w, scene.OriginY+h)
	g.drawFrame(x0, y0, x1, y1, '┈', '┊', '·')

	selected := ""
	if el := d.Selected(); el != nil {
		selected = el.Base().ID
	}
	for _, v := range d.Visuals() {
		b := v.Bounds()
		cv, ok := v.(*cellVisual)
		if !ok {
			bx0, by0 := cellAt(d, b.X, b.Y)
			bx1, by1 := cellAt(d, b.X+b.Width, b.Y+b.Height)
			g.drawBox(bx0, by0, bx1, by1)
			continue
		}
		g.drawVisual(d, cv)
		if cv.id == selected {
			bx0, by0 := cellAt(d, b.X, b.Y)
			bx1, by1 := cellAt(d, b.X+b.Width, b.Y+b.Height)
			g.drawFrame(bx0, by0, bx1, by1, '#', '#', '#')
		}
	}
	return g.lines()
}

func (g grid) drawVisual(d *designer.Designer, v *cellVisual) {
	for _, p := range v.primitives() {
		px, py := v.bounds.X+p.X, v.bounds.Y+p.Y
		x0, y0 := cellAt(d, px, py)
		x1, y1 := cellAt(d, px+p.W, py+p.H)
		switch p.Kind {
		case scene.KindRect:
			g.drawBox(x0, y0, x1, y1)
		case scene.KindLine:
			g.drawLine(x0, y0, x1, y1)
		case scene.KindText:
			g.drawLabel(x0, y0, x1, y1, p.Text, false)
		case scene.KindPlaceholder:
			g.fill(x0+1, y0+1, x1-1, y1-1, '░')
			g.drawLabel(x0+1, y0, x1-1, y1, p.Text, true)
		}
	}
}

func (g grid) drawBox(x0, y0, x1, y1 int) {
	g.drawFrame(x0, y0, x1, y1, '─', '│', 0)
}

// drawFrame outlines the cell rectangle. A zero corner rune uses box-drawing
// corners.
func (g grid) drawFrame(x0, y0, x1, y1 int, horiz, vert, corner rune) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for x := x0; x <= x1; x++ {
		g.set(x, y0, horiz)
		g.set(x, y1, horiz)
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, vert)
		g.set(x1, y, vert)
	}
	if x0 == x1 || y0 == y1 {
		return
	}
	if corner != 0 {
		g.set(x0, y0, corner)
		g.set(x1, y0, corner)
		g.set(x0, y1, corner)
		g.set(x1, y1, corner)
		return
	}
	g.set(x0, y0, '┌')
	g.set(x1, y0, '┐')
	g.set(x0, y1, '└')
	g.set(x1, y1, '┘')
}

func (g grid) drawLine(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	r := '─'
	switch {
	case dx == 0 && dy != 0:
		r = '│'
	case dx != 0 && dy != 0 && (dx > 0) == (dy > 0):
		r = '╲'
	case dx != 0 && dy != 0:
		r = '╱'
	}
	n := max(abs(dx), abs(dy))
	if n == 0 {
		g.set(x0, y0, r)
		return
	}
	for i := 0; i <= n; i++ {
		x := x0 + int(math.Round(float64(dx*i)/float64(n)))
		y := y0 + int(math.Round(float64(dy*i)/float64(n)))
		g.set(x, y, r)
	}
}

func (g grid) fill(x0, y0, x1, y1 int, r rune) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.set(x, y, r)
		}
	}
}

// drawLabel writes text on the middle row of the cell rectangle, clipped to
// its width.
func (g grid) drawLabel(x0, y0, x1, y1 int, text string, centered bool) {
	if text == "" || x1 < x0 {
		return
	}
	runes := []rune(strings.ReplaceAll(text, "\n", " "))
	width := x1 - x0 + 1
	if len(runes) > width {
		runes = runes[:width]
	}
	x := x0
	if centered {
		x += (width - len(runes)) / 2
	}
	y := (y0 + y1) / 2
	for i, r := range runes {
		g.set(x+i, y, r)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
