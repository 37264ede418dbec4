// Package scene is the contract between the designer and whatever draws the
// elements. Visuals are a disposable cache: the element is always the source
// of truth, and a visual's bounds are copied back into it when a modification
// is confirmed.
package scene

import (
	"stickerpad/element"
	"stickerpad/units"
)

// The page boundary is fixed at the logical origin.
const (
	OriginX = 0.0
	OriginY = 0.0
)

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Visual is a rendering object created for one element.
type Visual interface {
	ID() string
	Bounds() Rect
	SetBounds(Rect)
	Angle() float64
	SetInteractive(bool)
}

// Shaper is implemented by visuals that draw the element's base geometry.
// The cache hands them the shared base and the current scale.
type Shaper interface {
	SetShape(base []Primitive, scaleX, scaleY float64)
}

// Factory materializes visuals. originX and originY locate the page origin in
// logical pixels.
type Factory interface {
	CreateVisual(el element.Element, originX, originY float64) Visual
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(el element.Element, originX, originY float64) Visual

func (f FactoryFunc) CreateVisual(el element.Element, originX, originY float64) Visual {
	return f(el, originX, originY)
}

// Placement returns where el sits in logical pixels.
func Placement(el element.Element, originX, originY float64) Rect {
	g := el.Base().Geometry
	return Rect{
		X:      originX + units.MmToPx(g.X),
		Y:      originY + units.MmToPx(g.Y),
		Width:  units.MmToPx(g.Width()),
		Height: units.MmToPx(g.Height()),
	}
}

// Unplace converts visual bounds back into page millimeters.
func Unplace(r Rect, originX, originY float64) (x, y, width, height float64) {
	return units.PxToMm(r.X - originX), units.PxToMm(r.Y - originY), units.PxToMm(r.Width), units.PxToMm(r.Height)
}
