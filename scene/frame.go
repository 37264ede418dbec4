package scene

import (
	"stickerpad/element"
)

// Frame is a renderer-independent visual: it only tracks bounds, angle,
// interactivity and the scaled geometry. It is the default when the host
// supplies no factory.
type Frame struct {
	id          string
	bounds      Rect
	angle       float64
	interactive bool
	base        []Primitive
	scaleX      float64
	scaleY      float64
}

func NewFrame(el element.Element, originX, originY float64) Visual {
	return &Frame{
		id:          el.Base().ID,
		bounds:      Placement(el, originX, originY),
		angle:       el.Base().Rotation,
		interactive: true,
		scaleX:      1,
		scaleY:      1,
	}
}

func (f *Frame) ID() string            { return f.id }
func (f *Frame) Bounds() Rect          { return f.bounds }
func (f *Frame) SetBounds(r Rect)      { f.bounds = r }
func (f *Frame) Angle() float64        { return f.angle }
func (f *Frame) SetInteractive(b bool) { f.interactive = b }
func (f *Frame) Interactive() bool     { return f.interactive }

func (f *Frame) SetShape(base []Primitive, scaleX, scaleY float64) {
	f.base = base
	f.scaleX, f.scaleY = scaleX, scaleY
}

// Primitives returns the base geometry at the visual's scale.
func (f *Frame) Primitives() []Primitive {
	return Scale(f.base, f.scaleX, f.scaleY)
}
