// Package element defines the closed set of sticker template elements.
//
// Every element stores an immutable base size plus a multiplicative scale.
// Resizing only recomputes the scale, so the visual of an element is always
// its base geometry scaled by (ScaleX, ScaleY) and repeated edits never
// regenerate geometry at the current size.
package element

import (
	"errors"
	"fmt"
	"math"
)

// DefaultBinding is the data source a new QR code is bound to.
const DefaultBinding = "device.Serial"

var ErrUnknownType = errors.New("unknown element type")

// Element is implemented only by the variants in this package.
type Element interface {
	Type() Type
	Base() *Common
	Clone() Element
	Accept(v Visitor)
	apply(p Patch)
}

// Visitor handles every element variant. Adding a variant adds a method here,
// which breaks every implementation until it handles the new case.
type Visitor interface {
	VisitQR(*QR)
	VisitText(*Text)
	VisitImage(*Image)
	VisitRect(*Rect)
	VisitLine(*Line)
}

// Geometry positions an element in millimeters relative to the page origin.
type Geometry struct {
	X          float64
	Y          float64
	BaseWidth  float64
	BaseHeight float64
	ScaleX     float64
	ScaleY     float64
	Rotation   float64
}

func (g Geometry) Width() float64 {
	return g.BaseWidth * g.ScaleX
}

func (g Geometry) Height() float64 {
	return g.BaseHeight * g.ScaleY
}

// Resize changes the rendered size by recomputing the scale. The base size is
// never touched. Non-positive sizes are ignored.
func (g *Geometry) Resize(width, height float64) {
	if g.BaseWidth > 0 && width > 0 && finite(width) {
		g.ScaleX = width / g.BaseWidth
	}
	if g.BaseHeight > 0 && height > 0 && finite(height) {
		g.ScaleY = height / g.BaseHeight
	}
}

// Contains reports whether the point (mm) lies inside the unrotated bounds.
func (g Geometry) Contains(x, y float64) bool {
	return x >= g.X && x <= g.X+g.Width() && y >= g.Y && y <= g.Y+g.Height()
}

// Valid reports whether the geometry can be scaled and rendered.
func (g Geometry) Valid() bool {
	for _, v := range []float64{g.X, g.Y, g.BaseWidth, g.BaseHeight, g.ScaleX, g.ScaleY, g.Rotation} {
		if !finite(v) {
			return false
		}
	}
	return g.BaseWidth > 0 && g.BaseHeight > 0 && g.ScaleX > 0 && g.ScaleY > 0
}

// Common holds the fields shared by all variants. Rect and Line never carry a
// data binding.
type Common struct {
	ID          string
	DataBinding string
	Geometry
}

func (c *Common) Base() *Common {
	return c
}

func (c *Common) apply(p Patch) {
	if p.X != nil && finite(*p.X) {
		c.X = *p.X
	}
	if p.Y != nil && finite(*p.Y) {
		c.Y = *p.Y
	}
	if p.Width != nil || p.Height != nil {
		w, h := c.Width(), c.Height()
		if p.Width != nil {
			w = *p.Width
		}
		if p.Height != nil {
			h = *p.Height
		}
		c.Resize(w, h)
	}
	if p.Rotation != nil && finite(*p.Rotation) {
		c.Rotation = *p.Rotation
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func newCommon(x, y, width, height float64) Common {
	return Common{
		ID: NewID(),
		Geometry: Geometry{
			X:          x,
			Y:          y,
			BaseWidth:  width,
			BaseHeight: height,
			ScaleX:     1,
			ScaleY:     1,
		},
	}
}

type QR struct {
	Common
	ECCLevel  ECCLevel
	QuietZone int
}

func (q *QR) Type() Type       { return TypeQR }
func (q *QR) Accept(v Visitor) { v.VisitQR(q) }

func (q *QR) Clone() Element {
	c := *q
	return &c
}

func (q *QR) apply(p Patch) {
	q.Common.apply(p)
	if p.DataBinding != nil {
		q.DataBinding = *p.DataBinding
	}
	if p.ECCLevel != nil && p.ECCLevel.Valid() {
		q.ECCLevel = *p.ECCLevel
	}
	if p.QuietZone != nil && *p.QuietZone >= 0 {
		q.QuietZone = *p.QuietZone
	}
}

type Text struct {
	Common
	Text       string
	FontFamily string
	FontSize   float64
	FontWeight string
	Fill       string
	MaxLength  *int
	Overflow   Overflow
}

func (t *Text) Type() Type       { return TypeText }
func (t *Text) Accept(v Visitor) { v.VisitText(t) }

func (t *Text) Clone() Element {
	c := *t
	if t.MaxLength != nil {
		n := *t.MaxLength
		c.MaxLength = &n
	}
	return &c
}

// Display returns the text as it should be rendered, truncated to MaxLength
// when overflow is truncate.
func (t *Text) Display() string {
	if t.MaxLength == nil || *t.MaxLength < 0 || t.Overflow != OverflowTruncate {
		return t.Text
	}
	r := []rune(t.Text)
	if len(r) <= *t.MaxLength {
		return t.Text
	}
	return string(r[:*t.MaxLength])
}

func (t *Text) apply(p Patch) {
	t.Common.apply(p)
	if p.DataBinding != nil {
		t.DataBinding = *p.DataBinding
	}
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil && *p.FontSize > 0 {
		t.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		t.FontWeight = *p.FontWeight
	}
	if p.Fill != nil {
		t.Fill = *p.Fill
	}
	if p.ClearMaxLength {
		t.MaxLength = nil
	} else if p.MaxLength != nil && *p.MaxLength >= 0 {
		n := *p.MaxLength
		t.MaxLength = &n
	}
	if p.Overflow != nil && p.Overflow.Valid() {
		t.Overflow = *p.Overflow
	}
}

type Image struct {
	Common
	AspectRatio Fit
	AssetID     string
	AssetName   string
	Src         string
}

func (i *Image) Type() Type       { return TypeImage }
func (i *Image) Accept(v Visitor) { v.VisitImage(i) }

func (i *Image) Clone() Element {
	c := *i
	return &c
}

func (i *Image) apply(p Patch) {
	i.Common.apply(p)
	if p.DataBinding != nil {
		i.DataBinding = *p.DataBinding
	}
	if p.AspectRatio != nil && p.AspectRatio.Valid() {
		i.AspectRatio = *p.AspectRatio
	}
	if p.AssetID != nil {
		i.AssetID = *p.AssetID
	}
	if p.AssetName != nil {
		i.AssetName = *p.AssetName
	}
	if p.Src != nil {
		i.Src = *p.Src
	}
}

// Paint is the fill and stroke of a shape.
type Paint struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
}

func (s *Paint) apply(p Patch) {
	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil && *p.StrokeWidth >= 0 {
		s.StrokeWidth = *p.StrokeWidth
	}
}

type Rect struct {
	Common
	Paint
}

func (r *Rect) Type() Type       { return TypeRect }
func (r *Rect) Accept(v Visitor) { v.VisitRect(r) }

func (r *Rect) Clone() Element {
	c := *r
	return &c
}

func (r *Rect) apply(p Patch) {
	r.Common.apply(p)
	r.Paint.apply(p)
}

type Line struct {
	Common
	Paint
}

func (l *Line) Type() Type       { return TypeLine }
func (l *Line) Accept(v Visitor) { v.VisitLine(l) }

func (l *Line) Clone() Element {
	c := *l
	return &c
}

func (l *Line) apply(p Patch) {
	l.Common.apply(p)
	l.Paint.apply(p)
}

// New builds an element of type t with the variant defaults at (x, y) mm.
func New(t Type, x, y float64) (Element, error) {
	switch t {
	case TypeQR:
		q := &QR{Common: newCommon(x, y, 20, 20), ECCLevel: ECCQuartile, QuietZone: 2}
		q.DataBinding = DefaultBinding
		return q, nil
	case TypeText:
		return &Text{
			Common:     newCommon(x, y, 40, 10),
			Text:       "Text",
			FontFamily: "Arial",
			FontSize:   12,
			FontWeight: "normal",
			Fill:       "#000000",
			Overflow:   OverflowTruncate,
		}, nil
	case TypeImage:
		return &Image{Common: newCommon(x, y, 30, 30), AspectRatio: FitContain}, nil
	case TypeRect:
		return &Rect{
			Common: newCommon(x, y, 30, 20),
			Paint:  Paint{Fill: "transparent", Stroke: "#000000", StrokeWidth: 1},
		}, nil
	case TypeLine:
		return &Line{
			Common: newCommon(x, y, 40, 1),
			Paint:  Paint{Stroke: "#000000", StrokeWidth: 1},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
}

// Apply merges a partial update into el. Fields that do not belong to the
// variant are ignored.
func Apply(el Element, p Patch) {
	el.apply(p)
}
