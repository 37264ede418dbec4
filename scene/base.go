package scene

import (
	"fmt"

	"stickerpad/element"
	"stickerpad/units"
)

type Kind int

const (
	KindRect Kind = iota
	KindLine
	KindText
	// KindPlaceholder marks an area whose content (QR symbol, bitmap) is
	// produced asynchronously by the renderer.
	KindPlaceholder
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	case KindText:
		return "text"
	case KindPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Primitive is one piece of an element's base geometry, relative to the
// element's top-left corner in logical pixels. Lines run from (X,Y) to
// (X+W, Y+H).
type Primitive struct {
	Kind Kind
	X, Y float64
	W, H float64
	Text string
}

// qrVersionModules is the module count of the smallest QR symbol, used to
// size the quiet zone of the placeholder.
const qrVersionModules = 21

type baseBuilder struct {
	prims []Primitive
	key   string
}

func (b *baseBuilder) VisitQR(q *element.QR) {
	w, h := units.MmToPx(q.BaseWidth), units.MmToPx(q.BaseHeight)
	total := float64(qrVersionModules + 2*q.QuietZone)
	qx, qy := w*float64(q.QuietZone)/total, h*float64(q.QuietZone)/total
	b.prims = []Primitive{
		{Kind: KindRect, W: w, H: h},
		{Kind: KindPlaceholder, X: qx, Y: qy, W: w - 2*qx, H: h - 2*qy, Text: q.DataBinding},
	}
	b.key = fmt.Sprintf("qr|%v|%v|%d|%s", q.BaseWidth, q.BaseHeight, q.QuietZone, q.DataBinding)
}

func (b *baseBuilder) VisitText(t *element.Text) {
	label := t.Display()
	if t.DataBinding != "" {
		label = "{" + t.DataBinding + "}"
	}
	w, h := units.MmToPx(t.BaseWidth), units.MmToPx(t.BaseHeight)
	b.prims = []Primitive{{Kind: KindText, W: w, H: h, Text: label}}
	b.key = fmt.Sprintf("text|%v|%v|%s", t.BaseWidth, t.BaseHeight, label)
}

func (b *baseBuilder) VisitImage(i *element.Image) {
	w, h := units.MmToPx(i.BaseWidth), units.MmToPx(i.BaseHeight)
	b.prims = []Primitive{
		{Kind: KindRect, W: w, H: h},
		{Kind: KindPlaceholder, W: w, H: h, Text: i.AssetName},
	}
	if i.Src == "" && i.AssetID == "" {
		b.prims = append(b.prims,
			Primitive{Kind: KindLine, W: w, H: h},
			Primitive{Kind: KindLine, Y: h, W: w, H: -h},
		)
	}
	b.key = fmt.Sprintf("image|%v|%v|%s|%s|%s", i.BaseWidth, i.BaseHeight, i.AssetID, i.AssetName, i.Src)
}

func (b *baseBuilder) VisitRect(r *element.Rect) {
	w, h := units.MmToPx(r.BaseWidth), units.MmToPx(r.BaseHeight)
	b.prims = []Primitive{{Kind: KindRect, W: w, H: h}}
	b.key = fmt.Sprintf("rect|%v|%v", r.BaseWidth, r.BaseHeight)
}

func (b *baseBuilder) VisitLine(l *element.Line) {
	w, h := units.MmToPx(l.BaseWidth), units.MmToPx(l.BaseHeight)
	b.prims = []Primitive{{Kind: KindLine, Y: h / 2, W: w}}
	b.key = fmt.Sprintf("line|%v|%v", l.BaseWidth, l.BaseHeight)
}

// BaseGeometry returns the unscaled geometry of el.
func BaseGeometry(el element.Element) []Primitive {
	b := &baseBuilder{}
	el.Accept(b)
	return b.prims
}

func baseKey(el element.Element) string {
	b := &baseBuilder{}
	el.Accept(b)
	return b.key
}

// Scale returns base scaled by (sx, sy). base is not modified.
func Scale(base []Primitive, sx, sy float64) []Primitive {
	out := make([]Primitive, len(base))
	for i, p := range base {
		out[i] = Primitive{Kind: p.Kind, X: p.X * sx, Y: p.Y * sy, W: p.W * sx, H: p.H * sy, Text: p.Text}
	}
	return out
}
