package designer

import (
	"math"
	"strings"

	"stickerpad/element"
	"stickerpad/scene"
	"stickerpad/units"
)

// ClickThreshold is the pointer travel, in device pixels, below which a
// secondary-button gesture counts as a click.
const ClickThreshold = 5.0

// Wheel zoom factors per tick.
const (
	WheelZoomIn  = 1.1
	WheelZoomOut = 0.9
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// PointerEvent is a pointer position in device pixels.
type PointerEvent struct {
	X, Y   float64
	Button Button
}

// KeyEvent is a key press. Key is a key name such as "z", "Delete" or
// "Escape". Editing is set while a text input has focus.
type KeyEvent struct {
	Key     string
	Ctrl    bool
	Meta    bool
	Shift   bool
	Editing bool
}

type gestureKind int

const (
	gestureNone gestureKind = iota
	gesturePan
	gestureRightPan
	gestureDrag
)

type gesture struct {
	kind         gestureKind
	lastX, lastY float64
	travel       float64
	saved        string
	id           string
	offX, offY   float64
}

// PointerDown starts a gesture. The secondary button always pans. The
// primary button pans in the pan tool and otherwise selects and drags the
// topmost element under the pointer.
func (d *Designer) PointerDown(ev PointerEvent) {
	d.gesture = gesture{lastX: ev.X, lastY: ev.Y}
	if ev.Button == ButtonSecondary {
		d.gesture.kind = gestureRightPan
		d.gesture.saved = d.selected
		d.Deselect()
		return
	}
	if d.tool == ToolPan {
		d.gesture.kind = gesturePan
		return
	}

	lx, ly := d.view.ToLogical(ev.X, ev.Y)
	el := d.hit(units.PxToMm(lx-scene.OriginX), units.PxToMm(ly-scene.OriginY))
	if el == nil {
		d.Deselect()
		return
	}
	d.Select(el.Base().ID)
	v := d.cache.Visual(el.Base().ID)
	if v == nil {
		return
	}
	b := v.Bounds()
	d.gesture.kind = gestureDrag
	d.gesture.id = el.Base().ID
	d.gesture.offX, d.gesture.offY = lx-b.X, ly-b.Y
}

// hit returns the topmost element containing the page point (mm).
func (d *Designer) hit(x, y float64) element.Element {
	els := d.doc.Elements()
	for i := len(els) - 1; i >= 0; i-- {
		if els[i].Base().Contains(x, y) {
			return els[i]
		}
	}
	return nil
}

func (d *Designer) PointerMove(ev PointerEvent) {
	g := &d.gesture
	dx, dy := ev.X-g.lastX, ev.Y-g.lastY
	g.lastX, g.lastY = ev.X, ev.Y
	if dx == 0 && dy == 0 {
		return
	}

	switch g.kind {
	case gesturePan, gestureRightPan:
		g.travel += math.Hypot(dx, dy)
		d.view.PanBy(dx, dy)
	case gestureDrag:
		v := d.cache.Visual(g.id)
		if v == nil {
			return
		}
		lx, ly := d.view.ToLogical(ev.X, ev.Y)
		x, y := d.grid.Snap(lx-g.offX, ly-g.offY)
		b := v.Bounds()
		b.X, b.Y = x, y
		v.SetBounds(b)
	}
}

// PointerUp ends the gesture. For a secondary-button gesture the selection
// is restored and the result reports whether the context menu may open,
// which is the case only when the pointer barely moved.
func (d *Designer) PointerUp(ev PointerEvent) bool {
	d.PointerMove(ev)
	g := d.gesture
	d.gesture = gesture{}

	switch g.kind {
	case gestureRightPan:
		if g.saved != "" {
			d.Select(g.saved)
		}
		return g.travel < ClickThreshold
	case gestureDrag:
		d.ObjectModified(g.id)
	}
	return false
}

// ObjectModified copies the visual's bounds back into its element and
// records the change. It reports whether the element changed.
func (d *Designer) ObjectModified(id string) bool {
	el := d.doc.Get(id)
	v := d.cache.Visual(id)
	if el == nil || v == nil {
		return false
	}
	x, y, w, h := scene.Unplace(v.Bounds(), scene.OriginX, scene.OriginY)
	c := el.Base()
	const eps = 1e-9
	if math.Abs(x-c.X) < eps && math.Abs(y-c.Y) < eps &&
		math.Abs(w-c.Width()) < eps && math.Abs(h-c.Height()) < eps {
		return false
	}
	p := element.Patch{X: &x, Y: &y}
	if math.Abs(w-c.Width()) >= eps {
		p.Width = &w
	}
	if math.Abs(h-c.Height()) >= eps {
		p.Height = &h
	}
	element.Apply(el, p)
	d.refresh(el)
	d.saveState()
	d.notifyElements()
	return true
}

// Wheel zooms about the pointer. Negative deltaY (wheel up) zooms in.
func (d *Designer) Wheel(x, y, deltaY float64) {
	switch {
	case deltaY < 0:
		d.view.ZoomAt(d.view.Zoom()*WheelZoomIn, x, y)
	case deltaY > 0:
		d.view.ZoomAt(d.view.Zoom()*WheelZoomOut, x, y)
	}
}

// HandleKey runs the shortcut bound to ev. It reports whether the key was
// consumed. Keys are ignored while a text input has focus.
func (d *Designer) HandleKey(ev KeyEvent) bool {
	if ev.Editing {
		return false
	}
	key := strings.ToLower(ev.Key)
	if ev.Ctrl || ev.Meta {
		switch key {
		case "z":
			if ev.Shift {
				d.Redo()
			} else {
				d.Undo()
			}
		case "y":
			d.Redo()
		case "c":
			d.Copy()
		case "v":
			d.Paste()
		case "d":
			d.Duplicate()
		default:
			return false
		}
		return true
	}

	switch key {
	case "delete", "backspace":
		d.RemoveSelected()
	case "escape", "esc":
		d.Deselect()
	case "h":
		if d.tool == ToolPan {
			d.SetTool(ToolSelect)
		} else {
			d.SetTool(ToolPan)
		}
	default:
		return false
	}
	return true
}
