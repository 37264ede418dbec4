// Package designer is the document controller behind the template editor.
//
// A Designer owns one document, its viewport, the single selection, the tool
// mode, the clipboard and the undo history. Every mutation goes through it.
// It is not safe for concurrent use: hosts call it from their event loop.
package designer

import (
	"bytes"
	"log/slog"

	"stickerpad/document"
	"stickerpad/element"
	"stickerpad/history"
	"stickerpad/scene"
	"stickerpad/units"
	"stickerpad/viewport"
)

// Default page size in millimeters.
const (
	DefaultPageWidth  = 100.0
	DefaultPageHeight = 50.0
)

// PasteOffset is how far a pasted element lands from its source, in mm.
const PasteOffset = 5.0

type Tool int

const (
	ToolSelect Tool = iota
	ToolPan
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPan:
		return "pan"
	default:
		return "unknown"
	}
}

// Cursor affordances reported by Designer.Cursor.
const (
	CursorDefault  = "default"
	CursorGrab     = "grab"
	CursorGrabbing = "grabbing"
)

// Surface is the hosting area the viewport is drawn into.
type Surface interface {
	ContainerSize() (width, height float64)
}

// Point is a position in millimeters relative to the page origin.
type Point struct {
	X, Y float64
}

type Designer struct {
	doc       *document.Document
	view      *viewport.Viewport
	history   *history.Manager
	cache     *scene.Cache
	grid      viewport.Grid
	clipboard Clipboard
	surface   Surface
	factory   scene.Factory
	logger    *slog.Logger

	pageWidth    float64
	pageHeight   float64
	historySteps int

	selected  string
	tool      Tool
	restoring bool
	clean     []byte
	gesture   gesture

	onSelection []func(element.Element)
	onElements  []func()
	onTool      []func(Tool)
}

// New returns a Designer with an empty document. The initial empty state is
// recorded so the first undo has a target. surface may be nil until the host
// has a size; call Resize once it does.
func New(surface Surface, opts ...Option) *Designer {
	d := &Designer{
		surface:    surface,
		grid:       viewport.DefaultGrid(),
		clipboard:  &memoryClipboard{},
		logger:     slog.New(slog.DiscardHandler),
		pageWidth:  DefaultPageWidth,
		pageHeight: DefaultPageHeight,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.doc = document.New(d.pageWidth, d.pageHeight)
	d.view = viewport.New(units.MmToPx(d.pageWidth), units.MmToPx(d.pageHeight))
	d.history = history.New(d.historySteps)
	d.cache = scene.NewCache(d.factory)
	d.Resize()
	d.saveState()
	d.clean = d.snapshot()
	return d
}

func (d *Designer) OnSelectionChange(fn func(element.Element)) {
	d.onSelection = append(d.onSelection, fn)
}

func (d *Designer) OnElementsChange(fn func()) {
	d.onElements = append(d.onElements, fn)
}

func (d *Designer) OnToolChange(fn func(Tool)) {
	d.onTool = append(d.onTool, fn)
}

func (d *Designer) notifySelection() {
	el := d.Selected()
	for _, fn := range d.onSelection {
		fn(el)
	}
}

func (d *Designer) notifyElements() {
	for _, fn := range d.onElements {
		fn()
	}
}

func (d *Designer) notifyTool() {
	for _, fn := range d.onTool {
		fn(d.tool)
	}
}

// Document returns the live document. Callers must not mutate it directly.
func (d *Designer) Document() *document.Document {
	return d.doc
}

func (d *Designer) Viewport() *viewport.Viewport {
	return d.view
}

func (d *Designer) Grid() viewport.Grid {
	return d.grid
}

func (d *Designer) Elements() []element.Element {
	return d.doc.Elements()
}

func (d *Designer) Element(id string) element.Element {
	return d.doc.Get(id)
}

// Visual returns the current visual of the element with id, or nil.
func (d *Designer) Visual(id string) scene.Visual {
	return d.cache.Visual(id)
}

// Visuals returns the visuals bottom to top.
func (d *Designer) Visuals() []scene.Visual {
	out := make([]scene.Visual, 0, d.doc.Len())
	for _, el := range d.doc.Elements() {
		if v := d.cache.Visual(el.Base().ID); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// Selected returns the selected element or nil.
func (d *Designer) Selected() element.Element {
	if d.selected == "" {
		return nil
	}
	return d.doc.Get(d.selected)
}

// Select makes id the active element. Selection is disabled in the pan tool.
func (d *Designer) Select(id string) bool {
	if d.tool == ToolPan || d.doc.Get(id) == nil {
		return false
	}
	if d.selected != id {
		d.selected = id
		d.notifySelection()
	}
	return true
}

func (d *Designer) Deselect() {
	if d.selected == "" {
		return
	}
	d.selected = ""
	d.notifySelection()
}

func (d *Designer) Tool() Tool {
	return d.tool
}

// SetTool switches between select and pan. Entering pan drops the selection
// and makes visuals non-interactive; leaving it restores interactivity.
func (d *Designer) SetTool(t Tool) {
	if t == d.tool || (t != ToolSelect && t != ToolPan) {
		return
	}
	d.tool = t
	if t == ToolPan {
		d.Deselect()
		d.cache.SetInteractive(false)
	} else {
		d.cache.SetInteractive(true)
	}
	d.logger.Debug("tool changed", slog.String("tool", t.String()))
	d.notifyTool()
}

// Cursor returns the pointer affordance for the current state.
func (d *Designer) Cursor() string {
	switch {
	case d.gesture.kind == gesturePan || d.gesture.kind == gestureRightPan:
		return CursorGrabbing
	case d.tool == ToolPan:
		return CursorGrab
	default:
		return CursorDefault
	}
}

func (d *Designer) SetSnapToGrid(on bool) {
	d.grid.Enabled = on
}

// SetGridSpacing sets the snap spacing in millimeters. Non-positive values
// are ignored.
func (d *Designer) SetGridSpacing(mm float64) {
	if mm > 0 {
		d.grid.SpacingMm = mm
	}
}

// Dirty reports whether the document differs from the last saved or loaded
// state.
func (d *Designer) Dirty() bool {
	return !bytes.Equal(d.snapshot(), d.clean)
}

func (d *Designer) CanUndo() bool {
	return d.history.CanUndo()
}

func (d *Designer) CanRedo() bool {
	return d.history.CanRedo()
}

// Resize re-reads the container size from the surface and resets the view.
func (d *Designer) Resize() {
	if d.surface == nil {
		return
	}
	w, h := d.surface.ContainerSize()
	d.view.SetContainer(w, h)
	d.view.Reset()
}

func (d *Designer) Pan(dx, dy float64) {
	d.view.PanBy(dx, dy)
}

func (d *Designer) SetZoom(zoom float64) {
	d.view.SetZoom(zoom)
}

func (d *Designer) ZoomIn() {
	d.view.ZoomIn()
}

func (d *Designer) ZoomOut() {
	d.view.ZoomOut()
}

func (d *Designer) ResetView() {
	d.view.Reset()
}

func (d *Designer) ZoomToFit() {
	d.view.ZoomToFit()
}
