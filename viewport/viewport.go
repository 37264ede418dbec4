// Package viewport maps the logical page space onto the device surface.
//
// The page boundary sits at logical (0,0) and never moves. Zoom and pan are
// the only state, so element coordinates are never rewritten when the view
// changes:
//
//	screen = logical*zoom + pan
package viewport

import (
	"math"

	"github.com/samber/lo"
)

const (
	MinZoom = 0.1
	MaxZoom = 5.0

	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.2

	// MinVisibleFraction of the page that must stay inside the container.
	MinVisibleFraction = 0.1

	// FitMargin is the share of the container the page fills after ZoomToFit.
	FitMargin = 0.9
)

// Limits is the allowed pan range at the current zoom.
type Limits struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

type Viewport struct {
	zoom            float64
	panX, panY      float64
	containerWidth  float64
	containerHeight float64
	docWidth        float64
	docHeight       float64
}

// New returns a viewport at zoom 1 for a page of the given logical size (px).
// Call SetContainer before panning or zooming.
func New(docWidth, docHeight float64) *Viewport {
	return &Viewport{
		zoom:      1,
		docWidth:  docWidth,
		docHeight: docHeight,
	}
}

func (v *Viewport) Zoom() float64 {
	return v.zoom
}

func (v *Viewport) Pan() (x, y float64) {
	return v.panX, v.panY
}

func (v *Viewport) ContainerSize() (width, height float64) {
	return v.containerWidth, v.containerHeight
}

func (v *Viewport) DocumentSize() (width, height float64) {
	return v.docWidth, v.docHeight
}

// SetContainer records the device size of the hosting surface and re-clamps.
// Non-finite sizes are ignored.
func (v *Viewport) SetContainer(width, height float64) {
	if !finite(width, height) {
		return
	}
	v.containerWidth = max(width, 0)
	v.containerHeight = max(height, 0)
	v.clamp()
}

// SetDocumentSize records the logical page size and re-clamps. Non-finite
// sizes are ignored.
func (v *Viewport) SetDocumentSize(width, height float64) {
	if !finite(width, height) {
		return
	}
	v.docWidth = max(width, 0)
	v.docHeight = max(height, 0)
	v.clamp()
}

// ToScreen maps a logical point to device coordinates.
func (v *Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.zoom + v.panX, y*v.zoom + v.panY
}

// ToLogical maps a device point to logical coordinates.
func (v *Viewport) ToLogical(x, y float64) (float64, float64) {
	return (x - v.panX) / v.zoom, (y - v.panY) / v.zoom
}

// Limits returns the pan range that keeps at least MinVisibleFraction of the
// page inside the container.
func (v *Viewport) Limits() Limits {
	f := MinVisibleFraction
	w, h := v.docWidth*v.zoom, v.docHeight*v.zoom
	return Limits{
		MinX: v.containerWidth*f - w,
		MaxX: v.containerWidth - w*f,
		MinY: v.containerHeight*f - h,
		MaxY: v.containerHeight - h*f,
	}
}

func (v *Viewport) clamp() {
	l := v.Limits()
	v.panX = lo.Clamp(v.panX, l.MinX, l.MaxX)
	v.panY = lo.Clamp(v.panY, l.MinY, l.MaxY)
}

// PanBy moves the view by a device delta. The result is clamped.
func (v *Viewport) PanBy(dx, dy float64) {
	if !finite(dx, dy) {
		return
	}
	v.panX += dx
	v.panY += dy
	v.clamp()
}

// SetPan places the view directly. The result is clamped.
func (v *Viewport) SetPan(x, y float64) {
	if !finite(x, y) {
		return
	}
	v.panX, v.panY = x, y
	v.clamp()
}

// SetZoom zooms about the container center.
func (v *Viewport) SetZoom(zoom float64) {
	v.ZoomAt(zoom, v.containerWidth/2, v.containerHeight/2)
}

// ZoomAt sets the zoom so that the logical point under (cx, cy) stays under
// it, then clamps the pan at the new zoom.
func (v *Viewport) ZoomAt(zoom, cx, cy float64) {
	if math.IsNaN(zoom) || !finite(cx, cy) {
		return
	}
	zoom = lo.Clamp(zoom, MinZoom, MaxZoom)
	ratio := zoom / v.zoom
	v.panX += (cx - v.panX) * (1 - ratio)
	v.panY += (cy - v.panY) * (1 - ratio)
	v.zoom = zoom
	v.clamp()
}

func finite(vs ...float64) bool {
	for _, x := range vs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v *Viewport) ZoomIn() {
	v.SetZoom(v.zoom * ZoomStep)
}

func (v *Viewport) ZoomOut() {
	v.SetZoom(v.zoom / ZoomStep)
}

// ZoomToFit scales the page to FitMargin of the container and centers it.
func (v *Viewport) ZoomToFit() {
	if v.docWidth <= 0 || v.docHeight <= 0 || v.containerWidth <= 0 || v.containerHeight <= 0 {
		v.Reset()
		return
	}
	zoom := min(v.containerWidth*FitMargin/v.docWidth, v.containerHeight*FitMargin/v.docHeight)
	v.zoom = lo.Clamp(zoom, MinZoom, MaxZoom)
	v.center()
}

// Reset returns to zoom 1 with the page centered in the container.
func (v *Viewport) Reset() {
	v.zoom = 1
	v.center()
}

func (v *Viewport) center() {
	v.panX = (v.containerWidth - v.docWidth*v.zoom) / 2
	v.panY = (v.containerHeight - v.docHeight*v.zoom) / 2
	v.clamp()
}

// VisibleRect returns the logical rectangle currently shown in the container.
func (v *Viewport) VisibleRect() Rect {
	x0, y0 := v.ToLogical(0, 0)
	x1, y1 := v.ToLogical(v.containerWidth, v.containerHeight)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
