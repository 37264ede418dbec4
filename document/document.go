// Package document holds an ordered set of elements on a fixed-size page.
// Slice order is z-order: index 0 is drawn first.
package document

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"stickerpad/element"
)

var ErrDuplicateID = errors.New("duplicate element id")

type Document struct {
	PageWidth  float64
	PageHeight float64
	elements   []element.Element
}

// New returns an empty document with the page size in millimeters.
func New(pageWidth, pageHeight float64) *Document {
	return &Document{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		elements:   make([]element.Element, 0),
	}
}

// Elements returns the elements bottom to top. The slice is a copy; the
// elements are not.
func (d *Document) Elements() []element.Element {
	return slices.Clone(d.elements)
}

func (d *Document) Len() int {
	return len(d.elements)
}

func (d *Document) At(i int) element.Element {
	if i < 0 || i >= len(d.elements) {
		return nil
	}
	return d.elements[i]
}

// Index returns the z-index of the element with the given id, or -1.
func (d *Document) Index(id string) int {
	_, idx, ok := lo.FindIndexOf(d.elements, func(el element.Element) bool {
		return el.Base().ID == id
	})
	if !ok {
		return -1
	}
	return idx
}

func (d *Document) Get(id string) element.Element {
	return d.At(d.Index(id))
}

// Add appends el on top of the z-order.
func (d *Document) Add(el element.Element) error {
	if d.Index(el.Base().ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, el.Base().ID)
	}
	d.elements = append(d.elements, el)
	return nil
}

func (d *Document) Remove(id string) (element.Element, bool) {
	idx := d.Index(id)
	if idx < 0 {
		return nil, false
	}
	el := d.elements[idx]
	d.elements = slices.Delete(d.elements, idx, idx+1)
	return el, true
}

// Move places the element at index to, clamped to the valid range. It reports
// whether the order changed.
func (d *Document) Move(id string, to int) bool {
	idx := d.Index(id)
	if idx < 0 {
		return false
	}
	to = lo.Clamp(to, 0, len(d.elements)-1)
	if to == idx {
		return false
	}
	el := d.elements[idx]
	d.elements = slices.Delete(d.elements, idx, idx+1)
	d.elements = slices.Insert(d.elements, to, el)
	return true
}

func (d *Document) Clear() {
	d.elements = d.elements[:0]
}

// Bounds returns the union of the element bounds in millimeters.
func (d *Document) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	for i, el := range d.elements {
		g := el.Base().Geometry
		if i == 0 {
			minX, minY = g.X, g.Y
			maxX, maxY = g.X+g.Width(), g.Y+g.Height()
			continue
		}
		minX = min(minX, g.X)
		minY = min(minY, g.Y)
		maxX = max(maxX, g.X+g.Width())
		maxY = max(maxY, g.Y+g.Height())
	}
	return minX, minY, maxX, maxY, len(d.elements) > 0
}
