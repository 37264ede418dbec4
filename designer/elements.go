package designer

import (
	"log/slog"

	"stickerpad/document"
	"stickerpad/element"
)

// DefaultPosition is where AddElement places an element when no position is
// given, in millimeters from the page origin.
var DefaultPosition = Point{X: 10, Y: 10}

// AddElement creates an element of type t at pos (mm), puts it on top and
// selects it. A nil pos uses DefaultPosition.
func (d *Designer) AddElement(t element.Type, pos *Point) (element.Element, error) {
	p := DefaultPosition
	if pos != nil {
		p = *pos
	}
	el, err := element.New(t, p.X, p.Y)
	if err != nil {
		return nil, err
	}
	if err := d.doc.Add(el); err != nil {
		return nil, err
	}
	d.insertVisual(el)
	d.logger.Debug("element added", slog.String("type", t.String()), slog.String("id", el.Base().ID))
	d.saveState()
	d.notifyElements()
	return el, nil
}

// insertVisual materializes el and selects it when selection is allowed.
func (d *Designer) insertVisual(el element.Element) {
	v := d.cache.Refresh(el)
	if v != nil && d.tool == ToolPan {
		v.SetInteractive(false)
	}
	d.Select(el.Base().ID)
}

// RemoveSelected deletes the selected element. It reports whether anything
// was removed.
func (d *Designer) RemoveSelected() bool {
	if d.selected == "" {
		return false
	}
	if _, ok := d.doc.Remove(d.selected); !ok {
		return false
	}
	d.cache.Remove(d.selected)
	d.Deselect()
	d.saveState()
	d.notifyElements()
	return true
}

// UpdateElement merges p into the element with id and rebuilds its visual.
// Unknown ids are ignored.
func (d *Designer) UpdateElement(id string, p element.Patch) bool {
	el := d.doc.Get(id)
	if el == nil {
		return false
	}
	element.Apply(el, p)
	d.refresh(el)
	d.saveState()
	d.notifyElements()
	return true
}

func (d *Designer) refresh(el element.Element) {
	v := d.cache.Refresh(el)
	if v != nil && d.tool == ToolPan {
		v.SetInteractive(false)
	}
	if d.selected == el.Base().ID {
		d.notifySelection()
	}
}

func (d *Designer) BringToFront() bool {
	return d.reorder(func(int) int { return d.doc.Len() - 1 })
}

func (d *Designer) SendToBack() bool {
	return d.reorder(func(int) int { return 0 })
}

func (d *Designer) BringForward() bool {
	return d.reorder(func(i int) int { return i + 1 })
}

func (d *Designer) SendBackward() bool {
	return d.reorder(func(i int) int { return i - 1 })
}

func (d *Designer) reorder(target func(int) int) bool {
	idx := d.doc.Index(d.selected)
	if idx < 0 {
		return false
	}
	if !d.doc.Move(d.selected, target(idx)) {
		return false
	}
	d.saveState()
	d.notifyElements()
	return true
}

// Copy puts the selected element on the clipboard.
func (d *Designer) Copy() bool {
	el := d.Selected()
	if el == nil {
		return false
	}
	data, err := document.EncodeElement(el)
	if err != nil {
		d.logger.Warn("copy failed", slog.String("id", el.Base().ID), slog.Any("err", err))
		return false
	}
	if err := d.clipboard.Write(string(data)); err != nil {
		d.logger.Warn("clipboard write failed", slog.Any("err", err))
		return false
	}
	return true
}

// Paste adds a copy of the clipboard element with a new id, offset by
// PasteOffset on both axes, and selects it.
func (d *Designer) Paste() bool {
	payload, err := d.clipboard.Read()
	if err != nil {
		d.logger.Debug("nothing to paste", slog.Any("err", err))
		return false
	}
	el, err := document.DecodeElement([]byte(payload))
	if err != nil {
		d.logger.Warn("clipboard does not hold an element", slog.Any("err", err))
		return false
	}
	c := el.Base()
	c.ID = element.NewID()
	c.X += PasteOffset
	c.Y += PasteOffset
	if err := d.doc.Add(el); err != nil {
		d.logger.Warn("paste failed", slog.Any("err", err))
		return false
	}
	d.insertVisual(el)
	d.saveState()
	d.notifyElements()
	return true
}

func (d *Designer) Duplicate() bool {
	return d.Copy() && d.Paste()
}
