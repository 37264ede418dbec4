package designer

import (
	"fmt"
	"log/slog"

	"stickerpad/document"
	"stickerpad/units"
)

func (d *Designer) snapshot() []byte {
	data, err := d.doc.ToJSON()
	if err != nil {
		d.logger.Error("snapshot failed", slog.Any("err", err))
		return nil
	}
	return data
}

// saveState records the current document unless a snapshot is being
// restored.
func (d *Designer) saveState() {
	if d.restoring {
		return
	}
	if data := d.snapshot(); data != nil {
		d.history.Push(data)
	}
}

// SaveTemplate returns the document in template format and marks it clean.
func (d *Designer) SaveTemplate() ([]byte, error) {
	data, err := d.doc.ToJSON()
	if err != nil {
		return nil, err
	}
	d.clean = data
	return data, nil
}

// LoadTemplate replaces the document with the template in data. The template
// is parsed first; on error the current document is left untouched. Skipped
// objects are logged and returned as warnings. The load is undoable.
func (d *Designer) LoadTemplate(data []byte) ([]document.Warning, error) {
	doc, warnings, err := document.FromJSON(data, document.WithLogger(d.logger))
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	d.replace(doc)
	d.view.Reset()
	d.saveState()
	d.clean = d.snapshot()
	d.logger.Info("template loaded", slog.Int("elements", doc.Len()), slog.Int("warnings", len(warnings)))
	return warnings, nil
}

// replace rebuilds the live document element by element from doc.
func (d *Designer) replace(doc *document.Document) {
	d.doc.Clear()
	d.doc.PageWidth, d.doc.PageHeight = doc.PageWidth, doc.PageHeight
	d.view.SetDocumentSize(units.MmToPx(doc.PageWidth), units.MmToPx(doc.PageHeight))
	for _, el := range doc.Elements() {
		// ids are unique after import
		_ = d.doc.Add(el)
	}
	d.cache.Reset()
	d.cache.Sync(d.doc.Elements())
	if d.tool == ToolPan {
		d.cache.SetInteractive(false)
	}
	if d.selected != "" && d.doc.Get(d.selected) == nil {
		d.selected = ""
	}
	d.notifySelection()
	d.notifyElements()
}

// Undo restores the previous snapshot. It reports whether there was one.
func (d *Designer) Undo() bool {
	data, ok := d.history.Undo()
	if !ok {
		return false
	}
	d.restore(data)
	return true
}

// Redo restores the next snapshot. It reports whether there was one.
func (d *Designer) Redo() bool {
	data, ok := d.history.Redo()
	if !ok {
		return false
	}
	d.restore(data)
	return true
}

func (d *Designer) restore(data []byte) {
	d.restoring = true
	defer func() { d.restoring = false }()

	doc, _, err := document.FromJSON(data)
	if err != nil {
		d.logger.Error("history snapshot unreadable", slog.Any("err", err))
		return
	}
	d.replace(doc)
}

// Clear empties the document and restarts the history from the empty page,
// marking it clean. It is a hard reset; ordinary loads go through
// LoadTemplate.
func (d *Designer) Clear() {
	d.doc.Clear()
	d.cache.Reset()
	d.history.Clear()
	d.gesture = gesture{}
	d.saveState()
	d.clean = d.snapshot()
	d.Deselect()
	d.notifyElements()
}
