package designer

import (
	"log/slog"

	"stickerpad/scene"
	"stickerpad/viewport"
)

// Option configures a Designer.
type Option func(*Designer)

// WithLogger sets the logger for warnings and diagnostics. By default the
// Designer logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(d *Designer) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithFactory sets the rendering collaborator that materializes visuals.
func WithFactory(f scene.Factory) Option {
	return func(d *Designer) {
		d.factory = f
	}
}

// WithClipboard replaces the in-memory clipboard.
func WithClipboard(c Clipboard) Option {
	return func(d *Designer) {
		if c != nil {
			d.clipboard = c
		}
	}
}

func WithGrid(g viewport.Grid) Option {
	return func(d *Designer) {
		d.grid = g
	}
}

// WithHistorySteps bounds the number of undo snapshots.
func WithHistorySteps(n int) Option {
	return func(d *Designer) {
		d.historySteps = n
	}
}

// WithPageSize sets the page size in millimeters.
func WithPageSize(width, height float64) Option {
	return func(d *Designer) {
		if width > 0 && height > 0 {
			d.pageWidth, d.pageHeight = width, height
		}
	}
}
