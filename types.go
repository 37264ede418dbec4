package main

import (
	"log/slog"

	"stickerpad/designer"
)

// termSurface reports the drawable part of the terminal in device pixels.
// The last row is reserved for the status line.
type termSurface struct {
	cols int
	rows int
}

func (s *termSurface) ContainerSize() (float64, float64) {
	rows := max(s.rows-1, 0)
	return float64(s.cols) * charWidth, float64(rows) * charHeight
}

var _ designer.Surface = (*termSurface)(nil)

type model struct {
	width             int
	height            int
	surface           *termSurface
	designer          *designer.Designer
	config            *Config
	logger            *slog.Logger
	mode              Mode
	help              bool
	helpScroll        int
	filename          string
	input             string
	inputCursorPos    int
	editID            string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	pendingPath       string
	fromStartup       bool
	mouseDown         bool
	mouseButton       designer.Button
	errorMessage      string
	successMessage    string
}
