package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stickerpad/element"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	startupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeStartup {
		return m.startupView()
	}

	renderWidth := max(m.width, 1)
	renderHeight := max(m.height-1, 1)

	var result strings.Builder
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		result.WriteString(m.fileListView(renderWidth, renderHeight))
	} else {
		result.WriteString(strings.Join(renderCanvas(m.designer, renderWidth, renderHeight), "\n"))
	}
	result.WriteString("\n")
	result.WriteString(statusStyle.MaxWidth(renderWidth).Render(m.statusLine()))
	return result.String()
}

func (m model) startupView() string {
	box := startupStyle.Render(strings.Join([]string{
		titleStyle.Render("stickerpad"),
		"",
		"'n' New template",
		"'o' Open template",
		"'q' Quit",
	}, "\n"))
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m model) fileListView(width, height int) string {
	var result strings.Builder
	result.WriteString("Select a template:\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	if len(m.fileList) == 0 {
		result.WriteString("(No " + templateExt + " files found)\n")
	} else {
		maxFiles := max(height-4, 1)
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			name := trimTemplateExt(m.fileList[i])
			if i == m.selectedFileIndex {
				result.WriteString("> " + name + " <")
			} else {
				result.WriteString("  " + name)
			}
			result.WriteString("\n")
		}
	}

	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	result.WriteString("Filename: " + m.inputWithCursor())
	return result.String()
}

func (m model) inputWithCursor() string {
	runes := []rune(m.input)
	pos := min(max(m.inputCursorPos, 0), len(runes))
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeTextInput:
		return fmt.Sprintf("Mode: EDIT | %s | ←/→=move cursor, Ctrl+V=paste, Enter=apply, Esc=cancel", m.inputWithCursor())
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpOpen:
			opStr = "Open"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpSaveVisualTXT:
			opStr = "Export TXT"
		}
		status := fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", opStr, m.inputWithCursor())
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit with unsaved changes? (y/n)"
		case ConfirmNewTemplate:
			message = "Start a new template? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", filepath.Base(m.pendingPath))
		}
		return "Mode: CONFIRM | " + message
	}

	d := m.designer
	name := "untitled"
	if m.filename != "" {
		name = filepath.Base(m.filename)
	}
	if d.Dirty() {
		name += "*"
	}
	status := fmt.Sprintf("%s | Tool: %s | Zoom: %.0f%% | Snap: %s",
		name, strings.ToUpper(d.Tool().String()), d.Viewport().Zoom()*100, onOff(d.Grid().Enabled))
	if el := d.Selected(); el != nil {
		status += " | " + describe(el)
	}
	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + successStyle.Render(m.successMessage)
	default:
		status += " | ? for help | q to quit"
	}
	return status
}

// describe summarizes an element for the status line.
func describe(el element.Element) string {
	g := el.Base().Geometry
	s := fmt.Sprintf("%s %.1fx%.1fmm @ %.1f,%.1f", el.Type(), g.Width(), g.Height(), g.X, g.Y)
	if b := el.Base().DataBinding; b != "" {
		s += " {" + b + "}"
	}
	return s
}

var helpLines = []string{
	"stickerpad help",
	"===============",
	"",
	"Elements:",
	"---------",
	"  1 2 3 4 5        Add QR code, text, image, rectangle, line",
	"  e                Edit text (or data binding) of the selected element",
	"  Delete/Backspace Remove the selected element",
	"  Ctrl+C / Ctrl+V  Copy / paste the selected element",
	"  Ctrl+D           Duplicate the selected element",
	"  [ ]              Send backward / bring forward",
	"  { }              Send to back / bring to front",
	"  Esc              Deselect",
	"",
	"Mouse:",
	"------",
	"  Left drag        Select and move an element (pan in pan tool)",
	"  Right drag       Pan the view",
	"  Wheel            Zoom at the pointer",
	"",
	"View:",
	"-----",
	"  ←/↓/↑/→          Pan (Shift for faster)",
	"  + / -            Zoom in / out",
	"  0                Reset view",
	"  f                Fit page",
	"  g                Toggle snap to grid",
	"  h                Toggle select / pan tool",
	"",
	"History:",
	"--------",
	"  Ctrl+Z           Undo",
	"  Ctrl+Y           Redo",
	"",
	"Files:",
	"------",
	"  s                Save template",
	"  o                Open template",
	"  n                New template",
	"  S                Export PNG preview",
	"  T                Export the current view as text",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q                Quit",
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	lines := append([]string(nil), helpLines[startLine:endLine]...)
	if startLine == 0 && len(lines) > 0 {
		lines[0] = titleStyle.Render(lines[0])
	}
	result := strings.Join(lines, "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
