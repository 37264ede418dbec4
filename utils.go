package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"stickerpad/designer"
)

// systemClipboard mirrors designer copy payloads to the OS clipboard so
// elements can be pasted between stickerpad instances.
type systemClipboard struct{}

func (systemClipboard) Write(payload string) error {
	return clipboard.WriteAll(payload)
}

func (systemClipboard) Read() (string, error) {
	text, err := readClipboardText()
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", designer.ErrClipboardEmpty
	}
	return text, nil
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText turns pasted text into a single-line label: markup
// tags are dropped, entities decoded and line breaks folded into spaces.
func cleanClipboardText(text string) string {
	if isHTML(text) {
		text = extractTextFromHTML(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			result.WriteRune(' ')
		case r >= 32 && r != 127:
			result.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(result.String()), " ")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<span"))
}

var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

func extractTextFromHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return htmlEntities.Replace(result.String())
}

// scanTemplateFiles lists template files in the save directory, or the
// working directory when none is configured.
func (m *model) scanTemplateFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), templateExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.input = trimTemplateExt(m.fileList[0])
		m.inputCursorPos = len([]rune(m.input))
	}
}

func trimTemplateExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), templateExt) {
		return name[:len(name)-len(templateExt)]
	}
	return name
}

// keyEvent translates a terminal key into a designer key event. Terminals
// cannot report Cmd, so alt stands in for it.
func keyEvent(msg tea.KeyMsg, editing bool) designer.KeyEvent {
	s := msg.String()
	ev := designer.KeyEvent{Editing: editing}
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			ev.Ctrl = true
			s = strings.TrimPrefix(s, "ctrl+")
			continue
		case strings.HasPrefix(s, "alt+"):
			ev.Meta = true
			s = strings.TrimPrefix(s, "alt+")
			continue
		case strings.HasPrefix(s, "shift+"):
			ev.Shift = true
			s = strings.TrimPrefix(s, "shift+")
			continue
		}
		break
	}
	if r := []rune(s); len(r) == 1 && r[0] >= 'A' && r[0] <= 'Z' {
		ev.Shift = true
	}
	ev.Key = s
	return ev
}
