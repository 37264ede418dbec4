package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stickerpad/designer"
	"stickerpad/element"
	"stickerpad/scene"
	"stickerpad/viewport"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath, pageSize, templatePath, logPath string

	rootCmd := &cobra.Command{
		Use:   "stickerpad",
		Short: "Design sticker label templates in the terminal",
		Long: `stickerpad is a terminal designer for sticker label templates. Elements
(QR codes, text, images, rectangles and lines) are placed on a page measured
in millimeters and saved as versioned JSON templates.`,
		Example: `  stickerpad
  stickerpad --page 60x40 --template labels/serial.json
  stickerpad --config ./stickerpad.yaml --log /tmp/stickerpad.log`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if pageSize != "" {
				w, h, err := parsePageSize(pageSize)
				if err != nil {
					return err
				}
				config.PageWidthMm, config.PageHeightMm = w, h
			}

			logger, closeLog, err := openLogger(logPath)
			if err != nil {
				return err
			}
			defer closeLog()

			m := newModel(config, logger)
			if templatePath != "" {
				if err := m.openTemplate(templatePath); err != nil {
					return err
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running designer: %w", err)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (default ~/"+configFileName+")")
	rootCmd.Flags().StringVar(&pageSize, "page", "", "page size in millimeters, e.g. 100x50")
	rootCmd.Flags().StringVar(&templatePath, "template", "", "template file to open at startup")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write debug logs to this file")

	return rootCmd
}

// openLogger returns a text logger writing to path. The terminal belongs to
// the designer, so without a path nothing is logged.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { file.Close() }, nil
}

func newModel(config *Config, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	surface := &termSurface{}
	opts := []designer.Option{
		designer.WithLogger(logger),
		designer.WithFactory(scene.FactoryFunc(newCellVisual)),
		designer.WithGrid(viewport.Grid{SpacingMm: config.GridSpacingMm, Enabled: config.SnapToGrid}),
		designer.WithHistorySteps(config.HistorySteps),
		designer.WithPageSize(config.PageWidthMm, config.PageHeightMm),
	}
	if config.SystemClipboard && !clipboard.Unsupported {
		opts = append(opts, designer.WithClipboard(systemClipboard{}))
	}

	mode := ModeNormal
	if config.StartMenu {
		mode = ModeStartup
	}
	return model{
		surface:           surface,
		designer:          designer.New(surface, opts...),
		config:            config,
		logger:            logger,
		mode:              mode,
		selectedFileIndex: -1,
	}
}

func (m *model) openTemplate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}
	warnings, err := m.designer.LoadTemplate(data)
	if err != nil {
		return err
	}
	m.filename = path
	m.mode = ModeNormal
	m.successMessage = fmt.Sprintf("Opened %s", filepath.Base(path))
	if len(warnings) > 0 {
		m.successMessage += fmt.Sprintf(" (%d warnings, see log)", len(warnings))
	}
	return nil
}

func (m *model) saveTemplate(path string) error {
	data, err := m.designer.SaveTemplate()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	m.filename = path
	m.successMessage = fmt.Sprintf("Saved %s", filepath.Base(path))
	m.logger.Info("template saved", slog.String("path", path))
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.surface.cols, m.surface.rows = msg.Width, msg.Height
		m.designer.Resize()
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}
		switch m.mode {
		case ModeStartup:
			return m.handleStartupKey(msg)
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeTextInput:
			m.handleTextInputKey(msg)
			return m, nil
		case ModeFileInput:
			m.handleFileInputKey(msg)
			return m, nil
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		}
	}
	return m, nil
}

// handleMouse forwards the pointer to the designer at the center of the cell
// under it.
func (m *model) handleMouse(msg tea.MouseMsg) {
	x := (float64(msg.X) + 0.5) * charWidth
	y := (float64(msg.Y) + 0.5) * charHeight

	switch msg.Type {
	case tea.MouseLeft, tea.MouseRight:
		button := designer.ButtonPrimary
		if msg.Type == tea.MouseRight {
			button = designer.ButtonSecondary
		}
		if m.mouseDown {
			m.designer.PointerMove(designer.PointerEvent{X: x, Y: y, Button: m.mouseButton})
			return
		}
		m.mouseDown, m.mouseButton = true, button
		m.designer.PointerDown(designer.PointerEvent{X: x, Y: y, Button: button})
	case tea.MouseMotion:
		if m.mouseDown {
			m.designer.PointerMove(designer.PointerEvent{X: x, Y: y, Button: m.mouseButton})
		}
	case tea.MouseRelease:
		if !m.mouseDown {
			return
		}
		m.mouseDown = false
		// terminals have no context menu to open
		m.designer.PointerUp(designer.PointerEvent{X: x, Y: y, Button: m.mouseButton})
	case tea.MouseWheelUp:
		m.designer.Wheel(x, y, -1)
	case tea.MouseWheelDown:
		m.designer.Wheel(x, y, 1)
	}
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func (m model) handleStartupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.designer.Clear()
		m.filename = ""
		m.mode = ModeNormal
		m.errorMessage = ""
	case "o":
		m.startFileInput(FileOpOpen)
		m.fromStartup = true
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

var addKeys = map[string]element.Type{
	"1": element.TypeQR,
	"2": element.TypeText,
	"3": element.TypeImage,
	"4": element.TypeRect,
	"5": element.TypeLine,
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.errorMessage = ""
	m.successMessage = ""

	if t, ok := addKeys[key]; ok {
		if _, err := m.designer.AddElement(t, nil); err != nil {
			m.errorMessage = err.Error()
		}
		return m, nil
	}

	switch key {
	case "q":
		if m.designer.Dirty() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handlePan(key, m.getMoveSpeed(key))
	case "+", "=":
		m.designer.ZoomIn()
	case "-":
		m.designer.ZoomOut()
	case "0":
		m.designer.ResetView()
	case "f":
		m.designer.ZoomToFit()
	case "g":
		on := !m.designer.Grid().Enabled
		m.designer.SetSnapToGrid(on)
		m.successMessage = "Snap " + onOff(on)
	case "[":
		m.designer.SendBackward()
	case "]":
		m.designer.BringForward()
	case "{":
		m.designer.SendToBack()
	case "}":
		m.designer.BringToFront()
	case "e":
		m.startTextInput()
	case "n":
		if m.designer.Dirty() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmNewTemplate
			return m, nil
		}
		m.designer.Clear()
		m.filename = ""
	case "s":
		m.startFileInput(FileOpSave)
	case "S":
		m.startFileInput(FileOpSavePNG)
	case "T":
		m.startFileInput(FileOpSaveVisualTXT)
	case "o":
		m.startFileInput(FileOpOpen)
	default:
		m.designer.HandleKey(keyEvent(msg, false))
	}
	return m, nil
}

// startTextInput edits the text of a text element, or the data binding of a
// QR code or image.
func (m *model) startTextInput() {
	el := m.designer.Selected()
	switch v := el.(type) {
	case *element.Text:
		m.input = v.Text
	case *element.QR, *element.Image:
		m.input = el.Base().DataBinding
	default:
		m.errorMessage = "Select a text, QR code or image to edit"
		return
	}
	m.editID = el.Base().ID
	m.inputCursorPos = len([]rune(m.input))
	m.mode = ModeTextInput
}

func (m *model) handleTextInputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.editID = ""
		return
	case tea.KeyEnter:
		var p element.Patch
		if _, ok := m.designer.Element(m.editID).(*element.Text); ok {
			p.Text = &m.input
		} else {
			p.DataBinding = &m.input
		}
		m.designer.UpdateElement(m.editID, p)
		m.mode = ModeNormal
		m.editID = ""
		return
	case tea.KeyCtrlV:
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "Clipboard unavailable"
			return
		}
		m.insertInput([]rune(cleanClipboardText(text)))
		return
	}
	m.editInput(msg)
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.fromStartup = false
	m.input = ""
	if op == FileOpSave && m.filename != "" {
		m.input = trimTemplateExt(filepath.Base(m.filename))
	}
	m.inputCursorPos = len([]rune(m.input))
	if op == FileOpOpen {
		m.scanTemplateFiles()
	}
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) {
	switch {
	case msg.Type == tea.KeyEscape:
		if m.fromStartup {
			m.mode = ModeStartup
			m.fromStartup = false
		} else {
			m.mode = ModeNormal
		}
		m.input = ""
		m.errorMessage = ""
		return
	case (msg.String() == "up" || msg.String() == "down") && m.fileOp == FileOpOpen && len(m.fileList) > 0:
		step := 1
		if msg.String() == "up" {
			step = len(m.fileList) - 1
		}
		m.selectedFileIndex = (max(m.selectedFileIndex, 0) + step) % len(m.fileList)
		m.input = trimTemplateExt(m.fileList[m.selectedFileIndex])
		m.inputCursorPos = len([]rune(m.input))
		return
	case msg.Type == tea.KeyEnter:
		m.runFileOperation()
		return
	}
	m.editInput(msg)
}

func (m *model) runFileOperation() {
	name := strings.TrimSpace(m.input)
	if name == "" {
		m.errorMessage = "Please enter a filename"
		return
	}

	var err error
	switch m.fileOp {
	case FileOpOpen:
		err = m.openTemplate(m.config.GetSavePath(withExt(name, templateExt)))
	case FileOpSave:
		path := m.config.GetSavePath(withExt(name, templateExt))
		if _, statErr := os.Stat(path); statErr == nil && path != m.filename && m.config.Confirmations {
			m.pendingPath = path
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		} else if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			err = statErr
			break
		}
		err = m.saveTemplate(path)
	case FileOpSavePNG:
		path := m.config.GetSavePath(withExt(name, ".png"))
		if err = exportPNG(m.designer, path); err == nil {
			m.successMessage = fmt.Sprintf("Exported %s", filepath.Base(path))
		}
	case FileOpSaveVisualTXT:
		path := m.config.GetSavePath(withExt(name, ".txt"))
		if err = m.exportVisualTXT(path); err == nil {
			m.successMessage = fmt.Sprintf("Exported %s", filepath.Base(path))
		}
	}
	if err != nil {
		m.errorMessage = err.Error()
		m.logger.Warn("file operation failed", slog.Int("op", int(m.fileOp)), slog.Any("err", err))
		return
	}
	m.mode = ModeNormal
	m.fromStartup = false
	m.input = ""
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmNewTemplate:
			m.designer.Clear()
			m.filename = ""
		case ConfirmOverwriteFile:
			if err := m.saveTemplate(m.pendingPath); err != nil {
				m.errorMessage = err.Error()
			}
			m.pendingPath = ""
		}
		m.mode = ModeNormal
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

// editInput applies line-editing keys to the input buffer.
func (m *model) editInput(msg tea.KeyMsg) {
	runes := []rune(m.input)
	m.inputCursorPos = min(max(m.inputCursorPos, 0), len(runes))
	switch msg.Type {
	case tea.KeyBackspace:
		if m.inputCursorPos > 0 {
			m.input = string(append(runes[:m.inputCursorPos-1:m.inputCursorPos-1], runes[m.inputCursorPos:]...))
			m.inputCursorPos--
		}
	case tea.KeyLeft:
		if m.inputCursorPos > 0 {
			m.inputCursorPos--
		}
	case tea.KeyRight:
		if m.inputCursorPos < len(runes) {
			m.inputCursorPos++
		}
	case tea.KeySpace:
		m.insertInput([]rune{' '})
	case tea.KeyRunes:
		m.insertInput(msg.Runes)
	}
}

func (m *model) insertInput(ins []rune) {
	runes := []rune(m.input)
	pos := min(max(m.inputCursorPos, 0), len(runes))
	out := make([]rune, 0, len(runes)+len(ins))
	out = append(out, runes[:pos]...)
	out = append(out, ins...)
	out = append(out, runes[pos:]...)
	m.input = string(out)
	m.inputCursorPos = pos + len(ins)
}

func withExt(name, ext string) string {
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
