package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeTextInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpSaveVisualTXT
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewTemplate
	ConfirmOverwriteFile
)

// A terminal cell covers charWidth x charHeight device pixels.
const (
	charWidth  = 8.0
	charHeight = 16.0
)

const templateExt = ".json"
