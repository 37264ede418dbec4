package designer

import "errors"

// ErrClipboardEmpty is returned by Read when nothing was copied.
var ErrClipboardEmpty = errors.New("clipboard empty")

// Clipboard stores one serialized element between Copy and Paste.
type Clipboard interface {
	Write(payload string) error
	Read() (string, error)
}

type memoryClipboard struct {
	payload string
	set     bool
}

func (c *memoryClipboard) Write(payload string) error {
	c.payload, c.set = payload, true
	return nil
}

func (c *memoryClipboard) Read() (string, error) {
	if !c.set {
		return "", ErrClipboardEmpty
	}
	return c.payload, nil
}
