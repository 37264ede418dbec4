package main

// handlePan moves the view by whole terminal cells.
func (m *model) handlePan(key string, speed int) {
	dx, dy := 0.0, 0.0
	switch key {
	case "left", "shift+left":
		dx = charWidth
	case "right", "shift+right":
		dx = -charWidth
	case "up", "shift+up":
		dy = charHeight
	case "down", "shift+down":
		dy = -charHeight
	default:
		return
	}
	m.designer.Pan(dx*float64(speed), dy*float64(speed))
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}
