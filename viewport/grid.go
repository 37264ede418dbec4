package viewport

import (
	"math"

	"stickerpad/units"
)

// DefaultGridSpacing is the snap spacing in millimeters.
const DefaultGridSpacing = 2.5

// Grid snaps logical positions while an element is dragged. Disabling it
// leaves positions untouched; it never changes stored element state.
type Grid struct {
	SpacingMm float64
	Enabled   bool
}

func DefaultGrid() Grid {
	return Grid{SpacingMm: DefaultGridSpacing, Enabled: true}
}

// SpacingPx is the grid spacing in logical pixels.
func (g Grid) SpacingPx() float64 {
	return units.MmToPx(g.SpacingMm)
}

// Snap rounds each axis to the nearest grid line.
func (g Grid) Snap(x, y float64) (float64, float64) {
	s := g.SpacingPx()
	if !g.Enabled || s <= 0 {
		return x, y
	}
	return math.Round(x/s) * s, math.Round(y/s) * s
}
