package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"stickerpad/units"
)

func newTestViewport() *Viewport {
	v := New(units.MmToPx(100), units.MmToPx(50))
	v.SetContainer(800, 600)
	return v
}

func assertWithinLimits(t *testing.T, v *Viewport) {
	t.Helper()
	l := v.Limits()
	x, y := v.Pan()
	assert.GreaterOrEqual(t, x, l.MinX-1e-9)
	assert.LessOrEqual(t, x, l.MaxX+1e-9)
	assert.GreaterOrEqual(t, y, l.MinY-1e-9)
	assert.LessOrEqual(t, y, l.MaxY+1e-9)
}

func TestPanLimitsScenario(t *testing.T) {
	v := newTestViewport()
	l := v.Limits()
	assert.InDelta(t, 743.3, l.MaxX, 0.05)
	assert.InDelta(t, -487.0, l.MinX, 0.1)
	assert.InDelta(t, 571.7, l.MaxY, 0.05)
	assert.InDelta(t, -223.0, l.MinY, 0.5)

	v.PanBy(10000, 10000)
	x, y := v.Pan()
	assert.InDelta(t, l.MaxX, x, 1e-9)
	assert.InDelta(t, l.MaxY, y, 1e-9)

	v.PanBy(-1e9, -1e9)
	x, y = v.Pan()
	assert.InDelta(t, l.MinX, x, 1e-9)
	assert.InDelta(t, l.MinY, y, 1e-9)
}

func TestZoomAtPointScenario(t *testing.T) {
	v := newTestViewport()
	v.SetPan(0, 0)

	v.ZoomAt(2, 400, 300)
	x, y := v.Pan()
	assert.Equal(t, 2.0, v.Zoom())
	assert.InDelta(t, -400, x, 1e-9)
	assert.InDelta(t, -300, y, 1e-9)
}

func TestZoomKeepsPointUnderCursor(t *testing.T) {
	v := newTestViewport()
	v.Reset()
	lx, ly := v.ToLogical(350, 260)

	v.ZoomAt(1.7, 350, 260)
	sx, sy := v.ToScreen(lx, ly)
	assert.InDelta(t, 350, sx, 1e-9)
	assert.InDelta(t, 260, sy, 1e-9)
}

func TestZoomClamped(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"too small", 0.001, MinZoom},
		{"negative", -3, MinZoom},
		{"too large", 50, MaxZoom},
		{"infinite", math.Inf(1), MaxZoom},
		{"in range", 2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport()
			v.SetZoom(tt.in)
			assert.Equal(t, tt.want, v.Zoom())
		})
	}

	v := newTestViewport()
	v.SetZoom(math.NaN())
	assert.Equal(t, 1.0, v.Zoom())
}

func TestZoomStep(t *testing.T) {
	v := newTestViewport()
	v.ZoomIn()
	assert.InDelta(t, 1.2, v.Zoom(), 1e-12)
	v.ZoomOut()
	v.ZoomOut()
	assert.InDelta(t, 1/1.2, v.Zoom(), 1e-12)

	for i := 0; i < 100; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom())
	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom())
}

func TestReset(t *testing.T) {
	v := newTestViewport()
	v.ZoomAt(3, 10, 10)
	v.Reset()
	x, y := v.Pan()
	assert.Equal(t, 1.0, v.Zoom())
	assert.InDelta(t, (800-units.MmToPx(100))/2, x, 1e-9)
	assert.InDelta(t, (600-units.MmToPx(50))/2, y, 1e-9)
}

func TestZoomToFit(t *testing.T) {
	v := newTestViewport()
	v.ZoomToFit()
	want := math.Min(800*0.9/units.MmToPx(100), 600*0.9/units.MmToPx(50))
	assert.InDelta(t, want, v.Zoom(), 1e-12)

	x, y := v.Pan()
	dw, dh := v.DocumentSize()
	assert.InDelta(t, (800-dw*v.Zoom())/2, x, 1e-9)
	assert.InDelta(t, (600-dh*v.Zoom())/2, y, 1e-9)

	empty := New(0, 0)
	empty.SetContainer(800, 600)
	empty.ZoomToFit()
	assert.Equal(t, 1.0, empty.Zoom())
}

func TestCoordinateRoundTrip(t *testing.T) {
	v := newTestViewport()
	v.ZoomAt(2.3, 120, 80)
	sx, sy := v.ToScreen(37.5, -12)
	lx, ly := v.ToLogical(sx, sy)
	assert.InDelta(t, 37.5, lx, 1e-9)
	assert.InDelta(t, -12, ly, 1e-9)
}

func TestVisibleRect(t *testing.T) {
	v := newTestViewport()
	v.SetPan(100, 50)
	r := v.VisibleRect()
	assert.InDelta(t, -100, r.X, 1e-9)
	assert.InDelta(t, -50, r.Y, 1e-9)
	assert.InDelta(t, 800, r.Width, 1e-9)
	assert.InDelta(t, 600, r.Height, 1e-9)
}

var oddValues = []float64{math.Inf(1), math.Inf(-1), math.NaN()}

func TestNonFiniteInputsIgnored(t *testing.T) {
	v := newTestViewport()
	v.SetPan(100, 50)
	zoom := v.Zoom()

	v.ZoomAt(2, math.Inf(1), 0)
	v.ZoomAt(2, 0, math.Inf(-1))
	v.ZoomAt(math.NaN(), 10, 10)
	v.PanBy(math.Inf(1), 0)
	v.SetPan(math.Inf(-1), 0)
	v.SetContainer(math.Inf(1), math.NaN())
	v.SetDocumentSize(math.NaN(), math.Inf(1))

	assert.Equal(t, zoom, v.Zoom())
	x, y := v.Pan()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)
	cw, ch := v.ContainerSize()
	assert.Equal(t, 800.0, cw)
	assert.Equal(t, 600.0, ch)
	assertWithinLimits(t, v)
}

func TestBoundsHoldUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		v := New(rng.Float64()*3000+1, rng.Float64()*3000+1)
		v.SetContainer(rng.Float64()*2000+1, rng.Float64()*2000+1)
		v.SetZoom(rng.Float64()*6 - 0.5)
		for step := 0; step < 50; step++ {
			switch rng.Intn(7) {
			case 0:
				v.PanBy((rng.Float64()-0.5)*1e4, (rng.Float64()-0.5)*1e4)
			case 1:
				v.ZoomAt((rng.Float64()-0.2)*8, rng.Float64()*3000-500, rng.Float64()*3000-500)
			case 2:
				v.ZoomIn()
			case 3:
				v.ZoomOut()
			case 4:
				v.ZoomAt(rng.Float64()*4, oddValues[rng.Intn(len(oddValues))], rng.Float64()*100)
				v.ZoomAt(oddValues[rng.Intn(len(oddValues))], rng.Float64()*100, oddValues[rng.Intn(len(oddValues))])
			case 5:
				v.PanBy(oddValues[rng.Intn(len(oddValues))], 1)
				v.SetPan(0, oddValues[rng.Intn(len(oddValues))])
			case 6:
				v.SetContainer(oddValues[rng.Intn(len(oddValues))], rng.Float64()*2000+1)
				v.SetDocumentSize(rng.Float64()*3000+1, oddValues[rng.Intn(len(oddValues))])
			}
			if v.Zoom() < MinZoom || v.Zoom() > MaxZoom {
				t.Fatalf("zoom %v escaped bounds", v.Zoom())
			}
			if x, y := v.Pan(); !finite(x, y) {
				t.Fatalf("pan (%v, %v) is not finite", x, y)
			}
			assertWithinLimits(t, v)
		}
	}
}

func TestGridSnap(t *testing.T) {
	g := DefaultGrid()
	assert.InDelta(t, 14.173, g.SpacingPx(), 1e-3)

	x, y := g.Snap(16, 16)
	assert.InDelta(t, 14.173, x, 1e-3)
	assert.InDelta(t, 14.173, y, 1e-3)

	x, y = g.Snap(22, 6)
	assert.InDelta(t, 28.346, x, 1e-3)
	assert.InDelta(t, 0, y, 1e-9)

	g.Enabled = false
	x, y = g.Snap(16, 16)
	assert.Equal(t, 16.0, x)
	assert.Equal(t, 16.0, y)

	zero := Grid{Enabled: true}
	x, _ = zero.Snap(3.3, 0)
	assert.Equal(t, 3.3, x)
}
