package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"stickerpad/designer"
	"stickerpad/scene"
	"stickerpad/units"
)

// exportVisualTXT writes the current view exactly as it is drawn on screen.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	cols, rows := m.width, m.height-1
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	for _, line := range renderCanvas(m.designer, cols, rows) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

const pngPadding = 16.0

var (
	placeholderFill = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	pageStroke      = color.RGBA{0x99, 0x99, 0x99, 0xff}
)

// exportPNG rasterizes the page and the element visuals at zoom 1. This is a
// layout preview: QR symbols and images are drawn as labelled placeholders.
func exportPNG(d *designer.Designer, filename string) error {
	pageW, pageH := d.Viewport().DocumentSize()
	minX, minY, maxX, maxY := 0.0, 0.0, pageW, pageH
	if x0, y0, x1, y1, ok := d.Document().Bounds(); ok {
		minX = min(minX, units.MmToPx(x0))
		minY = min(minY, units.MmToPx(y0))
		maxX = max(maxX, units.MmToPx(x1))
		maxY = max(maxY, units.MmToPx(y1))
	}
	minX -= pngPadding
	minY -= pngPadding
	maxX += pngPadding
	maxY += pngPadding

	dc := gg.NewContext(int(maxX-minX), int(maxY-minY))
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.SetColor(pageStroke)
	dc.SetLineWidth(1)
	dc.SetDash(4, 3)
	dc.DrawRectangle(scene.OriginX-minX, scene.OriginY-minY, pageW, pageH)
	dc.Stroke()
	dc.SetDash()

	for _, v := range d.Visuals() {
		b := v.Bounds()
		cv, ok := v.(*cellVisual)
		if !ok {
			dc.SetColor(color.Black)
			dc.DrawRectangle(b.X-minX, b.Y-minY, b.Width, b.Height)
			dc.Stroke()
			continue
		}
		drawVisualPNG(dc, cv, b.X-minX, b.Y-minY)
	}
	return dc.SavePNG(filename)
}

func drawVisualPNG(dc *gg.Context, v *cellVisual, ox, oy float64) {
	dc.Push()
	defer dc.Pop()
	if v.angle != 0 {
		cx, cy := ox+v.bounds.Width/2, oy+v.bounds.Height/2
		dc.RotateAbout(gg.Radians(v.angle), cx, cy)
	}
	dc.SetLineWidth(1)
	for _, p := range v.primitives() {
		x, y := ox+p.X, oy+p.Y
		switch p.Kind {
		case scene.KindRect:
			dc.SetColor(color.Black)
			dc.DrawRectangle(x, y, p.W, p.H)
			dc.Stroke()
		case scene.KindLine:
			dc.SetColor(color.Black)
			dc.DrawLine(x, y, x+p.W, y+p.H)
			dc.Stroke()
		case scene.KindText:
			dc.SetColor(color.Black)
			dc.DrawStringAnchored(p.Text, x, y+p.H/2, 0, 0.5)
		case scene.KindPlaceholder:
			dc.SetColor(placeholderFill)
			dc.DrawRectangle(x, y, p.W, p.H)
			dc.Fill()
			if p.Text != "" {
				dc.SetColor(color.Black)
				dc.DrawStringAnchored(p.Text, x+p.W/2, y+p.H/2, 0.5, 0.5)
			}
		}
	}
}
