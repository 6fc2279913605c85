package canvas

import (
	"image"
	"image/color"
	"math"

	"noteboard/pkg/geometry"
)

const (
	gridSpacing = 40.0 // world units between dots
	minDotGap   = 8.0  // screen pixels; sparser grids are skipped when zoomed out
)

var (
	boardColor = color.RGBA{R: 0xF4, G: 0xF4, B: 0xF0, A: 0xFF}
	dotColor   = color.RGBA{R: 0xC8, G: 0xC8, B: 0xC0, A: 0xFF}
)

// drawGrid is the raster drawing function for the background: a dot grid
// fixed in world space, so it pans and zooms with the notes.
func (bc *BoardCanvas) drawGrid(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = boardColor.R
		output.Pix[i+1] = boardColor.G
		output.Pix[i+2] = boardColor.B
		output.Pix[i+3] = boardColor.A
	}

	scale := bc.board.Viewport().Scale
	step := gridSpacing * scale
	if step < minDotGap || w == 0 || h == 0 {
		return output
	}

	// Raster pixels may be denser than widget units on HiDPI screens.
	size := bc.Size()
	px := 1.0
	if size.Width > 0 {
		px = float64(w) / float64(size.Width)
	}

	topLeft := bc.board.ToWorld(geometry.Pt(0, 0))
	startX := math.Floor(topLeft.X/gridSpacing) * gridSpacing
	startY := math.Floor(topLeft.Y/gridSpacing) * gridSpacing
	for wy := startY; ; wy += gridSpacing {
		sy := bc.board.ToScreen(geometry.Pt(0, wy)).Y * px
		if sy >= float64(h) {
			break
		}
		for wx := startX; ; wx += gridSpacing {
			sx := bc.board.ToScreen(geometry.Pt(wx, 0)).X * px
			if sx >= float64(w) {
				break
			}
			x, y := int(sx), int(sy)
			if x >= 0 && y >= 0 {
				output.Set(x, y, dotColor)
			}
		}
	}
	return output
}
