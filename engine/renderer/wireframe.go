package renderer

import (
	"image"
	"image/color"
	"image/draw"
	m "math"

	"golang.org/x/image/vector"
)

// Wireframe rasterizes projected line buffers into images. The 3D points
// are viewed orthographically down -z: x to the right, y up.
type Wireframe struct {
	Width, Height int
	// Pixels per projected unit.
	Scale float64
	// Stroke width in pixels.
	LineWidth float64

	Background color.RGBA
	Palette    [4]color.RGBA

	rasterizer *vector.Rasterizer
	canvas     *image.RGBA
}

func NewWireframe(width, height int, scale float64) *Wireframe {
	return &Wireframe{
		Width:      width,
		Height:     height,
		Scale:      scale,
		LineWidth:  1.5,
		Background: color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff},
		Palette:    AxisPalette(),
		rasterizer: vector.NewRasterizer(width, height),
		canvas:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (w *Wireframe) toScreen(x, y float32) (float32, float32) {
	sx := float64(w.Width)/2 + float64(x)*w.Scale
	sy := float64(w.Height)/2 - float64(y)*w.Scale
	return float32(sx), float32(sy)
}

// Draw renders the buffer and returns the canvas, which is reused by the
// next call. Edges are grouped per axis colour; an axis index outside 0..3
// uses the x colour.
func (w *Wireframe) Draw(lines []float32, axes []int) *image.RGBA {
	bounds := w.canvas.Bounds()
	draw.Draw(w.canvas, bounds, image.NewUniform(w.Background), image.Point{}, draw.Src)

	edges := len(lines) / 6
	for axis := 0; axis < 4; axis++ {
		w.rasterizer.Reset(w.Width, w.Height)
		drawn := false
		for n := 0; n < edges; n++ {
			a := 0
			if n < len(axes) && axes[n] >= 0 && axes[n] < 4 {
				a = axes[n]
			}
			if a != axis {
				continue
			}
			l := lines[n*6 : n*6+6]
			if w.stroke(l[0], l[1], l[3], l[4]) {
				drawn = true
			}
		}
		if drawn {
			w.rasterizer.Draw(w.canvas, bounds, image.NewUniform(w.Palette[axis]), image.Point{})
		}
	}
	return w.canvas
}

// stroke adds the segment as a thin quad. Degenerate or non-finite
// segments are skipped.
func (w *Wireframe) stroke(x0, y0, x1, y1 float32) bool {
	ax, ay := w.toScreen(x0, y0)
	bx, by := w.toScreen(x1, y1)
	dx, dy := float64(bx-ax), float64(by-ay)
	length := m.Hypot(dx, dy)
	if length == 0 || m.IsNaN(length) || m.IsInf(length, 0) {
		return false
	}
	// Keep far off-screen points from blowing up the rasterizer.
	limit := float32(4 * (w.Width + w.Height))
	for _, c := range []float32{ax, ay, bx, by} {
		if c > limit || c < -limit {
			return false
		}
	}
	half := w.LineWidth / 2
	nx, ny := float32(-dy/length*half), float32(dx/length*half)
	w.rasterizer.MoveTo(ax+nx, ay+ny)
	w.rasterizer.LineTo(bx+nx, by+ny)
	w.rasterizer.LineTo(bx-nx, by-ny)
	w.rasterizer.LineTo(ax-nx, ay-ny)
	w.rasterizer.ClosePath()
	return true
}
