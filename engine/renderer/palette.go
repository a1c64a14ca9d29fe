package renderer

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// AxisPalette returns one colour per axis (x, y, z, w), evenly spaced in hue.
func AxisPalette() [4]color.RGBA {
	var out [4]color.RGBA
	for axis := range out {
		c := colorful.Hsv(float64(axis)*90+15, 0.75, 1.0).Clamped()
		r, g, b := c.RGB255()
		out[axis] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// framePalette is the GIF palette: background followed by a ramp of each
// axis colour from dim to full so antialiased edges keep their hue.
func framePalette(background color.RGBA, axes [4]color.RGBA, steps int) color.Palette {
	pal := color.Palette{background}
	bg := colorful.Color{R: float64(background.R) / 255, G: float64(background.G) / 255, B: float64(background.B) / 255}
	for _, a := range axes {
		fg, _ := colorful.MakeColor(a)
		for i := 1; i <= steps; i++ {
			c := bg.BlendRgb(fg, float64(i)/float64(steps)).Clamped()
			r, g, b := c.RGB255()
			pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return pal
}
