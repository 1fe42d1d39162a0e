package imaging

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const strokeWidth = 2

// MarkRegion returns a copy of img with rect outlined by a 2px stroke whose
// color ramps from green (score 0) through yellow to red (score 1). Used by
// the CLI's annotate mode to show where the detector looked and how
// confident it was.
func MarkRegion(img image.Image, rect image.Rectangle, score float64) *image.NRGBA {
	out := CloneNRGBA(img)

	// The clone's bounds start at (0, 0); shift rect out of the source
	// coordinate space.
	rect = rect.Sub(img.Bounds().Min)

	s := score
	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}
	r, g, b := colorful.Hsv(120*(1-s), 1, 1).RGB255()
	stroke := color.NRGBA{R: r, G: g, B: b, A: 255}

	bounds := out.Bounds()
	for t := 0; t < strokeWidth; t++ {
		edge := rect.Inset(-t)
		for x := edge.Min.X; x < edge.Max.X; x++ {
			setIfInside(out, bounds, x, edge.Min.Y, stroke)
			setIfInside(out, bounds, x, edge.Max.Y-1, stroke)
		}
		for y := edge.Min.Y; y < edge.Max.Y; y++ {
			setIfInside(out, bounds, edge.Min.X, y, stroke)
			setIfInside(out, bounds, edge.Max.X-1, y, stroke)
		}
	}
	return out
}

func setIfInside(img *image.NRGBA, bounds image.Rectangle, x, y int, c color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(bounds) {
		img.SetNRGBA(x, y, c)
	}
}
