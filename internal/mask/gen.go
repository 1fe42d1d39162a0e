package mask

import (
	"math"

	"github.com/demark-tools/demark/internal/imaging"
)

// Glyph shape parameters. The overlay is a four-point star with concave
// edges (a superellipse with exponent < 1) and a soft radial falloff. Peak
// opacity stays well below 1 so the blend is always invertible.
const (
	glyphRadiusFrac = 0.42
	glyphExponent   = 0.55
	glyphFalloff    = 0.65
	glyphPeakAlpha  = 0.85
)

// build synthesizes the opacity template and its gradient plane for one
// logo size. Called exactly once per size via the sync.Once guards in
// mask.go; the result is treated as read-only from then on.
func build(size, margin int) *Mask {
	alpha := make([]float64, size*size)
	plane := make([]float64, size*size)

	center := float64(size-1) / 2
	radius := float64(size) * glyphRadiusFrac

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := math.Abs(float64(x)-center) / radius
			dy := math.Abs(float64(y)-center) / radius

			// Inside the star iff dx^p + dy^p <= 1. The falloff keeps
			// the silhouette soft the way the rendered overlay is after
			// anti-aliasing and JPEG round trips.
			f := math.Pow(dx, glyphExponent) + math.Pow(dy, glyphExponent)
			if f >= 1 {
				continue
			}

			a := glyphPeakAlpha * math.Pow(1-f, glyphFalloff)
			alpha[y*size+x] = a
			plane[y*size+x] = a * 255
		}
	}

	return &Mask{
		Size:   size,
		Margin: margin,
		Alpha:  alpha,
		Grad:   imaging.GradientMagnitude(plane, size, size),
	}
}
