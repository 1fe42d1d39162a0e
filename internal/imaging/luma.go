package imaging

import (
	"image"
	"math"
)

// Luma extracts the luminance plane of rect within img as row-major float64
// values in [0, 255], using ITU-R BT.601 weights (0.299R + 0.587G + 0.114B).
func Luma(img image.Image, rect image.Rectangle) []float64 {
	plane := make([]float64, rect.Dx()*rect.Dy())

	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit samples; /257 maps to [0, 255].
			plane[i] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			i++
		}
	}
	return plane
}

// GradientMagnitude computes the Sobel gradient magnitude of a row-major
// plane. The one-pixel border is left at zero, which keeps two planes
// comparable under correlation as long as both went through this function.
func GradientMagnitude(plane []float64, width, height int) []float64 {
	grad := make([]float64, len(plane))

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			gx := (plane[i-width+1] + 2*plane[i+1] + plane[i+width+1]) -
				(plane[i-width-1] + 2*plane[i-1] + plane[i+width-1])
			gy := (plane[i+width-1] + 2*plane[i+width] + plane[i+width+1]) -
				(plane[i-width-1] + 2*plane[i-width] + plane[i-width+1])
			grad[i] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return grad
}
