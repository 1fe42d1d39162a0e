package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// CropRegion copies rect out of img into a standalone buffer whose bounds
// start at (0, 0). rect is in img's coordinate space.
func CropRegion(img image.Image, rect image.Rectangle) *image.NRGBA {
	return imaging.Crop(img, rect)
}

// CloneNRGBA copies img into a mutable NRGBA buffer with bounds starting at
// (0, 0).
func CloneNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// Denoise applies a Gaussian blur with the given radius. A radius of zero or
// less returns img unchanged.
func Denoise(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Gaussian(img, radius)
}
