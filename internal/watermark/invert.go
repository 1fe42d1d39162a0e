package watermark

import (
	"image"
	"math"

	"github.com/demark-tools/demark/internal/mask"
)

const (
	// Below minAlpha the overlay contributed nothing visible; skipping the
	// division leaves the pixel byte-identical.
	minAlpha = 0.002

	// Above maxAlpha the blend destroyed the original value: the inverse
	// divides by near-zero and would only amplify rounding noise. Such
	// pixels pass through unchanged. This is defined boundary behavior,
	// not an error.
	maxAlpha = 0.99

	logoValue = 255.0
)

// Restore reverses the alpha blend in place inside rect of img, using
// template m. rect is in img's coordinate space and must be exactly m.Size
// on each side. Pixels outside rect are never touched; the alpha channel is
// never touched.
//
// Per channel the recovered value is (watermarked - alpha*255) / (1-alpha),
// clamped to [0, 255] to absorb rounding and compression noise.
func Restore(img *image.NRGBA, m *mask.Mask, rect image.Rectangle) {
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			alpha := m.Alpha[row*m.Size+col]
			if alpha < minAlpha || alpha > maxAlpha {
				continue
			}

			inv := 1 / (1 - alpha)
			offset := img.PixOffset(rect.Min.X+col, rect.Min.Y+row)

			for c := 0; c < 3; c++ {
				watermarked := float64(img.Pix[offset+c])
				original := (watermarked - alpha*logoValue) * inv
				img.Pix[offset+c] = clampByte(original)
			}
		}
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
