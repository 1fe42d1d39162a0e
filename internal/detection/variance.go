package detection

import (
	"image"

	"github.com/demark-tools/demark/internal/imaging"
	"github.com/demark-tools/demark/internal/mask"
)

// Baselines below this are treated as "no texture to dampen" and score 0.
const minBaselineVariance = 1e-6

// varianceDampening measures how much the watermark region's texture
// variance is suppressed relative to the image's other corners. regionLuma
// is the already-extracted luminance plane of the watermark region.
//
// An alpha overlay pulls every covered pixel toward the logo color, so on a
// textured image the covered region's variance drops below comparable
// uncovered regions. The sub-score is 1 - var(region)/var(baseline), clamped
// to [0, 1]. On images with no usable baseline (flat corners, or corners
// that do not fit) the measure abstains with 0 rather than guessing.
func varianceDampening(img image.Image, m *mask.Mask, regionLuma []float64, corners []Corner) float64 {
	var sum float64
	n := 0
	for _, c := range corners {
		r, ok := cornerRect(img.Bounds(), m, c)
		if !ok {
			continue
		}
		sum += variance(imaging.Luma(img, r))
		n++
	}
	if n == 0 {
		return 0
	}

	baseline := sum / float64(n)
	if baseline < minBaselineVariance {
		return 0
	}
	return clamp01(1 - variance(regionLuma)/baseline)
}

// cornerRect mirrors the watermark placement into one of the other three
// corners, keeping the same size and margin. ok is false when the rectangle
// does not fit inside bounds. On images barely larger than the region the
// mirrored rectangles can overlap the watermark region itself; the baseline
// stays usable because the overlap is partial.
func cornerRect(bounds image.Rectangle, m *mask.Mask, c Corner) (image.Rectangle, bool) {
	var x, y int
	switch c {
	case TopLeft:
		x = bounds.Min.X + m.Margin
		y = bounds.Min.Y + m.Margin
	case TopRight:
		x = bounds.Max.X - m.Margin - m.Size
		y = bounds.Min.Y + m.Margin
	case BottomLeft:
		x = bounds.Min.X + m.Margin
		y = bounds.Max.Y - m.Margin - m.Size
	default:
		return image.Rectangle{}, false
	}

	rect := image.Rect(x, y, x+m.Size, y+m.Size)
	return rect, rect.In(bounds)
}

func variance(plane []float64) float64 {
	if len(plane) == 0 {
		return 0
	}

	var sum, sumSq float64
	for _, v := range plane {
		sum += v
		sumSq += v * v
	}
	n := float64(len(plane))
	mean := sum / n
	return sumSq/n - mean*mean
}
