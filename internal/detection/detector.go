package detection

import (
	"image"
	"math"

	"github.com/demark-tools/demark/internal/imaging"
	"github.com/demark-tools/demark/internal/mask"
)

// Evaluate scores the watermark region rect of img against template m.
//
// rect must be m's region within img (see mask.Rect); the caller is
// responsible for having validated the geometry. All three sub-scores are
// always computed, even when one alone would settle the decision, because
// the weighted combination is the documented contract.
func Evaluate(img image.Image, m *mask.Mask, rect image.Rectangle, cfg Config) Score {
	region := imaging.CropRegion(img, rect)
	luma := imaging.Luma(region, region.Bounds())

	// Negative correlation is evidence of absence, not presence; each
	// component is clamped to [0, 1] before weighting.
	spatial := clamp01(NCC(luma, m.Alpha))

	denoised := imaging.Denoise(region, cfg.blurRadius())
	edges := imaging.GradientMagnitude(imaging.Luma(denoised, denoised.Bounds()), m.Size, m.Size)
	gradient := clamp01(NCC(edges, m.Grad))

	variance := varianceDampening(img, m, luma, cfg.baseline())

	return Score{
		Spatial:  spatial,
		Gradient: gradient,
		Variance: variance,
		Overall:  WeightSpatial*spatial + WeightGradient*gradient + WeightVariance*variance,
	}
}

// NCC computes the normalized cross-correlation of two equal-length planes.
// The result is in [-1, 1] and invariant to linear brightness and contrast
// scaling of either input. Mismatched lengths or a constant plane yield 0.
func NCC(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var sumA, sumB, sumAA, sumBB, sumAB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
		sumAA += a[i] * a[i]
		sumBB += b[i] * b[i]
		sumAB += a[i] * b[i]
	}

	n := float64(len(a))
	num := sumAB - sumA*sumB/n
	den := (sumAA - sumA*sumA/n) * (sumBB - sumB*sumB/n)
	if den <= 0 {
		return 0
	}
	return num / math.Sqrt(den)
}
