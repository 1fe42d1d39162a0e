// Package detection scores the likelihood that the fixed-position overlay is
// present in an image's watermark region.
//
// The score is a fixed-weight ensemble of three independent measures, each
// normalized to [0, 1]:
//
//   - Spatial correlation (weight 0.5): normalized cross-correlation of the
//     region's luminance against the mask's opacity pattern. The overlay
//     brightens pixels in proportion to opacity, so a present watermark
//     makes the region's luminance track the template.
//
//   - Gradient correlation (weight 0.3): the same correlation applied to
//     Sobel gradient magnitudes of a lightly denoised region and the mask's
//     precomputed gradient plane. Edges survive changes in underlying image
//     brightness that can wash out the spatial measure.
//
//   - Variance dampening (weight 0.2): an alpha overlay pulls pixels toward
//     a constant and therefore suppresses local texture variance. The
//     region's luminance variance is compared against a baseline taken from
//     the image's other corners.
//
// No single measure is authoritative; all three are always computed and the
// decision compares the weighted sum against a caller-supplied threshold.
// Detection is probabilistic by nature: a below-threshold score is a normal
// outcome, not an error.
package detection
