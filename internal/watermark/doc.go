// Package watermark reverses the known alpha-blend overlay and orchestrates
// the per-image detect-then-invert pipeline.
//
// The overlay was applied with the forward blend
//
//	watermarked = alpha*255 + (1-alpha)*original
//
// per channel, where alpha is the mask's opacity. Because the mask is known
// the blend is algebraically invertible everywhere the opacity is below 1.
//
// Run is a pure function over one decoded raster plus the two process-wide
// immutable mask templates; it shares no mutable state, so a batch driver
// can run any number of images concurrently without locking.
package watermark
