package detection

import (
	"errors"
	"fmt"
)

// Ensemble weights. These are part of the detector's contract, not tunables:
// downstream thresholds are calibrated against this exact combination.
const (
	WeightSpatial  = 0.5
	WeightGradient = 0.3
	WeightVariance = 0.2
)

// DefaultThreshold is the decision threshold used when the caller does not
// supply one.
const DefaultThreshold = 0.25

const defaultBlurRadius = 1.0

// ErrInvalidThreshold is returned for thresholds outside [0, 1].
var ErrInvalidThreshold = errors.New("threshold must be in [0, 1]")

// Score is the detector's composite result. All components are in [0, 1].
type Score struct {
	// Spatial is the luminance correlation against the opacity template.
	Spatial float64

	// Gradient is the edge-map correlation against the template gradient.
	Gradient float64

	// Variance is the texture-dampening measure.
	Variance float64

	// Overall is 0.5*Spatial + 0.3*Gradient + 0.2*Variance.
	Overall float64
}

// Present reports whether the score clears the decision threshold.
func (s Score) Present(threshold float64) bool {
	return s.Overall >= threshold
}

// Corner identifies a non-watermark corner of the image used as a variance
// baseline.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
)

// Config carries the detector tunables. The zero value uses the documented
// defaults.
type Config struct {
	// BlurRadius is the Gaussian radius applied to the region before the
	// gradient correlation, to keep compression noise out of the edge
	// maps. Zero means the default of 1.0; negative disables denoising.
	BlurRadius float64

	// Baseline lists the corners whose variance forms the dampening
	// baseline. Nil means all three non-watermark corners. This is a
	// heuristic choice, not a contract; corners that fall outside the
	// image are skipped.
	Baseline []Corner
}

func (c Config) blurRadius() float64 {
	if c.BlurRadius == 0 {
		return defaultBlurRadius
	}
	return c.BlurRadius
}

func (c Config) baseline() []Corner {
	if c.Baseline == nil {
		return []Corner{TopLeft, TopRight, BottomLeft}
	}
	return c.Baseline
}

// ValidateThreshold checks that a decision threshold is usable. Out-of-range
// values are rejected, never clamped.
func ValidateThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("threshold %g: %w", threshold, ErrInvalidThreshold)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
