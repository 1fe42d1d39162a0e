package watermark

import (
	"errors"
	"image"

	"github.com/demark-tools/demark/internal/detection"
	"github.com/demark-tools/demark/internal/imaging"
	"github.com/demark-tools/demark/internal/mask"
)

// Options configures one pipeline run.
type Options struct {
	// Threshold is the detection decision threshold in [0, 1].
	Threshold float64

	// Force skips detection entirely and always inverts. On an image
	// without a real watermark this "recovers" garbage in the corner
	// region; that is the documented contract of forcing.
	Force bool

	// ForceSmall and ForceLarge override size selection. Setting both is
	// an error.
	ForceSmall bool
	ForceLarge bool

	// Detection carries the detector tunables.
	Detection detection.Config
}

// DefaultOptions returns Options with the default detection threshold.
func DefaultOptions() Options {
	return Options{Threshold: detection.DefaultThreshold}
}

// Status tags an Outcome. Callers are expected to handle all three arms.
type Status int

const (
	// StatusRecovered: the overlay was inverted and Outcome.Image holds
	// the restored raster.
	StatusRecovered Status = iota

	// StatusSkipped: detection scored below threshold; the input was not
	// modified and no output image is produced.
	StatusSkipped

	// StatusFailed: validation or geometry rejected the run before any
	// pixel work. Outcome.Err carries the reason.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRecovered:
		return "recovered"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of one image's pipeline run.
type Outcome struct {
	Status Status

	// Image is the restored raster, only set for StatusRecovered. Its
	// bounds start at (0, 0) regardless of the input's bounds.
	Image *image.NRGBA

	// Score is the detection result. Zero when detection was skipped
	// (Force) or never ran (Failed).
	Score detection.Score

	// MaskSize and Region report the resolved template geometry in the
	// input's coordinate space. Unset for failures that precede size
	// resolution.
	MaskSize int
	Region   image.Rectangle

	// Err is the failure reason, non-nil iff Status is StatusFailed. It
	// wraps mask.ErrConflictingOverride, mask.ErrImageTooSmall, or
	// detection.ErrInvalidThreshold for the validation cases.
	Err error
}

// Run executes the pipeline for one decoded image: resolve the mask size,
// detect unless forced, invert if present, otherwise pass through.
//
// All option and geometry validation happens before any pixel is read. The
// input image is never mutated; recovery works on a copy.
func Run(img image.Image, opts Options) Outcome {
	if err := detection.ValidateThreshold(opts.Threshold); err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}

	width, height := dimensions(img)
	m, err := mask.Select(width, height, opts.ForceSmall, opts.ForceLarge)
	if err != nil {
		return Outcome{Status: StatusFailed, Err: err}
	}

	if img == nil {
		return Outcome{Status: StatusFailed, Err: errors.New("nil image")}
	}

	rect, err := m.Rect(img.Bounds())
	if err != nil {
		return Outcome{Status: StatusFailed, MaskSize: m.Size, Err: err}
	}

	var score detection.Score
	if !opts.Force {
		score = detection.Evaluate(img, m, rect, opts.Detection)
		if !score.Present(opts.Threshold) {
			return Outcome{Status: StatusSkipped, Score: score, MaskSize: m.Size, Region: rect}
		}
	}

	restored := imaging.CloneNRGBA(img)
	Restore(restored, m, rect.Sub(img.Bounds().Min))

	return Outcome{
		Status:   StatusRecovered,
		Image:    restored,
		Score:    score,
		MaskSize: m.Size,
		Region:   rect,
	}
}

func dimensions(img image.Image) (int, int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}
