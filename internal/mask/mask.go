package mask

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// Logo sizes and corner margins used by the watermarking renderer.
const (
	SmallSize   = 48
	SmallMargin = 32
	LargeSize   = 96
	LargeMargin = 64
)

// Selection errors reported before any pixel work happens.
var (
	// ErrConflictingOverride is returned when both size overrides are set.
	ErrConflictingOverride = errors.New("force-small and force-large are mutually exclusive")

	// ErrImageTooSmall is returned when the watermark region does not fit
	// inside the image in at least one axis.
	ErrImageTooSmall = errors.New("image smaller than the watermark region")
)

// Mask is an immutable opacity template for one logo size.
//
// Alpha holds per-pixel opacity in [0, 1], row-major, Size*Size entries.
// Grad holds the Sobel gradient magnitude of the opacity pattern, precomputed
// once so detection never rebuilds the template side of the edge
// correlation. Neither slice may be mutated after construction.
type Mask struct {
	// Size is the logo edge length in pixels (48 or 96).
	Size int

	// Margin is the inset from the bottom-right image corner in pixels.
	Margin int

	// Alpha is the opacity pattern in [0, 1], row-major.
	Alpha []float64

	// Grad is the Sobel gradient magnitude of Alpha scaled to [0, 255].
	Grad []float64
}

var (
	smallOnce sync.Once
	smallMask *Mask
	largeOnce sync.Once
	largeMask *Mask
)

// Small returns the shared 48x48 template. The first call builds it; later
// calls return the same instance.
func Small() *Mask {
	smallOnce.Do(func() {
		smallMask = build(SmallSize, SmallMargin)
	})
	return smallMask
}

// Large returns the shared 96x96 template.
func Large() *Mask {
	largeOnce.Do(func() {
		largeMask = build(LargeSize, LargeMargin)
	})
	return largeMask
}

// Select picks the template for an image of the given dimensions.
//
// With no overrides the small template is used when either dimension is at
// most 1024 pixels and the large template only when both exceed 1024,
// matching the renderer's own scaling rule. forceSmall and forceLarge are
// mutually exclusive; setting both returns ErrConflictingOverride.
func Select(width, height int, forceSmall, forceLarge bool) (*Mask, error) {
	if forceSmall && forceLarge {
		return nil, ErrConflictingOverride
	}
	if forceSmall {
		return Small(), nil
	}
	if forceLarge {
		return Large(), nil
	}
	if width > 1024 && height > 1024 {
		return Large(), nil
	}
	return Small(), nil
}

// Rect computes the watermark rectangle for this template inside bounds.
// It returns ErrImageTooSmall when the region does not fit.
func (m *Mask) Rect(bounds image.Rectangle) (image.Rectangle, error) {
	x := bounds.Max.X - m.Margin - m.Size
	y := bounds.Max.Y - m.Margin - m.Size

	rect := image.Rect(x, y, x+m.Size, y+m.Size)
	if !rect.In(bounds) {
		return image.Rectangle{}, fmt.Errorf("%dx%d image cannot hold a %dpx logo with %dpx margin: %w",
			bounds.Dx(), bounds.Dy(), m.Size, m.Margin, ErrImageTooSmall)
	}
	return rect, nil
}

// MinImageSize returns the smallest image edge length that can hold this
// template's region.
func (m *Mask) MinImageSize() int {
	return m.Size + m.Margin
}
