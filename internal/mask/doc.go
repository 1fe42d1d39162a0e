// Package mask holds the watermark opacity templates and their placement
// geometry.
//
// The watermarking renderer composites one of two logo sizes onto the
// bottom-right corner of its output: a 48x48 logo inset 32px from the corner
// on images up to 1024px, and a 96x96 logo inset 64px on larger images. Both
// templates are built once at first use and are immutable for the lifetime
// of the process, so they can be shared freely across goroutines.
//
// Size selection from image dimensions is a heuristic tied to how the
// renderer scales its overlay with output resolution, not a guarantee.
// Callers that know better (for example a 1025x200 strip that still carries
// the small logo) can override it with the force flags on Select.
package mask
