package render

import (
	"fmt"
	"math"
)

// Size is a width and height pair, in pixels.
type Size struct {
	W int
	H int
}

// String returns the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// Fit scales original uniformly so that it fits within bound.
//
// The scale factor is the smaller of the two per-axis ratios, so the limiting
// axis matches bound and the other axis may come out smaller. Each component
// is rounded to the nearest integer and clamped to at least 1. Both sizes must
// have positive components.
func Fit(original, bound Size) Size {
	ratio := math.Min(
		float64(bound.W)/float64(original.W),
		float64(bound.H)/float64(original.H),
	)

	return Size{
		W: max(1, int(math.Round(float64(original.W)*ratio))),
		H: max(1, int(math.Round(float64(original.H)*ratio))),
	}
}

// TargetSize returns the grid size a source of the given size should be
// scaled to: the fitted size when s preserves aspect ratio, otherwise the
// configured size as is.
func TargetSize(s Settings, source Size) Size {
	if !s.PreserveAspectRatio || source.W < 1 || source.H < 1 {
		return s.Size()
	}

	return Fit(source, s.Size())
}
