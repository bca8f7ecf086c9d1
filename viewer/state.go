// Package viewer ties the document session, view state, and color scheme
// together and runs the command loop that drives rendering.
package viewer

// Zoom configuration. Fixed defaults, no external config surface.
const (
	MinScale = 0.1
	MaxScale = 5.0
	ZoomStep = 1.2
)

// ViewState holds the zoom scale and the display environment the page is
// rendered against.
type ViewState struct {
	// Scale is the logical zoom level, clamped to [MinScale, MaxScale] at
	// every mutation site.
	Scale float64

	// DevicePixelRatio is the display's physical-to-logical pixel ratio,
	// read-only input from the platform.
	DevicePixelRatio float64

	// Logical viewport size in CSS-like pixels, used by the fit operations.
	ViewportWidth  int
	ViewportHeight int
}

func clampScale(v float64) float64 {
	if v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}
	return v
}

// SetZoom clamps value into range and reports whether the scale changed.
func (v *ViewState) SetZoom(value float64) bool {
	next := clampScale(value)
	if next == v.Scale {
		return false
	}
	v.Scale = next
	return true
}

// ZoomIn multiplies the scale by the fixed step factor.
func (v *ViewState) ZoomIn() bool { return v.SetZoom(v.Scale * ZoomStep) }

// ZoomOut divides the scale by the fixed step factor.
func (v *ViewState) ZoomOut() bool { return v.SetZoom(v.Scale / ZoomStep) }
