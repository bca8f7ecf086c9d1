package recolor

import (
	"image"

	"pdfview/viewer/colors"
)

// Classification thresholds for the overlay pass. A dark canvas fill shifts
// the brightness distribution of background regions upward, so pages
// rastered against a dark background use the higher cutoff.
const (
	LightThreshold      = 128
	DarkCanvasThreshold = 200
)

// OverlayThreshold returns the brightness cutoff for foreground
// classification given the canvas fill the page was rendered against.
func OverlayThreshold(darkCanvas bool) uint32 {
	if darkCanvas {
		return DarkCanvasThreshold
	}
	return LightThreshold
}

// ClassifyForeground reports whether a pixel reads as text-like: its mean
// channel brightness falls below the threshold.
func ClassifyForeground(r, g, b uint8, threshold uint32) bool {
	return (uint32(r)+uint32(g)+uint32(b))/3 < threshold
}

// ApplyOverlay remaps every non-transparent pixel onto the scheme's
// foreground or background color, preserving the original alpha. This is the
// deliberately expensive path; it runs only for user-custom colors.
func ApplyOverlay(img *image.RGBA, scheme colors.Scheme, darkCanvas bool) {
	threshold := OverlayThreshold(darkCanvas)
	fg := scheme.Foreground
	bg := scheme.Background

	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		a := pix[i+3]
		if a == 0 {
			continue
		}

		var c colors.Color
		if ClassifyForeground(pix[i], pix[i+1], pix[i+2], threshold) {
			c = fg
		} else {
			c = bg
		}

		if a == 255 {
			pix[i] = c.R8
			pix[i+1] = c.G8
			pix[i+2] = c.B8
			continue
		}
		// RGBA stores premultiplied channels; scale for partial alpha.
		pix[i] = uint8(uint32(c.R8) * uint32(a) / 255)
		pix[i+1] = uint8(uint32(c.G8) * uint32(a) / 255)
		pix[i+2] = uint8(uint32(c.B8) * uint32(a) / 255)
	}
}
