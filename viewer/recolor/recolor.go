// Package recolor applies cosmetic color transforms to rasterized pages.
//
// Two mutually exclusive strategies exist: a fixed per-theme filter for the
// built-in themes, and a per-pixel classification overlay for user-custom
// colors. Exactly one runs per render, selected by the active theme.
package recolor

import (
	"image"

	"pdfview/viewer/colors"
)

// Apply recolors the bitmap in place according to the active theme.
func Apply(img *image.RGBA, theme colors.Theme, scheme colors.Scheme) {
	switch theme {
	case colors.ThemeLight:
		// Identity; nothing to do.
	case colors.ThemeDark:
		Dark.Apply(img)
	case colors.ThemeSepia:
		Sepia.Apply(img)
	case colors.ThemeCustom:
		ApplyOverlay(img, scheme, scheme.Dark())
	}
}
