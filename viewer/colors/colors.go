// Package colors holds the viewer's color model: hex <-> RGB conversion,
// theme identifiers, and the foreground/background scheme attached to each
// theme.
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color carries both 8-bit (0-255) and normalized (0-1) channel values so
// pixel code and PDF operator code can share one type.
type Color struct {
	R8, G8, B8 uint8
	R, G, B    float64
}

// ParseHex parses a 6-digit hex color string (e.g. "#1a2b3c" or "1a2b3c").
func ParseHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color: %q (expected 6 hex digits)", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid red component in hex: %s", hex)
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid green component in hex: %s", hex)
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid blue component in hex: %s", hex)
	}

	return FromRGB8(uint8(r), uint8(g), uint8(b)), nil
}

// ParseHexOrBlack parses a hex color but fails closed to black on malformed
// input. Recoloring is cosmetic; a bad user color must never block display.
func ParseHexOrBlack(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return FromRGB8(0, 0, 0)
	}
	return c
}

// FromRGB8 creates a Color from 8-bit RGB values.
func FromRGB8(r, g, b uint8) Color {
	return Color{
		R8: r, G8: g, B8: b,
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// ToRGBA converts to Go's color.RGBA with full opacity.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R8, G: c.G8, B: c.B8, A: 255}
}

// Hex returns the "#rrggbb" string representation.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R8, c.G8, c.B8)
}

// Theme selects a recolor strategy. The three built-in themes use the cheap
// filter path; ThemeCustom switches to the per-pixel overlay path.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSepia  Theme = "sepia"
	ThemeCustom Theme = "custom"
)

// ParseTheme validates a theme name.
func ParseTheme(name string) (Theme, error) {
	switch t := Theme(strings.ToLower(name)); t {
	case ThemeLight, ThemeDark, ThemeSepia, ThemeCustom:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme: %s", name)
	}
}

// Scheme is the foreground/background color pair for a theme.
type Scheme struct {
	Name       string
	Foreground Color // text-like pixels
	Background Color // page fill
}

// Built-in schemes. The background doubles as the canvas fill during
// rasterization, so a dark theme renders against a dark canvas.
var (
	SchemeLight = Scheme{
		Name:       "light",
		Foreground: FromRGB8(0, 0, 0),
		Background: FromRGB8(255, 255, 255),
	}

	SchemeDark = Scheme{
		Name:       "dark",
		Foreground: FromRGB8(224, 224, 224), // #e0e0e0
		Background: FromRGB8(26, 26, 26),    // #1a1a1a
	}

	SchemeSepia = Scheme{
		Name:       "sepia",
		Foreground: FromRGB8(91, 70, 54),    // #5b4636
		Background: FromRGB8(244, 236, 216), // #f4ecd8
	}
)

// SchemeFor returns the built-in scheme for a theme. ThemeCustom has no
// built-in scheme; callers supply one via NewCustomScheme.
func SchemeFor(t Theme) Scheme {
	switch t {
	case ThemeDark:
		return SchemeDark
	case ThemeSepia:
		return SchemeSepia
	default:
		return SchemeLight
	}
}

// NewCustomScheme builds a scheme from user-supplied hex colors. Malformed
// components fail closed to black rather than erroring.
func NewCustomScheme(fgHex, bgHex string) Scheme {
	return Scheme{
		Name:       string(ThemeCustom),
		Foreground: ParseHexOrBlack(fgHex),
		Background: ParseHexOrBlack(bgHex),
	}
}

// Dark reports whether the scheme's background is dark enough to shift the
// rastered brightness distribution, which raises the overlay classification
// threshold.
func (s Scheme) Dark() bool {
	mean := (float64(s.Background.R8) + float64(s.Background.G8) + float64(s.Background.B8)) / 3
	return mean < 128
}
