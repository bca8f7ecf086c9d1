package export

import (
	"fmt"
	"math"

	"pdfview/viewer/colors"
)

// Remap rewrites color operator values so document colors land on the
// scheme: paper-like values go to the background, ink-like values to the
// foreground, with interpolation bands between. Saturated colors (likely
// charts or images drawn as vectors) keep their hue and are only adjusted
// for legibility against the new background.
type Remap struct {
	scheme colors.Scheme
}

func NewRemap(scheme colors.Scheme) Remap { return Remap{scheme: scheme} }

// saturation below this reads as a document color (ink/paper/gray rules)
const documentSaturation = 0.15

// Operator returns the rewritten operator text, or the original when no
// change applies.
func (t Remap) Operator(op ColorOp) string {
	switch op.Space {
	case "rgb":
		return t.rgb(op)
	case "gray":
		return t.gray(op)
	case "cmyk":
		return t.cmyk(op)
	default:
		return op.Match
	}
}

func (t Remap) rgb(op ColorOp) string {
	r, g, b := op.Values[0], op.Values[1], op.Values[2]

	if saturation(r, g, b) < documentSaturation {
		nr, ng, nb := t.documentColor(lightness(r, g, b))
		return fmt.Sprintf("%.3f %.3f %.3f %s", nr, ng, nb, op.Operator)
	}

	nr, ng, nb := t.accentColor(r, g, b)
	return fmt.Sprintf("%.3f %.3f %.3f %s", nr, ng, nb, op.Operator)
}

func (t Remap) gray(op ColorOp) string {
	l := op.Values[0]
	nr, ng, nb := t.documentColor(l)

	if t.tinted() {
		// Gray operators cannot carry a tint; switch to the RGB form.
		return fmt.Sprintf("%.3f %.3f %.3f %s", nr, ng, nb, rgbOperator(op))
	}
	return fmt.Sprintf("%.3f %s", nr, op.Operator)
}

func (t Remap) cmyk(op ColorOp) string {
	c, m, y, k := op.Values[0], op.Values[1], op.Values[2], op.Values[3]
	r := (1 - c) * (1 - k)
	g := (1 - m) * (1 - k)
	b := (1 - y) * (1 - k)

	if saturation(r, g, b) < documentSaturation {
		nr, ng, nb := t.documentColor(lightness(r, g, b))
		if t.tinted() {
			return fmt.Sprintf("%.3f %.3f %.3f %s", nr, ng, nb, rgbOperator(op))
		}
		// Grayscale scheme: express the remapped gray in CMYK black.
		return fmt.Sprintf("0.000 0.000 0.000 %.3f %s", 1-nr, op.Operator)
	}

	nr, ng, nb := t.accentColor(r, g, b)
	nc, nm, ny, nk := rgbToCMYK(nr, ng, nb)
	return fmt.Sprintf("%.3f %.3f %.3f %.3f %s", nc, nm, ny, nk, op.Operator)
}

// documentColor maps a near-grayscale value onto the scheme by lightness
// band: paper to background, ink to foreground, with interpolation in
// between so anti-aliased gray edges stay smooth.
func (t Remap) documentColor(l float64) (r, g, b float64) {
	bg := t.scheme.Background
	fg := t.scheme.Foreground

	switch {
	case l > 0.9:
		return bg.R, bg.G, bg.B
	case l > 0.7:
		f := (l - 0.7) / 0.2 // 0 at 0.7, 1 at 0.9
		return lerp3(fg, bg, f)
	case l < 0.15:
		return fg.R, fg.G, fg.B
	case l < 0.4:
		f := l / 0.4
		return fg.R + f*(0.5-fg.R), fg.G + f*(0.5-fg.G), fg.B + f*(0.5-fg.B)
	}

	// Mid-gray: invert for dark schemes, keep for light ones.
	if t.scheme.Dark() {
		l = 1 - l
	}
	return l, l, l
}

// accentColor adjusts a saturated color for the scheme's background. Light
// schemes leave accents alone; dark schemes lift dark accents and temper
// very light ones so both stay readable.
func (t Remap) accentColor(r, g, b float64) (float64, float64, float64) {
	if !t.scheme.Dark() {
		return r, g, b
	}

	h, s, l := rgbToHSL(r, g, b)
	if l < 0.55 {
		l = 0.55 + (l/0.55)*0.2
	} else if l > 0.85 {
		l = 0.7 + (l-0.85)*0.5
	}
	s = math.Min(1.0, s*1.15)
	return hslToRGB(h, s, l)
}

func (t Remap) tinted() bool {
	return !isGray(t.scheme.Background.R, t.scheme.Background.G, t.scheme.Background.B) ||
		!isGray(t.scheme.Foreground.R, t.scheme.Foreground.G, t.scheme.Foreground.B)
}

// rgbOperator returns the RGB form of a gray or CMYK operator, keeping the
// fill/stroke distinction.
func rgbOperator(op ColorOp) string {
	if op.Stroke {
		return "RG"
	}
	return "rg"
}

func lerp3(a, b colors.Color, f float64) (r, g, bl float64) {
	return a.R + f*(b.R-a.R), a.G + f*(b.G-a.G), a.B + f*(b.B-a.B)
}

func isGray(r, g, b float64) bool {
	const eps = 0.02
	return math.Abs(r-g) < eps && math.Abs(g-b) < eps && math.Abs(r-b) < eps
}

func saturation(r, g, b float64) float64 {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	if max == min {
		return 0
	}
	if l := (max + min) / 2; l > 0.5 {
		return (max - min) / (2 - max - min)
	}
	return (max - min) / (max + min)
}

func lightness(r, g, b float64) float64 {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	return (max + min) / 2
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))

	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	case b:
		h = (r-g)/d + 4
	}
	h /= 6
	return
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return hueChannel(p, q, h+1.0/3.0), hueChannel(p, q, h), hueChannel(p, q, h-1.0/3.0)
}

func hueChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

func rgbToCMYK(r, g, b float64) (c, m, y, k float64) {
	k = 1 - math.Max(r, math.Max(g, b))
	if k == 1 {
		return 0, 0, 0, 1
	}
	c = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return
}
