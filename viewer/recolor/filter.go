package recolor

import (
	"image"
	"math"
)

// Filter is a fixed affine color transform (out = M*in + bias, channels in
// 0..1) applied uniformly to every pixel. The built-in themes precompute
// theirs once, so applying one costs a handful of multiplies per pixel and
// no classification work.
type Filter struct {
	m    [9]float64
	bias [3]float64
}

// Apply runs the transform over the bitmap in place, clamping each channel.
// Alpha is untouched.
func (f *Filter) Apply(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i]) / 255
		g := float64(pix[i+1]) / 255
		b := float64(pix[i+2]) / 255

		nr := f.m[0]*r + f.m[1]*g + f.m[2]*b + f.bias[0]
		ng := f.m[3]*r + f.m[4]*g + f.m[5]*b + f.bias[1]
		nb := f.m[6]*r + f.m[7]*g + f.m[8]*b + f.bias[2]

		pix[i] = clamp8(nr)
		pix[i+1] = clamp8(ng)
		pix[i+2] = clamp8(nb)
	}
}

func clamp8(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}

// hueRotate returns the SVG feColorMatrix hue-rotation matrix for the given
// angle in degrees.
func hueRotate(deg float64) [9]float64 {
	c := math.Cos(deg * math.Pi / 180)
	s := math.Sin(deg * math.Pi / 180)
	return [9]float64{
		0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928,
		0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283,
		0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072,
	}
}

const (
	darkContrast   = 0.9
	darkBrightness = 1.05
	sepiaBright    = 1.05
)

// darkFilter approximates a dark palette without re-deriving text/background
// segmentation: invert, rotate hue 180 degrees so image colors keep their
// perceived hue, then a mild contrast/brightness correction.
//
// Composed into one affine transform: with H the hue matrix (rows sum to 1),
// invert contributes -H*c + 1, contrast k maps v -> k*v + 0.5*(1-k), and
// brightness s scales the result.
func darkFilter() *Filter {
	h := hueRotate(180)
	f := &Filter{}
	for i := range h {
		f.m[i] = -darkBrightness * darkContrast * h[i]
	}
	bias := darkBrightness * (darkContrast + 0.5*(1-darkContrast))
	f.bias = [3]float64{bias, bias, bias}
	return f
}

// sepiaFilter desaturates with a warm tint (the standard sepia matrix) and
// brightens slightly.
func sepiaFilter() *Filter {
	sepia := [9]float64{
		0.393, 0.769, 0.189,
		0.349, 0.686, 0.168,
		0.272, 0.534, 0.131,
	}
	f := &Filter{}
	for i := range sepia {
		f.m[i] = sepiaBright * sepia[i]
	}
	return f
}

var (
	// Dark and Sepia are the precomputed display transforms for the built-in
	// themes. Light is the identity and has no filter at all.
	Dark  = darkFilter()
	Sepia = sepiaFilter()
)
