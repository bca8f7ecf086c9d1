package export

import (
	"fmt"
	"strings"
	"testing"

	"pdfview/viewer/colors"
)

func TestRemapPaperAndInkOntoScheme(t *testing.T) {
	remap := NewRemap(colors.SchemeDark)

	// White fill -> background.
	got := remap.Operator(ColorOp{
		Match: "1 1 1 rg", Values: []float64{1, 1, 1}, Operator: "rg", Space: "rgb",
	})
	if got != "0.102 0.102 0.102 rg" {
		t.Errorf("white fill: got %q", got)
	}

	// Black stroke -> foreground.
	got = remap.Operator(ColorOp{
		Match: "0 0 0 RG", Values: []float64{0, 0, 0}, Operator: "RG", Space: "rgb", Stroke: true,
	})
	if got != "0.878 0.878 0.878 RG" {
		t.Errorf("black stroke: got %q", got)
	}
}

func TestRemapGrayKeepsOperatorForGrayScheme(t *testing.T) {
	remap := NewRemap(colors.SchemeDark) // gray-on-gray scheme

	got := remap.Operator(ColorOp{
		Match: "1 g", Values: []float64{1}, Operator: "g", Space: "gray",
	})
	if !strings.HasSuffix(got, " g") {
		t.Errorf("gray scheme should keep the gray operator, got %q", got)
	}
	if got != "0.102 g" {
		t.Errorf("white gray fill: got %q", got)
	}
}

func TestRemapGraySwitchesToRGBForTintedScheme(t *testing.T) {
	remap := NewRemap(colors.SchemeSepia)

	got := remap.Operator(ColorOp{
		Match: "0 G", Values: []float64{0}, Operator: "G", Space: "gray", Stroke: true,
	})
	if !strings.HasSuffix(got, " RG") {
		t.Errorf("tinted scheme needs the RGB stroke operator, got %q", got)
	}

	got = remap.Operator(ColorOp{
		Match: "0 g", Values: []float64{0}, Operator: "g", Space: "gray",
	})
	if !strings.HasSuffix(got, " rg") {
		t.Errorf("tinted scheme needs the RGB fill operator, got %q", got)
	}
}

func TestRemapCMYKBlackText(t *testing.T) {
	remap := NewRemap(colors.SchemeDark)

	// Pure CMYK black is ink -> foreground, expressed as CMYK for a gray
	// scheme.
	got := remap.Operator(ColorOp{
		Match: "0 0 0 1 k", Values: []float64{0, 0, 0, 1}, Operator: "k", Space: "cmyk",
	})
	if got != "0.000 0.000 0.000 0.122 k" {
		t.Errorf("cmyk black: got %q", got)
	}
}

func TestRemapLeavesAccentsAloneOnLightSchemes(t *testing.T) {
	remap := NewRemap(colors.SchemeLight)

	op := ColorOp{Match: "0.8 0.1 0.1 rg", Values: []float64{0.8, 0.1, 0.1}, Operator: "rg", Space: "rgb"}
	if got := remap.Operator(op); got != "0.800 0.100 0.100 rg" {
		t.Errorf("saturated color should survive a light export: got %q", got)
	}
}

func TestRemapLiftsDarkAccentsOnDarkSchemes(t *testing.T) {
	remap := NewRemap(colors.SchemeDark)

	// A dark saturated red must be lightened for legibility, keeping hue.
	op := ColorOp{Match: "0.4 0.05 0.05 rg", Values: []float64{0.4, 0.05, 0.05}, Operator: "rg", Space: "rgb"}
	got := remap.Operator(op)

	var r, g, b float64
	var opName string
	if _, err := fmt.Sscanf(got, "%f %f %f %s", &r, &g, &b, &opName); err != nil {
		t.Fatalf("unparseable result %q: %v", got, err)
	}
	if r <= 0.4 {
		t.Errorf("red channel should lift above the original, got %v", r)
	}
	if !(r > g && r > b) {
		t.Errorf("hue lost: got (%v,%v,%v)", r, g, b)
	}
}
