// Package export writes a recolored copy of a document so the active theme
// travels with the file and shows up in any viewer.
package export

import (
	"fmt"

	"pdfview/viewer/colors"
)

// Options configures an export run.
type Options struct {
	InputFile  string
	OutputFile string

	// Mode selects the engine: "raster" re-renders pages as recolored
	// images (works with any PDF), "direct" rewrites color operators in
	// place (preserves vectors and selectable text).
	Mode string

	// DPI used by the raster engine.
	DPI int

	Theme  colors.Theme
	Scheme colors.Scheme
}

// Engine is the contract both export engines implement.
type Engine interface {
	Export(input, output string) error
}

// Export runs the conversion with the engine selected by opts.Mode.
func Export(opts Options) error {
	var eng Engine

	switch opts.Mode {
	case "raster":
		eng = NewRasterEngine(opts.DPI, opts.Theme, opts.Scheme)
	case "direct":
		eng = NewDirectEngine(opts.Scheme)
	default:
		return fmt.Errorf("unknown export mode: %s", opts.Mode)
	}

	return eng.Export(opts.InputFile, opts.OutputFile)
}
