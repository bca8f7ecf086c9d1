package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"pdfview/viewer/colors"
	"pdfview/viewer/document"
	"pdfview/viewer/raster"
	"pdfview/viewer/recolor"
)

// RasterEngine re-renders every page through the viewer's raster and recolor
// pipeline and reassembles the results into a new PDF.
type RasterEngine struct {
	dpi    int
	theme  colors.Theme
	scheme colors.Scheme
	opener document.Opener
}

// NewRasterEngine creates a raster export engine rendering at the given DPI.
func NewRasterEngine(dpi int, theme colors.Theme, scheme colors.Scheme) *RasterEngine {
	return &RasterEngine{
		dpi:    dpi,
		theme:  theme,
		scheme: scheme,
		opener: document.FitzOpener{},
	}
}

// Export renders, recolors, and reassembles input into output.
func (e *RasterEngine) Export(inputPath, outputPath string) error {
	doc, err := e.opener.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer doc.Close()

	n := doc.NumPages()
	fmt.Printf("  [1/3] Rendering %d page(s) at %d dpi...\n", n, e.dpi)

	tempDir, err := os.MkdirTemp("", "pdfview-export-")
	if err != nil {
		return fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Export runs outside the view state: scale is the DPI ratio and the
	// device pixel ratio stays 1 so the oversample boost never kicks in.
	scale := float64(e.dpi) / 72

	var imagePaths []string
	for page := 1; page <= n; page++ {
		img, err := raster.Render(doc, page, scale, 1.0, e.scheme.Background)
		if err != nil {
			return fmt.Errorf("render page %d: %w", page, err)
		}
		recolor.Apply(img, e.theme, e.scheme)

		path := filepath.Join(tempDir, fmt.Sprintf("page-%03d.png", page))
		if err := savePNG(path, img); err != nil {
			return fmt.Errorf("save page %d: %w", page, err)
		}
		imagePaths = append(imagePaths, path)
	}

	fmt.Println("  [2/3] Recolored all pages")
	fmt.Println("  [3/3] Assembling output PDF...")

	imp := pdfcpu.DefaultImportConfig()
	imp.DPI = e.dpi
	if err := api.ImportImagesFile(imagePaths, outputPath, imp, nil); err != nil {
		return fmt.Errorf("assemble PDF: %w", err)
	}

	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
