package export

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfview/viewer/colors"
)

// DirectEngine rewrites color operators inside the PDF's content streams
// instead of rasterizing, so vectors and selectable text survive the
// recolor. Complex PDFs (patterns, shadings, images) may recolor partially.
type DirectEngine struct {
	scheme  colors.Scheme
	scanner *opScanner
	remap   Remap
}

// NewDirectEngine creates a direct rewrite engine for the given scheme.
func NewDirectEngine(scheme colors.Scheme) *DirectEngine {
	return &DirectEngine{
		scheme:  scheme,
		scanner: newOpScanner(),
		remap:   NewRemap(scheme),
	}
}

// Export rewrites input's color operators and writes the result to output.
func (e *DirectEngine) Export(inputPath, outputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return fmt.Errorf("parse PDF: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("determine page count: %w", err)
	}

	fmt.Printf("  [1/3] Rewriting color operators on %d page(s)...\n", ctx.PageCount)
	rewritten := 0
	for pageNum := 1; pageNum <= ctx.PageCount; pageNum++ {
		count, err := e.rewritePage(ctx, pageNum)
		if err != nil {
			fmt.Printf("        Warning: page %d skipped: %v\n", pageNum, err)
			continue
		}
		rewritten += count
	}
	fmt.Printf("        Rewrote %d color operation(s)\n", rewritten)

	fmt.Println("  [2/3] Prepending page backgrounds...")
	for pageNum := 1; pageNum <= ctx.PageCount; pageNum++ {
		if err := e.addPageBackground(ctx, pageNum); err != nil {
			fmt.Printf("        Warning: page %d background failed: %v\n", pageNum, err)
		}
	}

	fmt.Println("  [3/3] Writing output PDF...")
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	if err := api.WriteContext(ctx, out); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

// rewritePage rewrites the content stream(s) of one page and returns how
// many operators changed.
func (e *DirectEngine) rewritePage(ctx *model.Context, pageNum int) (int, error) {
	pageDict, _, _, err := ctx.PageDict(pageNum, false)
	if err != nil {
		return 0, fmt.Errorf("page dict: %w", err)
	}

	contentsEntry, found := pageDict.Find("Contents")
	if !found {
		return 0, nil
	}

	total := 0
	switch contents := contentsEntry.(type) {
	case types.IndirectRef:
		total, err = e.rewriteStream(ctx, contents)
		if err != nil {
			return 0, err
		}
	case types.Array:
		for _, item := range contents {
			ref, ok := item.(types.IndirectRef)
			if !ok {
				continue
			}
			count, err := e.rewriteStream(ctx, ref)
			if err != nil {
				continue
			}
			total += count
		}
	}
	return total, nil
}

func (e *DirectEngine) rewriteStream(ctx *model.Context, ref types.IndirectRef) (int, error) {
	obj, err := ctx.Dereference(ref)
	if err != nil {
		return 0, err
	}

	sd, ok := obj.(types.StreamDict)
	if !ok {
		return 0, nil
	}
	if err := sd.Decode(); err != nil {
		return 0, nil // undecodable filter chain; leave the stream alone
	}
	if sd.Content == nil {
		return 0, nil
	}

	content := string(sd.Content)
	replacements := make(map[string]string)
	for _, op := range e.scanner.Scan(content) {
		if repl := e.remap.Operator(op); repl != op.Match {
			replacements[op.Match] = repl
		}
	}
	if len(replacements) == 0 {
		return 0, nil
	}

	sd.Content = []byte(e.scanner.Rewrite(content, replacements))
	if err := sd.Encode(); err != nil {
		return 0, fmt.Errorf("encode stream: %w", err)
	}
	sd.Dict["Length"] = types.Integer(len(sd.Raw))

	entry, found := ctx.FindTableEntryForIndRef(&ref)
	if !found {
		return 0, fmt.Errorf("xref entry not found")
	}
	entry.Object = sd

	return len(replacements), nil
}

// addPageBackground prepends a background rectangle in the scheme's
// background color, plus default fill/stroke colors, so content without an
// explicit color reads as foreground-on-background.
func (e *DirectEngine) addPageBackground(ctx *model.Context, pageNum int) error {
	pageDict, _, inhPAttrs, err := ctx.PageDict(pageNum, false)
	if err != nil {
		return err
	}

	var mediaBox *types.Rectangle
	if mb, found := pageDict.Find("MediaBox"); found {
		if arr, ok := mb.(types.Array); ok {
			mediaBox = types.RectForArray(arr)
		}
	}
	if mediaBox == nil && inhPAttrs != nil && inhPAttrs.MediaBox != nil {
		mediaBox = inhPAttrs.MediaBox
	}
	if mediaBox == nil {
		mediaBox = types.NewRectangle(0, 0, 612, 792) // US Letter fallback
	}

	bg := e.scheme.Background
	fg := e.scheme.Foreground
	prefix := fmt.Sprintf("q %.3f %.3f %.3f rg %.2f %.2f %.2f %.2f re f Q %.3f %.3f %.3f rg %.3f %.3f %.3f RG\n",
		bg.R, bg.G, bg.B,
		mediaBox.LL.X, mediaBox.LL.Y, mediaBox.Width(), mediaBox.Height(),
		fg.R, fg.G, fg.B, fg.R, fg.G, fg.B)

	contentsEntry, found := pageDict.Find("Contents")
	if !found {
		return ctx.AppendContent(pageDict, []byte(prefix))
	}

	switch contents := contentsEntry.(type) {
	case types.IndirectRef:
		return e.prependToStream(ctx, contents, []byte(prefix))
	case types.Array:
		if len(contents) > 0 {
			if ref, ok := contents[0].(types.IndirectRef); ok {
				return e.prependToStream(ctx, ref, []byte(prefix))
			}
		}
	}
	return nil
}

func (e *DirectEngine) prependToStream(ctx *model.Context, ref types.IndirectRef, prefix []byte) error {
	obj, err := ctx.Dereference(ref)
	if err != nil {
		return err
	}

	sd, ok := obj.(types.StreamDict)
	if !ok {
		return fmt.Errorf("contents is not a stream dict")
	}
	if err := sd.Decode(); err != nil {
		return err
	}

	sd.Content = append(prefix, sd.Content...)
	if err := sd.Encode(); err != nil {
		return err
	}
	sd.Dict["Length"] = types.Integer(len(sd.Raw))

	entry, found := ctx.FindTableEntryForIndRef(&ref)
	if !found {
		return fmt.Errorf("xref entry not found")
	}
	entry.Object = sd

	return nil
}
