package viewer

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"pdfview/viewer/colors"
	"pdfview/viewer/document"
	"pdfview/viewer/raster"
)

// fakeDoc is a gray page of a fixed intrinsic size. The optional channels
// let a test hold a render in flight; renderErr forces a render failure.
type fakeDoc struct {
	pages  int
	w, h   float64
	closed bool

	renderErr     error
	renderStarted chan struct{}
	renderRelease chan struct{}
}

func (d *fakeDoc) NumPages() int { return d.pages }

func (d *fakeDoc) PageSize(page int) (float64, float64, error) { return d.w, d.h, nil }

func (d *fakeDoc) RenderPage(page, widthPx, heightPx int) (image.Image, error) {
	if d.renderStarted != nil {
		d.renderStarted <- struct{}{}
	}
	if d.renderRelease != nil {
		<-d.renderRelease
	}
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{80, 80, 80, 255}), image.Point{}, draw.Src)
	return img, nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

type fakeOpener struct {
	pages int
	w, h  float64
	err   error
	docs  []*fakeDoc
}

func (o *fakeOpener) Open(path string) (document.Document, error) {
	if o.err != nil {
		return nil, o.err
	}
	d := &fakeDoc{pages: o.pages, w: o.w, h: o.h}
	o.docs = append(o.docs, d)
	return d, nil
}

func newTestViewer(t *testing.T, opener *fakeOpener) *Viewer {
	t.Helper()
	v := New(opener, Config{ViewportWidth: 1280, ViewportHeight: 800, DevicePixelRatio: 2.0})
	if opener != nil {
		if _, err := v.Open("/tmp/doc.pdf"); err != nil {
			t.Fatalf("open: %v", err)
		}
		t.Cleanup(func() { v.Close() })
	}
	return v
}

func TestScaleClampAtBounds(t *testing.T) {
	v := newTestViewer(t, &fakeOpener{pages: 1, w: 612, h: 792})

	v.SetZoom(MaxScale)
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	if got := v.View().Scale; got != MaxScale {
		t.Errorf("repeated zoom in from max: scale %v, want %v", got, MaxScale)
	}
	if v.ZoomIn() != EffectNone {
		t.Error("zoom in at max should be a no-op")
	}

	v.SetZoom(MinScale)
	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	if got := v.View().Scale; got != MinScale {
		t.Errorf("repeated zoom out from min: scale %v, want %v", got, MinScale)
	}

	v.SetZoom(100)
	if got := v.View().Scale; got != MaxScale {
		t.Errorf("SetZoom above max: got %v", got)
	}
	v.SetZoom(0.0001)
	if got := v.View().Scale; got != MinScale {
		t.Errorf("SetZoom below min: got %v", got)
	}
}

func TestPageBounds(t *testing.T) {
	v := newTestViewer(t, &fakeOpener{pages: 3, w: 612, h: 792})

	if v.GoToPage(0) != EffectNone {
		t.Error("goToPage(0) should be ignored")
	}
	if v.GoToPage(4) != EffectNone {
		t.Error("goToPage(pageCount+1) should be ignored")
	}
	if got := v.Status().Page; got != 1 {
		t.Errorf("page moved to %d", got)
	}

	if v.PreviousPage() != EffectNone {
		t.Error("previousPage at page 1 should be a no-op")
	}

	v.GoToPage(3)
	if v.NextPage() != EffectNone {
		t.Error("nextPage at the last page should be a no-op")
	}
	if got := v.Status().Page; got != 3 {
		t.Errorf("page: got %d, want 3", got)
	}
}

func TestFitHeight(t *testing.T) {
	// Intrinsic height 1000, viewport 800 -> scale 0.8.
	v := newTestViewer(t, &fakeOpener{pages: 1, w: 700, h: 1000})

	if v.FitHeight() != EffectRedraw {
		t.Fatal("fitHeight should change the scale")
	}
	if got := v.View().Scale; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("scale: got %v, want 0.8", got)
	}
}

func TestFitHeightWithoutDocument(t *testing.T) {
	v := New(&fakeOpener{pages: 1, w: 612, h: 792}, Config{ViewportWidth: 1280, ViewportHeight: 800, DevicePixelRatio: 1})
	if v.FitHeight() != EffectNone {
		t.Error("fitHeight with no document must be a safe no-op")
	}
	// Becomes effective once a document is available.
	if _, err := v.Open("/tmp/doc.pdf"); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer v.Close()
	if v.FitHeight() != EffectRedraw {
		t.Error("fitHeight should apply after a document loads")
	}
}

func TestFitWidthFraction(t *testing.T) {
	// Intrinsic width 640, viewport 1280 * 0.5 -> scale 1.0 (unchanged from
	// load default), so use 0.25 for an observable change.
	v := newTestViewer(t, &fakeOpener{pages: 1, w: 640, h: 1000})

	v.FitWidthFraction(0.25)
	if got := v.View().Scale; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("scale: got %v, want 0.5", got)
	}
}

func TestEndToEndNavigationAndReload(t *testing.T) {
	opener := &fakeOpener{pages: 3, w: 612, h: 792}
	v := newTestViewer(t, opener)

	st := v.Status()
	if st.Page != 1 || st.Scale != 1.0 {
		t.Fatalf("after open: page %d scale %v", st.Page, st.Scale)
	}

	v.NextPage()
	v.NextPage()
	if got := v.Status().Page; got != 3 {
		t.Fatalf("after two nextPage: page %d", got)
	}
	v.NextPage()
	if got := v.Status().Page; got != 3 {
		t.Fatalf("nextPage at end moved to %d", got)
	}

	v.SetZoom(2.5)
	if _, err := v.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	st = v.Status()
	if st.Page != 1 {
		t.Errorf("reload should reset page, got %d", st.Page)
	}
	if st.Scale != 1.0 {
		t.Errorf("reload should reset scale, got %v", st.Scale)
	}
	if !opener.docs[0].closed {
		t.Error("superseded handle should be released")
	}
}

func TestFailedOpenKeepsPreviousDocument(t *testing.T) {
	opener := &fakeOpener{pages: 3, w: 612, h: 792}
	v := newTestViewer(t, opener)
	v.GoToPage(2)

	opener.err = errors.New("file vanished")
	if _, err := v.Open("/tmp/other.pdf"); err == nil {
		t.Fatal("open should fail")
	}

	st := v.Status()
	if st.Path != "/tmp/doc.pdf" || st.Page != 2 || st.PageCount != 3 {
		t.Errorf("previous document disturbed: %+v", st)
	}
	if opener.docs[0].closed {
		t.Error("current handle must not be released on a failed load")
	}
}

func TestReloadWithoutDocumentIsNoop(t *testing.T) {
	v := New(&fakeOpener{pages: 1, w: 1, h: 1}, Config{ViewportWidth: 100, ViewportHeight: 100, DevicePixelRatio: 1})
	if eff, err := v.Reload(); err != nil || eff != EffectNone {
		t.Errorf("reload with nothing loaded: effect %v err %v", eff, err)
	}
	if v.Status().ReloadEnabled {
		t.Error("reload should stay disabled before the first open")
	}
}

func TestThemeSelectsScheme(t *testing.T) {
	v := newTestViewer(t, &fakeOpener{pages: 1, w: 612, h: 792})

	if v.SetTheme("dark") != EffectRedraw {
		t.Fatal("theme change should redraw")
	}
	if v.Scheme().Name != "dark" {
		t.Errorf("scheme: got %q", v.Scheme().Name)
	}
	if v.SetTheme("dark") != EffectNone {
		t.Error("setting the active theme again should be a no-op")
	}
	if v.SetTheme("nonsense") != EffectNone {
		t.Error("unknown theme should be ignored")
	}

	v.SetCustomColors("#112233", "#aabbcc")
	if v.Theme() != colors.ThemeCustom {
		t.Errorf("custom colors should switch to the custom theme, got %v", v.Theme())
	}
	if v.Scheme().Foreground.Hex() != "#112233" || v.Scheme().Background.Hex() != "#aabbcc" {
		t.Errorf("scheme colors: %s / %s", v.Scheme().Foreground.Hex(), v.Scheme().Background.Hex())
	}
}

func TestRenderCurrentSizeAndRecolor(t *testing.T) {
	v := newTestViewer(t, &fakeOpener{pages: 1, w: 100, h: 200})
	v.SetCustomColors("#112233", "#aabbcc")

	frame, err := v.RenderCurrent()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	wantW, wantH := raster.BackingSize(100, 200, 1.0, 2.0)
	if frame.Image.Bounds().Dx() != wantW || frame.Image.Bounds().Dy() != wantH {
		t.Errorf("frame %dx%d, want %dx%d", frame.Image.Bounds().Dx(), frame.Image.Bounds().Dy(), wantW, wantH)
	}

	// The page is uniform (80,80,80): below the light threshold, so the
	// overlay maps everything to the foreground color.
	fg := v.Scheme().Foreground
	r, g, b, _ := frame.Image.At(0, 0).RGBA()
	if uint8(r>>8) != fg.R8 || uint8(g>>8) != fg.G8 || uint8(b>>8) != fg.B8 {
		t.Errorf("recolor missing: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestRenderCurrentWithoutDocument(t *testing.T) {
	v := New(&fakeOpener{}, Config{ViewportWidth: 100, ViewportHeight: 100, DevicePixelRatio: 1})
	if _, err := v.RenderCurrent(); !errors.Is(err, document.ErrNoDocument) {
		t.Errorf("want ErrNoDocument, got %v", err)
	}
}
