package viewer

import (
	"image"

	"pdfview/viewer/colors"
	"pdfview/viewer/document"
	"pdfview/viewer/raster"
	"pdfview/viewer/recolor"
)

// Effect tells the caller what a state mutation requires next. Operations
// never render on their own; the command loop turns EffectRedraw into at
// most one in-flight render.
type Effect int

const (
	EffectNone Effect = iota
	EffectRedraw
)

// Config carries the display environment supplied by the host.
type Config struct {
	ViewportWidth    int
	ViewportHeight   int
	DevicePixelRatio float64
}

// Viewer is the explicit state struct behind every operation: the document
// session, the view state, and the color scheme. Nothing here is shared
// across goroutines; the command loop owns it.
type Viewer struct {
	opener  document.Opener
	session *document.Session

	view   ViewState
	theme  colors.Theme
	scheme colors.Scheme

	generation uint64
	everOpened bool
}

// New returns a viewer with no document loaded, at the light theme and
// scale 1.0.
func New(opener document.Opener, cfg Config) *Viewer {
	dpr := cfg.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1.0
	}
	return &Viewer{
		opener: opener,
		view: ViewState{
			Scale:            1.0,
			DevicePixelRatio: dpr,
			ViewportWidth:    cfg.ViewportWidth,
			ViewportHeight:   cfg.ViewportHeight,
		},
		theme:  colors.ThemeLight,
		scheme: colors.SchemeLight,
	}
}

// Open loads the document at path into a fresh session, releasing the old
// one only after the new one is installed. A render job still holding the
// old handle keeps it open until the job completes; its result is then
// discarded by generation. On failure the previous document stays loaded
// and displayed.
func (v *Viewer) Open(path string) (Effect, error) {
	next, err := document.Open(v.opener, path, v.generation+1)
	if err != nil {
		return EffectNone, err
	}

	old := v.session
	v.session = next
	v.generation++
	v.everOpened = true
	v.view.Scale = 1.0

	if old != nil {
		old.Close()
	}
	return EffectRedraw, nil
}

// Reload re-opens the session's current path. A no-op if no document has
// ever been loaded.
func (v *Viewer) Reload() (Effect, error) {
	if v.session == nil {
		return EffectNone, nil
	}
	return v.Open(v.session.Path)
}

// NextPage advances one page; a no-op at the last page.
func (v *Viewer) NextPage() Effect {
	if v.session == nil {
		return EffectNone
	}
	return redrawIf(v.session.SetPage(v.session.CurrentPage + 1))
}

// PreviousPage goes back one page; a no-op at page 1.
func (v *Viewer) PreviousPage() Effect {
	if v.session == nil {
		return EffectNone
	}
	return redrawIf(v.session.SetPage(v.session.CurrentPage - 1))
}

// GoToPage jumps to page n. Out-of-range requests are silently ignored.
func (v *Viewer) GoToPage(n int) Effect {
	if v.session == nil {
		return EffectNone
	}
	return redrawIf(v.session.SetPage(n))
}

func (v *Viewer) ZoomIn() Effect  { return redrawIf(v.view.ZoomIn()) }
func (v *Viewer) ZoomOut() Effect { return redrawIf(v.view.ZoomOut()) }

// SetZoom clamps value into the zoom bounds.
func (v *Viewer) SetZoom(value float64) Effect { return redrawIf(v.view.SetZoom(value)) }

// ResetZoom returns to scale 1.0.
func (v *Viewer) ResetZoom() Effect { return v.SetZoom(1.0) }

// FitHeight derives the scale that makes the current page's intrinsic height
// match the viewport height exactly. Safe to call with no document loaded.
func (v *Viewer) FitHeight() Effect {
	if v.session == nil || v.view.ViewportHeight <= 0 {
		return EffectNone
	}
	_, h, err := v.session.PageSize()
	if err != nil || h <= 0 {
		return EffectNone
	}
	return v.SetZoom(float64(v.view.ViewportHeight) / h)
}

// FitWidthFraction derives the scale that makes the page's intrinsic width
// fill the given fraction of the viewport width.
func (v *Viewer) FitWidthFraction(f float64) Effect {
	if v.session == nil || v.view.ViewportWidth <= 0 || f <= 0 {
		return EffectNone
	}
	w, _, err := v.session.PageSize()
	if err != nil || w <= 0 {
		return EffectNone
	}
	return v.SetZoom(float64(v.view.ViewportWidth) * f / w)
}

// SetTheme switches the recolor strategy. Unknown names are ignored.
func (v *Viewer) SetTheme(name string) Effect {
	t, err := colors.ParseTheme(name)
	if err != nil || t == v.theme {
		return EffectNone
	}
	v.theme = t
	if t != colors.ThemeCustom {
		v.scheme = colors.SchemeFor(t)
	} else if v.scheme.Name != string(colors.ThemeCustom) {
		// First switch to custom without picked colors: sensible defaults
		// rather than black-on-black.
		v.scheme = colors.NewCustomScheme(colors.SchemeLight.Foreground.Hex(), colors.SchemeLight.Background.Hex())
	}
	return EffectRedraw
}

// SetCustomColors installs user-picked colors and switches to the overlay
// path. Malformed hex strings fail closed to black.
func (v *Viewer) SetCustomColors(fgHex, bgHex string) Effect {
	v.theme = colors.ThemeCustom
	v.scheme = colors.NewCustomScheme(fgHex, bgHex)
	return EffectRedraw
}

// Resize updates the logical viewport and pixel ratio.
func (v *Viewer) Resize(width, height int, dpr float64) Effect {
	if width == v.view.ViewportWidth && height == v.view.ViewportHeight && dpr == v.view.DevicePixelRatio {
		return EffectNone
	}
	v.view.ViewportWidth = width
	v.view.ViewportHeight = height
	if dpr > 0 {
		v.view.DevicePixelRatio = dpr
	}
	return EffectRedraw
}

func redrawIf(changed bool) Effect {
	if changed {
		return EffectRedraw
	}
	return EffectNone
}

// Status is the state the viewer exposes outward for display.
type Status struct {
	Page          int
	PageCount     int
	Scale         float64
	Theme         colors.Theme
	Path          string
	ReloadEnabled bool
}

func (v *Viewer) Status() Status {
	st := Status{
		Scale:         v.view.Scale,
		Theme:         v.theme,
		ReloadEnabled: v.everOpened,
	}
	if v.session != nil {
		st.Page = v.session.CurrentPage
		st.PageCount = v.session.PageCount
		st.Path = v.session.Path
	}
	return st
}

// View exposes the current view state (read-only copy).
func (v *Viewer) View() ViewState { return v.view }

// Scheme exposes the active color scheme.
func (v *Viewer) Scheme() colors.Scheme { return v.scheme }

// Theme exposes the active theme.
func (v *Viewer) Theme() colors.Theme { return v.theme }

// Frame is one rendered, recolored page bitmap.
type Frame struct {
	Page       int
	PageCount  int
	Generation uint64
	Image      *image.RGBA
}

// renderJob snapshots everything a render needs so it can run off the loop
// goroutine without touching live viewer state. The job holds a reference
// on the document handle until it finishes.
type renderJob struct {
	doc        document.Document
	release    func()
	page       int
	pageCount  int
	scale      float64
	dpr        float64
	theme      colors.Theme
	scheme     colors.Scheme
	generation uint64
}

func (v *Viewer) snapshot() (renderJob, bool) {
	if v.session == nil {
		return renderJob{}, false
	}
	return renderJob{
		doc:        v.session.Retain(),
		release:    v.session.Release,
		page:       v.session.CurrentPage,
		pageCount:  v.session.PageCount,
		scale:      v.view.Scale,
		dpr:        v.view.DevicePixelRatio,
		theme:      v.theme,
		scheme:     v.scheme,
		generation: v.generation,
	}, true
}

// render rasterizes and recolors one page. The backing store is filled with
// the active background color, then the recolor pass follows strictly within
// the same task; the buffer is never aliased elsewhere.
func (j renderJob) render() (Frame, error) {
	defer j.release()
	img, err := raster.Render(j.doc, j.page, j.scale, j.dpr, j.scheme.Background)
	if err != nil {
		return Frame{}, err
	}
	recolor.Apply(img, j.theme, j.scheme)
	return Frame{
		Page:       j.page,
		PageCount:  j.pageCount,
		Generation: j.generation,
		Image:      img,
	}, nil
}

// RenderCurrent renders the current page synchronously. Used by the export
// path and tests; the interactive path goes through the Loop.
func (v *Viewer) RenderCurrent() (Frame, error) {
	job, ok := v.snapshot()
	if !ok {
		return Frame{}, document.ErrNoDocument
	}
	return job.render()
}

// Close releases the current session.
func (v *Viewer) Close() error { return v.session.Close() }
