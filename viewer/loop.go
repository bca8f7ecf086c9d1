package viewer

import (
	"context"
	"log"
)

// FrameSink receives rendered frames. The CLI's sink writes PNG files; a GUI
// host would blit to its surface.
type FrameSink interface {
	DisplayFrame(Frame)
}

// LoadReporter surfaces load failures to the user. Load failure is the only
// user-visible error signal; everything else degrades to the last good
// frame.
type LoadReporter interface {
	LoadFailed(path string, err error)
}

type renderResult struct {
	frame Frame
	err   error
	gen   uint64
}

// Loop processes commands one at a time and keeps at most one render in
// flight. A redraw requested while a render is running is coalesced
// latest-wins: the follow-up render sees whatever state the loop holds when
// the in-flight one completes. Results carrying a superseded document
// generation are discarded.
type Loop struct {
	viewer   *Viewer
	sink     FrameSink
	reporter LoadReporter

	commands chan Command
	results  chan renderResult

	rendering     bool
	pendingRedraw bool
}

// NewLoop wires a viewer to a frame sink. reporter may be nil.
func NewLoop(v *Viewer, sink FrameSink, reporter LoadReporter) *Loop {
	return &Loop{
		viewer:   v,
		sink:     sink,
		reporter: reporter,
		commands: make(chan Command, 16),
		results:  make(chan renderResult, 1),
	}
}

// Commands returns the channel the host bridge feeds.
func (l *Loop) Commands() chan<- Command { return l.commands }

// Post enqueues a command without blocking the caller; returns false if the
// queue is full.
func (l *Loop) Post(cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		return false
	}
}

// Run consumes commands until ctx is cancelled. It owns all viewer state;
// only render jobs leave this goroutine, and those work on snapshots.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-l.commands:
			l.apply(cmd)
		case res := <-l.results:
			l.finishRender(res)
		}
	}
}

// apply mutates viewer state for one command and requests a redraw when the
// operation changed anything visible.
func (l *Loop) apply(cmd Command) {
	switch c := cmd.(type) {
	case OpenDocument:
		l.load(c.Path)
	case FileChanged:
		// Rapid successive writes arrive as bursts; collapse the backlog to
		// one reload (queue of depth 1, latest wins).
		l.drainChanges()
		if _, err := l.viewer.Reload(); err != nil {
			l.reportLoadFailure(l.viewer.Status().Path, err)
			return
		}
		l.viewer.FitHeight()
		l.requestRender()
	case SetTheme:
		l.effect(l.viewer.SetTheme(c.Name))
	case SetCustomColors:
		l.effect(l.viewer.SetCustomColors(c.Foreground, c.Background))
	case NextPage:
		l.effect(l.viewer.NextPage())
	case PreviousPage:
		l.effect(l.viewer.PreviousPage())
	case GoToPage:
		l.effect(l.viewer.GoToPage(c.Page))
	case ZoomIn:
		l.effect(l.viewer.ZoomIn())
	case ZoomOut:
		l.effect(l.viewer.ZoomOut())
	case ZoomReset:
		l.effect(l.viewer.ResetZoom())
	case SetZoom:
		l.effect(l.viewer.SetZoom(c.Value))
	case FitHeight:
		l.effect(l.viewer.FitHeight())
	case FitWidthFraction:
		l.effect(l.viewer.FitWidthFraction(c.Fraction))
	case Resize:
		l.effect(l.viewer.Resize(c.Width, c.Height, c.DevicePixelRatio))
	}
}

func (l *Loop) load(path string) {
	if _, err := l.viewer.Open(path); err != nil {
		l.reportLoadFailure(path, err)
		return
	}
	// A fresh document starts at page 1, scale 1.0, then immediately
	// re-derives a fit-to-height scale; coalescing folds this into a single
	// render of the fitted state.
	l.requestRender()
	l.viewer.FitHeight()
	l.requestRender()
}

func (l *Loop) drainChanges() {
	for {
		select {
		case cmd := <-l.commands:
			if _, ok := cmd.(FileChanged); ok {
				continue
			}
			// Not a change notification; process it in order.
			l.apply(cmd)
		default:
			return
		}
	}
}

func (l *Loop) effect(e Effect) {
	if e == EffectRedraw {
		l.requestRender()
	}
}

// requestRender starts a render unless one is already in flight, in which
// case the request is remembered and re-issued from the latest state once
// the current render completes.
func (l *Loop) requestRender() {
	if l.rendering {
		l.pendingRedraw = true
		return
	}
	job, ok := l.viewer.snapshot()
	if !ok {
		return
	}
	l.rendering = true
	go func() {
		frame, err := job.render()
		l.results <- renderResult{frame: frame, err: err, gen: job.generation}
	}()
}

func (l *Loop) finishRender(res renderResult) {
	l.rendering = false

	stale := res.gen != l.viewer.generation
	switch {
	case stale:
		// Result belongs to a superseded document; drop it.
	case res.err != nil:
		// Leave the previous frame on screen; log only.
		log.Printf("[render] page render failed: %v", res.err)
	default:
		l.sink.DisplayFrame(res.frame)
	}

	if l.pendingRedraw || stale {
		l.pendingRedraw = false
		l.requestRender()
	}
}

func (l *Loop) reportLoadFailure(path string, err error) {
	log.Printf("[load] %s: %v", path, err)
	if l.reporter != nil {
		l.reporter.LoadFailed(path, err)
	}
}
