// Package document owns the loaded document handle and its lifecycle.
package document

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"
)

// Document is an open, decoded document. Page numbers are 1-based.
type Document interface {
	// NumPages returns the page count; fixed for the life of the handle.
	NumPages() int

	// PageSize returns the intrinsic size of a page in points.
	PageSize(page int) (w, h float64, err error)

	// RenderPage rasterizes a page into a bitmap of exactly widthPx x heightPx.
	RenderPage(page int, widthPx, heightPx int) (image.Image, error)

	// Close releases the handle. The Document must not be used afterwards.
	Close() error
}

// Opener decodes a document from a path.
type Opener interface {
	Open(path string) (Document, error)
}

// LoadError reports a failed open or reload. The previous session, if any,
// stays untouched; callers surface the failure without crashing.
type LoadError struct {
	Path   string
	Reason error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Reason }

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// Session owns the currently loaded document. It is created on open and
// replaced wholesale, never mutated, on every subsequent open or reload.
type Session struct {
	Path        string
	PageCount   int
	CurrentPage int // 1-based, always within [1, PageCount]

	// Generation increases with every successful load so that results
	// computed against a superseded handle can be detected and dropped.
	Generation uint64

	doc Document

	// refs counts the session's own reference plus every render job holding
	// the handle. The document closes when the last reference releases, so a
	// superseding load never pulls the handle out from under a render.
	refs atomic.Int32
}

// Open loads the document at path and returns a fresh session. On failure
// the returned error is a *LoadError and no session is produced.
func Open(opener Opener, path string, generation uint64) (*Session, error) {
	doc, err := opener.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: err}
	}

	n := doc.NumPages()
	if n < 1 {
		doc.Close()
		return nil, &LoadError{Path: path, Reason: errors.New("document has no pages")}
	}

	s := &Session{
		Path:        path,
		PageCount:   n,
		CurrentPage: 1,
		Generation:  generation,
		doc:         doc,
	}
	s.refs.Store(1)
	return s, nil
}

// Retain takes a reference on the document handle so a render job can use it
// off the owning goroutine. Every Retain must be paired with a Release.
func (s *Session) Retain() Document {
	s.refs.Add(1)
	return s.doc
}

// Release drops one reference, closing the handle when the last one goes.
func (s *Session) Release() {
	if s.refs.Add(-1) == 0 {
		s.doc.Close()
	}
}

// PageSize returns the intrinsic size of the current page in points.
func (s *Session) PageSize() (w, h float64, err error) {
	return s.doc.PageSize(s.CurrentPage)
}

// SetPage moves to page n if it is in range and reports whether it moved.
// Out-of-range requests are silent no-ops, matching Home/End key semantics.
func (s *Session) SetPage(n int) bool {
	if n < 1 || n > s.PageCount || n == s.CurrentPage {
		return false
	}
	s.CurrentPage = n
	return true
}

// Close releases the session's own reference. A render job still holding the
// handle keeps it open until its Release.
func (s *Session) Close() error {
	if s == nil || s.doc == nil {
		return nil
	}
	s.Release()
	return nil
}
