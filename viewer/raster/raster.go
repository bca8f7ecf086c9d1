// Package raster computes device-pixel backing-store sizes and draws pages
// into them.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"pdfview/viewer/colors"
	"pdfview/viewer/document"
)

const (
	// MaxPixelRatioCap bounds the backing-store cost on very dense displays.
	MaxPixelRatioCap = 3.0

	// OversampleBoost sharpens zoomed-out pages by rendering above the
	// display's native density. Applied only while scale < 1.
	OversampleBoost = 1.5
)

// EffectivePixelRatio returns the pixel ratio used for rasterization:
// clamp(1, MaxPixelRatioCap, dpr * boost), where boost applies only when
// zoomed out.
func EffectivePixelRatio(scale, devicePixelRatio float64) float64 {
	ratio := devicePixelRatio
	if scale < 1.0 {
		ratio *= OversampleBoost
	}
	return math.Min(MaxPixelRatioCap, math.Max(1, ratio))
}

// BackingSize returns the device-pixel dimensions of the backing store for a
// page of the given intrinsic size. Identical inputs always yield identical
// sizes.
func BackingSize(intrinsicW, intrinsicH, scale, devicePixelRatio float64) (int, int) {
	ratio := EffectivePixelRatio(scale, devicePixelRatio)
	w := int(math.Round(intrinsicW * scale * ratio))
	h := int(math.Round(intrinsicH * scale * ratio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Render rasterizes one page into a freshly allocated backing store.
//
// The store is filled with the background color before drawing so page edges
// never show transparent fringing, and the page is scaled to fill the store
// exactly with nearest-neighbor resampling. Smoothing stays off on purpose:
// the source is vector/text and resampling blur reads worse than aliasing at
// high pixel ratios.
func Render(doc document.Document, page int, scale, devicePixelRatio float64, background colors.Color) (*image.RGBA, error) {
	intrinsicW, intrinsicH, err := doc.PageSize(page)
	if err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}

	w, h := BackingSize(intrinsicW, intrinsicH, scale, devicePixelRatio)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background.ToRGBA()), image.Point{}, draw.Src)

	src, err := doc.RenderPage(page, w, h)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	// The native render may land a pixel or two off the requested size;
	// snapping here keeps the backing-store guarantee exact.
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	return dst, nil
}
