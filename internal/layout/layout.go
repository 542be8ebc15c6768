// Package layout computes where an image is drawn on a PDF page.
//
// All lengths are millimetres. The page geometry of a document is fixed
// once from its orientation and fill mode; every image is then placed on
// that geometry with ComputePlacement.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidLayoutInput is matched by every precondition failure of the
// layout functions.
var ErrInvalidLayoutInput = errors.New("invalid layout input")

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation accepts "portrait" or "landscape" in any case. An empty
// string selects Portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case "", Portrait:
		return Portrait, nil
	case Landscape:
		return Landscape, nil
	}
	return "", fmt.Errorf("%w: unknown orientation %q", ErrInvalidLayoutInput, s)
}

// FillMode selects how an image is scaled into the drawing area.
type FillMode string

const (
	// Fit scales the image so it is entirely visible (contain).
	Fit FillMode = "fit"
	// Fill scales the image so the drawing area is fully covered (cover).
	Fill FillMode = "fill"
)

// ParseFillMode accepts "fit" or "fill" in any case. An empty string
// selects Fit.
func ParseFillMode(s string) (FillMode, error) {
	switch FillMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Fit:
		return Fit, nil
	case Fill:
		return Fill, nil
	}
	return "", fmt.Errorf("%w: unknown fill mode %q", ErrInvalidLayoutInput, s)
}

func (m FillMode) valid() bool { return m == Fit || m == Fill }

// A4 sheet in portrait orientation.
const (
	A4Width  = 210.0
	A4Height = 297.0
)

// FitMargin is the margin kept on every side of the page under Fit.
const FitMargin = 10.0

// MarginFor returns the page margin used with mode.
func MarginFor(mode FillMode) float64 {
	if mode == Fill {
		return 0
	}
	return FitMargin
}

// PageFormat is the A4 sheet in a given orientation.
type PageFormat struct {
	Orientation Orientation
}

// Size returns the page width and height. Landscape swaps the sheet sides.
func (p PageFormat) Size() (width, height float64) {
	if p.Orientation == Landscape {
		return A4Height, A4Width
	}
	return A4Width, A4Height
}

// Placement is the rectangle an image is drawn into. X and Y are measured
// from the top-left corner of the page and may be negative when the image
// overflows the page under Fill.
type Placement struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"xOffset"`
	Y      float64 `json:"yOffset"`
}

// ComputePlacement scales an image with the given aspect ratio
// (width / height) into the page drawing area and centres it on the page.
//
// Under Fit the result lies inside the drawing area and touches at least
// one pair of its opposite edges. Under Fill the result covers the drawing
// area and overflows it on at most one axis.
func ComputePlacement(aspectRatio, pageWidth, pageHeight, margin float64, mode FillMode) (Placement, error) {
	if !finite(aspectRatio) || aspectRatio <= 0 {
		return Placement{}, fmt.Errorf("%w: aspect ratio %v", ErrInvalidLayoutInput, aspectRatio)
	}
	if !finite(margin) || margin < 0 {
		return Placement{}, fmt.Errorf("%w: margin %v", ErrInvalidLayoutInput, margin)
	}
	if !finite(pageWidth) || !finite(pageHeight) || pageWidth <= 2*margin || pageHeight <= 2*margin {
		return Placement{}, fmt.Errorf("%w: page %vx%v with margin %v has no drawing area",
			ErrInvalidLayoutInput, pageWidth, pageHeight, margin)
	}
	if !mode.valid() {
		return Placement{}, fmt.Errorf("%w: fill mode %q", ErrInvalidLayoutInput, mode)
	}

	maxWidth := pageWidth - 2*margin
	maxHeight := pageHeight - 2*margin

	var width, height float64
	switch mode {
	case Fit:
		width = maxWidth
		height = maxWidth / aspectRatio
		if height > maxHeight {
			height = maxHeight
			width = maxHeight * aspectRatio
		}
	case Fill:
		if aspectRatio > maxWidth/maxHeight {
			// wider than the drawing area: width overflows
			height = maxHeight
			width = maxHeight * aspectRatio
		} else {
			width = maxWidth
			height = maxWidth / aspectRatio
		}
	}

	return Placement{
		Width:  width,
		Height: height,
		X:      (pageWidth - width) / 2,
		Y:      (pageHeight - height) / 2,
	}, nil
}

// Geometry is the page geometry shared by every page of one document.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	Mode       FillMode
}

// NewGeometry fixes the page geometry for a document.
func NewGeometry(orientation Orientation, mode FillMode) (Geometry, error) {
	if orientation != Portrait && orientation != Landscape {
		return Geometry{}, fmt.Errorf("%w: orientation %q", ErrInvalidLayoutInput, orientation)
	}
	if !mode.valid() {
		return Geometry{}, fmt.Errorf("%w: fill mode %q", ErrInvalidLayoutInput, mode)
	}
	w, h := PageFormat{Orientation: orientation}.Size()
	return Geometry{PageWidth: w, PageHeight: h, Margin: MarginFor(mode), Mode: mode}, nil
}

// Place computes the placement of an image with the given aspect ratio.
func (g Geometry) Place(aspectRatio float64) (Placement, error) {
	return ComputePlacement(aspectRatio, g.PageWidth, g.PageHeight, g.Margin, g.Mode)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
