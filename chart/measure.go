package chart

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the rendered width of a label in pixels.
type Measurer interface {
	MeasureWidth(text string) float64
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string) float64

func (f MeasurerFunc) MeasureWidth(text string) float64 { return f(text) }

// FaceMeasurer measures text with a bitmap font face. It needs no GPU or
// shaper, which makes it the default for headless sessions and tests.
type FaceMeasurer struct {
	Face font.Face
	// Scale multiplies the measured advance, e.g. to account for display
	// density.
	Scale float64
}

// BasicMeasurer measures with the 7x13 basic font at scale 1.
var BasicMeasurer = FaceMeasurer{Face: basicfont.Face7x13, Scale: 1}

func (f FaceMeasurer) MeasureWidth(text string) float64 {
	face := f.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	scale := f.Scale
	if scale == 0 {
		scale = 1
	}
	return float64(font.MeasureString(face, text)) / 64 * scale
}
