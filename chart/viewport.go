package chart

import (
	"fmt"
	"math"
)

// Viewport is the visible window expressed as fractions of the whole timeline.
type Viewport struct {
	Start, End float64
}

// FullViewport covers the entire timeline.
var FullViewport = Viewport{Start: 0, End: 1}

// Validate reports whether the window lies within [0,1] and is non-empty.
func (v Viewport) Validate() error {
	if math.IsNaN(v.Start) || math.IsNaN(v.End) || v.Start < 0 || v.End > 1 || v.Start >= v.End {
		return fmt.Errorf("window [%g,%g]: %w", v.Start, v.End, ErrInvalidViewport)
	}
	return nil
}

// Span returns End-Start.
func (v Viewport) Span() float64 { return v.End - v.Start }

// Mapping converts point indices into screen X coordinates for one viewport
// and pixel width. Build one with Map whenever the viewport or width changes.
type Mapping struct {
	Width float64
	N     int
	// VisibleWidth is the share of Width covered by the viewport before zoom.
	VisibleWidth float64
	// EnlargedWidth is the pixel width the whole timeline would occupy at
	// the current zoom.
	EnlargedWidth float64
	// XStep is the pixel distance between consecutive indices.
	XStep float64
	// X0 is the screen X of index 0.
	X0 float64
	// First and Last bound the indices that intersect the screen.
	First, Last int
}

// Map computes the mapping of n points onto width pixels under viewport vp.
// Degenerate inputs are replaced with safe defaults so the result never
// contains NaN geometry, and First/Last always lie within [0,n-1].
func Map(width float64, vp Viewport, n int) Mapping {
	if width <= 0 || math.IsNaN(width) {
		width = 1
	}
	if vp.Validate() != nil {
		vp = FullViewport
	}
	m := Mapping{Width: width, N: n}
	if n < 2 {
		m.XStep = width
		return m
	}
	m.VisibleWidth = width * vp.Span()
	m.XStep = (width / float64(n-1)) * (width / m.VisibleWidth)
	m.EnlargedWidth = width * width / m.VisibleWidth
	m.X0 = -m.EnlargedWidth * vp.Start
	last := float64(n - 1)
	m.First = int(clamp(floor(-m.X0/m.XStep), 0, last))
	m.Last = int(clamp(ceil((width-m.X0)/m.XStep), float64(m.First), last))
	return m
}

// X returns the screen X coordinate of index i.
func (m Mapping) X(i int) float64 {
	return m.X0 + float64(i)*m.XStep
}

// Index resolves a screen X coordinate to the nearest point index.
func (m Mapping) Index(x float64) int {
	if m.N < 1 {
		return -1
	}
	if m.XStep == 0 || math.IsNaN(x) {
		return 0
	}
	return int(clamp(math.Round((x-m.X0)/m.XStep), 0, float64(m.N-1)))
}
