package chart

import (
	"fmt"
	"image/color"
	"time"
)

const (
	shortDateLayout = "Jan 2"
	longDateLayout  = "Mon, Jan 2"
)

// Line is one ordinate column of a [Series].
type Line struct {
	ID     string
	Label  string
	Color  color.NRGBA
	Values []int64
}

// Series is an immutable set of lines sharing one time axis. It is safe to
// share a *Series between any number of readers.
type Series struct {
	xID        string
	abscissa   []int64
	lines      []Line
	lineIndex  map[string]int
	shortDates []string
	longDates  []string
}

// NewSeries builds a Series from an abscissa of unix millisecond timestamps
// and the lines plotted against it. The inputs are copied.
func NewSeries(xID string, abscissa []int64, lines []Line) (*Series, error) {
	if len(abscissa) < 2 {
		return nil, fmt.Errorf("series %q has %d points: %w", xID, len(abscissa), ErrTooFewPoints)
	}
	for i := 1; i < len(abscissa); i++ {
		if abscissa[i] <= abscissa[i-1] {
			return nil, fmt.Errorf("series %q at index %d: %w", xID, i, ErrNotIncreasing)
		}
	}
	s := &Series{
		xID:        xID,
		abscissa:   append([]int64(nil), abscissa...),
		lines:      make([]Line, 0, len(lines)),
		lineIndex:  make(map[string]int, len(lines)),
		shortDates: make([]string, len(abscissa)),
		longDates:  make([]string, len(abscissa)),
	}
	for _, l := range lines {
		if len(l.Values) != len(abscissa) {
			return nil, fmt.Errorf("line %q has %d values, want %d: %w", l.ID, len(l.Values), len(abscissa), ErrLengthMismatch)
		}
		if _, ok := s.lineIndex[l.ID]; ok {
			return nil, fmt.Errorf("line %q: %w", l.ID, ErrDuplicateLine)
		}
		l.Values = append([]int64(nil), l.Values...)
		s.lineIndex[l.ID] = len(s.lines)
		s.lines = append(s.lines, l)
	}
	for i, ts := range s.abscissa {
		t := time.UnixMilli(ts).UTC()
		s.shortDates[i] = t.Format(shortDateLayout)
		s.longDates[i] = t.Format(longDateLayout)
	}
	return s, nil
}

// XID returns the identifier of the abscissa column.
func (s *Series) XID() string { return s.xID }

// Len returns the number of points N.
func (s *Series) Len() int { return len(s.abscissa) }

// Timestamp returns the abscissa value at index i.
func (s *Series) Timestamp(i int) int64 { return s.abscissa[i] }

// Lines returns the lines in declaration order. The returned slice must not be
// modified.
func (s *Series) Lines() []Line { return s.lines }

// Line returns the line with the given id.
func (s *Series) Line(id string) (Line, bool) {
	idx, ok := s.lineIndex[id]
	if !ok {
		return Line{}, false
	}
	return s.lines[idx], true
}

// LineIndex returns the position of the line with the given id.
func (s *Series) LineIndex(id string) (int, bool) {
	idx, ok := s.lineIndex[id]
	return idx, ok
}

// ShortDate returns the axis label for index i.
func (s *Series) ShortDate(i int) string { return s.shortDates[i] }

// LongDate returns the tooltip heading for index i.
func (s *Series) LongDate(i int) string { return s.longDates[i] }

// MaxBetween returns the largest value of line l in the closed index range
// [first,last].
func (s *Series) MaxBetween(l, first, last int) int64 {
	values := s.lines[l].Values
	first = clamp(first, 0, len(values)-1)
	last = clamp(last, first, len(values)-1)
	m := values[first]
	for _, v := range values[first+1 : last+1] {
		m = max(m, v)
	}
	return m
}
