package chart

import (
	"errors"
	"testing"
)

func TestNewSeries(t *testing.T) {
	type testcase struct {
		name     string
		abscissa []int64
		lines    []Line
		err      error
	}
	for _, tc := range []testcase{
		{
			name:     "valid",
			abscissa: []int64{1, 2, 3},
			lines:    []Line{{ID: "y0", Values: []int64{1, 2, 3}}},
		},
		{
			name:     "single point",
			abscissa: []int64{1},
			lines:    []Line{{ID: "y0", Values: []int64{1}}},
			err:      ErrTooFewPoints,
		},
		{
			name: "empty",
			err:  ErrTooFewPoints,
		},
		{
			name:     "not increasing",
			abscissa: []int64{1, 3, 3},
			lines:    []Line{{ID: "y0", Values: []int64{1, 2, 3}}},
			err:      ErrNotIncreasing,
		},
		{
			name:     "short line",
			abscissa: []int64{1, 2, 3},
			lines:    []Line{{ID: "y0", Values: []int64{1, 2}}},
			err:      ErrLengthMismatch,
		},
		{
			name:     "duplicate line",
			abscissa: []int64{1, 2},
			lines:    []Line{{ID: "y0", Values: []int64{1, 2}}, {ID: "y0", Values: []int64{1, 2}}},
			err:      ErrDuplicateLine,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSeries("x", tc.abscissa, tc.lines)
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected error %v, got %v", tc.err, err)
			}
			if err != nil {
				return
			}
			if s.Len() != len(tc.abscissa) {
				t.Errorf("expected %d points, got %d", len(tc.abscissa), s.Len())
			}
		})
	}
}

func TestSeriesDates(t *testing.T) {
	s := makeSeries(t, []int64{1, 2, 3})
	if got := s.ShortDate(0); got != "Mar 1" {
		t.Errorf("expected short date %q, got %q", "Mar 1", got)
	}
	if got := s.LongDate(1); got != "Sat, Mar 2" {
		t.Errorf("expected long date %q, got %q", "Sat, Mar 2", got)
	}
}

func TestSeriesIsolatedFromInput(t *testing.T) {
	values := []int64{1, 2, 3}
	s, err := NewSeries("x", []int64{1, 2, 3}, []Line{{ID: "y0", Values: values}})
	if err != nil {
		t.Fatal(err)
	}
	values[0] = 100
	if got := s.Lines()[0].Values[0]; got != 1 {
		t.Errorf("expected series to keep its own copy, got %d", got)
	}
}

func TestMaxBetween(t *testing.T) {
	s := makeSeries(t, []int64{1, 5, 3, 8, 2})
	for _, tc := range []struct {
		first, last int
		expected    int64
	}{
		{0, 4, 8},
		{0, 2, 5},
		{4, 4, 2},
		{-3, 1, 5},
		{2, 40, 8},
	} {
		if got := s.MaxBetween(0, tc.first, tc.last); got != tc.expected {
			t.Errorf("[%d,%d] expected max %d, got %d", tc.first, tc.last, tc.expected, got)
		}
	}
}
