package chart

import (
	"testing"
	"time"
)

func TestVerticalScaleValues(t *testing.T) {
	type testcase struct {
		max      int64
		expected []int64
	}
	for _, tc := range []testcase{
		{max: 8, expected: []int64{0, 1, 2, 3, 4, 5}},
		{max: 0, expected: []int64{0, 0, 0, 0, 0, 0}},
		{max: 600, expected: []int64{0, 100, 200, 300, 400, 500}},
		{max: 10, expected: []int64{0, 2, 4, 6, 8, 10}},
	} {
		v := NewVerticalScale(6, 500*time.Millisecond)
		v.Reset(tc.max)
		got := v.Values()
		if len(got) != len(tc.expected) {
			t.Fatalf("max %d: expected %d levels, got %d", tc.max, len(tc.expected), len(got))
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("max %d: expected level %d = %d, got %d", tc.max, i, tc.expected[i], got[i])
			}
		}
	}
}

func TestVerticalScaleZeroMax(t *testing.T) {
	v := NewVerticalScale(6, 500*time.Millisecond)
	v.Reset(0)
	if got := v.AnimatedMax(); got != 1 {
		t.Errorf("expected substituted denominator 1, got %v", got)
	}
	if got := v.YStep(100); got != 100 {
		t.Errorf("expected yStep 100, got %v", got)
	}
	for _, g := range v.Gridlines(100) {
		if g.Label != "0" {
			t.Errorf("expected placeholder label 0, got %q", g.Label)
		}
	}
}

func TestVerticalScaleAnimation(t *testing.T) {
	v := NewVerticalScale(6, 500*time.Millisecond)
	v.Reset(100)
	if v.Update(100) {
		t.Errorf("expected unchanged max not to animate")
	}
	if !v.Update(200) {
		t.Fatalf("expected new max to animate")
	}
	if !v.Growing() {
		t.Errorf("expected growing scale")
	}
	if v.PreviousMax() != 100 || v.Max() != 200 {
		t.Errorf("expected 100 -> 200, got %d -> %d", v.PreviousMax(), v.Max())
	}
	grid := v.Gridlines(300)
	if len(grid) != 12 {
		t.Errorf("expected old and new gridlines while animating, got %d", len(grid))
	}
	v.Advance(250 * time.Millisecond)
	mid := v.AnimatedMax()
	if mid <= 100 || mid >= 200 {
		t.Errorf("expected animated max between 100 and 200, got %v", mid)
	}
	// Replacing the animation continues from the displayed value.
	v.Update(50)
	if v.Growing() {
		t.Errorf("expected shrinking scale")
	}
	if got := v.AnimatedMax(); got != mid {
		t.Errorf("expected retarget to start at %v, got %v", mid, got)
	}
	for v.Advance(16 * time.Millisecond) {
	}
	if got := v.AnimatedMax(); got != 50 {
		t.Errorf("expected settled max 50, got %v", got)
	}
	grid = v.Gridlines(300)
	if len(grid) != 6 {
		t.Fatalf("expected only target gridlines after settling, got %d", len(grid))
	}
	for i, g := range grid {
		if g.Alpha != 1 {
			t.Errorf("gridline %d: expected alpha 1, got %v", i, g.Alpha)
		}
		expectedY := 300 - float64(g.Value)*6
		if g.Y != expectedY {
			t.Errorf("gridline %d: expected y %v, got %v", i, expectedY, g.Y)
		}
	}
}

func TestFormatValue(t *testing.T) {
	for _, tc := range []struct {
		value    int64
		expected string
	}{
		{0, "0"},
		{9999, "9999"},
		{12500, "12.5K"},
		{2_300_000, "2.3M"},
		{-15000, "-15.0K"},
	} {
		if got := FormatValue(tc.value); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}
