package chart

import (
	"testing"
	"time"
)

func newTestLabels(t *testing.T, n int) (*Series, *Labels) {
	t.Helper()
	s := makeSeries(t, ramp(n))
	return s, NewLabels(s, fixedWidth(40), 8, 160, 200*time.Millisecond)
}

func TestLabelsResolve(t *testing.T) {
	_, l := newTestLabels(t, 100)
	full := Map(400, FullViewport, 100)
	scale, flipped := l.Resolve(full)
	if scale != 4 {
		t.Fatalf("expected scale 4, got %d", scale)
	}
	if len(flipped) != 0 {
		t.Errorf("expected no flips on first resolve, got %v", flipped)
	}
	if l.Fading() {
		t.Errorf("expected first resolve not to fade")
	}
	// Unchanged inputs are idempotent.
	if scale, flipped := l.Resolve(full); scale != 4 || flipped != nil {
		t.Errorf("expected (4, nil), got (%d, %v)", scale, flipped)
	}

	zoomed := Map(400, Viewport{Start: 0, End: 0.25}, 100)
	scale, flipped = l.Resolve(zoomed)
	if scale != 2 {
		t.Fatalf("expected scale 2, got %d", scale)
	}
	var expected []int
	for i := 1; i < 99; i++ {
		if (i%4 == 0) != (i%16 == 0) {
			expected = append(expected, i)
		}
	}
	if len(flipped) != len(expected) {
		t.Fatalf("expected flipped %v, got %v", expected, flipped)
	}
	for i := range expected {
		if flipped[i] != expected[i] {
			t.Errorf("expected flipped %v, got %v", expected, flipped)
			break
		}
	}
	for i := 0; i < 100; i++ {
		if got := l.Visible(i); got != (i%4 == 0) {
			t.Errorf("index %d: expected visible=%v, got %v", i, i%4 == 0, got)
		}
	}
	if !l.Fading() {
		t.Errorf("expected density change to fade")
	}
}

func TestLabelsResolveIgnoresHistory(t *testing.T) {
	const n = 365
	_, l := newTestLabels(t, n)
	viewports := []Viewport{
		FullViewport,
		{Start: 0, End: 0.25},
		{Start: 0.5, End: 0.6},
		FullViewport,
		{Start: 0.01, End: 0.02},
		{Start: 0.3, End: 0.9},
		{Start: 0, End: 0.25},
	}
	for _, vp := range viewports {
		m := Map(600, vp, n)
		got, _ := l.Resolve(m)
		_, fresh := newTestLabels(t, n)
		expected, _ := fresh.Resolve(m)
		if got != expected {
			t.Errorf("viewport %v: expected scale %d, got %d", vp, expected, got)
		}
		if got > 0 && !l.overlaps(m, got-1) {
			t.Errorf("viewport %v: scale %d is not the smallest without overlap", vp, got)
		}
	}
}

func TestLabelsNoOverlapAtResolvedScale(t *testing.T) {
	_, l := newTestLabels(t, 365)
	for _, vp := range []Viewport{
		FullViewport,
		{Start: 0.5, End: 0.6},
		{Start: 0.9, End: 1},
		{Start: 0.01, End: 0.02},
	} {
		m := Map(600, vp, 365)
		scale, _ := l.Resolve(m)
		if l.overlaps(m, scale) {
			t.Errorf("viewport %v: scale %d still overlaps", vp, scale)
		}
		if scale > 0 && float64(int(1)<<scale)*m.XStep > 160 && !l.overlaps(m, scale-1) {
			t.Errorf("viewport %v: scale %d leaves a gap that scale %d would fill", vp, scale, scale-1)
		}
	}
}

func TestLabelsLayoutFade(t *testing.T) {
	_, l := newTestLabels(t, 100)
	l.Resolve(Map(400, FullViewport, 100))
	zoomed := Map(400, Viewport{Start: 0, End: 0.25}, 100)
	l.Resolve(zoomed)

	type want struct {
		index int
		alpha float64
	}
	check := func(stage string, got []Label, expected []want) {
		t.Helper()
		if len(got) != len(expected) {
			t.Fatalf("%s: expected %d labels, got %d: %+v", stage, len(expected), len(got), got)
		}
		for i := range expected {
			if got[i].Index != expected[i].index || got[i].Alpha != expected[i].alpha {
				t.Errorf("%s: label %d: expected %+v, got index %d alpha %v", stage, i, expected[i], got[i].Index, got[i].Alpha)
			}
		}
	}
	check("fading in", l.Layout(zoomed), []want{
		{4, 0}, {8, 0}, {12, 0}, {16, 1}, {20, 0}, {24, 0}, {0, 1}, {99, 1},
	})
	l.Advance(100 * time.Millisecond)
	check("halfway", l.Layout(zoomed), []want{
		{4, 0.5}, {8, 0.5}, {12, 0.5}, {16, 1}, {20, 0.5}, {24, 0.5}, {0, 1}, {99, 1},
	})
	l.Advance(time.Second)
	check("settled", l.Layout(zoomed), []want{
		{4, 1}, {8, 1}, {12, 1}, {16, 1}, {20, 1}, {24, 1}, {0, 1}, {99, 1},
	})
}

func TestLabelsLayoutFadeOut(t *testing.T) {
	_, l := newTestLabels(t, 100)
	full := Map(400, FullViewport, 100)
	l.Resolve(full)
	l.Resolve(Map(400, Viewport{Start: 0, End: 0.25}, 100))
	l.Advance(time.Second)
	l.Resolve(full)
	l.Advance(50 * time.Millisecond)
	for _, lbl := range l.Layout(full) {
		switch {
		case lbl.Index == 0 || lbl.Index == 99 || lbl.Index%16 == 0:
			if lbl.Alpha != 1 {
				t.Errorf("index %d: expected alpha 1, got %v", lbl.Index, lbl.Alpha)
			}
		case lbl.Index%4 == 0:
			if lbl.Alpha != 0.75 {
				t.Errorf("index %d: expected fading out alpha 0.75, got %v", lbl.Index, lbl.Alpha)
			}
		default:
			t.Errorf("unexpected label %d", lbl.Index)
		}
	}
}

func TestLabelsPinsAlwaysDrawn(t *testing.T) {
	_, l := newTestLabels(t, 100)
	for _, vp := range []Viewport{FullViewport, {Start: 0.4, End: 0.5}} {
		m := Map(400, vp, 100)
		l.Resolve(m)
		got := l.Layout(m)
		if len(got) < 2 {
			t.Fatalf("expected at least the pinned labels, got %d", len(got))
		}
		if got[len(got)-2].Index != 0 || got[len(got)-1].Index != 99 {
			t.Errorf("expected pins 0 and 99 last, got %d and %d", got[len(got)-2].Index, got[len(got)-1].Index)
		}
		for _, lbl := range got {
			if (lbl.Index == 0 || lbl.Index == 99) && lbl.Alpha != 1 {
				t.Errorf("pin %d: expected alpha 1, got %v", lbl.Index, lbl.Alpha)
			}
		}
	}
}

func TestLabelsRecycleWhileScrolling(t *testing.T) {
	const n = 200
	_, l := newTestLabels(t, n)
	expectedIndices := func(m Mapping) map[int]bool {
		step := 1 << l.Scale()
		out := map[int]bool{}
		for i := max(m.First, 1); i <= min(m.Last, n-2); i++ {
			if i%step == 0 {
				out[i] = true
			}
		}
		return out
	}
	// Scroll right and then back left across the middle of the series, far
	// enough from both ends that the pins never collide with candidates.
	var starts []float64
	for s := 0.3; s <= 0.5; s += 0.007 {
		starts = append(starts, s)
	}
	for i := len(starts) - 1; i >= 0; i-- {
		starts = append(starts, starts[i])
	}
	for _, start := range starts {
		m := Map(500, Viewport{Start: start, End: start + 0.2}, n)
		l.Resolve(m)
		l.Advance(time.Second)
		expected := expectedIndices(m)
		got := map[int]bool{}
		for _, lbl := range l.Layout(m) {
			if lbl.Index == 0 || lbl.Index == n-1 {
				continue
			}
			if got[lbl.Index] {
				t.Errorf("start %.3f: index %d drawn twice", start, lbl.Index)
			}
			got[lbl.Index] = true
		}
		if len(got) != len(expected) {
			t.Errorf("start %.3f: expected %d candidates, got %d", start, len(expected), len(got))
		}
		for i := range expected {
			if !got[i] {
				t.Errorf("start %.3f: missing candidate %d", start, i)
			}
		}
	}
}
