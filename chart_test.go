package main

import (
	"image/color"
	"testing"

	"gioui.org/io/pointer"
	"gioui.org/unit"
	"git.sr.ht/~whereswaldon/timechart/chart"
)

func TestPointerKind(t *testing.T) {
	type testcase struct {
		name     string
		ev       pointer.Event
		expected chart.PointerKind
		ok       bool
	}
	for _, tc := range []testcase{
		{
			name:     "primary press",
			ev:       pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonPrimary},
			expected: chart.Press,
			ok:       true,
		},
		{
			name: "secondary press",
			ev:   pointer.Event{Kind: pointer.Press, Source: pointer.Mouse, Buttons: pointer.ButtonSecondary},
		},
		{
			name:     "touch press",
			ev:       pointer.Event{Kind: pointer.Press, Source: pointer.Touch},
			expected: chart.Press,
			ok:       true,
		},
		{
			name:     "drag",
			ev:       pointer.Event{Kind: pointer.Drag},
			expected: chart.Move,
			ok:       true,
		},
		{
			name:     "release",
			ev:       pointer.Event{Kind: pointer.Release},
			expected: chart.Release,
			ok:       true,
		},
		{
			name:     "cancel",
			ev:       pointer.Event{Kind: pointer.Cancel},
			expected: chart.Cancel,
			ok:       true,
		},
		{
			name: "hover",
			ev:   pointer.Event{Kind: pointer.Move},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := pointerKind(tc.ev)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && kind != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, kind)
			}
		})
	}
}

func TestScaledConfig(t *testing.T) {
	base := chart.DefaultConfig()
	cfg := scaledConfig(unit.Metric{PxPerDp: 2, PxPerSp: 2}, true)
	if !cfg.Dark {
		t.Errorf("expected dark config")
	}
	if cfg.MinFrameWidth != 2*base.MinFrameWidth {
		t.Errorf("expected min frame width %v, got %v", 2*base.MinFrameWidth, cfg.MinFrameWidth)
	}
	if cfg.LabelMaxGap != 2*base.LabelMaxGap {
		t.Errorf("expected label max gap %v, got %v", 2*base.LabelMaxGap, cfg.LabelMaxGap)
	}
	if cfg.GridLevels != base.GridLevels {
		t.Errorf("expected grid levels %d, got %d", base.GridLevels, cfg.GridLevels)
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.NRGBA{R: 10, A: 200}
	if got := withAlpha(c, 0.5); got.A != 100 || got.R != 10 {
		t.Errorf("expected alpha 100, got %v", got)
	}
	if got := withAlpha(c, 2); got.A != 200 {
		t.Errorf("expected alpha clamped to 200, got %v", got.A)
	}
	if got := withAlpha(c, -1); got.A != 0 {
		t.Errorf("expected alpha 0, got %v", got.A)
	}
}
