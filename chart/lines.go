package chart

import (
	"fmt"
	"image/color"
	"time"

	"gioui.org/f32"
)

// Polyline is the drawable geometry of one line for the current frame.
type Polyline struct {
	ID    string
	Color color.NRGBA
	// Points holds consecutive vertices; segment k joins Points[k] and
	// Points[k+1].
	Points []f32.Point
}

// Plot describes the rectangle lines are drawn into and how values map onto
// it vertically.
type Plot struct {
	Mapping Mapping
	// Top is the Y of the plot's upper edge.
	Top float64
	// Height is the usable height; value 0 sits at Top+Height.
	Height float64
	YStep  float64
}

// Y returns the screen Y for a value.
func (p Plot) Y(value int64) float64 {
	return p.Top + p.Height - float64(value)*p.YStep
}

type lineState struct {
	visible bool
	opacity Tween
}

// VertexBuffer holds the per-line point storage for one drawing surface so it
// can be reused from frame to frame.
type VertexBuffer struct {
	points [][]f32.Point
	out    []Polyline
}

// Lines owns per-line visibility and opacity and builds per-frame vertex
// buffers. Visibility is a discrete gate; opacity only affects drawing.
type Lines struct {
	series   *Series
	duration time.Duration
	states   []lineState
}

// NewLines returns a renderer with every line visible at full opacity.
func NewLines(s *Series, fade time.Duration) *Lines {
	l := &Lines{
		series:   s,
		duration: fade,
		states:   make([]lineState, len(s.Lines())),
	}
	for i := range l.states {
		l.states[i] = lineState{
			visible: true,
			opacity: NewTween(1, Linear),
		}
	}
	return l
}

// SetVisible shows or hides a line, starting an opacity fade. It reports
// whether the visibility changed.
func (l *Lines) SetVisible(id string, visible bool) (bool, error) {
	idx, ok := l.series.LineIndex(id)
	if !ok {
		return false, fmt.Errorf("set visibility of %q: %w", id, ErrUnknownLine)
	}
	st := &l.states[idx]
	if st.visible == visible {
		return false, nil
	}
	st.visible = visible
	target := 0.0
	if visible {
		target = 1
	}
	st.opacity.Start(target, l.duration)
	return true, nil
}

// Visible reports whether line idx is visible.
func (l *Lines) Visible(idx int) bool { return l.states[idx].visible }

// AnyVisible reports whether at least one line is visible.
func (l *Lines) AnyVisible() bool {
	for _, st := range l.states {
		if st.visible {
			return true
		}
	}
	return false
}

// Opacity returns the drawing opacity of line idx in [0,1].
func (l *Lines) Opacity(idx int) float64 { return l.states[idx].opacity.Value() }

// Fading reports whether any opacity animation is running.
func (l *Lines) Fading() bool {
	for i := range l.states {
		if l.states[i].opacity.Running() {
			return true
		}
	}
	return false
}

// Advance steps every opacity animation.
func (l *Lines) Advance(dt time.Duration) bool {
	changed := false
	for i := range l.states {
		if l.states[i].opacity.Advance(dt) {
			changed = true
		}
	}
	return changed
}

// MaxVisible returns the largest value of the visible lines within the
// mapping's index range, or 0 when no line is visible.
func (l *Lines) MaxVisible(m Mapping) int64 {
	var (
		result int64
		found  bool
	)
	for i := range l.states {
		if !l.states[i].visible {
			continue
		}
		v := l.series.MaxBetween(i, m.First, m.Last)
		if !found || v > result {
			result = v
			found = true
		}
	}
	return result
}

// Build fills buf with the vertices of every line with non-zero opacity and
// returns the polylines in line order. The result aliases buf.
func (l *Lines) Build(p Plot, buf *VertexBuffer) []Polyline {
	lines := l.series.Lines()
	for len(buf.points) < len(lines) {
		buf.points = append(buf.points, nil)
	}
	buf.out = buf.out[:0]
	m := p.Mapping
	for i, line := range lines {
		alpha := l.states[i].opacity.Value()
		if alpha <= 0 {
			continue
		}
		pts := buf.points[i][:0]
		for idx := m.First; idx <= m.Last; idx++ {
			pts = append(pts, f32.Pt(float32(m.X(idx)), float32(p.Y(line.Values[idx]))))
		}
		buf.points[i] = pts
		buf.out = append(buf.out, Polyline{
			ID:     line.ID,
			Color:  fade(line.Color, alpha),
			Points: pts,
		})
	}
	return buf.out
}

func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp(alpha, 0, 1))
	return c
}
