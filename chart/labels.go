package chart

import "time"

// Label is one X-axis date label positioned for drawing.
type Label struct {
	Index int
	Text  string
	// X is the horizontal center of the label.
	X     float64
	Width float64
	Alpha float64
}

// Labels decides how densely the X axis can be labelled and animates
// density changes.
//
// A label scale k makes every 2^k-th index a label candidate. The first and
// last index are always labelled and take no part in decimation.
type Labels struct {
	series *Series
	widths []float64
	margin float64
	maxGap float64

	resolved  bool
	scale     int
	prevScale int
	visible   []bool
	flipped   []int
	fade      Tween

	// slots hold the candidate indices currently on screen, ascending. They
	// are recycled from one edge to the other while scrolling.
	slots    []int
	slotStep int

	out []Label
}

// NewLabels builds a controller for the series' short date labels.
func NewLabels(s *Series, m Measurer, margin, maxGap float64, fade time.Duration) *Labels {
	l := &Labels{
		series:  s,
		widths:  make([]float64, s.Len()),
		margin:  margin,
		maxGap:  maxGap,
		visible: make([]bool, s.Len()),
		fade:    NewTween(1, Linear),
	}
	l.fade.duration = fade
	l.SetMeasurer(m)
	for i := range l.visible {
		l.visible[i] = true
	}
	return l
}

// SetMeasurer re-measures every label. The next Resolve starts over from
// scale 0.
func (l *Labels) SetMeasurer(m Measurer) {
	if m == nil {
		m = BasicMeasurer
	}
	for i := range l.widths {
		l.widths[i] = m.MeasureWidth(l.series.ShortDate(i))
	}
	l.resolved = false
}

// Scale returns the resolved decimation scale.
func (l *Labels) Scale() int { return l.scale }

// Visible reports whether index i is a label candidate at the current scale.
func (l *Labels) Visible(i int) bool { return l.visible[i] }

// Flipped returns the indices whose candidacy changed on the latest scale
// change.
func (l *Labels) Flipped() []int { return l.flipped }

// Fading reports whether a density change is being animated.
func (l *Labels) Fading() bool { return l.fade.Running() }

// Advance steps the fade animation.
func (l *Labels) Advance(dt time.Duration) bool {
	return l.fade.Advance(dt)
}

func (l *Labels) pinned(i int) bool {
	return i == 0 || i == len(l.widths)-1
}

// overlaps reports whether any two neighbouring candidates at scale collide
// within the mapped window, leaving one margin between them.
func (l *Labels) overlaps(m Mapping, scale int) bool {
	n := len(l.widths)
	step := 1 << scale
	if step >= n {
		return false
	}
	lo := max(m.First-step, 1)
	lo = ((lo + step - 1) / step) * step
	hi := min(m.Last+step, n-2)
	prev := -1
	for i := lo; i <= hi; i += step {
		if prev >= 0 {
			right := m.X(prev) + l.widths[prev]/2
			left := m.X(i) - l.widths[i]/2
			if left-right < l.margin {
				return true
			}
		}
		prev = i
	}
	return false
}

func (l *Labels) maxScale() int {
	s := 0
	for 1<<s < len(l.widths) {
		s++
	}
	return s
}

// Resolve picks the label scale for mapping m and returns it together with
// the indices whose candidacy flipped since the previous scale. The scale
// depends only on m: the search always starts from scale 0. Calling it again
// with unchanged inputs returns the same scale and no flipped indices.
func (l *Labels) Resolve(m Mapping) (int, []int) {
	scale := 0
	top := l.maxScale()
	for scale < top && l.overlaps(m, scale) {
		scale++
	}
	for scale > 0 && float64(int(1)<<scale)*m.XStep > l.maxGap && !l.overlaps(m, scale-1) {
		scale--
	}
	first := !l.resolved
	l.resolved = true
	if scale == l.scale && !first {
		return scale, nil
	}
	l.prevScale = l.scale
	if first {
		l.prevScale = scale
	}
	l.scale = scale
	l.flipped = l.flipped[:0]
	step, prevStep := 1<<scale, 1<<l.prevScale
	for i := range l.visible {
		on := i%step == 0
		if on != (i%prevStep == 0) && !l.pinned(i) {
			l.flipped = append(l.flipped, i)
		}
		l.visible[i] = on
	}
	if first {
		l.fade.Jump(1)
	} else {
		l.fade.StartFrom(0, 1, l.fade.duration)
	}
	return scale, l.flipped
}

func (l *Labels) label(m Mapping, i int, alpha float64) Label {
	return Label{
		Index: i,
		Text:  l.series.ShortDate(i),
		X:     m.X(i),
		Width: l.widths[i],
		Alpha: alpha,
	}
}

// recycle keeps l.slots equal to the candidates in [lo,hi] at step. Slots
// that scroll off one edge are reassigned to the index entering on the other
// edge, so the work per frame depends on the number of slots, not on N.
func (l *Labels) recycle(lo, hi, step int) {
	if l.slotStep != step || len(l.slots) == 0 || l.slots[len(l.slots)-1] < lo-step || l.slots[0] > hi+step {
		l.slots = l.slots[:0]
		for i := lo; i <= hi; i += step {
			l.slots = append(l.slots, i)
		}
		l.slotStep = step
		return
	}
	for len(l.slots) > 0 && l.slots[0] < lo {
		next := l.slots[len(l.slots)-1] + step
		copy(l.slots, l.slots[1:])
		if next <= hi {
			l.slots[len(l.slots)-1] = next
		} else {
			l.slots = l.slots[:len(l.slots)-1]
		}
	}
	for len(l.slots) > 0 && l.slots[len(l.slots)-1] > hi {
		prev := l.slots[0] - step
		if prev >= lo {
			copy(l.slots[1:], l.slots)
			l.slots[0] = prev
		} else {
			l.slots = l.slots[:len(l.slots)-1]
		}
	}
	if len(l.slots) == 0 {
		for i := lo; i <= hi; i += step {
			l.slots = append(l.slots, i)
		}
		return
	}
	for l.slots[0]-step >= lo {
		l.slots = append(l.slots, 0)
		copy(l.slots[1:], l.slots)
		l.slots[0] -= step
	}
	for l.slots[len(l.slots)-1]+step <= hi {
		l.slots = append(l.slots, l.slots[len(l.slots)-1]+step)
	}
}

// Layout positions the labels to draw for mapping m. The returned slice is
// reused by the next call.
func (l *Labels) Layout(m Mapping) []Label {
	n := len(l.widths)
	l.out = l.out[:0]
	if n == 0 {
		return l.out
	}
	firstPin := l.label(m, 0, 1)
	lastPin := l.label(m, n-1, 1)
	clearOfPins := func(i int) bool {
		left := m.X(i) - l.widths[i]/2
		right := m.X(i) + l.widths[i]/2
		return left-(firstPin.X+firstPin.Width/2) >= l.margin &&
			(lastPin.X-lastPin.Width/2)-right >= l.margin
	}

	step := 1 << l.scale
	lo := max(m.First, 1)
	lo = ((lo + step - 1) / step) * step
	hi := min(m.Last, n-2)
	l.recycle(lo, hi, step)

	fading := l.fade.Running()
	p := l.fade.Progress()
	prevStep := 1 << l.prevScale
	for _, i := range l.slots {
		if !clearOfPins(i) {
			continue
		}
		alpha := 1.0
		if fading && i%prevStep != 0 {
			alpha = p
		}
		l.out = append(l.out, l.label(m, i, alpha))
	}
	if fading && prevStep != step {
		start := max(m.First, 1)
		start = ((start + prevStep - 1) / prevStep) * prevStep
		for i := start; i <= hi; i += prevStep {
			if i%step == 0 || !clearOfPins(i) {
				continue
			}
			l.out = append(l.out, l.label(m, i, 1-p))
		}
	}
	l.out = append(l.out, firstPin)
	if n > 1 {
		l.out = append(l.out, lastPin)
	}
	return l.out
}
