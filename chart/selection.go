package chart

import "image/color"

// LineValue is one visible line's value at the selected index.
type LineValue struct {
	ID    string
	Label string
	Color color.NRGBA
	Value int64
}

// PointSelector resolves pointer positions to data indices and gathers the
// values shown in the tooltip.
type PointSelector struct {
	series *Series
	lines  *Lines
	index  int
	values []LineValue
}

// NewPointSelector returns a selector with nothing selected.
func NewPointSelector(s *Series, lines *Lines) *PointSelector {
	return &PointSelector{series: s, lines: lines, index: -1}
}

// Select resolves x against m and records the nearest index.
func (p *PointSelector) Select(m Mapping, x float64) int {
	p.index = m.Index(x)
	return p.index
}

// Clear drops the selection.
func (p *PointSelector) Clear() { p.index = -1 }

// Index returns the selected index, or -1.
func (p *PointSelector) Index() int { return p.index }

// Selected reports whether an index is selected.
func (p *PointSelector) Selected() bool { return p.index >= 0 }

// Values returns the visible lines' values at the selected index in line
// order. The slice is reused by the next call.
func (p *PointSelector) Values() []LineValue {
	p.values = p.values[:0]
	if p.index < 0 {
		return p.values
	}
	for i, line := range p.series.Lines() {
		if !p.lines.Visible(i) {
			continue
		}
		p.values = append(p.values, LineValue{
			ID:    line.ID,
			Label: line.Label,
			Color: line.Color,
			Value: line.Values[p.index],
		})
	}
	return p.values
}
