package chart

import (
	"math"
	"strconv"
	"time"
)

// Gridline is one horizontal value line of the vertical axis.
type Gridline struct {
	Value int64
	Label string
	// Y is measured from the top of the plot area.
	Y     float64
	Alpha float64
}

// VerticalScale tracks the largest visible value and animates the
// value-to-pixel ratio whenever it changes.
type VerticalScale struct {
	levels   int
	duration time.Duration

	currentMax  int64
	previousMax int64
	growing     bool
	// denominator animates between the safe divisors of previousMax and
	// currentMax.
	denominator Tween

	oldValues, newValues []int64
	oldLabels, newLabels []string
	grid                 []Gridline
}

// NewVerticalScale returns a settled scale with the given number of gridline
// levels.
func NewVerticalScale(levels int, duration time.Duration) *VerticalScale {
	if levels < 1 {
		levels = 1
	}
	v := &VerticalScale{
		levels:      levels,
		duration:    duration,
		denominator: NewTween(1, EaseOutCubic),
		oldValues:   make([]int64, levels),
		newValues:   make([]int64, levels),
		oldLabels:   make([]string, levels),
		newLabels:   make([]string, levels),
	}
	v.fillLevels(v.newValues, v.newLabels, 0)
	v.fillLevels(v.oldValues, v.oldLabels, 0)
	return v
}

func safeDenominator(m int64) float64 {
	if m <= 0 {
		return 1
	}
	return float64(m)
}

func (v *VerticalScale) fillLevels(values []int64, labels []string, m int64) {
	step := int64(math.Round(float64(m) / float64(v.levels)))
	for i := range values {
		values[i] = step * int64(i)
		labels[i] = FormatValue(values[i])
	}
}

// Reset settles the scale at m without animating.
func (v *VerticalScale) Reset(m int64) {
	v.currentMax = m
	v.previousMax = m
	v.growing = false
	v.denominator.Jump(safeDenominator(m))
	v.fillLevels(v.newValues, v.newLabels, m)
	v.fillLevels(v.oldValues, v.oldLabels, m)
}

// Update retargets the scale to newMax, replacing any running animation. It
// reports whether an animation was started.
func (v *VerticalScale) Update(newMax int64) bool {
	if newMax == v.currentMax {
		return false
	}
	v.previousMax = v.currentMax
	v.growing = newMax > v.currentMax
	v.currentMax = newMax
	v.oldValues, v.newValues = v.newValues, v.oldValues
	v.oldLabels, v.newLabels = v.newLabels, v.oldLabels
	v.fillLevels(v.newValues, v.newLabels, newMax)
	v.denominator.Start(safeDenominator(newMax), v.duration)
	return true
}

// Advance steps the animation. It reports whether anything changed.
func (v *VerticalScale) Advance(dt time.Duration) bool {
	return v.denominator.Advance(dt)
}

// Animating reports whether a rescale is in progress.
func (v *VerticalScale) Animating() bool { return v.denominator.Running() }

// Progress returns the rescale progress in [0,1].
func (v *VerticalScale) Progress() float64 { return v.denominator.Progress() }

// Growing reports whether the latest change increased the maximum.
func (v *VerticalScale) Growing() bool { return v.growing }

// Max returns the target maximum.
func (v *VerticalScale) Max() int64 { return v.currentMax }

// PreviousMax returns the maximum before the latest change.
func (v *VerticalScale) PreviousMax() int64 { return v.previousMax }

// AnimatedMax returns the divisor currently used to scale values. It is never
// zero.
func (v *VerticalScale) AnimatedMax() float64 {
	return v.denominator.Value()
}

// YStep returns the pixels per value unit for a plot of the given height.
func (v *VerticalScale) YStep(usableHeight float64) float64 {
	return usableHeight / v.AnimatedMax()
}

// Values returns the gridline values for the target maximum.
func (v *VerticalScale) Values() []int64 { return v.newValues }

// Labels returns the gridline labels for the target maximum.
func (v *VerticalScale) Labels() []string { return v.newLabels }

// Gridlines positions the gridlines for a plot of the given height. While a
// rescale runs, the outgoing set fades out as the incoming set fades in. The
// returned slice is reused by the next call.
func (v *VerticalScale) Gridlines(usableHeight float64) []Gridline {
	yStep := v.YStep(usableHeight)
	v.grid = v.grid[:0]
	p := v.Progress()
	if v.Animating() {
		for i, val := range v.oldValues {
			v.grid = append(v.grid, Gridline{
				Value: val,
				Label: v.oldLabels[i],
				Y:     usableHeight - float64(val)*yStep,
				Alpha: 1 - p,
			})
		}
	}
	for i, val := range v.newValues {
		v.grid = append(v.grid, Gridline{
			Value: val,
			Label: v.newLabels[i],
			Y:     usableHeight - float64(val)*yStep,
			Alpha: p,
		})
	}
	return v.grid
}

// FormatValue renders an axis value compactly, abbreviating thousands and
// millions.
func FormatValue(value int64) string {
	av := abs(value)
	switch {
	case av >= 1_000_000:
		return strconv.FormatFloat(float64(value)/1_000_000, 'f', 1, 64) + "M"
	case av >= 10_000:
		return strconv.FormatFloat(float64(value)/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatInt(value, 10)
	}
}
