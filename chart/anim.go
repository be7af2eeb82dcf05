package chart

import "time"

// Easing maps linear progress in [0,1] onto eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseOutCubic decelerates towards the end of the animation.
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// Tween interpolates a scalar from one value to another over a fixed duration.
// It does not own a clock; callers drive it with Advance.
type Tween struct {
	from, to float64
	elapsed  time.Duration
	duration time.Duration
	easing   Easing
	running  bool
}

// NewTween returns a settled tween holding value v.
func NewTween(v float64, easing Easing) Tween {
	if easing == nil {
		easing = Linear
	}
	return Tween{from: v, to: v, easing: easing}
}

// Start replaces any running animation with one from the currently displayed
// value to target. A zero duration jumps straight to target.
func (t *Tween) Start(target float64, d time.Duration) {
	t.StartFrom(t.Value(), target, d)
}

// StartFrom replaces any running animation with one from "from" to target.
func (t *Tween) StartFrom(from, target float64, d time.Duration) {
	t.from = from
	t.to = target
	t.elapsed = 0
	t.duration = d
	t.running = d > 0 && from != target
}

// Jump settles the tween at v.
func (t *Tween) Jump(v float64) {
	t.from, t.to = v, v
	t.running = false
}

// Advance moves the animation forward by dt. It reports whether the value
// changed.
func (t *Tween) Advance(dt time.Duration) bool {
	if !t.running {
		return false
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.elapsed = t.duration
		t.running = false
	}
	return true
}

// Progress returns the linear progress in [0,1].
func (t *Tween) Progress() float64 {
	if !t.running {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

// Value returns the current interpolated value.
func (t *Tween) Value() float64 {
	if !t.running {
		return t.to
	}
	easing := t.easing
	if easing == nil {
		easing = Linear
	}
	return t.from + (t.to-t.from)*easing(t.Progress())
}

// Target returns the value the tween is heading to.
func (t *Tween) Target() float64 { return t.to }

// Running reports whether the tween is still animating.
func (t *Tween) Running() bool { return t.running }
