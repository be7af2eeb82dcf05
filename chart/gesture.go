package chart

import "gioui.org/f32"

// directionTracker classifies a drag as horizontal or not from the delta
// between consecutive pointer positions.
type directionTracker struct {
	last       f32.Point
	horizontal bool
}

func (d *directionTracker) reset(p f32.Point) {
	d.last = p
	d.horizontal = false
}

// move records p and reports whether the classification flipped. A drag is
// horizontal when |dy/dx| < 1; dx == 0 never is. A zero-length move keeps
// the previous classification.
func (d *directionTracker) move(p f32.Point) bool {
	dx, dy := p.X-d.last.X, p.Y-d.last.Y
	d.last = p
	if dx == 0 && dy == 0 {
		return false
	}
	horizontal := dx != 0 && abs(dy/dx) < 1
	if horizontal == d.horizontal {
		return false
	}
	d.horizontal = horizontal
	return true
}

type selectionState uint8

const (
	selectionIdle selectionState = iota
	selectionActive
)

// SelectionStep lists what a SelectionGesture asks its owner to do after one
// pointer event.
type SelectionStep struct {
	// Select asks for the selection to be resolved at X.
	Select bool
	X      float64
	// Clear asks for the selection to be dropped.
	Clear bool
	// DirectionChanged is set when the drag classification flipped to
	// Horizontal.
	DirectionChanged bool
	Horizontal       bool
	// Vertical is set on every move that classifies as not horizontal,
	// including a drag that was never horizontal.
	Vertical bool
	Released bool
}

// SelectionGesture is the main chart's gesture state machine:
// Idle -> Selecting -> Idle.
type SelectionGesture struct {
	state selectionState
	dir   directionTracker
}

// Selecting reports whether a selection drag is in progress.
func (g *SelectionGesture) Selecting() bool { return g.state == selectionActive }

// Horizontal reports the current drag classification.
func (g *SelectionGesture) Horizontal() bool { return g.dir.horizontal }

// Handle advances the state machine by one pointer event.
func (g *SelectionGesture) Handle(ev PointerEvent) SelectionStep {
	var step SelectionStep
	switch ev.Kind {
	case Press:
		// A new press discards whatever the previous gesture left behind.
		g.state = selectionActive
		g.dir.reset(ev.Position)
		step.Select = true
		step.X = float64(ev.Position.X)
	case Move:
		if g.state != selectionActive {
			return step
		}
		step.Select = true
		step.X = float64(ev.Position.X)
		moved := ev.Position != g.dir.last
		if g.dir.move(ev.Position) {
			step.DirectionChanged = true
			step.Horizontal = g.dir.horizontal
		}
		step.Vertical = moved && !g.dir.horizontal
	case Release, Cancel:
		if g.state != selectionActive {
			return step
		}
		g.state = selectionIdle
		g.dir.horizontal = false
		step.Clear = true
		step.DirectionChanged = true
		step.Horizontal = false
		step.Released = true
	}
	return step
}
