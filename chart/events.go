package chart

import "gioui.org/f32"

// PointerKind classifies pointer input fed to a Session.
type PointerKind uint8

const (
	Press PointerKind = iota
	Move
	Release
	Cancel
)

func (k PointerKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a host pointer event in the coordinate space of the
// surface it is delivered to.
type PointerEvent struct {
	Kind     PointerKind
	Position f32.Point
}

// Surface identifies which part of the chart produced an event.
type Surface uint8

const (
	SurfaceChart Surface = iota
	SurfaceNavigator
)

func (s Surface) String() string {
	switch s {
	case SurfaceChart:
		return "chart"
	case SurfaceNavigator:
		return "navigator"
	default:
		return "unknown"
	}
}

// Event is emitted by a Session for the host to consume.
type Event interface {
	isEvent()
}

type (
	// DirectionChanged reports that a drag flipped between horizontal and
	// non-horizontal.
	DirectionChanged struct {
		Surface    Surface
		Horizontal bool
	}
	// Released reports the end of a gesture.
	Released struct {
		Surface Surface
	}
	// SelectionChanged reports a new selected index, or -1.
	SelectionChanged struct {
		Index int
	}
	// ViewportChanged reports a new visible window.
	ViewportChanged struct {
		Viewport Viewport
	}
	// ModifyFinished reports that a navigator drag ended on Viewport.
	ModifyFinished struct {
		Viewport Viewport
	}
	// TooltipChanged carries the tooltip state after any change.
	TooltipChanged struct {
		Tooltip Tooltip
	}
)

func (DirectionChanged) isEvent() {}
func (Released) isEvent()         {}
func (SelectionChanged) isEvent() {}
func (ViewportChanged) isEvent()  {}
func (ModifyFinished) isEvent()   {}
func (TooltipChanged) isEvent()   {}

// Tooltip is the state handed to the tooltip sink.
type Tooltip struct {
	Index   int
	Date    string
	Values  []LineValue
	Visible bool
}
