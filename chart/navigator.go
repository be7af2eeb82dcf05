package chart

// FrameTouch is what part of the navigator frame a press landed on.
type FrameTouch uint8

const (
	TouchUnhandled FrameTouch = iota
	TouchLeftBorder
	TouchRightBorder
	TouchFrame
)

func (t FrameTouch) String() string {
	switch t {
	case TouchLeftBorder:
		return "left border"
	case TouchRightBorder:
		return "right border"
	case TouchFrame:
		return "frame"
	default:
		return "unhandled"
	}
}

// NavigatorStep lists what a Navigator reports after one pointer event.
type NavigatorStep struct {
	// ViewportChanged is set when the frame moved or resized.
	ViewportChanged bool
	Viewport        Viewport
	// DirectionChanged is set when the drag classification flipped.
	DirectionChanged bool
	Horizontal       bool
	// Finished is set when a frame drag ended.
	Finished bool
}

// Navigator owns the draggable frame selecting the visible window over the
// whole timeline. Frame coordinates are navigator-local pixels.
type Navigator struct {
	width        float64
	frameStart   float64
	frameWidth   float64
	minWidth     float64
	hitSlop      float64
	defaultWidth float64
	sized        bool
	pending      *Viewport

	touch  FrameTouch
	active bool
	lastX  float64
	dir    directionTracker
}

// NewNavigator returns a navigator whose frame starts at 0 with defaultWidth
// pixels once the navigator is sized.
func NewNavigator(minWidth, hitSlop, defaultWidth float64) *Navigator {
	return &Navigator{
		minWidth:     max(minWidth, 1),
		hitSlop:      hitSlop,
		defaultWidth: defaultWidth,
	}
}

// Width returns the navigator width in pixels.
func (n *Navigator) Width() float64 { return n.width }

// Frame returns the frame start and width in pixels.
func (n *Navigator) Frame() (start, width float64) { return n.frameStart, n.frameWidth }

// MinFrameWidth returns the smallest allowed frame width for the current
// navigator size.
func (n *Navigator) MinFrameWidth() float64 {
	return min(n.minWidth, n.width)
}

// Touch returns the classification of the current gesture.
func (n *Navigator) Touch() FrameTouch { return n.touch }

// SetWidth resizes the navigator. The frame keeps its fractional position;
// the first sizing places the default frame or a window injected earlier
// through SetViewport.
func (n *Navigator) SetWidth(width float64) {
	if width <= 0 {
		return
	}
	if !n.sized {
		n.width = width
		n.sized = true
		if n.pending != nil {
			n.applyViewport(*n.pending)
			n.pending = nil
			return
		}
		n.frameStart = 0
		n.frameWidth = clamp(n.defaultWidth, n.MinFrameWidth(), width)
		return
	}
	if width == n.width {
		return
	}
	vp := n.Viewport()
	n.width = width
	n.applyViewport(vp)
}

// SetViewport places the frame over vp.
func (n *Navigator) SetViewport(vp Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	if !n.sized {
		n.pending = &vp
		return nil
	}
	n.applyViewport(vp)
	return nil
}

func (n *Navigator) applyViewport(vp Viewport) {
	minW := n.MinFrameWidth()
	n.frameWidth = clamp(vp.Span()*n.width, minW, n.width)
	n.frameStart = clamp(vp.Start*n.width, 0, n.width-n.frameWidth)
}

// Viewport returns the window selected by the frame. An unsized navigator
// reports the pending or full window.
func (n *Navigator) Viewport() Viewport {
	if !n.sized || n.width <= 0 {
		if n.pending != nil {
			return *n.pending
		}
		return FullViewport
	}
	return Viewport{
		Start: clamp(n.frameStart/n.width, 0, 1),
		End:   clamp((n.frameStart+n.frameWidth)/n.width, 0, 1),
	}
}

// classify decides which part of the frame x touches. Borders win over the
// interior; when both borders are in reach the nearer one wins.
func (n *Navigator) classify(x float64) FrameTouch {
	left := abs(x - n.frameStart)
	right := abs(x - (n.frameStart + n.frameWidth))
	switch {
	case left <= n.hitSlop && left <= right:
		return TouchLeftBorder
	case right <= n.hitSlop:
		return TouchRightBorder
	case x > n.frameStart && x < n.frameStart+n.frameWidth:
		return TouchFrame
	default:
		return TouchUnhandled
	}
}

// Handle advances the navigator gesture state machine by one event.
func (n *Navigator) Handle(ev PointerEvent) NavigatorStep {
	var step NavigatorStep
	x := clamp(float64(ev.Position.X), 0, n.width)
	switch ev.Kind {
	case Press:
		n.active = true
		n.touch = n.classify(x)
		n.lastX = x
		n.dir.reset(ev.Position)
	case Move:
		if !n.active {
			return step
		}
		if n.dir.move(ev.Position) {
			step.DirectionChanged = true
			step.Horizontal = n.dir.horizontal
		}
		dx := x - n.lastX
		n.lastX = x
		if n.touch == TouchUnhandled || dx == 0 {
			return step
		}
		if n.drag(n.touch, dx) {
			step.ViewportChanged = true
			step.Viewport = n.Viewport()
		}
	case Release, Cancel:
		if !n.active {
			return step
		}
		n.active = false
		n.touch = TouchUnhandled
		n.dir.horizontal = false
		step.DirectionChanged = true
		step.Horizontal = false
		step.Finished = true
		step.Viewport = n.Viewport()
	}
	return step
}

// drag applies dx to the frame according to touch and reports whether the
// frame changed.
func (n *Navigator) drag(touch FrameTouch, dx float64) bool {
	start, width := n.frameStart, n.frameWidth
	minW := n.MinFrameWidth()
	switch touch {
	case TouchFrame:
		n.frameStart = clamp(start+dx, 0, n.width-width)
	case TouchLeftBorder:
		dx = clamp(dx, -start, width-minW)
		n.frameStart = start + dx
		n.frameWidth = width - dx
	case TouchRightBorder:
		dx = clamp(dx, minW-width, n.width-(start+width))
		n.frameWidth = width + dx
	}
	return n.frameStart != start || n.frameWidth != width
}

// Pan moves the frame by dx navigator pixels.
func (n *Navigator) Pan(dx float64) bool {
	if !n.sized {
		return false
	}
	return n.drag(TouchFrame, dx)
}

// Zoom scales the frame width by factor around anchor, a fraction of the
// frame in [0,1].
func (n *Navigator) Zoom(factor, anchor float64) bool {
	if !n.sized || factor <= 0 {
		return false
	}
	start, width := n.frameStart, n.frameWidth
	anchor = clamp(anchor, 0, 1)
	newWidth := clamp(width*factor, n.MinFrameWidth(), n.width)
	pivot := start + width*anchor
	n.frameWidth = newWidth
	n.frameStart = clamp(pivot-newWidth*anchor, 0, n.width-newWidth)
	return n.frameStart != start || n.frameWidth != width
}
