package chart

import (
	"image/color"
	"time"

	"gioui.org/f32"
)

// Config holds the engine constants of a Session.
type Config struct {
	// GridLevels is the number of horizontal gridlines.
	GridLevels int
	// ScaleDuration is the length of a vertical rescale.
	ScaleDuration time.Duration
	// LineFadeDuration is the length of a line show/hide fade.
	LineFadeDuration time.Duration
	// LabelFadeDuration is the length of an X label density fade.
	LabelFadeDuration time.Duration
	// MinFrameWidth is the narrowest navigator frame in pixels.
	MinFrameWidth float64
	// BorderHitSlop is how far from a frame border a press still grabs it.
	BorderHitSlop float64
	// DefaultFrameWidth is the initial frame width in pixels.
	DefaultFrameWidth float64
	// LabelMargin is the least free space between two X labels.
	LabelMargin float64
	// LabelMaxGap is the widest spacing between X labels before the axis
	// gets denser.
	LabelMaxGap float64
	// TopPadding is reserved above the main plot for gridline labels.
	TopPadding float64
	Dark       bool
}

// DefaultConfig returns the stock engine constants.
func DefaultConfig() Config {
	return Config{
		GridLevels:        6,
		ScaleDuration:     500 * time.Millisecond,
		LineFadeDuration:  300 * time.Millisecond,
		LabelFadeDuration: 200 * time.Millisecond,
		MinFrameWidth:     80,
		BorderHitSlop:     30,
		DefaultFrameWidth: 300,
		LabelMargin:       8,
		LabelMaxGap:       160,
		TopPadding:        20,
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRedraw sets the function called whenever the chart needs repainting.
func WithRedraw(redraw func()) Option {
	return func(s *Session) { s.redraw = redraw }
}

// WithTooltip sets the function receiving tooltip changes.
func WithTooltip(sink func(Tooltip)) Option {
	return func(s *Session) { s.tooltipSink = sink }
}

// WithMeasurer sets how label widths are measured.
func WithMeasurer(m Measurer) Option {
	return func(s *Session) { s.measurer = m }
}

// Marker is the selected point overlay.
type Marker struct {
	Visible bool
	Index   int
	X       float64
	Points  []MarkerPoint
}

// MarkerPoint is one ring drawn on a line at the selected index.
type MarkerPoint struct {
	Center f32.Point
	Color  color.NRGBA
}

// NavigatorFrame is the drawable state of the navigator strip.
type NavigatorFrame struct {
	Plot       Plot
	Lines      []Polyline
	FrameStart float64
	FrameWidth float64
}

// Frame is everything needed to draw the chart once. It is rebuilt from the
// latest state by Session.Frame and reused between calls.
type Frame struct {
	Palette   Palette
	Plot      Plot
	Lines     []Polyline
	Gridlines []Gridline
	Labels    []Label
	Marker    Marker
	Navigator NavigatorFrame
	Tooltip   Tooltip
}

// Session composes the chart components around one immutable Series. It is
// not safe for concurrent use; drive it from the UI goroutine.
type Session struct {
	series   *Series
	cfg      Config
	palette  Palette
	measurer Measurer

	viewport        Viewport
	chartW, chartH  float64
	navW, navH      float64
	mainMap, navMap Mapping
	scaled          bool

	mainScale *VerticalScale
	navScale  *VerticalScale
	labels    *Labels
	lines     *Lines
	selector  *PointSelector
	gesture   SelectionGesture
	nav       *Navigator

	selectX   float64
	dismissed bool
	tooltip   Tooltip

	events    []Event
	eventHead int

	redraw      func()
	tooltipSink func(Tooltip)

	mainBuf, navBuf VertexBuffer
	frame           Frame
}

// NewSession builds a session over s.
func NewSession(s *Series, cfg Config, opts ...Option) (*Session, error) {
	if s == nil || s.Len() < 2 {
		return nil, ErrTooFewPoints
	}
	sess := &Session{
		series:   s,
		cfg:      cfg,
		palette:  PaletteFor(cfg.Dark),
		viewport: FullViewport,
	}
	for _, o := range opts {
		o(sess)
	}
	sess.mainScale = NewVerticalScale(cfg.GridLevels, cfg.ScaleDuration)
	sess.navScale = NewVerticalScale(cfg.GridLevels, cfg.ScaleDuration)
	sess.lines = NewLines(s, cfg.LineFadeDuration)
	sess.labels = NewLabels(s, sess.measurer, cfg.LabelMargin, cfg.LabelMaxGap, cfg.LabelFadeDuration)
	sess.selector = NewPointSelector(s, sess.lines)
	sess.nav = NewNavigator(cfg.MinFrameWidth, cfg.BorderHitSlop, cfg.DefaultFrameWidth)
	sess.tooltip.Index = -1
	sess.refresh()
	return sess, nil
}

// Series returns the session's data.
func (s *Session) Series() *Series { return s.series }

// Viewport returns the visible window.
func (s *Session) Viewport() Viewport { return s.viewport }

// Mapping returns the main chart's current mapping.
func (s *Session) Mapping() Mapping { return s.mainMap }

// MainScale returns the main chart's vertical scale.
func (s *Session) MainScale() *VerticalScale { return s.mainScale }

// NavigatorScale returns the navigator's vertical scale.
func (s *Session) NavigatorScale() *VerticalScale { return s.navScale }

// Labels returns the X label controller.
func (s *Session) Labels() *Labels { return s.labels }

// Lines returns the line renderer.
func (s *Session) Lines() *Lines { return s.lines }

// Navigator returns the navigator frame controller.
func (s *Session) Navigator() *Navigator { return s.nav }

// Selected returns the selected index, or -1.
func (s *Session) Selected() int { return s.selector.Index() }

// Palette returns the palette used for drawing.
func (s *Session) Palette() Palette { return s.palette }

// Tooltip returns the latest tooltip state.
func (s *Session) Tooltip() Tooltip { return s.tooltip }

func (s *Session) requestRedraw() {
	if s.redraw != nil {
		s.redraw()
	}
}

func (s *Session) emit(ev Event) {
	s.events = append(s.events, ev)
}

// Event returns the next pending event. Call it until ok is false.
func (s *Session) Event() (ev Event, ok bool) {
	if s.eventHead >= len(s.events) {
		s.events = s.events[:0]
		s.eventHead = 0
		return nil, false
	}
	ev = s.events[s.eventHead]
	s.events[s.eventHead] = nil
	s.eventHead++
	return ev, true
}

// SetChartSize sets the main chart's size in pixels, labels excluded.
func (s *Session) SetChartSize(width, height float64) {
	if width == s.chartW && height == s.chartH {
		return
	}
	s.chartW, s.chartH = width, height
	s.refresh()
}

// SetNavigatorSize sets the navigator strip's size in pixels.
func (s *Session) SetNavigatorSize(width, height float64) {
	if width == s.navW && height == s.navH {
		return
	}
	s.navW, s.navH = width, height
	s.nav.SetWidth(width)
	if vp := s.nav.Viewport(); vp != s.viewport {
		s.viewport = vp
		s.emit(ViewportChanged{Viewport: vp})
	}
	s.refresh()
}

// SetMeasurer re-measures the X labels.
func (s *Session) SetMeasurer(m Measurer) {
	s.measurer = m
	s.labels.SetMeasurer(m)
	s.labels.Resolve(s.mainMap)
	s.requestRedraw()
}

// SetViewport injects a window, moving the navigator frame to match.
func (s *Session) SetViewport(vp Viewport) error {
	if err := s.nav.SetViewport(vp); err != nil {
		return err
	}
	s.setViewport(s.nav.Viewport())
	return nil
}

func (s *Session) setViewport(vp Viewport) {
	if vp == s.viewport {
		return
	}
	s.viewport = vp
	s.emit(ViewportChanged{Viewport: vp})
	s.refresh()
}

// Pan scrolls the main chart by dx chart pixels. Positive dx reveals
// earlier points.
func (s *Session) Pan(dx float64) {
	if s.chartW <= 0 {
		return
	}
	_, fw := s.nav.Frame()
	if s.nav.Pan(-dx * fw / s.chartW) {
		s.setViewport(s.nav.Viewport())
	}
}

// Zoom scales the visible window by factor around the chart X anchor.
// Factors below 1 zoom in.
func (s *Session) Zoom(factor, anchorX float64) {
	if s.chartW <= 0 {
		return
	}
	if s.nav.Zoom(factor, anchorX/s.chartW) {
		s.setViewport(s.nav.Viewport())
	}
}

// SetLineVisibility shows or hides a line. Unknown ids are an error;
// requesting the current state does nothing.
func (s *Session) SetLineVisibility(id string, visible bool) error {
	changed, err := s.lines.SetVisible(id, visible)
	if err != nil || !changed {
		return err
	}
	s.refresh()
	s.updateTooltip()
	return nil
}

// SetDarkMode swaps the palette used by subsequent frames.
func (s *Session) SetDarkMode(dark bool) {
	if s.cfg.Dark == dark {
		return
	}
	s.cfg.Dark = dark
	s.palette = PaletteFor(dark)
	s.requestRedraw()
}

// Dark reports whether the dark palette is in use.
func (s *Session) Dark() bool { return s.cfg.Dark }

func (s *Session) plotHeight() float64 {
	return max(s.chartH-s.cfg.TopPadding, 0)
}

// refresh recomputes every derived value after the viewport, a size or a
// visibility flag changed.
func (s *Session) refresh() {
	n := s.series.Len()
	s.mainMap = Map(s.chartW, s.viewport, n)
	s.navMap = Map(s.navW, FullViewport, n)
	mainMax := s.lines.MaxVisible(s.mainMap)
	navMax := s.lines.MaxVisible(s.navMap)
	// Until both surfaces have a size there is nothing on screen to animate
	// from.
	if !s.scaled {
		s.mainScale.Reset(mainMax)
		s.navScale.Reset(navMax)
		s.scaled = s.chartW > 0 && s.navW > 0
	} else {
		s.mainScale.Update(mainMax)
		s.navScale.Update(navMax)
	}
	s.labels.Resolve(s.mainMap)
	if s.selector.Selected() {
		s.selectAt(s.selectX)
		s.updateTooltip()
	}
	s.requestRedraw()
}

// Advance moves every animation forward by dt and reports whether any is
// still running.
func (s *Session) Advance(dt time.Duration) bool {
	changed := s.mainScale.Advance(dt)
	changed = s.navScale.Advance(dt) || changed
	changed = s.lines.Advance(dt) || changed
	changed = s.labels.Advance(dt) || changed
	if changed {
		s.requestRedraw()
	}
	return s.Animating()
}

// Animating reports whether any animation is running.
func (s *Session) Animating() bool {
	return s.mainScale.Animating() || s.navScale.Animating() || s.lines.Fading() || s.labels.Fading()
}

func (s *Session) selectAt(x float64) {
	s.selectX = x
	prev := s.selector.Index()
	if idx := s.selector.Select(s.mainMap, x); idx != prev {
		s.emit(SelectionChanged{Index: idx})
	}
}

// HandleChart feeds a pointer event from the main chart.
func (s *Session) HandleChart(ev PointerEvent) {
	if ev.Kind == Press {
		s.dismissed = false
	}
	step := s.gesture.Handle(ev)
	if step.Select {
		s.selectAt(step.X)
	}
	if step.Clear && s.selector.Selected() {
		s.selector.Clear()
		s.emit(SelectionChanged{Index: -1})
	}
	if step.DirectionChanged {
		if s.gesture.Selecting() {
			s.dismissed = !step.Horizontal
		}
		s.emit(DirectionChanged{Surface: SurfaceChart, Horizontal: step.Horizontal})
	}
	if step.Vertical {
		s.dismissed = true
	}
	if step.Released {
		s.emit(Released{Surface: SurfaceChart})
	}
	s.updateTooltip()
	s.requestRedraw()
}

// HandleNavigator feeds a pointer event from the navigator strip.
func (s *Session) HandleNavigator(ev PointerEvent) {
	step := s.nav.Handle(ev)
	if step.DirectionChanged {
		s.emit(DirectionChanged{Surface: SurfaceNavigator, Horizontal: step.Horizontal})
	}
	if step.ViewportChanged {
		s.setViewport(step.Viewport)
	}
	if step.Finished {
		s.emit(ModifyFinished{Viewport: step.Viewport})
		s.emit(Released{Surface: SurfaceNavigator})
	}
}

func (s *Session) updateTooltip() {
	idx := s.selector.Index()
	visible := s.gesture.Selecting() && idx >= 0 && s.lines.AnyVisible() && !s.dismissed
	next := Tooltip{Index: idx, Visible: visible}
	if idx >= 0 {
		next.Date = s.series.LongDate(idx)
		next.Values = s.selector.Values()
	}
	if next.Visible == s.tooltip.Visible && next.Index == s.tooltip.Index && sameValues(next.Values, s.tooltip.Values) {
		return
	}
	next.Values = append([]LineValue(nil), next.Values...)
	s.tooltip = next
	s.emit(TooltipChanged{Tooltip: next})
	if s.tooltipSink != nil {
		s.tooltipSink(next)
	}
}

func sameValues(a, b []LineValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Frame builds the drawable state from the latest snapshot. The result is
// reused by the next call.
func (s *Session) Frame() *Frame {
	f := &s.frame
	f.Palette = s.palette
	f.Tooltip = s.tooltip

	height := s.plotHeight()
	f.Plot = Plot{
		Mapping: s.mainMap,
		Top:     s.cfg.TopPadding,
		Height:  height,
		YStep:   s.mainScale.YStep(height),
	}
	f.Lines = s.lines.Build(f.Plot, &s.mainBuf)
	f.Gridlines = s.mainScale.Gridlines(height)
	for i := range f.Gridlines {
		f.Gridlines[i].Y += s.cfg.TopPadding
	}
	f.Labels = s.labels.Layout(s.mainMap)

	f.Marker.Points = f.Marker.Points[:0]
	f.Marker.Visible = false
	if idx := s.selector.Index(); idx >= 0 {
		f.Marker.Visible = true
		f.Marker.Index = idx
		f.Marker.X = s.mainMap.X(idx)
		for i, line := range s.series.Lines() {
			if !s.lines.Visible(i) {
				continue
			}
			alpha := s.lines.Opacity(i)
			f.Marker.Points = append(f.Marker.Points, MarkerPoint{
				Center: f32.Pt(float32(f.Marker.X), float32(f.Plot.Y(line.Values[idx]))),
				Color:  fade(line.Color, alpha),
			})
		}
	}

	navPlot := Plot{
		Mapping: s.navMap,
		Height:  s.navH,
		YStep:   s.navScale.YStep(s.navH),
	}
	f.Navigator.Plot = navPlot
	f.Navigator.Lines = s.lines.Build(navPlot, &s.navBuf)
	f.Navigator.FrameStart, f.Navigator.FrameWidth = s.nav.Frame()
	return f
}
