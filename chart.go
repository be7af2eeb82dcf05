package main

import (
	"image"
	"log"
	"strconv"
	"time"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/stroke"
	"git.sr.ht/~whereswaldon/timechart/chart"
)

// ChartView draws one chart session and feeds it Gio input.
type ChartView struct {
	series  *chart.Series
	session *chart.Session
	err     error
	dark    bool
	redraw  func()

	Enabled  []*widget.Bool
	zoom     gesture.Scroll
	pan      gesture.Scroll
	keyTable component.GridState
	// navTag is the event target of the navigator strip.
	navTag bool

	metric    unit.Metric
	lastFrame time.Time
	tooltip   chart.Tooltip
	// hover state, used to anchor wheel zoom.
	pos       f32.Point
	isHovered bool
	// segments is a scratch slice used to stroke each polyline.
	segments []stroke.Segment
}

func NewChartView(s *chart.Series, dark bool, redraw func()) *ChartView {
	c := &ChartView{
		series: s,
		dark:   dark,
		redraw: redraw,
	}
	for range s.Lines() {
		c.Enabled = append(c.Enabled, &widget.Bool{Value: true})
	}
	return c
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// scaledConfig converts the engine's pixel constants to the window's density.
func scaledConfig(m unit.Metric, dark bool) chart.Config {
	cfg := chart.DefaultConfig()
	px := func(v float64) float64 { return v * float64(m.PxPerDp) }
	cfg.MinFrameWidth = px(cfg.MinFrameWidth)
	cfg.BorderHitSlop = px(cfg.BorderHitSlop)
	cfg.DefaultFrameWidth = px(cfg.DefaultFrameWidth)
	cfg.LabelMargin = px(cfg.LabelMargin)
	cfg.LabelMaxGap = px(cfg.LabelMaxGap)
	cfg.TopPadding = px(cfg.TopPadding)
	cfg.Dark = dark
	return cfg
}

// labelMeasurer measures labels exactly as layoutXLabels draws them. The
// returned measurer is only valid during the current frame.
func labelMeasurer(gtx C, th *material.Theme) chart.Measurer {
	gtx.Constraints.Min = image.Point{}
	return chart.MeasurerFunc(func(s string) float64 {
		dims, _ := rec(gtx, material.Caption(th, s).Layout)
		return float64(dims.Size.X)
	})
}

func (c *ChartView) ensureSession(gtx C, th *material.Theme) {
	if c.err != nil || (c.session != nil && c.metric == gtx.Metric) {
		return
	}
	if c.session == nil {
		s, err := chart.NewSession(c.series, scaledConfig(gtx.Metric, c.dark), chart.WithRedraw(c.redraw))
		if err != nil {
			c.err = err
			return
		}
		c.session = s
	}
	c.metric = gtx.Metric
	c.session.SetMeasurer(labelMeasurer(gtx, th))
}

// SetDark switches the chart between the day and night palettes.
func (c *ChartView) SetDark(dark bool) {
	c.dark = dark
	if c.session != nil {
		c.session.SetDarkMode(dark)
	}
}

func pointerKind(ev pointer.Event) (chart.PointerKind, bool) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Source == pointer.Mouse && !ev.Buttons.Contain(pointer.ButtonPrimary) {
			return 0, false
		}
		return chart.Press, true
	case pointer.Drag:
		return chart.Move, true
	case pointer.Release:
		return chart.Release, true
	case pointer.Cancel:
		return chart.Cancel, true
	}
	return 0, false
}

func (c *ChartView) Update(gtx C) {
	if c.session == nil {
		return
	}
	if !c.lastFrame.IsZero() {
		c.session.Advance(gtx.Now.Sub(c.lastFrame))
	}
	c.lastFrame = gtx.Now
	for i, enabled := range c.Enabled {
		if !enabled.Update(gtx) {
			continue
		}
		if err := c.session.SetLineVisibility(c.series.Lines()[i].ID, enabled.Value); err != nil {
			log.Printf("failed toggling line: %v", err)
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Enter, pointer.Move:
			c.isHovered = true
			c.pos = pe.Position
			continue
		case pointer.Leave:
			c.isHovered = false
			continue
		}
		c.pos = pe.Position
		if kind, ok := pointerKind(pe); ok {
			c.session.HandleChart(chart.PointerEvent{Kind: kind, Position: pe.Position})
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: &c.navTag,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			if kind, ok := pointerKind(pe); ok {
				c.session.HandleNavigator(chart.PointerEvent{Kind: kind, Position: pe.Position})
			}
		}
	}
	c.drainEvents()
}

func (c *ChartView) drainEvents() {
	for {
		ev, ok := c.session.Event()
		if !ok {
			return
		}
		switch ev := ev.(type) {
		case chart.TooltipChanged:
			c.tooltip = ev.Tooltip
		case chart.ModifyFinished:
			log.Printf("viewing [%.3f, %.3f]", ev.Viewport.Start, ev.Viewport.End)
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.ensureSession(gtx, th)
	if c.session == nil {
		return material.Body1(th, c.err.Error()).Layout(gtx)
	}
	c.Update(gtx)
	size := gtx.Constraints.Max
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}

	// Determine the space occupied by the key.
	gtx.Constraints.Max.Y = size.Y / 3
	macro := op.Record(gtx.Ops)
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	keyDims := c.layoutControls(gtx, th)
	keyCall := macro.Stop()
	gtx.Constraints = origConstraints
	gtx.Constraints.Min = image.Point{}

	// Measure one X label to size the label row.
	labelDims, _ := rec(gtx, material.Caption(th, "0").Layout)
	gap := gtx.Dp(8)
	navH := gtx.Dp(48)
	labelH := labelDims.Size.Y
	chartH := max(size.Y-keyDims.Size.Y-labelH-navH-2*gap, 0)

	c.session.SetChartSize(float64(size.X), float64(chartH))
	c.session.SetNavigatorSize(float64(size.X), float64(navH))

	if dist := c.zoom.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, image.Rect(0, -1e6, 0, 1e6)); dist != 0 {
		anchor := float64(size.X) / 2
		if c.isHovered {
			anchor = float64(c.pos.X)
		}
		factor := max(1+float64(dist)/float64(max(chartH, 1)), 0.1)
		c.session.Zoom(factor, anchor)
	}
	if dist := c.pan.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Horizontal, image.Rect(-1e6, 0, 1e6, 0)); dist != 0 {
		c.session.Pan(-float64(dist))
	}
	c.drainEvents()

	f := c.session.Frame()
	y := 0
	c.layoutPlot(gtx, th, f, image.Pt(size.X, chartH))
	y += chartH
	stack := op.Offset(image.Pt(0, y)).Push(gtx.Ops)
	c.layoutXLabels(gtx, th, f, image.Pt(size.X, labelH))
	stack.Pop()
	y += labelH + gap
	stack = op.Offset(image.Pt(0, y)).Push(gtx.Ops)
	c.layoutNavigator(gtx, f, image.Pt(size.X, navH))
	stack.Pop()
	y += navH + gap
	stack = op.Offset(image.Pt(0, y)).Push(gtx.Ops)
	keyCall.Add(gtx.Ops)
	stack.Pop()

	if c.session.Animating() {
		gtx.Execute(op.InvalidateCmd{})
	}
	return D{Size: size}
}

func (c *ChartView) layoutPlot(gtx C, th *material.Theme, f *chart.Frame, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)
	c.pan.Add(gtx.Ops)
	c.zoom.Add(gtx.Ops)
	oneDp := max(gtx.Dp(1), 1)

	// Draw grid underneath plot.
	for _, g := range f.Gridlines {
		clr := f.Palette.Grid
		if g.Value == 0 {
			clr = f.Palette.Baseline
		}
		yT := int(g.Y)
		paint.FillShape(gtx.Ops, withAlpha(clr, g.Alpha), clip.Rect{
			Min: image.Point{Y: yT},
			Max: image.Point{X: size.X, Y: yT + oneDp},
		}.Op())
	}
	if f.Marker.Visible {
		xL := int(f.Marker.X)
		paint.FillShape(gtx.Ops, f.Palette.Guide, clip.Rect{
			Min: image.Point{X: xL, Y: int(f.Plot.Top)},
			Max: image.Point{X: xL + oneDp, Y: int(f.Plot.Top + f.Plot.Height)},
		}.Op())
	}
	c.strokeLines(gtx, f.Lines, float32(gtx.Dp(2)))
	c.layoutGridLabels(gtx, th, f)

	outer := float32(gtx.Dp(5))
	inner := float32(gtx.Dp(3))
	for _, p := range f.Marker.Points {
		paint.FillShape(gtx.Ops, p.Color, clip.Ellipse(circle(p.Center, outer)).Op(gtx.Ops))
		paint.FillShape(gtx.Ops, f.Palette.Background, clip.Ellipse(circle(p.Center, inner)).Op(gtx.Ops))
	}
	c.layoutTooltip(gtx, th, f, size)
}

func circle(center f32.Point, r float32) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(int(center.X-r), int(center.Y-r)),
		Max: image.Pt(int(center.X+r), int(center.Y+r)),
	}
}

func (c *ChartView) strokeLines(gtx C, lines []chart.Polyline, width float32) {
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		c.segments = append(c.segments[:0], stroke.MoveTo(l.Points[0]))
		for _, p := range l.Points[1:] {
			c.segments = append(c.segments, stroke.LineTo(p))
		}
		paint.FillShape(gtx.Ops, l.Color, stroke.Stroke{
			Path:  stroke.Path{Segments: c.segments},
			Width: width,
			Cap:   stroke.RoundCap,
			Join:  stroke.RoundJoin,
		}.Op(gtx.Ops))
	}
}

func (c *ChartView) layoutGridLabels(gtx C, th *material.Theme, f *chart.Frame) {
	gtx.Constraints.Min = image.Point{}
	inset := gtx.Dp(2)
	for _, g := range f.Gridlines {
		if g.Alpha <= 0 {
			continue
		}
		label := material.Caption(th, g.Label)
		label.Color = withAlpha(f.Palette.Text, g.Alpha)
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		stack := op.Offset(image.Pt(inset, int(g.Y)-dims.Size.Y-inset)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

func (c *ChartView) layoutTooltip(gtx C, th *material.Theme, f *chart.Frame, size image.Point) {
	if !c.tooltip.Visible || !f.Marker.Visible {
		return
	}
	gtx.Constraints.Min = image.Point{}
	dims, call := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, f.Palette.Tooltip, clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, gtx.Dp(6)).Op(gtx.Ops))
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
					children := []layout.FlexChild{
						layout.Rigid(func(gtx C) D {
							l := material.Body2(th, c.tooltip.Date)
							l.Color = f.Palette.Foreground
							l.Font.Weight = font.Bold
							return l.Layout(gtx)
						}),
					}
					for _, v := range c.tooltip.Values {
						v := v
						children = append(children, layout.Rigid(func(gtx C) D {
							return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
								layout.Rigid(func(gtx C) D {
									sz := image.Pt(gtx.Dp(8), gtx.Dp(8))
									paint.FillShape(gtx.Ops, v.Color, clip.Ellipse{Max: sz}.Op(gtx.Ops))
									return D{Size: sz}
								}),
								layout.Rigid(layout.Spacer{Width: 6}.Layout),
								layout.Rigid(func(gtx C) D {
									l := material.Body2(th, v.Label)
									l.Color = f.Palette.Foreground
									return l.Layout(gtx)
								}),
								layout.Rigid(layout.Spacer{Width: 12}.Layout),
								layout.Rigid(func(gtx C) D {
									l := material.Body2(th, strconv.FormatInt(v.Value, 10))
									l.Color = v.Color
									l.Font.Weight = font.Bold
									return l.Layout(gtx)
								}),
							)
						}))
					}
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
				})
			},
		)
	})
	xR := int(f.Marker.X)
	gap := gtx.Dp(12)
	pos := image.Point{Y: int(f.Plot.Top)}
	if xR+gap+dims.Size.X <= size.X {
		pos.X = xR + gap
	} else {
		pos.X = max(xR-gap-dims.Size.X, 0)
	}
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func (c *ChartView) layoutXLabels(gtx C, th *material.Theme, f *chart.Frame, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	gtx.Constraints.Min = image.Point{}
	for _, l := range f.Labels {
		label := material.Caption(th, l.Text)
		label.Color = withAlpha(f.Palette.Text, l.Alpha)
		label.MaxLines = 1
		dims, call := rec(gtx, label.Layout)
		x := int(l.X) - dims.Size.X/2
		if x+dims.Size.X < 0 || x > size.X {
			continue
		}
		// Keep partially visible labels, such as the pinned ends, on screen.
		x = max(0, min(x, size.X-dims.Size.X))
		stack := op.Offset(image.Pt(x, 0)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

func (c *ChartView) layoutNavigator(gtx C, f *chart.Frame, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, &c.navTag)
	oneDp := max(gtx.Dp(1), 1)
	c.strokeLines(gtx, f.Navigator.Lines, float32(oneDp))

	start := int(f.Navigator.FrameStart)
	end := int(f.Navigator.FrameStart + f.Navigator.FrameWidth)
	paint.FillShape(gtx.Ops, f.Palette.Overlay, clip.Rect{Max: image.Pt(start, size.Y)}.Op())
	paint.FillShape(gtx.Ops, f.Palette.Overlay, clip.Rect{Min: image.Pt(end, 0), Max: size}.Op())

	border := gtx.Dp(4)
	for _, r := range []image.Rectangle{
		{Min: image.Pt(start, 0), Max: image.Pt(start+border, size.Y)},
		{Min: image.Pt(end-border, 0), Max: image.Pt(end, size.Y)},
		{Min: image.Pt(start+border, 0), Max: image.Pt(end-border, oneDp)},
		{Min: image.Pt(start+border, size.Y-oneDp), Max: image.Pt(end-border, size.Y)},
	} {
		paint.FillShape(gtx.Ops, f.Palette.FrameBorder, clip.Rect(r).Op())
	}
}

func (c *ChartView) layoutControls(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	colorColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(100)
	nameColWidth := gtx.Constraints.Max.X - colorColWidth - 2*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		colorCol = iota
		lineNameCol
		visibleMaxCol
		selectedCol
		numCols
	)
	lines := c.series.Lines()
	gtx.Constraints.Max.Y = min(gtx.Constraints.Max.Y, (len(lines)+1)*rowHeight)
	palette := c.session.Palette()
	return table.Layout(gtx, len(lines), numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}

			var size int
			switch index {
			case colorCol:
				size = colorColWidth
			case lineNameCol:
				size = nameColWidth
			case visibleMaxCol, selectedCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case colorCol:
				l = material.Body1(th, "Show")
			case lineNameCol:
				l = material.Body1(th, "Line")
				l.Alignment = text.Middle
			case visibleMaxCol:
				l = material.Body1(th, "Max in view")
				l.Alignment = text.End
			case selectedCol:
				l = material.Body1(th, "Selected")
				l.Alignment = text.End
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				}, l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			line := lines[row]
			enabled := c.Enabled[row].Value
			disabledAlpha := uint8(100)
			dims = layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case colorCol:
					return c.Enabled[row].Layout(gtx, func(gtx C) D {
						return layout.Center.Layout(gtx, func(gtx C) D {
							sideLen := gtx.Dp(10)
							sz := image.Pt(sideLen, sideLen)
							fullColor := line.Color
							if !enabled {
								fullColor.A = disabledAlpha
							}
							paint.FillShape(gtx.Ops, fullColor, clip.Rect{Max: sz}.Op())
							return D{Size: sz}
						})
					})
				case lineNameCol:
					l := material.Body2(th, line.Label)
					if !enabled {
						l.Color.A = disabledAlpha
					}
					return l.Layout(gtx)
				case visibleMaxCol:
					m := c.session.Mapping()
					l := material.Body2(th, chart.FormatValue(c.series.MaxBetween(row, m.First, m.Last)))
					if !enabled {
						l.Color.A = disabledAlpha
					}
					l.Alignment = text.End
					return l.Layout(gtx)
				case selectedCol:
					value := "-"
					if idx := c.session.Selected(); idx >= 0 {
						value = strconv.FormatInt(line.Values[idx], 10)
					}
					l := material.Body2(th, value)
					if !enabled {
						l.Color.A = disabledAlpha
					}
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
			if row&1 != 0 {
				paint.FillShape(gtx.Ops, withAlpha(palette.Grid, 0.8), clip.Rect{Max: gtx.Constraints.Max}.Op())
			}
			return dims
		})
}
