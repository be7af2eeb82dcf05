package main

import (
	"errors"
	"image"
	"image/color"
	"log"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/timechart/backend"
	"git.sr.ht/~whereswaldon/timechart/chart"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var (
	darkIcon  = mustIcon(icons.ImageBrightness2)
	lightIcon = mustIcon(icons.ImageWBSunny)
	openIcon  = mustIcon(icons.FileFolderOpen)
)

func mustIcon(data []byte) *widget.Icon {
	ic, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return ic
}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	charts      []*ChartView
	tab         widget.Enum
	explorerBtn widget.Clickable
	darkBtn     widget.Clickable
	dark        bool
	loadErr     string

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
	loadID       string
	generation   int
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, dark bool) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		tab:          widget.Enum{Value: tabValue(0)},
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
	ui.setDark(dark)
	return ui
}

func tabValue(i int) string {
	return strconv.Itoa(i)
}

func (ui *UI) setDark(dark bool) {
	ui.dark = dark
	applyPalette(ui.th, chart.PaletteFor(dark))
	for _, c := range ui.charts {
		c.SetDark(dark)
	}
}

// rebuild replaces the chart views after the datasource published new data.
func (ui *UI) rebuild() {
	ui.loadErr = ""
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	}
	if ui.status.Loading {
		return
	}
	ui.charts = ui.charts[:0]
	for _, s := range ui.status.Data.Charts {
		ui.charts = append(ui.charts, NewChartView(s, ui.dark, ui.ws.Invalidate))
	}
	if idx, err := strconv.Atoi(ui.tab.Value); err != nil || idx >= len(ui.charts) {
		ui.tab.Value = tabValue(0)
	}
}

// Update the state of the UI and handle input.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if ui.status.ID != ui.loadID || ui.status.Generation != ui.generation {
		ui.loadID, ui.generation = ui.status.ID, ui.status.Generation
		ui.rebuild()
	}
	ui.tab.Update(gtx)
	if ui.explorerBtn.Clicked(gtx) {
		go func() {
			err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed opening chart file: %v", err)
			}
		}()
	}
	if ui.darkBtn.Clicked(gtx) {
		ui.setDark(!ui.dark)
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	ts.label.MaxLines = 1
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) chartName(i int) string {
	name := ui.status.Data.Name
	if len(ui.charts) == 1 {
		return name
	}
	return name + " #" + strconv.Itoa(i+1)
}

func (ui *UI) layoutToolbar(gtx C) D {
	tabs := make([]layout.FlexChild, 0, len(ui.charts)+2)
	for i := range ui.charts {
		tabs = append(tabs, layout.Flexed(1, Tab(ui.th, &ui.tab, tabValue(i), ui.chartName(i)).Layout))
	}
	themeIcon := darkIcon
	if ui.dark {
		themeIcon = lightIcon
	}
	tabs = append(tabs,
		layout.Rigid(material.IconButton(ui.th, &ui.explorerBtn, openIcon, "Open chart file").Layout),
		layout.Rigid(layout.Spacer{Width: 4}.Layout),
		layout.Rigid(material.IconButton(ui.th, &ui.darkBtn, themeIcon, "Toggle night mode").Layout),
	)
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx, tabs...)
}

func (ui *UI) layoutError(gtx C) D {
	if len(ui.loadErr) == 0 {
		return D{}
	}
	l := material.Body1(ui.th, ui.loadErr)
	l.Color = color.NRGBA{R: 150, A: 255}
	return l.Layout(gtx)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, func(gtx C) D {
			idx, err := strconv.Atoi(ui.tab.Value)
			if err != nil || idx < 0 || idx >= len(ui.charts) {
				return D{Size: gtx.Constraints.Max}
			}
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				return ui.charts[idx].Layout(gtx, ui.th)
			})
		}),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	msg := "No data yet."
	if ui.status.Loading {
		msg = "Loading " + ui.status.Path + "..."
	}
	l := material.Body1(ui.th, msg)
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			if ui.status.Loading {
				gtx = gtx.Disabled()
			}
			return material.Button(ui.th, &ui.explorerBtn, "Open Chart File").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return ui.layoutError(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.Fill(gtx.Ops, ui.th.Bg)
	if len(ui.charts) > 0 {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
