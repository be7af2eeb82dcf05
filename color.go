package main

import (
	"image/color"

	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/timechart/chart"
)

// applyPalette recolors the theme to match the chart palette so widgets
// drawn around the chart follow day and night mode.
func applyPalette(th *material.Theme, p chart.Palette) {
	th.Bg = p.Background
	th.Fg = p.Foreground
	th.ContrastBg = p.FrameBorder
	th.ContrastFg = p.Background
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = max(0, min(alpha, 1))
	c.A = uint8(float64(c.A) * alpha)
	return c
}
