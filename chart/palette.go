package chart

import "image/color"

// Palette holds the theme colors used for drawing. Line colors come from the
// series.
type Palette struct {
	Background color.NRGBA
	// Foreground is used for titles and legend entries.
	Foreground color.NRGBA
	// Text is used for axis labels.
	Text     color.NRGBA
	Grid     color.NRGBA
	Baseline color.NRGBA
	Guide    color.NRGBA
	// Overlay dims the navigator outside the frame.
	Overlay     color.NRGBA
	FrameBorder color.NRGBA
	Tooltip     color.NRGBA
}

var (
	LightPalette = Palette{
		Background:  color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Foreground:  color.NRGBA{R: 0x22, G: 0x2b, B: 0x33, A: 0xff},
		Text:        color.NRGBA{R: 0x96, G: 0xa2, B: 0xaa, A: 0xff},
		Grid:        color.NRGBA{R: 0xf2, G: 0xf4, B: 0xf5, A: 0xff},
		Baseline:    color.NRGBA{R: 0xe1, G: 0xe6, B: 0xe9, A: 0xff},
		Guide:       color.NRGBA{R: 0xdf, G: 0xe6, B: 0xeb, A: 0xff},
		Overlay:     color.NRGBA{R: 0xf5, G: 0xf9, B: 0xfb, A: 0xc0},
		FrameBorder: color.NRGBA{R: 0xc0, G: 0xd1, B: 0xe1, A: 0xd0},
		Tooltip:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xf0},
	}
	DarkPalette = Palette{
		Background:  color.NRGBA{R: 0x24, G: 0x2f, B: 0x3e, A: 0xff},
		Foreground:  color.NRGBA{R: 0xe8, G: 0xec, B: 0xef, A: 0xff},
		Text:        color.NRGBA{R: 0x54, G: 0x6f, B: 0x86, A: 0xff},
		Grid:        color.NRGBA{R: 0x29, G: 0x35, B: 0x44, A: 0xff},
		Baseline:    color.NRGBA{R: 0x31, G: 0x3d, B: 0x4d, A: 0xff},
		Guide:       color.NRGBA{R: 0x3b, G: 0x4a, B: 0x5a, A: 0xff},
		Overlay:     color.NRGBA{R: 0x1f, G: 0x2a, B: 0x38, A: 0xc0},
		FrameBorder: color.NRGBA{R: 0x56, G: 0x62, B: 0x6d, A: 0xd0},
		Tooltip:     color.NRGBA{R: 0x25, G: 0x33, B: 0x41, A: 0xf0},
	}
)

// DefaultLineColors is used for lines that arrive without a color.
var DefaultLineColors = []color.NRGBA{
	{R: 0x3c, G: 0xc2, B: 0x3f, A: 0xff},
	{R: 0xf3, G: 0x4c, B: 0x44, A: 0xff},
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff},
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff},
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff},
}

// PaletteFor returns the palette for the given theme.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
