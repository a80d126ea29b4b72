package text

import (
	gtext "github.com/gogpu/gg/text"
)

// Metrics is the measured extent of a block of text.
type Metrics struct {
	Width  float64
	Height float64
	// Baseline is the distance from the top to the first line's baseline.
	Baseline float64
	Lines    int
}

// Measure lays out s and returns its size. maxWidth of 0 disables wrapping.
func (fc *FontContext) Measure(s, family string, size, maxWidth float64) Metrics {
	face := fc.Face(family, size)
	if s == "" {
		m := face.Metrics()
		return Metrics{Height: m.LineHeight(), Baseline: m.Ascent}
	}
	layout := gtext.LayoutText(s, face, gtext.LayoutOptions{MaxWidth: maxWidth})
	out := Metrics{Width: layout.Width, Height: layout.Height, Lines: len(layout.Lines)}
	if len(layout.Lines) > 0 {
		out.Baseline = layout.Lines[0].Y
	}
	return out
}

// Advance returns the horizontal advance of s on a single line.
func (fc *FontContext) Advance(s, family string, size float64) float64 {
	return fc.Face(family, size).Advance(s)
}
