package harness

import (
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/tw"
)

// DefaultFontSize is used when no tw.FontSize property applies.
const DefaultFontSize = 14.0

// Label displays a single run of text. It ignores the pointer.
type Label struct {
	retained.WidgetBase
	text string
}

// NewLabel returns a label showing text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// Text returns the displayed text.
func (l *Label) Text() string { return l.text }

// SetText replaces the displayed text.
func (l *Label) SetText(ctx *retained.MutateCtx, text string) {
	if l.text == text {
		return
	}
	l.text = text
	ctx.RequestLayout()
	ctx.RequestPaint()
	ctx.RequestAccessibility()
}

type fontSpec struct {
	family string
	size   float64
}

func resolveFont(ctx tw.Context) fontSpec {
	f := fontSpec{family: tw.Resolve[tw.FontFamily](ctx).Name, size: tw.Resolve[tw.FontSize](ctx).Size}
	if f.size <= 0 {
		f.size = DefaultFontSize
	}
	return f
}

// textColor resolves tw.TextColor, drawing unstyled text in black.
func textColor(ctx tw.Context) gg.RGBA {
	if c := tw.Resolve[tw.TextColor](ctx).Color; c != (gg.RGBA{}) {
		return c
	}
	return gg.RGBA{A: 1}
}

func (l *Label) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	restyleOnChange(ctx, prop)
}

func (l *Label) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	f := resolveFont(ctx)
	m := ctx.Fonts().Measure(l.text, f.family, f.size, 0)
	ctx.SetBaselineOffset(m.Baseline)
	return bc.Constrain(retained.Size{Width: m.Width, Height: m.Height})
}

func (l *Label) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	f := resolveFont(ctx)
	p.DrawText(l.text, gg.Point{Y: ctx.BaselineOffset()}, f.family, f.size, textColor(ctx))
}

func (l *Label) AccessRole() retained.AccessRole { return retained.RoleLabel }

func (l *Label) Accessibility(_ *retained.AccessCtx, node *retained.AccessNode) {
	node.Label = l.text
}

func (l *Label) AcceptsPointerInteraction() bool { return false }
