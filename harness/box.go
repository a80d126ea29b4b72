package harness

import (
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/tw"
)

// paintStyledBox paints the background and border from the widget's tw
// properties for its current state.
func paintStyledBox(ctx *retained.PaintCtx, p *retained.Painter) {
	r := retained.RectFromSize(ctx.Size())
	radius := tw.Resolve[tw.CornerRadius](ctx).Radius
	if bg := tw.Resolve[tw.Background](ctx); bg.Color.A > 0 {
		p.FillRoundedRect(r, radius, bg.Color)
	}
	if w := tw.Resolve[tw.BorderWidth](ctx).Width; w > 0 {
		p.StrokeRect(r, radius, w, tw.Resolve[tw.BorderColor](ctx).Color)
	}
}

// restyleOnChange requests paint for visual property changes and layout for
// the ones that change size.
func restyleOnChange(ctx *retained.UpdateCtx, prop reflect.Type) {
	switch prop {
	case reflect.TypeOf(tw.Padding{}), reflect.TypeOf(tw.FontSize{}),
		reflect.TypeOf(tw.FontFamily{}), reflect.TypeOf(tw.BorderWidth{}), reflect.TypeOf(tw.Style{}):
		ctx.RequestLayout()
	}
	ctx.RequestPaint()
}

// restyleOnStatus repaints when a status a tw variant could depend on
// changes.
func restyleOnStatus(ctx *retained.UpdateCtx, u retained.Update) {
	switch u.Kind {
	case retained.HoveredChanged, retained.ActiveChanged, retained.FocusChanged, retained.DisabledChanged:
		ctx.RequestPaint()
	}
}

// SizedBox has a fixed size and an optional child inset by its padding.
// A negative dimension fills the constraints.
type SizedBox struct {
	retained.WidgetBase
	width, height float64
	child         *retained.WidgetPod
}

// NewSizedBox returns an empty box of the given size.
func NewSizedBox(width, height float64) *SizedBox {
	return &SizedBox{width: width, height: height}
}

// Expand returns a box as large as its constraints allow.
func Expand() *SizedBox {
	return &SizedBox{width: -1, height: -1}
}

// WithChild sets the box's child.
func (b *SizedBox) WithChild(child *retained.WidgetPod) *SizedBox {
	b.child = child
	return b
}

// Child returns the child pod, or nil.
func (b *SizedBox) Child() *retained.WidgetPod { return b.child }

// SetSize changes the box size.
func (b *SizedBox) SetSize(ctx *retained.MutateCtx, width, height float64) {
	b.width, b.height = width, height
	ctx.RequestLayout()
}

func (b *SizedBox) RegisterChildren(ctx *retained.RegisterCtx) {
	if b.child != nil {
		ctx.RegisterChild(b.child)
	}
}

func (b *SizedBox) ChildrenIDs() []retained.WidgetID {
	if b.child == nil {
		return nil
	}
	return []retained.WidgetID{b.child.ID()}
}

func (b *SizedBox) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	restyleOnChange(ctx, prop)
}

func (b *SizedBox) Update(ctx *retained.UpdateCtx, u retained.Update) {
	restyleOnStatus(ctx, u)
}

func (b *SizedBox) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	pad := tw.Resolve[tw.Padding](ctx).Insets
	padW, padH := pad.Left+pad.Right, pad.Top+pad.Bottom

	want := retained.Size{Width: b.width, Height: b.height}
	if b.width < 0 {
		want.Width = bc.Max.Width
	}
	if b.height < 0 {
		want.Height = bc.Max.Height
	}
	size := bc.Constrain(want)

	if b.child != nil {
		inner := retained.Tight(size).Shrink(padW, padH)
		if b.width < 0 && b.height < 0 {
			inner = inner.Loosen()
		}
		ctx.RunLayout(b.child, inner)
		ctx.PlaceChild(b.child, gg.Point{X: pad.Left, Y: pad.Top})
		ctx.SetBaselineOffset(pad.Top + ctx.ChildBaselineOffset(b.child))
	}
	return size
}

func (b *SizedBox) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	paintStyledBox(ctx, p)
}

func (b *SizedBox) Cursor(ctx *retained.QueryCtx, _ gg.Point) retained.CursorIcon {
	return tw.Resolve[tw.Cursor](ctx).Icon
}
