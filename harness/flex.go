package harness

import (
	"math"
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/tw"
)

// Axis is the main axis of a Flex.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Flex lays its children out in a row or column, each at its natural size,
// separated by Gap. Stashed children take no space.
type Flex struct {
	retained.WidgetBase
	axis     Axis
	gap      float64
	children []*retained.WidgetPod
}

// Row returns a horizontal Flex.
func Row(children ...*retained.WidgetPod) *Flex {
	return &Flex{axis: Horizontal, children: children}
}

// Column returns a vertical Flex.
func Column(children ...*retained.WidgetPod) *Flex {
	return &Flex{axis: Vertical, children: children}
}

// WithGap sets the spacing between children.
func (f *Flex) WithGap(gap float64) *Flex {
	f.gap = gap
	return f
}

// Children returns the child pods in order.
func (f *Flex) Children() []*retained.WidgetPod { return f.children }

// AddChild appends a widget and returns its pod.
func (f *Flex) AddChild(ctx *retained.MutateCtx, w retained.Widget, opts ...retained.PodOption) *retained.WidgetPod {
	pod := retained.NewWidgetPod(w, opts...)
	f.children = append(f.children, pod)
	ctx.ChildrenChanged()
	return pod
}

// InsertChild inserts a widget before index i.
func (f *Flex) InsertChild(ctx *retained.MutateCtx, i int, w retained.Widget, opts ...retained.PodOption) *retained.WidgetPod {
	pod := retained.NewWidgetPod(w, opts...)
	f.children = append(f.children[:i], append([]*retained.WidgetPod{pod}, f.children[i:]...)...)
	ctx.ChildrenChanged()
	return pod
}

// RemoveChildAt removes and drops the child at index i.
func (f *Flex) RemoveChildAt(ctx *retained.MutateCtx, i int) {
	pod := f.children[i]
	f.children = append(f.children[:i], f.children[i+1:]...)
	ctx.RemoveChild(pod)
}

// SetGap changes the spacing between children.
func (f *Flex) SetGap(ctx *retained.MutateCtx, gap float64) {
	f.gap = gap
	ctx.RequestLayout()
}

func (f *Flex) RegisterChildren(ctx *retained.RegisterCtx) {
	for _, c := range f.children {
		ctx.RegisterChild(c)
	}
}

func (f *Flex) ChildrenIDs() []retained.WidgetID { return retained.PodIDs(f.children) }

func (f *Flex) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	restyleOnChange(ctx, prop)
}

func (f *Flex) Update(ctx *retained.UpdateCtx, u retained.Update) {
	restyleOnStatus(ctx, u)
}

func (f *Flex) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	pad := tw.Resolve[tw.Padding](ctx).Insets
	inner := bc.Loosen().Shrink(pad.Left+pad.Right, pad.Top+pad.Bottom)

	var main, cross, baseline float64
	placed := 0
	for _, c := range f.children {
		if ctx.ChildIsStashed(c) {
			ctx.SkipLayout(c)
			continue
		}
		if placed > 0 {
			main += f.gap
		}
		childBC := inner
		if f.axis == Horizontal {
			childBC.Max.Width = math.Max(0, inner.Max.Width-main)
		} else {
			childBC.Max.Height = math.Max(0, inner.Max.Height-main)
		}
		size := ctx.RunLayout(c, childBC)
		origin := gg.Point{X: pad.Left + main, Y: pad.Top}
		if f.axis == Vertical {
			origin = gg.Point{X: pad.Left, Y: pad.Top + main}
		}
		ctx.PlaceChild(c, origin)
		if placed == 0 {
			baseline = origin.Y + ctx.ChildBaselineOffset(c)
		}
		if f.axis == Horizontal {
			main += size.Width
			cross = math.Max(cross, size.Height)
		} else {
			main += size.Height
			cross = math.Max(cross, size.Width)
		}
		placed++
	}
	ctx.SetBaselineOffset(baseline)

	size := retained.Size{Width: main, Height: cross}
	if f.axis == Vertical {
		size = retained.Size{Width: cross, Height: main}
	}
	size.Width += pad.Left + pad.Right
	size.Height += pad.Top + pad.Bottom
	return bc.Constrain(size)
}

func (f *Flex) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	paintStyledBox(ctx, p)
}
