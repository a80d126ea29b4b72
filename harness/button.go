package harness

import (
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/tw"
)

// DefaultButtonClasses is the look NewButtonPod gives a button when no
// classes are passed.
const DefaultButtonClasses = "bg-gray-100 hover:bg-gray-200 active:bg-gray-300 " +
	"border border-gray-400 focus:border-blue-500 rounded-md px-3 py-1 " +
	"text-gray-900 disabled:text-gray-400 cursor-pointer disabled:cursor-not-allowed"

// ButtonPressed is the action a Button submits when activated.
type ButtonPressed struct {
	Button retained.MouseButton
}

// Button is a focusable push button. It captures the pointer on press and
// submits ButtonPressed when released over itself, on Enter or Space while
// focused, or on an accessibility Click.
type Button struct {
	retained.WidgetBase
	label string
}

// NewButton returns an unstyled button.
func NewButton(label string) *Button {
	return &Button{label: label}
}

// NewButtonPod returns a pod for a button styled with classes, or with
// DefaultButtonClasses when classes is empty.
func NewButtonPod(label, classes string, opts ...retained.PodOption) *retained.WidgetPod {
	if classes == "" {
		classes = DefaultButtonClasses
	}
	return StyledPod(NewButton(label), classes, opts...)
}

// StyledPod returns a pod for w carrying the properties parsed from classes.
func StyledPod(w retained.Widget, classes string, opts ...retained.PodOption) *retained.WidgetPod {
	opts = append([]retained.PodOption{retained.WithProperties(tw.Classes(classes).Properties())}, opts...)
	return retained.NewWidgetPod(w, opts...)
}

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// SetLabel replaces the button text.
func (b *Button) SetLabel(ctx *retained.MutateCtx, label string) {
	b.label = label
	ctx.RequestLayout()
	ctx.RequestAccessibility()
}

func (b *Button) OnPointerEvent(ctx *retained.EventCtx, e *retained.PointerEvent) {
	switch e.Kind {
	case retained.PointerDown:
		if e.Button != retained.MouseButtonLeft {
			return
		}
		ctx.CapturePointer()
		ctx.SetHandled()
	case retained.PointerUp:
		if !ctx.HasPointerCapture() {
			return
		}
		if retained.RectFromSize(ctx.Size()).Contains(ctx.ToLocal(e.Position)) {
			ctx.SubmitAction(ButtonPressed{Button: e.Button})
		}
		ctx.SetHandled()
	}
}

func (b *Button) OnTextEvent(ctx *retained.EventCtx, e *retained.TextEvent) {
	if e.Kind != retained.KeyDown || e.Repeat || ctx.Target() != ctx.WidgetID() {
		return
	}
	if e.Key == retained.KeyEnter || e.Key == retained.KeySpace {
		ctx.SubmitAction(ButtonPressed{})
		ctx.SetHandled()
	}
}

func (b *Button) OnAccessEvent(ctx *retained.EventCtx, e *retained.AccessEvent) {
	if e.Action == retained.AccessClick && ctx.Target() == ctx.WidgetID() {
		ctx.SubmitAction(ButtonPressed{})
		ctx.SetHandled()
	}
}

func (b *Button) Update(ctx *retained.UpdateCtx, u retained.Update) {
	restyleOnStatus(ctx, u)
}

func (b *Button) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	restyleOnChange(ctx, prop)
}

func (b *Button) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	pad := tw.Resolve[tw.Padding](ctx).Insets
	f := resolveFont(ctx)
	m := ctx.Fonts().Measure(b.label, f.family, f.size, 0)
	ctx.SetBaselineOffset(pad.Top + m.Baseline)
	return bc.Constrain(retained.Size{
		Width:  m.Width + pad.Left + pad.Right,
		Height: m.Height + pad.Top + pad.Bottom,
	})
}

func (b *Button) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	paintStyledBox(ctx, p)
	pad := tw.Resolve[tw.Padding](ctx).Insets
	f := resolveFont(ctx)
	p.DrawText(b.label, gg.Point{X: pad.Left, Y: ctx.BaselineOffset()}, f.family, f.size, textColor(ctx))
}

func (b *Button) AccessRole() retained.AccessRole { return retained.RoleButton }

func (b *Button) Accessibility(_ *retained.AccessCtx, node *retained.AccessNode) {
	node.Label = b.label
}

func (b *Button) AcceptsFocus() bool { return true }

func (b *Button) Cursor(ctx *retained.QueryCtx, _ gg.Point) retained.CursorIcon {
	if retained.HasProp[tw.Cursor](ctx) || retained.HasProp[tw.Style](ctx) {
		return tw.Resolve[tw.Cursor](ctx).Icon
	}
	return retained.CursorPointer
}
