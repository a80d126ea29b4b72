package harness

import (
	"reflect"
	"time"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
)

// ModularWidget is a widget assembled from optional callbacks, for tests that
// need one-off behaviour. S is free-form state the callbacks can use.
// Unset callbacks fall back to WidgetBase behaviour; the default layout stacks
// every child at the origin and takes the largest child size.
type ModularWidget[S any] struct {
	State    S
	Children []*retained.WidgetPod

	Focusable  bool
	TextInput  bool
	NoPointer  bool
	Role       retained.AccessRole
	CursorIcon retained.CursorIcon

	OnPointer  func(w *ModularWidget[S], ctx *retained.EventCtx, e *retained.PointerEvent)
	OnText     func(w *ModularWidget[S], ctx *retained.EventCtx, e *retained.TextEvent)
	OnAccess   func(w *ModularWidget[S], ctx *retained.EventCtx, e *retained.AccessEvent)
	OnAnim     func(w *ModularWidget[S], ctx *retained.UpdateCtx, interval time.Duration)
	OnUpdate   func(w *ModularWidget[S], ctx *retained.UpdateCtx, u retained.Update)
	OnProperty func(w *ModularWidget[S], ctx *retained.UpdateCtx, prop reflect.Type)
	OnLayout   func(w *ModularWidget[S], ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size
	OnCompose  func(w *ModularWidget[S], ctx *retained.ComposeCtx)
	OnPaint    func(w *ModularWidget[S], ctx *retained.PaintCtx, p *retained.Painter)
	OnActionFn func(w *ModularWidget[S], ctx *retained.EventCtx, a retained.Action, source retained.WidgetID) bool
}

// NewModular returns a ModularWidget holding state and children.
func NewModular[S any](state S, children ...*retained.WidgetPod) *ModularWidget[S] {
	return &ModularWidget[S]{State: state, Children: children, Role: retained.RoleGenericContainer}
}

// Leaf returns a stateless ModularWidget with a fixed layout size.
func Leaf(size retained.Size) *ModularWidget[struct{}] {
	w := NewModular(struct{}{})
	w.OnLayout = func(_ *ModularWidget[struct{}], _ *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
		return bc.Constrain(size)
	}
	return w
}

// FocusableLeaf returns a focusable Leaf.
func FocusableLeaf(size retained.Size) *ModularWidget[struct{}] {
	w := Leaf(size)
	w.Focusable = true
	return w
}

func (w *ModularWidget[S]) RegisterChildren(ctx *retained.RegisterCtx) {
	for _, c := range w.Children {
		ctx.RegisterChild(c)
	}
}

func (w *ModularWidget[S]) ChildrenIDs() []retained.WidgetID { return retained.PodIDs(w.Children) }

func (w *ModularWidget[S]) OnPointerEvent(ctx *retained.EventCtx, e *retained.PointerEvent) {
	if w.OnPointer != nil {
		w.OnPointer(w, ctx, e)
	}
}

func (w *ModularWidget[S]) OnTextEvent(ctx *retained.EventCtx, e *retained.TextEvent) {
	if w.OnText != nil {
		w.OnText(w, ctx, e)
	}
}

func (w *ModularWidget[S]) OnAccessEvent(ctx *retained.EventCtx, e *retained.AccessEvent) {
	if w.OnAccess != nil {
		w.OnAccess(w, ctx, e)
	}
}

func (w *ModularWidget[S]) OnAnimFrame(ctx *retained.UpdateCtx, interval time.Duration) {
	if w.OnAnim != nil {
		w.OnAnim(w, ctx, interval)
	}
}

func (w *ModularWidget[S]) Update(ctx *retained.UpdateCtx, u retained.Update) {
	if w.OnUpdate != nil {
		w.OnUpdate(w, ctx, u)
	}
}

func (w *ModularWidget[S]) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	if w.OnProperty != nil {
		w.OnProperty(w, ctx, prop)
	}
}

func (w *ModularWidget[S]) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	if w.OnLayout != nil {
		return w.OnLayout(w, ctx, bc)
	}
	var size retained.Size
	for _, c := range w.Children {
		cs := ctx.RunLayout(c, bc.Loosen())
		ctx.PlaceChild(c, gg.Point{})
		size.Width = max(size.Width, cs.Width)
		size.Height = max(size.Height, cs.Height)
	}
	return bc.Constrain(size)
}

func (w *ModularWidget[S]) Compose(ctx *retained.ComposeCtx) {
	if w.OnCompose != nil {
		w.OnCompose(w, ctx)
	}
}

func (w *ModularWidget[S]) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	if w.OnPaint != nil {
		w.OnPaint(w, ctx, p)
	}
}

func (w *ModularWidget[S]) AccessRole() retained.AccessRole { return w.Role }

func (w *ModularWidget[S]) Accessibility(*retained.AccessCtx, *retained.AccessNode) {}

func (w *ModularWidget[S]) AcceptsPointerInteraction() bool { return !w.NoPointer }
func (w *ModularWidget[S]) AcceptsFocus() bool              { return w.Focusable }
func (w *ModularWidget[S]) AcceptsTextInput() bool          { return w.TextInput }

func (w *ModularWidget[S]) Cursor(*retained.QueryCtx, gg.Point) retained.CursorIcon {
	return w.CursorIcon
}

func (w *ModularWidget[S]) OnAction(ctx *retained.EventCtx, a retained.Action, source retained.WidgetID) bool {
	if w.OnActionFn != nil {
		return w.OnActionFn(w, ctx, a, source)
	}
	return false
}
