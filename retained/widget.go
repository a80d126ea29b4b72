package retained

import (
	"reflect"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
)

// ============================================================================
// Widget Identity
// ============================================================================

// WidgetID identifies a widget for its whole lifetime. Zero means "none".
type WidgetID uint64

var nextWidgetID atomic.Uint64

// NewWidgetID returns a fresh process-wide unique id.
func NewWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

func (id WidgetID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 10)
}

// ============================================================================
// Widget Capability
// ============================================================================

// Widget is the behaviour a node in the tree provides to the engine.
// Embed WidgetBase to get no-op defaults and override what you need.
//
// Widgets never hold references to their parent. Children are held through
// WidgetPod handles and reported in order by ChildrenIDs; that order is the
// focus-chain and accessibility order.
type Widget interface {
	RegisterChildren(ctx *RegisterCtx)
	ChildrenIDs() []WidgetID

	OnPointerEvent(ctx *EventCtx, e *PointerEvent)
	OnTextEvent(ctx *EventCtx, e *TextEvent)
	OnAccessEvent(ctx *EventCtx, e *AccessEvent)

	OnAnimFrame(ctx *UpdateCtx, interval time.Duration)
	Update(ctx *UpdateCtx, u Update)
	PropertyChanged(ctx *UpdateCtx, prop reflect.Type)

	Layout(ctx *LayoutCtx, bc BoxConstraints) Size
	Compose(ctx *ComposeCtx)
	Paint(ctx *PaintCtx, p *Painter)

	AccessRole() AccessRole
	Accessibility(ctx *AccessCtx, node *AccessNode)

	// Capability flags are read once, when the widget is added.
	AcceptsPointerInteraction() bool
	AcceptsFocus() bool
	AcceptsTextInput() bool

	Cursor(ctx *QueryCtx, pos gg.Point) CursorIcon
}

// ActionHandler is implemented by widgets that want to intercept actions
// submitted by their descendants. Returning true consumes the action.
type ActionHandler interface {
	OnAction(ctx *EventCtx, action Action, source WidgetID) bool
}

// WidgetBase provides default implementations for a leaf widget that
// accepts pointer input, is not focusable, and paints nothing.
type WidgetBase struct{}

func (WidgetBase) RegisterChildren(*RegisterCtx)            {}
func (WidgetBase) ChildrenIDs() []WidgetID                  { return nil }
func (WidgetBase) OnPointerEvent(*EventCtx, *PointerEvent)  {}
func (WidgetBase) OnTextEvent(*EventCtx, *TextEvent)        {}
func (WidgetBase) OnAccessEvent(*EventCtx, *AccessEvent)    {}
func (WidgetBase) OnAnimFrame(*UpdateCtx, time.Duration)    {}
func (WidgetBase) Update(*UpdateCtx, Update)                {}
func (WidgetBase) PropertyChanged(*UpdateCtx, reflect.Type) {}
func (WidgetBase) Compose(*ComposeCtx)                      {}
func (WidgetBase) Paint(*PaintCtx, *Painter)                {}
func (WidgetBase) AccessRole() AccessRole                   { return RoleGenericContainer }
func (WidgetBase) Accessibility(*AccessCtx, *AccessNode)    {}
func (WidgetBase) AcceptsPointerInteraction() bool          { return true }
func (WidgetBase) AcceptsFocus() bool                       { return false }
func (WidgetBase) AcceptsTextInput() bool                   { return false }
func (WidgetBase) Cursor(*QueryCtx, gg.Point) CursorIcon    { return CursorDefault }

// Layout takes the smallest size allowed.
func (WidgetBase) Layout(_ *LayoutCtx, bc BoxConstraints) Size {
	return bc.Constrain(Size{})
}

// typeName returns the short type name of w, without package or pointer.
func typeName(w Widget) string {
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// ============================================================================
// Widget Pod
// ============================================================================

// WidgetPod is a parent's handle to a child. Until the child is registered
// it carries the widget itself; afterwards the arena owns the widget and the
// pod only carries the id.
type WidgetPod struct {
	id      WidgetID
	pending *pendingWidget
}

type pendingWidget struct {
	widget Widget
	props  Properties
}

// PodOption configures NewWidgetPod.
type PodOption func(*WidgetPod)

// WithID assigns an explicit id instead of a fresh one.
func WithID(id WidgetID) PodOption {
	return func(p *WidgetPod) { p.id = id }
}

// WithProperties attaches initial properties to the widget.
func WithProperties(props Properties) PodOption {
	return func(p *WidgetPod) { p.pending.props = props }
}

// NewWidgetPod wraps w for insertion as a child.
func NewWidgetPod(w Widget, opts ...PodOption) *WidgetPod {
	p := &WidgetPod{pending: &pendingWidget{widget: w}}
	for _, opt := range opts {
		opt(p)
	}
	if p.id == 0 {
		p.id = NewWidgetID()
	}
	return p
}

// ID returns the child's id.
func (p *WidgetPod) ID() WidgetID { return p.id }

// IsRegistered reports whether the arena has taken ownership of the widget.
func (p *WidgetPod) IsRegistered() bool { return p.pending == nil }

// PodIDs is a helper for ChildrenIDs implementations.
func PodIDs(pods []*WidgetPod) []WidgetID {
	ids := make([]WidgetID, 0, len(pods))
	for _, p := range pods {
		ids = append(ids, p.id)
	}
	return ids
}
