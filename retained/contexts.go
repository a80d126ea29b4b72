package retained

import (
	"math"
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/text"
)

// ============================================================================
// Shared Context Base
// ============================================================================

// ctxBase is the read-only view every context offers: the widget's own
// state and properties plus root-level queries. Contexts are built for a
// single widget call and must not be retained.
type ctxBase struct {
	r *RenderRoot
	n *arenaNode
}

// WidgetID returns the id of the widget being visited.
func (c *ctxBase) WidgetID() WidgetID { return c.n.state.ID }

// State returns a copy of the widget's state record.
func (c *ctxBase) State() WidgetState { return *c.n.state }

func (c *ctxBase) Size() Size                 { return c.n.state.Size }
func (c *ctxBase) BaselineOffset() float64    { return c.n.state.BaselineOffset }
func (c *ctxBase) LayoutRect() Rect           { return c.n.state.LayoutRect() }
func (c *ctxBase) WindowTransform() gg.Matrix { return c.n.state.WindowTransform }
func (c *ctxBase) BoundingRect() Rect         { return c.n.state.BoundingRect }

func (c *ctxBase) IsHovered() bool     { return c.n.state.IsHovered }
func (c *ctxBase) HasHovered() bool    { return c.n.state.HasHovered }
func (c *ctxBase) IsActive() bool      { return c.n.state.IsActive }
func (c *ctxBase) HasActive() bool     { return c.n.state.HasActive }
func (c *ctxBase) IsFocusTarget() bool { return c.n.state.IsFocusTarget }
func (c *ctxBase) HasFocusTarget() bool {
	return c.n.state.HasFocusTarget
}
func (c *ctxBase) IsDisabled() bool { return c.n.state.IsDisabled }
func (c *ctxBase) IsStashed() bool  { return c.n.state.IsStashed }

// HasPointerCapture reports whether this widget holds the pointer capture.
func (c *ctxBase) HasPointerCapture() bool {
	return c.r.g.pointerCapture == c.n.state.ID
}

// ToLocal maps a window-space point into the widget's coordinates.
func (c *ctxBase) ToLocal(p gg.Point) gg.Point {
	return c.n.state.WindowTransform.Invert().TransformPoint(p)
}

// Fonts returns the shared text service.
func (c *ctxBase) Fonts() *text.FontContext { return c.r.g.fonts }

// ScaleFactor returns the window's scale factor.
func (c *ctxBase) ScaleFactor() float64 { return c.r.g.scale }

// ChildSize returns the last laid-out size of a registered child.
func (c *ctxBase) ChildSize(child *WidgetPod) Size {
	return c.child(child.id).state.Size
}

// ChildIsStashed reports whether a registered child is stashed.
func (c *ctxBase) ChildIsStashed(child *WidgetPod) bool {
	return c.child(child.id).state.IsStashed
}

func (c *ctxBase) lookupProp(t reflect.Type) (any, bool) {
	if v, ok := c.n.props[t]; ok {
		return v, true
	}
	return c.r.g.defaultProps.lookup(reflect.TypeOf(c.n.widget), t)
}

// child resolves id as a direct child of the visited widget.
func (c *ctxBase) child(id WidgetID) *arenaNode {
	n, ok := c.r.arena.lookup(id)
	if !ok || n.parent != c.n.state.ID {
		c.r.debugPanic("widget %s: %s is not a registered child", c.n.state.TraceSpan, id)
		// Only reached with assertions off; a detached placeholder
		// keeps the caller going.
		return &arenaNode{widget: WidgetBase{}, state: newWidgetState(id, "Missing")}
	}
	return n
}

// ============================================================================
// Writable Context Base
// ============================================================================

// ctxWrite adds the flag and signal writers shared by the contexts that may
// change the widget's own state.
type ctxWrite struct {
	ctxBase
}

// RequestLayout schedules a layout of this widget.
func (c *ctxWrite) RequestLayout() { c.n.state.requestLayout() }

// RequestCompose schedules a Compose call for this widget.
func (c *ctxWrite) RequestCompose() { c.n.state.requestCompose() }

// RequestPaint schedules repainting this widget only.
func (c *ctxWrite) RequestPaint() { c.n.state.requestPaint() }

// RequestAccessibility schedules rebuilding this widget's access node.
func (c *ctxWrite) RequestAccessibility() { c.n.state.requestAccessibility() }

// RequestRender schedules both paint and accessibility.
func (c *ctxWrite) RequestRender() {
	c.n.state.requestPaint()
	c.n.state.requestAccessibility()
}

// RequestAnimFrame asks for an OnAnimFrame call on the next frame.
func (c *ctxWrite) RequestAnimFrame() { c.n.state.requestAnim() }

// SetTransform sets the widget's local transform, applied after its origin.
func (c *ctxWrite) SetTransform(m gg.Matrix) {
	if c.n.state.Transform == m {
		return
	}
	c.n.state.Transform = m
	c.n.state.markTransformChanged()
	c.r.g.needsPointerPass = true
}

// SetIMEArea records the caret area in local coordinates. The host is told
// when the area changes while this widget has an IME session.
func (c *ctxWrite) SetIMEArea(r Rect) {
	c.n.state.IMEArea = &r
}

// SubmitAction queues an action for the action pass.
func (c *ctxWrite) SubmitAction(a Action) {
	c.r.g.actions = append(c.r.g.actions, pendingAction{action: a, source: c.n.state.ID})
}

// EmitSignal queues a window-level request for the host.
func (c *ctxWrite) EmitSignal(s Signal) {
	c.r.g.signals.push(s)
}

// MutateLater runs fn on widget id at the start of the next mutate pass.
func (c *ctxWrite) MutateLater(id WidgetID, fn func(*MutateCtx)) {
	c.r.g.mutateCallbacks = append(c.r.g.mutateCallbacks, mutateCallback{id: id, fn: fn})
}

// MutateSelfLater runs fn on this widget at the start of the next mutate pass.
func (c *ctxWrite) MutateSelfLater(fn func(*MutateCtx)) {
	c.MutateLater(c.n.state.ID, fn)
}

// RequestScrollTo asks ancestors to pan so that r, in local coordinates,
// becomes visible.
func (c *ctxWrite) RequestScrollTo(r Rect) {
	c.r.g.panRequests = append(c.r.g.panRequests, panRequest{target: c.n.state.ID, rect: r})
}

// ============================================================================
// Query Context
// ============================================================================

// QueryCtx is a read-only view of a widget and its subtree.
type QueryCtx struct {
	ctxBase
}

// Widget returns the widget being viewed.
func (c *QueryCtx) Widget() Widget { return c.n.widget }

// Children returns query views of the registered children.
func (c *QueryCtx) Children() []*QueryCtx {
	out := make([]*QueryCtx, 0, len(c.n.children))
	for _, id := range c.n.children {
		out = append(out, &QueryCtx{ctxBase{c.r, c.r.arena.find(id)}})
	}
	return out
}

// ============================================================================
// Mutate Context
// ============================================================================

// MutateCtx may change the widget, its flags and its children.
type MutateCtx struct {
	ctxWrite
}

// Widget returns the widget so edit callbacks can type-assert it.
func (c *MutateCtx) Widget() Widget { return c.n.widget }

// ChildrenChanged tells the engine to re-register this widget's children.
func (c *MutateCtx) ChildrenChanged() {
	c.n.state.ChildrenChanged = true
	c.n.state.NeedsUpdateTree = true
	c.n.state.requestLayout()
	c.n.state.requestAccessibility()
	c.n.state.NeedsUpdateFocusChain = true
}

// SetDisabled sets the widget's explicit disabled flag.
func (c *MutateCtx) SetDisabled(disabled bool) {
	if c.n.state.IsExplicitlyDisabled == disabled {
		return
	}
	c.n.state.IsExplicitlyDisabled = disabled
	c.n.state.NeedsUpdateDisabled = true
}

// SetStashed sets the widget's explicit stashed flag. Stashed widgets are
// kept in the tree but skipped by layout, paint, hit testing and focus.
func (c *MutateCtx) SetStashed(stashed bool) {
	if c.n.state.IsExplicitlyStashed == stashed {
		return
	}
	c.n.state.IsExplicitlyStashed = stashed
	c.n.state.NeedsUpdateStashed = true
}

// MutateChild runs fn with a MutateCtx for a registered child.
func (c *MutateCtx) MutateChild(child *WidgetPod, fn func(*MutateCtx)) {
	cn := c.child(child.id)
	fn(&MutateCtx{ctxWrite{ctxBase{c.r, cn}}})
	c.n.state.mergeUp(cn.state)
}

// RemoveChild detaches a child and its whole subtree. The caller must also
// drop the pod from its own child list.
func (c *MutateCtx) RemoveChild(child *WidgetPod) {
	if !child.IsRegistered() {
		return
	}
	cn := c.child(child.id)
	c.r.removeSubtree(c.n, cn)
	c.ChildrenChanged()
}

func (c *MutateCtx) propertyChanged(t reflect.Type) {
	uc := &UpdateCtx{c.ctxWrite}
	c.n.widget.PropertyChanged(uc, t)
}

// ============================================================================
// Event Context
// ============================================================================

// EventCtx is passed to input handlers during bubbling.
type EventCtx struct {
	ctxWrite
	target       WidgetID
	handled      *bool
	allowCapture bool
}

// Target returns the widget the event was originally delivered to.
func (c *EventCtx) Target() WidgetID { return c.target }

// SetHandled stops bubbling after this widget.
func (c *EventCtx) SetHandled() { *c.handled = true }

// IsHandled reports whether a widget already handled the event.
func (c *EventCtx) IsHandled() bool { return *c.handled }

// CapturePointer routes all pointer events to this widget until the next
// Up or Cancel. Only valid while handling a pointer Down.
func (c *EventCtx) CapturePointer() {
	if !c.allowCapture {
		c.r.debugPanic("widget %s: CapturePointer called outside a pointer down", c.n.state.TraceSpan)
		return
	}
	c.r.g.pointerCapture = c.n.state.ID
	c.r.g.needsPointerPass = true
}

// ReleasePointer drops the capture if this widget holds it.
func (c *EventCtx) ReleasePointer() {
	if c.r.g.pointerCapture != c.n.state.ID {
		return
	}
	c.r.g.pointerCapture = 0
	c.r.g.needsPointerPass = true
}

// RequestFocus makes this widget the pending focus target. The last request
// in an event cycle wins.
func (c *EventCtx) RequestFocus() {
	c.r.g.nextFocusedWidget = c.n.state.ID
}

// SetFocus makes target the pending focus target. Like RequestFocus, the
// last call in an event cycle wins. A target that is not focusable when the
// focus pass runs clears focus.
func (c *EventCtx) SetFocus(target WidgetID) {
	c.r.g.nextFocusedWidget = target
}

// ResignFocus clears the pending focus. The widget must be focused.
func (c *EventCtx) ResignFocus() {
	if c.r.g.nextFocusedWidget != c.n.state.ID && c.r.g.focusedWidget != c.n.state.ID {
		c.r.debugPanic("widget %s: ResignFocus called while not focused", c.n.state.TraceSpan)
		return
	}
	c.r.g.nextFocusedWidget = 0
}

// ============================================================================
// Register and Update Contexts
// ============================================================================

// RegisterCtx is passed to RegisterChildren.
type RegisterCtx struct {
	r *RenderRoot
	n *arenaNode
}

// RegisterChild hands a new child to the arena. Already registered pods are
// ignored.
func (c *RegisterCtx) RegisterChild(child *WidgetPod) {
	if child.IsRegistered() {
		return
	}
	pw := child.pending
	child.pending = nil
	c.r.insertWidget(c.n.state.ID, child.id, pw)
}

// UpdateCtx is passed to lifecycle notifications and animation frames.
type UpdateCtx struct {
	ctxWrite
}

// ============================================================================
// Layout Context
// ============================================================================

// LayoutCtx is passed to Widget.Layout. Every non-stashed child must be laid
// out with RunLayout and then positioned with PlaceChild. Stashed children
// must be passed to SkipLayout.
type LayoutCtx struct {
	ctxWrite
	gen uint64
}

// RunLayout lays out a child and returns its size.
func (c *LayoutCtx) RunLayout(child *WidgetPod, bc BoxConstraints) Size {
	cn := c.child(child.id)
	if cn.state.IsStashed {
		c.SkipLayout(child)
		return Size{}
	}
	cn.state.layoutGen = c.gen
	size := c.r.layoutWidget(cn, bc)
	cn.state.IsExpectingPlaceChild = true
	c.n.state.mergeUp(cn.state)
	return size
}

// SkipLayout marks a child as intentionally not laid out. Pending layout
// in its subtree is dropped; unstashing requests it again.
func (c *LayoutCtx) SkipLayout(child *WidgetPod) {
	cn := c.child(child.id)
	cn.state.layoutGen = c.gen
	cn.state.IsExpectingPlaceChild = false
	drop := func(n *arenaNode) {
		n.state.NeedsLayout = false
		n.state.RequestLayout = false
	}
	drop(cn)
	for _, id := range cn.children {
		c.r.arena.walkPre(id, drop)
	}
}

// PlaceChild sets the origin of a child that was laid out in this call.
func (c *LayoutCtx) PlaceChild(child *WidgetPod, origin gg.Point) {
	cn := c.child(child.id)
	if cn.state.layoutGen != c.gen {
		c.r.debugPanic("widget %s: PlaceChild(%s) called before RunLayout", c.n.state.TraceSpan, child.id)
		return
	}
	if math.IsNaN(origin.X) || math.IsNaN(origin.Y) || math.IsInf(origin.X, 0) || math.IsInf(origin.Y, 0) {
		c.r.debugPanic("widget %s: PlaceChild(%s) with non-finite origin %v", c.n.state.TraceSpan, child.id, origin)
		origin = gg.Point{}
	}
	cn.state.IsExpectingPlaceChild = false
	if cn.state.Origin != origin {
		cn.state.Origin = origin
		cn.state.markTransformChanged()
		c.n.state.NeedsCompose = true
	}
}

// ChildBaselineOffset returns a laid-out child's baseline offset.
func (c *LayoutCtx) ChildBaselineOffset(child *WidgetPod) float64 {
	return c.child(child.id).state.BaselineOffset
}

// SetBaselineOffset sets the distance from the top of the widget to its
// first text baseline.
func (c *LayoutCtx) SetBaselineOffset(v float64) { c.n.state.BaselineOffset = v }

// SetClipPath clips the widget and its children to r, in local coordinates.
func (c *LayoutCtx) SetClipPath(r Rect) {
	c.n.state.ClipPath = &r
	c.n.state.requestPaint()
	c.n.state.requestCompose()
}

// ClearClipPath removes the clip.
func (c *LayoutCtx) ClearClipPath() {
	if c.n.state.ClipPath == nil {
		return
	}
	c.n.state.ClipPath = nil
	c.n.state.requestPaint()
	c.n.state.requestCompose()
}

// SetPaintInsets declares how far painting may extend past the layout box.
func (c *LayoutCtx) SetPaintInsets(in Insets) { c.n.state.PaintInsets = in }

// ============================================================================
// Compose, Paint and Accessibility Contexts
// ============================================================================

// ComposeCtx is passed to Widget.Compose.
type ComposeCtx struct {
	ctxWrite
}

// SetChildScrollTranslation offsets a child, e.g. for scrolling, without a
// relayout.
func (c *ComposeCtx) SetChildScrollTranslation(child *WidgetPod, offset gg.Point) {
	cn := c.child(child.id)
	if cn.state.ScrollTranslation == offset {
		return
	}
	cn.state.ScrollTranslation = offset
	cn.state.markTransformChanged()
	c.r.g.needsPointerPass = true
}

// PaintCtx is passed to Widget.Paint.
type PaintCtx struct {
	ctxBase
}

// IsDebugPaint reports whether the debug overlay is on.
func (c *PaintCtx) IsDebugPaint() bool { return c.r.g.debugPaint }

// AccessCtx is passed to Widget.Accessibility.
type AccessCtx struct {
	ctxBase
}
