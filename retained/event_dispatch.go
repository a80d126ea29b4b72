package retained

import (
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Event Dispatch
// ============================================================================

func (r *RenderRoot) newEventCtx(n *arenaNode, target WidgetID, handled *bool, allowCapture bool) *EventCtx {
	return &EventCtx{
		ctxWrite:     ctxWrite{ctxBase{r, n}},
		target:       target,
		handled:      handled,
		allowCapture: allowCapture,
	}
}

// bubbleEvent calls fn on target and then on each ancestor up to the root,
// stopping once a widget marks the event handled. Disabled widgets are
// skipped. Flags are merged up along the whole path either way.
func (r *RenderRoot) bubbleEvent(target WidgetID, allowCapture bool, fn func(n *arenaNode, ctx *EventCtx)) bool {
	path := r.arena.idPath(target)
	handled := false
	for i := len(path) - 1; i >= 0; i-- {
		n := r.arena.find(path[i])
		if !handled && !n.state.IsDisabled {
			fn(n, r.newEventCtx(n, target, &handled, allowCapture))
		}
		if i < len(path)-1 {
			if c, ok := r.arena.lookup(path[i+1]); ok {
				n.state.mergeUp(c.state)
			}
		}
	}
	return handled
}

// ============================================================================
// Pointer Events
// ============================================================================

// HandlePointerEvent delivers a pointer event to the capture target, or to
// the widget under the pointer, and bubbles it to the root.
func (r *RenderRoot) HandlePointerEvent(e PointerEvent) Handled {
	_, span := r.startSpan("retained.pointer_event")
	defer span.End()
	span.SetAttributes(attribute.String("trellis.kind", e.Kind.String()))

	g := r.g
	switch {
	case e.Kind == PointerLeave:
		g.lastPointerPos = nil
	case e.hasPosition():
		pos := e.Position
		g.lastPointerPos = &pos
	}
	g.needsPointerPass = true

	var target WidgetID
	if g.pointerCapture != 0 && r.arena.has(g.pointerCapture) {
		target = g.pointerCapture
	} else if e.hasPosition() {
		target = r.hitTest(e.Position)
	}

	// Tab traversal resumes from whatever was last pressed.
	if e.Kind == PointerDown && target != 0 {
		g.mostRecentFocused = target
	}

	handled := false
	if target != 0 {
		ev := e
		handled = r.bubbleEvent(target, e.Kind == PointerDown, func(n *arenaNode, ctx *EventCtx) {
			n.widget.OnPointerEvent(ctx, &ev)
		})
	}

	// The capturing widget sees its own Up or Cancel before release.
	if (e.Kind == PointerUp || e.Kind == PointerCancel) && g.pointerCapture != 0 {
		g.pointerCapture = 0
	}

	r.afterEvent()
	return Handled(handled)
}

// ============================================================================
// Text Events
// ============================================================================

// HandleTextEvent delivers keyboard and IME input to the focused widget, or
// the root when nothing is focused. An unhandled Tab moves focus.
func (r *RenderRoot) HandleTextEvent(e TextEvent) Handled {
	_, span := r.startSpan("retained.text_event")
	defer span.End()

	g := r.g
	if e.Kind == WindowFocusChange && !e.Focused {
		g.lastPointerPos = nil
		g.needsPointerPass = true
	}

	target := g.focusedWidget
	if e.isIme() {
		n, ok := r.arena.lookup(target)
		if !ok || !n.state.AcceptsTextInput {
			r.afterEvent()
			return false
		}
	}
	if !r.arena.has(target) {
		target = r.arena.root
	}

	ev := e
	handled := r.bubbleEvent(target, false, func(n *arenaNode, ctx *EventCtx) {
		n.widget.OnTextEvent(ctx, &ev)
	})

	if !handled && e.Kind == KeyDown && e.Key == KeyTab &&
		!e.Modifiers.Ctrl() && !e.Modifiers.Alt() && !e.Modifiers.Super() {
		if next := r.findNextFocusable(r.focusAnchor(), !e.Modifiers.Shift()); next != 0 {
			g.nextFocusedWidget = next
		}
		handled = true
	}

	r.afterEvent()
	return Handled(handled)
}

// ============================================================================
// Accessibility Events
// ============================================================================

// HandleAccessEvent delivers an assistive-technology request to its target.
// Focus, Blur and ScrollIntoView have default behaviour when unhandled.
func (r *RenderRoot) HandleAccessEvent(e AccessEvent) Handled {
	_, span := r.startSpan("retained.access_event")
	defer span.End()

	n, ok := r.arena.lookup(e.Target)
	if !ok {
		Logger().Warn("retained: access event for unknown widget", "id", e.Target)
		return false
	}

	ev := e
	handled := r.bubbleEvent(e.Target, false, func(n *arenaNode, ctx *EventCtx) {
		n.widget.OnAccessEvent(ctx, &ev)
	})

	if !handled {
		switch e.Action {
		case AccessFocus:
			if n.state.isFocusable() {
				r.g.nextFocusedWidget = e.Target
				handled = true
			}
		case AccessBlur:
			if r.g.focusedWidget == e.Target {
				r.g.nextFocusedWidget = 0
				handled = true
			}
		case AccessScrollIntoView:
			r.g.panRequests = append(r.g.panRequests, panRequest{target: e.Target, rect: RectFromSize(n.state.Size)})
			handled = true
		}
	}

	r.afterEvent()
	return Handled(handled)
}

// ============================================================================
// Window Events
// ============================================================================

// HandleWindowEvent applies a window-level change.
func (r *RenderRoot) HandleWindowEvent(e WindowEvent) Handled {
	_, span := r.startSpan("retained.window_event")
	defer span.End()

	root := r.rootNode().state
	switch e.Kind {
	case WindowRescale:
		if e.Scale > 0 && e.Scale != r.g.scale {
			r.g.scale = e.Scale
			root.requestLayout()
		}
	case WindowResize:
		if e.Size != r.g.windowSize {
			r.g.windowSize = e.Size
			root.requestLayout()
		}
	case WindowAnimFrame:
		r.runAnimPass(e.Interval)
	case WindowRebuildAccessTree:
		r.g.rebuildAccess = true
		root.requestAccessibility()
	}
	r.afterEvent()
	return true
}
