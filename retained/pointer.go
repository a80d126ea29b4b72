package retained

import (
	"github.com/gogpu/gg"
)

// ============================================================================
// Hit Testing
// ============================================================================

// hitTest returns the innermost interactive widget under pos, or 0. Later
// children are on top, so children are tried in reverse order.
func (r *RenderRoot) hitTest(pos gg.Point) WidgetID {
	return r.hitTestRecursive(r.rootNode(), pos)
}

func (r *RenderRoot) hitTestRecursive(n *arenaNode, pos gg.Point) WidgetID {
	s := n.state
	if s.IsStashed || !s.BoundingRect.Contains(pos) {
		return 0
	}
	local := s.WindowTransform.Invert().TransformPoint(pos)
	if s.ClipPath != nil && !s.ClipPath.Contains(local) {
		return 0
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if id := r.hitTestRecursive(r.arena.find(n.children[i]), pos); id != 0 {
			return id
		}
	}
	if s.isInteractive() && RectFromSize(s.Size).Contains(local) {
		return s.ID
	}
	return 0
}

// ============================================================================
// Pointer Update Pass
// ============================================================================

// runUpdatePointerPass recomputes hovered and active paths and the cursor
// after anything that can move widgets under the pointer.
func (r *RenderRoot) runUpdatePointerPass() {
	g := r.g
	if !g.needsPointerPass {
		return
	}
	g.needsPointerPass = false
	_, span := r.startSpan("retained.update_pointer")
	defer span.End()

	r.cancelInvalidCapture()

	var hovered WidgetID
	if g.lastPointerPos != nil {
		hit := r.hitTest(*g.lastPointerPos)
		if g.pointerCapture == 0 || hit == g.pointerCapture {
			hovered = hit
		}
	}
	nextHovered := r.arena.idPath(hovered)
	r.updateStatusPath(statusHovered, g.hoveredPath, nextHovered)
	g.hoveredPath = nextHovered

	nextActive := r.arena.idPath(g.pointerCapture)
	r.updateStatusPath(statusActive, g.activePath, nextActive)
	g.activePath = nextActive

	cursor := CursorDefault
	target := g.pointerCapture
	if target == 0 {
		target = hovered
	}
	if n, ok := r.arena.lookup(target); ok && g.lastPointerPos != nil {
		cursor = n.widget.Cursor(&QueryCtx{ctxBase{r, n}}, *g.lastPointerPos)
	}
	if cursor != g.cursor {
		g.cursor = cursor
		g.signals.push(Signal{Kind: SignalSetCursor, Cursor: cursor})
	}
}

// cancelInvalidCapture releases a capture whose target left the tree or was
// disabled or stashed. A target still in the tree is sent a Cancel
// first.
func (r *RenderRoot) cancelInvalidCapture() {
	g := r.g
	if g.pointerCapture == 0 {
		return
	}
	n, ok := r.arena.lookup(g.pointerCapture)
	if !ok {
		g.pointerCapture = 0
		return
	}
	if !n.state.IsDisabled && !n.state.IsStashed {
		return
	}
	g.pointerCapture = 0
	// Delivered to the target alone, even though it may be disabled.
	handled := false
	n.widget.OnPointerEvent(r.newEventCtx(n, n.state.ID, &handled, false), &PointerEvent{Kind: PointerCancel})
	r.mergeUpPath(n.state.ID)
}
