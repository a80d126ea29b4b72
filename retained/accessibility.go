package retained

import (
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Accessibility Pass
// ============================================================================

// runAccessibilityPass builds access nodes for widgets that requested it, or
// for every widget after a rebuild request.
func (r *RenderRoot) runAccessibilityPass() TreeUpdate {
	_, span := r.startSpan("retained.accessibility")
	defer span.End()

	rebuild := r.g.rebuildAccess
	r.g.rebuildAccess = false

	update := TreeUpdate{Focus: r.g.focusedWidget}
	if update.Focus == 0 {
		update.Focus = r.arena.root
	}
	if rebuild {
		update.TreeRoot = r.arena.root
	}
	r.accessWidget(r.rootNode(), rebuild, &update)
	span.SetAttributes(attribute.Int("trellis.nodes", len(update.Nodes)), attribute.Bool("trellis.rebuild", rebuild))
	return update
}

func (r *RenderRoot) accessWidget(n *arenaNode, rebuild bool, update *TreeUpdate) {
	s := n.state
	if !rebuild && !s.NeedsAccessibility {
		return
	}
	if s.IsStashed {
		clearAccessFlags(r, n)
		return
	}
	if rebuild || s.RequestAccessibility {
		update.Nodes = append(update.Nodes, r.buildAccessNode(n))
	}
	s.RequestAccessibility = false
	s.NeedsAccessibility = false
	for _, id := range n.children {
		r.accessWidget(r.arena.find(id), rebuild, update)
	}
}

func (r *RenderRoot) buildAccessNode(n *arenaNode) AccessNode {
	s := n.state
	node := AccessNode{
		ID:        s.ID,
		Role:      n.widget.AccessRole(),
		Bounds:    RectFromSize(s.Size),
		Transform: s.WindowTransform,
		Disabled:  s.IsDisabled,
		Focusable: s.isFocusable(),
	}
	for _, id := range n.children {
		if c := r.arena.find(id); !c.state.IsStashed {
			node.Children = append(node.Children, id)
		}
	}
	if node.Focusable {
		node.AddAction(AccessFocus)
		if s.IsFocusTarget {
			node.AddAction(AccessBlur)
		}
	}
	if s.isInteractive() {
		node.AddAction(AccessClick)
	}
	n.widget.Accessibility(&AccessCtx{ctxBase{r, n}}, &node)
	return node
}

func clearAccessFlags(r *RenderRoot, n *arenaNode) {
	n.state.NeedsAccessibility = false
	n.state.RequestAccessibility = false
	for _, id := range n.children {
		clearAccessFlags(r, r.arena.find(id))
	}
}
