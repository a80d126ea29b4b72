package retained

// ============================================================================
// Focus Pass
// ============================================================================

// runUpdateFocusPass commits the pending focus target. A pending target that
// left the tree or stopped being focusable is dropped.
func (r *RenderRoot) runUpdateFocusPass() {
	g := r.g
	next := g.nextFocusedWidget
	if next != 0 {
		n, ok := r.arena.lookup(next)
		if !ok || !n.state.isFocusable() {
			next = 0
		}
	}
	g.nextFocusedWidget = next

	nextPath := r.arena.idPath(next)
	if g.focusedWidget == next && pathsEqual(g.focusedPath, nextPath) {
		return
	}
	_, span := r.startSpan("retained.update_focus")
	defer span.End()

	prev := g.focusedWidget
	if prev != next && g.imeActive {
		g.imeActive = false
		g.lastImeRect = nil
		g.signals.push(Signal{Kind: SignalEndIme})
	}

	r.updateStatusPath(statusFocused, g.focusedPath, nextPath)
	g.focusedWidget = next
	g.focusedPath = nextPath

	if next != 0 && prev != next {
		g.mostRecentFocused = next
		n := r.arena.find(next)
		if n.state.AcceptsTextInput {
			g.imeActive = true
			g.lastImeRect = nil
			g.signals.push(Signal{Kind: SignalStartIme})
		}
	}
	// Both leaves change their Blur action, and the tree carries the
	// focused id.
	for _, id := range [...]WidgetID{prev, next} {
		if n, ok := r.arena.lookup(id); ok {
			n.state.requestAccessibility()
			r.mergeUpPath(id)
		}
	}
	r.rootNode().state.requestAccessibility()
}

// updateIMEArea tells the host when the focused widget's IME area moved.
// Setting the same area twice emits a single signal.
func (r *RenderRoot) updateIMEArea() {
	g := r.g
	if !g.imeActive || g.focusedWidget == 0 {
		return
	}
	n, ok := r.arena.lookup(g.focusedWidget)
	if !ok || n.state.IMEArea == nil {
		return
	}
	area := transformRect(n.state.WindowTransform, *n.state.IMEArea)
	if g.lastImeRect != nil && *g.lastImeRect == area {
		return
	}
	g.lastImeRect = &area
	g.signals.push(Signal{Kind: SignalImeMoved, Position: area.Origin(), Size: area.Size()})
}

// ============================================================================
// Focus Chain Search
// ============================================================================

// focusAnchor is where tab traversal resumes: the focused widget, or the
// one most recently focused or pressed.
func (r *RenderRoot) focusAnchor() WidgetID {
	if r.g.focusedWidget != 0 {
		return r.g.focusedWidget
	}
	if r.arena.has(r.g.mostRecentFocused) {
		return r.g.mostRecentFocused
	}
	return 0
}

// findNextFocusable returns the focusable widget after (forward) or before
// the anchor in tree order, wrapping around. Forward order is pre-order over
// ChildrenIDs; backward order is its exact reverse. The anchor itself is
// only returned when it is the sole focusable widget.
func (r *RenderRoot) findNextFocusable(anchor WidgetID, forward bool) WidgetID {
	if anchor != 0 {
		if id := r.searchFromAnchor(anchor, forward); id != 0 {
			return id
		}
	}
	if id := r.searchSubtree(r.rootNode(), forward, anchor); id != 0 {
		return id
	}
	if n, ok := r.arena.lookup(anchor); ok && n.state.isFocusable() {
		return anchor
	}
	return 0
}

// searchFromAnchor walks outward from the anchor along its ancestor path,
// visiting only what comes after it (or before it, going backward).
func (r *RenderRoot) searchFromAnchor(anchor WidgetID, forward bool) WidgetID {
	path := r.arena.idPath(anchor)
	if len(path) == 0 {
		return 0
	}

	if forward {
		// The anchor's own subtree follows it in pre-order.
		for _, c := range r.arena.find(anchor).children {
			if id := r.searchSubtree(r.arena.find(c), true, anchor); id != 0 {
				return id
			}
		}
	}

	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		parent := r.arena.find(path[i-1])
		pos := indexOf(parent.children, cur)
		if forward {
			for _, sib := range parent.children[pos+1:] {
				if id := r.searchSubtree(r.arena.find(sib), true, anchor); id != 0 {
					return id
				}
			}
			continue
		}
		for j := pos - 1; j >= 0; j-- {
			if id := r.searchSubtree(r.arena.find(parent.children[j]), false, anchor); id != 0 {
				return id
			}
		}
		// Going backward, a parent comes right before its first child.
		if parent.state.ID != anchor && parent.state.isFocusable() {
			return parent.state.ID
		}
	}
	return 0
}

// searchSubtree returns the first focusable widget of n's subtree in
// traversal order, ignoring skip. Subtrees without focusable widgets are
// pruned.
func (r *RenderRoot) searchSubtree(n *arenaNode, forward bool, skip WidgetID) WidgetID {
	s := n.state
	if !s.HasFocusableDescendant || s.IsStashed {
		return 0
	}
	self := s.ID != skip && s.isFocusable()
	if forward && self {
		return s.ID
	}
	if forward {
		for _, c := range n.children {
			if id := r.searchSubtree(r.arena.find(c), true, skip); id != 0 {
				return id
			}
		}
		return 0
	}
	for j := len(n.children) - 1; j >= 0; j-- {
		if id := r.searchSubtree(r.arena.find(n.children[j]), false, skip); id != 0 {
			return id
		}
	}
	if self {
		return s.ID
	}
	return 0
}

func indexOf(ids []WidgetID, id WidgetID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// FocusNext moves focus forward or backward in tab order, as an unhandled
// Tab key would.
func (r *RenderRoot) FocusNext(forward bool) {
	if next := r.findNextFocusable(r.focusAnchor(), forward); next != 0 {
		r.g.nextFocusedWidget = next
	}
	r.afterEvent()
}
