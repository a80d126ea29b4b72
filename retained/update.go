package retained

import (
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Mutate Pass
// ============================================================================

// runMutatePass runs the callbacks queued with MutateLater in FIFO order.
// Callbacks queued while running are kept for the next pass.
func (r *RenderRoot) runMutatePass() {
	if len(r.g.mutateCallbacks) == 0 {
		return
	}
	_, span := r.startSpan("retained.mutate")
	defer span.End()

	callbacks := r.g.mutateCallbacks
	r.g.mutateCallbacks = nil
	span.SetAttributes(attribute.Int("trellis.callbacks", len(callbacks)))

	for _, cb := range callbacks {
		n, ok := r.arena.lookup(cb.id)
		if !ok {
			Logger().Warn("retained: dropping mutate callback for removed widget", "id", cb.id)
			continue
		}
		cb.fn(&MutateCtx{ctxWrite{ctxBase{r, n}}})
		r.mergeUpPath(cb.id)
	}
}

// ============================================================================
// Tree Update Pass
// ============================================================================

// runUpdateTreePass registers new children, delivers WidgetAdded and
// validates that every widget's ChildrenIDs match what it registered.
func (r *RenderRoot) runUpdateTreePass() {
	root := r.rootNode()
	if !root.state.NeedsUpdateTree && !root.state.ChildrenChanged {
		return
	}
	_, span := r.startSpan("retained.update_tree")
	defer span.End()
	r.updateWidgetTree(root)
}

func (r *RenderRoot) updateWidgetTree(n *arenaNode) {
	s := n.state
	if !s.NeedsUpdateTree && !s.ChildrenChanged && !s.IsNew {
		return
	}

	if s.IsNew {
		s.AcceptsPointerInteraction = n.widget.AcceptsPointerInteraction()
		s.AcceptsFocus = n.widget.AcceptsFocus()
		s.AcceptsTextInput = n.widget.AcceptsTextInput()
		r.callUpdate(n, Update{Kind: WidgetAdded})
		s.IsNew = false
	}

	if s.ChildrenChanged {
		n.widget.RegisterChildren(&RegisterCtx{r: r, n: n})
		r.syncChildren(n)
		s.ChildrenChanged = false
	}

	s.NeedsUpdateTree = false
	for _, id := range n.children {
		c := r.arena.find(id)
		r.updateWidgetTree(c)
		s.mergeUp(c.state)
	}
}

// syncChildren reorders the arena's child list to match ChildrenIDs and
// reports children that were declared but not registered, or registered but
// not declared.
func (r *RenderRoot) syncChildren(n *arenaNode) {
	declared := n.widget.ChildrenIDs()
	want := make(map[WidgetID]bool, len(declared))
	for _, id := range declared {
		want[id] = true
	}
	for _, id := range n.children {
		if !want[id] {
			r.debugPanic("widget %s registered child %s but does not list it in ChildrenIDs", n.state.TraceSpan, id)
		}
	}

	ordered := make([]WidgetID, 0, len(declared))
	for _, id := range declared {
		c, ok := r.arena.lookup(id)
		if !ok || c.parent != n.state.ID {
			r.debugPanic("widget %s lists child %s that was never registered", n.state.TraceSpan, id)
			continue
		}
		ordered = append(ordered, id)
	}
	// Keep unlisted children reachable so they can still be cleaned up.
	for _, id := range n.children {
		if !want[id] {
			ordered = append(ordered, id)
		}
	}
	n.children = ordered
}

// callUpdate delivers a lifecycle notification to one widget.
func (r *RenderRoot) callUpdate(n *arenaNode, u Update) {
	n.widget.Update(&UpdateCtx{ctxWrite{ctxBase{r, n}}}, u)
}

// runSingleUpdate delivers u to one widget outside a tree walk and merges
// the resulting flags up to the root.
func (r *RenderRoot) runSingleUpdate(n *arenaNode, u Update) {
	r.callUpdate(n, u)
	r.mergeUpPath(n.state.ID)
}

// ============================================================================
// Disabled and Stashed Passes
// ============================================================================

func (r *RenderRoot) runUpdateDisabledPass() {
	root := r.rootNode()
	if !root.state.NeedsUpdateDisabled {
		return
	}
	_, span := r.startSpan("retained.update_disabled")
	defer span.End()
	r.updateDisabled(root, false)
}

// updateDisabled recomputes effective disabled state. A widget whose value
// did not change and that has no pending explicit change is skipped with its
// whole subtree.
func (r *RenderRoot) updateDisabled(n *arenaNode, parentDisabled bool) {
	s := n.state
	disabled := s.IsExplicitlyDisabled || parentDisabled
	if !s.NeedsUpdateDisabled && disabled == s.IsDisabled {
		return
	}
	if disabled != s.IsDisabled {
		s.IsDisabled = disabled
		r.callUpdate(n, Update{Kind: DisabledChanged, Value: disabled})
		s.NeedsUpdateFocusChain = true
		s.requestPaint()
		s.requestAccessibility()
		r.g.needsPointerPass = true
	}
	s.NeedsUpdateDisabled = false
	for _, id := range n.children {
		c := r.arena.find(id)
		r.updateDisabled(c, disabled)
		s.mergeUp(c.state)
	}
}

func (r *RenderRoot) runUpdateStashedPass() {
	root := r.rootNode()
	if !root.state.NeedsUpdateStashed {
		return
	}
	_, span := r.startSpan("retained.update_stashed")
	defer span.End()
	r.updateStashed(root, false)
}

func (r *RenderRoot) updateStashed(n *arenaNode, parentStashed bool) {
	s := n.state
	stashed := s.IsExplicitlyStashed || parentStashed
	if !s.NeedsUpdateStashed && stashed == s.IsStashed {
		return
	}
	if stashed != s.IsStashed {
		s.IsStashed = stashed
		r.callUpdate(n, Update{Kind: StashedChanged, Value: stashed})
		s.NeedsUpdateFocusChain = true
		s.requestPaint()
		s.requestAccessibility()
		// The parent's layout decides whether to run or skip this widget,
		// and its access node lists only visible children.
		s.requestLayout()
		if p, ok := r.arena.lookup(n.parent); ok {
			p.state.requestAccessibility()
		}
		r.g.needsPointerPass = true
	}
	s.NeedsUpdateStashed = false
	for _, id := range n.children {
		c := r.arena.find(id)
		r.updateStashed(c, stashed)
		s.mergeUp(c.state)
	}
}

// ============================================================================
// Focus Chain Pass
// ============================================================================

func (r *RenderRoot) runUpdateFocusChainPass() {
	root := r.rootNode()
	if !root.state.NeedsUpdateFocusChain {
		return
	}
	_, span := r.startSpan("retained.update_focus_chain")
	defer span.End()
	r.updateFocusChain(root)
}

// updateFocusChain recomputes HasFocusableDescendant, which prunes the tab
// order search.
func (r *RenderRoot) updateFocusChain(n *arenaNode) {
	s := n.state
	if !s.NeedsUpdateFocusChain {
		return
	}
	s.NeedsUpdateFocusChain = false

	has := s.isFocusable()
	for _, id := range n.children {
		c := r.arena.find(id)
		r.updateFocusChain(c)
		has = has || c.state.HasFocusableDescendant
		s.mergeUp(c.state)
	}
	if has != s.HasFocusableDescendant {
		s.HasFocusableDescendant = has
		r.callUpdate(n, Update{Kind: FocusChainChanged, Value: has})
	}
}

// ============================================================================
// Status Paths
// ============================================================================

type statusKind uint8

const (
	statusHovered statusKind = iota
	statusActive
	statusFocused
)

func (k statusKind) has(s *WidgetState) *bool {
	switch k {
	case statusHovered:
		return &s.HasHovered
	case statusActive:
		return &s.HasActive
	default:
		return &s.HasFocusTarget
	}
}

func (k statusKind) is(s *WidgetState) *bool {
	switch k {
	case statusHovered:
		return &s.IsHovered
	case statusActive:
		return &s.IsActive
	default:
		return &s.IsFocusTarget
	}
}

func (k statusKind) childUpdate() UpdateKind {
	switch k {
	case statusHovered:
		return ChildHoveredChanged
	case statusActive:
		return ChildActiveChanged
	default:
		return ChildFocusChanged
	}
}

func (k statusKind) leafUpdate() UpdateKind {
	switch k {
	case statusHovered:
		return HoveredChanged
	case statusActive:
		return ActiveChanged
	default:
		return FocusChanged
	}
}

// updateStatusPath moves a status from the widget at the end of prev to the
// widget at the end of next. Paths run root to leaf; the leaf counts as
// having the status in its subtree. Every widget whose Has flag flips gets
// a Child*Changed update, then the old and new leaves get *Changed.
// Ids that are no longer in the tree are skipped.
func (r *RenderRoot) updateStatusPath(kind statusKind, prev, next []WidgetID) {
	if pathsEqual(prev, next) {
		return
	}
	inNext := make(map[WidgetID]bool, len(next))
	for _, id := range next {
		inNext[id] = true
	}
	visit := func(id WidgetID) {
		n, ok := r.arena.lookup(id)
		if !ok {
			return
		}
		has := kind.has(n.state)
		if *has == inNext[id] {
			return
		}
		*has = inNext[id]
		r.runSingleUpdate(n, Update{Kind: kind.childUpdate(), Value: *has})
	}
	for _, id := range prev {
		visit(id)
	}
	for _, id := range next {
		visit(id)
	}

	prevLeaf, nextLeaf := lastID(prev), lastID(next)
	if prevLeaf == nextLeaf {
		return
	}
	if n, ok := r.arena.lookup(prevLeaf); ok {
		*kind.is(n.state) = false
		r.runSingleUpdate(n, Update{Kind: kind.leafUpdate(), Value: false})
	}
	if n, ok := r.arena.lookup(nextLeaf); ok {
		*kind.is(n.state) = true
		r.runSingleUpdate(n, Update{Kind: kind.leafUpdate(), Value: true})
	}
}

func pathsEqual(a, b []WidgetID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lastID(path []WidgetID) WidgetID {
	if len(path) == 0 {
		return 0
	}
	return path[len(path)-1]
}
