package retained

import (
	"math"

	"github.com/gogpu/gg"
)

// ============================================================================
// Layout Pass
// ============================================================================

// runLayoutPass lays out the root with tight constraints equal to the
// window's logical size.
func (r *RenderRoot) runLayoutPass() {
	root := r.rootNode()
	if !root.state.NeedsLayout {
		return
	}
	_, span := r.startSpan("retained.layout")
	defer span.End()

	r.layoutWidget(root, Tight(r.logicalWindowSize()))
	if root.state.Origin != (gg.Point{}) {
		root.state.Origin = gg.Point{}
		root.state.markTransformChanged()
	}
}

func (r *RenderRoot) nextLayoutGen() uint64 {
	r.g.layoutGen++
	return r.g.layoutGen
}

// layoutWidget returns the widget's size for bc, reusing the cached size
// when neither the constraints nor the subtree changed.
func (r *RenderRoot) layoutWidget(n *arenaNode, bc BoxConstraints) Size {
	s := n.state
	if !s.NeedsLayout && s.LayoutConstraints != nil && *s.LayoutConstraints == bc {
		return s.Size
	}

	ctx := &LayoutCtx{ctxWrite: ctxWrite{ctxBase{r, n}}, gen: r.nextLayoutGen()}
	size := n.widget.Layout(ctx, bc)

	for _, id := range n.children {
		c := r.arena.find(id)
		cs := c.state
		switch {
		case cs.layoutGen != ctx.gen && cs.IsStashed:
			r.debugPanic("widget %s did not call SkipLayout on stashed child %s", s.TraceSpan, cs.TraceSpan)
		case cs.layoutGen != ctx.gen:
			r.debugPanic("widget %s did not call RunLayout on child %s", s.TraceSpan, cs.TraceSpan)
		case cs.IsExpectingPlaceChild:
			r.debugPanic("widget %s did not call PlaceChild on child %s", s.TraceSpan, cs.TraceSpan)
			cs.IsExpectingPlaceChild = false
		}
		s.mergeUp(cs)
	}

	if !isFiniteSize(size) {
		r.debugPanic("widget %s returned non-finite size %v", s.TraceSpan, size)
		size = bc.Constrain(Size{})
	}

	if size != s.Size {
		s.Size = size
		s.markTransformChanged()
	}
	key := bc
	s.LayoutConstraints = &key
	s.NeedsLayout = false
	s.RequestLayout = false

	// A new size generally invalidates everything drawn from it.
	s.requestPaint()
	s.requestCompose()
	s.requestAccessibility()
	return size
}

func isFiniteSize(s Size) bool {
	return !math.IsNaN(s.Width) && !math.IsNaN(s.Height) &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}
