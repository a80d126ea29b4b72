package retained

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Anim Pass
// ============================================================================

// runAnimPass delivers OnAnimFrame to every widget that requested a frame.
// A widget that wants to keep animating requests again from its handler.
func (r *RenderRoot) runAnimPass(interval time.Duration) {
	root := r.rootNode()
	r.g.animSignalled = false
	if !root.state.NeedsAnim {
		return
	}
	_, span := r.startSpan("retained.anim")
	defer span.End()
	span.SetAttributes(attribute.Int64("trellis.interval_us", interval.Microseconds()))

	r.animWidget(root, interval)
}

func (r *RenderRoot) animWidget(n *arenaNode, interval time.Duration) {
	s := n.state
	if !s.NeedsAnim {
		return
	}
	s.NeedsAnim = false
	if s.RequestAnim {
		s.RequestAnim = false
		n.widget.OnAnimFrame(&UpdateCtx{ctxWrite{ctxBase{r, n}}}, interval)
	}
	for _, id := range n.children {
		c := r.arena.find(id)
		r.animWidget(c, interval)
		s.mergeUp(c.state)
	}
}
