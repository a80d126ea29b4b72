package retained

import (
	"github.com/gogpu/gg"
)

// ============================================================================
// Compose Pass
// ============================================================================

// runComposePass resolves window transforms and bounding rects, and calls
// Compose on widgets that requested it.
func (r *RenderRoot) runComposePass() {
	root := r.rootNode()
	if !root.state.NeedsCompose {
		return
	}
	_, span := r.startSpan("retained.compose")
	defer span.End()
	r.composeWidget(root, gg.Identity(), false)
}

func (r *RenderRoot) composeWidget(n *arenaNode, parentTransform gg.Matrix, parentChanged bool) {
	s := n.state
	if !parentChanged && !s.NeedsCompose {
		return
	}

	changed := parentChanged || s.TransformChanged
	if changed {
		local := gg.Translate(s.Origin.X+s.ScrollTranslation.X, s.Origin.Y+s.ScrollTranslation.Y).Multiply(s.Transform)
		wt := parentTransform.Multiply(local)
		if wt != s.WindowTransform {
			s.WindowTransform = wt
			// Fragments are recorded in local space, so the scene only needs
			// re-assembling, not re-recording.
			s.NeedsPaint = true
			s.requestAccessibility()
			r.g.needsPointerPass = true
		}
		s.TransformChanged = false
	}

	if s.RequestCompose {
		s.RequestCompose = false
		n.widget.Compose(&ComposeCtx{ctxWrite{ctxBase{r, n}}})
	}
	s.NeedsCompose = false

	bbox := transformRect(s.WindowTransform, s.PaintRect())
	for _, id := range n.children {
		c := r.arena.find(id)
		r.composeWidget(c, s.WindowTransform, changed)
		if !c.state.IsStashed {
			bbox = bbox.Union(c.state.BoundingRect)
		}
		s.mergeUp(c.state)
	}
	if s.ClipPath != nil {
		bbox = bbox.Intersect(transformRect(s.WindowTransform, *s.ClipPath))
	}
	if bbox != s.BoundingRect {
		s.BoundingRect = bbox
		r.g.needsPointerPass = true
	}
}
