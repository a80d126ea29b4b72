package retained

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/gogpu/gg/scene"
)

// ============================================================================
// Pass Driver
// ============================================================================

// afterEvent runs after every externally delivered event or edit. It brings
// the tree back to a consistent state and tells the host what to do next.
func (r *RenderRoot) afterEvent() {
	r.settle()
	r.emitFrameSignals()
}

func (r *RenderRoot) settle() {
	r.runPanRequests()
	r.runRewritePasses()
	if r.runActionPass() {
		r.runRewritePasses()
	}
	r.updateIMEArea()
}

// rewriteConverged reports whether another rewrite iteration would do work.
func (r *RenderRoot) rewriteConverged() bool {
	return !r.NeedsRewritePasses()
}

// runRewritePasses runs the rewrite passes in their fixed order until the
// tree is stable or the iteration cap is hit.
func (r *RenderRoot) runRewritePasses() {
	_, span := r.startSpan("retained.rewrite")
	defer span.End()

	max := r.g.opts.MaxRewriteIterations
	iterations := 0
	for ; iterations < max; iterations++ {
		if r.rewriteConverged() {
			break
		}
		Logger().Debug("retained: rewrite iteration", "n", iterations)

		r.runMutatePass()
		r.runUpdateTreePass()
		r.runUpdateDisabledPass()
		r.runUpdateStashedPass()
		r.runUpdateFocusChainPass()
		r.runUpdateFocusPass()
		r.runLayoutPass()
		r.runComposePass()
		r.runUpdatePointerPass()
	}
	span.SetAttributes(attribute.Int("trellis.iterations", iterations))

	if !r.rewriteConverged() {
		Logger().Warn("retained: rewrite passes did not converge", "iterations", max)
		r.g.signals.push(Signal{Kind: SignalRequestRedraw})
		r.g.redrawSignalled = true
	}
}

// emitFrameSignals asks the host for a redraw or an animation frame when the
// root has pending paint, accessibility or animation work.
func (r *RenderRoot) emitFrameSignals() {
	s := r.rootNode().state
	if (s.NeedsPaint || s.NeedsAccessibility) && !r.g.redrawSignalled {
		r.g.signals.push(Signal{Kind: SignalRequestRedraw})
		r.g.redrawSignalled = true
	}
	if s.NeedsAnim && !r.g.animSignalled {
		r.g.signals.push(Signal{Kind: SignalRequestAnimFrame})
		r.g.animSignalled = true
	}
}

// Redraw runs any pending rewrite work and then the paint and accessibility
// passes. The scene is rebuilt from cached per-widget fragments, so calling
// Redraw twice without an intervening event yields identical output.
func (r *RenderRoot) Redraw() (*scene.Scene, TreeUpdate) {
	r.settle()

	sc := r.runPaintPass()
	update := r.runAccessibilityPass()
	r.g.redrawSignalled = false
	r.emitFrameSignals()
	return sc, update
}
