package retained

import (
	"go.opentelemetry.io/otel/attribute"
)

// maxActionRounds bounds actions submitted while handling actions.
const maxActionRounds = 16

// runActionPass offers each queued action to the source's ancestors, nearest
// first. Unhandled actions go to the host as SignalAction. It reports
// whether any action was processed.
func (r *RenderRoot) runActionPass() bool {
	if len(r.g.actions) == 0 {
		return false
	}
	_, span := r.startSpan("retained.action")
	defer span.End()

	count := 0
	for round := 0; len(r.g.actions) > 0; round++ {
		if round == maxActionRounds {
			Logger().Warn("retained: actions still pending after max rounds", "pending", len(r.g.actions))
			break
		}
		actions := r.g.actions
		r.g.actions = nil
		for _, a := range actions {
			count++
			r.dispatchAction(a)
		}
	}
	span.SetAttributes(attribute.Int("trellis.actions", count))
	return true
}

func (r *RenderRoot) dispatchAction(a pendingAction) {
	if !r.arena.has(a.source) {
		Logger().Warn("retained: dropping action from removed widget", "source", a.source)
		return
	}
	path := r.arena.idPath(a.source)
	handled := false
	for i := len(path) - 2; i >= 0 && !handled; i-- {
		n := r.arena.find(path[i])
		h, ok := n.widget.(ActionHandler)
		if !ok || n.state.IsDisabled {
			continue
		}
		var stop bool
		handled = h.OnAction(r.newEventCtx(n, a.source, &stop, false), a.action, a.source)
	}
	r.mergeUpPath(a.source)
	if !handled {
		r.g.signals.push(Signal{Kind: SignalAction, Action: a.action, Source: a.source})
	}
}
