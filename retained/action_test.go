package retained_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

type seenAction struct {
	action retained.Action
	source retained.WidgetID
}

// handler returns a container that records the actions it is offered and
// answers with consume.
func handler(consume bool, children ...*retained.WidgetPod) (*harness.ModularWidget[[]seenAction], *retained.WidgetPod) {
	w := harness.NewModular[[]seenAction](nil, children...)
	w.OnActionFn = func(w *harness.ModularWidget[[]seenAction], _ *retained.EventCtx, a retained.Action, source retained.WidgetID) bool {
		w.State = append(w.State, seenAction{a, source})
		return consume
	}
	return w, retained.NewWidgetPod(w)
}

func TestAncestorConsumesAction(t *testing.T) {
	btn, _ := button("OK")
	outer, _ := handler(false)
	inner, innerPod := handler(true, btn)
	outer.Children = []*retained.WidgetPod{innerPod}
	h := harness.New(outer)

	h.Click(btn.ID())
	require.Len(t, inner.State, 1)
	assert.Equal(t, seenAction{harness.ButtonPressed{Button: retained.MouseButtonLeft}, btn.ID()}, inner.State[0])
	assert.Empty(t, outer.State)
	_, _, ok := h.PopAction()
	assert.False(t, ok)
}

func TestUnconsumedActionReachesHost(t *testing.T) {
	btn, _ := button("OK")
	outer, _ := handler(false, btn)
	h := harness.New(outer)

	h.Access(btn.ID(), retained.AccessClick)
	assert.Len(t, outer.State, 1)
	action, source, ok := h.PopAction()
	require.True(t, ok)
	assert.Equal(t, harness.ButtonPressed{}, action)
	assert.Equal(t, btn.ID(), source)
}

func TestDisabledHandlerIsSkipped(t *testing.T) {
	leaf, _ := box(10, 10)
	middle, middlePod := handler(true, leaf)
	outer, _ := handler(true, middlePod)
	h := harness.New(outer)

	h.Edit(middlePod.ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	h.Edit(leaf.ID(), func(ctx *retained.MutateCtx) { ctx.SubmitAction("ping") })

	assert.Empty(t, middle.State)
	assert.Equal(t, []seenAction{{"ping", leaf.ID()}}, outer.State)
}

func TestActionsFromHandlersRunInLaterRounds(t *testing.T) {
	leaf, _ := box(10, 10)
	inner, innerPod := handler(true, leaf)
	inner.OnActionFn = func(w *harness.ModularWidget[[]seenAction], ctx *retained.EventCtx, a retained.Action, source retained.WidgetID) bool {
		w.State = append(w.State, seenAction{a, source})
		if a == "ping" {
			ctx.SubmitAction("pong")
		}
		return true
	}
	outer, _ := handler(false, innerPod)
	h := harness.New(outer)

	h.Edit(leaf.ID(), func(ctx *retained.MutateCtx) { ctx.SubmitAction("ping") })
	assert.Equal(t, []seenAction{{"ping", leaf.ID()}}, inner.State)
	assert.Equal(t, []seenAction{{"pong", innerPod.ID()}}, outer.State)

	action, source, ok := h.PopAction()
	require.True(t, ok)
	assert.Equal(t, "pong", action)
	assert.Equal(t, innerPod.ID(), source)
}

func TestActionFromRemovedWidgetIsDropped(t *testing.T) {
	leaf, _ := box(10, 10)
	column := harness.Column(leaf)
	columnPod := retained.NewWidgetPod(column)
	outer, _ := handler(false, columnPod)
	h := harness.New(outer)

	h.Edit(leaf.ID(), func(ctx *retained.MutateCtx) { ctx.SubmitAction("late") })
	assert.Len(t, outer.State, 1)

	// Submitted, then removed before the action pass.
	h.Edit(columnPod.ID(), func(ctx *retained.MutateCtx) {
		ctx.MutateChild(leaf, func(ctx *retained.MutateCtx) { ctx.SubmitAction("gone") })
		column.RemoveChildAt(ctx, 0)
	})
	assert.Len(t, outer.State, 1)

	_, _, ok := h.PopAction()
	assert.True(t, ok)
	_, _, ok = h.PopAction()
	assert.False(t, ok)
}
