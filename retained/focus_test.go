package retained_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

func isFocused(s retained.WidgetState) bool  { return s.IsFocusTarget }
func hasFocused(s retained.WidgetState) bool { return s.HasFocusTarget }

func buttons(n int) ([]*retained.WidgetPod, *harness.Flex) {
	pods := make([]*retained.WidgetPod, n)
	for i := range pods {
		pods[i] = harness.NewButtonPod("B", "")
	}
	return pods, harness.Column(pods...)
}

func TestTabCyclesThroughFocusableWidgets(t *testing.T) {
	pods, root := buttons(3)
	h := harness.New(root)
	require.Zero(t, h.Focused())

	var forward []retained.WidgetID
	for range 4 {
		h.Tab()
		forward = append(forward, h.Focused())
		assertStatusPath(t, h, isFocused, hasFocused)
	}
	assert.Equal(t, []retained.WidgetID{pods[0].ID(), pods[1].ID(), pods[2].ID(), pods[0].ID()}, forward)

	var backward []retained.WidgetID
	for range 4 {
		h.ShiftTab()
		backward = append(backward, h.Focused())
	}
	assert.Equal(t, []retained.WidgetID{pods[2].ID(), pods[1].ID(), pods[0].ID(), pods[2].ID()}, backward)
}

func TestShiftTabFromNothingFocusesLast(t *testing.T) {
	pods, root := buttons(3)
	h := harness.New(root)

	h.ShiftTab()
	assert.Equal(t, pods[2].ID(), h.Focused())
}

func TestTabOrderIsPreOrder(t *testing.T) {
	// A focusable container comes before its children going forward and
	// after them going backward.
	inner := harness.FocusableLeaf(retained.Size{Width: 10, Height: 10})
	innerPod := retained.NewWidgetPod(inner)
	group := harness.NewModular(struct{}{}, innerPod)
	group.Focusable = true
	groupPod := retained.NewWidgetPod(group)
	last := retained.NewWidgetPod(harness.FocusableLeaf(retained.Size{Width: 10, Height: 10}))
	h := harness.New(harness.Column(groupPod, last))

	var order []retained.WidgetID
	for range 3 {
		h.Tab()
		order = append(order, h.Focused())
	}
	assert.Equal(t, []retained.WidgetID{groupPod.ID(), innerPod.ID(), last.ID()}, order)

	order = order[:0]
	for range 3 {
		h.ShiftTab()
		order = append(order, h.Focused())
	}
	assert.Equal(t, []retained.WidgetID{innerPod.ID(), groupPod.ID(), last.ID()}, order)
}

func TestTabSkipsDisabledAndStashed(t *testing.T) {
	pods, root := buttons(3)
	h := harness.New(root)

	h.Edit(pods[1].ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	h.Tab()
	h.Tab()
	assert.Equal(t, pods[2].ID(), h.Focused())

	h.Edit(pods[1].ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(false) })
	h.Edit(pods[0].ID(), func(ctx *retained.MutateCtx) { ctx.SetStashed(true) })
	h.Tab()
	assert.Equal(t, pods[1].ID(), h.Focused())
}

func TestDisablingFocusedWidgetDropsFocus(t *testing.T) {
	pods, root := buttons(2)
	h := harness.New(root)
	h.Tab()
	require.Equal(t, pods[0].ID(), h.Focused())

	h.Edit(pods[0].ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	assert.Zero(t, h.Focused())
	assertStatusPath(t, h, isFocused, hasFocused)

	h.Tab()
	assert.Equal(t, pods[1].ID(), h.Focused())
	assertStatusPath(t, h, isFocused, hasFocused)
}

func TestDisabledPropagatesOnce(t *testing.T) {
	c, logC := button("C")
	b := retained.NewWidgetPod(harness.NewModular(struct{}{}, c))
	h := harness.New(harness.NewModular(struct{}{}, b))
	logC.Clear()

	disabledTrue := harness.UpdateRecord(retained.DisabledChanged, true)
	disabledFalse := harness.UpdateRecord(retained.DisabledChanged, false)

	h.Edit(b.ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	assert.True(t, h.State(c.ID()).IsDisabled)
	assert.Equal(t, 1, count(logC.Drain(), disabledTrue))

	// C is already disabled through B, so neither change reaches it.
	h.EditRoot(func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })
	h.Edit(b.ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(false) })
	records := logC.Drain()
	assert.Zero(t, count(records, disabledTrue))
	assert.Zero(t, count(records, disabledFalse))
	assert.True(t, h.State(c.ID()).IsDisabled)

	h.EditRoot(func(ctx *retained.MutateCtx) { ctx.SetDisabled(false) })
	assert.Equal(t, 1, count(logC.Drain(), disabledFalse))
	assert.False(t, h.State(c.ID()).IsDisabled)
}

func TestRemovingFocusedWidgetClearsFocus(t *testing.T) {
	pods, root := buttons(3)
	h := harness.New(root)
	h.Tab()
	h.Tab()
	require.Equal(t, pods[1].ID(), h.Focused())

	h.EditRoot(func(ctx *retained.MutateCtx) {
		ctx.Widget().(*harness.Flex).RemoveChildAt(ctx, 1)
	})
	assert.Zero(t, h.Focused())
	assertStatusPath(t, h, isFocused, hasFocused)
	assert.Equal(t, h.Root().RootID(), h.Root().MostRecentlyFocused())

	// Traversal resumes from the removed widget's parent.
	assert.NotPanics(t, func() { h.Tab() })
	assert.Equal(t, pods[0].ID(), h.Focused())
	assertMergedUp(t, h)
}

func TestTextInputFocusStartsIme(t *testing.T) {
	input := harness.FocusableLeaf(retained.Size{Width: 100, Height: 20})
	input.TextInput = true
	var typed string
	input.OnText = func(_ *harness.ModularWidget[struct{}], ctx *retained.EventCtx, e *retained.TextEvent) {
		if e.Kind == retained.ImeCommit {
			typed += e.Text
			ctx.SetHandled()
		}
	}
	inputPod := retained.NewWidgetPod(input)
	other := retained.NewWidgetPod(harness.FocusableLeaf(retained.Size{Width: 100, Height: 20}))
	h := harness.New(harness.Column(inputPod, other))

	// IME input without a text-input focus goes nowhere.
	assert.False(t, bool(h.TypeText("x")))

	h.Tab()
	require.Equal(t, inputPod.ID(), h.Focused())
	assert.Len(t, h.SignalsOfKind(retained.SignalStartIme), 1)

	assert.True(t, bool(h.TypeText("hi")))
	assert.Equal(t, "hi", typed)

	caret := retained.Rect{X0: 4, Y0: 2, X1: 5, Y1: 18}
	h.Edit(inputPod.ID(), func(ctx *retained.MutateCtx) { ctx.SetIMEArea(caret) })
	h.Edit(inputPod.ID(), func(ctx *retained.MutateCtx) { ctx.SetIMEArea(caret) })
	moved := h.SignalsOfKind(retained.SignalImeMoved)
	require.Len(t, moved, 1)
	assert.Equal(t, retained.Size{Width: 1, Height: 16}, moved[0].Size)

	h.Tab()
	assert.Equal(t, other.ID(), h.Focused())
	assert.Len(t, h.SignalsOfKind(retained.SignalEndIme), 1)
	assert.Empty(t, h.SignalsOfKind(retained.SignalStartIme))
}

func TestFocusUpdatesDeliveredInOrder(t *testing.T) {
	rec, log := harness.NewRecorder(harness.FocusableLeaf(retained.Size{Width: 10, Height: 10}))
	pod := retained.NewWidgetPod(rec)
	h := harness.New(harness.Column(pod))
	log.Clear()

	h.Tab()
	assert.Equal(t, []harness.Record{
		harness.UpdateRecord(retained.ChildFocusChanged, true),
		harness.UpdateRecord(retained.FocusChanged, true),
	}, log.DrainMethod("Update"))
}

func TestSetFocusMovesFocusToAnotherWidget(t *testing.T) {
	pods, col := buttons(2)
	label := harness.Leaf(retained.Size{Width: 10, Height: 10})
	label.Focusable = true
	label.OnText = func(_ *harness.ModularWidget[struct{}], ctx *retained.EventCtx, e *retained.TextEvent) {
		if e.Kind == retained.KeyDown && e.Key == retained.KeyEnter {
			ctx.RequestFocus()
			ctx.SetFocus(pods[1].ID())
			ctx.SetHandled()
		}
	}
	labelPod := retained.NewWidgetPod(label)
	h := harness.New(harness.Column(labelPod, retained.NewWidgetPod(col)))

	h.Tab()
	require.Equal(t, labelPod.ID(), h.Focused())
	h.KeyDown(retained.KeyEnter)
	assert.Equal(t, pods[1].ID(), h.Focused(), "the last focus write wins")
	assertStatusPath(t, h, isFocused, hasFocused)
}

func TestTabResumesFromPressedWidget(t *testing.T) {
	first := harness.NewButtonPod("A", "")
	last := harness.NewButtonPod("B", "")
	spacer, _ := box(100, 50)
	h := harness.New(harness.Column(first, spacer, last))

	h.MouseMoveTo(spacer.ID())
	h.MouseDown(retained.MouseButtonLeft)
	h.MouseUp(retained.MouseButtonLeft)
	require.Zero(t, h.Focused())
	assert.Equal(t, spacer.ID(), h.Root().MostRecentlyFocused())

	h.Tab()
	assert.Equal(t, last.ID(), h.Focused())

	h.MouseMoveTo(spacer.ID())
	h.MouseDown(retained.MouseButtonLeft)
	h.ShiftTab()
	assert.Equal(t, first.ID(), h.Focused(), "a focused widget stays the anchor")
}
