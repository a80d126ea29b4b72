package retained_test

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

func isHovered(s retained.WidgetState) bool  { return s.IsHovered }
func hasHovered(s retained.WidgetState) bool { return s.HasHovered }
func isActive(s retained.WidgetState) bool   { return s.IsActive }
func hasActive(s retained.WidgetState) bool  { return s.HasActive }

func TestHoverPathMovesBetweenSiblings(t *testing.T) {
	podA, logA := box(100, 50)
	podB, logB := box(100, 50)
	h := harness.New(harness.Column(podA, podB))
	logA.Clear()
	logB.Clear()

	h.MouseMove(gg.Point{X: 50, Y: 25})
	assert.Equal(t, podA.ID(), h.Hovered())
	assertStatusPath(t, h, isHovered, hasHovered)
	if diff := cmp.Diff([]harness.Record{
		harness.UpdateRecord(retained.ChildHoveredChanged, true),
		harness.UpdateRecord(retained.HoveredChanged, true),
	}, logA.DrainMethod("Update")); diff != "" {
		t.Errorf("hover A (-want +got):\n%s", diff)
	}

	h.MouseMove(gg.Point{X: 50, Y: 75})
	assert.Equal(t, podB.ID(), h.Hovered())
	assertStatusPath(t, h, isHovered, hasHovered)
	if diff := cmp.Diff([]harness.Record{
		harness.UpdateRecord(retained.ChildHoveredChanged, false),
		harness.UpdateRecord(retained.HoveredChanged, false),
	}, logA.DrainMethod("Update")); diff != "" {
		t.Errorf("leave A (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]harness.Record{
		harness.UpdateRecord(retained.ChildHoveredChanged, true),
		harness.UpdateRecord(retained.HoveredChanged, true),
	}, logB.DrainMethod("Update")); diff != "" {
		t.Errorf("hover B (-want +got):\n%s", diff)
	}

	// Over the root's empty area the root itself is hovered.
	h.MouseMove(gg.Point{X: 300, Y: 300})
	assert.Equal(t, h.Root().RootID(), h.Hovered())
	assertStatusPath(t, h, isHovered, hasHovered)

	h.MouseLeave()
	assert.Zero(t, h.Hovered())
	assertStatusPath(t, h, isHovered, hasHovered)
}

func TestPointerEventsBubbleToRoot(t *testing.T) {
	podA, logA := box(100, 50)
	root, rootLog := harness.NewRecorder(harness.Column(podA))
	h := harness.New(root)
	logA.Clear()
	rootLog.Clear()

	h.MouseMove(gg.Point{X: 10, Y: 10})
	h.MouseDown(retained.MouseButtonLeft)

	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Move"}, {Method: "PointerEvent", Detail: "Down"}},
		logA.DrainMethod("PointerEvent"))
	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Move"}, {Method: "PointerEvent", Detail: "Down"}},
		rootLog.DrainMethod("PointerEvent"))
}

func TestHandledEventStopsBubbling(t *testing.T) {
	inner := harness.Leaf(retained.Size{Width: 50, Height: 50})
	inner.OnPointer = func(_ *harness.ModularWidget[struct{}], ctx *retained.EventCtx, e *retained.PointerEvent) {
		if e.Kind == retained.PointerDown {
			ctx.SetHandled()
		}
	}
	root, rootLog := harness.NewRecorder(harness.Column(retained.NewWidgetPod(inner)))
	h := harness.New(root)
	rootLog.Clear()

	h.MouseMove(gg.Point{X: 10, Y: 10})
	assert.True(t, bool(h.MouseDown(retained.MouseButtonLeft)))
	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Move"}}, rootLog.DrainMethod("PointerEvent"))
}

func TestPointerCaptureReleasedOnUp(t *testing.T) {
	btn, btnLog := button("OK")
	other, _ := box(100, 50)
	h := harness.New(harness.Column(btn, other))

	h.MouseMoveTo(btn.ID())
	assert.Equal(t, retained.CursorPointer, h.Cursor())

	h.MouseDown(retained.MouseButtonLeft)
	assert.Equal(t, btn.ID(), h.Captured())
	assert.True(t, h.State(btn.ID()).IsActive)
	assertStatusPath(t, h, isActive, hasActive)

	// While captured, events keep going to the button and hover is empty
	// away from it.
	h.MouseMoveTo(other.ID())
	assert.Zero(t, h.Hovered())
	assert.Equal(t, retained.CursorPointer, h.Cursor())
	btnLog.Clear()

	h.MouseUp(retained.MouseButtonLeft)
	assert.Zero(t, h.Captured())
	assert.Equal(t, other.ID(), h.Hovered())
	assert.Equal(t, retained.CursorDefault, h.Cursor())
	assert.False(t, h.State(btn.ID()).IsActive)
	assertStatusPath(t, h, isActive, hasActive)
	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Up"}}, btnLog.DrainMethod("PointerEvent"))

	// Released outside the button: no press.
	_, _, ok := h.PopAction()
	assert.False(t, ok)

	cursors := h.SignalsOfKind(retained.SignalSetCursor)
	require.NotEmpty(t, cursors)
	assert.Equal(t, retained.CursorDefault, cursors[len(cursors)-1].Cursor)
}

func TestClickSubmitsAction(t *testing.T) {
	btn, _ := button("OK")
	h := harness.New(harness.Column(btn))

	h.Click(btn.ID())
	action, source, ok := h.PopAction()
	require.True(t, ok)
	assert.Equal(t, harness.ButtonPressed{Button: retained.MouseButtonLeft}, action)
	assert.Equal(t, btn.ID(), source)
	assert.Zero(t, h.Captured())
}

func TestCaptureCancelledWhenTargetDisabled(t *testing.T) {
	btn, btnLog := button("OK")
	h := harness.New(harness.Column(btn))

	h.MouseMoveTo(btn.ID())
	h.MouseDown(retained.MouseButtonLeft)
	require.Equal(t, btn.ID(), h.Captured())
	btnLog.Clear()

	h.Edit(btn.ID(), func(ctx *retained.MutateCtx) { ctx.SetDisabled(true) })

	assert.Zero(t, h.Captured())
	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Cancel"}}, btnLog.DrainMethod("PointerEvent"))
	assert.False(t, h.State(btn.ID()).IsActive)
	// Disabled widgets are not hit, so the root takes the hover.
	assert.Equal(t, h.Root().RootID(), h.Hovered())
}

func TestCaptureOutsidePointerDownPanics(t *testing.T) {
	w := harness.Leaf(retained.Size{Width: 50, Height: 50})
	w.OnPointer = func(_ *harness.ModularWidget[struct{}], ctx *retained.EventCtx, e *retained.PointerEvent) {
		if e.Kind == retained.PointerMove {
			ctx.CapturePointer()
		}
	}
	h := harness.New(harness.Column(retained.NewWidgetPod(w)))
	assert.Panics(t, func() { h.MouseMove(gg.Point{X: 5, Y: 5}) })
}

func TestStashedWidgetIsNotHit(t *testing.T) {
	podA, logA := box(100, 50)
	podB, _ := box(100, 50)
	h := harness.New(harness.Column(podA, podB))

	h.Edit(podA.ID(), func(ctx *retained.MutateCtx) { ctx.SetStashed(true) })
	assert.Equal(t, 1, count(logA.Drain(), harness.UpdateRecord(retained.StashedChanged, true)))

	// B moves up into A's old slot.
	assert.Equal(t, retained.Rect{X0: 0, Y0: 0, X1: 100, Y1: 50}, h.State(podB.ID()).BoundingRect)
	h.MouseMove(gg.Point{X: 50, Y: 25})
	assert.Equal(t, podB.ID(), h.Hovered())

	h.Edit(podA.ID(), func(ctx *retained.MutateCtx) { ctx.SetStashed(false) })
	assert.Equal(t, podA.ID(), h.Hovered())
	assertMergedUp(t, h)
}

func TestScrollTranslationMovesHitTarget(t *testing.T) {
	child, _ := box(100, 50)
	root := harness.NewModular(0.0, child)
	root.OnCompose = func(w *harness.ModularWidget[float64], ctx *retained.ComposeCtx) {
		ctx.SetChildScrollTranslation(w.Children[0], gg.Point{Y: w.State})
	}
	h := harness.New(root)

	h.MouseMove(gg.Point{X: 10, Y: 60})
	assert.Equal(t, h.Root().RootID(), h.Hovered())

	h.EditRoot(func(ctx *retained.MutateCtx) {
		ctx.Widget().(*harness.ModularWidget[float64]).State = 40
		ctx.RequestCompose()
	})
	assert.Equal(t, child.ID(), h.Hovered())
	assert.Equal(t, retained.Rect{X0: 0, Y0: 40, X1: 100, Y1: 90}, h.State(child.ID()).BoundingRect)
}

func TestStashingCaptureTargetCancelsCapture(t *testing.T) {
	btn, btnLog := button("OK")
	other, _ := box(100, 50)
	h := harness.New(harness.Column(btn, other))

	h.MouseMoveTo(btn.ID())
	h.MouseDown(retained.MouseButtonLeft)
	require.Equal(t, btn.ID(), h.Captured())
	btnLog.Clear()

	h.Edit(btn.ID(), func(ctx *retained.MutateCtx) { ctx.SetStashed(true) })
	assert.Zero(t, h.Captured())
	assert.Equal(t, []harness.Record{{Method: "PointerEvent", Detail: "Cancel"}}, btnLog.DrainMethod("PointerEvent"))
	assert.False(t, h.State(btn.ID()).IsActive)
	assertStatusPath(t, h, isActive, hasActive)
	assertStatusPath(t, h, isHovered, hasHovered)

	// The Up that follows goes wherever the pointer is, not to the button.
	h.MouseUp(retained.MouseButtonLeft)
	assert.Empty(t, btnLog.DrainMethod("PointerEvent"))
	_, _, ok := h.PopAction()
	assert.False(t, ok)
}

func TestRemovingCaptureTargetReleasesCapture(t *testing.T) {
	btn, _ := button("OK")
	other, _ := box(100, 50)
	h := harness.New(harness.Column(btn, other))

	h.MouseMoveTo(btn.ID())
	h.MouseDown(retained.MouseButtonLeft)
	require.Equal(t, btn.ID(), h.Captured())

	h.EditRoot(func(ctx *retained.MutateCtx) {
		ctx.Widget().(*harness.Flex).RemoveChildAt(ctx, 0)
	})
	assert.Zero(t, h.Captured())
	assertStatusPath(t, h, isActive, hasActive)
	assertStatusPath(t, h, isHovered, hasHovered)

	assert.NotPanics(t, func() { h.MouseUp(retained.MouseButtonLeft) })
	_, _, ok := h.PopAction()
	assert.False(t, ok)
	assertMergedUp(t, h)
}

func TestAccessEventForRemovedWidgetIsDropped(t *testing.T) {
	btn, _ := button("OK")
	h := harness.New(harness.Column(btn))
	id := btn.ID()

	h.EditRoot(func(ctx *retained.MutateCtx) {
		ctx.Widget().(*harness.Flex).RemoveChildAt(ctx, 0)
	})
	assert.False(t, bool(h.Access(id, retained.AccessClick)))
	_, _, ok := h.PopAction()
	assert.False(t, ok)
	assert.Zero(t, h.Focused())
}
