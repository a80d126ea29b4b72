package retained_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

func TestAnimFramesUntilWidgetStops(t *testing.T) {
	w := harness.Leaf(retained.Size{Width: 10, Height: 10})
	var frames []time.Duration
	w.OnUpdate = func(_ *harness.ModularWidget[struct{}], ctx *retained.UpdateCtx, u retained.Update) {
		if u.Kind == retained.WidgetAdded {
			ctx.RequestAnimFrame()
		}
	}
	w.OnAnim = func(_ *harness.ModularWidget[struct{}], ctx *retained.UpdateCtx, interval time.Duration) {
		frames = append(frames, interval)
		if len(frames) < 3 {
			ctx.RequestAnimFrame()
		}
	}
	idle, idleLog := box(10, 10)
	h := harness.New(harness.Column(retained.NewWidgetPod(w), idle))
	assert.Len(t, h.SignalsOfKind(retained.SignalRequestAnimFrame), 1)

	for i := 0; i < 4; i++ {
		h.AnimFrame(16 * time.Millisecond)
	}
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 16 * time.Millisecond, 16 * time.Millisecond}, frames)
	// One request per frame that asked for another.
	assert.Len(t, h.SignalsOfKind(retained.SignalRequestAnimFrame), 2)
	assert.Empty(t, idleLog.DrainMethod("AnimFrame"))
	assert.False(t, rootRef(h).State().NeedsAnim)
}

func TestTweenAnimatesWidth(t *testing.T) {
	tween := harness.NewTween(0, 100, 10, 100*time.Millisecond, nil)
	pod := retained.NewWidgetPod(tween)
	h := harness.New(harness.Column(pod))
	assert.Equal(t, 0.0, h.State(pod.ID()).Size.Width)

	h.AnimFrame(50 * time.Millisecond)
	assert.InDelta(t, 50, h.State(pod.ID()).Size.Width, 0.01)
	assert.False(t, tween.Finished())
	_, _, ok := h.PopAction()
	assert.False(t, ok)

	h.AnimFrame(60 * time.Millisecond)
	assert.True(t, tween.Finished())
	assert.InDelta(t, 100, h.State(pod.ID()).Size.Width, 0.01)
	action, source, ok := h.PopAction()
	assert.True(t, ok)
	assert.Equal(t, harness.TweenFinished{}, action)
	assert.Equal(t, pod.ID(), source)

	h.PopSignals()
	h.AnimFrame(16 * time.Millisecond)
	assert.Empty(t, h.SignalsOfKind(retained.SignalRequestAnimFrame))

	h.Edit(pod.ID(), func(ctx *retained.MutateCtx) { tween.Restart(ctx) })
	assert.False(t, tween.Finished())
	assert.Len(t, h.SignalsOfKind(retained.SignalRequestAnimFrame), 1)
}
