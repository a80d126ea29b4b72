package retained_test

import (
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

// swatch is a fixed-size widget that fills itself with its state colour.
func swatch(c gg.RGBA) *harness.ModularWidget[gg.RGBA] {
	w := harness.NewModular(c)
	w.OnLayout = func(_ *harness.ModularWidget[gg.RGBA], _ *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
		return bc.Constrain(retained.Size{Width: 20, Height: 20})
	}
	w.OnPaint = func(w *harness.ModularWidget[gg.RGBA], ctx *retained.PaintCtx, p *retained.Painter) {
		p.FillRect(retained.RectFromSize(ctx.Size()), w.State)
	}
	return w
}

func TestSceneHashSeesColourOnlyChanges(t *testing.T) {
	w := swatch(gg.RGBA{R: 1, A: 1})
	pod := retained.NewWidgetPod(w)
	h := harness.New(harness.Column(pod))
	red := h.SceneHash()

	recolor := func(c gg.RGBA) {
		h.Edit(pod.ID(), func(ctx *retained.MutateCtx) {
			w.State = c
			ctx.RequestPaint()
		})
	}
	recolor(gg.RGBA{B: 1, A: 1})
	blue := h.SceneHash()
	assert.NotEqual(t, red, blue)

	recolor(gg.RGBA{R: 1, A: 1})
	assert.Equal(t, red, h.SceneHash())
}

func TestClipPathClipsOwnPaint(t *testing.T) {
	w := swatch(gg.RGBA{G: 1, A: 1})
	w.OnLayout = func(_ *harness.ModularWidget[gg.RGBA], ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
		ctx.SetClipPath(retained.Rect{X1: 10, Y1: 10})
		return bc.Constrain(retained.Size{Width: 20, Height: 20})
	}
	h := harness.New(w)

	tags := h.Render().Encoding().Tags()
	clip := slices.Index(tags, scene.TagBeginClip)
	fill := slices.Index(tags, scene.TagFill)
	require.NotEqual(t, -1, clip)
	require.NotEqual(t, -1, fill)
	assert.Less(t, clip, fill, "the clip must be in place before the widget paints")
}
