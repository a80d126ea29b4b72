package harness

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/agiangrant/trellis/retained"
)

// TweenFinished is submitted by a Tween when its animation completes.
type TweenFinished struct{}

// Tween is a styled box whose width animates from one value to another. It
// requests animation frames from the moment it is added until the tween
// finishes.
type Tween struct {
	SizedBox
	tween    *gween.Tween
	value    float64
	finished bool
}

// NewTween animates the box width from `from` to `to` over d.
func NewTween(from, to float64, height float64, d time.Duration, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	return &Tween{
		SizedBox: SizedBox{width: from, height: height},
		tween:    gween.New(float32(from), float32(to), float32(d.Seconds()), fn),
		value:    from,
	}
}

// Value returns the current animated width.
func (t *Tween) Value() float64 { return t.value }

// Finished reports whether the animation has completed.
func (t *Tween) Finished() bool { return t.finished }

// Restart rewinds the animation and starts it again.
func (t *Tween) Restart(ctx *retained.MutateCtx) {
	t.tween.Reset()
	t.finished = false
	ctx.RequestAnimFrame()
}

func (t *Tween) Update(ctx *retained.UpdateCtx, u retained.Update) {
	if u.Kind == retained.WidgetAdded && !t.finished {
		ctx.RequestAnimFrame()
	}
	t.SizedBox.Update(ctx, u)
}

func (t *Tween) OnAnimFrame(ctx *retained.UpdateCtx, interval time.Duration) {
	if t.finished {
		return
	}
	v, done := t.tween.Update(float32(interval.Seconds()))
	t.value = float64(v)
	t.width = t.value
	ctx.RequestLayout()
	if done {
		t.finished = true
		ctx.SubmitAction(TweenFinished{})
		return
	}
	ctx.RequestAnimFrame()
}
