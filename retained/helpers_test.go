package retained_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agiangrant/trellis/harness"
	"github.com/agiangrant/trellis/retained"
)

// box returns a recorded fixed-size box and its pod.
func box(w, h float64) (*retained.WidgetPod, *harness.Recording) {
	rec, log := harness.NewRecorder(harness.NewSizedBox(w, h))
	return retained.NewWidgetPod(rec), log
}

// button returns a recorded, default-styled button and its pod.
func button(label string) (*retained.WidgetPod, *harness.Recording) {
	rec, log := harness.NewRecorder(harness.NewButton(label))
	return harness.StyledPod(rec, harness.DefaultButtonClasses), log
}

func walk(ref retained.WidgetRef, fn func(ref retained.WidgetRef)) {
	fn(ref)
	for _, c := range ref.Children() {
		walk(c, fn)
	}
}

func rootRef(h *harness.TestHarness) retained.WidgetRef {
	return h.Get(h.Root().RootID())
}

// assertMergedUp checks that every Needs* flag set on a widget is also set
// on its parent.
func assertMergedUp(t *testing.T, h *harness.TestHarness) {
	t.Helper()
	walk(rootRef(h), func(ref retained.WidgetRef) {
		s := ref.State()
		for _, c := range ref.Children() {
			cs := c.State()
			name := cs.TraceSpan + " -> " + s.TraceSpan
			if cs.NeedsLayout {
				assert.True(t, s.NeedsLayout, "layout "+name)
			}
			if cs.NeedsCompose {
				assert.True(t, s.NeedsCompose, "compose "+name)
			}
			if cs.NeedsPaint {
				assert.True(t, s.NeedsPaint, "paint "+name)
			}
			if cs.NeedsAccessibility {
				assert.True(t, s.NeedsAccessibility, "accessibility "+name)
			}
			if cs.NeedsAnim {
				assert.True(t, s.NeedsAnim, "anim "+name)
			}
		}
	})
}

// assertStatusPath checks that at most one widget has the status and that
// exactly its ancestors, and itself, have the subtree flag.
func assertStatusPath(t *testing.T, h *harness.TestHarness, is func(retained.WidgetState) bool, has func(retained.WidgetState) bool) {
	t.Helper()
	var leaf retained.WidgetID
	walk(rootRef(h), func(ref retained.WidgetRef) {
		if is(ref.State()) {
			assert.Zero(t, leaf, "two widgets hold the same status")
			leaf = ref.ID()
		}
	})
	onPath := map[retained.WidgetID]bool{}
	if leaf != 0 {
		for ref, ok := h.Get(leaf), true; ok; ref, ok = ref.Parent() {
			onPath[ref.ID()] = true
		}
	}
	walk(rootRef(h), func(ref retained.WidgetRef) {
		assert.Equal(t, onPath[ref.ID()], has(ref.State()), ref.State().TraceSpan)
	})
}

func count(records []harness.Record, want harness.Record) int {
	n := 0
	for _, r := range records {
		if r == want {
			n++
		}
	}
	return n
}
