package retained

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNode(id WidgetID) *arenaNode {
	return &arenaNode{widget: WidgetBase{}, state: newWidgetState(id, "Test")}
}

func TestArenaPaths(t *testing.T) {
	a := newArena()
	a.insert(0, 1, testNode(1))
	a.insert(1, 2, testNode(2))
	a.insert(2, 3, testNode(3))
	a.insert(1, 4, testNode(4))

	assert.Equal(t, WidgetID(1), a.root)
	assert.Equal(t, []WidgetID{1, 2, 3}, a.idPath(3))
	assert.Equal(t, []WidgetID{1, 4}, a.idPath(4))
	assert.Nil(t, a.idPath(99))

	p, ok := a.parentOf(3)
	assert.True(t, ok)
	assert.Equal(t, WidgetID(2), p)
	_, ok = a.parentOf(1)
	assert.False(t, ok)

	assert.True(t, a.isAncestorOrSelf(1, 3))
	assert.True(t, a.isAncestorOrSelf(3, 3))
	assert.False(t, a.isAncestorOrSelf(4, 3))

	var order []WidgetID
	a.walkPre(1, func(n *arenaNode) { order = append(order, n.state.ID) })
	assert.Equal(t, []WidgetID{1, 2, 3, 4}, order)
}

func TestArenaRemoveDetachesFromParent(t *testing.T) {
	a := newArena()
	a.insert(0, 1, testNode(1))
	a.insert(1, 2, testNode(2))
	a.insert(1, 3, testNode(3))

	require.NotNil(t, a.remove(2))
	assert.Equal(t, []WidgetID{3}, a.find(1).children)
	assert.False(t, a.has(2))
	assert.Nil(t, a.remove(2))
	assert.Equal(t, 2, a.len())
}

func TestArenaDuplicateInsertPanics(t *testing.T) {
	a := newArena()
	a.insert(0, 1, testNode(1))
	assert.Panics(t, func() { a.insert(1, 1, testNode(1)) })
	assert.Panics(t, func() { a.find(42) })
}

func TestMergeUp(t *testing.T) {
	parent := &WidgetState{ID: 1}
	child := &WidgetState{ID: 2}

	child.requestPaint()
	child.requestAnim()
	child.ChildrenChanged = true
	parent.mergeUp(child)

	assert.True(t, parent.NeedsPaint)
	assert.True(t, parent.NeedsAnim)
	assert.True(t, parent.NeedsUpdateTree)
	// Request flags stay on the widget that asked.
	assert.False(t, parent.RequestPaint)
	assert.False(t, parent.RequestAnim)
	assert.False(t, parent.NeedsLayout)

	// Merging never clears a flag.
	*child = WidgetState{ID: 2}
	parent.mergeUp(child)
	assert.True(t, parent.NeedsPaint)
}

func TestRequestSetsNeeds(t *testing.T) {
	s := &WidgetState{}
	s.requestLayout()
	s.requestCompose()
	s.requestAccessibility()
	s.markTransformChanged()

	assert.True(t, s.RequestLayout && s.NeedsLayout)
	assert.True(t, s.RequestCompose && s.NeedsCompose)
	assert.True(t, s.RequestAccessibility && s.NeedsAccessibility)
	assert.True(t, s.TransformChanged)
	assert.True(t, s.needsRewrite())
}

func TestNewWidgetStateStartsDirty(t *testing.T) {
	s := newWidgetState(7, "Button")
	assert.Equal(t, "Button#7", s.TraceSpan)
	assert.True(t, s.IsNew)
	assert.True(t, s.NeedsLayout && s.RequestLayout)
	assert.True(t, s.NeedsPaint && s.RequestPaint)
	assert.True(t, s.ChildrenChanged)
	assert.True(t, s.WindowTransform.IsIdentity())
}

func TestSignalQueueFIFO(t *testing.T) {
	var q signalQueue
	_, ok := q.pop()
	assert.False(t, ok)

	q.push(Signal{Kind: SignalStartIme})
	q.push(Signal{Kind: SignalRequestRedraw})
	q.push(Signal{Kind: SignalEndIme})
	assert.Equal(t, 3, q.len())

	s, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, SignalStartIme, s.Kind)

	rest := q.drain()
	require.Len(t, rest, 2)
	assert.Equal(t, SignalRequestRedraw, rest[0].Kind)
	assert.Equal(t, SignalEndIme, rest[1].Kind)
	assert.Equal(t, 0, q.len())
}

func TestParseCursor(t *testing.T) {
	c, ok := ParseCursor("not-allowed")
	assert.True(t, ok)
	assert.Equal(t, CursorNotAllowed, c)
	assert.Equal(t, "not-allowed", c.String())

	_, ok = ParseCursor("sideways")
	assert.False(t, ok)
}
