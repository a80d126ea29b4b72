package retained

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
)

func TestRectContainsExcludesMaxEdge(t *testing.T) {
	r := Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}

	assert.True(t, r.Contains(gg.Point{X: 10, Y: 10}))
	assert.True(t, r.Contains(gg.Point{X: 19.9, Y: 15}))
	assert.False(t, r.Contains(gg.Point{X: 20, Y: 15}))
	assert.False(t, r.Contains(gg.Point{X: 15, Y: 20}))
	assert.False(t, r.Contains(gg.Point{X: 9, Y: 15}))
}

func TestRectUnionIntersect(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 20, 15}

	assert.Equal(t, Rect{0, 0, 20, 15}, a.Union(b))
	assert.Equal(t, Rect{5, 5, 10, 10}, a.Intersect(b))
	assert.True(t, a.Intersect(Rect{30, 30, 40, 40}).IsEmpty())

	// Empty rects do not grow a union.
	assert.Equal(t, a, a.Union(Rect{}))
}

func TestRectInset(t *testing.T) {
	r := RectFromSize(Size{100, 50})
	got := r.Inset(Insets{Top: 2, Right: 4, Bottom: 6, Left: 8})
	assert.Equal(t, Rect{-8, -2, 104, 56}, got)
}

func TestTransformRect(t *testing.T) {
	m := gg.Translate(10, 20)
	assert.Equal(t, Rect{10, 20, 15, 25}, transformRect(m, Rect{0, 0, 5, 5}))

	scaled := gg.Scale(2, 3)
	assert.Equal(t, Rect{0, 0, 10, 15}, transformRect(scaled, Rect{0, 0, 5, 5}))
}

func TestBoxConstraints(t *testing.T) {
	bc := BoxConstraints{Min: Size{10, 10}, Max: Size{100, 50}}

	assert.Equal(t, Size{10, 50}, bc.Constrain(Size{5, 80}))
	assert.Equal(t, BoxConstraints{Max: Size{100, 50}}, bc.Loosen())
	assert.Equal(t, BoxConstraints{Min: Size{0, 0}, Max: Size{85, 35}}, bc.Shrink(15, 15))
	assert.True(t, Tight(Size{3, 4}).IsTight())
	assert.False(t, bc.IsTight())

	u := Unbounded()
	assert.True(t, math.IsInf(u.Max.Width, 1))
	assert.Equal(t, Size{1e6, 2}, u.Constrain(Size{1e6, 2}))
}
