package retained

import (
	"math"

	"github.com/gogpu/gg"
)

// ============================================================================
// Sizes and Rectangles
// ============================================================================

// Size is a width/height pair in logical pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its two corners.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{0, 0, s.Width, s.Height}
}

// RectFromOrigin returns a rectangle at origin p with size s.
func RectFromOrigin(p gg.Point, s Size) Rect {
	return Rect{p.X, p.Y, p.X + s.Width, p.Y + s.Height}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }
func (r Rect) Size() Size      { return Size{r.Width(), r.Height()} }
func (r Rect) Origin() gg.Point {
	return gg.Pt(r.X0, r.Y0)
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Contains returns true if the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(p gg.Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Union returns the smallest rectangle containing both r and o. An empty
// rectangle is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		math.Min(r.X0, o.X0), math.Min(r.Y0, o.Y0),
		math.Max(r.X1, o.X1), math.Max(r.Y1, o.Y1),
	}
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		math.Max(r.X0, o.X0), math.Max(r.Y0, o.Y0),
		math.Min(r.X1, o.X1), math.Min(r.Y1, o.Y1),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Inset grows the rectangle outward by the given insets.
func (r Rect) Inset(in Insets) Rect {
	return Rect{r.X0 - in.Left, r.Y0 - in.Top, r.X1 + in.Right, r.Y1 + in.Bottom}
}

// Insets are per-edge distances.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// UniformInsets returns insets with the same value on each edge.
func UniformInsets(v float64) Insets {
	return Insets{v, v, v, v}
}

// transformRect maps r through m and returns the axis-aligned bounds of the
// result.
func transformRect(m gg.Matrix, r Rect) Rect {
	pts := [4]gg.Point{
		m.TransformPoint(gg.Pt(r.X0, r.Y0)),
		m.TransformPoint(gg.Pt(r.X1, r.Y0)),
		m.TransformPoint(gg.Pt(r.X0, r.Y1)),
		m.TransformPoint(gg.Pt(r.X1, r.Y1)),
	}
	out := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		out.X0 = math.Min(out.X0, p.X)
		out.Y0 = math.Min(out.Y0, p.Y)
		out.X1 = math.Max(out.X1, p.X)
		out.Y1 = math.Max(out.Y1, p.Y)
	}
	return out
}

// ============================================================================
// Box Constraints
// ============================================================================

// BoxConstraints bound the size a widget may choose during layout.
type BoxConstraints struct {
	Min, Max Size
}

// Tight returns constraints that allow exactly one size.
func Tight(s Size) BoxConstraints {
	return BoxConstraints{Min: s, Max: s}
}

// Loose returns constraints from zero up to max.
func Loose(max Size) BoxConstraints {
	return BoxConstraints{Max: max}
}

// Unbounded allows any size.
func Unbounded() BoxConstraints {
	inf := math.Inf(1)
	return BoxConstraints{Max: Size{inf, inf}}
}

// Constrain clamps s into the constraints.
func (bc BoxConstraints) Constrain(s Size) Size {
	return Size{
		Width:  clamp(s.Width, bc.Min.Width, bc.Max.Width),
		Height: clamp(s.Height, bc.Min.Height, bc.Max.Height),
	}
}

// Loosen drops the minimum.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: bc.Max}
}

// Shrink reduces both bounds by the given amount, never below zero.
func (bc BoxConstraints) Shrink(dw, dh float64) BoxConstraints {
	return BoxConstraints{
		Min: Size{math.Max(0, bc.Min.Width-dw), math.Max(0, bc.Min.Height-dh)},
		Max: Size{math.Max(0, bc.Max.Width-dw), math.Max(0, bc.Max.Height-dh)},
	}
}

// IsTight reports whether only one size satisfies the constraints.
func (bc BoxConstraints) IsTight() bool {
	return bc.Min == bc.Max
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
