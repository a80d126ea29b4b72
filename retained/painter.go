package retained

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/agiangrant/trellis/text"
)

// ============================================================================
// Painter
// ============================================================================

type paintOpKind uint8

const (
	opFillRect paintOpKind = iota
	opStrokeRect
	opText
	opPushClip
	opPopClip
)

// paintOp is one recorded drawing command in widget-local coordinates.
type paintOp struct {
	kind   paintOpKind
	rect   Rect
	radius float64
	width  float64
	color  gg.RGBA
	text   string
	family string
	size   float64
	pos    gg.Point
}

// fragment is the cached output of one widget's Paint call.
type fragment struct {
	ops []paintOp
}

// Painter records drawing commands for a widget. Coordinates are local to
// the widget; the engine positions the recording with the widget's window
// transform when it builds the scene.
type Painter struct {
	ops   []paintOp
	clips int
}

// FillRect fills r with c.
func (p *Painter) FillRect(r Rect, c gg.RGBA) {
	p.ops = append(p.ops, paintOp{kind: opFillRect, rect: r, color: c})
}

// FillRoundedRect fills r with rounded corners.
func (p *Painter) FillRoundedRect(r Rect, radius float64, c gg.RGBA) {
	p.ops = append(p.ops, paintOp{kind: opFillRect, rect: r, radius: radius, color: c})
}

// StrokeRect outlines r with a line of the given width.
func (p *Painter) StrokeRect(r Rect, radius, width float64, c gg.RGBA) {
	p.ops = append(p.ops, paintOp{kind: opStrokeRect, rect: r, radius: radius, width: width, color: c})
}

// DrawText draws s with its baseline starting at pos.
func (p *Painter) DrawText(s string, pos gg.Point, family string, size float64, c gg.RGBA) {
	p.ops = append(p.ops, paintOp{kind: opText, text: s, pos: pos, family: family, size: size, color: c})
}

// PushClip restricts the following commands to r until PopClip.
func (p *Painter) PushClip(r Rect) {
	p.clips++
	p.ops = append(p.ops, paintOp{kind: opPushClip, rect: r})
}

// PopClip undoes the last PushClip.
func (p *Painter) PopClip() {
	if p.clips == 0 {
		return
	}
	p.clips--
	p.ops = append(p.ops, paintOp{kind: opPopClip})
}

// finish closes any clips the widget left open.
func (p *Painter) finish() *fragment {
	for p.clips > 0 {
		p.PopClip()
	}
	return &fragment{ops: p.ops}
}

func rectShape(r Rect, radius float64) scene.Shape {
	if radius > 0 {
		return scene.NewRoundedRectShape(float32(r.X0), float32(r.Y0), float32(r.Width()), float32(r.Height()), float32(radius))
	}
	return scene.NewRectShape(float32(r.X0), float32(r.Y0), float32(r.Width()), float32(r.Height()))
}

// replay appends the fragment to sc under the current scene transform.
func (f *fragment) replay(sc *scene.Scene, fonts *text.FontContext) {
	for i := range f.ops {
		op := &f.ops[i]
		switch op.kind {
		case opFillRect:
			sc.Fill(scene.FillNonZero, scene.IdentityAffine(), scene.SolidBrush(op.color), rectShape(op.rect, op.radius))
		case opStrokeRect:
			style := scene.DefaultStrokeStyle()
			style.Width = float32(op.width)
			sc.Stroke(style, scene.IdentityAffine(), scene.SolidBrush(op.color), rectShape(op.rect, op.radius))
		case opText:
			if fonts == nil {
				continue
			}
			face := fonts.Face(op.family, op.size)
			if err := sc.DrawText(op.text, face, float32(op.pos.X), float32(op.pos.Y), scene.SolidBrush(op.color)); err != nil {
				Logger().Warn("retained: text draw failed", "err", err)
			}
		case opPushClip:
			sc.PushClip(rectShape(op.rect, 0))
		case opPopClip:
			sc.PopClip()
		}
	}
}
