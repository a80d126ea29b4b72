package retained

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
	"github.com/lucasb-eyer/go-colorful"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================================
// Paint Pass
// ============================================================================

// runPaintPass re-records the fragments of widgets that requested paint and
// assembles all fragments into a fresh scene.
func (r *RenderRoot) runPaintPass() *scene.Scene {
	_, span := r.startSpan("retained.paint")
	defer span.End()

	sc := scene.NewScene()
	recorded := 0
	r.paintWidget(sc, r.rootNode(), &recorded)
	if r.g.debugPaint {
		r.paintDebugOverlay(sc, r.rootNode())
	}
	span.SetAttributes(attribute.Int("trellis.recorded", recorded))
	return sc
}

func (r *RenderRoot) paintWidget(sc *scene.Scene, n *arenaNode, recorded *int) {
	s := n.state
	if s.IsStashed {
		clearPaintFlags(r, n)
		return
	}

	frag, ok := r.g.fragments[s.ID]
	if s.RequestPaint || !ok {
		p := &Painter{ops: acquireOps()}
		n.widget.Paint(&PaintCtx{ctxBase{r, n}}, p)
		r.evictFragment(s.ID)
		frag = p.finish()
		r.g.fragments[s.ID] = frag
		*recorded++
	}
	s.RequestPaint = false
	s.NeedsPaint = false

	wt := scene.AffineFromMatrix(s.WindowTransform)
	sc.PushTransform(wt)
	if s.ClipPath != nil {
		sc.PushClip(rectShape(*s.ClipPath, 0))
	}
	frag.replay(sc, r.g.fonts)
	sc.PopTransform()

	for _, id := range n.children {
		r.paintWidget(sc, r.arena.find(id), recorded)
	}

	if s.ClipPath != nil {
		sc.PopClip()
	}
}

// clearPaintFlags resets paint flags on a stashed subtree so they do not keep
// the root dirty.
func clearPaintFlags(r *RenderRoot, n *arenaNode) {
	n.state.NeedsPaint = false
	for _, id := range n.children {
		clearPaintFlags(r, r.arena.find(id))
	}
}

// paintDebugOverlay outlines every visible widget in a colour derived from
// its id. The inspector selection gets a thicker outline.
func (r *RenderRoot) paintDebugOverlay(sc *scene.Scene, n *arenaNode) {
	s := n.state
	if s.IsStashed {
		return
	}
	style := scene.DefaultStrokeStyle()
	if s.ID == r.g.inspectorSelected {
		style.Width = 3
	}
	sc.PushTransform(scene.AffineFromMatrix(s.WindowTransform))
	sc.Stroke(style, scene.IdentityAffine(), scene.SolidBrush(debugColor(s.ID)), rectShape(RectFromSize(s.Size), 0))
	sc.PopTransform()
	for _, id := range n.children {
		r.paintDebugOverlay(sc, r.arena.find(id))
	}
}

// debugColor maps an id to a stable, saturated colour.
func debugColor(id WidgetID) gg.RGBA {
	h := xxhash.Sum64String(id.String())
	c := colorful.Hsv(float64(h%360), 0.75, 0.95)
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: 1}
}

// SceneHash fingerprints a rendered scene. Encoding.Hash covers geometry,
// draw tags and text but not brushes, so brush colours are folded in here.
func SceneHash(sc *scene.Scene) uint64 {
	enc := sc.Encoding()
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	put(enc.Hash())
	for _, b := range enc.Brushes() {
		put(uint64(b.Kind))
		put(math.Float64bits(b.Color.R))
		put(math.Float64bits(b.Color.G))
		put(math.Float64bits(b.Color.B))
		put(math.Float64bits(b.Color.A))
	}
	return d.Sum64()
}
