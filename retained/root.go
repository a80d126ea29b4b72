package retained

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/text"
)

// DefaultMaxRewriteIterations bounds the rewrite fixed-point loop.
const DefaultMaxRewriteIterations = 4

// DebugPaintEnv turns on the debug overlay when set to a true value.
const DebugPaintEnv = "TRELLIS_DEBUG_PAINT"

// Options configure a RenderRoot. Start from DefaultOptions.
type Options struct {
	// MaxRewriteIterations caps the rewrite loop per event. Zero means
	// DefaultMaxRewriteIterations.
	MaxRewriteIterations int

	// DebugPaint strokes every widget's box in the rendered scene.
	DebugPaint bool

	// DebugAssertions makes contract violations panic. When off they are
	// logged at error level.
	DebugAssertions bool

	// ScaleFactor maps logical to physical pixels. Zero means 1.
	ScaleFactor float64

	// WindowSize is the initial window size in physical pixels.
	WindowSize Size

	// Fonts is the shared text service. Nil creates one with the embedded
	// Go fonts.
	Fonts *text.FontContext

	DefaultProperties *DefaultProperties
}

// DefaultOptions returns options with assertions on and an 800x600 window.
func DefaultOptions() Options {
	return Options{
		MaxRewriteIterations: DefaultMaxRewriteIterations,
		DebugAssertions:      true,
		ScaleFactor:          1,
		WindowSize:           Size{800, 600},
	}
}

type mutateCallback struct {
	id WidgetID
	fn func(*MutateCtx)
}

type pendingAction struct {
	action Action
	source WidgetID
}

type panRequest struct {
	target WidgetID
	rect   Rect
}

// globalState is the root-level state shared by all passes. It is threaded
// explicitly through the RenderRoot, never stored in a package variable.
type globalState struct {
	opts       Options
	scale      float64
	windowSize Size

	focusedWidget     WidgetID
	focusedPath       []WidgetID
	nextFocusedWidget WidgetID
	mostRecentFocused WidgetID

	pointerCapture   WidgetID
	hoveredPath      []WidgetID
	activePath       []WidgetID
	lastPointerPos   *gg.Point
	needsPointerPass bool

	imeActive   bool
	lastImeRect *Rect

	signals         signalQueue
	mutateCallbacks []mutateCallback
	actions         []pendingAction
	panRequests     []panRequest

	cursor CursorIcon

	fonts        *text.FontContext
	fragments    map[WidgetID]*fragment
	defaultProps *DefaultProperties

	debugPaint        bool
	inspectorSelected WidgetID
	rebuildAccess     bool

	redrawSignalled bool
	animSignalled   bool

	layoutGen uint64
}

// RenderRoot owns the widget tree and runs the passes. It is not safe for
// concurrent use; all calls must come from the thread that drives the
// window.
type RenderRoot struct {
	arena  *arena
	g      *globalState
	tracer trace.Tracer
}

// NewRenderRoot builds a tree rooted at root and runs the initial rewrite.
func NewRenderRoot(root Widget, opts Options) *RenderRoot {
	if opts.MaxRewriteIterations <= 0 {
		opts.MaxRewriteIterations = DefaultMaxRewriteIterations
	}
	if opts.ScaleFactor <= 0 {
		opts.ScaleFactor = 1
	}
	fonts := opts.Fonts
	if fonts == nil {
		var err error
		fonts, err = text.NewFontContext()
		if err != nil {
			// The embedded fonts always parse.
			panic(fmt.Sprintf("retained: embedded fonts: %v", err))
		}
	}
	r := &RenderRoot{
		arena: newArena(),
		g: &globalState{
			opts:          opts,
			scale:         opts.ScaleFactor,
			windowSize:    opts.WindowSize,
			fonts:         fonts,
			fragments:     make(map[WidgetID]*fragment),
			defaultProps:  opts.DefaultProperties,
			debugPaint:    opts.DebugPaint || envDebugPaint(),
			rebuildAccess: true,
		},
		tracer: otel.Tracer("github.com/agiangrant/trellis/retained"),
	}
	id := NewWidgetID()
	r.insertWidget(0, id, &pendingWidget{widget: root})
	r.afterEvent()
	return r
}

func envDebugPaint() bool {
	switch os.Getenv(DebugPaintEnv) {
	case "1", "true", "TRUE", "yes":
		return true
	}
	return false
}

func (r *RenderRoot) insertWidget(parent, id WidgetID, pw *pendingWidget) {
	n := &arenaNode{
		widget: pw.widget,
		state:  newWidgetState(id, typeName(pw.widget)),
		props:  pw.props,
	}
	r.arena.insert(parent, id, n)
}

// removeSubtree drops child and its descendants from the arena after
// clearing every root-level reference into the subtree.
func (r *RenderRoot) removeSubtree(parent, child *arenaNode) {
	g := r.g
	var ids []WidgetID
	r.arena.walkPre(child.state.ID, func(n *arenaNode) {
		ids = append(ids, n.state.ID)
	})
	in := make(map[WidgetID]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}

	if in[g.nextFocusedWidget] {
		g.nextFocusedWidget = 0
	}
	if in[g.mostRecentFocused] {
		// Tab resumes from where the removed widget used to be.
		g.mostRecentFocused = parent.state.ID
	}
	if in[g.pointerCapture] {
		g.pointerCapture = 0
	}
	if in[g.inspectorSelected] {
		g.inspectorSelected = 0
	}
	g.needsPointerPass = true

	// Remove leaves first so the arena never holds a dangling parent.
	for i := len(ids) - 1; i >= 0; i-- {
		r.evictFragment(ids[i])
		r.arena.remove(ids[i])
	}
	parent.state.requestPaint()
}

// debugPanic reports a widget contract violation.
func (r *RenderRoot) debugPanic(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.g.opts.DebugAssertions {
		panic("retained: " + msg)
	}
	Logger().Error("retained: contract violation", "msg", msg)
}

func (r *RenderRoot) startSpan(name string) (context.Context, trace.Span) {
	return r.tracer.Start(context.Background(), name,
		trace.WithAttributes(attribute.Int("trellis.widgets", r.arena.len())))
}

func (r *RenderRoot) rootNode() *arenaNode {
	return r.arena.find(r.arena.root)
}

func (r *RenderRoot) logicalWindowSize() Size {
	return Size{r.g.windowSize.Width / r.g.scale, r.g.windowSize.Height / r.g.scale}
}

// mergeUpPath folds flags from id up to the root.
func (r *RenderRoot) mergeUpPath(id WidgetID) {
	path := r.arena.idPath(id)
	for i := len(path) - 1; i > 0; i-- {
		r.arena.find(path[i-1]).state.mergeUp(r.arena.find(path[i]).state)
	}
}

// ============================================================================
// Editing
// ============================================================================

// EditRootWidget runs fn with a MutateCtx for the root widget and then runs
// the rewrite passes.
func (r *RenderRoot) EditRootWidget(fn func(*MutateCtx)) {
	r.EditWidget(r.arena.root, fn)
}

// EditWidget runs fn with a MutateCtx for widget id. Unknown ids are logged
// and ignored.
func (r *RenderRoot) EditWidget(id WidgetID, fn func(*MutateCtx)) {
	n, ok := r.arena.lookup(id)
	if !ok {
		Logger().Warn("retained: edit of unknown widget", "id", id)
		return
	}
	fn(&MutateCtx{ctxWrite{ctxBase{r, n}}})
	r.mergeUpPath(id)
	r.afterEvent()
}

// SelectInInspector marks a widget as selected by a developer inspector.
func (r *RenderRoot) SelectInInspector(id WidgetID) {
	if id != 0 && !r.arena.has(id) {
		Logger().Warn("retained: inspector selected unknown widget", "id", id)
		return
	}
	r.g.inspectorSelected = id
	r.g.signals.push(Signal{Kind: SignalWidgetSelectedInInspector, Widget: id})
	if r.g.debugPaint {
		r.rootNode().state.requestPaint()
		r.afterEvent()
	}
}

// ============================================================================
// Signals and Queries
// ============================================================================

// PopSignal returns the oldest pending signal.
func (r *RenderRoot) PopSignal() (Signal, bool) { return r.g.signals.pop() }

// DrainSignals returns and clears all pending signals.
func (r *RenderRoot) DrainSignals() []Signal { return r.g.signals.drain() }

// HasPendingSignals reports whether PopSignal would return a signal.
func (r *RenderRoot) HasPendingSignals() bool { return r.g.signals.len() > 0 }

func (r *RenderRoot) RootID() WidgetID               { return r.arena.root }
func (r *RenderRoot) FocusedWidget() WidgetID        { return r.g.focusedWidget }
func (r *RenderRoot) PointerCaptureTarget() WidgetID { return r.g.pointerCapture }
func (r *RenderRoot) CursorIcon() CursorIcon         { return r.g.cursor }
func (r *RenderRoot) InspectorSelection() WidgetID   { return r.g.inspectorSelected }
func (r *RenderRoot) Fonts() *text.FontContext       { return r.g.fonts }
func (r *RenderRoot) ScaleFactor() float64           { return r.g.scale }
func (r *RenderRoot) IsDebugPaint() bool             { return r.g.debugPaint }
func (r *RenderRoot) HasIMESession() bool            { return r.g.imeActive }
func (r *RenderRoot) WidgetCount() int               { return r.arena.len() }
func (r *RenderRoot) MostRecentlyFocused() WidgetID  { return r.g.mostRecentFocused }
func (r *RenderRoot) LastPointerPosition() (gg.Point, bool) {
	if r.g.lastPointerPos == nil {
		return gg.Point{}, false
	}
	return *r.g.lastPointerPos, true
}

// HoveredWidget returns the innermost hovered widget, or 0.
func (r *RenderRoot) HoveredWidget() WidgetID {
	if len(r.g.hoveredPath) == 0 {
		return 0
	}
	return r.g.hoveredPath[len(r.g.hoveredPath)-1]
}

// NeedsRewritePasses reports whether an edit left work for the rewrite loop.
func (r *RenderRoot) NeedsRewritePasses() bool {
	return r.rootNode().state.needsRewrite() || r.g.needsPointerPass ||
		len(r.g.mutateCallbacks) > 0 || r.g.nextFocusedWidget != r.g.focusedWidget
}

// WidgetRef is a read-only handle to a widget in the tree.
type WidgetRef struct {
	ctx *QueryCtx
}

// GetWidget returns a handle for id.
func (r *RenderRoot) GetWidget(id WidgetID) (WidgetRef, bool) {
	n, ok := r.arena.lookup(id)
	if !ok {
		return WidgetRef{}, false
	}
	return WidgetRef{&QueryCtx{ctxBase{r, n}}}, true
}

func (w WidgetRef) ID() WidgetID       { return w.ctx.n.state.ID }
func (w WidgetRef) Widget() Widget     { return w.ctx.n.widget }
func (w WidgetRef) State() WidgetState { return *w.ctx.n.state }
func (w WidgetRef) Ctx() *QueryCtx     { return w.ctx }
func (w WidgetRef) Properties() Properties {
	return w.ctx.n.props
}

// Parent returns the parent handle, or false for the root.
func (w WidgetRef) Parent() (WidgetRef, bool) {
	id, ok := w.ctx.r.arena.parentOf(w.ID())
	if !ok {
		return WidgetRef{}, false
	}
	return w.ctx.r.GetWidget(id)
}

// Children returns handles for the registered children in order.
func (w WidgetRef) Children() []WidgetRef {
	kids := w.ctx.Children()
	out := make([]WidgetRef, len(kids))
	for i, k := range kids {
		out[i] = WidgetRef{k}
	}
	return out
}
