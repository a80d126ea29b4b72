// Package harness drives a retained.RenderRoot from tests: it synthesizes
// pointer, keyboard and window events, records signals, and renders scenes
// without a window.
package harness

import (
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"

	"github.com/agiangrant/trellis/retained"
)

// DefaultWindowSize is the window size used unless WithWindowSize is given.
var DefaultWindowSize = retained.Size{Width: 400, Height: 400}

// Option configures a TestHarness.
type Option func(*retained.Options)

// WithWindowSize sets the initial window size in physical pixels.
func WithWindowSize(s retained.Size) Option {
	return func(o *retained.Options) { o.WindowSize = s }
}

// WithScaleFactor sets the initial scale factor.
func WithScaleFactor(f float64) Option {
	return func(o *retained.Options) { o.ScaleFactor = f }
}

// WithOptions replaces every option at once.
func WithOptions(opts retained.Options) Option {
	return func(o *retained.Options) { *o = opts }
}

// WithDefaultProperties installs a default property table.
func WithDefaultProperties(d *retained.DefaultProperties) Option {
	return func(o *retained.Options) { o.DefaultProperties = d }
}

// TestHarness owns a RenderRoot and remembers the simulated pointer state.
type TestHarness struct {
	root      *retained.RenderRoot
	mousePos  gg.Point
	hasMouse  bool
	modifiers retained.Modifiers

	// signals popped from the root but not yet consumed by the test.
	signals []retained.Signal

	scene  *scene.Scene
	access retained.TreeUpdate
}

// New builds a harness around root and runs the initial rewrite.
func New(root retained.Widget, opts ...Option) *TestHarness {
	o := retained.DefaultOptions()
	o.WindowSize = DefaultWindowSize
	for _, opt := range opts {
		opt(&o)
	}
	h := &TestHarness{root: retained.NewRenderRoot(root, o)}
	h.collectSignals()
	return h
}

// Root exposes the underlying RenderRoot.
func (h *TestHarness) Root() *retained.RenderRoot { return h.root }

func (h *TestHarness) collectSignals() {
	h.signals = append(h.signals, h.root.DrainSignals()...)
}

// ============================================================================
// Pointer
// ============================================================================

func (h *TestHarness) pointer(kind retained.PointerEventKind, button retained.MouseButton) retained.Handled {
	e := retained.PointerEvent{
		Kind:             kind,
		Button:           button,
		Position:         h.mousePos,
		PhysicalPosition: gg.Point{X: h.mousePos.X * h.root.ScaleFactor(), Y: h.mousePos.Y * h.root.ScaleFactor()},
		Modifiers:        h.modifiers,
		Count:            1,
	}
	res := h.root.HandlePointerEvent(e)
	h.collectSignals()
	return res
}

// MouseMove moves the pointer to pos in logical window coordinates.
func (h *TestHarness) MouseMove(pos gg.Point) retained.Handled {
	h.mousePos = pos
	h.hasMouse = true
	return h.pointer(retained.PointerMove, retained.MouseButtonNone)
}

// MouseMoveTo moves the pointer to the centre of widget id.
func (h *TestHarness) MouseMoveTo(id retained.WidgetID) retained.Handled {
	ref, ok := h.root.GetWidget(id)
	if !ok {
		panic("harness: MouseMoveTo unknown widget " + id.String())
	}
	b := ref.State().BoundingRect
	return h.MouseMove(gg.Point{X: (b.X0 + b.X1) / 2, Y: (b.Y0 + b.Y1) / 2})
}

// MouseDown presses button at the current position.
func (h *TestHarness) MouseDown(button retained.MouseButton) retained.Handled {
	return h.pointer(retained.PointerDown, button)
}

// MouseUp releases button at the current position.
func (h *TestHarness) MouseUp(button retained.MouseButton) retained.Handled {
	return h.pointer(retained.PointerUp, button)
}

// Click presses and releases the left button over widget id.
func (h *TestHarness) Click(id retained.WidgetID) {
	h.MouseMoveTo(id)
	h.MouseDown(retained.MouseButtonLeft)
	h.MouseUp(retained.MouseButtonLeft)
}

// MouseLeave moves the pointer out of the window.
func (h *TestHarness) MouseLeave() retained.Handled {
	h.hasMouse = false
	res := h.root.HandlePointerEvent(retained.PointerEvent{Kind: retained.PointerLeave})
	h.collectSignals()
	return res
}

// MouseCancel aborts the current pointer interaction.
func (h *TestHarness) MouseCancel() retained.Handled {
	return h.pointer(retained.PointerCancel, retained.MouseButtonNone)
}

// Scroll sends a wheel event at the current position.
func (h *TestHarness) Scroll(delta gg.Point) retained.Handled {
	e := retained.PointerEvent{Kind: retained.PointerScroll, Position: h.mousePos, ScrollDelta: delta, Modifiers: h.modifiers}
	res := h.root.HandlePointerEvent(e)
	h.collectSignals()
	return res
}

// ============================================================================
// Keyboard
// ============================================================================

// SetModifiers changes the held modifiers and notifies the root.
func (h *TestHarness) SetModifiers(m retained.Modifiers) retained.Handled {
	h.modifiers = m
	return h.Text(retained.TextEvent{Kind: retained.ModifierChange, Modifiers: m})
}

// Text delivers an arbitrary text event.
func (h *TestHarness) Text(e retained.TextEvent) retained.Handled {
	res := h.root.HandleTextEvent(e)
	h.collectSignals()
	return res
}

// KeyDown presses key with the currently held modifiers.
func (h *TestHarness) KeyDown(key string) retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.KeyDown, Key: key, Modifiers: h.modifiers})
}

// KeyUp releases key.
func (h *TestHarness) KeyUp(key string) retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.KeyUp, Key: key, Modifiers: h.modifiers})
}

// Tab presses Tab.
func (h *TestHarness) Tab() retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.KeyDown, Key: retained.KeyTab})
}

// ShiftTab presses Shift+Tab.
func (h *TestHarness) ShiftTab() retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.KeyDown, Key: retained.KeyTab, Modifiers: retained.ModShift})
}

// TypeText commits s through the IME, as a platform would for typed text.
func (h *TestHarness) TypeText(s string) retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.ImeCommit, Text: s})
}

// FocusWindow toggles window focus.
func (h *TestHarness) FocusWindow(focused bool) retained.Handled {
	return h.Text(retained.TextEvent{Kind: retained.WindowFocusChange, Focused: focused})
}

// ============================================================================
// Window and Access
// ============================================================================

// AnimFrame advances animations by interval.
func (h *TestHarness) AnimFrame(interval time.Duration) {
	h.root.HandleWindowEvent(retained.WindowEvent{Kind: retained.WindowAnimFrame, Interval: interval})
	h.collectSignals()
}

// Resize changes the physical window size.
func (h *TestHarness) Resize(s retained.Size) {
	h.root.HandleWindowEvent(retained.WindowEvent{Kind: retained.WindowResize, Size: s})
	h.collectSignals()
}

// Rescale changes the scale factor.
func (h *TestHarness) Rescale(f float64) {
	h.root.HandleWindowEvent(retained.WindowEvent{Kind: retained.WindowRescale, Scale: f})
	h.collectSignals()
}

// Access delivers an accessibility action to id.
func (h *TestHarness) Access(id retained.WidgetID, action retained.AccessAction) retained.Handled {
	res := h.root.HandleAccessEvent(retained.AccessEvent{Target: id, Action: action})
	h.collectSignals()
	return res
}

// ============================================================================
// Editing and Rendering
// ============================================================================

// EditRoot mutates the root widget.
func (h *TestHarness) EditRoot(fn func(*retained.MutateCtx)) {
	h.root.EditRootWidget(fn)
	h.collectSignals()
}

// Edit mutates widget id.
func (h *TestHarness) Edit(id retained.WidgetID, fn func(*retained.MutateCtx)) {
	h.root.EditWidget(id, fn)
	h.collectSignals()
}

// Render runs the paint and accessibility passes and keeps the output.
func (h *TestHarness) Render() *scene.Scene {
	h.scene, h.access = h.root.Redraw()
	h.collectSignals()
	return h.scene
}

// SceneHash renders and returns retained.SceneHash of the result.
func (h *TestHarness) SceneHash() uint64 {
	return retained.SceneHash(h.Render())
}

// AccessTree returns the tree update from the last Render.
func (h *TestHarness) AccessTree() retained.TreeUpdate { return h.access }

// ============================================================================
// Signals
// ============================================================================

// PopSignal returns the oldest unconsumed signal.
func (h *TestHarness) PopSignal() (retained.Signal, bool) {
	if len(h.signals) == 0 {
		return retained.Signal{}, false
	}
	s := h.signals[0]
	h.signals = h.signals[1:]
	return s, true
}

// PopSignals returns and clears every unconsumed signal.
func (h *TestHarness) PopSignals() []retained.Signal {
	out := h.signals
	h.signals = nil
	return out
}

// SignalsOfKind returns and removes the unconsumed signals of kind, keeping
// the others in order.
func (h *TestHarness) SignalsOfKind(kind retained.SignalKind) []retained.Signal {
	var out, rest []retained.Signal
	for _, s := range h.signals {
		if s.Kind == kind {
			out = append(out, s)
		} else {
			rest = append(rest, s)
		}
	}
	h.signals = rest
	return out
}

// PopAction returns the oldest unconsumed Action signal.
func (h *TestHarness) PopAction() (retained.Action, retained.WidgetID, bool) {
	for i, s := range h.signals {
		if s.Kind == retained.SignalAction {
			h.signals = append(h.signals[:i:i], h.signals[i+1:]...)
			return s.Action, s.Source, true
		}
	}
	return nil, 0, false
}

// ============================================================================
// Queries
// ============================================================================

// Get returns a handle to widget id and panics when it is missing.
func (h *TestHarness) Get(id retained.WidgetID) retained.WidgetRef {
	ref, ok := h.root.GetWidget(id)
	if !ok {
		panic("harness: no widget " + id.String())
	}
	return ref
}

// State returns a copy of widget id's state.
func (h *TestHarness) State(id retained.WidgetID) retained.WidgetState {
	return h.Get(id).State()
}

// Focused returns the focused widget, or 0.
func (h *TestHarness) Focused() retained.WidgetID { return h.root.FocusedWidget() }

// Hovered returns the innermost hovered widget, or 0.
func (h *TestHarness) Hovered() retained.WidgetID { return h.root.HoveredWidget() }

// Captured returns the pointer capture target, or 0.
func (h *TestHarness) Captured() retained.WidgetID { return h.root.PointerCaptureTarget() }

// Cursor returns the current cursor icon.
func (h *TestHarness) Cursor() retained.CursorIcon { return h.root.CursorIcon() }

// MousePosition returns the simulated pointer position and whether it is
// inside the window.
func (h *TestHarness) MousePosition() (gg.Point, bool) { return h.mousePos, h.hasMouse }
