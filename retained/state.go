package retained

import (
	"github.com/gogpu/gg"
)

// WidgetState is the engine's record for one widget. Widgets read it through
// their contexts; only the engine writes it.
//
// Needs* flags describe a subtree and are merged up into every ancestor.
// Request* flags describe the widget itself. Setting a Request* flag always
// sets the matching Needs* flag.
type WidgetState struct {
	ID        WidgetID
	TypeName  string
	TraceSpan string

	// IsNew is true until WidgetAdded has been delivered.
	IsNew bool

	NeedsLayout          bool
	RequestLayout        bool
	NeedsCompose         bool
	RequestCompose       bool
	NeedsPaint           bool
	RequestPaint         bool
	NeedsAccessibility   bool
	RequestAccessibility bool
	NeedsAnim            bool
	RequestAnim          bool

	NeedsUpdateDisabled   bool
	NeedsUpdateStashed    bool
	NeedsUpdateFocusChain bool

	// ChildrenChanged is set when this widget's child list changed.
	ChildrenChanged bool
	NeedsUpdateTree bool

	// TransformChanged is set when origin, local transform or scroll
	// translation changed since the last compose pass.
	TransformChanged bool

	IsHovered      bool
	HasHovered     bool
	IsActive       bool
	HasActive      bool
	IsFocusTarget  bool
	HasFocusTarget bool

	IsExplicitlyDisabled bool
	IsDisabled           bool
	IsExplicitlyStashed  bool
	IsStashed            bool

	Size              Size
	Origin            gg.Point
	Transform         gg.Matrix
	ScrollTranslation gg.Point
	WindowTransform   gg.Matrix
	// BoundingRect is in window coordinates and covers the subtree.
	BoundingRect   Rect
	PaintInsets    Insets
	ClipPath       *Rect
	BaselineOffset float64

	// LayoutConstraints is the cache key of the last layout.
	LayoutConstraints *BoxConstraints
	// IsExpectingPlaceChild is set between RunLayout and PlaceChild.
	IsExpectingPlaceChild bool

	AcceptsPointerInteraction bool
	AcceptsFocus              bool
	AcceptsTextInput          bool

	// HasFocusableDescendant covers the widget itself and its subtree.
	HasFocusableDescendant bool

	// IMEArea is the text-input caret area in local coordinates.
	IMEArea *Rect

	layoutGen uint64
}

func newWidgetState(id WidgetID, name string) *WidgetState {
	return &WidgetState{
		ID:        id,
		TypeName:  name,
		TraceSpan: name + id.String(),
		IsNew:     true,

		NeedsLayout:          true,
		RequestLayout:        true,
		NeedsCompose:         true,
		RequestCompose:       true,
		NeedsPaint:           true,
		RequestPaint:         true,
		NeedsAccessibility:   true,
		RequestAccessibility: true,

		NeedsUpdateDisabled:   true,
		NeedsUpdateStashed:    true,
		NeedsUpdateFocusChain: true,
		ChildrenChanged:       true,
		NeedsUpdateTree:       true,
		TransformChanged:      true,

		Transform:       gg.Identity(),
		WindowTransform: gg.Identity(),
	}
}

// LayoutRect is the widget's box in its parent's coordinate space.
func (s *WidgetState) LayoutRect() Rect {
	return RectFromOrigin(s.Origin, s.Size)
}

// PaintRect is the local box extended by paint insets.
func (s *WidgetState) PaintRect() Rect {
	return RectFromSize(s.Size).Inset(s.PaintInsets)
}

// mergeUp folds a child's subtree flags into s.
func (s *WidgetState) mergeUp(child *WidgetState) {
	s.NeedsLayout = s.NeedsLayout || child.NeedsLayout
	s.NeedsCompose = s.NeedsCompose || child.NeedsCompose
	s.NeedsPaint = s.NeedsPaint || child.NeedsPaint
	s.NeedsAccessibility = s.NeedsAccessibility || child.NeedsAccessibility
	s.NeedsAnim = s.NeedsAnim || child.NeedsAnim
	s.NeedsUpdateDisabled = s.NeedsUpdateDisabled || child.NeedsUpdateDisabled
	s.NeedsUpdateStashed = s.NeedsUpdateStashed || child.NeedsUpdateStashed
	s.NeedsUpdateFocusChain = s.NeedsUpdateFocusChain || child.NeedsUpdateFocusChain
	s.NeedsUpdateTree = s.NeedsUpdateTree || child.NeedsUpdateTree || child.ChildrenChanged
}

// needsRewrite reports whether any rewrite pass has work in this subtree.
func (s *WidgetState) needsRewrite() bool {
	return s.NeedsLayout || s.NeedsCompose ||
		s.NeedsUpdateDisabled || s.NeedsUpdateStashed ||
		s.NeedsUpdateFocusChain || s.NeedsUpdateTree || s.ChildrenChanged
}

func (s *WidgetState) requestLayout() {
	s.RequestLayout = true
	s.NeedsLayout = true
}

func (s *WidgetState) requestCompose() {
	s.RequestCompose = true
	s.NeedsCompose = true
}

func (s *WidgetState) requestPaint() {
	s.RequestPaint = true
	s.NeedsPaint = true
}

func (s *WidgetState) requestAccessibility() {
	s.RequestAccessibility = true
	s.NeedsAccessibility = true
}

func (s *WidgetState) requestAnim() {
	s.RequestAnim = true
	s.NeedsAnim = true
}

func (s *WidgetState) markTransformChanged() {
	s.TransformChanged = true
	s.NeedsCompose = true
}

// isFocusable reports whether the widget itself can take focus now.
func (s *WidgetState) isFocusable() bool {
	return s.AcceptsFocus && !s.IsDisabled && !s.IsStashed
}

// isInteractive reports whether pointer events may target the widget.
func (s *WidgetState) isInteractive() bool {
	return s.AcceptsPointerInteraction && !s.IsDisabled && !s.IsStashed
}
