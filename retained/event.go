package retained

import (
	"time"

	"github.com/gogpu/gg"
)

// ============================================================================
// Input Modifiers and Buttons
// ============================================================================

// MouseButton identifies which pointer button changed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Handled reports whether an event was consumed by some widget.
type Handled bool

// ============================================================================
// Pointer Events
// ============================================================================

// PointerEventKind identifies a pointer event.
type PointerEventKind uint8

const (
	PointerDown PointerEventKind = iota + 1
	PointerUp
	PointerMove
	PointerEnter
	PointerLeave
	PointerScroll
	PointerCancel
	PointerPinch
)

var pointerKindNames = [...]string{"", "Down", "Up", "Move", "Enter", "Leave", "Scroll", "Cancel", "Pinch"}

func (k PointerEventKind) String() string {
	if int(k) < len(pointerKindNames) {
		return pointerKindNames[k]
	}
	return "Unknown"
}

// PointerEvent is a mouse, pen or touch event in window coordinates.
type PointerEvent struct {
	Kind   PointerEventKind
	Button MouseButton

	// Position is in logical pixels. PhysicalPosition is the same point
	// before the scale factor is removed.
	Position         gg.Point
	PhysicalPosition gg.Point

	Modifiers Modifiers

	// Count is the click count for Down events (2 for a double click).
	Count int

	ScrollDelta gg.Point
	PinchDelta  float64
}

// hasPosition reports whether the event carries a meaningful position.
func (e *PointerEvent) hasPosition() bool {
	switch e.Kind {
	case PointerLeave, PointerCancel:
		return false
	}
	return true
}

// ============================================================================
// Text Events
// ============================================================================

// TextEventKind identifies a keyboard or IME event.
type TextEventKind uint8

const (
	KeyDown TextEventKind = iota + 1
	KeyUp
	ImePreedit
	ImeCommit
	ImeEnabled
	ImeDisabled
	ModifierChange
	WindowFocusChange
)

// Named keys. Printable keys use their text.
const (
	KeyTab        = "Tab"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeySpace      = " "
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyHome       = "Home"
	KeyEnd        = "End"
)

// TextEvent is keyboard, IME, or window-focus input.
type TextEvent struct {
	Kind      TextEventKind
	Key       string
	Text      string
	Repeat    bool
	Modifiers Modifiers

	// Focused is set for WindowFocusChange.
	Focused bool
}

func (e *TextEvent) isIme() bool {
	switch e.Kind {
	case ImePreedit, ImeCommit, ImeEnabled, ImeDisabled:
		return true
	}
	return false
}

// ============================================================================
// Accessibility Events
// ============================================================================

// AccessAction is an action requested by assistive technology.
type AccessAction uint8

const (
	AccessFocus AccessAction = iota + 1
	AccessBlur
	AccessScrollIntoView
	AccessClick
	AccessCustom
)

func (a AccessAction) String() string {
	switch a {
	case AccessFocus:
		return "Focus"
	case AccessBlur:
		return "Blur"
	case AccessScrollIntoView:
		return "ScrollIntoView"
	case AccessClick:
		return "Click"
	case AccessCustom:
		return "Custom"
	}
	return "Unknown"
}

// AccessEvent targets a widget by id.
type AccessEvent struct {
	Target WidgetID
	Action AccessAction
	Data   string
}

// ============================================================================
// Window Events
// ============================================================================

// WindowEventKind identifies a window event.
type WindowEventKind uint8

const (
	WindowRescale WindowEventKind = iota + 1
	WindowResize
	WindowAnimFrame
	WindowRebuildAccessTree
)

// WindowEvent carries window-level changes from the host.
type WindowEvent struct {
	Kind WindowEventKind

	// Scale is set for WindowRescale.
	Scale float64
	// Size is set for WindowResize, in physical pixels.
	Size Size
	// Interval is the time since the previous animation frame.
	Interval time.Duration
}

// ============================================================================
// Lifecycle Updates
// ============================================================================

// UpdateKind identifies a lifecycle notification delivered to Widget.Update.
type UpdateKind uint8

const (
	WidgetAdded UpdateKind = iota + 1
	DisabledChanged
	StashedChanged
	FocusChainChanged
	HoveredChanged
	ChildHoveredChanged
	ActiveChanged
	ChildActiveChanged
	FocusChanged
	ChildFocusChanged
	RequestPanToChild
)

var updateKindNames = [...]string{
	"", "WidgetAdded", "DisabledChanged", "StashedChanged", "FocusChainChanged",
	"HoveredChanged", "ChildHoveredChanged", "ActiveChanged", "ChildActiveChanged",
	"FocusChanged", "ChildFocusChanged", "RequestPanToChild",
}

func (k UpdateKind) String() string {
	if int(k) < len(updateKindNames) {
		return updateKindNames[k]
	}
	return "Unknown"
}

// Update is a lifecycle notification.
type Update struct {
	Kind  UpdateKind
	Value bool
	// Rect is set for RequestPanToChild, in the receiver's local coordinates.
	Rect Rect
}
