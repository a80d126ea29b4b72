package retained

import "github.com/gogpu/gg"

// ============================================================================
// Signals
// ============================================================================

// SignalKind identifies a request from the engine to the host.
type SignalKind uint8

const (
	SignalAction SignalKind = iota + 1
	SignalStartIme
	SignalEndIme
	SignalImeMoved
	SignalRequestRedraw
	SignalRequestAnimFrame
	SignalTakeFocus
	SignalSetCursor
	SignalSetSize
	SignalSetTitle
	SignalDragWindow
	SignalDragResizeWindow
	SignalToggleMaximized
	SignalMinimize
	SignalExit
	SignalShowWindowMenu
	SignalWidgetSelectedInInspector
)

var signalKindNames = [...]string{
	"", "Action", "StartIme", "EndIme", "ImeMoved", "RequestRedraw", "RequestAnimFrame",
	"TakeFocus", "SetCursor", "SetSize", "SetTitle", "DragWindow", "DragResizeWindow",
	"ToggleMaximized", "Minimize", "Exit", "ShowWindowMenu", "WidgetSelectedInInspector",
}

func (k SignalKind) String() string {
	if int(k) < len(signalKindNames) {
		return signalKindNames[k]
	}
	return "Unknown"
}

// ResizeDirection selects the edge for SignalDragResizeWindow.
type ResizeDirection uint8

const (
	ResizeEast ResizeDirection = iota
	ResizeNorth
	ResizeNorthEast
	ResizeNorthWest
	ResizeSouth
	ResizeSouthEast
	ResizeSouthWest
	ResizeWest
)

// Signal is a request for the host, drained with RenderRoot.PopSignal.
// Only the fields relevant to Kind are set.
type Signal struct {
	Kind SignalKind

	// SignalAction
	Action Action
	Source WidgetID

	// SignalImeMoved (the IME area in window coordinates), SignalShowWindowMenu
	Position gg.Point
	Size     Size

	Cursor    CursorIcon
	Title     string
	Direction ResizeDirection

	// SignalWidgetSelectedInInspector
	Widget WidgetID
}

// Action is an opaque payload a widget submits for its ancestors or the host.
type Action any

// CursorIcon is the pointer shape requested by the hovered widget.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorNotAllowed
	CursorGrab
	CursorGrabbing
	CursorEWResize
	CursorNSResize
	CursorWait
)

var cursorNames = map[string]CursorIcon{
	"default":     CursorDefault,
	"pointer":     CursorPointer,
	"text":        CursorText,
	"crosshair":   CursorCrosshair,
	"move":        CursorMove,
	"not-allowed": CursorNotAllowed,
	"grab":        CursorGrab,
	"grabbing":    CursorGrabbing,
	"ew-resize":   CursorEWResize,
	"ns-resize":   CursorNSResize,
	"wait":        CursorWait,
}

// ParseCursor maps a CSS cursor name to a CursorIcon.
func ParseCursor(name string) (CursorIcon, bool) {
	c, ok := cursorNames[name]
	return c, ok
}

func (c CursorIcon) String() string {
	for name, v := range cursorNames {
		if v == c {
			return name
		}
	}
	return "unknown"
}

// signalQueue is a FIFO of pending signals.
type signalQueue struct {
	items []Signal
	head  int
}

func (q *signalQueue) push(s Signal) {
	q.items = append(q.items, s)
}

func (q *signalQueue) pop() (Signal, bool) {
	if q.head >= len(q.items) {
		return Signal{}, false
	}
	s := q.items[q.head]
	q.items[q.head] = Signal{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return s, true
}

func (q *signalQueue) len() int {
	return len(q.items) - q.head
}

func (q *signalQueue) drain() []Signal {
	out := make([]Signal, q.len())
	copy(out, q.items[q.head:])
	q.items = q.items[:0]
	q.head = 0
	return out
}
