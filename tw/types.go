package tw

import (
	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
)

// State selects which variant bucket a class applies to.
type State int

const (
	StateDefault State = iota
	StateHover
	StateFocus
	StateActive
	StateDisabled
	stateCount
)

func (s State) String() string {
	switch s {
	case StateHover:
		return "hover"
	case StateFocus:
		return "focus"
	case StateActive:
		return "active"
	case StateDisabled:
		return "disabled"
	default:
		return "default"
	}
}

// ============================================================================
// Properties
// ============================================================================
//
// Each utility class resolves to one of the property types below. They are
// stored on widgets through retained.Properties, keyed by their Go type.

// Background fills the widget's layout box.
type Background struct {
	Color gg.RGBA
}

// BorderColor is the stroke colour of the widget's border.
type BorderColor struct {
	Color gg.RGBA
}

// BorderWidth is the stroke width in logical pixels.
type BorderWidth struct {
	Width float64
}

// CornerRadius rounds the background and border.
type CornerRadius struct {
	Radius float64
}

// Padding insets a widget's content from its box.
type Padding struct {
	Insets retained.Insets
}

// TextColor is the fill colour for text.
type TextColor struct {
	Color gg.RGBA
}

// FontSize is the text size in logical pixels.
type FontSize struct {
	Size float64
}

// FontFamily names a family registered with text.FontContext.
type FontFamily struct {
	Name string
}

// Cursor overrides the pointer icon shown over the widget.
type Cursor struct {
	Icon retained.CursorIcon
}

// ParsedClass is a single class split into its variant and utility.
type ParsedClass struct {
	State          State
	BaseClass      string // "bg-blue-500"
	ArbitraryValue *ArbitraryValue
}

// ArbitraryValue holds a bracketed value such as bg-[#1da1f2].
type ArbitraryValue struct {
	Property string // e.g. "bg", "text", "p"
	Value    string // e.g. "#1da1f2", "14px"
}
