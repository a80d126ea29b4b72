package tw

import (
	"math"
	"strconv"
	"strings"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/text"
)

// spacingUnit is the Tailwind spacing step: p-4 is 16px.
const spacingUnit = 4.0

var fontSizes = map[string]float64{
	"xs":   12,
	"sm":   14,
	"base": 16,
	"lg":   18,
	"xl":   20,
	"2xl":  24,
	"3xl":  30,
}

var radii = map[string]float64{
	"rounded":      4,
	"rounded-none": 0,
	"rounded-sm":   2,
	"rounded-md":   6,
	"rounded-lg":   8,
	"rounded-xl":   12,
	"rounded-2xl":  16,
	"rounded-full": 9999,
}

// edge is a set of box sides touched by a padding utility.
type edge uint8

const (
	edgeTop edge = 1 << iota
	edgeRight
	edgeBottom
	edgeLeft
	edgeAll = edgeTop | edgeRight | edgeBottom | edgeLeft
)

// paddingEdit sets some sides of Padding, leaving the rest alone.
type paddingEdit struct {
	sides edge
	value float64
}

func (e paddingEdit) apply(in retained.Insets) retained.Insets {
	if e.sides&edgeTop != 0 {
		in.Top = e.value
	}
	if e.sides&edgeRight != 0 {
		in.Right = e.value
	}
	if e.sides&edgeBottom != 0 {
		in.Bottom = e.value
	}
	if e.sides&edgeLeft != 0 {
		in.Left = e.value
	}
	return in
}

var paddingSides = map[string]edge{
	"p":  edgeAll,
	"px": edgeLeft | edgeRight,
	"py": edgeTop | edgeBottom,
	"pt": edgeTop,
	"pr": edgeRight,
	"pb": edgeBottom,
	"pl": edgeLeft,
}

// ParseClasses parses a Tailwind-style class string into a Style.
// Example: "bg-blue-500 hover:bg-blue-600 px-4 py-2 rounded-md"
// Unknown classes are ignored, like in Tailwind CSS.
func ParseClasses(classStr string) Style {
	s := Style{}
	for _, class := range strings.Fields(classStr) {
		parsed, ok := parseClass(class)
		if !ok {
			continue
		}
		var values []any
		if parsed.ArbitraryValue != nil {
			values = parseArbitraryValue(parsed.ArbitraryValue)
		} else {
			values = parseUtility(parsed.BaseClass)
		}
		for _, v := range values {
			s.set(parsed.State, v)
		}
	}
	return s
}

// parseClass splits a class into its state variant and base utility.
// "hover:bg-blue-500" → ParsedClass{State: StateHover, BaseClass: "bg-blue-500"}
// "p-[10px]" → ParsedClass{ArbitraryValue: {Property: "p", Value: "10px"}}
// Classes with a variant the toolkit does not support (dark:, md:) report
// false.
func parseClass(class string) (ParsedClass, bool) {
	parts := strings.Split(class, ":")
	pc := ParsedClass{
		State:     StateDefault,
		BaseClass: parts[len(parts)-1],
	}
	for _, variant := range parts[:len(parts)-1] {
		switch variant {
		case "hover":
			pc.State = StateHover
		case "focus":
			pc.State = StateFocus
		case "active":
			pc.State = StateActive
		case "disabled":
			pc.State = StateDisabled
		default:
			return pc, false
		}
	}

	if strings.Contains(pc.BaseClass, "[") && strings.HasSuffix(pc.BaseClass, "]") {
		pc.ArbitraryValue = extractArbitraryValue(pc.BaseClass)
		pc.BaseClass = ""
		if pc.ArbitraryValue == nil {
			return pc, false
		}
	}
	return pc, pc.BaseClass != "" || pc.ArbitraryValue != nil
}

// extractArbitraryValue parses arbitrary value syntax
// "bg-[#1da1f2]" → ArbitraryValue{Property: "bg", Value: "#1da1f2"}
func extractArbitraryValue(class string) *ArbitraryValue {
	bracketIdx := strings.Index(class, "[")
	if bracketIdx == -1 {
		return nil
	}
	return &ArbitraryValue{
		Property: strings.TrimSuffix(class[:bracketIdx], "-"),
		Value:    strings.TrimSuffix(class[bracketIdx+1:], "]"),
	}
}

// parseUtility maps a named utility class to property values.
func parseUtility(class string) []any {
	if r, ok := radii[class]; ok {
		return []any{CornerRadius{r}}
	}
	switch class {
	case "border":
		return []any{BorderWidth{1}}
	case "font-sans":
		return []any{FontFamily{text.DefaultFamily}}
	case "font-mono":
		return []any{FontFamily{text.MonoFamily}}
	}

	prefix, rest, ok := strings.Cut(class, "-")
	if !ok {
		return nil
	}
	switch prefix {
	case "bg":
		if c, ok := LookupColor(rest); ok {
			return []any{Background{c}}
		}
	case "text":
		if sz, ok := fontSizes[rest]; ok {
			return []any{FontSize{sz}}
		}
		if c, ok := LookupColor(rest); ok {
			return []any{TextColor{c}}
		}
	case "border":
		if w, err := strconv.ParseFloat(rest, 64); err == nil {
			return []any{BorderWidth{w}}
		}
		if c, ok := LookupColor(rest); ok {
			return []any{BorderColor{c}}
		}
	case "cursor":
		if icon, ok := retained.ParseCursor(rest); ok {
			return []any{Cursor{icon}}
		}
	default:
		if sides, ok := paddingSides[prefix]; ok {
			if v, ok := parseSpacing(rest); ok {
				return []any{paddingEdit{sides, v}}
			}
		}
	}
	return nil
}

// parseArbitraryValue converts a bracketed value to property values.
func parseArbitraryValue(arb *ArbitraryValue) []any {
	switch arb.Property {
	case "bg":
		if c, ok := parseColor(arb.Value); ok {
			return []any{Background{c}}
		}
	case "text":
		if c, ok := parseColor(arb.Value); ok {
			return []any{TextColor{c}}
		}
		if v, ok := parseDimension(arb.Value); ok {
			return []any{FontSize{v}}
		}
	case "border":
		if c, ok := parseColor(arb.Value); ok {
			return []any{BorderColor{c}}
		}
		if v, ok := parseDimension(arb.Value); ok {
			return []any{BorderWidth{v}}
		}
	case "rounded":
		if v, ok := parseDimension(arb.Value); ok {
			return []any{CornerRadius{v}}
		}
	case "font":
		// Underscores stand in for spaces, as in Tailwind.
		return []any{FontFamily{strings.ReplaceAll(arb.Value, "_", " ")}}
	case "cursor":
		if icon, ok := retained.ParseCursor(arb.Value); ok {
			return []any{Cursor{icon}}
		}
	default:
		if sides, ok := paddingSides[arb.Property]; ok {
			if v, ok := parseDimension(arb.Value); ok {
				return []any{paddingEdit{sides, v}}
			}
		}
	}
	return nil
}

// parseSpacing parses a step on the spacing scale ("4", "0.5", "px").
func parseSpacing(value string) (float64, bool) {
	if value == "px" {
		return 1, true
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n * spacingUnit, true
}

// parseDimension parses CSS lengths: px, rem, em or a bare number of pixels.
func parseDimension(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "rem"):
		value = strings.TrimSuffix(value, "rem")
		multiplier = 16 // 1rem = 16px
	case strings.HasSuffix(value, "em"):
		value = strings.TrimSuffix(value, "em")
		multiplier = 16
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n * multiplier, true
}
