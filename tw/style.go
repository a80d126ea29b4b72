package tw

import (
	"maps"
	"reflect"

	"github.com/agiangrant/trellis/retained"
)

// Style is a parsed class string: one property layer per interaction state.
// The default layer becomes ordinary widget properties; the other layers are
// consulted by Resolve while the widget is in that state.
type Style struct {
	layers [stateCount]retained.Properties
}

var paddingType = reflect.TypeOf(Padding{})

func (s *Style) set(state State, v any) {
	if s.layers[state] == nil {
		s.layers[state] = make(retained.Properties)
	}
	if e, ok := v.(paddingEdit); ok {
		cur, ok := s.layers[state][paddingType].(Padding)
		if !ok && state != StateDefault {
			// A variant padding starts from the resting padding.
			cur, _ = s.layers[StateDefault][paddingType].(Padding)
		}
		v = Padding{e.apply(cur.Insets)}
	}
	s.layers[state][reflect.TypeOf(v)] = v
}

// Layer returns a copy of the properties set for state.
func (s Style) Layer(state State) retained.Properties {
	return maps.Clone(s.layers[state])
}

// IsEmpty reports whether no class produced a property.
func (s Style) IsEmpty() bool {
	for _, l := range s.layers {
		if len(l) > 0 {
			return false
		}
	}
	return true
}

// HasVariants reports whether any state other than the default sets a
// property.
func (s Style) HasVariants() bool {
	for st := StateHover; st < stateCount; st++ {
		if len(s.layers[st]) > 0 {
			return true
		}
	}
	return false
}

// Properties returns the default layer plus the Style itself, ready for
// retained.WithProperties or MutateCtx.InsertProperties.
func (s Style) Properties() retained.Properties {
	p := make(retained.Properties, len(s.layers[StateDefault])+1)
	maps.Copy(p, s.layers[StateDefault])
	p[reflect.TypeOf(s)] = s
	return p
}

// Apply replaces the widget's style properties with s.
func Apply(ctx *retained.MutateCtx, s Style) {
	ctx.InsertProperties(s.Properties())
}

// InstallDefaults parses classes and registers the result as the default
// style for widgets of widgetType (nil for all widgets).
func InstallDefaults(d *retained.DefaultProperties, widgetType reflect.Type, classes string) {
	for _, v := range Classes(classes).Properties() {
		d.Insert(widgetType, v)
	}
}

// Lookup returns property T from the layer for state only.
func Lookup[T any](s Style, state State) (T, bool) {
	var zero T
	v, ok := s.layers[state][reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// Context is the view of a widget Resolve needs. Every retained context
// satisfies it.
type Context interface {
	retained.PropertyReader
	IsHovered() bool
	IsActive() bool
	IsFocusTarget() bool
	IsDisabled() bool
}

// Resolve returns property T for the widget's current interaction state.
// Variant layers win over the widget's plain properties, with disabled ahead
// of active, then focus, then hover.
func Resolve[T any](ctx Context) T {
	if retained.HasProp[Style](ctx) {
		s := retained.GetProp[Style](ctx)
		for _, st := range activeStates(ctx) {
			if v, ok := Lookup[T](s, st); ok {
				return v
			}
		}
	}
	return retained.GetProp[T](ctx)
}

func activeStates(ctx Context) []State {
	states := make([]State, 0, 4)
	if ctx.IsDisabled() {
		states = append(states, StateDisabled)
	}
	if ctx.IsActive() {
		states = append(states, StateActive)
	}
	if ctx.IsFocusTarget() {
		states = append(states, StateFocus)
	}
	if ctx.IsHovered() {
		states = append(states, StateHover)
	}
	return states
}
