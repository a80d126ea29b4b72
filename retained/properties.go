package retained

import (
	"reflect"
)

// Properties holds per-widget style values keyed by their Go type. Each
// property type is its own small struct, e.g. tw.Background.
type Properties map[reflect.Type]any

// NewProperties builds a property set from values.
func NewProperties(values ...any) Properties {
	p := make(Properties, len(values))
	for _, v := range values {
		p[reflect.TypeOf(v)] = v
	}
	return p
}

// DefaultProperties supplies fallback values per widget type. A nil widget
// type applies to every widget.
type DefaultProperties struct {
	byWidget map[reflect.Type]Properties
}

// NewDefaultProperties returns an empty table.
func NewDefaultProperties() *DefaultProperties {
	return &DefaultProperties{byWidget: make(map[reflect.Type]Properties)}
}

// Insert sets the default value for a property on widgets of type
// widgetType. Pass nil for a global default. The zero table is ready to use.
func (d *DefaultProperties) Insert(widgetType reflect.Type, value any) {
	if d.byWidget == nil {
		d.byWidget = make(map[reflect.Type]Properties)
	}
	props, ok := d.byWidget[widgetType]
	if !ok {
		props = make(Properties)
		d.byWidget[widgetType] = props
	}
	props[reflect.TypeOf(value)] = value
}

func (d *DefaultProperties) lookup(widgetType, prop reflect.Type) (any, bool) {
	if d == nil {
		return nil, false
	}
	if v, ok := d.byWidget[widgetType][prop]; ok {
		return v, true
	}
	v, ok := d.byWidget[nil][prop]
	return v, ok
}

// PropertyReader is implemented by every context.
type PropertyReader interface {
	lookupProp(t reflect.Type) (any, bool)
}

func propType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetProp returns the widget's value for property T, falling back to the
// default table and then to the zero value.
func GetProp[T any](ctx PropertyReader) T {
	v, ok := ctx.lookupProp(propType[T]())
	if !ok {
		var zero T
		return zero
	}
	return v.(T)
}

// HasProp reports whether property T is set on the widget or has a default.
func HasProp[T any](ctx PropertyReader) bool {
	_, ok := ctx.lookupProp(propType[T]())
	return ok
}

// InsertProp sets property T on the widget and notifies it through
// Widget.PropertyChanged.
func InsertProp[T any](ctx *MutateCtx, value T) {
	t := propType[T]()
	if ctx.n.props == nil {
		ctx.n.props = make(Properties)
	}
	ctx.n.props[t] = value
	ctx.propertyChanged(t)
}

// RemoveProp clears property T on the widget. It reports whether it was set.
func RemoveProp[T any](ctx *MutateCtx) bool {
	t := propType[T]()
	if _, ok := ctx.n.props[t]; !ok {
		return false
	}
	delete(ctx.n.props, t)
	ctx.propertyChanged(t)
	return true
}

// InsertProperties sets every value in props on the widget. PropertyChanged
// runs once per property type.
func (c *MutateCtx) InsertProperties(props Properties) {
	if c.n.props == nil {
		c.n.props = make(Properties, len(props))
	}
	for t, v := range props {
		c.n.props[t] = v
		c.propertyChanged(t)
	}
}
