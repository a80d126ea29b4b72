package harness

import (
	"fmt"
	"reflect"
	"time"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
)

// Record is one observed call into a widget.
type Record struct {
	Method string
	Detail string
}

func (r Record) String() string {
	if r.Detail == "" {
		return r.Method
	}
	return r.Method + "(" + r.Detail + ")"
}

// UpdateRecord is the Record a Recorder logs for u.
func UpdateRecord(kind retained.UpdateKind, value bool) Record {
	return Record{Method: "Update", Detail: fmt.Sprintf("%s=%t", kind, value)}
}

// Recording is a shared log of widget calls, in call order.
type Recording struct {
	records []Record
}

func (r *Recording) push(method, detail string) {
	r.records = append(r.records, Record{method, detail})
}

// Len returns the number of unread records.
func (r *Recording) Len() int { return len(r.records) }

// Clear drops every record.
func (r *Recording) Clear() { r.records = nil }

// Drain returns and clears every record.
func (r *Recording) Drain() []Record {
	out := r.records
	r.records = nil
	return out
}

// DrainMethod returns and clears the records, keeping only calls to the
// named methods.
func (r *Recording) DrainMethod(methods ...string) []Record {
	var out []Record
	for _, rec := range r.Drain() {
		for _, m := range methods {
			if rec.Method == m {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Recorder wraps a widget and logs every call the engine makes into it
// before forwarding.
type Recorder struct {
	retained.Widget
	rec *Recording
}

// NewRecorder wraps w and returns the wrapper with its log.
func NewRecorder(w retained.Widget) (*Recorder, *Recording) {
	rec := &Recording{}
	return &Recorder{Widget: w, rec: rec}, rec
}

// RecordInto wraps w, logging into an existing Recording.
func RecordInto(w retained.Widget, rec *Recording) *Recorder {
	return &Recorder{Widget: w, rec: rec}
}

// Inner returns the wrapped widget.
func (r *Recorder) Inner() retained.Widget { return r.Widget }

func (r *Recorder) RegisterChildren(ctx *retained.RegisterCtx) {
	r.rec.push("RegisterChildren", "")
	r.Widget.RegisterChildren(ctx)
}

func (r *Recorder) OnPointerEvent(ctx *retained.EventCtx, e *retained.PointerEvent) {
	r.rec.push("PointerEvent", e.Kind.String())
	r.Widget.OnPointerEvent(ctx, e)
}

func (r *Recorder) OnTextEvent(ctx *retained.EventCtx, e *retained.TextEvent) {
	detail := e.Key
	if detail == "" {
		detail = e.Text
	}
	r.rec.push("TextEvent", detail)
	r.Widget.OnTextEvent(ctx, e)
}

func (r *Recorder) OnAccessEvent(ctx *retained.EventCtx, e *retained.AccessEvent) {
	r.rec.push("AccessEvent", fmt.Sprint(e.Action))
	r.Widget.OnAccessEvent(ctx, e)
}

func (r *Recorder) OnAnimFrame(ctx *retained.UpdateCtx, interval time.Duration) {
	r.rec.push("AnimFrame", interval.String())
	r.Widget.OnAnimFrame(ctx, interval)
}

func (r *Recorder) Update(ctx *retained.UpdateCtx, u retained.Update) {
	r.rec.records = append(r.rec.records, UpdateRecord(u.Kind, u.Value))
	r.Widget.Update(ctx, u)
}

func (r *Recorder) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	r.rec.push("PropertyChanged", prop.String())
	r.Widget.PropertyChanged(ctx, prop)
}

func (r *Recorder) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	r.rec.push("Layout", "")
	return r.Widget.Layout(ctx, bc)
}

func (r *Recorder) Compose(ctx *retained.ComposeCtx) {
	r.rec.push("Compose", "")
	r.Widget.Compose(ctx)
}

func (r *Recorder) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	r.rec.push("Paint", "")
	r.Widget.Paint(ctx, p)
}

func (r *Recorder) Accessibility(ctx *retained.AccessCtx, node *retained.AccessNode) {
	r.rec.push("Accessibility", "")
	r.Widget.Accessibility(ctx, node)
}

func (r *Recorder) Cursor(ctx *retained.QueryCtx, pos gg.Point) retained.CursorIcon {
	return r.Widget.Cursor(ctx, pos)
}

// OnAction forwards to the wrapped widget when it handles actions.
func (r *Recorder) OnAction(ctx *retained.EventCtx, action retained.Action, source retained.WidgetID) bool {
	r.rec.push("Action", fmt.Sprint(action))
	if h, ok := r.Widget.(retained.ActionHandler); ok {
		return h.OnAction(ctx, action, source)
	}
	return false
}
