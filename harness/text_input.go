package harness

import (
	"reflect"

	"github.com/gogpu/gg"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/tw"
)

// DefaultTextInputClasses is the look NewTextInputPod gives a field when no
// classes are passed.
const DefaultTextInputClasses = "bg-white border border-gray-300 focus:border-blue-500 " +
	"rounded-md px-2 py-1 text-gray-900 disabled:bg-gray-100 disabled:text-gray-400"

// MinTextInputWidth is the width of an empty field.
const MinTextInputWidth = 120.0

// TextChanged is submitted after every edit.
type TextChanged struct{ Text string }

// TextSubmitted is submitted when Enter is pressed.
type TextSubmitted struct{ Text string }

// TextInput is a focusable single-line text field. Typed text arrives as
// IME commits; editing keys arrive as KeyDown events.
type TextInput struct {
	retained.WidgetBase
	buf         *TextBuffer
	placeholder string
	// Uncommitted IME composition, drawn at the caret.
	preedit string
}

// NewTextInput returns an empty field showing placeholder.
func NewTextInput(placeholder string) *TextInput {
	return &TextInput{buf: NewTextBuffer(""), placeholder: placeholder}
}

// NewTextInputPod returns a pod for a field styled with classes, or with
// DefaultTextInputClasses when classes is empty.
func NewTextInputPod(placeholder, classes string, opts ...retained.PodOption) *retained.WidgetPod {
	if classes == "" {
		classes = DefaultTextInputClasses
	}
	return StyledPod(NewTextInput(placeholder), classes, opts...)
}

// Buffer exposes the editing model. Changes made through it directly must be
// followed by a relayout.
func (t *TextInput) Buffer() *TextBuffer { return t.buf }

func (t *TextInput) Text() string    { return t.buf.Text() }
func (t *TextInput) Preedit() string { return t.preedit }

// SetText replaces the content and clears the undo history.
func (t *TextInput) SetText(ctx *retained.MutateCtx, text string) {
	t.buf.SetText(text)
	t.changed(ctx)
}

type invalidator interface {
	RequestLayout()
	RequestPaint()
	RequestAccessibility()
}

func (t *TextInput) changed(ctx invalidator) {
	ctx.RequestLayout()
	ctx.RequestPaint()
	ctx.RequestAccessibility()
}

// ============================================================================
// Events
// ============================================================================

func (t *TextInput) OnPointerEvent(ctx *retained.EventCtx, e *retained.PointerEvent) {
	if e.Kind != retained.PointerDown || e.Button != retained.MouseButtonLeft {
		return
	}
	ctx.RequestFocus()
	t.buf.place(t.caretIndexAt(ctx, ctx.ToLocal(e.Position).X), e.Modifiers.Shift())
	t.changed(ctx)
	ctx.SetHandled()
}

// caretIndexAt returns the caret position closest to local x.
func (t *TextInput) caretIndexAt(ctx *retained.EventCtx, x float64) int {
	f := resolveFont(ctx)
	fonts := ctx.Fonts()
	x -= tw.Resolve[tw.Padding](ctx).Insets.Left
	display := []rune(t.buf.DisplayText())
	prev := 0.0
	for i := 1; i <= len(display); i++ {
		adv := fonts.Advance(string(display[:i]), f.family, f.size)
		if x < (prev+adv)/2 {
			return i - 1
		}
		prev = adv
	}
	return len(display)
}

func (t *TextInput) OnTextEvent(ctx *retained.EventCtx, e *retained.TextEvent) {
	if ctx.Target() != ctx.WidgetID() {
		return
	}
	switch e.Kind {
	case retained.ImePreedit:
		t.preedit = e.Text
		t.changed(ctx)
		ctx.SetHandled()
	case retained.ImeCommit:
		t.preedit = ""
		t.edit(ctx, t.buf.Insert(e.Text))
		ctx.SetHandled()
	case retained.ImeDisabled:
		if t.preedit != "" {
			t.preedit = ""
			t.changed(ctx)
		}
	case retained.KeyDown:
		if t.onKey(ctx, e) {
			ctx.SetHandled()
		}
	}
}

// onKey handles editing keys. Tab is left alone so it moves focus.
func (t *TextInput) onKey(ctx *retained.EventCtx, e *retained.TextEvent) bool {
	shift := e.Modifiers.Shift()
	word := e.Modifiers.Alt() || e.Modifiers.Ctrl()
	command := e.Modifiers.Ctrl() || e.Modifiers.Super()

	switch e.Key {
	case retained.KeyBackspace:
		if word {
			t.edit(ctx, t.buf.DeleteWord(false))
		} else {
			t.edit(ctx, t.buf.Delete(-1))
		}
	case retained.KeyDelete:
		if word {
			t.edit(ctx, t.buf.DeleteWord(true))
		} else {
			t.edit(ctx, t.buf.Delete(1))
		}
	case retained.KeyArrowLeft:
		if word {
			t.buf.MoveWord(false, shift)
		} else {
			t.buf.MoveCursor(-1, shift)
		}
		t.changed(ctx)
	case retained.KeyArrowRight:
		if word {
			t.buf.MoveWord(true, shift)
		} else {
			t.buf.MoveCursor(1, shift)
		}
		t.changed(ctx)
	case retained.KeyHome:
		t.buf.MoveToStart(shift)
		t.changed(ctx)
	case retained.KeyEnd:
		t.buf.MoveToEnd(shift)
		t.changed(ctx)
	case retained.KeyEnter:
		if e.Repeat {
			return true
		}
		ctx.SubmitAction(TextSubmitted{Text: t.buf.Text()})
	case retained.KeyEscape:
		if !ctx.IsFocusTarget() {
			return false
		}
		ctx.ResignFocus()
	case "a":
		if !command {
			return false
		}
		t.buf.SelectAll()
		t.changed(ctx)
	case "z":
		if !command {
			return false
		}
		if shift {
			t.edit(ctx, t.buf.Redo())
		} else {
			t.edit(ctx, t.buf.Undo())
		}
	case "y":
		if !command {
			return false
		}
		t.edit(ctx, t.buf.Redo())
	default:
		return false
	}
	return true
}

// edit invalidates the field and reports the new text when changed is set.
func (t *TextInput) edit(ctx *retained.EventCtx, changed bool) {
	if !changed {
		return
	}
	t.changed(ctx)
	ctx.SubmitAction(TextChanged{Text: t.buf.Text()})
}

func (t *TextInput) OnAccessEvent(ctx *retained.EventCtx, e *retained.AccessEvent) {
	if e.Action == retained.AccessClick && ctx.Target() == ctx.WidgetID() {
		ctx.RequestFocus()
		ctx.SetHandled()
	}
}

func (t *TextInput) Update(ctx *retained.UpdateCtx, u retained.Update) {
	restyleOnStatus(ctx, u)
	if u.Kind == retained.FocusChanged && !u.Value && t.preedit != "" {
		t.preedit = ""
		ctx.RequestLayout()
	}
}

func (t *TextInput) PropertyChanged(ctx *retained.UpdateCtx, prop reflect.Type) {
	restyleOnChange(ctx, prop)
}

// ============================================================================
// Layout and Paint
// ============================================================================

// shown is the display text with the preedit spliced in at the caret.
func (t *TextInput) shown() (text string, caret int) {
	display := []rune(t.buf.DisplayText())
	c := t.buf.Cursor()
	pre := []rune(t.preedit)
	out := make([]rune, 0, len(display)+len(pre))
	out = append(out, display[:c]...)
	out = append(out, pre...)
	out = append(out, display[c:]...)
	return string(out), c + len(pre)
}

func (t *TextInput) Layout(ctx *retained.LayoutCtx, bc retained.BoxConstraints) retained.Size {
	pad := tw.Resolve[tw.Padding](ctx).Insets
	f := resolveFont(ctx)
	fonts := ctx.Fonts()
	line := fonts.Measure("", f.family, f.size, 0)

	text, caret := t.shown()
	caretX := pad.Left + fonts.Advance(string([]rune(text)[:caret]), f.family, f.size)
	if text == "" {
		text = t.placeholder
	}
	width := max(fonts.Advance(text, f.family, f.size), MinTextInputWidth)

	ctx.SetBaselineOffset(pad.Top + line.Baseline)
	ctx.SetIMEArea(retained.Rect{X0: caretX, Y0: pad.Top, X1: caretX + 1, Y1: pad.Top + line.Height})
	return bc.Constrain(retained.Size{
		Width:  width + pad.Left + pad.Right,
		Height: line.Height + pad.Top + pad.Bottom,
	})
}

func (t *TextInput) Paint(ctx *retained.PaintCtx, p *retained.Painter) {
	paintStyledBox(ctx, p)
	pad := tw.Resolve[tw.Padding](ctx).Insets
	f := resolveFont(ctx)
	fonts := ctx.Fonts()
	line := fonts.Measure("", f.family, f.size, 0)
	size := ctx.Size()

	p.PushClip(retained.Rect{X0: pad.Left, Y0: 0, X1: size.Width - pad.Right, Y1: size.Height})
	defer p.PopClip()

	advance := func(s []rune) float64 { return pad.Left + fonts.Advance(string(s), f.family, f.size) }
	text, caret := t.shown()
	runes := []rune(text)

	if t.buf.HasSelection() && t.preedit == "" {
		start, end := t.buf.Selection()
		p.FillRect(retained.Rect{
			X0: advance(runes[:start]), Y0: pad.Top,
			X1: advance(runes[:end]), Y1: pad.Top + line.Height,
		}, selectionColor)
	}

	baseline := gg.Point{X: pad.Left, Y: ctx.BaselineOffset()}
	if text == "" {
		p.DrawText(t.placeholder, baseline, f.family, f.size, placeholderColor)
	} else {
		p.DrawText(text, baseline, f.family, f.size, textColor(ctx))
	}

	if t.preedit != "" {
		start := caret - len([]rune(t.preedit))
		y := ctx.BaselineOffset() + 1
		p.FillRect(retained.Rect{X0: advance(runes[:start]), Y0: y, X1: advance(runes[:caret]), Y1: y + 1}, textColor(ctx))
	}

	if ctx.IsFocusTarget() {
		x := advance(runes[:caret])
		p.FillRect(retained.Rect{X0: x, Y0: pad.Top, X1: x + 1, Y1: pad.Top + line.Height}, textColor(ctx))
	}
}

var (
	selectionColor   = gg.RGBA{R: 0.23, G: 0.51, B: 0.96, A: 0.3}
	placeholderColor = gg.RGBA{R: 0.61, G: 0.64, B: 0.69, A: 1}
)

func (t *TextInput) AccessRole() retained.AccessRole { return retained.RoleTextInput }

func (t *TextInput) Accessibility(_ *retained.AccessCtx, node *retained.AccessNode) {
	node.Label = t.placeholder
	node.Value = t.buf.DisplayText()
}

func (t *TextInput) AcceptsFocus() bool     { return true }
func (t *TextInput) AcceptsTextInput() bool { return true }

func (t *TextInput) Cursor(ctx *retained.QueryCtx, _ gg.Point) retained.CursorIcon {
	if retained.HasProp[tw.Cursor](ctx) {
		return tw.Resolve[tw.Cursor](ctx).Icon
	}
	return retained.CursorText
}
