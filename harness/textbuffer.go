package harness

import (
	"strings"
	"unicode"
)

// defaultUndoDepth bounds the undo history.
const defaultUndoDepth = 100

type bufferSnapshot struct {
	content []rune
	cursor  int
	anchor  int
}

// TextBuffer is a single-line editing model: runes, a caret, a selection
// anchor and an undo history. Positions are rune indices; anchor == cursor
// means no selection.
type TextBuffer struct {
	content []rune
	cursor  int
	anchor  int

	maxLength int // 0 means unlimited
	password  bool

	undo []bufferSnapshot
	redo []bufferSnapshot
}

// NewTextBuffer returns a buffer holding text with the caret at the end.
func NewTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{}
	b.content = []rune(singleLine(text))
	b.cursor = len(b.content)
	b.anchor = b.cursor
	return b
}

func singleLine(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

func (b *TextBuffer) Text() string { return string(b.content) }
func (b *TextBuffer) Len() int     { return len(b.content) }
func (b *TextBuffer) Cursor() int  { return b.cursor }

// Selection returns the ordered selection bounds.
func (b *TextBuffer) Selection() (start, end int) {
	if b.anchor < b.cursor {
		return b.anchor, b.cursor
	}
	return b.cursor, b.anchor
}

func (b *TextBuffer) HasSelection() bool { return b.anchor != b.cursor }

// SelectedText returns the selected runes as a string.
func (b *TextBuffer) SelectedText() string {
	start, end := b.Selection()
	return string(b.content[start:end])
}

// SetText replaces the content without recording undo history.
func (b *TextBuffer) SetText(text string) {
	b.content = []rune(singleLine(text))
	if b.maxLength > 0 && len(b.content) > b.maxLength {
		b.content = b.content[:b.maxLength]
	}
	b.cursor = len(b.content)
	b.anchor = b.cursor
	b.undo, b.redo = nil, nil
}

// SetMaxLength limits the content to n runes. Zero removes the limit.
func (b *TextBuffer) SetMaxLength(n int) { b.maxLength = n }

// SetPassword masks DisplayText.
func (b *TextBuffer) SetPassword(on bool) { b.password = on }

// DisplayText is the text to draw: the content, or one bullet per rune in
// password mode.
func (b *TextBuffer) DisplayText() string {
	if b.password {
		return strings.Repeat("•", len(b.content))
	}
	return string(b.content)
}

// ============================================================================
// Editing
// ============================================================================

// Insert replaces the selection with text, dropping newlines and whatever
// exceeds the length limit. It reports whether the content changed.
func (b *TextBuffer) Insert(text string) bool {
	runes := []rune(singleLine(text))
	start, end := b.Selection()
	if b.maxLength > 0 {
		room := max(b.maxLength-(len(b.content)-(end-start)), 0)
		if len(runes) > room {
			runes = runes[:room]
		}
	}
	if len(runes) == 0 && start == end {
		return false
	}
	b.checkpoint()

	next := make([]rune, 0, len(b.content)-(end-start)+len(runes))
	next = append(next, b.content[:start]...)
	next = append(next, runes...)
	next = append(next, b.content[end:]...)
	b.content = next
	b.cursor = start + len(runes)
	b.anchor = b.cursor
	return true
}

// Delete removes the selection, or count runes after (count > 0) or before
// (count < 0) the caret. It reports whether the content changed.
func (b *TextBuffer) Delete(count int) bool {
	start, end := b.Selection()
	if start == end {
		start = max(min(b.cursor, b.cursor+count), 0)
		end = min(max(b.cursor, b.cursor+count), len(b.content))
	}
	return b.remove(start, end)
}

// DeleteWord removes the selection, or from the caret to the next or
// previous word boundary.
func (b *TextBuffer) DeleteWord(forward bool) bool {
	start, end := b.Selection()
	if start == end {
		if forward {
			end = b.wordEnd(b.cursor)
		} else {
			start = b.wordStart(b.cursor)
		}
	}
	return b.remove(start, end)
}

func (b *TextBuffer) remove(start, end int) bool {
	if start >= end {
		return false
	}
	b.checkpoint()
	b.content = append(b.content[:start:start], b.content[end:]...)
	b.cursor = start
	b.anchor = start
	return true
}

// ============================================================================
// Caret Movement
// ============================================================================

// MoveCursor moves the caret by delta runes. Without extend, a selection
// collapses to the edge in the direction of travel instead.
func (b *TextBuffer) MoveCursor(delta int, extend bool) {
	if !extend && b.HasSelection() {
		start, end := b.Selection()
		if delta < 0 {
			b.place(start, false)
		} else {
			b.place(end, false)
		}
		return
	}
	b.place(b.cursor+delta, extend)
}

// MoveWord moves the caret to the next or previous word boundary.
func (b *TextBuffer) MoveWord(forward, extend bool) {
	if forward {
		b.place(b.wordEnd(b.cursor), extend)
	} else {
		b.place(b.wordStart(b.cursor), extend)
	}
}

func (b *TextBuffer) MoveToStart(extend bool) { b.place(0, extend) }
func (b *TextBuffer) MoveToEnd(extend bool)   { b.place(len(b.content), extend) }

// SelectAll selects the whole content with the caret at the end.
func (b *TextBuffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.content)
}

func (b *TextBuffer) place(pos int, extend bool) {
	b.cursor = max(0, min(pos, len(b.content)))
	if !extend {
		b.anchor = b.cursor
	}
}

func (b *TextBuffer) wordStart(pos int) int {
	for pos > 0 && unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.content[pos-1]) {
		pos--
	}
	return pos
}

func (b *TextBuffer) wordEnd(pos int) int {
	n := len(b.content)
	for pos < n && unicode.IsSpace(b.content[pos]) {
		pos++
	}
	for pos < n && !unicode.IsSpace(b.content[pos]) {
		pos++
	}
	return pos
}

// ============================================================================
// Undo
// ============================================================================

func (b *TextBuffer) snapshot() bufferSnapshot {
	return bufferSnapshot{content: append([]rune(nil), b.content...), cursor: b.cursor, anchor: b.anchor}
}

func (b *TextBuffer) restore(s bufferSnapshot) {
	b.content, b.cursor, b.anchor = s.content, s.cursor, s.anchor
}

// checkpoint records the state before an edit and forgets redo history.
func (b *TextBuffer) checkpoint() {
	b.undo = append(b.undo, b.snapshot())
	if len(b.undo) > defaultUndoDepth {
		b.undo = b.undo[1:]
	}
	b.redo = nil
}

// Undo reverts the last edit. It reports whether there was one.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.redo = append(b.redo, b.snapshot())
	b.restore(b.undo[len(b.undo)-1])
	b.undo = b.undo[:len(b.undo)-1]
	return true
}

// Redo reapplies the last undone edit.
func (b *TextBuffer) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	b.undo = append(b.undo, b.snapshot())
	b.restore(b.redo[len(b.redo)-1])
	b.redo = b.redo[:len(b.redo)-1]
	return true
}
