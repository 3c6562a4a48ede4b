package editor

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Buffer manages the text content of a single open document as an ordered
// sequence of lines. Line breaks are structural: no line ever stores a
// trailing newline. A buffer always holds at least one line; an empty
// document is a single empty line.
//
// All mutating operations validate their positions strictly and either fully
// apply or fully reject. Every applied mutation bumps the version counter,
// re-clamps the cursor and selection, and notifies invalidation listeners
// with the first changed line.
type Buffer struct {
	fs        afero.Fs
	path      string // absolute path, or "" if untitled
	lines     [][]rune
	savedText string // text at last save/open (for dirty comparison)
	crlf      bool   // file used CRLF line endings on load
	version   uint64

	cursor Pos
	sel    Selection
	hasSel bool

	onInvalidate []func(fromLine int)
}

// NewBuffer creates a new empty, untitled buffer. If fs is nil the host
// filesystem is used.
func NewBuffer(fs afero.Fs) *Buffer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Buffer{
		fs:    fs,
		lines: [][]rune{nil},
	}
}

// NewBufferFromText creates an untitled buffer holding the given text.
func NewBufferFromText(fs afero.Fs, text string) *Buffer {
	b := NewBuffer(fs)
	b.lines = splitLines(normalizeNewlines(text))
	return b
}

// Open reads the file at path into the buffer, replacing any existing
// content. Line endings are normalized on load; the original convention is
// remembered for save. The stored path is converted to an absolute path.
func (b *Buffer) Open(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(b.fs, absPath)
	if err != nil {
		return err
	}

	text := string(data)
	b.crlf = strings.Contains(text, "\r\n")
	text = normalizeNewlines(text)

	b.path = absPath
	b.lines = splitLines(text)
	b.savedText = text
	b.cursor = Pos{}
	b.hasSel = false
	b.afterEdit(0)
	return nil
}

// Save writes the current text to the stored path, restoring the line-ending
// convention the file was loaded with. Returns ErrNoPath for untitled
// buffers.
func (b *Buffer) Save() error {
	if b.path == "" {
		return ErrNoPath
	}
	return b.writeTo(b.path)
}

// SaveAs writes the current text to the given path, updates the stored path,
// and marks the buffer as clean.
func (b *Buffer) SaveAs(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := b.writeTo(absPath); err != nil {
		return err
	}
	b.path = absPath
	return nil
}

func (b *Buffer) writeTo(path string) error {
	text := b.Text()
	out := text
	if b.crlf {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	if err := afero.WriteFile(b.fs, path, []byte(out), 0644); err != nil {
		return err
	}
	b.savedText = text
	return nil
}

// Path returns the absolute file path, or "" if the buffer is untitled.
func (b *Buffer) Path() string {
	return b.path
}

// Untitled reports whether the buffer has no associated file path.
func (b *Buffer) Untitled() bool {
	return b.path == ""
}

// Title returns the base filename, or "untitled" if the buffer has no path.
func (b *Buffer) Title() string {
	if b.path == "" {
		return "untitled"
	}
	return filepath.Base(b.path)
}

// Dirty reports whether the buffer's text differs from the last saved/opened
// text.
func (b *Buffer) Dirty() bool {
	return b.Text() != b.savedText
}

// LineEnding returns "CRLF" or "LF" for status display.
func (b *Buffer) LineEnding() string {
	if b.crlf {
		return "CRLF"
	}
	return "LF"
}

// Version returns the mutation counter. It increments on every applied text
// change and is the staleness check for any cached or asynchronously derived
// data.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Text returns the full document text with lines joined by "\n".
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// SetText replaces the entire buffer content. Dirty status is still computed
// against the last saved text.
func (b *Buffer) SetText(text string) {
	b.lines = splitLines(normalizeNewlines(text))
	b.afterEdit(0)
}

// LineCount returns the number of lines, always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i without its line break, or "" if i is out
// of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// LineLen returns the rune length of line i, or 0 if i is out of range.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// CharAt returns the character at pos. A position at the end of a non-final
// line reads as '\n' (the structural line break). Positions outside the
// document return false.
func (b *Buffer) CharAt(p Pos) (rune, bool) {
	if p.Line < 0 || p.Line >= len(b.lines) || p.Col < 0 {
		return 0, false
	}
	line := b.lines[p.Line]
	if p.Col < len(line) {
		return line[p.Col], true
	}
	if p.Col == len(line) && p.Line < len(b.lines)-1 {
		return '\n', true
	}
	return 0, false
}

// ClampPos clamps p into document bounds: 0 <= Line < LineCount and
// 0 <= Col <= line length.
func (b *Buffer) ClampPos(p Pos) Pos {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := len(b.lines[p.Line]); p.Col > max {
		p.Col = max
	}
	return p
}

// Advance moves p forward by n characters (backward if n is negative), with
// line breaks counting as one character. The result is clamped to document
// bounds.
func (b *Buffer) Advance(p Pos, n int) Pos {
	off := b.OffsetForPosition(b.ClampPos(p)) + n
	return b.PositionForOffset(off)
}

// PositionForOffset converts a rune offset (line breaks counting as one
// rune) into a position, clamping to document bounds.
func (b *Buffer) PositionForOffset(off int) Pos {
	if off < 0 {
		return Pos{}
	}
	for i, line := range b.lines {
		if off <= len(line) {
			return Pos{Line: i, Col: off}
		}
		off -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Pos{Line: last, Col: len(b.lines[last])}
}

// OffsetForPosition converts a position into a rune offset. The position is
// clamped first.
func (b *Buffer) OffsetForPosition(p Pos) int {
	p = b.ClampPos(p)
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(b.lines[i]) + 1
	}
	return off + p.Col
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// SetCursor moves the cursor, clamping into document bounds.
func (b *Buffer) SetCursor(p Pos) {
	b.cursor = b.ClampPos(p)
}

// Selection returns the active selection, if any. The anchor may be after
// the head (reverse selection); Ordered puts the range in document order.
func (b *Buffer) Selection() (Selection, bool) {
	if !b.hasSel {
		return Selection{}, false
	}
	return b.sel, true
}

// SetSelection sets the selection from anchor to head, clamping both into
// bounds. An empty selection clears instead.
func (b *Buffer) SetSelection(anchor, head Pos) {
	anchor = b.ClampPos(anchor)
	head = b.ClampPos(head)
	if anchor == head {
		b.hasSel = false
		return
	}
	b.sel = Selection{Anchor: anchor, Head: head}
	b.hasSel = true
}

// ClearSelection deactivates the selection.
func (b *Buffer) ClearSelection() {
	b.hasSel = false
}

// OnInvalidate registers a listener called with the first changed line after
// every applied mutation. Listeners drop derived state (highlight resume
// states, minimap rows) from that line onward.
func (b *Buffer) OnInvalidate(fn func(fromLine int)) {
	b.onInvalidate = append(b.onInvalidate, fn)
}

// Insert inserts text at pos and returns the range the inserted text now
// occupies. Multi-line text splits the line at pos: the tail of the original
// line moves to the end of the last inserted line. Returns
// ErrInvalidPosition, leaving the buffer untouched, if pos is out of bounds.
func (b *Buffer) Insert(pos Pos, text string) (Range, error) {
	if err := b.validatePos(pos); err != nil {
		return Range{}, err
	}
	if text == "" {
		return Range{Start: pos, End: pos}, nil
	}
	_, inserted := b.splice(Range{Start: pos, End: pos}, normalizeNewlines(text))
	b.afterEdit(pos.Line)
	return inserted, nil
}

// Delete removes the text in rng (end exclusive) and returns it. A range
// spanning multiple lines joins the remainder into one line. Deleting the
// full content of the last remaining line leaves a single empty line.
// Returns ErrInvalidPosition, leaving the buffer untouched, if either
// endpoint is out of bounds.
func (b *Buffer) Delete(rng Range) (string, error) {
	if err := b.validatePos(rng.Start); err != nil {
		return "", err
	}
	if err := b.validatePos(rng.End); err != nil {
		return "", err
	}
	rng = rng.Normalized()
	deleted, _ := b.splice(rng, "")
	b.afterEdit(rng.Start.Line)
	return deleted, nil
}

// Replace substitutes the text in rng with text in a single operation and
// returns the range the replacement occupies.
func (b *Buffer) Replace(rng Range, text string) (Range, error) {
	if err := b.validatePos(rng.Start); err != nil {
		return Range{}, err
	}
	if err := b.validatePos(rng.End); err != nil {
		return Range{}, err
	}
	rng = rng.Normalized()
	_, inserted := b.splice(rng, normalizeNewlines(text))
	b.afterEdit(rng.Start.Line)
	return inserted, nil
}

// TextRange returns the text covered by rng without modifying the buffer.
func (b *Buffer) TextRange(rng Range) (string, error) {
	if err := b.validatePos(rng.Start); err != nil {
		return "", err
	}
	if err := b.validatePos(rng.End); err != nil {
		return "", err
	}
	return b.textIn(rng.Normalized()), nil
}

// splice replaces the (validated, normalized) range with text, which may
// contain line breaks. Returns the deleted text and the range the insertion
// occupies.
func (b *Buffer) splice(r Range, text string) (deleted string, inserted Range) {
	deleted = b.textIn(r)

	prefix := append([]rune(nil), b.lines[r.Start.Line][:r.Start.Col]...)
	suffix := append([]rune(nil), b.lines[r.End.Line][r.End.Col:]...)

	parts := strings.Split(text, "\n")
	repl := make([][]rune, 0, len(parts))
	var end Pos
	if len(parts) == 1 {
		mid := []rune(parts[0])
		line := make([]rune, 0, len(prefix)+len(mid)+len(suffix))
		line = append(line, prefix...)
		line = append(line, mid...)
		line = append(line, suffix...)
		repl = append(repl, line)
		end = Pos{Line: r.Start.Line, Col: len(prefix) + len(mid)}
	} else {
		first := append(prefix, []rune(parts[0])...)
		repl = append(repl, first)
		for _, p := range parts[1 : len(parts)-1] {
			repl = append(repl, []rune(p))
		}
		lastPart := []rune(parts[len(parts)-1])
		last := make([]rune, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)
		end = Pos{Line: r.Start.Line + len(parts) - 1, Col: len(lastPart)}
	}

	out := make([][]rune, 0, r.Start.Line+len(repl)+len(b.lines)-r.End.Line-1)
	out = append(out, b.lines[:r.Start.Line]...)
	out = append(out, repl...)
	out = append(out, b.lines[r.End.Line+1:]...)
	b.lines = out

	return deleted, Range{Start: r.Start, End: end}
}

func (b *Buffer) textIn(r Range) string {
	if r.Start.Line == r.End.Line {
		return string(b.lines[r.Start.Line][r.Start.Col:r.End.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[r.Start.Line][r.Start.Col:]))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[r.End.Line][:r.End.Col]))
	return sb.String()
}

func (b *Buffer) validatePos(p Pos) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrInvalidPosition
	}
	if p.Col < 0 || p.Col > len(b.lines[p.Line]) {
		return ErrInvalidPosition
	}
	return nil
}

// afterEdit restores the buffer invariants after a mutation: cursor and
// selection back in bounds, version bumped, derived state invalidated from
// the first changed line.
func (b *Buffer) afterEdit(fromLine int) {
	b.version++
	b.cursor = b.ClampPos(b.cursor)
	if b.hasSel {
		anchor := b.ClampPos(b.sel.Anchor)
		head := b.ClampPos(b.sel.Head)
		if anchor == head {
			b.hasSel = false
		} else {
			b.sel = Selection{Anchor: anchor, Head: head}
		}
	}
	for _, fn := range b.onInvalidate {
		fn(fromLine)
	}
}

// normalizeNewlines rewrites CRLF and lone CR line breaks to "\n".
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, []rune(p))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}
