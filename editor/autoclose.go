package editor

// autoClosePairs maps characters that trigger pair insertion to their
// closers.
var autoClosePairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'"':  '"',
	'\'': '\'',
	'`':  '`',
}

// AutoCloser intercepts single-character insertions to insert matching
// closing punctuation and to skip over closers it inserted itself.
//
// Type-over is conservative: each auto-inserted closer is recorded with the
// position it guards, and typing a closer only skips when the cursor still
// sits at that position, the buffer has not changed underneath it, and the
// guarded closer is the one being typed. A closer the user typed manually is
// never skipped over.
type AutoCloser struct {
	enabled bool
	pending []rune // unconsumed auto-inserted closers, innermost first
	pos     Pos    // cursor position the pending closers guard
	version uint64 // buffer version the guard was recorded at
}

// NewAutoCloser creates an AutoCloser. When disabled it degrades to plain
// insertion.
func NewAutoCloser(enabled bool) *AutoCloser {
	return &AutoCloser{enabled: enabled}
}

// Reset drops any pending closers, e.g. when switching tabs.
func (a *AutoCloser) Reset() {
	a.pending = nil
}

// Type applies one typed character at the buffer's cursor.
//
//   - Opening bracket/quote, no selection: inserts the pair, cursor between.
//   - Opening bracket/quote, active selection: surrounds the selection.
//   - Pending closer typed at its guarded position: cursor moves past it.
//   - Anything else: plain insertion, replacing the selection if active.
func (a *AutoCloser) Type(b *Buffer, ch rune) error {
	cur := b.Cursor()
	inContext := len(a.pending) > 0 && cur == a.pos && b.Version() == a.version
	if !inContext {
		a.pending = nil
	}

	if inContext && ch == a.pending[0] {
		if next, ok := b.CharAt(cur); ok && next == ch {
			b.SetCursor(Pos{Line: cur.Line, Col: cur.Col + 1})
			a.pending = a.pending[1:]
			a.pos = b.Cursor()
			a.version = b.Version()
			return nil
		}
	}

	closer, isOpener := autoClosePairs[ch]
	sel, hasSel := b.Selection()

	if a.enabled && isOpener {
		if hasSel {
			return a.surround(b, sel, ch, closer)
		}
		if _, err := b.Insert(cur, string(ch)+string(closer)); err != nil {
			return err
		}
		b.SetCursor(Pos{Line: cur.Line, Col: cur.Col + 1})
		if inContext {
			a.pending = append([]rune{closer}, a.pending...)
		} else {
			a.pending = []rune{closer}
		}
		a.pos = b.Cursor()
		a.version = b.Version()
		return nil
	}

	if hasSel {
		rng, err := b.Replace(sel.Ordered(), string(ch))
		if err != nil {
			return err
		}
		b.ClearSelection()
		b.SetCursor(rng.End)
		a.pending = nil
		return nil
	}

	rng, err := b.Insert(cur, string(ch))
	if err != nil {
		return err
	}
	b.SetCursor(rng.End)
	if inContext && len(a.pending) > 0 {
		// The pending closer slid one column right with the insertion and is
		// still immediately after the cursor.
		a.pos = b.Cursor()
		a.version = b.Version()
	}
	return nil
}

// surround wraps the selection in the pair without deleting the selected
// text, keeping it selected between the new delimiters.
func (a *AutoCloser) surround(b *Buffer, sel Selection, open, close rune) error {
	r := sel.Ordered()
	// Closer first: inserting at End leaves Start untouched.
	if _, err := b.Insert(r.End, string(close)); err != nil {
		return err
	}
	if _, err := b.Insert(r.Start, string(open)); err != nil {
		return err
	}
	innerStart := Pos{Line: r.Start.Line, Col: r.Start.Col + 1}
	innerEnd := r.End
	if r.End.Line == r.Start.Line {
		innerEnd.Col++
	}
	b.SetSelection(innerStart, innerEnd)
	b.SetCursor(innerEnd)
	a.pending = nil
	return nil
}
