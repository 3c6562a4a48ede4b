package editor

// Selection represents a text selection between two positions. Anchor is
// where the selection started, Head is where it currently extends to; Anchor
// may come after Head in document order (reverse selection).
type Selection struct {
	Anchor, Head Pos
}

// Active reports whether the selection covers a non-empty range.
func (s Selection) Active() bool {
	return s.Anchor != s.Head
}

// Ordered returns the selection as a range with Start <= End in document
// order.
func (s Selection) Ordered() Range {
	return Range{Start: s.Anchor, End: s.Head}.Normalized()
}

// Text extracts the selected text from the buffer.
func (s Selection) Text(b *Buffer) string {
	r := s.Ordered()
	r.Start = b.ClampPos(r.Start)
	r.End = b.ClampPos(r.End)
	text, err := b.TextRange(r)
	if err != nil {
		return ""
	}
	return text
}

// SelectAll returns a selection covering the entire buffer.
func SelectAll(b *Buffer) Selection {
	last := b.LineCount() - 1
	return Selection{
		Anchor: Pos{},
		Head:   Pos{Line: last, Col: b.LineLen(last)},
	}
}
