package editor

import (
	"strings"
	"unicode/utf8"
)

// Match is one search hit: start position plus length in runes. Matches
// never span lines.
type Match struct {
	Pos    Pos
	Length int
}

// SearchState holds one find/replace session over a buffer: the query, the
// case flag, and the most recent hit used as the anchor for next/previous
// navigation. It is created when the find panel opens and discarded when it
// closes; it does not persist across tabs.
type SearchState struct {
	Query         string
	CaseSensitive bool

	last    Match
	hasLast bool
}

// NewSearchState creates a search session.
func NewSearchState(query string, caseSensitive bool) *SearchState {
	return &SearchState{Query: query, CaseSensitive: caseSensitive}
}

// SetQuery changes the query and resets the navigation anchor.
func (s *SearchState) SetQuery(q string) {
	s.Query = q
	s.hasLast = false
}

// LastMatch returns the navigation anchor, if any.
func (s *SearchState) LastMatch() (Match, bool) {
	return s.last, s.hasLast
}

func (s *SearchState) usable() bool {
	return s.Query != "" && !strings.Contains(s.Query, "\n")
}

func (s *SearchState) queryLen() int {
	return utf8.RuneCountInString(s.Query)
}

// FindNext searches forward from just after the last match (or from the
// cursor if there is none), wrapping to the document start once. The hit
// becomes the new navigation anchor. An empty query matches nothing.
func FindNext(b *Buffer, s *SearchState) (Match, bool) {
	if !s.usable() {
		return Match{}, false
	}
	start := b.Cursor()
	if s.hasLast {
		start = Pos{Line: s.last.Pos.Line, Col: s.last.Pos.Col + s.last.Length}
	}
	start = b.ClampPos(start)

	if m, ok := searchForward(b, s, start); ok {
		s.last, s.hasLast = m, true
		return m, true
	}
	// Wrap-around, attempted exactly once.
	if m, ok := searchForward(b, s, Pos{}); ok {
		s.last, s.hasLast = m, true
		return m, true
	}
	return Match{}, false
}

// FindPrev searches backward from just before the last match (or from the
// cursor), wrapping to the document end once.
func FindPrev(b *Buffer, s *SearchState) (Match, bool) {
	if !s.usable() {
		return Match{}, false
	}
	before := b.Cursor()
	if s.hasLast {
		before = s.last.Pos
	}
	before = b.ClampPos(before)

	if m, ok := searchBackward(b, s, before); ok {
		s.last, s.hasLast = m, true
		return m, true
	}
	last := b.LineCount() - 1
	end := Pos{Line: last, Col: b.LineLen(last) + 1}
	if m, ok := searchBackward(b, s, end); ok {
		s.last, s.hasLast = m, true
		return m, true
	}
	return Match{}, false
}

// ReplaceCurrent replaces the anchored match if the buffer still holds the
// query text at that span, guarding against edits made since the match was
// found. Returns whether a replacement happened.
func ReplaceCurrent(b *Buffer, s *SearchState, replacement string) (bool, error) {
	if !s.hasLast || !s.usable() {
		return false, nil
	}
	m := s.last
	span := Range{
		Start: m.Pos,
		End:   Pos{Line: m.Pos.Line, Col: m.Pos.Col + m.Length},
	}
	current, err := b.TextRange(span)
	if err != nil || !s.textMatches(current) {
		// Stale anchor: the buffer changed underneath it.
		s.hasLast = false
		return false, nil
	}
	rng, err := b.Replace(span, replacement)
	if err != nil {
		return false, err
	}
	b.SetCursor(rng.End)
	// Keep the anchor on the replacement so FindNext continues after it.
	s.last = Match{Pos: m.Pos, Length: utf8.RuneCountInString(replacement)}
	return true, nil
}

// ReplaceAll replaces every non-overlapping match in a single top-to-bottom
// scan and returns the count. Replacement text is never re-matched, so a
// replacement containing the query cannot loop.
func ReplaceAll(b *Buffer, s *SearchState, replacement string) (int, error) {
	if !s.usable() {
		return 0, nil
	}
	qLen := s.queryLen()
	count := 0
	// Lines bottom-up and matches right-to-left, so pending positions stay
	// valid as the text shifts under replacement.
	for line := b.LineCount() - 1; line >= 0; line-- {
		cols := matchCols(b.Line(line), s)
		for i := len(cols) - 1; i >= 0; i-- {
			span := Range{
				Start: Pos{Line: line, Col: cols[i]},
				End:   Pos{Line: line, Col: cols[i] + qLen},
			}
			if _, err := b.Replace(span, replacement); err != nil {
				return count, err
			}
			count++
		}
	}
	if count > 0 {
		s.hasLast = false
	}
	return count, nil
}

// FindAll returns every non-overlapping match top to bottom without touching
// the navigation anchor.
func FindAll(b *Buffer, s *SearchState) []Match {
	if !s.usable() {
		return nil
	}
	qLen := s.queryLen()
	var out []Match
	for line := 0; line < b.LineCount(); line++ {
		for _, col := range matchCols(b.Line(line), s) {
			out = append(out, Match{Pos: Pos{Line: line, Col: col}, Length: qLen})
		}
	}
	return out
}

func searchForward(b *Buffer, s *SearchState, from Pos) (Match, bool) {
	qLen := s.queryLen()
	for line := from.Line; line < b.LineCount(); line++ {
		fromCol := 0
		if line == from.Line {
			fromCol = from.Col
		}
		if col, ok := indexInLine(b.Line(line), s, fromCol); ok {
			return Match{Pos: Pos{Line: line, Col: col}, Length: qLen}, true
		}
	}
	return Match{}, false
}

func searchBackward(b *Buffer, s *SearchState, before Pos) (Match, bool) {
	qLen := s.queryLen()
	for line := before.Line; line >= 0; line-- {
		limit := -1
		if line == before.Line {
			limit = before.Col
		}
		best := -1
		col := 0
		for {
			c, ok := indexInLine(b.Line(line), s, col)
			if !ok {
				break
			}
			if limit >= 0 && c >= limit {
				break
			}
			best = c
			col = c + 1
		}
		if best >= 0 {
			return Match{Pos: Pos{Line: line, Col: best}, Length: qLen}, true
		}
	}
	return Match{}, false
}

// indexInLine finds the first match at or after fromCol, returning its rune
// column. Case-insensitive mode lowercases both sides; lowering is a
// rune-to-rune mapping so rune columns stay aligned.
func indexInLine(line string, s *SearchState, fromCol int) (int, bool) {
	runes := []rune(line)
	if fromCol < 0 {
		fromCol = 0
	}
	if fromCol > len(runes) {
		return 0, false
	}
	hay := string(runes[fromCol:])
	needle := s.Query
	if !s.CaseSensitive {
		hay = strings.ToLower(hay)
		needle = strings.ToLower(needle)
	}
	idx := strings.Index(hay, needle)
	if idx < 0 {
		return 0, false
	}
	return fromCol + utf8.RuneCountInString(hay[:idx]), true
}

// matchCols returns the non-overlapping match columns in a line, left to
// right.
func matchCols(line string, s *SearchState) []int {
	qLen := s.queryLen()
	var cols []int
	col := 0
	for {
		c, ok := indexInLine(line, s, col)
		if !ok {
			break
		}
		cols = append(cols, c)
		col = c + qLen
	}
	return cols
}

func (s *SearchState) textMatches(text string) bool {
	if s.CaseSensitive {
		return text == s.Query
	}
	return strings.ToLower(text) == strings.ToLower(s.Query)
}
