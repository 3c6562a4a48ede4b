package editor

// bracketPairs maps each bracket character to its matching partner.
var bracketPairs = map[rune]rune{
	'(': ')',
	')': '(',
	'{': '}',
	'}': '{',
	'[': ']',
	']': '[',
}

// openBrackets is the set of opening bracket characters.
var openBrackets = map[rune]bool{
	'(': true,
	'{': true,
	'[': true,
}

// Classifier reports whether the character at (line, col) is plain code, as
// opposed to inside a string or comment token. Brackets inside strings and
// comments must never participate in matching, so the matcher consumes
// highlighter classification rather than raw text. A nil Classifier treats
// everything as code.
type Classifier func(line, col int) bool

// MatchBracket finds the matching bracket for the bracket at or immediately
// before pos, scanning the whole document. Returns the match position and
// true, or false if no bracket is under the cursor or the document is
// unbalanced. Supports: () {} []
//
// A full-document scan is meant for an explicit "jump to matching bracket"
// command; interactive redraw should use MatchBracketWithin with the visible
// line window.
func MatchBracket(b *Buffer, pos Pos, code Classifier) (Pos, bool) {
	return MatchBracketWithin(b, pos, code, 0, b.LineCount()-1)
}

// MatchBracketWithin is MatchBracket with the scan capped to lines
// [firstLine, lastLine]. Matches whose partner lies outside the window are
// reported as unmatched.
func MatchBracketWithin(b *Buffer, pos Pos, code Classifier, firstLine, lastLine int) (Pos, bool) {
	if firstLine < 0 {
		firstLine = 0
	}
	if lastLine >= b.LineCount() {
		lastLine = b.LineCount() - 1
	}

	// Check the character at the cursor, then the one before it, the way a
	// cursor sitting just past a closer still highlights the pair.
	for _, p := range []Pos{pos, {Line: pos.Line, Col: pos.Col - 1}} {
		if p.Col < 0 {
			continue
		}
		ch, ok := b.CharAt(p)
		if !ok {
			continue
		}
		partner, isBracket := bracketPairs[ch]
		if !isBracket {
			continue
		}
		if code != nil && !code(p.Line, p.Col) {
			continue
		}
		if openBrackets[ch] {
			if m, ok := scanForward(b, p, ch, partner, code, lastLine); ok {
				return m, true
			}
		} else {
			if m, ok := scanBackward(b, p, ch, partner, code, firstLine); ok {
				return m, true
			}
		}
	}
	return Pos{}, false
}

func scanForward(b *Buffer, from Pos, open, close rune, code Classifier, lastLine int) (Pos, bool) {
	depth := 1
	col := from.Col + 1
	for line := from.Line; line <= lastLine; line++ {
		text := []rune(b.Line(line))
		for ; col < len(text); col++ {
			ch := text[col]
			if ch != open && ch != close {
				continue
			}
			if code != nil && !code(line, col) {
				continue
			}
			if ch == open {
				depth++
			} else {
				depth--
				if depth == 0 {
					return Pos{Line: line, Col: col}, true
				}
			}
		}
		col = 0
	}
	return Pos{}, false
}

func scanBackward(b *Buffer, from Pos, close, open rune, code Classifier, firstLine int) (Pos, bool) {
	depth := 1
	col := from.Col - 1
	for line := from.Line; line >= firstLine; line-- {
		text := []rune(b.Line(line))
		if col > len(text)-1 {
			col = len(text) - 1
		}
		for ; col >= 0; col-- {
			ch := text[col]
			if ch != open && ch != close {
				continue
			}
			if code != nil && !code(line, col) {
				continue
			}
			if ch == close {
				depth++
			} else {
				depth--
				if depth == 0 {
					return Pos{Line: line, Col: col}, true
				}
			}
		}
		if line > firstLine {
			col = len([]rune(b.Line(line - 1)))
		}
	}
	return Pos{}, false
}
