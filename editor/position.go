package editor

// Pos addresses a character in a buffer by 0-based line index and rune
// column. Col may equal the line length, meaning "after the last character".
type Pos struct {
	Line, Col int
}

// Range is a half-open span [Start, End) in document coordinates.
// Start and End may be given in either order; Normalized puts them in
// document order.
type Range struct {
	Start, End Pos
}

// ComparePos orders positions in document order: -1 if a < b, 1 if a > b,
// 0 if equal.
func ComparePos(a, b Pos) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Col != b.Col {
		if a.Col < b.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Normalized returns the range with Start <= End in document order.
func (r Range) Normalized() Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

// IsEmpty reports whether the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether p falls inside the (normalized) range.
func (r Range) Contains(p Pos) bool {
	n := r.Normalized()
	return ComparePos(n.Start, p) <= 0 && ComparePos(p, n.End) < 0
}
