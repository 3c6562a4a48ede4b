package editor

// DeleteLine removes the line at the given 0-based line number, including
// its line break. Out-of-range line numbers are a no-op. Deleting the only
// line leaves a single empty line.
func DeleteLine(b *Buffer, line int) {
	if line < 0 || line >= b.LineCount() {
		return
	}
	var rng Range
	switch {
	case b.LineCount() == 1:
		rng = Range{Start: Pos{}, End: Pos{Col: b.LineLen(0)}}
	case line < b.LineCount()-1:
		rng = Range{
			Start: Pos{Line: line},
			End:   Pos{Line: line + 1},
		}
	default:
		// Last line: eat the preceding line break instead.
		rng = Range{
			Start: Pos{Line: line - 1, Col: b.LineLen(line - 1)},
			End:   Pos{Line: line, Col: b.LineLen(line)},
		}
	}
	b.Delete(rng)
}

// MoveLine swaps the line at the given 0-based line number with the line at
// line+delta (+1 = down, -1 = up). Out-of-bounds positions are a no-op.
func MoveLine(b *Buffer, line, delta int) {
	target := line + delta
	if line < 0 || line >= b.LineCount() || target < 0 || target >= b.LineCount() || delta == 0 {
		return
	}
	a, t := b.Line(line), b.Line(target)
	b.Replace(Range{Start: Pos{Line: line}, End: Pos{Line: line, Col: b.LineLen(line)}}, t)
	b.Replace(Range{Start: Pos{Line: target}, End: Pos{Line: target, Col: b.LineLen(target)}}, a)
}

// DuplicateLine duplicates the line at the given 0-based line number,
// inserting the copy immediately after it.
func DuplicateLine(b *Buffer, line int) {
	if line < 0 || line >= b.LineCount() {
		return
	}
	text := b.Line(line)
	b.Insert(Pos{Line: line, Col: b.LineLen(line)}, "\n"+text)
}
