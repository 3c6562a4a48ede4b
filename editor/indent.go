package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Guide marks one indent-guide column on a line. Col is the character column
// the guide sits at (what editing logic needs); VisualCol is the rendered
// column after tab expansion and wide-rune measurement (what the renderer
// needs).
type Guide struct {
	Level     int
	Col       int
	VisualCol int
}

// DetectIndentStyle looks at the buffer to determine whether tabs or spaces
// are used for indentation. Returns the indent unit string (e.g., "\t" or
// "    "). Defaults to "\t" if no indentation found.
func DetectIndentStyle(b *Buffer) string {
	tabCount := 0
	spaceCount := 0
	minSpaceWidth := 0

	for i := 0; i < b.LineCount(); i++ {
		line := b.Line(i)
		if len(line) == 0 {
			continue
		}
		if line[0] == '\t' {
			tabCount++
		} else if line[0] == ' ' {
			spaceCount++
			w := 0
			for _, ch := range line {
				if ch == ' ' {
					w++
				} else {
					break
				}
			}
			if w > 0 && (minSpaceWidth == 0 || w < minSpaceWidth) {
				minSpaceWidth = w
			}
		}
	}

	if spaceCount > tabCount && minSpaceWidth > 0 {
		return strings.Repeat(" ", minSpaceWidth)
	}
	return "\t"
}

// ComputeIndent returns the indentation string to use for a new line after
// the given line. It copies the existing indent and increases it if the line
// ends with an opening bracket ({, (, [) after trimming trailing whitespace.
func ComputeIndent(line string) string {
	indent := ""
	for _, ch := range line {
		if ch == ' ' || ch == '\t' {
			indent += string(ch)
		} else {
			break
		}
	}

	trimmed := strings.TrimRight(line, " \t")
	if len(trimmed) > 0 {
		last := trimmed[len(trimmed)-1]
		if last == '{' || last == '(' || last == '[' {
			if strings.Contains(indent, "\t") || indent == "" {
				indent += "\t"
			} else {
				indent += "    "
			}
		}
	}

	return indent
}

// IndentDepth returns the indent level of a line: the visual width of its
// leading whitespace divided by the indent width. Tabs expand to the next
// multiple of the indent width.
func IndentDepth(line string, width int) int {
	if width <= 0 {
		width = 4
	}
	visual := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			visual++
		case '\t':
			visual += width - visual%width
		default:
			return visual / width
		}
	}
	return visual / width
}

// GuidesForLine returns the indent-guide columns to render on the given
// line, one per indent level. Blank lines inherit the depth of the nearest
// preceding non-blank line, so guides draw continuously through blank lines
// inside an indented block.
func GuidesForLine(b *Buffer, line, width int) []Guide {
	if width <= 0 {
		width = 4
	}
	if line < 0 || line >= b.LineCount() {
		return nil
	}

	ref := line
	for ref >= 0 && isBlank(b.Line(ref)) {
		ref--
	}
	if ref < 0 {
		return nil
	}

	text := b.Line(ref)
	depth := IndentDepth(text, width)
	if depth == 0 {
		return nil
	}

	guides := make([]Guide, 0, depth)
	for level := 1; level <= depth; level++ {
		visual := (level - 1) * width
		guides = append(guides, Guide{
			Level:     level,
			Col:       ColumnForVisual(text, visual, width),
			VisualCol: visual,
		})
	}
	return guides
}

// VisualColumn maps a character column in line to its rendered column, with
// tabs expanded to the next multiple of tabWidth and wide runes measured via
// runewidth.
func VisualColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	visual := 0
	for i, ch := range []rune(line) {
		if i >= col {
			break
		}
		if ch == '\t' {
			visual += tabWidth - visual%tabWidth
		} else {
			visual += runewidth.RuneWidth(ch)
		}
	}
	return visual
}

// ColumnForVisual maps a rendered column back to the character column in
// line that covers it.
func ColumnForVisual(line string, visual, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	v := 0
	for i, ch := range []rune(line) {
		if v >= visual {
			return i
		}
		if ch == '\t' {
			v += tabWidth - v%tabWidth
		} else {
			v += runewidth.RuneWidth(ch)
		}
	}
	return len([]rune(line))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
