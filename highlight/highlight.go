// Package highlight defines the tokenizer interface the editor core
// consumes, the per-line resume-state cache that lets highlighting restart
// mid-document after an edit, and a chroma-backed implementation.
//
// The core never interprets token classes beyond "is this inside a string or
// comment" (for bracket matching) and a render color (for the minimap);
// everything else passes through to the rendering layer.
package highlight

// Class is a coarse token classification.
type Class int

const (
	ClassText Class = iota
	ClassKeyword
	ClassString
	ClassComment
	ClassNumber
	ClassFunction
	ClassType
	ClassOperator
	ClassPunctuation
)

// InStringOrComment reports whether characters of this class must be ignored
// by structural scans such as bracket matching.
func (c Class) InStringOrComment() bool {
	return c == ClassString || c == ClassComment
}

// Color returns a representative hex color for the class, used for minimap
// color buckets. The rendering layer maps classes to theme colors itself.
func (c Class) Color() string {
	switch c {
	case ClassKeyword:
		return "#c586c0"
	case ClassString:
		return "#ce9178"
	case ClassComment:
		return "#6a9955"
	case ClassNumber:
		return "#b5cea8"
	case ClassFunction:
		return "#dcdcaa"
	case ClassType:
		return "#4ec9b0"
	case ClassOperator, ClassPunctuation:
		return "#d4d4d4"
	default:
		return "#9cdcfe"
	}
}

// Span is a classified run of characters within one line, half-open
// [Start, End) in rune columns.
type Span struct {
	Start, End int
	Class      Class
}

// State is the opaque tokenizer resume state carried from the end of one
// line into the start of the next. nil means "start of document". Tokenizer
// state can depend on unterminated constructs spanning lines (block
// comments, raw strings), which is why line N's spans may depend on line
// N-1's state.
type State any

// Highlighter tokenizes one line at a time, resuming from the state left by
// the previous line.
type Highlighter interface {
	TokenizeLine(text string, prior State) ([]Span, State)
}

// LineSource is the read-only view of a document the cache tokenizes from.
// editor.Buffer satisfies it.
type LineSource interface {
	Line(i int) string
	LineCount() int
}

// ClassAt returns the class of the character at col within spans, or
// ClassText when no span covers it.
func ClassAt(spans []Span, col int) Class {
	for _, s := range spans {
		if col >= s.Start && col < s.End {
			return s.Class
		}
	}
	return ClassText
}
