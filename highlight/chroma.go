package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// blockDelims are the multi-line constructs the adapter tracks across lines.
// Chroma's regex lexers only classify a block comment or raw string once its
// terminator is present, so continuation is handled here: the resume state
// records the open construct and its terminator, and the continuing lines
// are classified directly until the terminator shows up.
var blockDelims = []struct {
	open, close string
	class       Class
}{
	{"/*", "*/", ClassComment},
	{"<!--", "-->", ClassComment},
	{"(*", "*)", ClassComment},
	{"{-", "-}", ClassComment},
	{`"""`, `"""`, ClassString},
	{"'''", "'''", ClassString},
	{"`", "`", ClassString},
}

// chromaState is the resume state: the construct left open at the end of a
// line, if any.
type chromaState struct {
	close string
	class Class
}

// Chroma adapts a chroma lexer to the line-at-a-time Highlighter contract.
type Chroma struct {
	lexer chroma.Lexer
}

// NewChroma picks a lexer for the given filename, falling back to plain
// text.
func NewChroma(filename string) *Chroma {
	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}
}

// NewChromaForLanguage picks a lexer by language name (e.g. "go"), falling
// back to plain text.
func NewChromaForLanguage(name string) *Chroma {
	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}
}

// Language returns the lexer's language name.
func (h *Chroma) Language() string {
	return h.lexer.Config().Name
}

// TokenizeLine implements Highlighter.
func (h *Chroma) TokenizeLine(text string, prior State) ([]Span, State) {
	runes := []rune(text)

	// Continue an open block construct from the previous line.
	if st, ok := prior.(chromaState); ok {
		idx := strings.Index(text, st.close)
		if idx < 0 {
			if len(runes) == 0 {
				return nil, st
			}
			return []Span{{Start: 0, End: len(runes), Class: st.class}}, st
		}
		endCol := len([]rune(text[:idx])) + len([]rune(st.close))
		spans := []Span{{Start: 0, End: endCol, Class: st.class}}
		rest, state := h.tokenizePlain(string(runes[endCol:]), endCol)
		return append(spans, rest...), state
	}

	return h.tokenizePlain(text, 0)
}

// tokenizePlain runs the lexer over text that starts outside any multi-line
// construct, shifting the resulting spans by offset columns.
func (h *Chroma) tokenizePlain(text string, offset int) ([]Span, State) {
	if text == "" {
		return nil, nil
	}

	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, nil
	}

	var spans []Span
	col := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		n := len([]rune(tok.Value))
		class := classOf(tok.Type)
		if class != ClassText && n > 0 {
			spans = append(spans, Span{
				Start: offset + col,
				End:   offset + col + n,
				Class: class,
			})
		}
		col += n
	}

	if st, open := h.openConstruct(text, spans, offset); open {
		startCol := offset + opensAt(text, st.closeDelimOpen())
		kept := spans[:0]
		for _, s := range spans {
			if s.Start < startCol {
				kept = append(kept, s)
			}
		}
		spans = append(kept, Span{
			Start: startCol,
			End:   offset + len([]rune(text)),
			Class: st.class,
		})
		return spans, st
	}
	return spans, nil
}

// openConstruct detects a block construct opened on this line and not
// closed, ignoring delimiters the lexer already placed inside a string or
// comment token.
func (h *Chroma) openConstruct(text string, spans []Span, offset int) (chromaState, bool) {
	for _, d := range blockDelims {
		idx := lastOutsideTokens(text, d.open, spans, offset)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(d.open):]
		if d.open == d.close {
			// Symmetric delimiter (backtick, triple quote): open when the
			// occurrences outside tokens are unbalanced.
			if strings.Contains(rest, d.close) {
				continue
			}
			return chromaState{close: d.close, class: d.class}, true
		}
		if !strings.Contains(rest, d.close) {
			return chromaState{close: d.close, class: d.class}, true
		}
	}
	return chromaState{}, false
}

// closeDelimOpen maps a state back to the opener it was created from, for
// span start calculation.
func (st chromaState) closeDelimOpen() string {
	for _, d := range blockDelims {
		if d.close == st.close && d.class == st.class {
			return d.open
		}
	}
	return st.close
}

func opensAt(text, open string) int {
	idx := strings.LastIndex(text, open)
	if idx < 0 {
		return 0
	}
	return len([]rune(text[:idx]))
}

// lastOutsideTokens finds the last occurrence of delim in text whose column
// is not covered by a string/comment span, or -1.
func lastOutsideTokens(text, delim string, spans []Span, offset int) int {
	from := len(text)
	for {
		idx := strings.LastIndex(text[:from], delim)
		if idx < 0 {
			return -1
		}
		col := offset + len([]rune(text[:idx]))
		if !ClassAt(spans, col).InStringOrComment() {
			return idx
		}
		from = idx
	}
}

func classOf(t chroma.TokenType) Class {
	switch {
	case t.InCategory(chroma.Comment):
		return ClassComment
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t == chroma.NameFunction:
		return ClassFunction
	case t == chroma.NameClass || t == chroma.NameNamespace:
		return ClassType
	case t.InCategory(chroma.Operator):
		return ClassOperator
	case t.InCategory(chroma.Punctuation):
		return ClassPunctuation
	default:
		return ClassText
	}
}
