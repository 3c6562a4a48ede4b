package editor

import "testing"

func TestMatchBracketSameLine(t *testing.T) {
	b := NewBufferFromText(nil, "(a[b]c)")
	cases := []struct {
		name string
		pos  Pos
		want Pos
	}{
		{"outer open", Pos{0, 0}, Pos{0, 6}},
		{"outer close", Pos{0, 6}, Pos{0, 0}},
		{"inner open", Pos{0, 2}, Pos{0, 4}},
		{"inner close", Pos{0, 4}, Pos{0, 2}},
		{"cursor just past close", Pos{0, 5}, Pos{0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MatchBracket(b, tc.pos, nil)
			if !ok {
				t.Fatal("no match found")
			}
			if got != tc.want {
				t.Errorf("match = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchBracketAcrossLines(t *testing.T) {
	b := NewBufferFromText(nil, "func main() {\n\tif x {\n\t\ty()\n\t}\n}")
	got, ok := MatchBracket(b, Pos{Line: 0, Col: 12}, nil)
	if !ok {
		t.Fatal("no match for outer brace")
	}
	if got != (Pos{Line: 4, Col: 0}) {
		t.Errorf("match = %v, want {4 0}", got)
	}

	back, ok := MatchBracket(b, Pos{Line: 4, Col: 0}, nil)
	if !ok || back != (Pos{Line: 0, Col: 12}) {
		t.Errorf("reverse match = %v %v, want {0 12}", back, ok)
	}
}

func TestMatchBracketUnbalanced(t *testing.T) {
	b := NewBufferFromText(nil, "(a")
	if _, ok := MatchBracket(b, Pos{0, 0}, nil); ok {
		t.Error("unbalanced open bracket should not match")
	}
}

func TestMatchBracketNotOnBracket(t *testing.T) {
	b := NewBufferFromText(nil, "abc")
	if _, ok := MatchBracket(b, Pos{0, 1}, nil); ok {
		t.Error("cursor not on a bracket should not match")
	}
}

func TestMatchBracketSkipsStrings(t *testing.T) {
	// Columns 3..6 are the string literal "b)".
	b := NewBufferFromText(nil, `(a "b)" c)`)
	inString := func(line, col int) bool {
		return col >= 3 && col <= 6
	}
	code := Classifier(func(line, col int) bool { return !inString(line, col) })

	got, ok := MatchBracket(b, Pos{0, 0}, code)
	if !ok {
		t.Fatal("no match found")
	}
	if got != (Pos{Line: 0, Col: 9}) {
		t.Errorf("match = %v, want {0 9}; the close inside the string must be skipped", got)
	}

	// Without classification the string's close bracket wins, wrongly.
	naive, ok := MatchBracket(b, Pos{0, 0}, nil)
	if !ok || naive != (Pos{Line: 0, Col: 5}) {
		t.Errorf("unclassified match = %v %v, want {0 5}", naive, ok)
	}
}

func TestMatchBracketWindow(t *testing.T) {
	b := NewBufferFromText(nil, "(\n\n)")
	if _, ok := MatchBracketWithin(b, Pos{0, 0}, nil, 0, 1); ok {
		t.Error("partner outside the window should report unmatched")
	}
	got, ok := MatchBracketWithin(b, Pos{0, 0}, nil, 0, 2)
	if !ok || got != (Pos{Line: 2, Col: 0}) {
		t.Errorf("windowed match = %v %v, want {2 0}", got, ok)
	}
}

func TestMatchBracketNested(t *testing.T) {
	b := NewBufferFromText(nil, "((()))")
	got, ok := MatchBracket(b, Pos{0, 1}, nil)
	if !ok || got != (Pos{Line: 0, Col: 4}) {
		t.Errorf("nested match = %v %v, want {0 4}", got, ok)
	}
}
