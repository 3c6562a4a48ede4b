package editor

import "testing"

func typeString(t *testing.T, a *AutoCloser, b *Buffer, s string) {
	t.Helper()
	for _, ch := range s {
		if err := a.Type(b, ch); err != nil {
			t.Fatalf("Type(%q): %v", ch, err)
		}
	}
}

func TestAutoClosePairInsert(t *testing.T) {
	cases := []struct {
		name string
		ch   rune
		want string
	}{
		{"paren", '(', "()"},
		{"bracket", '[', "[]"},
		{"brace", '{', "{}"},
		{"double quote", '"', `""`},
		{"single quote", '\'', "''"},
		{"backtick", '`', "``"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer(nil)
			a := NewAutoCloser(true)
			if err := a.Type(b, tc.ch); err != nil {
				t.Fatalf("Type: %v", err)
			}
			if b.Text() != tc.want {
				t.Errorf("text = %q, want %q", b.Text(), tc.want)
			}
			if b.Cursor() != (Pos{Line: 0, Col: 1}) {
				t.Errorf("cursor = %v, want between the pair", b.Cursor())
			}
		})
	}
}

func TestAutoCloseDisabled(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(false)
	if err := a.Type(b, '('); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "(" {
		t.Errorf("text = %q, want plain insert when disabled", b.Text())
	}
}

func TestAutoCloseTypeOver(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(true)
	typeString(t, a, b, "(abc)")
	if b.Text() != "(abc)" {
		t.Errorf("text = %q, want %q; the auto-inserted closer must be typed over", b.Text(), "(abc)")
	}
	if b.Cursor() != (Pos{Line: 0, Col: 5}) {
		t.Errorf("cursor = %v, want past the closer", b.Cursor())
	}
}

func TestAutoCloseNestedTypeOver(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(true)
	typeString(t, a, b, "([x])")
	if b.Text() != "([x])" {
		t.Errorf("text = %q, want %q", b.Text(), "([x])")
	}
}

func TestAutoCloseManualCloserNotSkipped(t *testing.T) {
	// The closer already in the buffer was typed by hand, not auto-inserted,
	// so typing another must insert rather than skip.
	b := NewBufferFromText(nil, "()")
	b.SetCursor(Pos{Line: 0, Col: 1})
	a := NewAutoCloser(true)
	if err := a.Type(b, ')'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "())" {
		t.Errorf("text = %q, want %q", b.Text(), "())")
	}
}

func TestAutoCloseCursorMoveBreaksTypeOver(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(true)
	if err := a.Type(b, '('); err != nil {
		t.Fatalf("Type: %v", err)
	}
	b.SetCursor(Pos{Line: 0, Col: 2})
	if err := a.Type(b, ')'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "())" {
		t.Errorf("text = %q, want %q; moving the cursor drops the pending closer", b.Text(), "())")
	}
}

func TestAutoCloseExternalEditBreaksTypeOver(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(true)
	if err := a.Type(b, '('); err != nil {
		t.Fatalf("Type: %v", err)
	}
	// An edit not routed through the auto-closer bumps the version.
	if _, err := b.Insert(Pos{Line: 0, Col: 2}, "x"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	b.SetCursor(Pos{Line: 0, Col: 1})
	if err := a.Type(b, ')'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "())x" {
		t.Errorf("text = %q, want %q", b.Text(), "())x")
	}
}

func TestAutoCloseSurroundSelection(t *testing.T) {
	b := NewBufferFromText(nil, "abc")
	b.SetSelection(Pos{0, 0}, Pos{0, 3})
	a := NewAutoCloser(true)
	if err := a.Type(b, '('); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "(abc)" {
		t.Errorf("text = %q, want %q", b.Text(), "(abc)")
	}
	sel, ok := b.Selection()
	if !ok {
		t.Fatal("selection should survive surround")
	}
	if got := sel.Text(b); got != "abc" {
		t.Errorf("selected text = %q, want %q", got, "abc")
	}
}

func TestAutoCloseSurroundMultiLine(t *testing.T) {
	b := NewBufferFromText(nil, "ab\ncd")
	b.SetSelection(Pos{0, 0}, Pos{1, 2})
	a := NewAutoCloser(true)
	if err := a.Type(b, '{'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "{ab\ncd}" {
		t.Errorf("text = %q, want %q", b.Text(), "{ab\ncd}")
	}
}

func TestAutoCloseReplaceSelection(t *testing.T) {
	b := NewBufferFromText(nil, "abc")
	b.SetSelection(Pos{0, 0}, Pos{0, 3})
	a := NewAutoCloser(true)
	if err := a.Type(b, 'x'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "x" {
		t.Errorf("text = %q, want selection replaced", b.Text())
	}
	if _, ok := b.Selection(); ok {
		t.Error("selection should clear after replacement")
	}
}

func TestAutoCloseReset(t *testing.T) {
	b := NewBuffer(nil)
	a := NewAutoCloser(true)
	if err := a.Type(b, '('); err != nil {
		t.Fatalf("Type: %v", err)
	}
	a.Reset()
	if err := a.Type(b, ')'); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if b.Text() != "())" {
		t.Errorf("text = %q, want %q; Reset drops the pending closer", b.Text(), "())")
	}
}
