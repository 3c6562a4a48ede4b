package editor

import "testing"

func TestDeleteLine(t *testing.T) {
	cases := []struct {
		name string
		text string
		line int
		want string
	}{
		{"middle", "a\nb\nc", 1, "a\nc"},
		{"first", "a\nb\nc", 0, "b\nc"},
		{"last", "a\nb\nc", 2, "a\nb"},
		{"only line", "solo", 0, ""},
		{"out of range", "a\nb", 5, "a\nb"},
		{"negative", "a\nb", -1, "a\nb"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBufferFromText(nil, tc.text)
			DeleteLine(b, tc.line)
			if b.Text() != tc.want {
				t.Errorf("text = %q, want %q", b.Text(), tc.want)
			}
		})
	}
}

func TestMoveLine(t *testing.T) {
	cases := []struct {
		name  string
		line  int
		delta int
		want  string
	}{
		{"down", 0, 1, "b\na\nc"},
		{"up", 2, -1, "a\nc\nb"},
		{"top up is no-op", 0, -1, "a\nb\nc"},
		{"bottom down is no-op", 2, 1, "a\nb\nc"},
		{"zero delta is no-op", 1, 0, "a\nb\nc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBufferFromText(nil, "a\nb\nc")
			MoveLine(b, tc.line, tc.delta)
			if b.Text() != tc.want {
				t.Errorf("text = %q, want %q", b.Text(), tc.want)
			}
		})
	}
}

func TestDuplicateLine(t *testing.T) {
	b := NewBufferFromText(nil, "one\ntwo")
	DuplicateLine(b, 0)
	if b.Text() != "one\none\ntwo" {
		t.Errorf("text = %q", b.Text())
	}
	DuplicateLine(b, 2)
	if b.Text() != "one\none\ntwo\ntwo" {
		t.Errorf("text = %q", b.Text())
	}
}
