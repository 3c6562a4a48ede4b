package editor

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/chisel-editor/chisel/highlight"
)

func sessionFixture(t *testing.T) (*Session, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/src/main.go":  "package main\n\n// todo: remove (\nfunc main() {\n\tprintln(\"hi\")\n}",
		"/src/note.txt": "foo bar\nbar foo",
	}
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return NewSession(fs, DefaultConfig()), fs
}

func TestSessionNoActiveBuffer(t *testing.T) {
	s := NewSession(afero.NewMemMapFs(), DefaultConfig())
	if err := s.InsertChar('a'); !errors.Is(err, ErrNoActiveBuffer) {
		t.Errorf("InsertChar = %v, want ErrNoActiveBuffer", err)
	}
	if err := s.InsertText("x"); !errors.Is(err, ErrNoActiveBuffer) {
		t.Errorf("InsertText = %v, want ErrNoActiveBuffer", err)
	}
	if s.Minimap() != nil {
		t.Error("Minimap should be nil with no tabs")
	}
	if s.Language() != "" {
		t.Error("Language should be empty with no tabs")
	}
}

func TestSessionTyping(t *testing.T) {
	s := NewSession(afero.NewMemMapFs(), DefaultConfig())
	s.NewUntitled()

	for _, ch := range "f(x)" {
		if err := s.InsertChar(ch); err != nil {
			t.Fatalf("InsertChar(%q): %v", ch, err)
		}
	}
	buf := s.Tabs.Active()
	if buf.Text() != "f(x)" {
		t.Errorf("text = %q, want %q; the closer is typed over, not doubled", buf.Text(), "f(x)")
	}
}

func TestSessionInsertTextReplacesSelection(t *testing.T) {
	s := NewSession(afero.NewMemMapFs(), DefaultConfig())
	s.NewUntitled()
	if err := s.InsertText("hello world"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	if err := s.SetSelection(Pos{0, 0}, Pos{0, 5}); err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	if err := s.InsertText("goodbye"); err != nil {
		t.Fatalf("InsertText: %v", err)
	}
	buf := s.Tabs.Active()
	if buf.Text() != "goodbye world" {
		t.Errorf("text = %q", buf.Text())
	}
	if buf.Cursor() != (Pos{0, 7}) {
		t.Errorf("cursor = %v, want after the pasted text", buf.Cursor())
	}
}

func TestSessionFindLifecycle(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/note.txt"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	s.FindOpen("foo", true)
	if !s.FindActive() {
		t.Fatal("find session should be open")
	}

	m, ok := s.FindNext()
	if !ok || m.Pos != (Pos{0, 0}) {
		t.Fatalf("first = %v %v, want {0 0}", m, ok)
	}
	// The hit is selected and the cursor sits after it.
	buf := s.Tabs.Active()
	if sel, ok := buf.Selection(); !ok || sel.Text(buf) != "foo" {
		t.Error("match should be selected")
	}
	if buf.Cursor() != (Pos{0, 3}) {
		t.Errorf("cursor = %v, want {0 3}", buf.Cursor())
	}

	m, ok = s.FindNext()
	if !ok || m.Pos != (Pos{1, 4}) {
		t.Fatalf("second = %v %v, want {1 4}", m, ok)
	}

	s.FindClose()
	if s.FindActive() {
		t.Error("find session should be closed")
	}
	if _, ok := s.FindNext(); ok {
		t.Error("FindNext after close should find nothing")
	}
}

func TestSessionFindDoesNotPersistAcrossTabs(t *testing.T) {
	s, _ := sessionFixture(t)
	noteID, err := s.OpenFile("/src/note.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	if err := s.ActivateTab(noteID); err != nil {
		t.Fatalf("ActivateTab: %v", err)
	}
	s.FindOpen("foo", true)
	if _, ok := s.FindNext(); !ok {
		t.Fatal("no match")
	}

	ids := s.Tabs.IDs()
	if err := s.ActivateTab(ids[1]); err != nil {
		t.Fatalf("ActivateTab: %v", err)
	}
	if s.FindActive() {
		t.Error("find session must not survive a tab switch")
	}
}

func TestSessionFindClearedByOpenFile(t *testing.T) {
	s, _ := sessionFixture(t)
	noteID, err := s.OpenFile("/src/note.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	s.FindOpen("foo", true)
	if _, ok := s.FindNext(); !ok {
		t.Fatal("no match")
	}

	// Opening another file switches the active tab.
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.FindActive() {
		t.Error("find session must not survive the tab switch made by OpenFile")
	}

	// Re-opening an already open file activates its tab; that is a switch too.
	s.FindOpen("main", true)
	if _, err := s.OpenFile("/src/note.txt"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.FindActive() {
		t.Error("find session must not survive dedup re-activation")
	}
	if got, _ := s.Tabs.ActiveID(); got != noteID {
		t.Fatalf("active = %v, want %v", got, noteID)
	}
}

func TestSessionFindClearedByCloseTab(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	noteID, err := s.OpenFile("/src/note.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	s.FindOpen("foo", true)
	if _, ok := s.FindNext(); !ok {
		t.Fatal("no match")
	}

	// Closing the active tab activates the neighbor.
	if err := s.CloseTab(noteID); err != nil {
		t.Fatalf("CloseTab: %v", err)
	}
	if s.FindActive() {
		t.Error("find session must not survive the tab switch made by CloseTab")
	}
}

func TestSessionFindSurvivesInactiveClose(t *testing.T) {
	s, _ := sessionFixture(t)
	mainID, err := s.OpenFile("/src/main.go")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := s.OpenFile("/src/note.txt"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	s.FindOpen("foo", true)
	if _, ok := s.FindNext(); !ok {
		t.Fatal("no match")
	}

	// Closing a background tab does not change the active buffer, so the
	// find session stays open.
	if err := s.CloseTab(mainID); err != nil {
		t.Fatalf("CloseTab: %v", err)
	}
	if !s.FindActive() {
		t.Error("closing an inactive tab must not clear the find session")
	}
	if m, ok := s.FindNext(); !ok || m.Pos != (Pos{1, 4}) {
		t.Errorf("next = %v %v, want {1 4}", m, ok)
	}
}

func TestSessionReplaceAll(t *testing.T) {
	s, fs := sessionFixture(t)
	if _, err := s.OpenFile("/src/note.txt"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	s.FindOpen("bar", true)
	n, err := s.ReplaceAll("qux")
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if err := s.SaveActive(); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}
	data, err := afero.ReadFile(fs, "/src/note.txt")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "foo qux\nqux foo" {
		t.Errorf("saved = %q", data)
	}
}

func TestSessionLanguageDetection(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if got := s.Language(); got != "Go" {
		t.Errorf("language = %q, want Go", got)
	}
}

func TestSessionLineSpans(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	spans := s.LineSpans(2) // the comment line
	if len(spans) == 0 {
		t.Fatal("comment line should produce spans")
	}
	if spans[0].Class != highlight.ClassComment {
		t.Errorf("class = %v, want comment", spans[0].Class)
	}
}

func TestSessionBracketSkipsComments(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	buf := s.Tabs.Active()

	// The brace on the func line matches the closing brace, ignoring the
	// stray paren inside the comment above.
	buf.SetCursor(Pos{Line: 3, Col: 12})
	got, ok := s.MatchBracket()
	if !ok {
		t.Fatal("no match for func brace")
	}
	if got != (Pos{Line: 5, Col: 0}) {
		t.Errorf("match = %v, want {5 0}", got)
	}

	// The paren inside the comment itself never matches.
	buf.SetCursor(Pos{Line: 2, Col: 16})
	if _, ok := s.MatchBracket(); ok {
		t.Error("bracket inside a comment must not match")
	}
}

func TestSessionMinimap(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	m := s.Minimap()
	if m == nil {
		t.Fatal("minimap should exist for an open tab")
	}
	if m.RowCount() == 0 {
		t.Error("minimap should have rows")
	}
	if m.Row(0).Color == "" {
		t.Error("highlighted buffer should produce a row color")
	}
}

func TestSessionCloseTab(t *testing.T) {
	s, _ := sessionFixture(t)
	id, err := s.OpenFile("/src/note.txt")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.InsertChar('x'); err != nil {
		t.Fatalf("InsertChar: %v", err)
	}

	if err := s.CloseTab(id); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("CloseTab dirty = %v, want ErrUnsavedChanges", err)
	}
	if err := s.ForceCloseTab(id); err != nil {
		t.Fatalf("ForceCloseTab: %v", err)
	}
	if s.Tabs.Count() != 0 {
		t.Error("tab should be gone")
	}
	if s.Minimap() != nil {
		t.Error("per-tab state should be released on close")
	}
}

func TestSessionOpenFolder(t *testing.T) {
	s, fs := sessionFixture(t)
	extra := map[string]string{
		"/src/.git/config":       "",
		"/src/vendor/dep/dep.go": "",
		"/src/sub/helper.go":     "package sub\n",
	}
	for name, content := range extra {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	if err := s.OpenFolder("/src"); err != nil {
		t.Fatalf("OpenFolder: %v", err)
	}
	if s.Root() != "/src" {
		t.Errorf("root = %q", s.Root())
	}

	files := s.Files()
	want := map[string]bool{"main.go": true, "note.txt": true, "sub/helper.go": true}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for _, f := range files {
		if !want[f] {
			t.Errorf("unexpected file %q; dot and vendor directories must be skipped", f)
		}
	}

	if err := s.OpenFolder("/src/main.go"); err == nil {
		t.Error("opening a file as a folder should error")
	}
	if err := s.OpenFolder("/missing"); err == nil {
		t.Error("opening a missing folder should error")
	}
}

func TestSessionGuides(t *testing.T) {
	s, _ := sessionFixture(t)
	if _, err := s.OpenFile("/src/main.go"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	guides := s.Guides(4) // the println line, one level deep
	if len(guides) != 1 {
		t.Fatalf("got %d guides, want 1", len(guides))
	}
	if guides[0].VisualCol != 0 {
		t.Errorf("visual col = %d, want 0", guides[0].VisualCol)
	}
}
