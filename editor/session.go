package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/chisel-editor/chisel/highlight"
)

// tabState is the derived state carried per open tab: the highlighter picked
// for the file, its resume-state cache, and the minimap fed by both.
type tabState struct {
	hl    *highlight.Chroma
	cache *highlight.Cache
	mini  *Minimap
}

// Session is what a command dispatcher talks to: it owns the tab set,
// the find/replace state, the auto-close state, and the per-tab highlight
// caches, and routes every operation to the active buffer. All state is
// explicit here; nothing is ambient.
type Session struct {
	Tabs *TabManager

	fs     afero.Fs
	root   string // workspace root, "" until a folder is opened
	cfg    Config
	auto   *AutoCloser
	search *SearchState
	state  map[TabID]*tabState
}

// NewSession creates a session over the given filesystem (nil for the host
// filesystem).
func NewSession(fs afero.Fs, cfg Config) *Session {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Session{
		Tabs:  NewTabManager(fs),
		fs:    fs,
		cfg:   cfg,
		auto:  NewAutoCloser(cfg.AutoClose),
		state: make(map[TabID]*tabState),
	}
}

// OpenFolder sets the workspace root for file listing. The root must be an
// existing directory.
func (s *Session) OpenFolder(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	info, err := s.fs.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}
	s.root = abs
	return nil
}

// Root returns the workspace root, or "" if no folder is open.
func (s *Session) Root() string {
	return s.root
}

// Files walks the workspace root and returns file paths relative to it,
// skipping dot-directories and common build output. Returns nil with no
// folder open.
func (s *Session) Files() []string {
	if s.root == "" {
		return nil
	}
	var files []string
	_ = afero.Walk(s.fs, s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		name := info.Name()
		if info.IsDir() {
			if path != s.root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			return nil
		}
		if rel, err := filepath.Rel(s.root, path); err == nil {
			files = append(files, rel)
		}
		return nil
	})
	sort.Strings(files)
	return files
}

// Config returns the session settings.
func (s *Session) Config() Config {
	return s.cfg
}

// OpenFile opens (or re-activates) the file and wires up highlighting and
// minimap for the new tab.
func (s *Session) OpenFile(path string) (TabID, error) {
	id, err := s.Tabs.OpenFile(path)
	if err != nil {
		return "", err
	}
	if _, ok := s.state[id]; !ok {
		s.wire(id)
	}
	s.tabChanged()
	return id, nil
}

// NewUntitled opens an empty tab.
func (s *Session) NewUntitled() TabID {
	id := s.Tabs.NewUntitled()
	s.wire(id)
	s.tabChanged()
	return id
}

// tabChanged drops the state that belongs to the previously active tab: the
// find session does not persist across tabs, and pending auto-close markers
// guard a cursor position in the old buffer.
func (s *Session) tabChanged() {
	s.search = nil
	s.auto.Reset()
}

func (s *Session) wire(id TabID) {
	buf := s.Tabs.BufferByID(id)
	hl := highlight.NewChroma(buf.Title())
	cache := highlight.NewCache(hl)
	buf.OnInvalidate(cache.InvalidateFrom)
	mini := NewMinimap(buf, s.cfg.MinimapBucket, s.cfg.TabSize, func(line int) []highlight.Span {
		return cache.LineSpans(buf, line)
	})
	s.state[id] = &tabState{hl: hl, cache: cache, mini: mini}
}

// ActivateTab switches tabs. The find session does not persist across tabs,
// and pending auto-close state belongs to the old cursor.
func (s *Session) ActivateTab(id TabID) error {
	if err := s.Tabs.Activate(id); err != nil {
		return err
	}
	s.tabChanged()
	return nil
}

// CloseTab closes a tab, propagating ErrUnsavedChanges for dirty buffers.
// Closing the active tab activates a neighbor, which is a tab switch.
func (s *Session) CloseTab(id TabID) error {
	wasActive, _ := s.Tabs.ActiveID()
	if err := s.Tabs.Close(id); err != nil {
		return err
	}
	delete(s.state, id)
	if id == wasActive {
		s.tabChanged()
	}
	return nil
}

// ForceCloseTab closes a tab discarding unsaved changes.
func (s *Session) ForceCloseTab(id TabID) error {
	wasActive, _ := s.Tabs.ActiveID()
	if err := s.Tabs.ForceClose(id); err != nil {
		return err
	}
	delete(s.state, id)
	if id == wasActive {
		s.tabChanged()
	}
	return nil
}

// SaveActive writes the active buffer to disk.
func (s *Session) SaveActive() error {
	return s.Tabs.SaveActive()
}

// InsertChar routes one typed character through the auto-closer into the
// active buffer.
func (s *Session) InsertChar(ch rune) error {
	buf := s.Tabs.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	return s.auto.Type(buf, ch)
}

// InsertText inserts text at the cursor (replacing the selection if active)
// without auto-close processing — paste semantics.
func (s *Session) InsertText(text string) error {
	buf := s.Tabs.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	if sel, ok := buf.Selection(); ok {
		rng, err := buf.Replace(sel.Ordered(), text)
		if err != nil {
			return err
		}
		buf.ClearSelection()
		buf.SetCursor(rng.End)
		return nil
	}
	rng, err := buf.Insert(buf.Cursor(), text)
	if err != nil {
		return err
	}
	buf.SetCursor(rng.End)
	return nil
}

// DeleteRange removes a range from the active buffer.
func (s *Session) DeleteRange(rng Range) error {
	buf := s.Tabs.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	_, err := buf.Delete(rng)
	return err
}

// MoveCursor moves the active buffer's cursor, clamped into bounds.
func (s *Session) MoveCursor(p Pos) error {
	buf := s.Tabs.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	buf.SetCursor(p)
	return nil
}

// SetSelection sets the active buffer's selection.
func (s *Session) SetSelection(anchor, head Pos) error {
	buf := s.Tabs.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	buf.SetSelection(anchor, head)
	return nil
}

// FindOpen starts a find session over the active buffer.
func (s *Session) FindOpen(query string, caseSensitive bool) {
	s.search = NewSearchState(query, caseSensitive)
}

// FindClose ends the find session.
func (s *Session) FindClose() {
	s.search = nil
}

// FindActive reports whether a find session is open.
func (s *Session) FindActive() bool {
	return s.search != nil
}

// FindNext advances to the next match, selecting it and moving the cursor
// past it.
func (s *Session) FindNext() (Match, bool) {
	buf := s.Tabs.Active()
	if buf == nil || s.search == nil {
		return Match{}, false
	}
	m, ok := FindNext(buf, s.search)
	if ok {
		s.selectMatch(buf, m)
	}
	return m, ok
}

// FindPrev moves to the previous match.
func (s *Session) FindPrev() (Match, bool) {
	buf := s.Tabs.Active()
	if buf == nil || s.search == nil {
		return Match{}, false
	}
	m, ok := FindPrev(buf, s.search)
	if ok {
		s.selectMatch(buf, m)
	}
	return m, ok
}

func (s *Session) selectMatch(buf *Buffer, m Match) {
	end := Pos{Line: m.Pos.Line, Col: m.Pos.Col + m.Length}
	buf.SetSelection(m.Pos, end)
	buf.SetCursor(end)
}

// ReplaceOne replaces the current match if it is still intact.
func (s *Session) ReplaceOne(replacement string) (bool, error) {
	buf := s.Tabs.Active()
	if buf == nil || s.search == nil {
		return false, nil
	}
	return ReplaceCurrent(buf, s.search, replacement)
}

// ReplaceAll replaces every match in the active buffer.
func (s *Session) ReplaceAll(replacement string) (int, error) {
	buf := s.Tabs.Active()
	if buf == nil || s.search == nil {
		return 0, nil
	}
	return ReplaceAll(buf, s.search, replacement)
}

// MatchBracket finds the matching bracket for the active buffer's cursor,
// scanning the whole document and skipping brackets inside strings and
// comments.
func (s *Session) MatchBracket() (Pos, bool) {
	buf := s.Tabs.Active()
	if buf == nil {
		return Pos{}, false
	}
	return MatchBracket(buf, buf.Cursor(), s.classifier(buf))
}

// MatchBracketWithin is the windowed variant for interactive redraw.
func (s *Session) MatchBracketWithin(firstLine, lastLine int) (Pos, bool) {
	buf := s.Tabs.Active()
	if buf == nil {
		return Pos{}, false
	}
	return MatchBracketWithin(buf, buf.Cursor(), s.classifier(buf), firstLine, lastLine)
}

func (s *Session) classifier(buf *Buffer) Classifier {
	id, ok := s.Tabs.ActiveID()
	if !ok {
		return nil
	}
	st, ok := s.state[id]
	if !ok {
		return nil
	}
	return Classifier(highlight.Classifier(st.cache, buf))
}

// Guides returns the indent guides for a line of the active buffer.
func (s *Session) Guides(line int) []Guide {
	buf := s.Tabs.Active()
	if buf == nil {
		return nil
	}
	return GuidesForLine(buf, line, s.cfg.TabSize)
}

// LineSpans returns the highlight spans for a line of the active buffer.
func (s *Session) LineSpans(line int) []highlight.Span {
	buf := s.Tabs.Active()
	if buf == nil {
		return nil
	}
	id, _ := s.Tabs.ActiveID()
	st, ok := s.state[id]
	if !ok {
		return nil
	}
	return st.cache.LineSpans(buf, line)
}

// Minimap returns the active tab's minimap, or nil with no tabs open.
func (s *Session) Minimap() *Minimap {
	id, ok := s.Tabs.ActiveID()
	if !ok {
		return nil
	}
	st, ok := s.state[id]
	if !ok {
		return nil
	}
	return st.mini
}

// Language returns the highlighter language detected for the active tab.
func (s *Session) Language() string {
	id, ok := s.Tabs.ActiveID()
	if !ok {
		return ""
	}
	st, ok := s.state[id]
	if !ok {
		return ""
	}
	return st.hl.Language()
}
