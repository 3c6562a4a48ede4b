package editor

import (
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// TabID identifies an open tab. IDs are stable for the life of the tab:
// closing or reordering other tabs never retargets an ID.
type TabID string

type tab struct {
	id  TabID
	buf *Buffer
}

// TabManager tracks open file buffers in display order and routes commands
// to the active one. It is pure data management, no UI widget dependency.
type TabManager struct {
	fs     afero.Fs
	tabs   []tab
	active int // index of active tab, or -1 if none
}

// NewTabManager creates a TabManager with no open buffers. If fs is nil the
// host filesystem is used.
func NewTabManager(fs afero.Fs) *TabManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &TabManager{fs: fs, active: -1}
}

// Count returns the number of open tabs.
func (tm *TabManager) Count() int {
	return len(tm.tabs)
}

// Active returns the currently active buffer, or nil if no tabs are open.
func (tm *TabManager) Active() *Buffer {
	if tm.active < 0 || tm.active >= len(tm.tabs) {
		return nil
	}
	return tm.tabs[tm.active].buf
}

// ActiveID returns the active tab's ID, if any.
func (tm *TabManager) ActiveID() (TabID, bool) {
	if tm.active < 0 || tm.active >= len(tm.tabs) {
		return "", false
	}
	return tm.tabs[tm.active].id, true
}

// Buffers returns all open buffers in tab (display) order.
func (tm *TabManager) Buffers() []*Buffer {
	out := make([]*Buffer, len(tm.tabs))
	for i, t := range tm.tabs {
		out[i] = t.buf
	}
	return out
}

// IDs returns all tab IDs in display order.
func (tm *TabManager) IDs() []TabID {
	out := make([]TabID, len(tm.tabs))
	for i, t := range tm.tabs {
		out[i] = t.id
	}
	return out
}

// IndexOf returns the display index of the tab, or -1 if it is not open.
func (tm *TabManager) IndexOf(id TabID) int {
	for i, t := range tm.tabs {
		if t.id == id {
			return i
		}
	}
	return -1
}

// BufferByID returns the buffer owned by the tab, or nil if it is not open.
func (tm *TabManager) BufferByID(id TabID) *Buffer {
	if i := tm.IndexOf(id); i >= 0 {
		return tm.tabs[i].buf
	}
	return nil
}

// NewUntitled opens a new empty, untitled buffer, makes it active, and
// returns its tab ID.
func (tm *TabManager) NewUntitled() TabID {
	t := tab{id: TabID(uuid.NewString()), buf: NewBuffer(tm.fs)}
	tm.tabs = append(tm.tabs, t)
	tm.active = len(tm.tabs) - 1
	return t.id
}

// OpenFile opens the file at path. If a tab with the same absolute path is
// already open, that tab is activated instead of opening a duplicate. The
// new (or existing) tab becomes active.
func (tm *TabManager) OpenFile(path string) (TabID, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	for i, t := range tm.tabs {
		if t.buf.Path() == absPath {
			tm.active = i
			return t.id, nil
		}
	}

	buf := NewBuffer(tm.fs)
	if err := buf.Open(absPath); err != nil {
		return "", err
	}

	t := tab{id: TabID(uuid.NewString()), buf: buf}
	tm.tabs = append(tm.tabs, t)
	tm.active = len(tm.tabs) - 1
	return t.id, nil
}

// Activate switches the active tab. Returns ErrUnknownTab if the ID is not
// open.
func (tm *TabManager) Activate(id TabID) error {
	i := tm.IndexOf(id)
	if i < 0 {
		return ErrUnknownTab
	}
	tm.active = i
	return nil
}

// Close removes the tab. A dirty buffer is not discarded: Close returns
// ErrUnsavedChanges and leaves the tab open, so the caller can prompt, save,
// or call ForceClose. Closing the active tab activates the previous tab,
// else the next, else no tab.
func (tm *TabManager) Close(id TabID) error {
	i := tm.IndexOf(id)
	if i < 0 {
		return ErrUnknownTab
	}
	if tm.tabs[i].buf.Dirty() {
		return ErrUnsavedChanges
	}
	tm.closeAt(i)
	return nil
}

// ForceClose removes the tab regardless of unsaved changes.
func (tm *TabManager) ForceClose(id TabID) error {
	i := tm.IndexOf(id)
	if i < 0 {
		return ErrUnknownTab
	}
	tm.closeAt(i)
	return nil
}

// SaveActive writes the active buffer to its path.
func (tm *TabManager) SaveActive() error {
	buf := tm.Active()
	if buf == nil {
		return ErrNoActiveBuffer
	}
	return buf.Save()
}

func (tm *TabManager) closeAt(i int) {
	wasActive := i == tm.active
	tm.tabs = append(tm.tabs[:i], tm.tabs[i+1:]...)

	switch {
	case len(tm.tabs) == 0:
		tm.active = -1
	case wasActive:
		// Previous tab, else next.
		if i > 0 {
			tm.active = i - 1
		} else {
			tm.active = 0
		}
	case i < tm.active:
		tm.active--
	}
}
