package editor

import "errors"

var (
	// ErrInvalidPosition is returned when an edit position falls outside
	// buffer bounds. Edits never clamp silently: a caller that passes a bad
	// position has lost track of the document and must find out.
	ErrInvalidPosition = errors.New("position out of buffer bounds")

	// ErrUnsavedChanges signals that a close would discard unsaved edits.
	// It is advisory: the caller decides whether to prompt, save, or force.
	ErrUnsavedChanges = errors.New("buffer has unsaved changes")

	// ErrNoPath is returned when saving a buffer that has no file path.
	ErrNoPath = errors.New("buffer has no path; use SaveAs")

	// ErrUnknownTab is returned for operations on a tab ID that is not open.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrNoActiveBuffer is returned by operations that need an active tab
	// when no tabs are open.
	ErrNoActiveBuffer = errors.New("no active buffer")
)
