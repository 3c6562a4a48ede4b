// Package commands defines the editor's command surface: stable command IDs
// mapped to host-provided callbacks, suitable for a palette or keymap layer.
package commands

// Command is one palette entry. OnExecute is bound by the host.
type Command struct {
	ID        string
	Label     string
	Shortcut  string
	Category  string
	OnExecute func()
}

// Actions holds callbacks for all editor commands.
type Actions struct {
	OpenFolder  func()
	OpenFile    func()
	NewFile     func()
	SaveFile    func()
	CloseTab    func()
	NextTab     func()
	PrevTab     func()
	Find        func()
	FindNext    func()
	FindPrev    func()
	CloseFind   func()
	Replace     func()
	ReplaceAll  func()
	GoToBracket func()
	DeleteLine  func()
	MoveLineUp  func()
	MoveLineDn  func()
	DupLine     func()
	SelectAll   func()
	Quit        func()
}

// AllCommands returns the full command list for the palette.
func AllCommands(a Actions) []Command {
	return []Command{
		{ID: "file.open-folder", Label: "Open Folder", Shortcut: "Ctrl+Shift+O", Category: "File", OnExecute: a.OpenFolder},
		{ID: "file.open", Label: "Open File", Shortcut: "Ctrl+O", Category: "File", OnExecute: a.OpenFile},
		{ID: "file.new", Label: "New File", Shortcut: "Ctrl+N", Category: "File", OnExecute: a.NewFile},
		{ID: "file.save", Label: "Save File", Shortcut: "Ctrl+S", Category: "File", OnExecute: a.SaveFile},
		{ID: "file.close", Label: "Close Tab", Shortcut: "Ctrl+W", Category: "File", OnExecute: a.CloseTab},
		{ID: "tab.next", Label: "Next Tab", Shortcut: "Ctrl+Tab", Category: "Tabs", OnExecute: a.NextTab},
		{ID: "tab.prev", Label: "Previous Tab", Shortcut: "Ctrl+Shift+Tab", Category: "Tabs", OnExecute: a.PrevTab},
		{ID: "edit.find", Label: "Find", Shortcut: "Ctrl+F", Category: "Edit", OnExecute: a.Find},
		{ID: "edit.find-next", Label: "Find Next", Shortcut: "F3", Category: "Edit", OnExecute: a.FindNext},
		{ID: "edit.find-prev", Label: "Find Previous", Shortcut: "Shift+F3", Category: "Edit", OnExecute: a.FindPrev},
		{ID: "edit.find-close", Label: "Close Find", Shortcut: "Esc", Category: "Edit", OnExecute: a.CloseFind},
		{ID: "edit.replace", Label: "Replace", Shortcut: "Ctrl+H", Category: "Edit", OnExecute: a.Replace},
		{ID: "edit.replace-all", Label: "Replace All", Shortcut: "Ctrl+Shift+H", Category: "Edit", OnExecute: a.ReplaceAll},
		{ID: "edit.goto-bracket", Label: "Go to Matching Bracket", Shortcut: "Ctrl+M", Category: "Edit", OnExecute: a.GoToBracket},
		{ID: "edit.delete-line", Label: "Delete Line", Shortcut: "Ctrl+K", Category: "Edit", OnExecute: a.DeleteLine},
		{ID: "edit.move-line-up", Label: "Move Line Up", Shortcut: "Alt+Up", Category: "Edit", OnExecute: a.MoveLineUp},
		{ID: "edit.move-line-down", Label: "Move Line Down", Shortcut: "Alt+Down", Category: "Edit", OnExecute: a.MoveLineDn},
		{ID: "edit.duplicate-line", Label: "Duplicate Line", Shortcut: "Ctrl+D", Category: "Edit", OnExecute: a.DupLine},
		{ID: "edit.select-all", Label: "Select All", Shortcut: "Ctrl+A", Category: "Edit", OnExecute: a.SelectAll},
		{ID: "app.quit", Label: "Quit", Shortcut: "Ctrl+Q", Category: "App", OnExecute: a.Quit},
	}
}

// ByID returns the command with the given ID, if registered.
func ByID(cmds []Command, id string) (Command, bool) {
	for _, c := range cmds {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}
