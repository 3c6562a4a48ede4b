package commands

import "testing"

func TestAllCommandsBinding(t *testing.T) {
	fired := ""
	a := Actions{
		SaveFile: func() { fired = "save" },
		Find:     func() { fired = "find" },
	}
	cmds := AllCommands(a)

	ids := map[string]bool{}
	for _, c := range cmds {
		if c.ID == "" || c.Label == "" || c.Category == "" {
			t.Errorf("command %+v missing metadata", c)
		}
		if ids[c.ID] {
			t.Errorf("duplicate command ID %q", c.ID)
		}
		ids[c.ID] = true
	}

	cmd, ok := ByID(cmds, "file.save")
	if !ok {
		t.Fatal("file.save not registered")
	}
	cmd.OnExecute()
	if fired != "save" {
		t.Errorf("fired = %q, want save", fired)
	}

	cmd, ok = ByID(cmds, "edit.find")
	if !ok {
		t.Fatal("edit.find not registered")
	}
	cmd.OnExecute()
	if fired != "find" {
		t.Errorf("fired = %q, want find", fired)
	}

	if _, ok := ByID(cmds, "no.such.command"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestCommandSurface(t *testing.T) {
	cmds := AllCommands(Actions{})
	for _, id := range []string{
		"file.open-folder", "file.open", "file.new", "file.save", "file.close",
		"tab.next", "tab.prev",
		"edit.find", "edit.find-next", "edit.find-prev", "edit.find-close",
		"edit.replace", "edit.replace-all",
		"edit.goto-bracket", "edit.delete-line", "edit.select-all",
		"app.quit",
	} {
		if _, ok := ByID(cmds, id); !ok {
			t.Errorf("command %q not registered", id)
		}
	}
}
