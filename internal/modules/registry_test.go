package modules

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/installctl/internal/testutil/testlog"
)

func TestLookupKnownModules(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	want := map[string]string{
		"core":    "master_install_core.sh",
		"ai":      "master_install_ai.sh",
		"android": "master_install_android.sh",
		"wsl":     "master_install_wsl.sh",
		"lcd":     "master_install_lcd.sh",
		"zip":     "create_zip.sh",
	}
	if r.Len() != len(want) {
		t.Fatalf("expected %d modules, got %d", len(want), r.Len())
	}
	for id, script := range want {
		m, ok := r.Lookup(id)
		if !ok {
			t.Fatalf("expected module %q", id)
		}
		if m.Script != script {
			t.Fatalf("module %q script=%q want %q", id, m.Script, script)
		}
	}
}

func TestLookupIsExact(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	for _, id := range []string{"", "bogus", "LCD", " lcd", "lcd ", "core.sh", "master_install_core.sh"} {
		if _, ok := r.Lookup(id); ok {
			t.Fatalf("expected %q to be unknown", id)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if _, err := r.Resolve("bogus"); !errors.Is(err, ErrUnknownModule) {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}
	m, err := r.Resolve("zip")
	if err != nil || m.ID != "zip" {
		t.Fatalf("resolve zip: m=%+v err=%v", m, err)
	}
}

func TestListSorted(t *testing.T) {
	testlog.Start(t)
	list := NewRegistry().List()
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	want := []string{"ai", "android", "core", "lcd", "wsl", "zip"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("list not sorted: got=%v want=%v", ids, want)
	}
}

func TestListReturnsCopies(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	list := r.List()
	list[0].Script = "rm.sh"

	m, _ := r.Lookup(list[0].ID)
	if m.Script == "rm.sh" {
		t.Fatalf("registry mutated through List result")
	}
}

func TestCommandJoinsWorkDir(t *testing.T) {
	testlog.Start(t)
	m, _ := NewRegistry().Lookup("core")
	name, args := Command(m, "/home/u/.acode_dev_master")
	if name != filepath.Join("/home/u/.acode_dev_master", "master_install_core.sh") {
		t.Fatalf("unexpected command name %q", name)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}
