package session

import (
	"path/filepath"
	"testing"
)

func TestFileKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	kv, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	installID := kv.InstallID()
	if installID == "" {
		t.Fatalf("expected install id on fresh store")
	}
	if err := kv.Set("token", "a.b.c"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.InstallID() != installID {
		t.Fatalf("install id changed across reopen: %q -> %q", installID, reopened.InstallID())
	}
	v, ok, err := reopened.Get("token")
	if err != nil || !ok || v != "a.b.c" {
		t.Fatalf("get after reopen: %q ok=%v err=%v", v, ok, err)
	}

	if err := reopened.Delete("token"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("third open: %v", err)
	}
	if _, ok, _ := third.Get("token"); ok {
		t.Fatalf("deleted key came back after reopen")
	}
}

func TestFileKVCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	kv, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := kv.Set("token", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
}
