package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempRepo(t *testing.T) (*FS, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs, dir
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestList_OnlyXML(t *testing.T) {
	s, root := tempRepo(t)
	write(t, root, "model/Business/BusinessActor_id-1.xml", "<a/>")
	write(t, root, "model/folder.xml", "<m/>")
	write(t, root, "README.md", "not xml")

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.Checksum == "" {
			t.Errorf("missing checksum for %s", it.Path)
		}
	}
}

func TestList_Subdir(t *testing.T) {
	s, root := tempRepo(t)
	write(t, root, "model/a.xml", "<a/>")
	write(t, root, "types/catalog.json", "{}")

	items, err := s.List("model")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Path != filepath.Join("model", "a.xml") {
		t.Errorf("items = %+v", items)
	}
}

func TestRead(t *testing.T) {
	s, root := tempRepo(t)
	write(t, root, "model/a.xml", "<a/>")

	data, err := s.Read("model/a.xml")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "<a/>" {
		t.Errorf("content = %q", data)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s, _ := tempRepo(t)

	for _, p := range []string{"../../etc/passwd", "../outside.xml", "/etc/shadow"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestIsDirIsFile(t *testing.T) {
	s, root := tempRepo(t)
	write(t, root, "model/folder.xml", "<m/>")

	if !s.IsDir("model") {
		t.Error("model should be a dir")
	}
	if s.IsDir("model/folder.xml") {
		t.Error("folder.xml is not a dir")
	}
	if !s.IsFile("model/folder.xml") {
		t.Error("folder.xml should be a file")
	}
	if s.IsFile("missing") {
		t.Error("missing path should not be a file")
	}
	if s.IsDir("../..") {
		t.Error("escaping path should not resolve")
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	if _, err := NewFS(filepath.Join(os.TempDir(), "graflint-does-not-exist-"+t.Name())); err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "graflint-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
