package fsops

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestAtomicWrite(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	target := filepath.Join(dir, "sub", "file.json")

	if err := fs.AtomicWrite(target, []byte(`{"a":1}`), 0644); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(data, []byte(`{"a":1}`)) {
		t.Errorf("content = %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestAtomicWrite_Overwrites(t *testing.T) {
	fs := NewRealFS()
	target := filepath.Join(t.TempDir(), "file.txt")

	if err := fs.AtomicWrite(target, []byte("first"), 0644); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := fs.AtomicWrite(target, []byte("second"), 0644); err != nil {
		t.Fatalf("AtomicWrite() overwrite error = %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}
}

func TestWalkFiles(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	files := []string{
		"pack.mcmeta",
		"assets/ns/lang/en_us.json",
		"assets/ns/textures/block/stone.png",
	}
	for _, rel := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// Empty directories are not reported.
	if err := os.MkdirAll(filepath.Join(dir, "assets", "empty"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var got []string
	err := fs.WalkFiles(dir, func(rel string) error {
		got = append(got, rel)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkFiles() error = %v", err)
	}

	sort.Strings(got)
	want := append([]string(nil), files...)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("walked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("walked[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExistsAndIsDir(t *testing.T) {
	fs := NewRealFS()
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := fs.Exists(file); err != nil || !ok {
		t.Errorf("Exists(file) = %v, %v", ok, err)
	}
	if ok, err := fs.Exists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v", ok, err)
	}
	if ok, err := fs.IsDir(dir); err != nil || !ok {
		t.Errorf("IsDir(dir) = %v, %v", ok, err)
	}
	if ok, err := fs.IsDir(file); err != nil || ok {
		t.Errorf("IsDir(file) = %v, %v", ok, err)
	}
}

func TestValidateRelPath(t *testing.T) {
	fs := NewRealFS()
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "simple file", path: "pack.mcmeta", wantErr: false},
		{name: "nested path", path: "assets/ns/lang/en_us.json", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "current dir", path: ".", wantErr: true},
		{name: "absolute", path: "/etc/passwd", wantErr: true},
		{name: "parent traversal", path: "../escape", wantErr: true},
		{name: "embedded traversal", path: "assets/../../escape", wantErr: true},
		{name: "traversal that cleans away", path: "assets/../pack.mcmeta", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateRelPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRelPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	fs := NewRealFS()
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "hex id", id: "a3f2b4c5d6e7f890", wantErr: false},
		{name: "with underscore", id: "session_merged_pack", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "dot", id: ".", wantErr: true},
		{name: "dotdot", id: "..", wantErr: true},
		{name: "forward slash", id: "a/b", wantErr: true},
		{name: "backslash", id: `a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
