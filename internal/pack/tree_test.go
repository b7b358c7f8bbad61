package pack

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
)

// writePackDir materializes a pack directory for loading tests.
func writePackDir(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestLoadTree(t *testing.T) {
	dir := t.TempDir()
	writePackDir(t, dir, map[string]string{
		"pack.mcmeta":                      `{"pack":{"pack_format":15}}`,
		"pack.png":                         "not really a png",
		"assets/minecraft/lang/en_us.json": `{"a":"1"}`,
		"data/minecraft/tags/items/x.json": `{"values":[]}`,
		"README.md":                        "root junk is not payload",
	})

	fs := fsops.NewRealFS()
	tree, err := LoadTree(fs, dir)
	if err != nil {
		t.Fatalf("LoadTree() error = %v", err)
	}

	wantPaths := []string{
		"assets/minecraft/lang/en_us.json",
		"data/minecraft/tags/items/x.json",
		"pack.mcmeta",
		"pack.png",
	}
	if got := tree.Paths(); !reflect.DeepEqual(got, wantPaths) {
		t.Errorf("tree paths = %v, want %v", got, wantPaths)
	}
	if string(tree["assets/minecraft/lang/en_us.json"]) != `{"a":"1"}` {
		t.Errorf("lang content mismatch")
	}
}

func TestLoad_SetsNameAndInfo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "My Pack")
	writePackDir(t, dir, map[string]string{
		"pack.mcmeta": `{"pack":{"pack_format":9,"description":"d"}}`,
	})

	p, err := Load(fsops.NewRealFS(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Name != "My Pack" {
		t.Errorf("Name = %q, want directory base name", p.Name)
	}
	if !p.Info.HasFormat || p.Info.PackFormat != 9 {
		t.Errorf("Info = %+v, want pack_format 9", p.Info)
	}
}

func TestWriteTree_RoundTrip(t *testing.T) {
	fs := fsops.NewRealFS()
	tree := Tree{
		"pack.mcmeta":                      []byte(`{"pack":{"pack_format":15}}`),
		"assets/minecraft/lang/en_us.json": []byte(`{"a":"1"}`),
	}

	dir := filepath.Join(t.TempDir(), "out")
	if err := WriteTree(fs, dir, tree); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}

	loaded, err := LoadTree(fs, dir)
	if err != nil {
		t.Fatalf("LoadTree() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, tree) {
		t.Errorf("round-trip mismatch:\ngot  %v\nwant %v", loaded, tree)
	}
}

func TestWriteTree_RejectsUnsafePath(t *testing.T) {
	fs := fsops.NewRealFS()
	tree := Tree{"../escape.txt": []byte("nope")}

	if err := WriteTree(fs, t.TempDir(), tree); err == nil {
		t.Fatal("expected error for traversal path")
	}
}

func TestDetect(t *testing.T) {
	base := t.TempDir()
	writePackDir(t, filepath.Join(base, "Zeta"), map[string]string{
		"pack.mcmeta": `{"pack":{"pack_format":15}}`,
	})
	writePackDir(t, filepath.Join(base, "alpha"), map[string]string{
		"pack.mcmeta": `{"pack":{"pack_format":9}}`,
	})
	writePackDir(t, filepath.Join(base, "not-a-pack"), map[string]string{
		"readme.txt": "no manifest here",
	})
	writePackDir(t, filepath.Join(base, "merged_pack"), map[string]string{
		"pack.mcmeta": `{"pack":{"pack_format":15}}`,
	})

	dirs, err := Detect(fsops.NewRealFS(), base)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	var names []string
	for _, d := range dirs {
		names = append(names, filepath.Base(d))
	}
	// Case-insensitive sort; previous merge output skipped.
	want := []string{"alpha", "Zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Detect() = %v, want %v", names, want)
	}
}
