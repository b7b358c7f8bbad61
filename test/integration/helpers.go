package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

// writePackDir lays out a pack directory under base with the given files.
func writePackDir(t *testing.T, base, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(base, name)
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir %s: %v", p, err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	return dir
}

// loadPack reads a pack directory through the real filesystem.
func loadPack(t *testing.T, dir string) *pack.Pack {
	t.Helper()
	p, err := pack.Load(fsops.NewRealFS(), dir)
	if err != nil {
		t.Fatalf("load pack %s: %v", dir, err)
	}
	return p
}

// meta renders a pack.mcmeta body with the given format and description.
func meta(t *testing.T, format int, description string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"pack": map[string]any{"pack_format": format, "description": description},
	})
	if err != nil {
		t.Fatalf("marshal meta: %v", err)
	}
	return string(data)
}

// decodeJSON unmarshals data into a generic map.
func decodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return m
}
