package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/AsagiriBeta/PackMerger/internal/archive"
	"github.com/AsagiriBeta/PackMerger/internal/engine"
	"github.com/AsagiriBeta/PackMerger/internal/fsops"
	"github.com/AsagiriBeta/PackMerger/internal/pack"
)

func TestMerge_FullCycle(t *testing.T) {
	base := t.TempDir()
	fs := fsops.NewRealFS()

	lowDir := writePackDir(t, base, "low", map[string]string{
		"pack.mcmeta":                          meta(t, 9, "low pack"),
		"pack.png":                             "low-icon",
		"assets/minecraft/lang/en_us.json":     `{"item.apple":"Apple","item.stone":"Stone"}`,
		"assets/minecraft/sounds.json":         `{"ambient.cave":{"sounds":["low/cave"]}}`,
		"assets/minecraft/font/default.json":   `{"providers":[{"type":"bitmap","file":"low.png"}]}`,
		"assets/minecraft/atlases/blocks.json": `{"sources":[{"type":"directory","source":"low"}]}`,
		"assets/minecraft/textures/block.png":  "low-texture",
		"data/minecraft/tags/blocks/ores.json": `{"values":["minecraft:coal_ore"]}`,
	})
	highDir := writePackDir(t, base, "high", map[string]string{
		"pack.mcmeta":                          meta(t, 15, "high pack"),
		"assets/minecraft/lang/en_us.json":     `{"item.stone":"Rock","item.dirt":"Dirt"}`,
		"assets/minecraft/sounds.json":         `{"ambient.sea":{"sounds":["high/sea"]}}`,
		"assets/minecraft/font/default.json":   `{"providers":[{"type":"bitmap","file":"high.png"}]}`,
		"assets/minecraft/atlases/blocks.json": `{"sources":[{"type":"directory","source":"high"}]}`,
		"assets/minecraft/textures/block.png":  "high-texture",
		"data/minecraft/tags/blocks/ores.json": `{"values":["minecraft:iron_ore"]}`,
	})

	result, err := engine.New().Merge(context.Background(), &engine.MergeRequest{
		Packs: []*pack.Pack{loadPack(t, lowDir), loadPack(t, highDir)},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	outDir := filepath.Join(base, "merged")
	if err := pack.WriteTree(fs, outDir, result.Tree); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}

	read := func(rel string) []byte {
		data, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		return data
	}

	// Language entries union, higher priority wins conflicts.
	lang := decodeJSON(t, read("assets/minecraft/lang/en_us.json"))
	if lang["item.apple"] != "Apple" || lang["item.stone"] != "Rock" || lang["item.dirt"] != "Dirt" {
		t.Errorf("merged lang = %v", lang)
	}

	// Sound events from both packs survive.
	sounds := decodeJSON(t, read("assets/minecraft/sounds.json"))
	if _, ok := sounds["ambient.cave"]; !ok {
		t.Error("lower-priority sound event lost")
	}
	if _, ok := sounds["ambient.sea"]; !ok {
		t.Error("higher-priority sound event lost")
	}

	// Font providers and atlas sources concatenate.
	font := decodeJSON(t, read("assets/minecraft/font/default.json"))
	if providers, ok := font["providers"].([]any); !ok || len(providers) != 2 {
		t.Errorf("providers = %v, want both entries", font["providers"])
	}
	atlas := decodeJSON(t, read("assets/minecraft/atlases/blocks.json"))
	if sources, ok := atlas["sources"].([]any); !ok || len(sources) != 2 {
		t.Errorf("sources = %v, want both entries", atlas["sources"])
	}

	// Tag values union.
	tags := decodeJSON(t, read("data/minecraft/tags/blocks/ores.json"))
	if values, ok := tags["values"].([]any); !ok || len(values) != 2 {
		t.Errorf("tag values = %v, want both entries", tags["values"])
	}

	// Generic files come from the highest-priority owner.
	if got := string(read("assets/minecraft/textures/block.png")); got != "high-texture" {
		t.Errorf("texture = %q, want high-texture", got)
	}
	if got := string(read("pack.png")); got != "low-icon" {
		t.Errorf("pack.png = %q, want the only contributor's icon", got)
	}

	// Manifest is synthesized with the max pack_format.
	manifest := decodeJSON(t, read("pack.mcmeta"))
	packSection, ok := manifest["pack"].(map[string]any)
	if !ok {
		t.Fatalf("manifest = %v", manifest)
	}
	if packSection["pack_format"] != float64(15) {
		t.Errorf("pack_format = %v, want 15", packSection["pack_format"])
	}
}

func TestMerge_TagReplaceDiscardsLowerPriorities(t *testing.T) {
	base := t.TempDir()

	lowDir := writePackDir(t, base, "low", map[string]string{
		"pack.mcmeta":                          meta(t, 15, "low"),
		"data/minecraft/tags/blocks/ores.json": `{"values":["minecraft:coal_ore","minecraft:iron_ore"]}`,
	})
	highDir := writePackDir(t, base, "high", map[string]string{
		"pack.mcmeta":                          meta(t, 15, "high"),
		"data/minecraft/tags/blocks/ores.json": `{"replace":true,"values":["minecraft:gold_ore"]}`,
	})

	result, err := engine.New().Merge(context.Background(), &engine.MergeRequest{
		Packs: []*pack.Pack{loadPack(t, lowDir), loadPack(t, highDir)},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	tags := decodeJSON(t, result.Tree["data/minecraft/tags/blocks/ores.json"])
	values, ok := tags["values"].([]any)
	if !ok || len(values) != 1 || values[0] != "minecraft:gold_ore" {
		t.Errorf("values = %v, want only the replacing pack's entry", tags["values"])
	}
	if tags["replace"] != true {
		t.Errorf("replace = %v, want true", tags["replace"])
	}
}

func TestMerge_ZipRoundTrip(t *testing.T) {
	base := t.TempDir()

	dir := writePackDir(t, base, "only", map[string]string{
		"pack.mcmeta":                      meta(t, 15, "only"),
		"assets/minecraft/lang/en_us.json": `{"k":"v"}`,
	})

	result, err := engine.New().Merge(context.Background(), &engine.MergeRequest{
		Packs: []*pack.Pack{loadPack(t, dir)},
	})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	zipData, err := archive.ZipBytes(result.Tree)
	if err != nil {
		t.Fatalf("ZipBytes() error = %v", err)
	}
	tree, err := archive.ExtractPack(zipData)
	if err != nil {
		t.Fatalf("ExtractPack() error = %v", err)
	}
	if len(tree) != len(result.Tree) {
		t.Fatalf("round trip produced %d paths, want %d", len(tree), len(result.Tree))
	}
	for rel, content := range result.Tree {
		if !bytes.Equal(tree[rel], content) {
			t.Errorf("content mismatch at %s", rel)
		}
	}
}

func TestMerge_RemergeIsStable(t *testing.T) {
	base := t.TempDir()
	fs := fsops.NewRealFS()

	lowDir := writePackDir(t, base, "low", map[string]string{
		"pack.mcmeta":                      meta(t, 9, "low"),
		"assets/minecraft/lang/en_us.json": `{"a":"1","b":"2"}`,
	})
	highDir := writePackDir(t, base, "high", map[string]string{
		"pack.mcmeta":                      meta(t, 15, "high"),
		"assets/minecraft/lang/en_us.json": `{"b":"9"}`,
	})

	first, err := engine.New().Merge(context.Background(), &engine.MergeRequest{
		Packs: []*pack.Pack{loadPack(t, lowDir), loadPack(t, highDir)},
	})
	if err != nil {
		t.Fatalf("first Merge() error = %v", err)
	}

	outDir := filepath.Join(base, "merged")
	if err := pack.WriteTree(fs, outDir, first.Tree); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}

	second, err := engine.New().Merge(context.Background(), &engine.MergeRequest{
		Packs:     []*pack.Pack{loadPack(t, outDir)},
		Overrides: pack.ManifestOverrides{Description: "Merged: low + high"},
	})
	if err != nil {
		t.Fatalf("second Merge() error = %v", err)
	}

	for rel, content := range first.Tree {
		if !bytes.Equal(second.Tree[rel], content) {
			t.Errorf("re-merge changed %s", rel)
		}
	}
}
