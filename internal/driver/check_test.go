package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"htmlit/internal/diag"
	"htmlit/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.js", "const a = html`<div></div>`;\n")
	writeFile(t, dir, "bad.ts", "const b = html`</p>`;\n")
	writeFile(t, dir, "skip.txt", "not source\n")

	fs, results, err := CheckDir(context.Background(), dir, CheckOptions{Config: project.Default()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if fs == nil {
		t.Fatalf("nil FileSet")
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// результаты в отсортированном порядке путей: bad.ts, ok.js
	if results[0].Bag.Len() != 1 {
		t.Fatalf("bad.ts should have 1 diagnostic: %v", results[0].Bag.Items())
	}
	if results[1].Bag.Len() != 0 {
		t.Fatalf("ok.js should be clean: %v", results[1].Bag.Items())
	}
	// нулевой FileID — валидный идентификатор первого файла
	if !results[0].Loaded || results[0].FileID != 0 {
		t.Fatalf("first file should be loaded with id 0: %+v", results[0])
	}
	if !results[1].Loaded {
		t.Fatalf("second file should be loaded: %+v", results[1])
	}
}

func TestCheckDirSkipsNodeModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "const a = html`</p>`;\n")
	writeFile(t, dir, filepath.Join("node_modules", "dep", "b.js"), "const b = html`</p>`;\n")

	_, results, err := CheckDir(context.Background(), dir, CheckOptions{Config: project.Default()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("node_modules should be skipped: %v", results)
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.js")
	_, results, err := CheckFiles(context.Background(), []string{missing}, CheckOptions{Config: project.Default()})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if len(results) != 1 || results[0].Bag.Len() != 1 {
		t.Fatalf("expected a load diagnostic: %v", results)
	}
	if results[0].Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Fatalf("wrong code: %v", results[0].Bag.Items()[0])
	}
	if results[0].Loaded {
		t.Fatalf("missing file must not be marked loaded: %+v", results[0])
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.js", "const a = html`</p>`;\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := CheckOptions{Config: project.Default(), Cache: cache}

	_, first, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].FromCache {
		t.Fatalf("first run should not hit the cache")
	}

	_, second, err := CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].FromCache {
		t.Fatalf("second run should hit the cache")
	}
	if second[0].Bag.Len() != first[0].Bag.Len() {
		t.Fatalf("cached diagnostics differ: %v vs %v", second[0].Bag.Items(), first[0].Bag.Items())
	}
	got := second[0].Bag.Items()[0]
	want := first[0].Bag.Items()[0]
	if got.Message != want.Message || got.Primary.Start != want.Primary.Start {
		t.Fatalf("cached diagnostic mismatch: %+v vs %+v", got, want)
	}
}

func TestCacheInvalidatedByConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.js", "const a = tpl`</p>`;\n")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	cfg := project.Default()
	_, first, err := CheckDir(context.Background(), dir, CheckOptions{Config: cfg, Cache: cache})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Bag.Len() != 0 {
		t.Fatalf("tpl is not a default leader: %v", first[0].Bag.Items())
	}

	cfg.Literals.Leaders = []string{"tpl"}
	_, second, err := CheckDir(context.Background(), dir, CheckOptions{Config: cfg, Cache: cache})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second[0].FromCache {
		t.Fatalf("config change should miss the cache")
	}
	if second[0].Bag.Len() != 1 {
		t.Fatalf("tpl literal should now be checked: %v", second[0].Bag.Items())
	}
}

func TestMergeBags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "const a = html`</p>`;\n")
	writeFile(t, dir, "b.js", "const b = html`</q>`;\n")
	_, results, err := CheckDir(context.Background(), dir, CheckOptions{Config: project.Default()})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	merged := MergeBags(results, 16)
	if merged.Len() != 2 {
		t.Fatalf("expected 2 merged diagnostics, got %d", merged.Len())
	}
}
