package source

import (
	"testing"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("page.ts", []byte("const a = 1;\nconst b = 2;\n"))
	f := fs.Get(id)
	if f.Lang != "typescript" {
		t.Fatalf("expected typescript lang, got %q", f.Lang)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}

	// offset 13 is the 'c' of the second "const"
	start, _ := fs.Resolve(Span{File: id, Start: 13, End: 14})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("expected 2:1, got %d:%d", start.Line, start.Col)
	}
}

func TestLineForOffset(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.js", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line int
	}{
		{0, 0},
		{3, 0}, // the \n itself still belongs to line 0
		{4, 1},
		{8, 2},
		{12, 2},
	}
	for _, c := range cases {
		if got := f.LineForOffset(c.off); got != c.line {
			t.Errorf("offset %d: expected line %d, got %d", c.off, c.line, got)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.js", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1: %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2: %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3: %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 should be empty, got %q", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected change")
	}
	if string(out) != "a\nb\rc" {
		t.Fatalf("unexpected result: %q", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed {
		t.Fatalf("no CR, expected no change")
	}
	if string(out) != "plain" {
		t.Fatalf("unexpected result: %q", out)
	}
}

func TestDecodeUTF16(t *testing.T) {
	// "hi" little-endian with BOM
	in := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	out, ok := decodeUTF16(in)
	if !ok {
		t.Fatalf("expected UTF-16 detection")
	}
	if string(out) != "hi" {
		t.Fatalf("decoded %q", out)
	}

	plain := []byte("hi")
	out, ok = decodeUTF16(plain)
	if ok {
		t.Fatalf("plain ASCII mistaken for UTF-16")
	}
	if string(out) != "hi" {
		t.Fatalf("content changed: %q", out)
	}
}

func TestLangForPath(t *testing.T) {
	cases := map[string]string{
		"a.js":      "javascript",
		"a.mjs":     "javascript",
		"a.jsx":     "javascriptreact",
		"a.ts":      "typescript",
		"a.tsx":     "typescriptreact",
		"dir/a.tsx": "typescriptreact",
		"a.go":      "",
		"noext":     "",
	}
	for path, want := range cases {
		if got := LangForPath(path); got != want {
			t.Errorf("%s: expected %q, got %q", path, want, got)
		}
	}
}
