package lsp

import "testing"

func TestOffsetForPositionASCII(t *testing.T) {
	text := "abc\ndef\n"
	if off := offsetForPosition(text, position{Line: 1, Character: 2}); off != 6 {
		t.Fatalf("got %d, want 6", off)
	}
}

func TestOffsetForPositionUTF16(t *testing.T) {
	// 😀 занимает 4 байта и 2 UTF-16 единицы
	text := "a😀b"
	if off := offsetForPosition(text, position{Line: 0, Character: 3}); off != 5 {
		t.Fatalf("surrogate pair width ignored: got %d, want 5", off)
	}
	if off := offsetForPosition(text, position{Line: 0, Character: 1}); off != 1 {
		t.Fatalf("got %d, want 1", off)
	}
}

func TestOffsetForPositionPastEnd(t *testing.T) {
	text := "ab"
	if off := offsetForPosition(text, position{Line: 5, Character: 0}); off != len(text) {
		t.Fatalf("got %d, want %d", off, len(text))
	}
}

func TestApplyChangesFullText(t *testing.T) {
	got := applyChanges("old", []textDocumentContentChangeEvent{{Text: "new"}})
	if got != "new" {
		t.Fatalf("got %q", got)
	}
}

func TestApplyChangesIncremental(t *testing.T) {
	text := "const a = 1;\n"
	change := textDocumentContentChangeEvent{
		Range: &lspRange{
			Start: position{Line: 0, Character: 6},
			End:   position{Line: 0, Character: 7},
		},
		Text: "b",
	}
	got := applyChanges(text, []textDocumentContentChangeEvent{change})
	if got != "const b = 1;\n" {
		t.Fatalf("got %q", got)
	}
}
