package fold

import (
	"context"
	"testing"

	"htmlit/internal/literal"
	"htmlit/internal/source"
)

func fileFor(t *testing.T, text string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(text))
	return fs.Get(id)
}

func TestRangesMultilineLiteral(t *testing.T) {
	f := fileFor(t, "const x = html`\n<div>\n  <p>hi</p>\n</div>\n`;\n")
	r := NewResolver(literal.NewMatcher(nil))
	got := r.Ranges(context.Background(), f)
	if len(got) != 1 {
		t.Fatalf("expected 1 range, got %v", got)
	}
	if got[0].StartLine != 0 || got[0].EndLine != 4 {
		t.Fatalf("wrong range: %+v", got[0])
	}
}

func TestRangesShortLiteralSkipped(t *testing.T) {
	// literal на двух строках — меньше трёх, не сворачиваем
	f := fileFor(t, "const x = html`<div>\n</div>`;\n")
	r := NewResolver(literal.NewMatcher(nil))
	if got := r.Ranges(context.Background(), f); len(got) != 0 {
		t.Fatalf("two-line literal should not fold: %v", got)
	}
}

func TestRangesUnterminatedSkipped(t *testing.T) {
	f := fileFor(t, "const x = html`\n<div>\nnever closed\n")
	r := NewResolver(literal.NewMatcher(nil))
	if got := r.Ranges(context.Background(), f); len(got) != 0 {
		t.Fatalf("unterminated literal should not fold: %v", got)
	}
}

func TestRangesNestedDropped(t *testing.T) {
	text := "const x = html`\n<ul>${items.map(i => dom`\n<li>\n${i}\n</li>\n`)}</ul>\n`;\n"
	f := fileFor(t, text)
	r := NewResolver(literal.NewMatcher(nil))
	got := r.Ranges(context.Background(), f)
	if len(got) != 1 {
		t.Fatalf("expected only the outer range, got %v", got)
	}
	if got[0].StartLine != 0 || got[0].EndLine != 6 {
		t.Fatalf("wrong outer range: %+v", got[0])
	}
}

func TestRangesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := fileFor(t, "const x = html`\n<div>\n</div>\n`;\n")
	r := NewResolver(literal.NewMatcher(nil))
	if got := r.Ranges(ctx, f); len(got) != 0 {
		t.Fatalf("cancelled resolver should return nothing started: %v", got)
	}
}

func TestRangesCustomMinSpan(t *testing.T) {
	f := fileFor(t, "const x = html`<div>\n</div>`;\n")
	r := NewResolver(literal.NewMatcher(nil))
	r.SetMinLineSpan(1)
	if got := r.Ranges(context.Background(), f); len(got) != 1 {
		t.Fatalf("min span 1 should emit the two-line range: %v", got)
	}
}
