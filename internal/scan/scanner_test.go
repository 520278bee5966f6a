package scan

import (
	"strings"
	"testing"
)

func TestClosingBacktickPlain(t *testing.T) {
	text := []byte("<div></div>` tail")
	off, ok := ClosingBacktick(text, 0)
	if !ok {
		t.Fatalf("expected closing backtick")
	}
	if off != 11 {
		t.Fatalf("expected offset 11, got %d", off)
	}
}

func TestClosingBacktickEscaped(t *testing.T) {
	// экранированный backtick не закрывает литерал
	text := []byte("a \\` b ` rest")
	off, ok := ClosingBacktick(text, 0)
	if !ok {
		t.Fatalf("expected closing backtick")
	}
	if text[off] != '`' || off != 7 {
		t.Fatalf("expected offset 7, got %d", off)
	}
}

func TestClosingBacktickSkipsInterpolation(t *testing.T) {
	// backtick внутри ${...} — вложенный литерал, не конец
	text := []byte("<ul>${cond ? inner`<li>x</li>` : ''}</ul>` tail")
	off, ok := ClosingBacktick(text, 0)
	if !ok {
		t.Fatalf("expected closing backtick")
	}
	want := strings.Index(string(text), "</ul>`") + len("</ul>")
	if off != want {
		t.Fatalf("expected offset %d, got %d", want, off)
	}
}

func TestClosingBacktickBraceInString(t *testing.T) {
	// скобка в строковом литерале не закрывает интерполяцию
	text := []byte(`x ${"}"} y` + "` tail")
	off, ok := ClosingBacktick(text, 0)
	if !ok {
		t.Fatalf("expected closing backtick")
	}
	if text[off] != '`' {
		t.Fatalf("offset %d is %q, not a backtick", off, text[off])
	}
	if off != 10 {
		t.Fatalf("expected offset 10, got %d", off)
	}
}

func TestClosingBacktickUnterminated(t *testing.T) {
	if _, ok := ClosingBacktick([]byte("<div> no closing"), 0); ok {
		t.Fatalf("expected not found")
	}
	// незакрытая интерполяция тоже означает «не найдено»
	if _, ok := ClosingBacktick([]byte("<div>${unclosed"), 0); ok {
		t.Fatalf("expected not found for unclosed interpolation")
	}
}

func TestCloseBraceAtDepthZeroIsNoop(t *testing.T) {
	text := []byte("} still fine ` tail")
	off, ok := ClosingBacktick(text, 0)
	if !ok || text[off] != '`' {
		t.Fatalf("stray close brace should not derail the scan: off=%d ok=%v", off, ok)
	}
}

func TestInBlockComment(t *testing.T) {
	text := []byte("let a = 1; /* dom`<li>` */ let b = 2;")
	inside := strings.Index(string(text), "dom")
	after := strings.Index(string(text), "let b")
	if !InBlockComment(text, inside) {
		t.Fatalf("offset %d should be inside the comment", inside)
	}
	if InBlockComment(text, after) {
		t.Fatalf("offset %d should be outside the comment", after)
	}
	if InBlockComment(text, 0) {
		t.Fatalf("offset 0 is never inside a comment")
	}
}

func TestInBlockCommentUnterminated(t *testing.T) {
	text := []byte("code /* open comment html`x`")
	if !InBlockComment(text, len(text)-1) {
		t.Fatalf("everything after an unterminated /* is inside the comment")
	}
}

func TestInterpolationSpans(t *testing.T) {
	text := []byte(`<p>${a}</p><p>${"}"}</p>`)
	spans := InterpolationSpans(text)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if got := string(text[spans[0].Start:spans[0].End]); got != "${a}" {
		t.Fatalf("first span %q", got)
	}
	if got := string(text[spans[1].Start:spans[1].End]); got != `${"}"}` {
		t.Fatalf("second span %q", got)
	}
}

func TestInterpolationSpansNestedLiteral(t *testing.T) {
	text := []byte("${cond ? x`<b>${y}</b>` : ''} tail")
	spans := InterpolationSpans(text)
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if got := string(text[spans[0].Start:spans[0].End]); got != "${cond ? x`<b>${y}</b>` : ''}" {
		t.Fatalf("span %q", got)
	}
}

func TestInterpolationSpansUnbalancedDropped(t *testing.T) {
	spans := InterpolationSpans([]byte("a ${never closes"))
	if len(spans) != 0 {
		t.Fatalf("expected no spans, got %+v", spans)
	}
}

func TestInterpolationSpanAt(t *testing.T) {
	text := []byte("${head} rest")
	sp, ok := InterpolationSpanAt(text, 0)
	if !ok || sp.Start != 0 || string(text[sp.Start:sp.End]) != "${head}" {
		t.Fatalf("got %+v ok=%v", sp, ok)
	}
	if _, ok := InterpolationSpanAt(text, 1); ok {
		t.Fatalf("offset 1 does not start an interpolation")
	}
}

func TestContextStackNesting(t *testing.T) {
	// строка внутри интерполяции внутри литерала: 'it' не закрывает ничего лишнего
	text := []byte("<a href=\"${url('q')}\">x</a>` t")
	off, ok := ClosingBacktick(text, 0)
	if !ok || text[off] != '`' {
		t.Fatalf("expected closing backtick, got off=%d ok=%v", off, ok)
	}
}
