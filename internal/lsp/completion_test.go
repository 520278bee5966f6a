package lsp

import (
	"strings"
	"testing"

	"htmlit/internal/literal"
)

// позиция сразу после маркера | в тексте
func posOf(t *testing.T, text string) (string, position) {
	t.Helper()
	idx := strings.IndexByte(text, '|')
	if idx < 0 {
		t.Fatalf("no cursor marker in %q", text)
	}
	clean := text[:idx] + text[idx+1:]
	line := strings.Count(clean[:idx], "\n")
	lineStart := strings.LastIndexByte(clean[:idx], '\n') + 1
	return clean, position{Line: line, Character: idx - lineStart}
}

func complete(t *testing.T, text string) completionList {
	t.Helper()
	clean, pos := posOf(t, text)
	m := literal.NewMatcher(nil)
	return buildCompletion(m, "file:///tmp/test.js", clean, "javascript", pos)
}

func hasLabel(list completionList, label string) bool {
	for _, item := range list.Items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func TestCompletionElementsAfterAngle(t *testing.T) {
	list := complete(t, "const a = html`<div><|</div>`;")
	if !hasLabel(list, "span") || !hasLabel(list, "li") {
		t.Fatalf("element completions missing: %v", list.Items)
	}
}

func TestCompletionElementPrefix(t *testing.T) {
	list := complete(t, "const a = html`<di|`;")
	if !hasLabel(list, "div") || !hasLabel(list, "dialog") {
		t.Fatalf("prefixed elements missing: %v", list.Items)
	}
	if hasLabel(list, "span") {
		t.Fatalf("prefix filter not applied: %v", list.Items)
	}
}

func TestCompletionAttributes(t *testing.T) {
	list := complete(t, "const a = html`<img |>`;")
	if !hasLabel(list, "src") || !hasLabel(list, "alt") {
		t.Fatalf("img attributes missing: %v", list.Items)
	}
	if !hasLabel(list, "class") {
		t.Fatalf("global attributes missing: %v", list.Items)
	}
}

func TestCompletionAttributePrefix(t *testing.T) {
	list := complete(t, "const a = html`<input pla|>`;")
	if !hasLabel(list, "placeholder") {
		t.Fatalf("placeholder missing: %v", list.Items)
	}
	if hasLabel(list, "type") {
		t.Fatalf("prefix filter not applied: %v", list.Items)
	}
}

func TestCompletionOutsideLiteral(t *testing.T) {
	list := complete(t, "const a = <|; const b = html`<div></div>`;")
	if len(list.Items) != 0 {
		t.Fatalf("completions offered outside a literal: %v", list.Items)
	}
}

func TestCompletionInsideAttributeValue(t *testing.T) {
	list := complete(t, "const a = html`<div class=\"|\">`;")
	if len(list.Items) != 0 {
		t.Fatalf("completions offered inside attribute value: %v", list.Items)
	}
}

func TestCompletionUnsupportedLanguage(t *testing.T) {
	clean, pos := posOf(t, "x = html`<|`")
	m := literal.NewMatcher(nil)
	list := buildCompletion(m, "file:///tmp/test.py", clean, "python", pos)
	if len(list.Items) != 0 {
		t.Fatalf("unsupported language should get nothing: %v", list.Items)
	}
}

func TestCompletionClosingTag(t *testing.T) {
	list := complete(t, "const a = html`<div></d|`;")
	if !hasLabel(list, "div") {
		t.Fatalf("closing tag completion missing: %v", list.Items)
	}
}

func TestCompletionContextKinds(t *testing.T) {
	cases := []struct {
		text    string
		kind    completionKind
		element string
		prefix  string
	}{
		{"<", complElement, "", ""},
		{"<di", complElement, "", "di"},
		{"</di", complElement, "", "di"},
		{"<div ", complAttribute, "div", ""},
		{"<div cla", complAttribute, "div", "cla"},
		{"<div class=\"a\" ", complAttribute, "div", ""},
		{"<div>text", complNone, "", ""},
		{"plain text", complNone, "", ""},
	}
	for _, tc := range cases {
		kind, element, prefix := completionContext(tc.text, len(tc.text))
		if kind != tc.kind || element != tc.element || prefix != tc.prefix {
			t.Fatalf("%q: got (%d %q %q), want (%d %q %q)",
				tc.text, kind, element, prefix, tc.kind, tc.element, tc.prefix)
		}
	}
}
