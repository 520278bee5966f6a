package literal

import (
	"testing"
)

func newTestResolver() *Resolver {
	return NewResolver(NewMatcher(nil))
}

func TestCollapseNestedListItem(t *testing.T) {
	r := newTestResolver()
	content := "<ul>${cond ? dom`<li>x</li>` : ''}</ul>"

	var nested []Extracted
	out := r.Collapse(content, func(e Extracted) { nested = append(nested, e) })

	if out != "<ul><li></li></ul>" {
		t.Fatalf("collapsed to %q", out)
	}
	if len(nested) != 1 {
		t.Fatalf("expected 1 nested literal, got %d", len(nested))
	}
	if nested[0].Content != "<li>x</li>" {
		t.Fatalf("nested content %q", nested[0].Content)
	}
}

func TestCollapseTernaryBothBranches(t *testing.T) {
	// обе ветки тернарника внутри одной интерполяции попадают в колбэк,
	// хотя замену всей интерполяции даёт только первая
	r := newTestResolver()
	content := "<ul>${cond ? dom`<li>a</li>` : dom`<li>b</li>`}</ul>"

	var nested []Extracted
	out := r.Collapse(content, func(e Extracted) { nested = append(nested, e) })

	if out != "<ul><li></li></ul>" {
		t.Fatalf("collapsed to %q", out)
	}
	if len(nested) != 2 {
		t.Fatalf("expected 2 nested literals, got %d", len(nested))
	}
	if nested[0].Content != "<li>a</li>" || nested[1].Content != "<li>b</li>" {
		t.Fatalf("nested contents %q, %q", nested[0].Content, nested[1].Content)
	}
}

func TestCollapseBareNestedLiteral(t *testing.T) {
	// вложенный литерал вне интерполяции заменяется сам по себе
	r := newTestResolver()
	out := r.Collapse("<div>dom`<span>a</span>`</div>", nil)
	if out != "<div><span></span></div>" {
		t.Fatalf("collapsed to %q", out)
	}
}

func TestCollapseSelfClosing(t *testing.T) {
	r := newTestResolver()
	out := r.Collapse("<p>${x ? dom`<br/>` : ''}</p>", nil)
	if out != "<p><br/></p>" {
		t.Fatalf("collapsed to %q", out)
	}
}

func TestCollapsePlaceholderFallback(t *testing.T) {
	r := newTestResolver()
	out := r.Collapse("<p>${f(dom`no tags here`)}</p>", nil)
	if out != "<p><div></div></p>" {
		t.Fatalf("collapsed to %q", out)
	}
}

func TestOuterStructureLeadingInterpolation(t *testing.T) {
	r := newTestResolver()
	// ведущее выражение само содержит литерал: берём его структуру
	got := r.outerStructure("${cond ? html`<li>a</li>` : ''} trailing")
	if got != "<li></li>" {
		t.Fatalf("outer structure %q", got)
	}

	// ведущее выражение без литерала пропускается
	got = r.outerStructure("${x} <td>v</td>")
	if got != "<td></td>" {
		t.Fatalf("outer structure %q", got)
	}
}

func TestCollapsePassBound(t *testing.T) {
	r := newTestResolver()
	r.MaxPasses = 1
	// после одного прохода вложенные формы глубже не разворачиваются,
	// остаток валидируется как есть — без ошибок
	content := "<a>${q ? dom`<b>${w ? dom`<i>x</i>` : ''}</b>` : ''}</a>"
	out := r.Collapse(content, nil)
	if out != "<a><b></b></a>" {
		t.Fatalf("collapsed to %q", out)
	}
}

func TestCollapseUnterminatedNestedSkipped(t *testing.T) {
	r := newTestResolver()
	content := "<div>${dom`<never closed}</div>"
	out := r.Collapse(content, nil)
	if out != content {
		t.Fatalf("unterminated nested literal must be left alone, got %q", out)
	}
}
