package literal

import (
	"regexp"
	"strings"

	"htmlit/internal/scan"
)

// DefaultMaxPasses bounds the iterative nested-literal replacement. The
// value is a safety limit against pathological or circular replacement
// chains, kept configurable.
const DefaultMaxPasses = 20

// DefaultPlaceholderElement stands in when a nested literal has no
// detectable leading tag.
const DefaultPlaceholderElement = "div"

// leadingTag матчит первый открывающий тег с якорем в начале текста.
var leadingTag = regexp.MustCompile(`^\s*<([A-Za-z][A-Za-z0-9:_-]*)((?:[^>"']|"[^"]*"|'[^']*')*)>`)

// Resolver collapses nested literals inside an extracted literal's content
// so the ancestor's tag balance can be checked independently.
type Resolver struct {
	Matcher            *Matcher
	MaxPasses          int
	PlaceholderElement string
}

// NewResolver returns a resolver with default bounds for the given matcher.
func NewResolver(m *Matcher) *Resolver {
	return &Resolver{
		Matcher:            m,
		MaxPasses:          DefaultMaxPasses,
		PlaceholderElement: DefaultPlaceholderElement,
	}
}

func (r *Resolver) maxPasses() int {
	if r.MaxPasses > 0 {
		return r.MaxPasses
	}
	return DefaultMaxPasses
}

func (r *Resolver) placeholder() string {
	if r.PlaceholderElement != "" {
		return r.PlaceholderElement
	}
	return DefaultPlaceholderElement
}

// Collapse rewrites content so that every nested literal (and the
// interpolation wrapping it, when there is one) is replaced by its outer
// structure. onNested is invoked for each nested literal before the
// ancestor text is rewritten, innermost literals first via the caller's
// recursion, so diagnostics land at the most specific location.
//
// Replacement is applied iteratively up to MaxPasses; if the bound is hit,
// the remaining unresolved forms are left as-is and validated as plain
// text — best effort, no error raised.
func (r *Resolver) Collapse(content string, onNested func(Extracted)) string {
	text := content
	for pass := 0; pass < r.maxPasses(); pass++ {
		if !r.rewriteOnce(&text, onNested) {
			break
		}
	}
	return text
}

type replacement struct {
	start int
	end   int
	text  string
}

// rewriteOnce performs one replacement pass. Returns false when nothing
// was rewritten.
func (r *Resolver) rewriteOnce(text *string, onNested func(Extracted)) bool {
	b := []byte(*text)
	matches := r.Matcher.Matches(b)
	if len(matches) == 0 {
		return false
	}
	interp := scan.InterpolationSpans(b)

	var repls []replacement
	lastEnd := 0     // конец текущего заменяемого спана
	lastLiteral := 0 // конец тела последнего обработанного литерала
	for _, m := range matches {
		if m.LeaderOffset < lastLiteral {
			// потомок уже обработанного литерала: его проверит рекурсия
			continue
		}
		ext, ok := Extract(b, m)
		if !ok {
			continue
		}
		if onNested != nil {
			onNested(ext)
		}
		lastLiteral = ext.Span.End + 1
		if m.LeaderOffset < lastEnd {
			// сосед по уже заменяемой интерполяции (ветка тернарника):
			// проверен выше, но замену интерполяции даёт первый литерал
			continue
		}
		structure := r.outerStructure(ext.Content)

		// Если литерал сидит внутри интерполяции, заменяем её целиком:
		// иначе подстановщик выражений перемолол бы вставленную структуру.
		start, end := m.LeaderOffset, ext.Span.End+1
		for _, sp := range interp {
			if sp.Start <= start && end <= sp.End {
				start, end = sp.Start, sp.End
				break
			}
		}
		repls = append(repls, replacement{start: start, end: end, text: structure})
		lastEnd = end
	}
	if len(repls) == 0 {
		return false
	}

	var sb strings.Builder
	prev := 0
	for _, rep := range repls {
		sb.WriteString((*text)[prev:rep.start])
		sb.WriteString(rep.text)
		prev = rep.end
	}
	sb.WriteString((*text)[prev:])
	*text = sb.String()
	return true
}

// outerStructure computes the minimal fragment standing in for a nested
// literal: strip leading interpolation expressions (recursing into one that
// itself holds a literal), then anchor-match the first opening tag. A
// self-closing element collapses to itself; anything else to <T></T>;
// no tag at all to the generic placeholder. Keeping the literal's own
// outermost tag preserves content-model-sensitive nesting: a list-item
// literal must collapse to <li></li>, not an arbitrary element.
func (r *Resolver) outerStructure(content string) string {
	text := content
	for {
		trimmed := strings.TrimLeft(text, " \t\r\n")
		sp, ok := scan.InterpolationSpanAt([]byte(trimmed), 0)
		if !ok {
			text = trimmed
			break
		}
		expr := trimmed[:sp.End]
		if ms := r.Matcher.Matches([]byte(expr)); len(ms) > 0 {
			if ext, found := Extract([]byte(expr), ms[0]); found {
				return r.outerStructure(ext.Content)
			}
		}
		text = trimmed[sp.End:]
	}

	m := leadingTag.FindStringSubmatch(text)
	if m == nil {
		p := r.placeholder()
		return "<" + p + "></" + p + ">"
	}
	name := m[1]
	if strings.HasSuffix(strings.TrimSpace(m[2]), "/") {
		return "<" + name + "/>"
	}
	return "<" + name + "></" + name + ">"
}
