// Package fold вычисляет диапазоны сворачивания для литералов с
// разметкой: каждый подтверждённый литерал, занимающий хотя бы три
// строки, даёт один диапазон. Вложенные литералы своих диапазонов не
// получают — их и так накрывает диапазон предка.
package fold

import (
	"context"
	"sort"

	"htmlit/internal/literal"
	"htmlit/internal/scan"
	"htmlit/internal/source"
)

// MinLineSpan — минимальная разница строк (endLine − startLine),
// при которой диапазон ещё имеет смысл показывать.
const MinLineSpan = 2

// Range — диапазон сворачивания в 0-базных номерах строк.
type Range struct {
	StartLine int
	EndLine   int
}

type Resolver struct {
	matcher *literal.Matcher
	minSpan int
}

func NewResolver(m *literal.Matcher) *Resolver {
	return &Resolver{matcher: m, minSpan: MinLineSpan}
}

// SetMinLineSpan переопределяет порог из конфигурации проекта.
func (r *Resolver) SetMinLineSpan(n int) {
	if n > 0 {
		r.minSpan = n
	}
}

// Ranges находит диапазоны сворачивания в файле. Отмена контекста
// проверяется на каждой итерации по совпадениям лидера; при отмене
// возвращается то, что успели накопить.
func (r *Resolver) Ranges(ctx context.Context, f *source.File) []Range {
	var out []Range
	for _, m := range r.matcher.Matches(f.Content) {
		select {
		case <-ctx.Done():
			return keepOutermost(out)
		default:
		}
		end, ok := scan.ClosingBacktick(f.Content, m.BacktickOffset+1)
		if !ok {
			continue
		}
		startLine := f.LineForOffset(uint32(m.BacktickOffset))
		endLine := f.LineForOffset(uint32(end))
		if endLine-startLine < r.minSpan {
			continue
		}
		out = append(out, Range{StartLine: startLine, EndLine: endLine})
	}
	return keepOutermost(out)
}

// keepOutermost выбрасывает диапазоны, строго содержащиеся в других:
// старт не позже, конец не раньше и диапазоны не совпадают.
func keepOutermost(ranges []Range) []Range {
	if len(ranges) < 2 {
		return ranges
	}
	kept := make([]Range, 0, len(ranges))
	for i, r := range ranges {
		contained := false
		for j, other := range ranges {
			if i == j || other == r {
				continue
			}
			if other.StartLine <= r.StartLine && other.EndLine >= r.EndLine {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, r)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].StartLine != kept[j].StartLine {
			return kept[i].StartLine < kept[j].StartLine
		}
		return kept[i].EndLine < kept[j].EndLine
	})
	return kept
}
