// Package engine связывает конвейер проверки разметки в литералах:
// поиск лидеров → извлечение тела литерала → свёртка вложенных
// литералов (каждый проверяется независимо) → подстановка выражений →
// стековая проверка баланса тегов. Диагностики всех литералов файла
// складываются в один Bag.
package engine

import (
	"context"

	"htmlit/internal/diag"
	"htmlit/internal/htmlcheck"
	"htmlit/internal/literal"
	"htmlit/internal/scan"
	"htmlit/internal/source"
)

// Options задаются из конфигурации проекта; нулевые поля получают
// значения по умолчанию.
type Options struct {
	Leaders            []string
	PlaceholderElement string
	MaxPasses          int
}

type Engine struct {
	matcher  *literal.Matcher
	resolver *literal.Resolver
}

func New(opts Options) *Engine {
	m := literal.NewMatcher(opts.Leaders)
	r := literal.NewResolver(m)
	if opts.PlaceholderElement != "" {
		r.PlaceholderElement = opts.PlaceholderElement
	}
	if opts.MaxPasses > 0 {
		r.MaxPasses = opts.MaxPasses
	}
	return &Engine{matcher: m, resolver: r}
}

// Matcher отдаёт матчер лидеров — его же используют fold-резолвер и
// LSP-сервер, чтобы все фазы видели одинаковый список лидеров.
func (e *Engine) Matcher() *literal.Matcher {
	return e.matcher
}

// Check проверяет все литералы файла и добавляет диагностики в bag.
// Для неподдерживаемого языка — no-op: файл просто не наш.
func (e *Engine) Check(ctx context.Context, f *source.File, bag *diag.Bag) {
	if !source.LangSupported(f.Lang) {
		return
	}
	lastEnd := 0
	for _, m := range e.matcher.Matches(f.Content) {
		select {
		case <-ctx.Done():
			return
		default:
		}
		// лидер внутри уже обработанного литерала: его проверит
		// рекурсия свёртки, второй раз не нужно
		if m.BacktickOffset < lastEnd {
			continue
		}
		ext, ok := literal.Extract(f.Content, m)
		if !ok {
			continue
		}
		lastEnd = ext.Span.End + 1
		e.checkLiteral(ctx, f.ID, ext.Content, uint32(ext.AbsoluteOffset), bag)
	}
}

// checkLiteral валидирует один литерал. Вложенные литералы проверяются
// первыми через колбэк свёртки — обычная рекурсия по стеку вызовов.
func (e *Engine) checkLiteral(ctx context.Context, file source.FileID, content string, base uint32, bag *diag.Bag) {
	collapsed := e.resolver.Collapse(content, func(inner literal.Extracted) {
		e.checkLiteral(ctx, file, inner.Content, base+uint32(inner.AbsoluteOffset), bag)
	})
	cleaned := literal.SubstituteInterpolations(collapsed)
	htmlcheck.Validate(ctx, cleaned, file, base, diag.BagReporter{Bag: bag})
}

// LiteralInfo — найденный литерал для вывода наружу (CLI, отладка).
type LiteralInfo struct {
	LeaderOffset int
	Span         scan.Span
	Content      string
}

// Literals перечисляет подтверждённые литералы файла, включая
// вложенные. Незакрытые кандидаты пропускаются.
func (e *Engine) Literals(ctx context.Context, f *source.File) []LiteralInfo {
	if !source.LangSupported(f.Lang) {
		return nil
	}
	var out []LiteralInfo
	for _, m := range e.matcher.Matches(f.Content) {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		ext, ok := literal.Extract(f.Content, m)
		if !ok {
			continue
		}
		out = append(out, LiteralInfo{
			LeaderOffset: m.LeaderOffset,
			Span:         ext.Span,
			Content:      ext.Content,
		})
	}
	return out
}
