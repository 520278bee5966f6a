// Package htmlcheck проверяет баланс открывающих/закрывающих тегов
// в уже очищенном HTML-тексте литерала. На вход подаётся текст, из
// которого вложенные литералы и интерполяции уже убраны, поэтому
// здесь достаточно примитивного сканера тегов без полноценного
// HTML-парсера.
package htmlcheck

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"htmlit/internal/diag"
	"htmlit/internal/source"
)

type TokenKind uint8

const (
	TokenOpen TokenKind = iota
	TokenClose
	TokenSelfClose
)

// TagToken — один тег в очищенном тексте. Start/End — смещения в этом
// тексте (не в документе): вызывающий код прибавляет базовое смещение
// литерала сам.
type TagToken struct {
	Name  string
	Kind  TokenKind
	Start int
	End   int
}

// Атрибуты пропускаем целиком; кавычки внутри них могут содержать '>',
// поэтому строки-значения съедаются как единое целое.
var tagPattern = regexp.MustCompile(`<(/?)([A-Za-z][A-Za-z0-9:_-]*)((?:[^>"']|"[^"]*"|'[^']*')*)>`)

// voidElements — элементы, у которых закрывающего тега не бывает.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// IsVoid сообщает, относится ли имя к void-элементам.
// Имена сравниваются с учётом регистра.
func IsVoid(name string) bool {
	_, ok := voidElements[name]
	return ok
}

// Tokens разбирает текст на теги. Текст между тегами игнорируется.
func Tokens(text string) []TagToken {
	idxs := tagPattern.FindAllStringSubmatchIndex(text, -1)
	if len(idxs) == 0 {
		return nil
	}
	toks := make([]TagToken, 0, len(idxs))
	for _, m := range idxs {
		name := text[m[4]:m[5]]
		kind := TokenOpen
		if m[2] != m[3] {
			kind = TokenClose
		} else {
			attrs := text[m[6]:m[7]]
			if strings.HasSuffix(strings.TrimRight(attrs, " \t\r\n"), "/") {
				kind = TokenSelfClose
			}
		}
		toks = append(toks, TagToken{
			Name:  name,
			Kind:  kind,
			Start: m[0],
			End:   m[1],
		})
	}
	return toks
}

type openTag struct {
	name       string
	start, end int
}

// Validate прогоняет стековую проверку по очищенному тексту и
// отдаёт диагностики в rep. base — абсолютное смещение текста в
// документе, file — его идентификатор.
//
// При отмене контекста возвращаем частичный результат: всё, что уже
// отправлено в rep, остаётся, остаток текста не проверяется.
func Validate(ctx context.Context, text string, file source.FileID, base uint32, rep diag.Reporter) {
	var stack []openTag
	for _, tok := range Tokens(text) {
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch tok.Kind {
		case TokenClose:
			if len(stack) == 0 {
				rep.Report(
					diag.HTMLUnmatchedClosing, diag.SevError,
					tokenSpan(file, base, tok),
					fmt.Sprintf("unmatched closing tag </%s>", tok.Name),
					nil,
				)
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.name != tok.Name {
				// Верхушка всё равно снята: никакого lookahead
				// и повторных попыток сопоставления не делаем.
				rep.Report(
					diag.HTMLMismatchedClosing, diag.SevError,
					tokenSpan(file, base, tok),
					fmt.Sprintf("expected closing tag </%s> but found </%s>", top.name, tok.Name),
					[]diag.Note{{
						Span: spanAt(file, base, top.start, top.end),
						Msg:  fmt.Sprintf("opening tag <%s> here", top.name),
					}},
				)
			}
		case TokenOpen:
			if IsVoid(tok.Name) {
				continue
			}
			stack = append(stack, openTag{name: tok.Name, start: tok.Start, end: tok.End})
		case TokenSelfClose:
			// в стек не попадает
		}
	}
	for _, open := range stack {
		rep.Report(
			diag.HTMLUnclosedTag, diag.SevWarning,
			spanAt(file, base, open.start, open.end),
			fmt.Sprintf("unclosed tag <%s>", open.name),
			nil,
		)
	}
}

func tokenSpan(file source.FileID, base uint32, tok TagToken) source.Span {
	return spanAt(file, base, tok.Start, tok.End)
}

func spanAt(file source.FileID, base uint32, start, end int) source.Span {
	rel := source.Span{File: file, Start: uint32(start), End: uint32(end)}
	return rel.ShiftRight(base)
}
