package lsp

import (
	"encoding/json"
	"strings"

	"htmlit/internal/htmldata"
	"htmlit/internal/literal"
	"htmlit/internal/source"
)

const (
	completionItemKindField    = 5
	completionItemKindProperty = 10
)

type completionKind uint8

const (
	complNone completionKind = iota
	complElement
	complAttribute
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params completionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	text, lang, ok := s.docSnapshot(uri)
	if !ok {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	s.mu.Lock()
	matcher := s.eng.Matcher()
	s.mu.Unlock()
	result := buildCompletion(matcher, uri, text, lang, params.Position)
	return s.sendResponse(msg.ID, result)
}

// buildCompletion отвечает на запрос автодополнения. Сначала жёсткие
// ворота: поддерживаемый язык и курсор внутри литерала с разметкой —
// иначе пустой список, чтобы не мусорить в обычном коде.
func buildCompletion(matcher *literal.Matcher, uri, text, lang string, pos position) completionList {
	empty := completionList{Items: []completionItem{}}
	if lang == "" {
		lang = source.LangForPath(uriToPath(uri))
	}
	if !source.LangSupported(lang) {
		return empty
	}
	offset := offsetForPosition(text, pos)
	if !literal.InsideLiteral([]byte(text), offset, matcher) {
		return empty
	}
	kind, element, prefix := completionContext(text, offset)
	switch kind {
	case complElement:
		return completionList{Items: elementItems(prefix)}
	case complAttribute:
		return completionList{Items: attributeItems(element, prefix)}
	}
	return empty
}

func elementItems(prefix string) []completionItem {
	items := make([]completionItem, 0, len(htmldata.Elements))
	for _, name := range htmldata.Elements {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, completionItem{
			Label: name,
			Kind:  completionItemKindProperty,
		})
	}
	return items
}

func attributeItems(element, prefix string) []completionItem {
	attrs := htmldata.AttributesFor(element)
	items := make([]completionItem, 0, len(attrs))
	for _, name := range attrs {
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		items = append(items, completionItem{
			Label:  name,
			Kind:   completionItemKindField,
			Detail: "<" + element + "> attribute",
		})
	}
	return items
}

// completionContext решает, что просят дополнить в байтовой позиции:
// имя тега (сразу после '<' или '</') или имя атрибута (внутри
// открывающего тега после пробела). Внутри значения атрибута — ничего.
func completionContext(text string, offset int) (completionKind, string, string) {
	if offset > len(text) {
		offset = len(text)
	}
	lastLt := strings.LastIndexByte(text[:offset], '<')
	if lastLt < 0 {
		return complNone, "", ""
	}
	if gt := strings.LastIndexByte(text[:offset], '>'); gt > lastLt {
		return complNone, "", ""
	}
	segment := text[lastLt+1 : offset]

	// нечётное число кавычек — курсор внутри значения атрибута
	if strings.Count(segment, `"`)%2 == 1 || strings.Count(segment, `'`)%2 == 1 {
		return complNone, "", ""
	}

	body := strings.TrimPrefix(segment, "/")
	if isNameChars(body) {
		return complElement, "", body
	}

	// внутри тега: первое слово — элемент, хвост — префикс атрибута
	fields := strings.FieldsFunc(segment, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	if len(fields) == 0 {
		return complNone, "", ""
	}
	element := strings.TrimPrefix(fields[0], "/")
	prefix := ""
	if !endsWithSpace(segment) {
		last := fields[len(fields)-1]
		if !isNameChars(last) {
			// хвост вида attr="..." или attr= — не просим имя атрибута
			return complNone, "", ""
		}
		if len(fields) == 1 {
			// ещё печатается имя тега
			return complElement, "", element
		}
		prefix = last
	}
	return complAttribute, element, prefix
}

func isNameChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == ':', c == '_':
		default:
			return false
		}
	}
	return true
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	switch s[len(s)-1] {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}
