// Package htmldata — плоские таблицы имён HTML-элементов и их
// атрибутов для автодополнения. Таблицы статичны и подаются наружу
// как данные; никакой логики, кроме слияния глобальных атрибутов.
package htmldata

import "sort"

// Elements — имена элементов, предлагаемые после '<'.
var Elements = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "cite", "code", "col", "colgroup",
	"datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hr", "html",
	"i", "iframe", "img", "input", "ins",
	"kbd",
	"label", "legend", "li", "link",
	"main", "map", "mark", "meta", "meter",
	"nav", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "param", "picture", "pre", "progress",
	"q",
	"s", "samp", "script", "section", "select", "slot", "small",
	"source", "span", "strong", "style", "sub", "summary", "sup",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th",
	"thead", "time", "title", "tr", "track",
	"u", "ul",
	"var", "video",
	"wbr",
}

// attributes — атрибуты по элементам. Ключ "*" — глобальные,
// добавляются к каждому элементу.
var attributes = map[string][]string{
	"*": {
		"accesskey", "autocapitalize", "class", "contenteditable",
		"dir", "draggable", "hidden", "id", "inert", "lang",
		"onclick", "oninput", "onkeydown", "onkeyup", "onchange",
		"part", "role", "slot", "spellcheck", "style", "tabindex",
		"title", "translate",
	},
	"a":        {"href", "target", "rel", "download", "hreflang", "type"},
	"area":     {"alt", "coords", "shape", "href", "target"},
	"audio":    {"src", "controls", "autoplay", "loop", "muted", "preload"},
	"base":     {"href", "target"},
	"button":   {"type", "disabled", "name", "value", "form", "autofocus"},
	"canvas":   {"width", "height"},
	"col":      {"span"},
	"colgroup": {"span"},
	"details":  {"open"},
	"dialog":   {"open"},
	"embed":    {"src", "type", "width", "height"},
	"fieldset": {"disabled", "form", "name"},
	"form":     {"action", "method", "enctype", "target", "novalidate", "autocomplete", "name"},
	"iframe":   {"src", "srcdoc", "name", "sandbox", "allow", "width", "height", "loading"},
	"img":      {"src", "srcset", "sizes", "alt", "width", "height", "loading", "decoding"},
	"input": {
		"type", "name", "value", "placeholder", "required", "disabled",
		"readonly", "checked", "min", "max", "step", "pattern",
		"autocomplete", "autofocus", "form", "list", "multiple",
	},
	"label":    {"for", "form"},
	"li":       {"value"},
	"link":     {"href", "rel", "type", "media", "sizes", "as", "crossorigin"},
	"map":      {"name"},
	"meta":     {"name", "content", "charset", "http-equiv"},
	"meter":    {"value", "min", "max", "low", "high", "optimum"},
	"object":   {"data", "type", "width", "height", "name", "form"},
	"ol":       {"start", "reversed", "type"},
	"optgroup": {"label", "disabled"},
	"option":   {"value", "label", "selected", "disabled"},
	"output":   {"for", "form", "name"},
	"progress": {"value", "max"},
	"script":   {"src", "type", "async", "defer", "crossorigin", "integrity", "nomodule"},
	"select":   {"name", "multiple", "size", "required", "disabled", "form", "autocomplete"},
	"slot":     {"name"},
	"source":   {"src", "srcset", "sizes", "type", "media"},
	"style":    {"media", "type"},
	"td":       {"colspan", "rowspan", "headers"},
	"template": {},
	"textarea": {
		"name", "rows", "cols", "placeholder", "required", "disabled",
		"readonly", "maxlength", "minlength", "wrap", "form",
	},
	"th":    {"colspan", "rowspan", "headers", "scope", "abbr"},
	"time":  {"datetime"},
	"track": {"src", "kind", "srclang", "label", "default"},
	"video": {"src", "poster", "controls", "autoplay", "loop", "muted", "preload", "width", "height", "playsinline"},
}

// KnownElement проверяет, есть ли имя в таблице элементов.
func KnownElement(name string) bool {
	for _, e := range Elements {
		if e == name {
			return true
		}
	}
	return false
}

// AttributesFor возвращает атрибуты для элемента: специфичные плюс
// глобальные из "*". Для неизвестного элемента — только глобальные.
// Результат отсортирован и не содержит дубликатов.
func AttributesFor(element string) []string {
	own := attributes[element]
	global := attributes["*"]
	out := make([]string, 0, len(own)+len(global))
	seen := make(map[string]struct{}, len(own)+len(global))
	for _, list := range [2][]string{own, global} {
		for _, a := range list {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}
