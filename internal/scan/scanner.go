// Package scan implements the lexical context scanner used by every other
// phase: a position-advancing state machine that walks JS/TS source while
// tracking strings, nested backtick literals, block comments and
// interpolation depth.
//
// Nesting is modeled as an explicit stack of context frames rather than a
// set of boolean fields, so string-inside-interpolation-inside-literal
// resolves at arbitrary depth. The bottom frame is always CtxNormal.
package scan

// ContextKind identifies the active lexical context at a scan position.
type ContextKind uint8

const (
	CtxNormal ContextKind = iota
	CtxSingleQuote
	CtxDoubleQuote
	CtxNestedLiteral
	CtxBlockComment
)

func (k ContextKind) String() string {
	switch k {
	case CtxNormal:
		return "normal"
	case CtxSingleQuote:
		return "single-quote"
	case CtxDoubleQuote:
		return "double-quote"
	case CtxNestedLiteral:
		return "nested-literal"
	case CtxBlockComment:
		return "block-comment"
	}
	return "unknown"
}

// Scanner advances byte by byte through text, updating its context stack.
// Создавайте через New; нулевое значение не годится (нет нижнего фрейма).
type Scanner struct {
	text    []byte
	off     int
	frames  []ContextKind
	depth   int  // interpolation depth, clamped at 0
	escaped bool // предыдущий байт был неэкранированным '\'
}

// New returns a scanner positioned at start in Normal context, depth 0.
func New(text []byte, start int) *Scanner {
	if start < 0 {
		start = 0
	}
	return &Scanner{
		text:   text,
		off:    start,
		frames: []ContextKind{CtxNormal},
	}
}

// Context returns the active (topmost) context.
func (s *Scanner) Context() ContextKind {
	return s.frames[len(s.frames)-1]
}

// Depth returns the current interpolation depth.
func (s *Scanner) Depth() int {
	return s.depth
}

// Offset returns the current byte offset.
func (s *Scanner) Offset() int {
	return s.off
}

func (s *Scanner) eof() bool {
	return s.off >= len(s.text)
}

func (s *Scanner) peek() byte {
	return s.text[s.off]
}

func (s *Scanner) peek2() (byte, byte, bool) {
	if s.off+1 >= len(s.text) {
		return 0, 0, false
	}
	return s.text[s.off], s.text[s.off+1], true
}

func (s *Scanner) push(k ContextKind) {
	s.frames = append(s.frames, k)
}

func (s *Scanner) pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// step consumes one unit: a single byte, or a two-byte token (${, /*, */).
// Правила применяются в порядке приоритета: экранирование, кавычки,
// backtick, ${, скобки, комментарии.
func (s *Scanner) step() {
	c := s.peek()
	top := s.Context()

	if top == CtxBlockComment {
		// внутри комментария работает только */
		if b0, b1, ok := s.peek2(); ok && b0 == '*' && b1 == '/' {
			s.pop()
			s.off += 2
			return
		}
		s.off++
		return
	}

	// Экранирование: съеденный backslash гасит следующий байт и не
	// переносится через итерацию дважды.
	if s.escaped {
		s.escaped = false
		s.off++
		return
	}
	if c == '\\' {
		s.escaped = true
		s.off++
		return
	}

	switch top {
	case CtxSingleQuote:
		if c == '\'' {
			s.pop()
		}
		s.off++
		return
	case CtxDoubleQuote:
		if c == '"' {
			s.pop()
		}
		s.off++
		return
	case CtxNestedLiteral:
		if c == '`' {
			s.pop()
		}
		s.off++
		return
	}

	// CtxNormal
	switch c {
	case '\'':
		s.push(CtxSingleQuote)
		s.off++
	case '"':
		s.push(CtxDoubleQuote)
		s.off++
	case '`':
		// backtick открывает вложенный литерал только внутри интерполяции
		if s.depth > 0 {
			s.push(CtxNestedLiteral)
		}
		s.off++
	case '$':
		if _, b1, ok := s.peek2(); ok && b1 == '{' {
			s.depth++
			s.off += 2
			return
		}
		s.off++
	case '{':
		s.depth++
		s.off++
	case '}':
		// закрывающая скобка на нулевой глубине — no-op, не ошибка
		if s.depth > 0 {
			s.depth--
		}
		s.off++
	case '/':
		if _, b1, ok := s.peek2(); ok && b1 == '*' {
			s.push(CtxBlockComment)
			s.off += 2
			return
		}
		s.off++
	default:
		s.off++
	}
}

// atClosingBacktick reports whether the scanner stands on an un-escaped
// backtick in Normal context at interpolation depth 0.
func (s *Scanner) atClosingBacktick() bool {
	return !s.eof() &&
		s.Context() == CtxNormal &&
		!s.escaped &&
		s.depth == 0 &&
		s.peek() == '`'
}

// ClosingBacktick scans from start and returns the offset of the closing
// backtick of a literal whose opening backtick sits just before start.
// The boolean is false when the text ends first (unterminated literal):
// the caller must treat the candidate as not a literal, never as an error.
func ClosingBacktick(text []byte, start int) (int, bool) {
	s := New(text, start)
	for !s.eof() {
		if s.atClosingBacktick() {
			return s.off, true
		}
		s.step()
	}
	return 0, false
}

// InBlockComment scans the document prefix from offset 0 and reports whether
// target falls inside a /* ... */ block comment.
func InBlockComment(text []byte, target int) bool {
	if target <= 0 {
		return false
	}
	s := New(text, 0)
	for !s.eof() && s.off < target {
		s.step()
	}
	return s.Context() == CtxBlockComment
}

// Span is a half-open [Start, End) byte range within the scanned text.
type Span struct {
	Start int
	End   int
}

// InterpolationSpans returns every top-level ${...} span in text, delimiters
// included, honoring strings and nested literals inside the braces (so
// ${"}"} does not close early). Unbalanced spans at end of text are dropped.
func InterpolationSpans(text []byte) []Span {
	var spans []Span
	s := New(text, 0)
	for !s.eof() {
		if s.Context() == CtxNormal && !s.escaped {
			if b0, b1, ok := s.peek2(); ok && b0 == '$' && b1 == '{' {
				base := s.depth
				start := s.off
				s.step() // consume ${
				for !s.eof() && s.depth > base {
					s.step()
				}
				if s.depth == base {
					spans = append(spans, Span{Start: start, End: s.off})
				}
				continue
			}
		}
		s.step()
	}
	return spans
}

// InterpolationSpanAt returns the span of the ${...} expression starting
// exactly at start, or ok=false when start does not begin one or the span
// never closes.
func InterpolationSpanAt(text []byte, start int) (Span, bool) {
	if start < 0 || start+1 >= len(text) || text[start] != '$' || text[start+1] != '{' {
		return Span{}, false
	}
	s := New(text, start)
	base := s.depth
	s.step() // consume ${
	for !s.eof() && s.depth > base {
		s.step()
	}
	if s.depth != base {
		return Span{}, false
	}
	return Span{Start: start, End: s.off}, true
}
