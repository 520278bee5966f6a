package literal

import (
	"htmlit/internal/scan"
)

// Extracted is a literal's content together with its location.
// Content is the exact text between the opening backtick (exclusive) and
// the matching closing backtick (exclusive); AbsoluteOffset is the offset
// of Content[0] within the text Extract was called on.
type Extracted struct {
	Content        string
	AbsoluteOffset int
	Span           scan.Span // [start, end) of Content within the text
}

// Extract locates the closing backtick for a confirmed match and returns
// the literal body. ok=false означает незакрытый литерал: кандидат молча
// пропускается, это не ошибка (документ может быть в процессе правки).
func Extract(text []byte, m LeaderMatch) (Extracted, bool) {
	start := m.BacktickOffset + 1
	if start > len(text) {
		return Extracted{}, false
	}
	end, found := scan.ClosingBacktick(text, start)
	if !found {
		return Extracted{}, false
	}
	return Extracted{
		Content:        string(text[start:end]),
		AbsoluteOffset: start,
		Span:           scan.Span{Start: start, End: end},
	}, true
}

// InsideLiteral reports whether offset falls within the body of any literal
// recognized by the matcher. An unterminated literal counts from its opening
// backtick to the end of text, so completions keep working mid-edit.
func InsideLiteral(text []byte, offset int, m *Matcher) bool {
	if offset < 0 || offset > len(text) {
		return false
	}
	for _, match := range m.Matches(text) {
		start := match.BacktickOffset + 1
		if offset < start {
			continue
		}
		end, found := scan.ClosingBacktick(text, start)
		if !found {
			return true // открытый хвостовой литерал
		}
		if offset <= end {
			return true
		}
	}
	return false
}
