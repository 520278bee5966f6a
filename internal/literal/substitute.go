package literal

import (
	"strings"

	"htmlit/internal/scan"
)

// ExprPlaceholder is the fixed neutral token substituted for a ${...} span,
// delimiters included. It contains no markup so the tag scanner ignores it.
const ExprPlaceholder = "_"

// SubstituteInterpolations replaces every remaining top-level ${...} span
// with ExprPlaceholder. It must run after nested-literal collapsing: an
// interpolation that contained a literal has already been replaced by that
// literal's collapsed structure and must not be re-matched here. Running it
// twice is a no-op — cleaned text has no ${ spans left.
func SubstituteInterpolations(text string) string {
	spans := scan.InterpolationSpans([]byte(text))
	if len(spans) == 0 {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	prev := 0
	for _, sp := range spans {
		sb.WriteString(text[prev:sp.Start])
		sb.WriteString(ExprPlaceholder)
		prev = sp.End
	}
	sb.WriteString(text[prev:])
	return sb.String()
}
