// Package literal finds HTML-bearing template literals in JS/TS source:
// leader matching, content extraction, nested-literal collapsing and
// interpolation substitution.
package literal

import (
	"regexp"
	"strings"

	"htmlit/internal/scan"
)

// DefaultLeaders are the tag names recognized out of the box.
var DefaultLeaders = []string{"html", "dom"}

// LeaderMatch identifies one candidate literal start.
type LeaderMatch struct {
	LeaderOffset   int // где начинается лидер (или аннотация)
	BacktickOffset int // открывающий backtick
}

// Matcher recognizes literal-opening sites: a configured leader name before
// a backtick, or a /* html */ annotation (optionally preceded by an
// identifier) before a backtick.
type Matcher struct {
	leaders []string
	re      *regexp.Regexp
}

// NewMatcher builds a matcher for the given leader names. Empty input falls
// back to DefaultLeaders.
func NewMatcher(leaders []string) *Matcher {
	if len(leaders) == 0 {
		leaders = DefaultLeaders
	}
	quoted := make([]string, 0, len(leaders))
	for _, l := range leaders {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(l))
	}
	if len(quoted) == 0 {
		quoted = DefaultLeaders
	}
	// Либо имя лидера, либо аннотация `ident /* html */`, либо голая
	// аннотация — и сразу за ними открывающий backtick.
	pattern := `(?:\b(?:` + strings.Join(quoted, "|") + `)\s*` +
		`|(?:[A-Za-z_$][A-Za-z0-9_$]*\s+)?/\*\s*html\s*\*/\s*` +
		")`"
	return &Matcher{
		leaders: leaders,
		re:      regexp.MustCompile(pattern),
	}
}

// Leaders returns the configured leader names.
func (m *Matcher) Leaders() []string {
	return m.leaders
}

// Matches returns every confirmed literal start in text, left to right and
// non-overlapping. Candidates sitting inside a block comment are rejected
// (that is what makes commented-out literals inert while the annotation
// form still works: the annotation's own comment closes before the
// backtick).
func (m *Matcher) Matches(text []byte) []LeaderMatch {
	idx := m.re.FindAllIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]LeaderMatch, 0, len(idx))
	for _, pair := range idx {
		backtick := pair[1] - 1
		if scan.InBlockComment(text, backtick) {
			continue
		}
		out = append(out, LeaderMatch{
			LeaderOffset:   pair[0],
			BacktickOffset: backtick,
		})
	}
	return out
}
