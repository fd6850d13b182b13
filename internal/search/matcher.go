package search

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Matcher compares candidate names against a single query. The query is
// prepared once; Match keeps no state between calls and is safe for
// concurrent use.
type Matcher struct {
	query    Query
	fold     bool
	pattern  []rune
	wildcard bool
}

// NewMatcher prepares q for repeated matching.
func NewMatcher(q Query) *Matcher {
	fold := !q.CaseSensitive
	pattern := prepareRunes(q.Text, fold)
	return &Matcher{
		query:    q,
		fold:     fold,
		pattern:  pattern,
		wildcard: q.Mode == ModeExact && hasWildcard(pattern),
	}
}

// Query returns the query the matcher was built for.
func (m *Matcher) Query() Query {
	return m.query
}

// Match scores name. ok is false when the name does not match. Positions are
// rune indexes into the NFC form of name.
func (m *Matcher) Match(name string) (score int, positions []int, ok bool) {
	if len(m.pattern) == 0 {
		return 0, nil, true
	}

	raw := prepareRunes(name, false)
	text := raw
	if m.fold {
		text = foldRunes(raw)
	}

	if m.query.Mode == ModeExact {
		if m.wildcard {
			positions, ok = matchGlob(m.pattern, text)
		} else {
			positions, ok = matchSubstring(m.pattern, text)
		}
		if !ok {
			return 0, nil, false
		}
		return ExactScore, positions, true
	}

	return fuzzyMatch(m.pattern, text, raw)
}

// Match is the functional form of Matcher.Match for one-off comparisons.
func Match(name string, q Query) (int, []int, bool) {
	return NewMatcher(q).Match(name)
}

// NormalizeName returns the form of name that match positions refer to.
func NormalizeName(name string) string {
	if isASCII(name) {
		return name
	}
	return norm.NFC.String(name)
}

func prepareRunes(s string, fold bool) []rune {
	s = NormalizeName(s)
	runes := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		if fold {
			r = unicode.ToLower(r)
		}
		runes = append(runes, r)
	}
	return runes
}

func foldRunes(src []rune) []rune {
	out := make([]rune, len(src))
	for i, r := range src {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
