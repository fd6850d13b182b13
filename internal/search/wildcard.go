package search

const (
	wildcardAny = '*'
	wildcardOne = '?'
)

func hasWildcard(pattern []rune) bool {
	for _, r := range pattern {
		if r == wildcardAny || r == wildcardOne {
			return true
		}
	}
	return false
}

// matchSubstring reports whether pattern occurs contiguously in text.
func matchSubstring(pattern, text []rune) ([]int, bool) {
	idx := indexRunes(text, pattern)
	if idx < 0 {
		return nil, false
	}
	positions := make([]int, len(pattern))
	for i := range positions {
		positions[i] = idx + i
	}
	return positions, true
}

// matchGlob matches pattern against the whole of text. '*' matches any run of
// runes (including none) and '?' exactly one rune. Positions cover the runes
// consumed by literals and '?'.
func matchGlob(pattern, text []rune) ([]int, bool) {
	positions := make([]int, 0, len(pattern))
	p, t := 0, 0
	star, mark, markLen := -1, 0, 0

	for t < len(text) {
		switch {
		case p < len(pattern) && pattern[p] == wildcardAny:
			star, mark, markLen = p, t, len(positions)
			p++
		case p < len(pattern) && (pattern[p] == wildcardOne || pattern[p] == text[t]):
			positions = append(positions, t)
			p++
			t++
		case star >= 0:
			// Let the last '*' swallow one more rune and retry.
			mark++
			p, t = star+1, mark
			positions = positions[:markLen]
		default:
			return nil, false
		}
	}

	for p < len(pattern) && pattern[p] == wildcardAny {
		p++
	}
	if p != len(pattern) {
		return nil, false
	}
	return positions, true
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i <= len(haystack)-len(needle); i++ {
		if haystack[i] != needle[0] {
			continue
		}
		for j := 1; j < len(needle); j++ {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}
