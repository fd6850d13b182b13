package search

import "strings"

// ignoreMatcher is the compiled form of IgnoreRules. Patterns are matched
// against whole entry names, case-insensitively, with '*' and '?' wildcards.
type ignoreMatcher struct {
	dirs  [][]rune
	files [][]rune
}

func newIgnoreMatcher(rules IgnoreRules) *ignoreMatcher {
	if rules.IsEmpty() {
		return nil
	}
	return &ignoreMatcher{
		dirs:  compileIgnorePatterns(rules.Dirs),
		files: compileIgnorePatterns(rules.Files),
	}
}

func compileIgnorePatterns(patterns []string) [][]rune {
	out := make([][]rune, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, prepareRunes(p, true))
	}
	return out
}

func (im *ignoreMatcher) skipDir(name string) bool {
	if im == nil || len(im.dirs) == 0 {
		return false
	}
	return matchAnyPattern(im.dirs, name)
}

func (im *ignoreMatcher) skipFile(name string) bool {
	if im == nil || len(im.files) == 0 {
		return false
	}
	return matchAnyPattern(im.files, name)
}

func matchAnyPattern(patterns [][]rune, name string) bool {
	text := prepareRunes(name, true)
	for _, p := range patterns {
		if _, ok := matchGlob(p, text); ok {
			return true
		}
	}
	return false
}
