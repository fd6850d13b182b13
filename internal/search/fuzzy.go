package search

import (
	"sync"
	"unicode"
)

// Fuzzy scoring weights. Scores are integers so that sequential and parallel
// searches rank identically.
//
//   - every matched rune:                        +scoreMatch
//   - rune matched right after the previous one: +bonusConsecutive
//   - rune matched at a word boundary:           +bonusBoundary
//   - first query rune at name index 0:          +bonusFirstChar
//   - gap between two matched runes:             -penaltyGapStart, then -penaltyGapExtension per extra rune
//   - runes before the first match:              -penaltyLeading each
//   - runes of the name left unmatched:          -penaltyLength each
//
// Every score starts from baseFuzzyScore so that penalties on long names keep
// ordering candidates instead of bottoming out at minFuzzyScore.
const (
	scoreMatch          = 16
	bonusConsecutive    = 16
	bonusBoundary       = 8
	bonusFirstChar      = 8
	penaltyGapStart     = 3
	penaltyGapExtension = 1
	penaltyLeading      = 1
	penaltyLength       = 1

	baseFuzzyScore = 1 << 16
	minFuzzyScore  = 1
	maxFuzzyScore = ExactScore - 1

	negInf = -(1 << 30)
)

type dpScratch struct {
	score []int
	from  []int
	bonus []int
}

var dpScratchPool = sync.Pool{
	New: func() any {
		return &dpScratch{}
	},
}

func acquireDPScratch(rows, cols int) *dpScratch {
	s := dpScratchPool.Get().(*dpScratch)
	required := rows * cols
	if cap(s.score) < required {
		s.score = make([]int, required)
		s.from = make([]int, required)
	}
	if cap(s.bonus) < cols {
		s.bonus = make([]int, cols)
	}
	s.score = s.score[:required]
	s.from = s.from[:required]
	s.bonus = s.bonus[:cols]
	return s
}

func releaseDPScratch(s *dpScratch) {
	dpScratchPool.Put(s)
}

// fuzzyMatch scores pattern as an ordered subsequence of text. pattern and
// text are normalised and case-folded; raw is text before folding and is only
// consulted for word boundaries, so camelCase humps survive case folding.
// The returned positions are owned by the caller.
func fuzzyMatch(pattern, text, raw []rune) (int, []int, bool) {
	m := len(pattern)
	n := len(text)
	if m == 0 {
		return 0, nil, true
	}
	if m > n || !isSubsequence(pattern, text) {
		return 0, nil, false
	}

	s := acquireDPScratch(m, n)
	defer releaseDPScratch(s)

	for j := 0; j < n; j++ {
		s.bonus[j] = 0
		if isWordBoundaryRune(raw, j) {
			s.bonus[j] = bonusBoundary
		}
	}

	score := s.score
	from := s.from
	for i := range score {
		score[i] = negInf
		from[i] = -1
	}

	// First query rune: each candidate column pays for the runes it skips.
	for j := 0; j <= n-m; j++ {
		if pattern[0] != text[j] {
			continue
		}
		v := scoreMatch + s.bonus[j] - j*penaltyLeading
		if j == 0 {
			v += bonusFirstChar
		}
		score[j] = v
	}

	for i := 1; i < m; i++ {
		row := i * n
		prev := (i - 1) * n
		gapBest, gapIdx := negInf, -1
		for j := i; j <= n-(m-i); j++ {
			if gapBest > negInf {
				gapBest -= penaltyGapExtension
			}
			if j >= 2 && score[prev+j-2] > negInf {
				if v := score[prev+j-2] - penaltyGapStart; v > gapBest {
					gapBest, gapIdx = v, j-2
				}
			}
			if pattern[i] != text[j] {
				continue
			}

			best, bestIdx := negInf, -1
			if score[prev+j-1] > negInf {
				best, bestIdx = score[prev+j-1]+bonusConsecutive, j-1
			}
			if gapIdx >= 0 && gapBest > best {
				best, bestIdx = gapBest, gapIdx
			}
			if bestIdx < 0 {
				continue
			}
			score[row+j] = best + scoreMatch + s.bonus[j]
			from[row+j] = bestIdx
		}
	}

	last := (m - 1) * n
	bestScore, bestEnd := negInf, -1
	for j := m - 1; j < n; j++ {
		if score[last+j] > bestScore {
			bestScore, bestEnd = score[last+j], j
		}
	}
	if bestEnd < 0 {
		return 0, nil, false
	}

	positions := make([]int, m)
	j := bestEnd
	for i := m - 1; i >= 0; i-- {
		positions[i] = j
		j = from[i*n+j]
	}

	total := baseFuzzyScore + bestScore - (n-m)*penaltyLength
	return clampFuzzyScore(total), positions, true
}

func clampFuzzyScore(v int) int {
	if v < minFuzzyScore {
		return minFuzzyScore
	}
	if v > maxFuzzyScore {
		return maxFuzzyScore
	}
	return v
}

func isSubsequence(pattern, text []rune) bool {
	i := 0
	for _, r := range text {
		if i < len(pattern) && pattern[i] == r {
			i++
		}
	}
	return i == len(pattern)
}

func isWordBoundaryRune(text []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev := text[idx-1]
	curr := text[idx]
	switch prev {
	case '/', '\\', '-', '_', ' ', '.', ':':
		return true
	}
	if prev <= unicode.MaxASCII && curr <= unicode.MaxASCII {
		prevByte := byte(prev)
		currByte := byte(curr)
		if !isLetterByte(prevByte) && isLetterByte(currByte) {
			return true
		}
		if prevByte >= 'a' && prevByte <= 'z' && currByte >= 'A' && currByte <= 'Z' {
			return true
		}
		return false
	}
	if !isLetterRune(prev) && isLetterRune(curr) {
		return true
	}
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	return false
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isLetterRune(r rune) bool {
	if r <= unicode.MaxASCII {
		return isLetterByte(byte(r))
	}
	return unicode.IsLetter(r)
}
