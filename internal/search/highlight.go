package search

// MatchSpan is an inclusive [Start, End] range of rune indexes.
type MatchSpan struct {
	Start int
	End   int
}

// SpansFromPositions groups sorted rune positions into contiguous spans.
func SpansFromPositions(positions []int) []MatchSpan {
	if len(positions) == 0 {
		return nil
	}
	spans := make([]MatchSpan, 0, len(positions))
	current := MatchSpan{Start: positions[0], End: positions[0]}
	for _, p := range positions[1:] {
		if p == current.End+1 {
			current.End = p
			continue
		}
		spans = append(spans, current)
		current = MatchSpan{Start: p, End: p}
	}
	return MergeMatchSpans(append(spans, current))
}

// MergeMatchSpans collapses overlapping spans. Input must be sorted by Start.
func MergeMatchSpans(spans []MatchSpan) []MatchSpan {
	if len(spans) == 0 {
		return nil
	}
	merged := make([]MatchSpan, 0, len(spans))
	current := spans[0]
	for i := 1; i < len(spans); i++ {
		next := spans[i]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// Spans returns the highlighted ranges of the match's name.
func (m ScoredMatch) Spans() []MatchSpan {
	return SpansFromPositions(m.Positions)
}
