package search

import "slices"

// Rank sorts matches by score descending, ties broken by path ascending, and
// truncates to limit. The input slice is not modified. A non-positive limit
// yields an empty set; Config.Validate rejects such limits before a search.
func Rank(matches []ScoredMatch, limit int) ResultSet {
	if limit <= 0 {
		return ResultSet{}
	}
	if len(matches) > limit*4 {
		tc := newTopCollector(limit)
		for _, m := range matches {
			tc.Store(m)
		}
		return ResultSet(tc.Results())
	}
	out := slices.Clone(matches)
	slices.SortFunc(out, compareMatches)
	if len(out) > limit {
		out = out[:limit]
	}
	return ResultSet(out)
}

// mergeRanked combines per-worker rankings into one. Each input is already in
// rank order and holds at most limit entries.
func mergeRanked(parts [][]ScoredMatch, limit int) ResultSet {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	all := make([]ScoredMatch, 0, total)
	for _, p := range parts {
		all = append(all, p...)
	}
	return Rank(all, limit)
}
