package search

import (
	"container/heap"
	"slices"
	"strings"
)

// matchMinHeap keeps the weakest retained match at index 0.
type matchMinHeap []ScoredMatch

func (h matchMinHeap) Len() int           { return len(h) }
func (h matchMinHeap) Less(i, j int) bool { return compareMatches(h[i], h[j]) > 0 }
func (h matchMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *matchMinHeap) Push(x any) {
	*h = append(*h, x.(ScoredMatch))
}

func (h *matchMinHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// topCollector retains the best max matches seen so far. Memory stays
// proportional to max no matter how many candidates are offered.
type topCollector struct {
	max  int
	minH matchMinHeap
}

func newTopCollector(max int) *topCollector {
	if max <= 0 {
		max = DefaultLimit
	}
	tc := &topCollector{
		max:  max,
		minH: make(matchMinHeap, 0, max),
	}
	heap.Init(&tc.minH)
	return tc
}

func (tc *topCollector) Store(m ScoredMatch) {
	if tc.minH.Len() < tc.max {
		heap.Push(&tc.minH, m)
		return
	}
	if compareMatches(m, tc.minH[0]) >= 0 {
		return
	}
	tc.minH[0] = m
	heap.Fix(&tc.minH, 0)
}

func (tc *topCollector) Len() int {
	return tc.minH.Len()
}

// Results returns the retained matches in rank order.
func (tc *topCollector) Results() []ScoredMatch {
	results := make([]ScoredMatch, tc.minH.Len())
	copy(results, tc.minH)
	slices.SortFunc(results, compareMatches)
	return results
}

// compareMatches orders by score descending, then path ascending. Paths are
// unique within a search, so the order is total.
func compareMatches(a, b ScoredMatch) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	}
	return strings.Compare(a.Path, b.Path)
}
