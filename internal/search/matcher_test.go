package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestMatchExactMode(t *testing.T) {
	tests := []struct {
		query     string
		name      string
		want      bool
		positions []int
	}{
		{"*.rs", "file.rs", true, []int{4, 5, 6}},
		{"*.rs", "file.rsx", false, nil},
		{"a?c", "abc", true, []int{0, 1, 2}},
		{"a?c", "ac", false, nil},
		{"a?c", "xabc", false, nil},
		{"ain", "main.rs", true, []int{1, 2, 3}},
		{"MAIN", "main.rs", true, []int{0, 1, 2, 3}},
		{"mrs", "main.rs", false, nil},
		{"*", "", true, []int{}},
		{"f*o*.go", "foo.go", true, []int{0, 1, 3, 4, 5}},
		{"f*o*.go", "fxo.gox", false, nil},
	}

	for _, tt := range tests {
		score, positions, ok := Match(tt.name, Query{Text: tt.query, Mode: ModeExact})
		if ok != tt.want {
			t.Errorf("Match(%q, exact %q) ok=%v, want %v", tt.name, tt.query, ok, tt.want)
			continue
		}
		if !ok {
			continue
		}
		if score != ExactScore {
			t.Errorf("Match(%q, exact %q) score=%d, want %d", tt.name, tt.query, score, ExactScore)
		}
		if len(positions) != len(tt.positions) || (len(positions) > 0 && !reflect.DeepEqual(positions, tt.positions)) {
			t.Errorf("Match(%q, exact %q) positions=%v, want %v", tt.name, tt.query, positions, tt.positions)
		}
	}
}

func TestMatchFuzzySubsequence(t *testing.T) {
	tests := []struct {
		query     string
		name      string
		want      bool
		positions []int
	}{
		{"mrs", "main.rs", true, []int{0, 5, 6}},
		{"srm", "main.rs", false, nil},
		{"main.rs.bak", "main.rs", false, nil},
		{"apl", "apple", true, nil},
		{"xyz", "apple", false, nil},
		{"rdme", "README.md", true, []int{0, 3, 4, 5}},
	}

	for _, tt := range tests {
		score, positions, ok := Match(tt.name, Query{Text: tt.query})
		if ok != tt.want {
			t.Errorf("Match(%q, %q) ok=%v, want %v", tt.name, tt.query, ok, tt.want)
			continue
		}
		if !ok {
			continue
		}
		if score < minFuzzyScore || score >= ExactScore {
			t.Errorf("Match(%q, %q) score=%d outside fuzzy range", tt.name, tt.query, score)
		}
		if len(positions) != len([]rune(tt.query)) {
			t.Errorf("Match(%q, %q) returned %d positions", tt.name, tt.query, len(positions))
		}
		if tt.positions != nil && !reflect.DeepEqual(positions, tt.positions) {
			t.Errorf("Match(%q, %q) positions=%v, want %v", tt.name, tt.query, positions, tt.positions)
		}
	}
}

func TestMatchEmptyQueryMatchesEverything(t *testing.T) {
	for _, mode := range []MatchMode{ModeFuzzy, ModeExact} {
		for _, name := range []string{"a", "main.rs", ""} {
			score, positions, ok := Match(name, Query{Mode: mode})
			if !ok || score != 0 || positions != nil {
				t.Fatalf("%s Match(%q, \"\") = (%d, %v, %v), want (0, nil, true)", mode, name, score, positions, ok)
			}
		}
	}
}

func TestMatchFuzzyScores(t *testing.T) {
	tests := []struct {
		query string
		name  string
		score int
	}{
		{"abc", "zzabczz", baseFuzzyScore + 74},
		{"abc", "z-a-b-c", baseFuzzyScore + 60},
		{"abc", "zazbzcz", baseFuzzyScore + 37},
		{"abc", "abc", baseFuzzyScore + 96},
		{"main", "main.go", baseFuzzyScore + 125},
		{"fb", "FooBar.go", baseFuzzyScore + 45},
		{"fb", "foobar.go", baseFuzzyScore + 37},
	}
	for _, tt := range tests {
		score, _, ok := Match(tt.name, Query{Text: tt.query})
		if !ok || score != tt.score {
			t.Errorf("Match(%q, %q) = %d (ok=%v), want %d", tt.name, tt.query, score, ok, tt.score)
		}
	}
}

func TestMatchFuzzyOrdering(t *testing.T) {
	tests := []struct {
		desc   string
		query  string
		better string
		worse  string
	}{
		{"contiguous beats boundary", "abc", "zzabczz", "z-a-b-c"},
		{"boundary beats scattered", "abc", "z-a-b-c", "zazbzcz"},
		{"earlier start wins", "main", "zmainzz", "zzmainz"},
		{"shorter name wins", "main.rs", "main.rs", "main.rs.bak"},
		{"prefix beats infix", "main", "main.go", "domain.go"},
		{"camel hump counts as boundary", "fb", "FooBar.go", "foobar.go"},
		{"shorter long name wins", "ab", "ab" + strings.Repeat("x", 40), "ab" + strings.Repeat("x", 60)},
		{"earlier late start wins", "ab", strings.Repeat("x", 20) + "ab", strings.Repeat("x", 36) + "ab"},
		{"smaller wide gap wins", "abc",
			"a" + strings.Repeat("x", 10) + "b" + strings.Repeat("x", 10) + "c",
			"a" + strings.Repeat("x", 20) + "b" + strings.Repeat("x", 20) + "c"},
	}
	for _, tt := range tests {
		m := NewMatcher(Query{Text: tt.query})
		b, _, okB := m.Match(tt.better)
		w, _, okW := m.Match(tt.worse)
		if !okB || !okW {
			t.Fatalf("%s: expected both to match (better=%v worse=%v)", tt.desc, okB, okW)
		}
		if b <= w {
			t.Errorf("%s: score(%q)=%d should exceed score(%q)=%d", tt.desc, tt.better, b, tt.worse, w)
		}
	}
}

func TestExactScoreOutranksFuzzy(t *testing.T) {
	long := "abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxyz"
	score, _, ok := Match(long, Query{Text: long})
	if !ok {
		t.Fatal("expected identical name to fuzzy-match")
	}
	if score >= ExactScore {
		t.Fatalf("fuzzy score %d must stay below ExactScore", score)
	}
}

func TestMatchCaseSensitivity(t *testing.T) {
	if _, _, ok := Match("readme.md", Query{Text: "README"}); !ok {
		t.Fatal("expected case-insensitive match by default")
	}
	if _, _, ok := Match("readme.md", Query{Text: "README", CaseSensitive: true}); ok {
		t.Fatal("expected case-sensitive query to reject lowercase name")
	}
	if _, _, ok := Match("README.md", Query{Text: "README", Mode: ModeExact, CaseSensitive: true}); !ok {
		t.Fatal("expected case-sensitive exact match")
	}
}

func TestMatchNormalizesUnicode(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	score, positions, ok := Match(decomposed, Query{Text: "caf\u00e9", Mode: ModeExact})
	if !ok || score != ExactScore {
		t.Fatalf("expected NFC-equivalent names to match, got ok=%v score=%d", ok, score)
	}
	if want := []int{0, 1, 2, 3}; !reflect.DeepEqual(positions, want) {
		t.Fatalf("positions = %v, want %v", positions, want)
	}
	if got := NormalizeName(decomposed); got != "caf\u00e9.txt" {
		t.Fatalf("NormalizeName = %q", got)
	}

	if _, _, ok := Match("Ñandú.png", Query{Text: "ñd"}); !ok {
		t.Fatal("expected non-ASCII fuzzy match with case folding")
	}
}

func TestMatcherIsDeterministic(t *testing.T) {
	m := NewMatcher(Query{Text: "cfg"})
	first, firstPos, _ := m.Match("internal/config.go")
	for i := 0; i < 10; i++ {
		score, pos, ok := m.Match("internal/config.go")
		if !ok || score != first || !reflect.DeepEqual(pos, firstPos) {
			t.Fatalf("iteration %d: got (%d, %v), want (%d, %v)", i, score, pos, first, firstPos)
		}
	}
}

func TestParseMatchMode(t *testing.T) {
	for in, want := range map[string]MatchMode{"": ModeFuzzy, "fuzzy": ModeFuzzy, "EXACT": ModeExact, " exact ": ModeExact} {
		got, err := ParseMatchMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMatchMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMatchMode("regex"); !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSpansFromPositions(t *testing.T) {
	got := SpansFromPositions([]int{0, 1, 2, 5, 7, 8})
	want := []MatchSpan{{0, 2}, {5, 5}, {7, 8}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spans = %v, want %v", got, want)
	}
	if SpansFromPositions(nil) != nil {
		t.Fatal("expected nil spans for no positions")
	}
}
