package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsutil "github.com/kk-code-lab/ff/internal/fs"
	"github.com/kk-code-lab/ff/internal/search"
)

func match(path string, isDir bool, score int, positions ...int) search.ScoredMatch {
	kind := fsutil.KindFile
	if isDir {
		kind = fsutil.KindDir
	}
	return search.ScoredMatch{
		Candidate: search.NewCandidate(path, filepath.Base(path), kind, isDir),
		Score:     score,
		Positions: positions,
	}
}

func TestLinePlain(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, Options{})
	line := p.Line(3, match(filepath.Join("src", "main.rs"), false, 78, 0, 5, 6))
	assert.Equal(t, " 3 🦀 "+filepath.Join("src", "main.rs"), line)
}

func TestLineHighlightsMatchedRunes(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, Options{Color: true})
	line := p.Line(1, match("main.rs", false, 78, 0, 5, 6))

	highlight := newPalette(true).highlight
	assert.Contains(t, line, highlight.Sprint("m"))
	assert.Contains(t, line, highlight.Sprint("rs"))
	assert.NotContains(t, line, highlight.Sprint("ain"))
}

func TestLineTruncatesFromTheLeft(t *testing.T) {
	long := filepath.Join("very", "long", "directory", "structure", "that", "keeps", "going", "main.go")
	p := NewPrinter(&bytes.Buffer{}, Options{Width: 30})
	line := p.Line(1, match(long, false, 10))
	assert.True(t, strings.HasSuffix(line, "main.go"), line)
	assert.Contains(t, line, "…")
}

func TestDisplayPathOffsetsPositions(t *testing.T) {
	text, positions := DisplayPath(match(filepath.Join("ab", "cd.go"), false, 1, 0, 1))
	require.Equal(t, filepath.Join("ab", "cd.go"), text)
	assert.Equal(t, []int{3, 4}, positions)
	runes := []rune(text)
	assert.Equal(t, "cd", string(runes[positions[0]:positions[1]+1]))
}

func TestDisplayPathSanitizesControlCharacters(t *testing.T) {
	text, _ := DisplayPath(match("bad\x1b[31mname", false, 1))
	assert.NotContains(t, text, "\x1b")
}

func TestLineDetails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))
	mod := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(path, mod, mod))

	p := NewPrinter(&bytes.Buffer{}, Options{Details: true, Now: time.Now})
	line := p.Line(1, match(path, false, 42))
	assert.Contains(t, line, "2.0 KiB")
	assert.Contains(t, line, "3 hours ago")
	assert.Contains(t, line, "(42)")
}

func TestResultsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	NewPrinter(buf, Options{}).Results(nil)
	assert.Contains(t, buf.String(), "No files found matching the pattern")
}

func TestResultsNumbersEveryMatch(t *testing.T) {
	buf := &bytes.Buffer{}
	NewPrinter(buf, Options{}).Results(search.ResultSet{
		match("a.txt", false, 2),
		match("docs", true, 1),
	})
	out := buf.String()
	assert.Contains(t, out, "Found 2 match(es)")
	assert.Contains(t, out, " 1 📄 a.txt")
	assert.Contains(t, out, " 2 📁 docs")
}

func TestSummary(t *testing.T) {
	buf := &bytes.Buffer{}
	NewPrinter(buf, Options{}).Summary(search.Report{
		FilesScanned:    12345,
		DirsScanned:     67,
		TraversalErrors: []error{os.ErrPermission},
		Parallel:        true,
		Workers:         4,
		Cancelled:       true,
		Elapsed:         1500 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, "Scanned 12,345 files and 67 directories in 1.5s using 4 workers")
	assert.Contains(t, out, "1 path(s) could not be read")
	assert.Contains(t, out, "partial results")
}

func TestIcon(t *testing.T) {
	assert.Equal(t, iconDir, Icon(match("src", true, 0).Candidate))
	assert.Equal(t, "🐹", Icon(match("main.GO", false, 0).Candidate))
	assert.Equal(t, iconFile, Icon(match("LICENSE", false, 0).Candidate))
	link := search.NewCandidate("l", "l", fsutil.KindSymlink, false)
	assert.Equal(t, iconLink, Icon(link))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(-1))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2 days ago", FormatAge(now.Add(-48*time.Hour), now))
	assert.Empty(t, FormatAge(time.Time{}, now))
	assert.Equal(t, "1,000", FormatCount(1000))
}
