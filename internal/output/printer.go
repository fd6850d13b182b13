// Package output renders search results and summaries for the terminal.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/textutil"
)

// Options controls how results are rendered.
type Options struct {
	Details bool
	Color   bool
	// Width truncates each result line to this many columns. Zero disables
	// truncation.
	Width int
	Now   func() time.Time
}

type palette struct {
	index     *color.Color
	path      *color.Color
	highlight *color.Color
	dim       *color.Color
	good      *color.Color
	bad       *color.Color
	warn      *color.Color
	accent    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		index:     color.New(color.FgHiBlue, color.Bold),
		path:      color.New(color.FgWhite),
		highlight: color.New(color.FgHiYellow, color.Bold),
		dim:       color.New(color.FgHiBlack),
		good:      color.New(color.FgHiGreen, color.Bold),
		bad:       color.New(color.FgHiRed),
		warn:      color.New(color.FgYellow),
		accent:    color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.index, p.path, p.highlight, p.dim, p.good, p.bad, p.warn, p.accent} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Printer writes human-readable output.
type Printer struct {
	w    io.Writer
	opts Options
	pal  palette
}

func NewPrinter(w io.Writer, opts Options) *Printer {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Printer{w: w, opts: opts, pal: newPalette(opts.Color)}
}

// Header announces the search about to run.
func (p *Printer) Header(root string, q search.Query) {
	fmt.Fprintf(p.w, "🔍 Searching in: %s\n", p.pal.accent.Sprint(textutil.SanitizeTerminalText(root)))
	fmt.Fprintf(p.w, "   Match mode: %s | Press %s to cancel\n", p.pal.accent.Sprint(q.Mode), p.pal.bad.Sprint("Ctrl+C"))
}

// Results prints the numbered result list.
func (p *Printer) Results(rs search.ResultSet) {
	if len(rs) == 0 {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.pal.bad.Sprint("No files found matching the pattern"))
		return
	}
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "✅ Found %s match(es):\n\n", p.pal.good.Sprint(len(rs)))
	for i, m := range rs {
		fmt.Fprintln(p.w, p.Line(i+1, m))
	}
}

// Line formats a single result: index, icon, path with the matched runes of
// the name highlighted and, when requested, size, age and score.
func (p *Printer) Line(index int, m search.ScoredMatch) string {
	prefix := fmt.Sprintf("%2d %s ", index, Icon(m.Candidate))
	suffix := p.details(m)

	budget := 0
	if p.opts.Width > 0 {
		budget = max(p.opts.Width-textutil.DisplayWidth(prefix)-textutil.DisplayWidth(suffix), 8)
	}
	text, positions := FitPath(m, budget)

	var b strings.Builder
	b.WriteString(p.pal.index.Sprintf("%2d", index))
	b.WriteString(prefix[2:])
	b.WriteString(p.highlight(text, positions))
	b.WriteString(suffix)
	return b.String()
}

func (p *Printer) details(m search.ScoredMatch) string {
	if !p.opts.Details {
		return ""
	}
	var parts []string
	if meta, err := m.Metadata(); err == nil {
		if meta.IsRegular() {
			parts = append(parts, FormatSize(meta.Size))
		}
		if age := FormatAge(meta.Modified, p.opts.Now()); age != "" {
			parts = append(parts, age)
		}
	}
	parts = append(parts, fmt.Sprintf("(%d)", m.Score))
	return " " + p.pal.dim.Sprint(strings.Join(parts, " "))
}

func (p *Printer) highlight(text string, positions []int) string {
	if len(positions) == 0 {
		return p.pal.path.Sprint(text)
	}
	marked := make(map[int]bool, len(positions))
	for _, pos := range positions {
		marked[pos] = true
	}

	var b, run strings.Builder
	runHighlighted := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runHighlighted {
			b.WriteString(p.pal.highlight.Sprint(run.String()))
		} else {
			b.WriteString(p.pal.path.Sprint(run.String()))
		}
		run.Reset()
	}
	i := 0
	for _, r := range text {
		if marked[i] != runHighlighted {
			flush()
			runHighlighted = marked[i]
		}
		run.WriteRune(r)
		i++
	}
	flush()
	return b.String()
}

// DisplayPath joins the parent directory with the normalised name so that
// match positions, which index the normalised name, line up with the text.
func DisplayPath(m search.ScoredMatch) (string, []int) {
	dir := filepath.Dir(m.Path)
	name := search.NormalizeName(m.Name)
	full := filepath.Join(dir, name)
	offset := len([]rune(full)) - len([]rune(name))
	positions := shiftPositions(m.Positions, offset, 0)
	return textutil.SanitizeHighlighted(full, positions)
}

// FitPath returns the display path of m cut from the left to at most width
// columns, with the highlight positions adjusted to the shortened text. A
// width of zero or less leaves the path whole.
func FitPath(m search.ScoredMatch, width int) (string, []int) {
	text, positions := DisplayPath(m)
	if width <= 0 {
		return text, positions
	}
	text, dropped := textutil.TruncateLeft(text, width)
	if dropped > 0 {
		positions = shiftPositions(positions, 1-dropped, 1)
	}
	return text, positions
}

func shiftPositions(positions []int, delta, floor int) []int {
	if len(positions) == 0 {
		return nil
	}
	out := make([]int, 0, len(positions))
	for _, p := range positions {
		if q := p + delta; q >= floor {
			out = append(out, q)
		}
	}
	return out
}

// Summary prints scan statistics after the results.
func (p *Printer) Summary(report search.Report) {
	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "%s Scanned %s files and %s directories in %s",
		p.pal.dim.Sprint("📊"),
		FormatCount(report.FilesScanned),
		FormatCount(report.DirsScanned),
		report.Elapsed.Round(time.Millisecond))
	if report.Parallel {
		fmt.Fprintf(p.w, " using %d workers", report.Workers)
	}
	fmt.Fprintln(p.w)

	if n := len(report.TraversalErrors); n > 0 {
		fmt.Fprintln(p.w, p.pal.warn.Sprintf("⚠️  %d path(s) could not be read (use --verbose for details)", n))
	}
	if n := len(report.WorkerFailures); n > 0 {
		fmt.Fprintln(p.w, p.pal.warn.Sprintf("⚠️  %d subtree(s) were abandoned after an internal error", n))
	}
	if report.Cancelled {
		fmt.Fprintln(p.w, p.pal.bad.Sprint("⏹️  Search stopped, showing partial results"))
	}
}

// Progress overwrites the current line with a running count.
func (p *Printer) Progress(pr search.Progress) {
	fmt.Fprintf(p.w, "\r⏳ Scanned %s entries (%s)", FormatCount(pr.FilesScanned+pr.DirsScanned), pr.Elapsed.Round(100*time.Millisecond))
}

// ClearProgress erases the progress line.
func (p *Printer) ClearProgress() {
	fmt.Fprint(p.w, "\r\x1b[2K")
}
