// Package picker lets the user choose one match from a result set, either
// through a numbered prompt or a full-screen list.
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/kk-code-lab/ff/internal/search"
)

var (
	// ErrCancelled is returned when the user quits without choosing.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoResults is returned when there is nothing to choose from.
	ErrNoResults = errors.New("no results to choose from")
)

// Chooser picks one match from a non-empty result set.
type Chooser interface {
	Choose(rs search.ResultSet) (search.ScoredMatch, error)
}

// Prompt asks for a result number on a line-oriented terminal.
type Prompt struct {
	in    *bufio.Reader
	out   io.Writer
	ask   *color.Color
	good  *color.Color
	bad   *color.Color
	quiet *color.Color
}

// NewPrompt reads answers from in and writes questions to out. Colour follows
// the fatih/color global NoColor switch.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		in:    bufio.NewReader(in),
		out:   out,
		ask:   color.New(color.FgCyan),
		good:  color.New(color.FgHiGreen),
		bad:   color.New(color.FgRed),
		quiet: color.New(color.FgHiRed),
	}
}

// SetColor forces colour on or off for this prompt.
func (p *Prompt) SetColor(enabled bool) {
	for _, c := range []*color.Color{p.ask, p.good, p.bad, p.quiet} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Choose returns the match whose number the user enters. A single match is
// selected without asking. End of input counts as cancelling.
func (p *Prompt) Choose(rs search.ResultSet) (search.ScoredMatch, error) {
	switch len(rs) {
	case 0:
		return search.ScoredMatch{}, ErrNoResults
	case 1:
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, "Auto-selecting the only match...")
		return rs[0], nil
	}

	fmt.Fprintln(p.out)
	for {
		fmt.Fprintf(p.out, "%s Enter number (%s-%s) or '%s' to quit: ",
			p.ask.Sprint("❓"),
			p.good.Sprint("1"),
			p.good.Sprint(len(rs)),
			p.quiet.Sprint("q"))

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(p.out)
			return search.ScoredMatch{}, ErrCancelled
		}

		if idx, ok := parseChoice(line, len(rs)); ok {
			return rs[idx], nil
		}
		if isQuit(line) {
			fmt.Fprintln(p.out, "Selection cancelled")
			return search.ScoredMatch{}, ErrCancelled
		}
		fmt.Fprintf(p.out, "%s Invalid selection. Please enter a number between 1-%d or 'q' to quit.\n",
			p.bad.Sprint("❌"), len(rs))
		if err != nil {
			return search.ScoredMatch{}, ErrCancelled
		}
	}
}

// parseChoice converts a 1-based answer into an index below n.
func parseChoice(line string, n int) (int, bool) {
	num, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || num < 1 || num > n {
		return 0, false
	}
	return num - 1, true
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
