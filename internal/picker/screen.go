package picker

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/ff/internal/output"
	"github.com/kk-code-lab/ff/internal/search"
	"github.com/kk-code-lab/ff/internal/textutil"
)

// Theme holds the styles of the full-screen picker.
type Theme struct {
	Header            tcell.Style
	Footer            tcell.Style
	Item              tcell.Style
	Directory         tcell.Style
	Highlight         tcell.Style
	Selected          tcell.Style
	SelectedHighlight tcell.Style
}

// DefaultTheme returns the default colour scheme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	selected := base.Background(tcell.Color33).Foreground(tcell.ColorWhite)
	return Theme{
		Header:            base.Bold(true),
		Footer:            base.Foreground(tcell.ColorLightSlateGray),
		Item:              base,
		Directory:         base.Foreground(tcell.Color33),
		Highlight:         base.Foreground(tcell.ColorYellow).Bold(true),
		Selected:          selected,
		SelectedHighlight: selected.Foreground(tcell.ColorYellow).Bold(true),
	}
}

type keyAction uint8

const (
	actionNone keyAction = iota
	actionSelect
	actionCancel
)

// Screen is a full-screen result list driven by the keyboard. The caller owns
// the tcell.Screen: it must be initialised before Choose and finalised after.
type Screen struct {
	screen tcell.Screen
	theme  Theme
	title  string

	items  search.ResultSet
	cursor int
	offset int
}

// NewScreen draws on s with the default theme.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s, theme: DefaultTheme()}
}

// SetTitle sets the text shown in the header row.
func (p *Screen) SetTitle(title string) {
	p.title = textutil.SanitizeTerminalText(title)
}

// SetTheme replaces the styles used for drawing.
func (p *Screen) SetTheme(t Theme) {
	p.theme = t
}

// Choose shows rs and blocks until the user selects an entry or cancels.
func (p *Screen) Choose(rs search.ResultSet) (search.ScoredMatch, error) {
	if len(rs) == 0 {
		return search.ScoredMatch{}, ErrNoResults
	}
	p.items = rs
	p.cursor, p.offset = 0, 0
	p.screen.HideCursor()

	for {
		p.draw()
		ev := p.screen.PollEvent()
		if ev == nil {
			return search.ScoredMatch{}, ErrCancelled
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			switch p.handleKey(ev) {
			case actionSelect:
				return p.items[p.cursor], nil
			case actionCancel:
				return search.ScoredMatch{}, ErrCancelled
			}
		}
	}
}

func (p *Screen) handleKey(ev *tcell.EventKey) keyAction {
	page := max(p.listHeight()-1, 1)
	switch ev.Key() {
	case tcell.KeyEnter:
		return actionSelect
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionCancel
	case tcell.KeyUp, tcell.KeyCtrlP:
		p.move(-1)
	case tcell.KeyDown, tcell.KeyCtrlN:
		p.move(1)
	case tcell.KeyPgUp:
		p.move(-page)
	case tcell.KeyPgDn:
		p.move(page)
	case tcell.KeyHome:
		p.moveTo(0)
	case tcell.KeyEnd:
		p.moveTo(len(p.items) - 1)
	case tcell.KeyRune:
		switch r := ev.Rune(); {
		case r == 'q':
			return actionCancel
		case r == 'k':
			p.move(-1)
		case r == 'j':
			p.move(1)
		case r == 'g':
			p.moveTo(0)
		case r == 'G':
			p.moveTo(len(p.items) - 1)
		case r >= '1' && r <= '9':
			if idx := int(r - '1'); idx < len(p.items) {
				p.moveTo(idx)
				return actionSelect
			}
		}
	}
	return actionNone
}

func (p *Screen) move(delta int) {
	p.moveTo(p.cursor + delta)
}

func (p *Screen) moveTo(idx int) {
	p.cursor = max(0, min(idx, len(p.items)-1))
	p.scrollIntoView()
}

func (p *Screen) scrollIntoView() {
	rows := p.listHeight()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+rows {
		p.offset = p.cursor - rows + 1
	}
	p.offset = max(0, p.offset)
}

// listHeight is the number of rows between the header and the footer.
func (p *Screen) listHeight() int {
	_, h := p.screen.Size()
	return max(h-2, 1)
}

func (p *Screen) draw() {
	p.screen.Clear()
	w, h := p.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	p.scrollIntoView()

	header := fmt.Sprintf(" %s  %d match(es)", p.title, len(p.items))
	p.fillRow(0, w, p.theme.Header)
	p.drawText(0, 0, w, textutil.TruncateRight(header, w), nil, p.theme.Header, p.theme.Header)

	rows := p.listHeight()
	for row := 0; row < rows && p.offset+row < len(p.items); row++ {
		p.drawItem(row+1, w, p.offset+row)
	}

	if h > 1 {
		footer := fmt.Sprintf(" %d/%d  ↑/↓ move  enter select  esc cancel", p.cursor+1, len(p.items))
		p.drawText(0, h-1, w, textutil.TruncateRight(footer, w), nil, p.theme.Footer, p.theme.Footer)
	}
	p.screen.Show()
}

func (p *Screen) drawItem(y, width, idx int) {
	m := p.items[idx]
	base, hl := p.theme.Item, p.theme.Highlight
	if m.IsDir() {
		base = p.theme.Directory
	}
	if idx == p.cursor {
		base, hl = p.theme.Selected, p.theme.SelectedHighlight
		p.fillRow(y, width, base)
	}

	prefix := fmt.Sprintf(" %2d %s ", idx+1, output.Icon(m.Candidate))
	x := p.drawText(0, y, width, prefix, nil, base, base)
	text, positions := output.FitPath(m, width-x)
	p.drawText(x, y, width-x, text, positions, base, hl)
}

func (p *Screen) fillRow(y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		p.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText writes text starting at column startX, using hl for the runes
// whose index is listed in positions. Combining runes are attached to the
// preceding cell. It returns the column after the last cell written.
func (p *Screen) drawText(startX, y, maxWidth int, text string, positions []int, style, hl tcell.Style) int {
	marked := make(map[int]struct{}, len(positions))
	for _, pos := range positions {
		marked[pos] = struct{}{}
	}

	x := startX
	runes := []rune(text)
	for i := 0; i < len(runes); {
		if x-startX >= maxWidth {
			break
		}
		idx := i
		mainc := runes[i]
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		w := runewidth.RuneWidth(mainc)
		if w <= 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}

		cellStyle := style
		if _, ok := marked[idx]; ok {
			cellStyle = hl
		}
		p.screen.SetContent(x, y, mainc, combc, cellStyle)
		x += w
	}
	return x
}
