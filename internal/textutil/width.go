package textutil

import (
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += runeWidth(ru)
	}
	return width
}

func runeWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w <= 0 {
		w = 1
	}
	return w
}

// TruncateLeft shortens text to at most width columns by dropping runes from
// the front and prefixing an ellipsis. It returns the number of runes removed
// so callers can shift highlight positions.
func TruncateLeft(text string, width int) (string, int) {
	if width <= 0 {
		return "", len([]rune(text))
	}
	if DisplayWidth(text) <= width {
		return text, 0
	}
	runes := []rune(text)
	budget := width - runewidth.StringWidth(ellipsis)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runeWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:]), start
}

// TruncateRight shortens text to at most width columns, keeping the start.
func TruncateRight(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	budget := width - runewidth.StringWidth(ellipsis)
	used := 0
	end := 0
	for end < len(runes) {
		w := runeWidth(runes[end])
		if used+w > budget {
			break
		}
		used += w
		end++
	}
	return string(runes[:end]) + ellipsis
}
