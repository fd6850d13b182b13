package textutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// invisibleNames labels the zero-width and bidi runes that can disguise a
// file name. Other format runes are shown by code point.
var invisibleNames = map[rune]string{
	0x00AD: "SHY",
	0x061C: "ALM",
	0x200B: "ZWSP",
	0x200C: "ZWNJ",
	0x200D: "ZWJ",
	0x200E: "LRM",
	0x200F: "RLM",
	0x202A: "LRE",
	0x202B: "RLE",
	0x202C: "PDF",
	0x202D: "LRO",
	0x202E: "RLO",
	0x2060: "WJ",
	0x2066: "LRI",
	0x2067: "RLI",
	0x2068: "FSI",
	0x2069: "PDI",
	0xFEFF: "BOM",
}

// SanitizeTerminalText makes a file name safe to print: C0 and C1 controls
// become '?', whitespace controls become a space and invisible format runes
// are replaced by a visible label.
func SanitizeTerminalText(text string) string {
	out, _ := SanitizeHighlighted(text, nil)
	return out
}

// SanitizeHighlighted sanitizes text like SanitizeTerminalText and remaps
// positions, which index runes of text, onto runes of the result. A rune
// replaced by a multi-rune label maps to the label's first rune.
func SanitizeHighlighted(text string, positions []int) (string, []int) {
	if !needsSanitization(text) {
		return text, positions
	}

	var b strings.Builder
	b.Grow(len(text))
	offsets := make([]int, 0, len(text))
	out := 0
	for _, r := range text {
		offsets = append(offsets, out)
		if repl, ok := replacement(r); ok {
			b.WriteString(repl)
			out += utf8.RuneCountInString(repl)
			continue
		}
		b.WriteRune(r)
		out++
	}

	if positions == nil {
		return b.String(), nil
	}
	mapped := make([]int, 0, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(offsets) {
			mapped = append(mapped, offsets[p])
		}
	}
	return b.String(), mapped
}

func needsSanitization(text string) bool {
	for _, r := range text {
		if _, ok := replacement(r); ok {
			return true
		}
	}
	return false
}

func replacement(r rune) (string, bool) {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return " ", true
	case r < 0x20, r == 0x7f:
		return "?", true
	case r < 0x80:
		return "", false
	case r <= 0x9f:
		return "?", true
	case unicode.In(r, unicode.Cf, unicode.Zl, unicode.Zp):
		if name, ok := invisibleNames[r]; ok {
			return "⟪" + name + "⟫", true
		}
		return fmt.Sprintf("⟪U+%04X⟫", r), true
	}
	return "", false
}
