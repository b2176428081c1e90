package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphRows is the height of every big-font glyph.
const glyphRows = 3

// bigDigits maps the characters of an "MM:SS" string to half-block glyphs,
// drawn the way a seven-segment watch face would show them.
var bigDigits = map[rune][glyphRows]string{
	'0': {"█▀█", "█ █", "█▄█"},
	'1': {" ▀█", "  █", "  █"},
	'2': {"▀▀█", "█▀▀", "█▄▄"},
	'3': {"▀▀█", " ▀█", "▄▄█"},
	'4': {"█ █", "▀▀█", "  █"},
	'5': {"█▀▀", "▀▀█", "▄▄█"},
	'6': {"█▀▀", "█▀█", "█▄█"},
	'7': {"▀▀█", "  █", "  █"},
	'8': {"█▀█", "█▀█", "█▄█"},
	'9': {"█▀█", "▀▀█", "▄▄█"},
	':': {" ", "▪", "▪"},
}

// minBigWidth is the narrowest terminal that still gets the big font.
const minBigWidth = 30

// renderBigTime renders text such as "24:59" in the big font. Narrow
// terminals get a single bold line instead.
func renderBigTime(text string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < minBigWidth {
		return style.Render(text)
	}

	var rows [glyphRows]strings.Builder
	for i, ch := range text {
		glyph, ok := bigDigits[ch]
		if !ok {
			continue
		}
		for r := range rows {
			if i > 0 {
				rows[r].WriteByte(' ')
			}
			rows[r].WriteString(glyph[r])
		}
	}

	lines := make([]string, glyphRows)
	for r := range rows {
		lines[r] = style.Render(rows[r].String())
	}
	return strings.Join(lines, "\n")
}
