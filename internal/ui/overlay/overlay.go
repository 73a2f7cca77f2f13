// Package overlay composes popup views over a base view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose draws overlay on top of base. Rows of the overlay that are
// visually empty leave the base untouched; elsewhere the overlay's visible
// span replaces the base at the same columns. Both views may contain ANSI
// styling.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for i, line := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		startCol := 0
		for _, r := range plain {
			if r != ' ' {
				break
			}
			startCol++
		}
		trimmed := strings.TrimRight(plain, " ")
		endCol := startCol + ansi.StringWidth(trimmed[startCol:])

		baseLine := baseLines[i]
		if w := ansi.StringWidth(ansi.Strip(baseLine)); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		result := ansi.Cut(baseLine, 0, startCol) + ansi.Cut(line, startCol, endCol)
		if endCol < width {
			result += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = result
	}

	return strings.Join(baseLines, "\n")
}
