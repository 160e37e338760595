package terminal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Box and bar glyphs.
const (
	BoxHorizontal       = "─"
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"

	ProgressFilled = "█"
	ProgressEmpty  = "░"

	Ellipsis = "..."

	headerPadding = 1
	percentScale  = 100
)

// DrawSeparator draws a thin horizontal line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered section header with optional right
// aligned text.
func DrawHeader(title, rightText string, width int) string {
	titleLen := utf8.RuneCountInString(title)
	rightLen := utf8.RuneCountInString(rightText)
	width = max(width, titleLen+rightLen+4+headerPadding*2)

	inner := width - 2
	contentWidth := inner - headerPadding*2

	content := PadRight(title, contentWidth)
	if rightText != "" {
		gap := max(contentWidth-titleLen-rightLen, 1)
		content = title + strings.Repeat(" ", gap) + rightText
	}

	pad := strings.Repeat(" ", headerPadding)

	return BoxHeavyTopLeft + strings.Repeat(BoxHeavyHorizontal, inner) + BoxHeavyTopRight + "\n" +
		BoxHeavyVertical + pad + content + pad + BoxHeavyVertical + "\n" +
		BoxHeavyBottomLeft + strings.Repeat(BoxHeavyHorizontal, inner) + BoxHeavyBottomRight
}

// DrawProgressBar draws a bar for a fraction clamped to [0, 1].
func DrawProgressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// DrawPercentBar draws "label  ████░░░░  42.0%  (17)" for a percentage in
// [0, 100].
func DrawPercentBar(label string, percent float64, count, labelWidth, barWidth int) string {
	return fmt.Sprintf("%s %s %5.1f%%  (%d)",
		PadRight(Truncate(label, labelWidth), labelWidth),
		DrawProgressBar(percent/percentScale, barWidth),
		percent, count)
}

// Truncate cuts s to maxWidth runes, ending in "..." when shortened.
func Truncate(s string, maxWidth int) string {
	if utf8.RuneCountInString(s) <= maxWidth {
		return s
	}

	if maxWidth <= len(Ellipsis) {
		return strings.Repeat(".", max(maxWidth, 0))
	}

	runes := []rune(s)

	return string(runes[:maxWidth-len(Ellipsis)]) + Ellipsis
}

// PadRight pads s with spaces to width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return s + strings.Repeat(" ", width-n)
}
