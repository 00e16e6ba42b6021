package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// overlayAt composites block onto base with its top-left at column x, row y.
// Columns outside [0, width) are clipped, so x may be negative.
func overlayAt(base, block string, x, y, width, height int) string {
	baseLines := splitLines(base)
	blockLines := splitLines(block)
	blockWidth := maxLineWidth(blockLines)
	for i, line := range blockLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		line = padRight(line, blockWidth)
		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if col >= width {
			continue
		}
		line = ansi.Truncate(line, width-col, "")
		if ansi.StringWidth(line) == 0 {
			continue
		}

		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, col, "")
		if w := ansi.StringWidth(left); w < col {
			left += strings.Repeat(" ", col-w)
		}
		right := ansi.TruncateLeft(target, col+ansi.StringWidth(line), "")
		baseLines[row] = left + line + right
	}
	return strings.Join(baseLines, "\n")
}

// blank returns a height x width grid of spaces.
func blank(width, height int) string {
	if height <= 0 {
		return ""
	}
	row := strings.Repeat(" ", max(0, width))
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// splitLines splits a string on newlines, returning at least one element.
func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// center pads s on both sides to width, truncating when it does not fit.
func center(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return strings.Repeat(" ", gap/2) + s + strings.Repeat(" ", gap-gap/2)
}

// clipHeight keeps the first height lines of s.
func clipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
