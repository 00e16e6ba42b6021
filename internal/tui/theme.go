package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/arcadezone/internal/catalog"
)

// ---------------------------------------------------------------------------
// Neon cabinet palette
// ---------------------------------------------------------------------------

const (
	colorCyan   lipgloss.Color = "#22d3ee"
	colorOrange lipgloss.Color = "#f97316"
	colorPink   lipgloss.Color = "#ec4899"
	colorPurple lipgloss.Color = "#a855f7"
	colorGreen  lipgloss.Color = "#4ade80"

	colorWhite   lipgloss.Color = "#fafafa"
	colorZinc400 lipgloss.Color = "#a1a1aa"
	colorZinc500 lipgloss.Color = "#71717a"
	colorZinc700 lipgloss.Color = "#3f3f46"
	colorZinc900 lipgloss.Color = "#18181b"
	colorRed     lipgloss.Color = "#f87171"
)

const (
	colorBrand  = colorPink
	colorMuted  = colorZinc500
	colorError  = colorRed
	colorFooter = colorGreen
)

// ThemeColor is the accent a cabinet is drawn with.
func ThemeColor(t catalog.Theme) lipgloss.Color {
	switch t {
	case catalog.ThemeCyan:
		return colorCyan
	case catalog.ThemeOrange:
		return colorOrange
	case catalog.ThemePink:
		return colorPink
	case catalog.ThemePurple:
		return colorPurple
	case catalog.ThemeGreen:
		return colorGreen
	}
	return colorWhite
}

var (
	titleStyle      = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)
	bannerStyle     = lipgloss.NewStyle().Foreground(colorBrand).Background(colorZinc900).Bold(true)
	bannerMetaStyle = lipgloss.NewStyle().Foreground(colorMuted).Background(colorZinc900)

	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	labelStyle  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(colorFooter)
	statusStyle = lipgloss.NewStyle().Foreground(colorZinc400)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(colorBrand)
)

// cardStyle frames one cabinet. The centred card gets the heavy border.
func cardStyle(t catalog.Theme, width int, selected, dimmed bool) lipgloss.Style {
	border := lipgloss.RoundedBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}
	accent := ThemeColor(t)
	if dimmed {
		accent = colorZinc700
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(accent).
		Width(max(1, width-2)).
		Padding(0, 1).
		Faint(dimmed)
}

func accentStyle(t catalog.Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ThemeColor(t)).Bold(true)
}
