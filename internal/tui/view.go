package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/arcadezone/internal/catalog"
	"github.com/jask/arcadezone/internal/launch"
	"github.com/jask/arcadezone/internal/loader"
)

// Screen rows shared by the renderer and mouse hit testing.
const (
	cardTop    = 2
	cardHeight = 7
)

const (
	headerText = "ARCADE ZONE"
	footerText = "INSERT COIN TO START • © 1985"
	returnText = "← RETURN TO ARCADE ZONE"
)

var diagnostics = []string{
	"VRAM: 64KB OK",
	"SOUND: YM2151 OK",
	"INPUT: DETECTED",
}

func (a *App) View() string {
	snap := a.ctrl.Snapshot()
	if snap.Launch.Expanded {
		return a.expandedView(snap)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(center(headerText, a.width)))
	b.WriteString("\n\n")
	b.WriteString(a.carouselView(snap))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(center(positionDots(snap), a.width)))
	b.WriteString("\n\n")

	if e, ok := snap.Loading(); ok && snap.Progress != nil {
		b.WriteString(a.loaderView(e, *snap.Progress))
	} else {
		b.WriteString(a.detailView(snap))
	}
	b.WriteString("\n")

	switch {
	case a.jumping:
		b.WriteString(a.jump.View())
	case a.status != "" && a.statusErr:
		b.WriteString(errorStyle.Render(ansi.Truncate(a.status, a.width, "…")))
	case a.status != "":
		b.WriteString(statusStyle.Render(ansi.Truncate(a.status, a.width, "…")))
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(a.activeKeys()))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(center(footerText, a.width)))
	return clipHeight(b.String(), a.height)
}

// carouselView draws every card at its track position relative to the
// viewport centre, clipped to the terminal width.
func (a *App) carouselView(snap launch.Snapshot) string {
	units := a.opts.CellUnits
	layout := snap.Carousel.Layout
	cardWidth := max(6, int(layout.ItemWidth/units))
	canvas := blank(a.width, cardHeight)
	for i, e := range snap.Entries {
		left := float64(i)*layout.Pitch() + snap.Carousel.Offset
		col := int(math.Floor(float64(a.width)/2 + left/units))
		if col >= a.width || col+cardWidth <= 0 {
			continue
		}
		canvas = overlayAt(canvas, a.card(snap, i, e, cardWidth), col, 0, a.width, cardHeight)
	}
	return canvas
}

func (a *App) card(snap launch.Snapshot, i int, e catalog.Entry, width int) string {
	inner := max(1, width-4)
	state := snap.Launch
	selected := i == snap.Carousel.Index
	dimmed := snap.Phase == launch.PhaseLoading && !state.IsLoading(e.ID)

	var status, hint string
	switch {
	case state.IsLoading(e.ID):
		status = "BOOTING"
		if snap.Progress != nil {
			status = fmt.Sprintf("BOOTING %3.0f%%", snap.Progress.Percent())
		}
		hint = "PLEASE WAIT"
	case state.IsRunning(e.ID):
		status = "▶ " + ResolveTarget(a.opts.TargetBase, e.Target)
		hint = "[E] EXPAND"
	case selected:
		status = "PRESS ENTER"
		hint = "TO PLAY"
	default:
		status = "INSERT COIN"
	}

	title := accentStyle(e.Theme)
	if dimmed {
		title = mutedStyle
	}
	lines := []string{
		title.Render(ansi.Truncate(e.Title, inner, "…")),
		mutedStyle.Render(ansi.Truncate(e.Description, inner, "…")),
		"",
		labelStyle.Render(ansi.Truncate(status, inner, "…")),
		mutedStyle.Render(ansi.Truncate(hint, inner, "…")),
	}
	return cardStyle(e.Theme, width, selected, dimmed).Render(strings.Join(lines, "\n"))
}

func positionDots(snap launch.Snapshot) string {
	dots := make([]string, len(snap.Entries))
	for i := range dots {
		dots[i] = "○"
		if i == snap.Carousel.Index {
			dots[i] = "●"
		}
	}
	return strings.Join(dots, " ")
}

func (a *App) detailView(snap launch.Snapshot) string {
	if len(snap.Entries) == 0 {
		return ""
	}
	e := snap.Selected()
	line := accentStyle(e.Theme).Render(e.Title)
	if e.Description != "" {
		line += mutedStyle.Render(" · " + e.Description)
	}
	return center(line, a.width)
}

// loaderView is the boot screen: title, progress bar, marquee and the
// diagnostics block.
func (a *App) loaderView(e catalog.Entry, p loader.Progress) string {
	bar := progress.New(
		progress.WithSolidFill(string(ThemeColor(e.Theme))),
		progress.WithWidth(max(10, min(48, a.width-4))),
	)
	rows := []string{
		accentStyle(e.Theme).Render(e.Title),
		bar.ViewAs(p.Ratio),
		labelStyle.Render(p.Phase.Label()),
	}
	for _, d := range diagnostics {
		rows = append(rows, mutedStyle.Render(d))
	}
	for i, r := range rows {
		rows[i] = center(r, a.width)
	}
	return strings.Join(rows, "\n")
}

// expandedView gives the terminal to the running game, leaving the return
// banner on the top row.
func (a *App) expandedView(snap launch.Snapshot) string {
	e, _ := snap.Running()
	playing := "PLAYING: " + e.Title
	gap := a.width - ansi.StringWidth(returnText) - ansi.StringWidth(playing) - 2
	banner := bannerStyle.Render(" "+returnText) +
		bannerMetaStyle.Render(strings.Repeat(" ", max(1, gap))+playing+" ")
	banner = ansi.Truncate(banner, a.width, "")

	bodyHeight := max(3, a.height-3)
	body := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ThemeColor(e.Theme)).
		Width(max(1, a.width-2)).
		Height(bodyHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join([]string{
			accentStyle(e.Theme).Render(e.Title),
			"",
			labelStyle.Render("▶ " + ResolveTarget(a.opts.TargetBase, e.Target)),
			"",
			mutedStyle.Render("ESC TO RETURN"),
		}, "\n"))
	return clipHeight(banner+"\n"+body, a.height)
}
