package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/ladder/internal/database/repository"
)

var dividerStyle = lipgloss.NewStyle().Foreground(colorSurface1)

func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}
	switch a.state {
	case viewSeasons:
		return a.renderSeasons()
	case viewImport:
		return a.renderImport()
	default:
		return a.renderStandings()
	}
}

func (a *App) renderStandings() string {
	var b strings.Builder

	seasonName := "no season"
	if a.season != nil {
		seasonName = a.season.Name
	}
	title := fmt.Sprintf("ladder  %s  %d matches", seasonName, a.matchCount)
	b.WriteString(headerBarStyle.Width(a.width).Render(title))
	b.WriteString("\n")

	div := dividerStyle.Render(" │ ")

	b.WriteString(columnHeaderStyle.Render(titlesLine(stickyColumns())))
	b.WriteString(div)
	b.WriteString(a.header.View())
	b.WriteString("\n")

	rows := a.windowRows()
	if len(rows) == 0 {
		b.WriteString(statusStyle.Render("No results yet. Press i to import a CSV."))
		b.WriteString("\n")
	} else {
		// The body surface renders the scrollable statistics region; the
		// sticky rank/club cells are rendered here, outside it, line by
		// line with the matching row style.
		scrollLines := strings.Split(a.body.View(), "\n")
		sticky := stickyColumns()
		for i, r := range rows {
			style := a.rowLineStyle(r)
			b.WriteString(style.Render(rowLine(sticky, r)))
			b.WriteString(div)
			if i < len(scrollLines) {
				b.WriteString(scrollLines[i])
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(statusStyle.Render(a.status))
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderFooter() string {
	help := fmt.Sprintf("%s scroll stats  %s move  %s seasons  %s import  %s reload  %s quit",
		helpKeyStyle.Render("h/l"),
		helpKeyStyle.Render("j/k"),
		helpKeyStyle.Render("s"),
		helpKeyStyle.Render("i"),
		helpKeyStyle.Render("r"),
		helpKeyStyle.Render("q"),
	)
	if maxOff := a.body.Viewport().MaxOffset(); maxOff > 0 {
		hint := scrollHintStyle.Render(fmt.Sprintf("  ◀ %d/%d ▶", a.lastScroll, maxOff))
		help += hint
	}
	return footerStyle.Width(a.width).Render(help)
}

func (a *App) renderSeasons() string {
	var b strings.Builder
	b.WriteString(headerBarStyle.Width(a.width).Render("ladder  seasons"))
	b.WriteString("\n")
	b.WriteString(a.seasonList.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Width(a.width).Render(
		helpKeyStyle.Render("enter") + " select  " + helpKeyStyle.Render("esc") + " back"))
	return b.String()
}

func (a *App) renderImport() string {
	var b strings.Builder
	b.WriteString(headerBarStyle.Width(a.width).Render("ladder  import results"))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render("CSV columns: date,home,away,home_goals,away_goals[,external_id]"))
	b.WriteString("\n\n")
	b.WriteString("  Path: " + a.importPath + helpKeyStyle.Render("▌"))
	b.WriteString("\n")
	if a.lastImport != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Last import: %d imported, %d skipped\n",
			a.lastImport.Imported, a.lastImport.Skipped))
		for i, e := range a.lastImport.Errors {
			if i >= 5 {
				b.WriteString(statusStyle.Render(
					fmt.Sprintf("  ... and %d more\n", len(a.lastImport.Errors)-i)))
				break
			}
			b.WriteString(relegationStyle.Render("  " + e.Error()))
			b.WriteString("\n")
		}
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("  " + a.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Width(a.width).Render(
		helpKeyStyle.Render("enter") + " import  " + helpKeyStyle.Render("esc") + " back"))
	return b.String()
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// seasonItem adapts a stored season to the list widget. Start dates render
// in the configured ui.date_format.
type seasonItem struct {
	s          repository.Season
	dateFormat string
}

func (i seasonItem) Title() string       { return i.s.Name }
func (i seasonItem) FilterValue() string { return i.s.Name }

func (i seasonItem) startsAt() string {
	format := i.dateFormat
	if format == "" {
		format = "Jan 2006"
	}
	return i.s.StartsAt.Format(format)
}

type seasonDelegate struct{}

func (seasonDelegate) Height() int                         { return 1 }
func (seasonDelegate) Spacing() int                        { return 0 }
func (seasonDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (seasonDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(seasonItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("  %s  %s", it.s.Name, statusStyle.Render(it.startsAt()))
	if index == m.Index() {
		line = helpKeyStyle.Render("> " + it.s.Name + "  " + it.startsAt())
	}
	fmt.Fprint(w, line)
}
