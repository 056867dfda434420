package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jask/ladder/internal/standings"
)

// column describes one table column: where it lives (sticky group or the
// scrollable statistics region) and how a row's value is read. The list is
// enumerated by hand rather than derived from the Row struct: Row carries
// fields the table never shows, and the display order is a presentation
// decision.
type column struct {
	title  string
	width  int
	sticky bool
	left   bool // left-aligned; numeric columns are right-aligned
	value  func(standings.Row) string
}

func tableColumns() []column {
	num := func(v func(standings.Row) int) func(standings.Row) string {
		return func(r standings.Row) string { return fmt.Sprintf("%d", v(r)) }
	}
	return []column{
		{title: "#", width: 3, sticky: true, value: num(func(r standings.Row) int { return r.Rank })},
		{title: "Club", width: 16, sticky: true, left: true, value: func(r standings.Row) string { return r.Team.Name }},

		{title: "P", width: 4, value: num(func(r standings.Row) int { return r.Played })},
		{title: "W", width: 4, value: num(func(r standings.Row) int { return r.Won })},
		{title: "D", width: 4, value: num(func(r standings.Row) int { return r.Drawn })},
		{title: "L", width: 4, value: num(func(r standings.Row) int { return r.Lost })},
		{title: "GF", width: 5, value: num(func(r standings.Row) int { return r.GoalsFor })},
		{title: "GA", width: 5, value: num(func(r standings.Row) int { return r.GoalsAgainst })},
		{title: "GD", width: 5, value: func(r standings.Row) string { return fmt.Sprintf("%+d", r.GoalDiff()) }},
		{title: "Pts", width: 5, value: num(func(r standings.Row) int { return r.Points })},
		{title: "HW", width: 4, value: num(func(r standings.Row) int { return r.HomeWon })},
		{title: "HD", width: 4, value: num(func(r standings.Row) int { return r.HomeDrawn })},
		{title: "HL", width: 4, value: num(func(r standings.Row) int { return r.HomeLost })},
		{title: "AW", width: 4, value: num(func(r standings.Row) int { return r.AwayWon })},
		{title: "AD", width: 4, value: num(func(r standings.Row) int { return r.AwayDrawn })},
		{title: "AL", width: 4, value: num(func(r standings.Row) int { return r.AwayLost })},
		{title: "Form", width: 7, left: true, value: func(r standings.Row) string { return r.Form }},
	}
}

func stickyColumns() []column {
	var out []column
	for _, c := range tableColumns() {
		if c.sticky {
			out = append(out, c)
		}
	}
	return out
}

func scrollColumns() []column {
	var out []column
	for _, c := range tableColumns() {
		if !c.sticky {
			out = append(out, c)
		}
	}
	return out
}

// lineWidth is the rendered width of cols with single-space separators.
func lineWidth(cols []column) int {
	if len(cols) == 0 {
		return 0
	}
	w := len(cols) - 1
	for _, c := range cols {
		w += c.width
	}
	return w
}

func stickyWidth() int { return lineWidth(stickyColumns()) }

func scrollWidth() int { return lineWidth(scrollColumns()) }

// cell pads s to the column width, truncating if the value overflows.
func (c column) cell(s string) string {
	s = ansi.Truncate(s, c.width, "…")
	gap := c.width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	pad := strings.Repeat(" ", gap)
	if c.left {
		return s + pad
	}
	return pad + s
}

// titlesLine renders the header cells of cols as one line.
func titlesLine(cols []column) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.cell(c.title)
	}
	return strings.Join(parts, " ")
}

// rowLine renders r's values for cols as one line.
func rowLine(cols []column, r standings.Row) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.cell(c.value(r))
	}
	return strings.Join(parts, " ")
}
