// Package standings folds match results into an ordered league table.
package standings

import (
	"sort"
	"time"
)

// Team is a club participating in a season.
type Team struct {
	ID    string
	Name  string
	Short string
}

// Match is one completed result.
type Match struct {
	ID        string
	HomeID    string
	AwayID    string
	HomeGoals int
	AwayGoals int
	PlayedAt  time.Time
}

// Rules holds the league's points scheme.
type Rules struct {
	PointsWin  int
	PointsDraw int
}

// DefaultRules is the common 3/1/0 scheme.
var DefaultRules = Rules{PointsWin: 3, PointsDraw: 1}

const formLength = 5

// Row is one computed standings line. It carries more fields than the table
// displays; columns enumerate their accessors explicitly rather than walking
// the struct.
type Row struct {
	Team         Team
	Rank         int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	HomeWon      int
	HomeDrawn    int
	HomeLost     int
	AwayWon      int
	AwayDrawn    int
	AwayLost     int
	Points       int
	Form         string // last results oldest to newest, e.g. "WWDLW"
}

// GoalDiff returns goals scored minus goals conceded.
func (r Row) GoalDiff() int { return r.GoalsFor - r.GoalsAgainst }

// Compute builds the ordered table for the given teams and results. Teams
// without matches appear with zeroed stats. Ordering: points, then goal
// difference, then goals scored, then name.
func Compute(teams []Team, matches []Match, rules Rules) []Row {
	if rules.PointsWin == 0 && rules.PointsDraw == 0 {
		rules = DefaultRules
	}

	byID := make(map[string]*Row, len(teams))
	rows := make([]*Row, 0, len(teams))
	for _, t := range teams {
		r := &Row{Team: t}
		byID[t.ID] = r
		rows = append(rows, r)
	}

	sorted := make([]Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PlayedAt.Before(sorted[j].PlayedAt) })

	for _, m := range sorted {
		home, away := byID[m.HomeID], byID[m.AwayID]
		if home == nil || away == nil {
			continue // result references a team outside this season
		}
		home.Played++
		away.Played++
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals
		switch {
		case m.HomeGoals > m.AwayGoals:
			home.Won++
			home.HomeWon++
			away.Lost++
			away.AwayLost++
			appendForm(home, 'W')
			appendForm(away, 'L')
		case m.HomeGoals < m.AwayGoals:
			away.Won++
			away.AwayWon++
			home.Lost++
			home.HomeLost++
			appendForm(home, 'L')
			appendForm(away, 'W')
		default:
			home.Drawn++
			home.HomeDrawn++
			away.Drawn++
			away.AwayDrawn++
			appendForm(home, 'D')
			appendForm(away, 'D')
		}
	}

	for _, r := range rows {
		r.Points = r.Won*rules.PointsWin + r.Drawn*rules.PointsDraw
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team.Name < b.Team.Name
	})

	out := make([]Row, len(rows))
	for i, r := range rows {
		r.Rank = i + 1
		out[i] = *r
	}
	return out
}

func appendForm(r *Row, result byte) {
	r.Form += string(result)
	if len(r.Form) > formLength {
		r.Form = r.Form[len(r.Form)-formLength:]
	}
}

// Zone classifies a rank for row styling.
type Zone int

const (
	ZoneNone Zone = iota
	ZonePromotion
	ZoneRelegation
)

// ZoneFor places a rank within the promotion/relegation bands of a table
// with total rows.
func ZoneFor(rank, total, promotionSpots, relegationSpots int) Zone {
	if rank <= 0 || total <= 0 {
		return ZoneNone
	}
	if promotionSpots > 0 && rank <= promotionSpots {
		return ZonePromotion
	}
	if relegationSpots > 0 && rank > total-relegationSpots {
		return ZoneRelegation
	}
	return ZoneNone
}
