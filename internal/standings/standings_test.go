package standings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 8, n, 15, 0, 0, 0, time.UTC)
}

func testTeams() []Team {
	return []Team{
		{ID: "ars", Name: "Arsenal", Short: "ARS"},
		{ID: "liv", Name: "Liverpool", Short: "LIV"},
		{ID: "mci", Name: "Man City", Short: "MCI"},
		{ID: "new", Name: "Newcastle", Short: "NEW"},
	}
}

func TestComputePointsAndRecord(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "1", HomeID: "ars", AwayID: "liv", HomeGoals: 2, AwayGoals: 0, PlayedAt: day(1)},
		{ID: "2", HomeID: "mci", AwayID: "new", HomeGoals: 1, AwayGoals: 1, PlayedAt: day(1)},
		{ID: "3", HomeID: "liv", AwayID: "mci", HomeGoals: 3, AwayGoals: 1, PlayedAt: day(8)},
		{ID: "4", HomeID: "new", AwayID: "ars", HomeGoals: 0, AwayGoals: 1, PlayedAt: day(8)},
	}

	rows := Compute(testTeams(), matches, DefaultRules)
	require.Len(t, rows, 4)

	require.Equal(t, "Arsenal", rows[0].Team.Name)
	require.Equal(t, 6, rows[0].Points)
	require.Equal(t, 2, rows[0].Won)
	require.Equal(t, 3, rows[0].GoalsFor)
	require.Equal(t, 0, rows[0].GoalsAgainst)
	require.Equal(t, 1, rows[0].Rank)
	require.Equal(t, "WW", rows[0].Form)
	require.Equal(t, 1, rows[0].HomeWon)
	require.Equal(t, 1, rows[0].AwayWon)

	require.Equal(t, "Liverpool", rows[1].Team.Name)
	require.Equal(t, 3, rows[1].Points)
	require.Equal(t, "LW", rows[1].Form)
}

func TestComputeTiebreaksGoalDifferenceThenGoalsThenName(t *testing.T) {
	t.Parallel()

	// Everyone on 3 points; separation comes from GD, then GF, then name.
	// Arsenal and Liverpool are identical on every stat, so name decides.
	matches := []Match{
		{ID: "1", HomeID: "ars", AwayID: "new", HomeGoals: 3, AwayGoals: 0, PlayedAt: day(1)},
		{ID: "2", HomeID: "liv", AwayID: "new", HomeGoals: 3, AwayGoals: 0, PlayedAt: day(2)},
		{ID: "3", HomeID: "mci", AwayID: "new", HomeGoals: 4, AwayGoals: 2, PlayedAt: day(3)},
	}

	rows := Compute(testTeams(), matches, DefaultRules)
	require.Equal(t, []string{"Arsenal", "Liverpool", "Man City", "Newcastle"},
		[]string{rows[0].Team.Name, rows[1].Team.Name, rows[2].Team.Name, rows[3].Team.Name})
	require.Equal(t, rows[0].Points, rows[2].Points)
	require.Greater(t, rows[0].GoalDiff(), rows[2].GoalDiff(), "GD separates before GF")
	require.Greater(t, rows[2].GoalsFor, rows[0].GoalsFor)
}

func TestComputeFormKeepsLastFive(t *testing.T) {
	t.Parallel()

	teams := testTeams()[:2]
	var matches []Match
	for i := 1; i <= 7; i++ {
		matches = append(matches, Match{
			ID: string(rune('a' + i)), HomeID: "ars", AwayID: "liv",
			HomeGoals: i % 3, AwayGoals: 1, PlayedAt: day(i),
		})
	}

	rows := Compute(teams, matches, DefaultRules)
	for _, r := range rows {
		require.Len(t, r.Form, 5)
		require.Equal(t, 7, r.Played)
	}
}

func TestComputeCustomRules(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "1", HomeID: "ars", AwayID: "liv", HomeGoals: 1, AwayGoals: 0, PlayedAt: day(1)},
		{ID: "2", HomeID: "mci", AwayID: "new", HomeGoals: 2, AwayGoals: 2, PlayedAt: day(1)},
	}

	rows := Compute(testTeams(), matches, Rules{PointsWin: 2, PointsDraw: 1})
	byName := map[string]Row{}
	for _, r := range rows {
		byName[r.Team.Name] = r
	}
	require.Equal(t, 2, byName["Arsenal"].Points)
	require.Equal(t, 1, byName["Man City"].Points)
	require.Equal(t, 1, byName["Newcastle"].Points)
}

func TestComputeIgnoresMatchesOutsideSeason(t *testing.T) {
	t.Parallel()

	matches := []Match{
		{ID: "1", HomeID: "ars", AwayID: "zzz", HomeGoals: 5, AwayGoals: 0, PlayedAt: day(1)},
	}
	rows := Compute(testTeams(), matches, DefaultRules)
	for _, r := range rows {
		require.Zero(t, r.Played)
	}
}

func TestZoneFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, ZonePromotion, ZoneFor(1, 20, 2, 3))
	require.Equal(t, ZonePromotion, ZoneFor(2, 20, 2, 3))
	require.Equal(t, ZoneNone, ZoneFor(3, 20, 2, 3))
	require.Equal(t, ZoneNone, ZoneFor(17, 20, 2, 3))
	require.Equal(t, ZoneRelegation, ZoneFor(18, 20, 2, 3))
	require.Equal(t, ZoneRelegation, ZoneFor(20, 20, 2, 3))
	require.Equal(t, ZoneNone, ZoneFor(0, 20, 2, 3))
}
