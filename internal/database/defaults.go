package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/ladder/internal/database/repository"
)

const seedSeasonName = "2025/26"

// SeedDefaults ensures a fresh database renders a real table: one season,
// twenty clubs, and the opening rounds of results. The whole seed runs in one
// transaction, so the season row only exists once every club and result
// landed with it; that makes "season exists" a sound idempotency check on
// later startups.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	seasonRepo := repository.NewSeasonRepo(db)
	existing, err := seasonRepo.GetByName(ctx, seedSeasonName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	seasonID := seedID("season:" + seedSeasonName)

	clubs := []struct {
		name  string
		short string
	}{
		{"Arsenal", "ARS"},
		{"Aston Villa", "AVL"},
		{"Bournemouth", "BOU"},
		{"Brentford", "BRE"},
		{"Brighton", "BHA"},
		{"Chelsea", "CHE"},
		{"Crystal Palace", "CRY"},
		{"Everton", "EVE"},
		{"Fulham", "FUL"},
		{"Ipswich Town", "IPS"},
		{"Leicester City", "LEI"},
		{"Liverpool", "LIV"},
		{"Man City", "MCI"},
		{"Man United", "MUN"},
		{"Newcastle", "NEW"},
		{"Nottm Forest", "NFO"},
		{"Southampton", "SOU"},
		{"Tottenham", "TOT"},
		{"West Ham", "WHU"},
		{"Wolves", "WOL"},
	}

	type result struct {
		day                  int
		home, away           string
		homeGoals, awayGoals int
	}
	// Opening two rounds plus a midweek card.
	results := []result{
		{16, "Arsenal", "Wolves", 2, 0},
		{16, "Brighton", "Everton", 3, 1},
		{16, "Chelsea", "Man City", 0, 0},
		{16, "Crystal Palace", "Brentford", 1, 2},
		{16, "Fulham", "Ipswich Town", 2, 2},
		{16, "Liverpool", "Bournemouth", 4, 1},
		{16, "Man United", "Leicester City", 1, 0},
		{16, "Newcastle", "Southampton", 3, 0},
		{16, "Nottm Forest", "Aston Villa", 1, 1},
		{16, "Tottenham", "West Ham", 2, 1},
		{23, "Aston Villa", "Arsenal", 0, 2},
		{23, "Bournemouth", "Newcastle", 1, 1},
		{23, "Brentford", "Liverpool", 0, 2},
		{23, "Everton", "Tottenham", 1, 3},
		{23, "Ipswich Town", "Man United", 1, 1},
		{23, "Leicester City", "Chelsea", 0, 3},
		{23, "Man City", "Brighton", 2, 1},
		{23, "Southampton", "Crystal Palace", 0, 1},
		{23, "West Ham", "Fulham", 2, 2},
		{23, "Wolves", "Nottm Forest", 0, 1},
		{27, "Arsenal", "Brighton", 1, 1},
		{27, "Liverpool", "Man City", 2, 1},
		{27, "Newcastle", "Chelsea", 2, 0},
		{27, "Tottenham", "Man United", 3, 2},
	}

	return WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO seasons(id, name, starts_at, created_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		`, seasonID, seedSeasonName, time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)); err != nil {
			return fmt.Errorf("seed season: %w", err)
		}
		for _, c := range clubs {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO teams(id, name, short_name, created_at, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			`, seedID("team:"+c.name), c.name, c.short); err != nil {
				return fmt.Errorf("seed team %s: %w", c.name, err)
			}
		}
		for _, r := range results {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO matches(id, season_id, home_team_id, away_team_id, home_goals, away_goals, played_at, external_id, source_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, NULL, NULL, CURRENT_TIMESTAMP)
			`, seedID("match:"+r.home+":"+r.away), seasonID,
				seedID("team:"+r.home), seedID("team:"+r.away),
				r.homeGoals, r.awayGoals,
				time.Date(2025, 8, r.day, 15, 0, 0, 0, time.UTC)); err != nil {
				return fmt.Errorf("seed match %s v %s: %w", r.home, r.away, err)
			}
		}
		return nil
	})
}

func seedID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
