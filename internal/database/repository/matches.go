package repository

import (
	"context"
	"database/sql"
)

// MatchRepo handles completed results.
type MatchRepo struct {
	db *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{db: db}
}

func (r *MatchRepo) Insert(ctx context.Context, m Match) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO matches(id, season_id, home_team_id, away_team_id, home_goals, away_goals, played_at, external_id, source_hash, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, m.ID, m.SeasonID, m.HomeTeamID, m.AwayTeamID, m.HomeGoals, m.AwayGoals, m.PlayedAt, m.ExternalID, m.SourceHash)
	return err
}

func (r *MatchRepo) ListBySeason(ctx context.Context, seasonID string) ([]Match, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, season_id, home_team_id, away_team_id, home_goals, away_goals, played_at, external_id, source_hash, created_at
	FROM matches WHERE season_id = ? ORDER BY played_at, created_at
	`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.SeasonID, &m.HomeTeamID, &m.AwayTeamID, &m.HomeGoals, &m.AwayGoals, &m.PlayedAt, &m.ExternalID, &m.SourceHash, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ExistsByExternalID reports whether a result with this external id is
// already recorded for the season.
func (r *MatchRepo) ExistsByExternalID(ctx context.Context, seasonID, externalID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM matches WHERE season_id = ? AND external_id = ?`,
		seasonID, externalID).Scan(&n)
	return n > 0, err
}

// ExistsBySourceHash reports whether an identical source line was already
// imported for the season.
func (r *MatchRepo) ExistsBySourceHash(ctx context.Context, seasonID, hash string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM matches WHERE season_id = ? AND source_hash = ?`,
		seasonID, hash).Scan(&n)
	return n > 0, err
}

// CountBySeason returns the number of recorded results for the season.
func (r *MatchRepo) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM matches WHERE season_id = ?`, seasonID).Scan(&n)
	return n, err
}
