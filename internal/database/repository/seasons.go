package repository

import (
	"context"
	"database/sql"
)

// SeasonRepo handles seasons.
type SeasonRepo struct {
	db *sql.DB
}

func NewSeasonRepo(db *sql.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

func (r *SeasonRepo) Upsert(ctx context.Context, s Season) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO seasons(id, name, starts_at, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 starts_at=excluded.starts_at;
	`, s.ID, s.Name, s.StartsAt)
	return err
}

func (r *SeasonRepo) List(ctx context.Context) ([]Season, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, starts_at, created_at FROM seasons ORDER BY starts_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Season
	for rows.Next() {
		var s Season
		if err := rows.Scan(&s.ID, &s.Name, &s.StartsAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SeasonRepo) GetByName(ctx context.Context, name string) (*Season, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, starts_at, created_at FROM seasons WHERE name = ?`, name)
	var s Season
	if err := row.Scan(&s.ID, &s.Name, &s.StartsAt, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
