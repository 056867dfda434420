package repository

import (
	"context"
	"database/sql"
)

// TeamRepo handles teams.
type TeamRepo struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

func (r *TeamRepo) Upsert(ctx context.Context, t Team) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO teams(id, name, short_name, created_at, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 short_name=excluded.short_name,
	 updated_at=CURRENT_TIMESTAMP;
	`, t.ID, t.Name, t.ShortName)
	return err
}

func (r *TeamRepo) List(ctx context.Context) ([]Team, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, short_name, created_at, updated_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortName, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TeamRepo) GetByName(ctx context.Context, name string) (*Team, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, short_name, created_at, updated_at FROM teams WHERE name = ? COLLATE NOCASE`, name)
	var t Team
	if err := row.Scan(&t.ID, &t.Name, &t.ShortName, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
