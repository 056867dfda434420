package repository

import "time"

// Season represents a season row.
type Season struct {
	ID        string
	Name      string
	StartsAt  time.Time
	CreatedAt time.Time
}

// Team represents a team row.
type Team struct {
	ID        string
	Name      string
	ShortName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match represents a completed result row.
type Match struct {
	ID         string
	SeasonID   string
	HomeTeamID string
	AwayTeamID string
	HomeGoals  int
	AwayGoals  int
	PlayedAt   time.Time
	ExternalID *string
	SourceHash *string
	CreatedAt  time.Time
}
