package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ladder/internal/database/repository"
)

func TestMigrateSeedAndQuery(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(db))
	require.NoError(t, SeedDefaults(ctx, db))
	// Seeding again is a no-op.
	require.NoError(t, SeedDefaults(ctx, db))

	seasons, err := repository.NewSeasonRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	require.Equal(t, "2025/26", seasons[0].Name)

	teamRepo := repository.NewTeamRepo(db)
	teams, err := teamRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 20)

	arsenal, err := teamRepo.GetByName(ctx, "arsenal")
	require.NoError(t, err)
	require.NotNil(t, arsenal, "club lookup is case-insensitive")
	require.Equal(t, "ARS", arsenal.ShortName)

	matches, err := repository.NewMatchRepo(db).ListBySeason(ctx, seasons[0].ID)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		require.NotEqual(t, m.HomeTeamID, m.AwayTeamID)
	}
}

func TestSeedDefaultsRollsBackAsOneUnit(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db))

	// A row squatting on a seed team's deterministic id makes the seed's
	// team insert fail partway through the transaction.
	teamRepo := repository.NewTeamRepo(db)
	require.NoError(t, teamRepo.Upsert(ctx, repository.Team{ID: seedID("team:Arsenal"), Name: "Squatter"}))

	require.Error(t, SeedDefaults(ctx, db))

	// Nothing from the failed seed persists: no season row, so the next
	// attempt does not mistake the wreckage for a completed seed.
	season, err := repository.NewSeasonRepo(db).GetByName(ctx, seedSeasonName)
	require.NoError(t, err)
	require.Nil(t, season)
	teams, err := teamRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	// Clear the conflict and the same database seeds completely.
	_, err = db.ExecContext(ctx, `DELETE FROM teams`)
	require.NoError(t, err)
	require.NoError(t, SeedDefaults(ctx, db))

	teams, err = teamRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 20)
	season, err = repository.NewSeasonRepo(db).GetByName(ctx, seedSeasonName)
	require.NoError(t, err)
	require.NotNil(t, season)
}

func TestMatchDedupeLookups(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db))

	seasonRepo := repository.NewSeasonRepo(db)
	teamRepo := repository.NewTeamRepo(db)
	matchRepo := repository.NewMatchRepo(db)

	require.NoError(t, seasonRepo.Upsert(ctx, repository.Season{ID: "s1", Name: "test", StartsAt: Now()}))
	require.NoError(t, teamRepo.Upsert(ctx, repository.Team{ID: "t1", Name: "Home"}))
	require.NoError(t, teamRepo.Upsert(ctx, repository.Team{ID: "t2", Name: "Away"}))

	ext := "r1"
	hash := "abc123"
	require.NoError(t, matchRepo.Insert(ctx, repository.Match{
		ID: "m1", SeasonID: "s1", HomeTeamID: "t1", AwayTeamID: "t2",
		HomeGoals: 1, AwayGoals: 0, PlayedAt: Now(), ExternalID: &ext, SourceHash: &hash,
	}))

	found, err := matchRepo.ExistsByExternalID(ctx, "s1", "r1")
	require.NoError(t, err)
	require.True(t, found)

	found, err = matchRepo.ExistsBySourceHash(ctx, "s1", "abc123")
	require.NoError(t, err)
	require.True(t, found)

	found, err = matchRepo.ExistsByExternalID(ctx, "s1", "other")
	require.NoError(t, err)
	require.False(t, found)

	n, err := matchRepo.CountBySeason(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
