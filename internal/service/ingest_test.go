package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/ladder/internal/database"
	"github.com/jask/ladder/internal/database/repository"
)

func newTestIngest(t *testing.T) (context.Context, *IngestService, *repository.MatchRepo, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))

	seasonRepo := repository.NewSeasonRepo(db)
	require.NoError(t, seasonRepo.Upsert(ctx, repository.Season{
		ID: "s1", Name: "2025/26", StartsAt: database.Now(),
	}))

	matchRepo := repository.NewMatchRepo(db)
	svc := &IngestService{Matches: matchRepo, Teams: repository.NewTeamRepo(db)}
	return ctx, svc, matchRepo, "s1"
}

func TestImportCSVCreatesTeamsAndMatches(t *testing.T) {
	t.Parallel()

	ctx, svc, matchRepo, seasonID := newTestIngest(t)

	data := strings.Join([]string{
		"16/08/2025,Arsenal,Wolves,2,0,r1-ars-wol",
		"16/08/2025,Liverpool,Bournemouth,4,1,r1-liv-bou",
		"23/08/2025,Wolves,Liverpool,1,1,r2-wol-liv",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data), seasonID, time.UTC)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 3, res.Imported)
	require.Equal(t, 0, res.Skipped)

	matches, err := matchRepo.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	require.Equal(t, "2025-08-16", matches[0].PlayedAt.Format("2006-01-02"))

	teams, err := svc.Teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 4, "four distinct clubs across three results")
}

func TestImportCSVFuzzyMatchesExistingClub(t *testing.T) {
	t.Parallel()

	ctx, svc, _, seasonID := newTestIngest(t)

	first := "16/08/2025,Arsenal,Liverpool,1,0\n"
	res, err := svc.ImportCSV(ctx, strings.NewReader(first), seasonID, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	// Suffix noise and a typo both resolve to the clubs already on file.
	second := "23/08/2025,Arsenal FC,Liverpoool,2,2\n"
	res, err = svc.ImportCSV(ctx, strings.NewReader(second), seasonID, time.UTC)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	require.Equal(t, 1, res.Imported)

	teams, err := svc.Teams.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2, "no duplicate clubs created")
}

func TestImportCSVSkipsDuplicates(t *testing.T) {
	t.Parallel()

	ctx, svc, _, seasonID := newTestIngest(t)

	data := "16/08/2025,Chelsea,Fulham,3,1,ext-1\n"
	res, err := svc.ImportCSV(ctx, strings.NewReader(data), seasonID, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 1, res.Imported)

	// Same external id: skipped.
	res, err = svc.ImportCSV(ctx, strings.NewReader(data), seasonID, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)
	require.Equal(t, 1, res.Skipped)

	// Same line without the external id: caught by the source hash.
	res, err = svc.ImportCSV(ctx, strings.NewReader("16/08/2025,Chelsea,Fulham,3,1\n"), seasonID, time.UTC)
	require.NoError(t, err)
	require.Equal(t, 0, res.Imported)
	require.Equal(t, 1, res.Skipped)
}

func TestImportCSVReportsBadLines(t *testing.T) {
	t.Parallel()

	ctx, svc, matchRepo, seasonID := newTestIngest(t)

	data := strings.Join([]string{
		"not-a-date,Arsenal,Wolves,2,0",
		"16/08/2025,Everton,Everton,1,1",
		"16/08/2025,Brighton,Newcastle,x,0",
		"16/08/2025,Brighton,Newcastle,1,-2",
		"16/08/2025,Spurs,West Ham,1,0",
	}, "\n")

	res, err := svc.ImportCSV(ctx, strings.NewReader(data), seasonID, time.UTC)
	require.NoError(t, err)
	require.Len(t, res.Errors, 4)
	require.Equal(t, 1, res.Imported)

	matches, err := matchRepo.ListBySeason(ctx, seasonID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}
