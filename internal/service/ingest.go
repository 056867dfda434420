package service

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/ladder/internal/database/repository"
)

// fuzzyThreshold is the normalized edit distance below which an incoming
// team name is treated as an existing club rather than a new one.
const fuzzyThreshold = 0.3

// IngestService imports match results from CSV.
type IngestService struct {
	Matches *repository.MatchRepo
	Teams   *repository.TeamRepo

	teamCache map[string]repository.Team // normalized name -> team
}

// IngestResult summarises one import run.
type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// CSV columns: date, home, away, home_goals, away_goals[, external_id].
// Dates are day-first in the given timezone. Lines with errors are reported
// and skipped; duplicates (by external id or source hash) are counted as
// skipped.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader, seasonID string, tz *time.Location) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if len(rec) < 5 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected at least 5 columns", line))
			continue
		}
		dateStr, homeName, awayName, homeStr, awayStr := rec[0], rec[1], rec[2], rec[3], rec[4]
		externalID := ""
		if len(rec) > 5 {
			externalID = strings.TrimSpace(rec[5])
		}

		date, err := parseLocalDate(dateStr, tz)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d date: %w", line, err))
			continue
		}
		homeGoals, err := parseGoals(homeStr)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d home goals: %w", line, err))
			continue
		}
		awayGoals, err := parseGoals(awayStr)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d away goals: %w", line, err))
			continue
		}

		home, err := s.resolveTeam(ctx, homeName)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d home team: %w", line, err))
			continue
		}
		away, err := s.resolveTeam(ctx, awayName)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d away team: %w", line, err))
			continue
		}
		if home.ID == away.ID {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: home and away resolve to the same club %q", line, home.Name))
			continue
		}

		if externalID != "" {
			exists, err := s.Matches.ExistsByExternalID(ctx, seasonID, externalID)
			if err != nil {
				return res, err
			}
			if exists {
				res.Skipped++
				continue
			}
		}
		hash := sourceHash(date, home.ID, away.ID, homeGoals, awayGoals)
		exists, err := s.Matches.ExistsBySourceHash(ctx, seasonID, hash)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}

		m := repository.Match{
			ID:         uuid.NewString(),
			SeasonID:   seasonID,
			HomeTeamID: home.ID,
			AwayTeamID: away.ID,
			HomeGoals:  homeGoals,
			AwayGoals:  awayGoals,
			PlayedAt:   date,
			ExternalID: nullableStr(externalID),
			SourceHash: &hash,
		}
		if err := s.Matches.Insert(ctx, m); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

// resolveTeam maps an incoming name to a club. Exact (normalized) matches hit
// the cache; near misses within the edit-distance threshold reuse the
// existing club so typos and suffix noise don't spawn duplicates; anything
// else becomes a new club.
func (s *IngestService) resolveTeam(ctx context.Context, name string) (repository.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Team{}, fmt.Errorf("empty team name")
	}
	if err := s.warmTeamCache(ctx); err != nil {
		return repository.Team{}, err
	}

	norm := normalizeTeamName(name)
	if t, ok := s.teamCache[norm]; ok {
		return t, nil
	}

	if t, ok := s.closestTeam(norm); ok {
		s.teamCache[norm] = t
		return t, nil
	}

	t := repository.Team{ID: uuid.NewString(), Name: name, ShortName: shortNameFor(name)}
	if err := s.Teams.Upsert(ctx, t); err != nil {
		return repository.Team{}, err
	}
	s.teamCache[norm] = t
	return t, nil
}

func (s *IngestService) warmTeamCache(ctx context.Context) error {
	if s.teamCache != nil {
		return nil
	}
	teams, err := s.Teams.List(ctx)
	if err != nil {
		return err
	}
	s.teamCache = make(map[string]repository.Team, len(teams))
	for _, t := range teams {
		s.teamCache[normalizeTeamName(t.Name)] = t
	}
	return nil
}

func (s *IngestService) closestTeam(norm string) (repository.Team, bool) {
	var best repository.Team
	bestScore := fuzzyThreshold
	found := false
	for existing, t := range s.teamCache {
		dist := levenshtein.ComputeDistance(norm, existing)
		maxlen := float64(len(norm))
		if len(existing) > len(norm) {
			maxlen = float64(len(existing))
		}
		if maxlen == 0 {
			continue
		}
		if score := float64(dist) / maxlen; score < bestScore {
			bestScore = score
			best = t
			found = true
		}
	}
	return best, found
}

// normalizeTeamName uppercases and strips club-suffix noise so "Arsenal FC"
// and "arsenal" compare equal.
func normalizeTeamName(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	for _, suffix := range []string{" FC", " AFC", " CF"} {
		n = strings.TrimSuffix(n, suffix)
	}
	return strings.Join(strings.Fields(n), " ")
}

func shortNameFor(name string) string {
	fields := strings.Fields(normalizeTeamName(name))
	if len(fields) == 0 {
		return ""
	}
	if len(fields) > 1 {
		short := ""
		for _, f := range fields {
			short += f[:1]
		}
		return short
	}
	f := fields[0]
	if len(f) < 3 {
		return f
	}
	return f[:3]
}

func parseGoals(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative score %d", n)
	}
	return n, nil
}

func parseLocalDate(s string, tz *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2/01/2006", "02/01/2006", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, tz); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func sourceHash(date time.Time, homeID, awayID string, homeGoals, awayGoals int) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%d|%d",
		date.Format("2006-01-02"), homeID, awayID, homeGoals, awayGoals))
	return fmt.Sprintf("%x", h[:16])
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
