package postgres

import (
	"context"
	"testing"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/teamstats"
)

func TestTeamStatsRepositoryUpsertSeason_ReRunUpdatesExistingRow(t *testing.T) {
	store := newFakeSQLStore()
	repo := NewTeamStatsRepository(newFakeDB(t, store))

	stats := teamstats.SeasonStats{
		TeamID:           7,
		Season:           "20252026",
		GamesPlayed:      82,
		Wins:             50,
		Losses:           25,
		OvertimeLosses:   7,
		Points:           107,
		PointPctg:        0.6524,
		GoalsFor:         290,
		GoalsAgainst:     240,
		GoalDifferential: 50,
	}

	first, err := repo.UpsertSeason(context.Background(), stats)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Inserted != 1 || first.Updated != 0 {
		t.Fatalf("expected first run to insert, got inserted=%d updated=%d", first.Inserted, first.Updated)
	}

	stats.Wins = 51
	stats.Points = 109

	second, err := repo.UpsertSeason(context.Background(), stats)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Inserted != 0 || second.Updated != 1 {
		t.Fatalf("expected re-run for the same team and season to update, got inserted=%d updated=%d", second.Inserted, second.Updated)
	}
	if got := store.execCount("INSERT INTO team_stats"); got != 1 {
		t.Fatalf("expected a single insert across both runs, got %d", got)
	}
	if got := store.execCount("UPDATE team_stats SET"); got != 1 {
		t.Fatalf("expected a single update across both runs, got %d", got)
	}

	update, ok := store.lastExec("UPDATE team_stats SET")
	if !ok {
		t.Fatal("expected an UPDATE team_stats exec")
	}
	if got := update.args[len(update.args)-1]; got != int64(1) {
		t.Fatalf("expected update to target the inserted row, got id %v", got)
	}

	if store.commits != 2 {
		t.Fatalf("expected one commit per run, got %d", store.commits)
	}
}

func TestTeamStatsRepositoryUpsertSeason_NewSeasonInsertsSeparateRow(t *testing.T) {
	store := newFakeSQLStore()
	repo := NewTeamStatsRepository(newFakeDB(t, store))

	stats := teamstats.SeasonStats{TeamID: 7, Season: "20242025", GamesPlayed: 82, Wins: 46}
	if _, err := repo.UpsertSeason(context.Background(), stats); err != nil {
		t.Fatalf("first season upsert: %v", err)
	}

	stats.Season = "20252026"
	result, err := repo.UpsertSeason(context.Background(), stats)
	if err != nil {
		t.Fatalf("second season upsert: %v", err)
	}
	if result.Inserted != 1 || result.Updated != 0 {
		t.Fatalf("expected a new season to insert its own row, got inserted=%d updated=%d", result.Inserted, result.Updated)
	}
	if got := store.execCount("INSERT INTO team_stats"); got != 2 {
		t.Fatalf("expected one insert per season, got %d", got)
	}
}

func TestTeamStatsRepositoryUpsertSeason_RejectsMissingSeason(t *testing.T) {
	store := newFakeSQLStore()
	repo := NewTeamStatsRepository(newFakeDB(t, store))

	_, err := repo.UpsertSeason(context.Background(), teamstats.SeasonStats{TeamID: 7})
	if err == nil {
		t.Fatal("expected validation error for stats without a season")
	}
	if len(store.execs) != 0 {
		t.Fatalf("expected no writes for invalid input, got %d", len(store.execs))
	}
}
