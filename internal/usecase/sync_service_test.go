package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/fetchlog"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/player"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/playerstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/team"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/teamstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
)

type stubProvider struct {
	teams        []ExternalTeam
	teamsErr     error
	rosterByCode map[string][]ExternalPlayer
	rosterErrs   map[string]error
	statsByCode  map[string]ExternalTeamStats
	statsErrs    map[string]error
	skaters      []ExternalPlayerStats
	skatersErr   error
	goalies      []ExternalPlayerStats
	goaliesErr   error

	rosterCalls []string
}

func (p *stubProvider) CurrentSeason() string { return "20242025" }

func (p *stubProvider) FetchTeams(context.Context) ([]ExternalTeam, error) {
	return p.teams, p.teamsErr
}

func (p *stubProvider) FetchRoster(_ context.Context, teamCode, _ string) ([]ExternalPlayer, error) {
	p.rosterCalls = append(p.rosterCalls, teamCode)
	if err := p.rosterErrs[teamCode]; err != nil {
		return nil, err
	}
	return p.rosterByCode[teamCode], nil
}

func (p *stubProvider) FetchTeamStats(_ context.Context, teamCode, _ string) (ExternalTeamStats, error) {
	if err := p.statsErrs[teamCode]; err != nil {
		return ExternalTeamStats{}, err
	}
	return p.statsByCode[teamCode], nil
}

func (p *stubProvider) FetchSkaterLeaders(context.Context, string) ([]ExternalPlayerStats, error) {
	return p.skaters, p.skatersErr
}

func (p *stubProvider) FetchGoalieLeaders(context.Context, string) ([]ExternalPlayerStats, error) {
	return p.goalies, p.goaliesErr
}

type stubTeamRepo struct {
	byCode    map[string]team.Team
	upsertErr error
	upserts   [][]team.Team
}

func (r *stubTeamRepo) UpsertAll(_ context.Context, teams []team.Team) (team.UpsertResult, error) {
	if r.upsertErr != nil {
		return team.UpsertResult{}, r.upsertErr
	}
	r.upserts = append(r.upserts, teams)
	if r.byCode == nil {
		r.byCode = make(map[string]team.Team, len(teams))
	}
	result := team.UpsertResult{}
	for _, item := range teams {
		if _, ok := r.byCode[item.Code]; ok {
			result.Updated++
		} else {
			result.Inserted++
		}
		item.ID = int64(len(r.byCode) + 1)
		r.byCode[item.Code] = item
	}
	return result, nil
}

func (r *stubTeamRepo) GetByCode(_ context.Context, code string) (team.Team, bool, error) {
	item, ok := r.byCode[strings.ToUpper(code)]
	return item, ok, nil
}

func (r *stubTeamRepo) ListActive(context.Context) ([]team.Team, error) {
	out := make([]team.Team, 0, len(r.byCode))
	for _, item := range r.byCode {
		if item.Active {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubTeamRepo) Count(context.Context) (int, error) { return len(r.byCode), nil }

type stubPlayerRepo struct {
	byExternalID map[int64]player.Player
	upsertErr    error
	rosterCalls  []int64
}

func (r *stubPlayerRepo) UpsertRoster(_ context.Context, teamID int64, players []player.Player) (player.UpsertResult, error) {
	if r.upsertErr != nil {
		return player.UpsertResult{}, r.upsertErr
	}
	r.rosterCalls = append(r.rosterCalls, teamID)
	if r.byExternalID == nil {
		r.byExternalID = make(map[int64]player.Player, len(players))
	}
	result := player.UpsertResult{}
	for _, item := range players {
		if _, ok := r.byExternalID[item.ExternalID]; ok {
			result.Updated++
		} else {
			result.Inserted++
		}
		item.ID = int64(len(r.byExternalID) + 1)
		item.TeamID = teamID
		r.byExternalID[item.ExternalID] = item
	}
	return result, nil
}

func (r *stubPlayerRepo) GetByExternalID(_ context.Context, externalID int64) (player.Player, bool, error) {
	item, ok := r.byExternalID[externalID]
	return item, ok, nil
}

func (r *stubPlayerRepo) Count(context.Context) (int, error) { return len(r.byExternalID), nil }

type stubTeamStatsRepo struct {
	rows      []teamstats.SeasonStats
	upsertErr error
}

func (r *stubTeamStatsRepo) UpsertSeason(_ context.Context, stats teamstats.SeasonStats) (teamstats.UpsertResult, error) {
	if r.upsertErr != nil {
		return teamstats.UpsertResult{}, r.upsertErr
	}
	r.rows = append(r.rows, stats)
	return teamstats.UpsertResult{Inserted: 1}, nil
}

func (r *stubTeamStatsRepo) GetByTeamAndSeason(_ context.Context, teamID int64, season string) (teamstats.SeasonStats, bool, error) {
	for _, row := range r.rows {
		if row.TeamID == teamID && row.Season == season {
			return row, true, nil
		}
	}
	return teamstats.SeasonStats{}, false, nil
}

func (r *stubTeamStatsRepo) Count(context.Context) (int, error) { return len(r.rows), nil }

type stubPlayerStatsRepo struct {
	rows      []playerstats.SeasonStats
	upsertErr error
}

func (r *stubPlayerStatsRepo) UpsertSeasonBatch(_ context.Context, stats []playerstats.SeasonStats) (playerstats.UpsertResult, error) {
	if r.upsertErr != nil {
		return playerstats.UpsertResult{}, r.upsertErr
	}
	r.rows = append(r.rows, stats...)
	return playerstats.UpsertResult{Inserted: len(stats)}, nil
}

func (r *stubPlayerStatsRepo) Count(context.Context) (int, error) { return len(r.rows), nil }

type stubLedger struct {
	entries   []fetchlog.Entry
	appendErr error
}

func (r *stubLedger) Append(_ context.Context, entry fetchlog.Entry) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubLedger) ListRecent(_ context.Context, limit int) ([]fetchlog.Entry, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

type syncFixture struct {
	provider    *stubProvider
	teams       *stubTeamRepo
	players     *stubPlayerRepo
	teamStats   *stubTeamStatsRepo
	playerStats *stubPlayerStatsRepo
	ledger      *stubLedger
	service     *SyncService
}

func newSyncFixture(provider *stubProvider) *syncFixture {
	f := &syncFixture{
		provider:    provider,
		teams:       &stubTeamRepo{},
		players:     &stubPlayerRepo{},
		teamStats:   &stubTeamStatsRepo{},
		playerStats: &stubPlayerStatsRepo{},
		ledger:      &stubLedger{},
	}
	f.service = NewSyncService(
		provider, f.teams, f.players, f.teamStats, f.playerStats, f.ledger, logging.NewNop(),
	)
	return f
}

func externalTeam(id int64, code string) ExternalTeam {
	return ExternalTeam{
		ExternalID: id,
		Name:       code + " Team",
		Code:       code,
		City:       "City",
		Conference: "Eastern",
		Division:   "Atlantic",
		Active:     true,
	}
}

func TestSyncTeams_WritesSingleSuccessLedgerEntry(t *testing.T) {
	f := newSyncFixture(&stubProvider{
		teams: []ExternalTeam{externalTeam(6, "BOS"), externalTeam(10, "TOR")},
	})

	result, err := f.service.SyncTeams(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 || result.Updated != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if len(f.ledger.entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got=%d", len(f.ledger.entries))
	}
	entry := f.ledger.entries[0]
	if entry.Kind != fetchlog.KindTeams || entry.Status != fetchlog.StatusSuccess {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.RecordsFetched != 2 {
		t.Fatalf("expected 2 records in ledger, got=%d", entry.RecordsFetched)
	}
}

func TestSyncTeams_FetchFailureStillWritesLedgerEntry(t *testing.T) {
	f := newSyncFixture(&stubProvider{
		teamsErr: fmt.Errorf("boom: %w", ErrUpstreamTransport),
	})

	_, err := f.service.SyncTeams(context.Background())
	if !errors.Is(err, ErrUpstreamTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}

	if len(f.ledger.entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got=%d", len(f.ledger.entries))
	}
	entry := f.ledger.entries[0]
	if entry.Status != fetchlog.StatusError || entry.ErrorMessage == "" {
		t.Fatalf("expected error entry with message, got %+v", entry)
	}
	if entry.RecordsFetched != 0 {
		t.Fatalf("failed fetch must record zero records, got=%d", entry.RecordsFetched)
	}
}

func TestSyncRoster_UnknownTeamSkipsLedger(t *testing.T) {
	f := newSyncFixture(&stubProvider{})

	_, err := f.service.SyncRoster(context.Background(), "ZZZ", "20242025")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(f.ledger.entries) != 0 {
		t.Fatalf("precondition failure must not touch the ledger, got %d entries", len(f.ledger.entries))
	}
	if len(f.provider.rosterCalls) != 0 {
		t.Fatalf("precondition failure must not reach the provider, got calls=%v", f.provider.rosterCalls)
	}
}

func TestSyncRoster_AssignsStoredTeamID(t *testing.T) {
	provider := &stubProvider{
		rosterByCode: map[string][]ExternalPlayer{
			"BOS": {{ExternalID: 42, FirstName: "Brad", LastName: "Marchand"}},
		},
	}
	f := newSyncFixture(provider)
	f.teams.byCode = map[string]team.Team{
		"BOS": {ID: 77, ExternalID: 6, Code: "BOS", Active: true},
	}

	result, err := f.service.SyncRoster(context.Background(), "bos", "20242025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(f.players.rosterCalls) != 1 || f.players.rosterCalls[0] != 77 {
		t.Fatalf("expected roster landed under team id 77, got %v", f.players.rosterCalls)
	}
	if len(f.ledger.entries) != 1 || f.ledger.entries[0].Kind != fetchlog.KindPlayers {
		t.Fatalf("expected one players ledger entry, got %+v", f.ledger.entries)
	}
}

func TestSyncTeamStats_RecordsSeasonRow(t *testing.T) {
	provider := &stubProvider{
		statsByCode: map[string]ExternalTeamStats{
			"TOR": {GamesPlayed: 82, Wins: 46, Losses: 26, OvertimeLosses: 10, Points: 102, GoalsFor: 280, GoalsAgainst: 250, GoalDifferential: 30},
		},
	}
	f := newSyncFixture(provider)
	f.teams.byCode = map[string]team.Team{
		"TOR": {ID: 5, ExternalID: 10, Code: "TOR", Active: true},
	}

	_, err := f.service.SyncTeamStats(context.Background(), "TOR", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.teamStats.rows) != 1 {
		t.Fatalf("expected one stats row, got=%d", len(f.teamStats.rows))
	}
	row := f.teamStats.rows[0]
	if row.TeamID != 5 || row.Season != "20242025" {
		t.Fatalf("expected stored team id and defaulted season, got %+v", row)
	}
	if row.Points != 102 || row.GoalDifferential != 30 {
		t.Fatalf("unexpected stats values: %+v", row)
	}
}

func TestSyncPlayerLeaders_SkipsUnknownPlayers(t *testing.T) {
	provider := &stubProvider{
		skaters: []ExternalPlayerStats{
			{PlayerExternalID: 42, Season: "20242025", TeamCode: "BOS", Points: 90},
			{PlayerExternalID: 99, Season: "20242025", TeamCode: "TOR", Points: 80},
		},
		goalies: []ExternalPlayerStats{
			{PlayerExternalID: 55, Season: "20242025", TeamCode: "BOS", Goalie: true, Wins: 30},
		},
	}
	f := newSyncFixture(provider)
	f.teams.byCode = map[string]team.Team{
		"BOS": {ID: 7, ExternalID: 6, Code: "BOS", Active: true},
	}
	f.players.byExternalID = map[int64]player.Player{
		42: {ID: 1, ExternalID: 42},
		55: {ID: 2, ExternalID: 55},
	}

	result, err := f.service.SyncPlayerLeaders(context.Background(), "20242025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inserted != 2 {
		t.Fatalf("expected the unknown player skipped, got %+v", result)
	}

	if len(f.playerStats.rows) != 2 {
		t.Fatalf("expected 2 stat rows, got=%d", len(f.playerStats.rows))
	}
	if f.playerStats.rows[0].PlayerID != 1 || f.playerStats.rows[0].TeamID != 7 {
		t.Fatalf("expected local ids resolved, got %+v", f.playerStats.rows[0])
	}
	if f.playerStats.rows[1].Wins != 30 {
		t.Fatalf("expected goalie line carried, got %+v", f.playerStats.rows[1])
	}
	if len(f.ledger.entries) != 1 || f.ledger.entries[0].Kind != fetchlog.KindPlayerStats {
		t.Fatalf("expected one player_stats ledger entry, got %+v", f.ledger.entries)
	}
}

func TestSyncPlayerLeaders_OneFeedFailingIsTolerated(t *testing.T) {
	provider := &stubProvider{
		skatersErr: fmt.Errorf("down: %w", ErrUpstreamTransport),
		goalies: []ExternalPlayerStats{
			{PlayerExternalID: 55, Season: "20242025", Goalie: true, Wins: 30},
		},
	}
	f := newSyncFixture(provider)
	f.players.byExternalID = map[int64]player.Player{55: {ID: 2, ExternalID: 55}}

	result, err := f.service.SyncPlayerLeaders(context.Background(), "20242025")
	if err != nil {
		t.Fatalf("one failing feed must not fail the sync, got %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestSyncPlayerLeaders_BothFeedsFailing(t *testing.T) {
	provider := &stubProvider{
		skatersErr: fmt.Errorf("down: %w", ErrUpstreamTransport),
		goaliesErr: fmt.Errorf("down: %w", ErrUpstreamTransport),
	}
	f := newSyncFixture(provider)

	_, err := f.service.SyncPlayerLeaders(context.Background(), "20242025")
	if !errors.Is(err, ErrUpstreamTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if len(f.ledger.entries) != 1 || f.ledger.entries[0].Status != fetchlog.StatusError {
		t.Fatalf("expected one error ledger entry, got %+v", f.ledger.entries)
	}
}

func TestSyncAll_TeamsFailureAbortsRun(t *testing.T) {
	f := newSyncFixture(&stubProvider{
		teamsErr: fmt.Errorf("down: %w", ErrUpstreamTransport),
	})

	_, err := f.service.SyncAll(context.Background(), "")
	if !errors.Is(err, ErrUpstreamTransport) {
		t.Fatalf("expected the run aborted on teams failure, got %v", err)
	}
	if len(f.provider.rosterCalls) != 0 {
		t.Fatalf("no roster fetches may run without teams, got %v", f.provider.rosterCalls)
	}
}

func TestSyncAll_PerTeamFailuresDoNotStopTheRun(t *testing.T) {
	provider := &stubProvider{
		teams: []ExternalTeam{externalTeam(6, "BOS"), externalTeam(10, "TOR")},
		rosterByCode: map[string][]ExternalPlayer{
			"BOS": {{ExternalID: 42, FirstName: "Brad", LastName: "Marchand"}},
			"TOR": {{ExternalID: 34, FirstName: "Auston", LastName: "Matthews"}},
		},
		rosterErrs: map[string]error{
			"BOS": fmt.Errorf("down: %w", ErrUpstreamTransport),
		},
		statsByCode: map[string]ExternalTeamStats{
			"BOS": {Wins: 40},
			"TOR": {Wins: 46},
		},
	}
	f := newSyncFixture(provider)

	report, err := f.service.SyncAll(context.Background(), "20242025")
	if err != nil {
		t.Fatalf("per-team failures must not fail the run, got %v", err)
	}

	if report.TeamsSynced != 2 {
		t.Fatalf("expected both teams visited, got=%d", report.TeamsSynced)
	}
	if len(report.Failures) != 1 || !strings.Contains(report.Failures[0], "roster BOS") {
		t.Fatalf("expected the BOS roster failure collected, got %v", report.Failures)
	}
	if report.Players.Total() != 1 {
		t.Fatalf("expected the TOR roster landed, got %+v", report.Players)
	}
	if report.TeamStats.Total() != 2 {
		t.Fatalf("expected both stats rows landed, got %+v", report.TeamStats)
	}
	if len(provider.rosterCalls) != 2 {
		t.Fatalf("expected roster attempted for both teams, got %v", provider.rosterCalls)
	}
}

func TestSyncAll_ReportsLedgerEntriesPerOperation(t *testing.T) {
	provider := &stubProvider{
		teams: []ExternalTeam{externalTeam(6, "BOS")},
		rosterByCode: map[string][]ExternalPlayer{
			"BOS": {{ExternalID: 42, FirstName: "Brad", LastName: "Marchand"}},
		},
		statsByCode: map[string]ExternalTeamStats{"BOS": {Wins: 40}},
		skaters: []ExternalPlayerStats{
			{PlayerExternalID: 42, Season: "20242025", TeamCode: "BOS", Points: 90},
		},
		goalies: []ExternalPlayerStats{},
		goaliesErr: fmt.Errorf("empty: %w", ErrEmptyUpstream),
	}
	f := newSyncFixture(provider)

	if _, err := f.service.SyncAll(context.Background(), "20242025"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kinds := make(map[fetchlog.Kind]int, 4)
	for _, entry := range f.ledger.entries {
		kinds[entry.Kind]++
	}
	if kinds[fetchlog.KindTeams] != 1 || kinds[fetchlog.KindPlayers] != 1 || kinds[fetchlog.KindTeamStats] != 1 || kinds[fetchlog.KindPlayerStats] != 1 {
		t.Fatalf("expected one ledger entry per operation, got %v", kinds)
	}
}
