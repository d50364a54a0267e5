package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/fetchlog"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/player"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/playerstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/team"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/teamstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
)

// RunReport summarizes one full ingestion pass. Per-team failures are
// collected rather than aborting the run.
type RunReport struct {
	Season       string
	Teams        team.UpsertResult
	Players      player.UpsertResult
	TeamStats    teamstats.UpsertResult
	PlayerStats  playerstats.UpsertResult
	TeamsSynced  int
	Failures     []string
	StartedAt    time.Time
	Duration     time.Duration
}

type SyncService struct {
	provider    StatsProvider
	teamRepo    team.Repository
	playerRepo  player.Repository
	teamStats   teamstats.Repository
	playerStats playerstats.Repository
	ledger      fetchlog.Repository
	logger      *logging.Logger
	now         func() time.Time
}

func NewSyncService(
	provider StatsProvider,
	teamRepo team.Repository,
	playerRepo player.Repository,
	teamStatsRepo teamstats.Repository,
	playerStatsRepo playerstats.Repository,
	ledger fetchlog.Repository,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		provider:    provider,
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		teamStats:   teamStatsRepo,
		playerStats: playerStatsRepo,
		ledger:      ledger,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncTeams pulls the league team list and reconciles it against storage.
// Every exit path leaves exactly one ledger entry.
func (s *SyncService) SyncTeams(ctx context.Context) (team.UpsertResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncTeams")
	defer span.End()
	startedAt := s.now()

	external, err := s.provider.FetchTeams(ctx)
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindTeams, startedAt, 0, err)
		return team.UpsertResult{}, fmt.Errorf("sync teams: %w", err)
	}

	result, err := s.teamRepo.UpsertAll(ctx, mapExternalTeams(external))
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindTeams, startedAt, 0, err)
		return team.UpsertResult{}, fmt.Errorf("sync teams: %w", err)
	}

	s.recordFetch(ctx, fetchlog.KindTeams, startedAt, result.Total(), nil)
	s.logger.InfoContext(ctx, "teams synced",
		"inserted", result.Inserted,
		"updated", result.Updated,
	)
	return result, nil
}

// SyncRoster pulls one team's roster. The team must already exist locally;
// when it does not, the call fails with ErrNotFound and writes no ledger
// entry since no fetch was attempted.
func (s *SyncService) SyncRoster(ctx context.Context, teamCode, season string) (player.UpsertResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncRoster")
	defer span.End()

	target, found, err := s.teamRepo.GetByCode(ctx, teamCode)
	if err != nil {
		return player.UpsertResult{}, fmt.Errorf("sync roster: get team code=%s: %w", teamCode, err)
	}
	if !found {
		return player.UpsertResult{}, fmt.Errorf("%w: team code=%s is not in storage, sync teams first", ErrNotFound, teamCode)
	}

	startedAt := s.now()
	external, err := s.provider.FetchRoster(ctx, target.Code, season)
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindPlayers, startedAt, 0, err)
		return player.UpsertResult{}, fmt.Errorf("sync roster team=%s: %w", target.Code, err)
	}

	result, err := s.playerRepo.UpsertRoster(ctx, target.ID, mapExternalPlayers(external))
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindPlayers, startedAt, 0, err)
		return player.UpsertResult{}, fmt.Errorf("sync roster team=%s: %w", target.Code, err)
	}

	s.recordFetch(ctx, fetchlog.KindPlayers, startedAt, result.Total(), nil)
	s.logger.InfoContext(ctx, "roster synced",
		"team", target.Code,
		"inserted", result.Inserted,
		"updated", result.Updated,
	)
	return result, nil
}

// SyncTeamStats pulls one team's season aggregate. Same precondition as
// SyncRoster: an unknown team code fails fast without touching the ledger.
func (s *SyncService) SyncTeamStats(ctx context.Context, teamCode, season string) (teamstats.UpsertResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncTeamStats")
	defer span.End()

	target, found, err := s.teamRepo.GetByCode(ctx, teamCode)
	if err != nil {
		return teamstats.UpsertResult{}, fmt.Errorf("sync team stats: get team code=%s: %w", teamCode, err)
	}
	if !found {
		return teamstats.UpsertResult{}, fmt.Errorf("%w: team code=%s is not in storage, sync teams first", ErrNotFound, teamCode)
	}

	if strings.TrimSpace(season) == "" {
		season = s.provider.CurrentSeason()
	}

	startedAt := s.now()
	external, err := s.provider.FetchTeamStats(ctx, target.Code, season)
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindTeamStats, startedAt, 0, err)
		return teamstats.UpsertResult{}, fmt.Errorf("sync team stats team=%s: %w", target.Code, err)
	}

	result, err := s.teamStats.UpsertSeason(ctx, mapExternalTeamStats(target.ID, season, external))
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindTeamStats, startedAt, 0, err)
		return teamstats.UpsertResult{}, fmt.Errorf("sync team stats team=%s: %w", target.Code, err)
	}

	s.recordFetch(ctx, fetchlog.KindTeamStats, startedAt, result.Total(), nil)
	s.logger.InfoContext(ctx, "team stats synced",
		"team", target.Code,
		"season", season,
		"inserted", result.Inserted,
		"updated", result.Updated,
	)
	return result, nil
}

// SyncPlayerLeaders pulls the skater and goalie leader boards and lands the
// season lines for every player already known locally. Rows for players not
// yet in storage are skipped, so roster syncs should run first.
func (s *SyncService) SyncPlayerLeaders(ctx context.Context, season string) (playerstats.UpsertResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncPlayerLeaders")
	defer span.End()
	startedAt := s.now()

	if strings.TrimSpace(season) == "" {
		season = s.provider.CurrentSeason()
	}

	rows := make([]ExternalPlayerStats, 0, 200)
	skaters, skaterErr := s.provider.FetchSkaterLeaders(ctx, season)
	if skaterErr != nil {
		s.logger.WarnContext(ctx, "skater leaders fetch failed", "season", season, "error", skaterErr)
	} else {
		rows = append(rows, skaters...)
	}
	goalies, goalieErr := s.provider.FetchGoalieLeaders(ctx, season)
	if goalieErr != nil {
		s.logger.WarnContext(ctx, "goalie leaders fetch failed", "season", season, "error", goalieErr)
	} else {
		rows = append(rows, goalies...)
	}

	if skaterErr != nil && goalieErr != nil {
		s.recordFetch(ctx, fetchlog.KindPlayerStats, startedAt, 0, skaterErr)
		return playerstats.UpsertResult{}, fmt.Errorf("sync player leaders season=%s: %w", season, skaterErr)
	}

	batch, skipped := s.resolvePlayerStats(ctx, rows)
	result, err := s.playerStats.UpsertSeasonBatch(ctx, batch)
	if err != nil {
		s.recordFetch(ctx, fetchlog.KindPlayerStats, startedAt, 0, err)
		return playerstats.UpsertResult{}, fmt.Errorf("sync player leaders season=%s: %w", season, err)
	}

	s.recordFetch(ctx, fetchlog.KindPlayerStats, startedAt, result.Total(), nil)
	s.logger.InfoContext(ctx, "player leaders synced",
		"season", season,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped_unknown_players", skipped,
	)
	return result, nil
}

// SyncAll runs the full ingestion pass. The team list is a hard prerequisite;
// everything after it is per-team and a failure on one team does not stop the
// rest.
func (s *SyncService) SyncAll(ctx context.Context, season string) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncAll")
	defer span.End()
	startedAt := s.now()

	if strings.TrimSpace(season) == "" {
		season = s.provider.CurrentSeason()
	}
	report := RunReport{Season: season, StartedAt: startedAt}

	teamsResult, err := s.SyncTeams(ctx)
	if err != nil {
		return report, fmt.Errorf("sync all: %w", err)
	}
	report.Teams = teamsResult

	active, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("sync all: list active teams: %w", err)
	}

	for _, item := range active {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		rosterResult, err := s.SyncRoster(ctx, item.Code, season)
		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("roster %s: %v", item.Code, err))
			s.logger.WarnContext(ctx, "roster sync failed, continuing", "team", item.Code, "error", err)
		} else {
			report.Players.Inserted += rosterResult.Inserted
			report.Players.Updated += rosterResult.Updated
		}

		statsResult, err := s.SyncTeamStats(ctx, item.Code, season)
		if err != nil {
			report.Failures = append(report.Failures, fmt.Sprintf("team stats %s: %v", item.Code, err))
			s.logger.WarnContext(ctx, "team stats sync failed, continuing", "team", item.Code, "error", err)
		} else {
			report.TeamStats.Inserted += statsResult.Inserted
			report.TeamStats.Updated += statsResult.Updated
		}
		report.TeamsSynced++
	}

	leadersResult, err := s.SyncPlayerLeaders(ctx, season)
	if err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("player leaders: %v", err))
		s.logger.WarnContext(ctx, "player leaders sync failed, continuing", "season", season, "error", err)
	} else {
		report.PlayerStats = leadersResult
	}

	report.Duration = s.now().Sub(startedAt)
	s.logger.InfoContext(ctx, "full sync finished",
		"season", season,
		"teams", report.Teams.Total(),
		"players", report.Players.Total(),
		"team_stats", report.TeamStats.Total(),
		"player_stats", report.PlayerStats.Total(),
		"failures", len(report.Failures),
		"duration", report.Duration.String(),
	)
	return report, nil
}

// resolvePlayerStats keeps only rows whose player is already in storage and
// attaches local team ids from the abbreviation carried by the leaders feed.
func (s *SyncService) resolvePlayerStats(ctx context.Context, rows []ExternalPlayerStats) ([]playerstats.SeasonStats, int) {
	out := make([]playerstats.SeasonStats, 0, len(rows))
	teamIDByCode := make(map[string]int64, 32)
	skipped := 0

	for _, row := range rows {
		known, found, err := s.playerRepo.GetByExternalID(ctx, row.PlayerExternalID)
		if err != nil {
			s.logger.WarnContext(ctx, "player lookup failed, skipping stat row", "player_external_id", row.PlayerExternalID, "error", err)
			skipped++
			continue
		}
		if !found {
			skipped++
			continue
		}

		teamID := int64(0)
		if row.TeamCode != "" {
			cached, ok := teamIDByCode[row.TeamCode]
			if !ok {
				if teamRow, teamFound, err := s.teamRepo.GetByCode(ctx, row.TeamCode); err == nil && teamFound {
					cached = teamRow.ID
				}
				teamIDByCode[row.TeamCode] = cached
			}
			teamID = cached
		}

		out = append(out, mapExternalPlayerStats(known.ID, teamID, row))
	}
	return out, skipped
}

// recordFetch writes the single ledger entry a fetch operation owes. Ledger
// write failures are logged and swallowed so bookkeeping never fails a sync.
func (s *SyncService) recordFetch(ctx context.Context, kind fetchlog.Kind, startedAt time.Time, records int, opErr error) {
	entry := fetchlog.Entry{
		Kind:            kind,
		FetchedAt:       startedAt.UTC(),
		Status:          fetchlog.StatusSuccess,
		RecordsFetched:  records,
		DurationSeconds: s.now().Sub(startedAt).Seconds(),
	}
	if opErr != nil {
		entry.Status = fetchlog.StatusError
		entry.ErrorMessage = opErr.Error()
	}

	if err := s.ledger.Append(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "append fetch ledger entry failed", "kind", string(kind), "error", err)
	}
}

func mapExternalTeams(items []ExternalTeam) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, team.Team{
			ExternalID: item.ExternalID,
			Name:       item.Name,
			Code:       item.Code,
			City:       item.City,
			Conference: item.Conference,
			Division:   item.Division,
			Active:     item.Active,
		})
	}
	return out
}

func mapExternalPlayers(items []ExternalPlayer) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, player.Player{
			ExternalID:    item.ExternalID,
			FirstName:     item.FirstName,
			LastName:      item.LastName,
			JerseyNumber:  item.JerseyNumber,
			Position:      item.Position,
			ShootsCatches: item.ShootsCatches,
			HeightInches:  item.HeightInches,
			WeightPounds:  item.WeightPounds,
			BirthDate:     item.BirthDate,
			BirthCity:     item.BirthCity,
			BirthCountry:  item.BirthCountry,
			Nationality:   item.Nationality,
		})
	}
	return out
}

func mapExternalTeamStats(teamID int64, season string, item ExternalTeamStats) teamstats.SeasonStats {
	return teamstats.SeasonStats{
		TeamID:           teamID,
		Season:           season,
		GamesPlayed:      item.GamesPlayed,
		Wins:             item.Wins,
		Losses:           item.Losses,
		OvertimeLosses:   item.OvertimeLosses,
		Points:           item.Points,
		PointPctg:        item.PointPctg,
		GoalsFor:         item.GoalsFor,
		GoalsAgainst:     item.GoalsAgainst,
		GoalDifferential: item.GoalDifferential,
	}
}

func mapExternalPlayerStats(playerID, teamID int64, item ExternalPlayerStats) playerstats.SeasonStats {
	return playerstats.SeasonStats{
		PlayerID:            playerID,
		Season:              item.Season,
		TeamID:              teamID,
		GamesPlayed:         item.GamesPlayed,
		Goals:               item.Goals,
		Assists:             item.Assists,
		Points:              item.Points,
		PlusMinus:           item.PlusMinus,
		PenaltyMinutes:      item.PenaltyMinutes,
		PowerPlayGoals:      item.PowerPlayGoals,
		PowerPlayPoints:     item.PowerPlayPoints,
		ShortHandedGoals:    item.ShortHandedGoals,
		ShortHandedPoints:   item.ShortHandedPoint,
		GameWinningGoals:    item.GameWinningGoals,
		OvertimeGoals:       item.OvertimeGoals,
		Shots:               item.Shots,
		ShootingPctg:        item.ShootingPctg,
		TimeOnIcePerGame:    item.TimeOnIcePerGame,
		FaceoffPctg:         item.FaceoffPctg,
		Wins:                item.Wins,
		Losses:              item.Losses,
		OvertimeLosses:      item.OvertimeLosses,
		Saves:               item.Saves,
		ShotsAgainst:        item.ShotsAgainst,
		GoalsAgainst:        item.GoalsAgainst,
		SavePctg:            item.SavePctg,
		GoalsAgainstAverage: item.GoalsAgainstAverage,
		Shutouts:            item.Shutouts,
	}
}
