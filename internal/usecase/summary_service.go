package usecase

import (
	"context"
	"fmt"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/fetchlog"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/player"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/playerstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/team"
	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/teamstats"
	"github.com/james-henry-git/nhl-stats-tracker/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const recentFetchCount = 10

// DatabaseSummary is a point-in-time snapshot of what storage holds.
type DatabaseSummary struct {
	Teams         int
	Players       int
	TeamStats     int
	PlayerStats   int
	RecentFetches []fetchlog.Entry
}

type SummaryService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	teamStats   teamstats.Repository
	playerStats playerstats.Repository
	ledger      fetchlog.Repository
	logger      *logging.Logger
}

func NewSummaryService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	teamStatsRepo teamstats.Repository,
	playerStatsRepo playerstats.Repository,
	ledger fetchlog.Repository,
	logger *logging.Logger,
) *SummaryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SummaryService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		teamStats:   teamStatsRepo,
		playerStats: playerStatsRepo,
		ledger:      ledger,
		logger:      logger,
	}
}

func (s *SummaryService) Summary(ctx context.Context) (DatabaseSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "SummaryService.Summary")
	defer span.End()

	var out DatabaseSummary
	var err error

	if out.Teams, err = s.teamRepo.Count(ctx); err != nil {
		return DatabaseSummary{}, fmt.Errorf("summary: count teams: %w", err)
	}
	if out.Players, err = s.playerRepo.Count(ctx); err != nil {
		return DatabaseSummary{}, fmt.Errorf("summary: count players: %w", err)
	}
	if out.TeamStats, err = s.teamStats.Count(ctx); err != nil {
		return DatabaseSummary{}, fmt.Errorf("summary: count team stats: %w", err)
	}
	if out.PlayerStats, err = s.playerStats.Count(ctx); err != nil {
		return DatabaseSummary{}, fmt.Errorf("summary: count player stats: %w", err)
	}
	if out.RecentFetches, err = s.ledger.ListRecent(ctx, recentFetchCount); err != nil {
		return DatabaseSummary{}, fmt.Errorf("summary: list recent fetches: %w", err)
	}

	return out, nil
}

// Render formats the snapshot for terminal output.
func (s *SummaryService) Render(summary DatabaseSummary) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("=== Database Summary ===\n")
	_, _ = fmt.Fprintf(buf, "Teams:        %d\n", summary.Teams)
	_, _ = fmt.Fprintf(buf, "Players:      %d\n", summary.Players)
	_, _ = fmt.Fprintf(buf, "Team stats:   %d\n", summary.TeamStats)
	_, _ = fmt.Fprintf(buf, "Player stats: %d\n", summary.PlayerStats)

	if len(summary.RecentFetches) > 0 {
		_, _ = buf.WriteString("\nRecent fetches:\n")
		for _, entry := range summary.RecentFetches {
			_, _ = fmt.Fprintf(buf, "  %s  %-12s %-7s records=%d duration=%.2fs",
				entry.FetchedAt.Format("2006-01-02 15:04:05"),
				entry.Kind,
				entry.Status,
				entry.RecordsFetched,
				entry.DurationSeconds,
			)
			if entry.ErrorMessage != "" {
				_, _ = fmt.Fprintf(buf, " error=%q", entry.ErrorMessage)
			}
			_, _ = buf.WriteString("\n")
		}
	}

	return buf.String()
}
