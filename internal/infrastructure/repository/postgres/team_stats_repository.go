package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/teamstats"
	qb "github.com/james-henry-git/nhl-stats-tracker/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

// UpsertSeason lands one (team, season) record, inserting on first sight and
// refreshing the row afterwards.
func (r *TeamStatsRepository) UpsertSeason(ctx context.Context, stats teamstats.SeasonStats) (teamstats.UpsertResult, error) {
	if err := stats.Validate(); err != nil {
		return teamstats.UpsertResult{}, fmt.Errorf("validate team stats: %w", err)
	}

	var result teamstats.UpsertResult

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return teamstats.UpsertResult{}, fmt.Errorf("begin tx upsert team stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	selectQuery, selectArgs, err := qb.Select("id").From("team_stats").
		Where(
			qb.Eq("team_id", stats.TeamID),
			qb.Eq("season", stats.Season),
		).
		ToSQL()
	if err != nil {
		return teamstats.UpsertResult{}, fmt.Errorf("build select team stats query: %w", err)
	}

	var existingID int64
	err = tx.GetContext(ctx, &existingID, selectQuery, selectArgs...)
	switch {
	case isNotFound(err):
		insertQuery, insertArgs, err := qb.InsertModel("team_stats", teamStatsInsertModel{
			TeamID:           stats.TeamID,
			Season:           stats.Season,
			GamesPlayed:      stats.GamesPlayed,
			Wins:             stats.Wins,
			Losses:           stats.Losses,
			OvertimeLosses:   stats.OvertimeLosses,
			Points:           stats.Points,
			PointPctg:        stats.PointPctg,
			GoalsFor:         stats.GoalsFor,
			GoalsAgainst:     stats.GoalsAgainst,
			GoalDifferential: stats.GoalDifferential,
		}, "")
		if err != nil {
			return teamstats.UpsertResult{}, fmt.Errorf("build insert team stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return teamstats.UpsertResult{}, fmt.Errorf("insert team stats team_id=%d season=%s: %w", stats.TeamID, stats.Season, err)
		}
		result.Inserted++
	case err != nil:
		return teamstats.UpsertResult{}, fmt.Errorf("select team stats team_id=%d season=%s: %w", stats.TeamID, stats.Season, err)
	default:
		updateQuery, updateArgs, err := qb.Update("team_stats").
			Set("games_played", stats.GamesPlayed).
			Set("wins", stats.Wins).
			Set("losses", stats.Losses).
			Set("overtime_losses", stats.OvertimeLosses).
			Set("points", stats.Points).
			Set("point_pctg", stats.PointPctg).
			Set("goals_for", stats.GoalsFor).
			Set("goals_against", stats.GoalsAgainst).
			Set("goal_differential", stats.GoalDifferential).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", existingID)).
			ToSQL()
		if err != nil {
			return teamstats.UpsertResult{}, fmt.Errorf("build update team stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
			return teamstats.UpsertResult{}, fmt.Errorf("update team stats team_id=%d season=%s: %w", stats.TeamID, stats.Season, err)
		}
		result.Updated++
	}

	if err := tx.Commit(); err != nil {
		return teamstats.UpsertResult{}, fmt.Errorf("commit upsert team stats tx: %w", err)
	}
	return result, nil
}

func (r *TeamStatsRepository) GetByTeamAndSeason(ctx context.Context, teamID int64, season string) (teamstats.SeasonStats, bool, error) {
	query, args, err := qb.Select("*").From("team_stats").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("season", season),
		).
		ToSQL()
	if err != nil {
		return teamstats.SeasonStats{}, false, fmt.Errorf("build select team stats by season query: %w", err)
	}

	var row teamStatsTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isNotFound(err) {
		return teamstats.SeasonStats{}, false, nil
	}
	if err != nil {
		return teamstats.SeasonStats{}, false, fmt.Errorf("select team stats by season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamStatsRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("team_stats").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count team stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count team stats: %w", err)
	}
	return count, nil
}

type teamStatsTableModel struct {
	ID               int64     `db:"id"`
	TeamID           int64     `db:"team_id"`
	Season           string    `db:"season"`
	GamesPlayed      int       `db:"games_played"`
	Wins             int       `db:"wins"`
	Losses           int       `db:"losses"`
	OvertimeLosses   int       `db:"overtime_losses"`
	Points           int       `db:"points"`
	PointPctg        float64   `db:"point_pctg"`
	GoalsFor         int       `db:"goals_for"`
	GoalsAgainst     int       `db:"goals_against"`
	GoalDifferential int       `db:"goal_differential"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type teamStatsInsertModel struct {
	TeamID           int64   `db:"team_id"`
	Season           string  `db:"season"`
	GamesPlayed      int     `db:"games_played"`
	Wins             int     `db:"wins"`
	Losses           int     `db:"losses"`
	OvertimeLosses   int     `db:"overtime_losses"`
	Points           int     `db:"points"`
	PointPctg        float64 `db:"point_pctg"`
	GoalsFor         int     `db:"goals_for"`
	GoalsAgainst     int     `db:"goals_against"`
	GoalDifferential int     `db:"goal_differential"`
}

func (m teamStatsTableModel) toDomain() teamstats.SeasonStats {
	return teamstats.SeasonStats{
		ID:               m.ID,
		TeamID:           m.TeamID,
		Season:           m.Season,
		GamesPlayed:      m.GamesPlayed,
		Wins:             m.Wins,
		Losses:           m.Losses,
		OvertimeLosses:   m.OvertimeLosses,
		Points:           m.Points,
		PointPctg:        m.PointPctg,
		GoalsFor:         m.GoalsFor,
		GoalsAgainst:     m.GoalsAgainst,
		GoalDifferential: m.GoalDifferential,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
