package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/playerstats"
	qb "github.com/james-henry-git/nhl-stats-tracker/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// UpsertSeasonBatch lands a batch of (player, season) lines in one
// transaction. A failure anywhere rolls back the whole batch.
func (r *PlayerStatsRepository) UpsertSeasonBatch(ctx context.Context, stats []playerstats.SeasonStats) (playerstats.UpsertResult, error) {
	var result playerstats.UpsertResult

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return playerstats.UpsertResult{}, fmt.Errorf("begin tx upsert player stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range stats {
		if err := item.Validate(); err != nil {
			return playerstats.UpsertResult{}, fmt.Errorf("validate player stats: %w", err)
		}

		selectQuery, selectArgs, err := qb.Select("id").From("player_stats").
			Where(
				qb.Eq("player_id", item.PlayerID),
				qb.Eq("season", item.Season),
			).
			ToSQL()
		if err != nil {
			return playerstats.UpsertResult{}, fmt.Errorf("build select player stats query: %w", err)
		}

		var existingID int64
		err = tx.GetContext(ctx, &existingID, selectQuery, selectArgs...)
		switch {
		case isNotFound(err):
			insertQuery, insertArgs, err := qb.InsertModel("player_stats", newPlayerStatsInsertModel(item), "")
			if err != nil {
				return playerstats.UpsertResult{}, fmt.Errorf("build insert player stats query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				return playerstats.UpsertResult{}, fmt.Errorf("insert player stats player_id=%d season=%s: %w", item.PlayerID, item.Season, err)
			}
			result.Inserted++
		case err != nil:
			return playerstats.UpsertResult{}, fmt.Errorf("select player stats player_id=%d season=%s: %w", item.PlayerID, item.Season, err)
		default:
			updateQuery, updateArgs, err := qb.Update("player_stats").
				Set("team_id", teamIDToNull(item.TeamID)).
				Set("games_played", item.GamesPlayed).
				Set("goals", item.Goals).
				Set("assists", item.Assists).
				Set("points", item.Points).
				Set("plus_minus", item.PlusMinus).
				Set("penalty_minutes", item.PenaltyMinutes).
				Set("power_play_goals", item.PowerPlayGoals).
				Set("power_play_points", item.PowerPlayPoints).
				Set("short_handed_goals", item.ShortHandedGoals).
				Set("short_handed_points", item.ShortHandedPoints).
				Set("game_winning_goals", item.GameWinningGoals).
				Set("overtime_goals", item.OvertimeGoals).
				Set("shots", item.Shots).
				Set("shooting_pctg", item.ShootingPctg).
				Set("time_on_ice_per_game", item.TimeOnIcePerGame).
				Set("faceoff_pctg", item.FaceoffPctg).
				Set("wins", item.Wins).
				Set("losses", item.Losses).
				Set("overtime_losses", item.OvertimeLosses).
				Set("saves", item.Saves).
				Set("shots_against", item.ShotsAgainst).
				Set("goals_against", item.GoalsAgainst).
				Set("save_pctg", item.SavePctg).
				Set("goals_against_average", item.GoalsAgainstAverage).
				Set("shutouts", item.Shutouts).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", existingID)).
				ToSQL()
			if err != nil {
				return playerstats.UpsertResult{}, fmt.Errorf("build update player stats query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
				return playerstats.UpsertResult{}, fmt.Errorf("update player stats player_id=%d season=%s: %w", item.PlayerID, item.Season, err)
			}
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return playerstats.UpsertResult{}, fmt.Errorf("commit upsert player stats tx: %w", err)
	}
	return result, nil
}

func (r *PlayerStatsRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("player_stats").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player stats: %w", err)
	}
	return count, nil
}

type playerStatsInsertModel struct {
	PlayerID            int64         `db:"player_id"`
	Season              string        `db:"season"`
	TeamID              sql.NullInt64 `db:"team_id"`
	GamesPlayed         int           `db:"games_played"`
	Goals               int           `db:"goals"`
	Assists             int           `db:"assists"`
	Points              int           `db:"points"`
	PlusMinus           int           `db:"plus_minus"`
	PenaltyMinutes      int           `db:"penalty_minutes"`
	PowerPlayGoals      int           `db:"power_play_goals"`
	PowerPlayPoints     int           `db:"power_play_points"`
	ShortHandedGoals    int           `db:"short_handed_goals"`
	ShortHandedPoints   int           `db:"short_handed_points"`
	GameWinningGoals    int           `db:"game_winning_goals"`
	OvertimeGoals       int           `db:"overtime_goals"`
	Shots               int           `db:"shots"`
	ShootingPctg        float64       `db:"shooting_pctg"`
	TimeOnIcePerGame    float64       `db:"time_on_ice_per_game"`
	FaceoffPctg         float64       `db:"faceoff_pctg"`
	Wins                int           `db:"wins"`
	Losses              int           `db:"losses"`
	OvertimeLosses      int           `db:"overtime_losses"`
	Saves               int           `db:"saves"`
	ShotsAgainst        int           `db:"shots_against"`
	GoalsAgainst        int           `db:"goals_against"`
	SavePctg            float64       `db:"save_pctg"`
	GoalsAgainstAverage float64       `db:"goals_against_average"`
	Shutouts            int           `db:"shutouts"`
}

func newPlayerStatsInsertModel(item playerstats.SeasonStats) playerStatsInsertModel {
	return playerStatsInsertModel{
		PlayerID:            item.PlayerID,
		Season:              item.Season,
		TeamID:              teamIDToNull(item.TeamID),
		GamesPlayed:         item.GamesPlayed,
		Goals:               item.Goals,
		Assists:             item.Assists,
		Points:              item.Points,
		PlusMinus:           item.PlusMinus,
		PenaltyMinutes:      item.PenaltyMinutes,
		PowerPlayGoals:      item.PowerPlayGoals,
		PowerPlayPoints:     item.PowerPlayPoints,
		ShortHandedGoals:    item.ShortHandedGoals,
		ShortHandedPoints:   item.ShortHandedPoints,
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
