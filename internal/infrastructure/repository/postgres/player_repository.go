package postgres

import (
	"context"
	"fmt"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/player"
	qb "github.com/james-henry-git/nhl-stats-tracker/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// UpsertRoster lands one team's roster in a single transaction. Every
// incoming player is re-pointed at teamID and marked active; players already
// known keep their row and get refreshed attributes.
func (r *PlayerRepository) UpsertRoster(ctx context.Context, teamID int64, players []player.Player) (player.UpsertResult, error) {
	var result player.UpsertResult

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.UpsertResult{}, fmt.Errorf("begin tx upsert roster: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range players {
		if err := item.Validate(); err != nil {
			return player.UpsertResult{}, fmt.Errorf("validate player external_id=%d: %w", item.ExternalID, err)
		}

		selectQuery, selectArgs, err := qb.Select("id").From("players").
			Where(qb.Eq("external_id", item.ExternalID)).
			ToSQL()
		if err != nil {
			return player.UpsertResult{}, fmt.Errorf("build select player query: %w", err)
		}

		var existingID int64
		err = tx.GetContext(ctx, &existingID, selectQuery, selectArgs...)
		switch {
		case isNotFound(err):
			insertQuery, insertArgs, err := qb.InsertModel("players", playerInsertModel{
				ExternalID:    item.ExternalID,
				FirstName:     item.FirstName,
				LastName:      item.LastName,
				JerseyNumber:  item.JerseyNumber,
				Position:      item.Position,
				ShootsCatches: item.ShootsCatches,
				HeightInches:  item.HeightInches,
				WeightPounds:  item.WeightPounds,
				BirthDate:     ptrToNullTime(item.BirthDate),
				BirthCity:     item.BirthCity,
				BirthCountry:  item.BirthCountry,
				Nationality:   item.Nationality,
				TeamID:        teamIDToNull(teamID),
				Active:        true,
			}, "")
			if err != nil {
				return player.UpsertResult{}, fmt.Errorf("build insert player query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				return player.UpsertResult{}, fmt.Errorf("insert player external_id=%d: %w", item.ExternalID, err)
			}
			result.Inserted++
		case err != nil:
			return player.UpsertResult{}, fmt.Errorf("select player external_id=%d: %w", item.ExternalID, err)
		default:
			updateQuery, updateArgs, err := qb.Update("players").
				Set("first_name", item.FirstName).
				Set("last_name", item.LastName).
				Set("jersey_number", item.JerseyNumber).
				Set("position", item.Position).
				Set("shoots_catches", item.ShootsCatches).
				Set("height_inches", item.HeightInches).
				Set("weight_pounds", item.WeightPounds).
				Set("birth_date", ptrToNullTime(item.BirthDate)).
				Set("birth_city", item.BirthCity).
				Set("birth_country", item.BirthCountry).
				Set("nationality", item.Nationality).
				Set("team_id", teamIDToNull(teamID)).
				Set("active", true).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", existingID)).
				ToSQL()
			if err != nil {
				return player.UpsertResult{}, fmt.Errorf("build update player query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
				return player.UpsertResult{}, fmt.Errorf("update player external_id=%d: %w", item.ExternalID, err)
			}
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return player.UpsertResult{}, fmt.Errorf("commit upsert roster tx: %w", err)
	}
	return result, nil
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("external_id", externalID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by external id query: %w", err)
	}

	var row playerTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isNotFound(err) {
		return player.Player{}, false, nil
	}
	if err != nil {
		return player.Player{}, false, fmt.Errorf("select player by external id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("players").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count players query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return count, nil
}
