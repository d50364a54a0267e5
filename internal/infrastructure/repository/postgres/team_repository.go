package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/james-henry-git/nhl-stats-tracker/internal/domain/team"
	qb "github.com/james-henry-git/nhl-stats-tracker/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// UpsertAll reconciles the incoming team list against storage in one
// transaction and reports how many rows were inserted versus refreshed.
func (r *TeamRepository) UpsertAll(ctx context.Context, teams []team.Team) (team.UpsertResult, error) {
	var result team.UpsertResult

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return team.UpsertResult{}, fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range teams {
		if err := item.Validate(); err != nil {
			return team.UpsertResult{}, fmt.Errorf("validate team code=%s: %w", item.Code, err)
		}

		selectQuery, selectArgs, err := qb.Select("id").From("teams").
			Where(qb.Eq("external_id", item.ExternalID)).
			ToSQL()
		if err != nil {
			return team.UpsertResult{}, fmt.Errorf("build select team query: %w", err)
		}

		var existingID int64
		err = tx.GetContext(ctx, &existingID, selectQuery, selectArgs...)
		switch {
		case isNotFound(err):
			insertQuery, insertArgs, err := qb.InsertModel("teams", teamInsertModel{
				ExternalID: item.ExternalID,
				Name:       item.Name,
				Code:       strings.ToUpper(item.Code),
				City:       item.City,
				Conference: item.Conference,
				Division:   item.Division,
				Active:     item.Active,
			}, "")
			if err != nil {
				return team.UpsertResult{}, fmt.Errorf("build insert team query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
				return team.UpsertResult{}, fmt.Errorf("insert team code=%s: %w", item.Code, err)
			}
			result.Inserted++
		case err != nil:
			return team.UpsertResult{}, fmt.Errorf("select team external_id=%d: %w", item.ExternalID, err)
		default:
			updateQuery, updateArgs, err := qb.Update("teams").
				Set("name", item.Name).
				Set("code", strings.ToUpper(item.Code)).
				Set("city", item.City).
				Set("conference", item.Conference).
				Set("division", item.Division).
				Set("active", item.Active).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", existingID)).
				ToSQL()
			if err != nil {
				return team.UpsertResult{}, fmt.Errorf("build update team query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
				return team.UpsertResult{}, fmt.Errorf("update team code=%s: %w", item.Code, err)
			}
			result.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return team.UpsertResult{}, fmt.Errorf("commit upsert teams tx: %w", err)
	}
	return result, nil
}

func (r *TeamRepository) GetByCode(ctx context.Context, code string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("code", strings.ToUpper(strings.TrimSpace(code)))).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by code query: %w", err)
	}

	var row teamTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if isNotFound(err) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("select team by code: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("active", true)).
		OrderBy("code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("teams").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return count, nil
}
