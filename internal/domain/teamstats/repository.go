package teamstats

import "context"

type UpsertResult struct {
	Inserted int
	Updated  int
}

func (r UpsertResult) Total() int {
	return r.Inserted + r.Updated
}

// Repository persists per-season team records keyed by (team_id, season).
type Repository interface {
	UpsertSeason(ctx context.Context, stats SeasonStats) (UpsertResult, error)
	GetByTeamAndSeason(ctx context.Context, teamID int64, season string) (SeasonStats, bool, error)
	Count(ctx context.Context) (int, error)
}
