package playerstats

import "context"

type UpsertResult struct {
	Inserted int
	Updated  int
}

func (r UpsertResult) Total() int {
	return r.Inserted + r.Updated
}

// Repository persists per-season player lines keyed by (player_id, season).
// UpsertSeasonBatch commits the whole batch in one transaction.
type Repository interface {
	UpsertSeasonBatch(ctx context.Context, stats []SeasonStats) (UpsertResult, error)
	Count(ctx context.Context) (int, error)
}
