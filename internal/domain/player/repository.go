package player

import "context"

type UpsertResult struct {
	Inserted int
	Updated  int
}

func (r UpsertResult) Total() int {
	return r.Inserted + r.Updated
}

// Repository describes player persistence needs from use cases.
// UpsertRoster replaces every mutable attribute from the incoming records and
// re-points each player at teamID, all inside one transaction.
type Repository interface {
	UpsertRoster(ctx context.Context, teamID int64, players []Player) (UpsertResult, error)
	GetByExternalID(ctx context.Context, externalID int64) (Player, bool, error)
	Count(ctx context.Context) (int, error)
}
