package team

import "context"

// UpsertResult reports how a batch of teams landed in storage.
type UpsertResult struct {
	Inserted int
	Updated  int
}

func (r UpsertResult) Total() int {
	return r.Inserted + r.Updated
}

// Repository describes team persistence needs from use cases.
type Repository interface {
	UpsertAll(ctx context.Context, teams []Team) (UpsertResult, error)
	GetByCode(ctx context.Context, code string) (Team, bool, error)
	ListActive(ctx context.Context) ([]Team, error)
	Count(ctx context.Context) (int, error)
}
