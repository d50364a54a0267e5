package fetchlog

import "context"

// Repository is the append-only fetch ledger. There is no update or delete.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
