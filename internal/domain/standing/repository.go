package standing

import "context"

// Repository stores computed standings. Replace overwrites the whole table and
// reports whether the stored bytes changed.
type Repository interface {
	Load(ctx context.Context, leagueID string) ([]Standing, error)
	Replace(ctx context.Context, leagueID string, rows []Standing) (bool, error)
}
