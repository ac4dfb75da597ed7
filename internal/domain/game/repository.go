package game

import "context"

// Repository persists the game list of one league. Writes report whether the
// stored bytes changed.
type Repository interface {
	Load(ctx context.Context, leagueID string) ([]Record, error)
	// Save writes back records previously returned by Load, in the same order.
	// Stored entries that Load could not turn into records are kept as they are.
	Save(ctx context.Context, leagueID string, records []Record) (bool, error)
	// Replace overwrites the whole list, as a season import does.
	Replace(ctx context.Context, leagueID string, records []Record) (bool, error)
}
