package team

import "context"

// Repository loads the roster of one league.
type Repository interface {
	LoadRoster(ctx context.Context, leagueID string) (Roster, error)
}
