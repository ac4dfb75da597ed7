package usecase

import (
	"context"
	"time"
)

// ExternalGame is a provider game normalized at the client boundary. Scores are
// only meaningful when Final is set.
type ExternalGame struct {
	ExternalID string
	Season     int
	Week       int
	KickoffAt  time.Time
	Date       string
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	Final      bool
	Status     string
}

// ResultsProvider fetches the games played on the given calendar dates.
type ResultsProvider interface {
	FetchResults(ctx context.Context, sport string, dates []string) ([]ExternalGame, error)
}

// SeasonProvider pages through a whole season. On a mid-pagination failure it
// returns the games fetched so far together with the error.
type SeasonProvider interface {
	FetchSeason(ctx context.Context, sport string, season int, pageDelay time.Duration) ([]ExternalGame, error)
}

// FootballDataProvider returns raw football-data.org payloads.
type FootballDataProvider interface {
	FetchStandings(ctx context.Context, code string) ([]byte, error)
	FetchScheduledMatches(ctx context.Context, code string) ([]byte, error)
}
