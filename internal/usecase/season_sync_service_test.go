package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func TestSeasonSyncService_Sync_ConvertsAndDedupes(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC)
	provider := &stubSeasonProvider{games: []ExternalGame{
		{ExternalID: "7", Week: 2, KickoffAt: kickoff.Add(7 * 24 * time.Hour), HomeTeam: "Dallas Cowboys", AwayTeam: "Kansas City Chiefs"},
		{ExternalID: "5", Week: 1, KickoffAt: kickoff, HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys", HomeScore: 24, AwayScore: 20, Final: true},
		{ExternalID: "5", Week: 1, KickoffAt: kickoff, HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys", HomeScore: 24, AwayScore: 20, Final: true},
		{ExternalID: "9", Week: 2, KickoffAt: kickoff, HomeTeam: "", AwayTeam: "Las Vegas Raiders"},
	}}
	games := memory.NewGameRepository(nil)
	service := NewSeasonSyncService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		games,
		provider,
		SeasonSyncConfig{Enabled: true, Location: saoPaulo(t)},
		nil,
		logging.NewNop(),
	)

	summary, err := service.Sync(context.Background(), memory.LeagueIDNFL, 2025)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if summary.Written != 2 || summary.Finished != 1 || summary.Fetched != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if provider.delay != 13*time.Second {
		t.Fatalf("league page delay not passed: %s", provider.delay)
	}

	records, _ := games.Load(context.Background(), memory.LeagueIDNFL)
	first := records[0]
	if first.ID != "5" || first.Date != "2025-09-04" || first.Time != "21:20:00" {
		t.Fatalf("kickoff not converted to local time: %+v", first)
	}
	if first.Round == nil || *first.Round != 1 || !first.IsFinished() {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if records[1].IsFinished() || records[1].HomeScore != nil {
		t.Fatalf("scheduled game must not carry scores: %+v", records[1])
	}
}

func TestSeasonSyncService_Sync_PartialAndFailedFetches(t *testing.T) {
	t.Parallel()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())

	t.Run("no page fetched keeps the file", func(t *testing.T) {
		games := memory.NewGameRepository(nil)
		service := NewSeasonSyncService(leagues, games, &stubSeasonProvider{err: errors.New("status 429")}, SeasonSyncConfig{Enabled: true}, nil, logging.NewNop())
		summary, err := service.Sync(context.Background(), memory.LeagueIDNBA, 2025)
		if err != nil {
			t.Fatalf("sync: %v", err)
		}
		if !summary.Skipped || games.Saves() != 0 {
			t.Fatalf("expected skipped run without writes: %+v", summary)
		}
	})

	t.Run("pages fetched before the failure are written", func(t *testing.T) {
		games := memory.NewGameRepository(nil)
		provider := &stubSeasonProvider{
			games: []ExternalGame{{ExternalID: "1", Date: "2025-10-21", HomeTeam: "Boston Celtics", AwayTeam: "New York Knicks"}},
			err:   errors.New("status 500"),
		}
		service := NewSeasonSyncService(leagues, games, provider, SeasonSyncConfig{Enabled: true}, nil, logging.NewNop())
		summary, err := service.Sync(context.Background(), memory.LeagueIDNBA, 2025)
		if err != nil {
			t.Fatalf("sync: %v", err)
		}
		if !summary.Partial || summary.Written != 1 || games.Saves() != 1 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		records, _ := games.Load(context.Background(), memory.LeagueIDNBA)
		if records[0].Round != nil {
			t.Fatalf("daily leagues have no rounds: %+v", records[0])
		}
	})

	t.Run("invalid season", func(t *testing.T) {
		service := NewSeasonSyncService(leagues, memory.NewGameRepository(nil), &stubSeasonProvider{}, SeasonSyncConfig{Enabled: true}, nil, logging.NewNop())
		if _, err := service.Sync(context.Background(), memory.LeagueIDNBA, 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
