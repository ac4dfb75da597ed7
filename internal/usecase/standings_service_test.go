package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/memory"
	gamemock "github.com/riskibarqy/agenda-fc/internal/mocks/domain/game"
	standingmock "github.com/riskibarqy/agenda-fc/internal/mocks/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

func TestStandingsService_Recompute_WritesDivisionStandings(t *testing.T) {
	t.Parallel()

	standings := memory.NewStandingRepository()
	metrics := newCountingMetrics()
	service := NewStandingsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewGameRepository(memory.SeedGames()),
		memory.NewTeamRepository(memory.SeedRosters()),
		standings,
		metrics,
		logging.NewNop(),
	)

	summary, err := service.Recompute(context.Background(), memory.LeagueIDNFL)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if summary.Teams != 4 || summary.FinishedGames != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rows, err := standings.Load(context.Background(), memory.LeagueIDNFL)
	if err != nil {
		t.Fatalf("load standings: %v", err)
	}
	eagles := standingByName(t, rows, "Philadelphia Eagles")
	if eagles.Wins != 1 || eagles.Rank != 1 || eagles.Streak != "W1" || eagles.Percentage != "1.000" {
		t.Fatalf("unexpected eagles row: %+v", eagles)
	}
	chiefs := standingByName(t, rows, "Kansas City Chiefs")
	if chiefs.Ties != 1 || chiefs.Percentage != ".500" || chiefs.Streak != "T1" {
		t.Fatalf("unexpected chiefs row: %+v", chiefs)
	}
	if metrics.standingsRuns[memory.LeagueIDNFL] != 1 {
		t.Fatalf("standings run not counted")
	}
}

func TestStandingsService_Recompute_UnreadableGamesGiveEmptyStandingsUsingMockery(t *testing.T) {
	t.Parallel()

	gameRepo := gamemock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)

	gameRepo.On("Load", mock.Anything, memory.LeagueIDNBA).Return(nil, errors.New("decode jogos-nba.json: unexpected EOF")).Once()
	standingRepo.
		On("Replace", mock.Anything, memory.LeagueIDNBA, mock.MatchedBy(func(rows []standing.Standing) bool {
			if len(rows) != 4 {
				return false
			}
			for _, row := range rows {
				if row.GamesPlayed() != 0 || row.Percentage != ".000" || row.Streak != "-" {
					return false
				}
			}
			return true
		})).
		Return(true, nil).
		Once()

	service := NewStandingsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		gameRepo,
		memory.NewTeamRepository(memory.SeedRosters()),
		standingRepo,
		nil,
		logging.NewNop(),
	)
	if _, err := service.Recompute(context.Background(), memory.LeagueIDNBA); err != nil {
		t.Fatalf("recompute: %v", err)
	}
}

func TestStandingsService_Recompute_CountsUnmappedTeams(t *testing.T) {
	t.Parallel()

	games := memory.SeedGames()
	games[memory.LeagueIDNBA] = append(games[memory.LeagueIDNBA], finishedGame("x", "2025-10-22", "Boston Celtics", "Seattle SuperSonics", 100, 80))
	metrics := newCountingMetrics()

	service := NewStandingsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewGameRepository(games),
		memory.NewTeamRepository(memory.SeedRosters()),
		memory.NewStandingRepository(),
		metrics,
		logging.NewNop(),
	)
	summary, err := service.Recompute(context.Background(), memory.LeagueIDNBA)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(summary.UnmappedTeams) != 1 || metrics.warnings[warnUnmappedTeam] != 1 {
		t.Fatalf("unmapped team not reported: %+v %+v", summary, metrics.warnings)
	}
}

func TestStandingsService_List_DegradesToEmptyUsingMockery(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	standingRepo.On("Load", mock.Anything, memory.LeagueIDNBA).Return(nil, errors.New("missing")).Once()

	service := NewStandingsService(memory.NewLeagueRepository(memory.SeedLeagues()), memory.NewGameRepository(nil), memory.NewTeamRepository(nil), standingRepo, nil, logging.NewNop())
	rows, err := service.List(context.Background(), memory.LeagueIDNBA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty table, got %v", rows)
	}

	if _, err := service.List(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}


func TestStandingsService_Recompute_UnchangedFileIsNotCountedUsingMockery(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	standingRepo.On("Replace", mock.Anything, memory.LeagueIDNBA, mock.Anything).Return(false, nil).Once()
	metrics := newCountingMetrics()

	service := NewStandingsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewGameRepository(memory.SeedGames()),
		memory.NewTeamRepository(memory.SeedRosters()),
		standingRepo,
		metrics,
		logging.NewNop(),
	)
	if _, err := service.Recompute(context.Background(), memory.LeagueIDNBA); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if len(metrics.files) != 0 || metrics.standingsRuns[memory.LeagueIDNBA] != 1 {
		t.Fatalf("expected a run without a written file, got files=%v runs=%v", metrics.files, metrics.standingsRuns)
	}
}
