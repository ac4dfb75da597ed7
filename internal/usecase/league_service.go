package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
)

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	return getLeague(ctx, s.leagueRepo, leagueID)
}

// ListTeamsByLeague returns the league roster in file order.
func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]team.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeamsByLeague")
	defer span.End()

	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	roster, err := s.teamRepo.LoadRoster(ctx, l.ID)
	if err != nil {
		return nil, fmt.Errorf("load roster league=%s: %w", l.ID, err)
	}

	return roster.Entries(), nil
}
