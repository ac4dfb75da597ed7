package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

type StandingsSummary struct {
	LeagueID      string   `json:"league_id"`
	Teams         int      `json:"teams"`
	FinishedGames int      `json:"finished_games"`
	UnmappedTeams []string `json:"unmapped_teams,omitempty"`
}

type StandingsService struct {
	leagueRepo   league.Repository
	gameRepo     game.Repository
	teamRepo     team.Repository
	standingRepo standing.Repository
	metrics      Metrics
	logger       *logging.Logger
}

func NewStandingsService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	teamRepo team.Repository,
	standingRepo standing.Repository,
	metrics Metrics,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		leagueRepo:   leagueRepo,
		gameRepo:     gameRepo,
		teamRepo:     teamRepo,
		standingRepo: standingRepo,
		metrics:      metricsOrNop(metrics),
		logger:       logger,
	}
}

// Recompute rebuilds the league's standings file from its game records. An
// unreadable games file counts as an empty season.
func (s *StandingsService) Recompute(ctx context.Context, leagueID string) (StandingsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recompute")
	defer span.End()

	start := time.Now()
	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return StandingsSummary{}, err
	}

	roster, err := s.teamRepo.LoadRoster(ctx, l.ID)
	if err != nil {
		return StandingsSummary{}, fmt.Errorf("load roster league=%s: %w", l.ID, err)
	}

	records, err := s.gameRepo.Load(ctx, l.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "games file unavailable, computing empty standings",
			"league_id", l.ID,
			"error", err,
		)
		records = nil
	}

	rows, report := CalculateStandings(records, roster, StandingsPolicy{ByDivision: l.RanksByDivision()})
	for _, name := range report.UnmappedTeams {
		s.metrics.IncDataQualityWarning(warnUnmappedTeam)
		s.logger.WarnContext(ctx, "finished game references a team missing from the roster",
			"kind", warnUnmappedTeam,
			"league_id", l.ID,
			"team", name,
		)
	}
	if report.InvalidRecords > 0 {
		s.metrics.IncDataQualityWarning(warnInvalidRecord)
		s.logger.WarnContext(ctx, "finished games without scores were ignored",
			"kind", warnInvalidRecord,
			"league_id", l.ID,
			"count", report.InvalidRecords,
		)
	}

	changed, err := s.standingRepo.Replace(ctx, l.ID, rows)
	if err != nil {
		return StandingsSummary{}, fmt.Errorf("replace standings league=%s: %w", l.ID, err)
	}
	s.metrics.IncStandingsRun(l.ID)
	if changed {
		s.metrics.IncFileWritten(l.StandingsFile)
	}
	s.metrics.ObserveJobDuration("standings", time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "standings recomputed",
		"league_id", l.ID,
		"teams", len(rows),
		"finished_games", report.FinishedGames,
	)
	return StandingsSummary{
		LeagueID:      l.ID,
		Teams:         len(rows),
		FinishedGames: report.FinishedGames,
		UnmappedTeams: report.UnmappedTeams,
	}, nil
}

// List returns the stored standings. A missing or unreadable file yields an
// empty table so readers can render an unavailable state.
func (s *StandingsService) List(ctx context.Context, leagueID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.List")
	defer span.End()

	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return nil, err
	}

	rows, err := s.standingRepo.Load(ctx, l.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "standings file unavailable", "league_id", l.ID, "error", err)
		return []standing.Standing{}, nil
	}
	return rows, nil
}

func getLeague(ctx context.Context, repo league.Repository, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	l, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return l, nil
}
