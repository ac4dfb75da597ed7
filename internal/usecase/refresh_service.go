package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/platform/id"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

type leagueReconciler interface {
	Run(ctx context.Context, leagueID string) (ReconcileSummary, error)
}

type standingsRecomputer interface {
	Recompute(ctx context.Context, leagueID string) (StandingsSummary, error)
}

type RefreshSummary struct {
	RunID       string                `json:"run_id"`
	WorkerCount int                   `json:"worker_count"`
	DurationMs  int64                 `json:"duration_ms"`
	Leagues     []LeagueRefreshResult `json:"leagues"`
}

type LeagueRefreshResult struct {
	LeagueID       string           `json:"league_id"`
	Reconcile      ReconcileSummary `json:"reconcile"`
	ReconcileError string           `json:"reconcile_error,omitempty"`
	Standings      StandingsSummary `json:"standings"`
	StandingsError string           `json:"standings_error,omitempty"`
}

// RefreshService runs the recompute pipeline: results for every league first,
// one league at a time, then standings for all leagues on a worker pool.
type RefreshService struct {
	leagueRepo league.Repository
	reconciler leagueReconciler
	standings  standingsRecomputer
	ids        id.Generator
	workers    int
	metrics    Metrics
	logger     *logging.Logger
}

func NewRefreshService(
	leagueRepo league.Repository,
	reconciler leagueReconciler,
	standings standingsRecomputer,
	ids id.Generator,
	workers int,
	metrics Metrics,
	logger *logging.Logger,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}

	return &RefreshService{
		leagueRepo: leagueRepo,
		reconciler: reconciler,
		standings:  standings,
		ids:        ids,
		workers:    workers,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
	}
}

// Run never aborts on a league failure; failures are reported per league.
func (s *RefreshService) Run(ctx context.Context) (RefreshSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.Run")
	defer span.End()

	start := time.Now()
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list leagues: %w", err)
	}

	summary := RefreshSummary{
		RunID:   s.ids.NewID(),
		Leagues: make([]LeagueRefreshResult, len(leagues)),
	}
	logger := s.logger.With("run_id", summary.RunID)

	for i, l := range leagues {
		row := &summary.Leagues[i]
		row.LeagueID = l.ID
		if err := ctx.Err(); err != nil {
			row.ReconcileError = err.Error()
			continue
		}
		result, err := s.reconciler.Run(ctx, l.ID)
		row.Reconcile = result
		if err != nil {
			row.ReconcileError = err.Error()
			logger.ErrorContext(ctx, "reconcile failed, standings use existing records", "league_id", l.ID, "error", err)
		}
	}

	summary.WorkerCount = normalizeWorkerCount(s.workers, len(leagues))
	if len(leagues) > 0 {
		if err := s.recomputeAll(ctx, logger, leagues, summary); err != nil {
			return summary, err
		}
	}

	s.metrics.ObserveJobDuration("refresh", time.Since(start).Seconds())
	summary.DurationMs = time.Since(start).Milliseconds()
	logger.InfoContext(ctx, "refresh finished", "leagues", len(leagues), "duration_ms", summary.DurationMs)
	return summary, nil
}

func (s *RefreshService) recomputeAll(ctx context.Context, logger *logging.Logger, leagues []league.League, summary RefreshSummary) error {
	pool, err := ants.NewPool(summary.WorkerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, l := range leagues {
		row := &summary.Leagues[i]
		leagueID := l.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result, err := s.standings.Recompute(ctx, leagueID)
			row.Standings = result
			if err != nil {
				row.StandingsError = err.Error()
				logger.ErrorContext(ctx, "standings recompute failed", "league_id", leagueID, "error", err)
			}
		}); err != nil {
			workers.Done()
			row.StandingsError = err.Error()
		}
	}
	workers.Wait()
	return nil
}

func normalizeWorkerCount(value, taskCount int) int {
	if value <= 0 {
		value = 1
	}
	if taskCount > 0 && value > taskCount {
		value = taskCount
	}
	return value
}
