package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

const (
	skipMissingCredential = "missing_credential"
	skipFetchFailed       = "fetch_failed"
	skipNoResults         = "no_results"
)

type ReconcileConfig struct {
	// Enabled is false when the provider credential is absent.
	Enabled           bool
	DateToleranceDays int
	Location          *time.Location
}

type ReconcileSummary struct {
	LeagueID   string   `json:"league_id"`
	Dates      []string `json:"dates,omitempty"`
	Skipped    bool     `json:"skipped"`
	SkipReason string   `json:"skip_reason,omitempty"`
	Fetched    int      `json:"fetched"`
	Updated    int      `json:"updated"`
	Unmatched  int      `json:"unmatched"`
	Saved      bool     `json:"saved"`
}

type ReconcileService struct {
	leagueRepo league.Repository
	gameRepo   game.Repository
	provider   ResultsProvider
	cfg        ReconcileConfig
	metrics    Metrics
	logger     *logging.Logger
	now        func() time.Time
}

func NewReconcileService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	provider ResultsProvider,
	cfg ReconcileConfig,
	metrics Metrics,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &ReconcileService{
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		provider:   provider,
		cfg:        cfg,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
		now:        time.Now,
	}
}

// Run fetches recent results for the league and completes matching pending
// records. Provider problems are logged and reported as a skipped run; only
// local file failures are returned as errors.
func (s *ReconcileService) Run(ctx context.Context, leagueID string) (ReconcileSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.Run")
	defer span.End()

	start := time.Now()
	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return ReconcileSummary{}, err
	}
	summary := ReconcileSummary{LeagueID: l.ID}

	if !s.cfg.Enabled || s.provider == nil {
		s.logger.WarnContext(ctx, "skip reconcile: provider credential is not configured",
			"league_id", l.ID,
			"provider", l.Provider,
			"error", ErrMissingCredential,
		)
		return skipped(summary, skipMissingCredential), nil
	}

	summary.Dates = timeutil.Lookback(timeutil.Today(s.now(), s.cfg.Location), l.LookbackDays, l.IncludeToday)
	if len(summary.Dates) == 0 {
		return skipped(summary, skipNoResults), nil
	}

	results, err := s.provider.FetchResults(ctx, l.Sport, summary.Dates)
	if err != nil {
		s.metrics.IncProviderFailure(l.Provider)
		s.logger.WarnContext(ctx, "skip reconcile: fetch results failed",
			"league_id", l.ID,
			"provider", l.Provider,
			"dates", summary.Dates,
			"error", err,
		)
		return skipped(summary, skipFetchFailed), nil
	}
	summary.Fetched = len(results)
	if len(results) == 0 {
		s.logger.InfoContext(ctx, "no results returned by provider", "league_id", l.ID, "dates", summary.Dates)
		return skipped(summary, skipNoResults), nil
	}

	records, err := s.gameRepo.Load(ctx, l.ID)
	if err != nil {
		return summary, fmt.Errorf("load games league=%s: %w", l.ID, err)
	}

	updated, report := Reconcile(records, results, ReconcilePolicy{DateToleranceDays: s.cfg.DateToleranceDays})
	summary.Updated = report.Updated
	summary.Unmatched = len(report.Unmatched)
	if len(report.Unmatched) > 0 {
		s.logger.DebugContext(ctx, "final results without a pending record",
			"league_id", l.ID,
			"results", report.Unmatched,
		)
	}

	if report.Updated > 0 {
		changed, err := s.gameRepo.Save(ctx, l.ID, updated)
		if err != nil {
			return summary, fmt.Errorf("save games league=%s: %w", l.ID, err)
		}
		summary.Saved = true
		s.metrics.AddReconciledGames(l.ID, report.Updated)
		if changed {
			s.metrics.IncFileWritten(l.GamesFile)
		}
	}
	s.metrics.ObserveJobDuration("reconcile", time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "reconcile finished",
		"league_id", l.ID,
		"final_results", report.FinalResults,
		"updated", report.Updated,
		"updated_ids", report.UpdatedIDs,
		"unmatched", len(report.Unmatched),
	)
	return summary, nil
}

func skipped(summary ReconcileSummary, reason string) ReconcileSummary {
	summary.Skipped = true
	summary.SkipReason = reason
	return summary
}
