package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

type SeasonSyncConfig struct {
	Enabled  bool
	Location *time.Location
}

type SeasonSyncSummary struct {
	LeagueID   string `json:"league_id"`
	Season     int    `json:"season"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason,omitempty"`
	Fetched    int    `json:"fetched"`
	Written    int    `json:"written"`
	Finished   int    `json:"finished"`
	Partial    bool   `json:"partial"`
}

// SeasonSyncService bulk-imports a season schedule and replaces the league's
// games file with it.
type SeasonSyncService struct {
	leagueRepo league.Repository
	gameRepo   game.Repository
	provider   SeasonProvider
	cfg        SeasonSyncConfig
	metrics    Metrics
	logger     *logging.Logger
}

func NewSeasonSyncService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	provider SeasonProvider,
	cfg SeasonSyncConfig,
	metrics Metrics,
	logger *logging.Logger,
) *SeasonSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &SeasonSyncService{
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		provider:   provider,
		cfg:        cfg,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
	}
}

func (s *SeasonSyncService) Sync(ctx context.Context, leagueID string, season int) (SeasonSyncSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonSyncService.Sync")
	defer span.End()

	start := time.Now()
	if season <= 0 {
		return SeasonSyncSummary{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return SeasonSyncSummary{}, err
	}
	summary := SeasonSyncSummary{LeagueID: l.ID, Season: season}

	if !s.cfg.Enabled || s.provider == nil {
		s.logger.WarnContext(ctx, "skip season sync: provider credential is not configured",
			"league_id", l.ID,
			"error", ErrMissingCredential,
		)
		summary.Skipped, summary.SkipReason = true, skipMissingCredential
		return summary, nil
	}

	games, err := s.provider.FetchSeason(ctx, l.Sport, season, l.PageDelay)
	summary.Fetched = len(games)
	if err != nil {
		s.metrics.IncProviderFailure(l.Provider)
		if len(games) == 0 {
			s.logger.WarnContext(ctx, "skip season sync: fetch failed before any page",
				"league_id", l.ID,
				"season", season,
				"error", err,
			)
			summary.Skipped, summary.SkipReason = true, skipFetchFailed
			return summary, nil
		}
		summary.Partial = true
		s.logger.WarnContext(ctx, "season fetch interrupted, keeping fetched pages",
			"league_id", l.ID,
			"season", season,
			"fetched", len(games),
			"error", err,
		)
	}

	records := s.toRecords(ctx, l, games)
	if len(records) == 0 {
		summary.Skipped, summary.SkipReason = true, skipNoResults
		return summary, nil
	}
	changed, err := s.gameRepo.Replace(ctx, l.ID, records)
	if err != nil {
		return summary, fmt.Errorf("save season league=%s: %w", l.ID, err)
	}
	if changed {
		s.metrics.IncFileWritten(l.GamesFile)
	}
	s.metrics.ObserveJobDuration("season_sync", time.Since(start).Seconds())

	summary.Written = len(records)
	for _, record := range records {
		if record.IsFinished() {
			summary.Finished++
		}
	}
	s.logger.InfoContext(ctx, "season synced",
		"league_id", l.ID,
		"season", season,
		"games", summary.Written,
		"finished", summary.Finished,
		"partial", summary.Partial,
	)
	return summary, nil
}

// toRecords dedupes by provider id, keeps kickoff order and stores dates in
// the configured zone. Round numbers are kept only for leagues played in rounds.
func (s *SeasonSyncService) toRecords(ctx context.Context, l league.League, games []ExternalGame) []game.Record {
	ordered := append([]ExternalGame(nil), games...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].KickoffAt.Before(ordered[j].KickoffAt)
	})

	seen := make(map[string]struct{}, len(ordered))
	out := make([]game.Record, 0, len(ordered))
	for _, g := range ordered {
		id := strings.TrimSpace(g.ExternalID)
		if id != "" {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
		}

		record := game.Record{
			ID:       id,
			Date:     strings.TrimSpace(g.Date),
			HomeTeam: strings.TrimSpace(g.HomeTeam),
			AwayTeam: strings.TrimSpace(g.AwayTeam),
			Status:   game.StatusNotStarted,
		}
		if !g.KickoffAt.IsZero() {
			record.Date, record.Time = timeutil.LocalKickoff(g.KickoffAt, s.cfg.Location)
		}
		if l.TotalRounds > 0 && g.Week > 0 {
			week := g.Week
			record.Round = &week
		}
		if g.Final {
			record.Finish(g.HomeScore, g.AwayScore)
		}

		if err := record.Validate(); err != nil {
			s.metrics.IncDataQualityWarning(warnInvalidRecord)
			s.logger.WarnContext(ctx, "skip provider game",
				"kind", warnInvalidRecord,
				"league_id", l.ID,
				"external_id", id,
				"error", err,
			)
			continue
		}
		out = append(out, record)
	}
	return out
}
