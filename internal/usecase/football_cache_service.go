package usecase

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/resilience"
)

const footballDataProvider = "football-data"

// RawFileWriter replaces a data file and reports whether its bytes changed.
type RawFileWriter interface {
	WriteRaw(name string, raw []byte) (bool, error)
}

type FootballFeed struct {
	Slug string
	Code string
}

type FootballCacheConfig struct {
	Enabled      bool
	Dir          string
	RequestDelay time.Duration
	Feeds        []FootballFeed
}

type FootballCacheSummary struct {
	Skipped    bool     `json:"skipped"`
	SkipReason string   `json:"skip_reason,omitempty"`
	Written    []string `json:"written"`
	Unchanged  []string `json:"unchanged"`
	Failed     []string `json:"failed"`
}

// FootballCacheService mirrors football-data.org standings and scheduled
// matches into the cache directory, one paced request at a time.
type FootballCacheService struct {
	provider FootballDataProvider
	writer   RawFileWriter
	cfg      FootballCacheConfig
	metrics  Metrics
	logger   *logging.Logger
	pacer    *resilience.Pacer
}

func NewFootballCacheService(
	provider FootballDataProvider,
	writer RawFileWriter,
	cfg FootballCacheConfig,
	metrics Metrics,
	logger *logging.Logger,
) *FootballCacheService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FootballCacheService{
		provider: provider,
		writer:   writer,
		cfg:      cfg,
		metrics:  metricsOrNop(metrics),
		logger:   logger,
		pacer:    resilience.NewPacer(cfg.RequestDelay),
	}
}

type footballFetch struct {
	suffix string
	fetch  func(ctx context.Context, code string) ([]byte, error)
}

// Refresh stops early only when ctx is canceled; failed requests are logged and
// the remaining feeds are still fetched.
func (s *FootballCacheService) Refresh(ctx context.Context) (FootballCacheSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FootballCacheService.Refresh")
	defer span.End()

	start := time.Now()
	summary := FootballCacheSummary{Written: []string{}, Unchanged: []string{}, Failed: []string{}}
	if !s.cfg.Enabled || s.provider == nil {
		s.logger.WarnContext(ctx, "skip football cache: API_FOOTBALLDATA_KEY is not set", "error", ErrMissingCredential)
		summary.Skipped, summary.SkipReason = true, skipMissingCredential
		return summary, nil
	}

	fetches := []footballFetch{
		{suffix: "standings", fetch: s.provider.FetchStandings},
		{suffix: "matches", fetch: s.provider.FetchScheduledMatches},
	}
	for _, feed := range s.cfg.Feeds {
		slug := strings.TrimSpace(feed.Slug)
		for _, f := range fetches {
			if err := s.pacer.Wait(ctx); err != nil {
				return summary, err
			}

			name := path.Join(s.cfg.Dir, slug+"-"+f.suffix+".json")
			raw, err := f.fetch(ctx, feed.Code)
			if err != nil {
				s.metrics.IncProviderFailure(footballDataProvider)
				s.logger.WarnContext(ctx, "football-data request failed",
					"competition", feed.Code,
					"resource", f.suffix,
					"error", err,
				)
				summary.Failed = append(summary.Failed, name)
				continue
			}

			changed, err := s.writer.WriteRaw(name, raw)
			if err != nil {
				s.logger.ErrorContext(ctx, "write football cache file failed", "file", name, "error", err)
				summary.Failed = append(summary.Failed, name)
				continue
			}
			if changed {
				s.metrics.IncFileWritten(name)
				summary.Written = append(summary.Written, name)
			} else {
				summary.Unchanged = append(summary.Unchanged, name)
			}
		}
	}
	s.metrics.ObserveJobDuration("football_cache", time.Since(start).Seconds())

	s.logger.InfoContext(ctx, "football cache refreshed",
		"written", len(summary.Written),
		"unchanged", len(summary.Unchanged),
		"failed", len(summary.Failed),
	)
	return summary, nil
}
