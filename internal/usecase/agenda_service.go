package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

const (
	DefaultAgendaDays = 7
	MaxAgendaDays     = 31
)

type AgendaQuery struct {
	// From is a YYYY-MM-DD date; empty means today.
	From string
	// Days of zero selects DefaultAgendaDays; a negative value leaves the window open.
	Days        int
	Competition string
}

type AgendaService struct {
	fixtureRepo     fixture.Repository
	competitionRepo competition.Repository
	location        *time.Location
	metrics         Metrics
	logger          *logging.Logger
	now             func() time.Time
}

func NewAgendaService(
	fixtureRepo fixture.Repository,
	competitionRepo competition.Repository,
	location *time.Location,
	metrics Metrics,
	logger *logging.Logger,
) *AgendaService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}

	return &AgendaService{
		fixtureRepo:     fixtureRepo,
		competitionRepo: competitionRepo,
		location:        location,
		metrics:         metricsOrNop(metrics),
		logger:          logger,
		now:             time.Now,
	}
}

func (s *AgendaService) Agenda(ctx context.Context, query AgendaQuery) (Agenda, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AgendaService.Agenda")
	defer span.End()

	window, err := s.window(query)
	if err != nil {
		return Agenda{}, err
	}

	fixtures, catalog := s.load(ctx)
	agenda, report := BuildAgenda(fixtures, window, catalog, query.Competition)
	for _, name := range report.UnknownCompetitions {
		s.metrics.IncDataQualityWarning(warnUnknownCompetition)
		s.logger.WarnContext(ctx, "competition has no priority, ranking it last",
			"kind", warnUnknownCompetition,
			"competition", name,
			"priority", competition.UnknownPriority,
		)
	}
	if report.InvalidDates > 0 {
		s.metrics.IncDataQualityWarning(warnInvalidRecord)
		s.logger.WarnContext(ctx, "fixtures with invalid dates were ignored",
			"kind", warnInvalidRecord,
			"count", report.InvalidDates,
		)
	}
	return agenda, nil
}

// Competitions lists the active catalog entries by priority.
func (s *AgendaService) Competitions(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AgendaService.Competitions")
	defer span.End()

	catalog, err := s.competitionRepo.LoadCatalog(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "competition catalog unavailable", "error", err)
		return []competition.Competition{}, nil
	}
	return catalog.Competitions(), nil
}

// Unprioritized lists fixture competitions missing from the catalog.
func (s *AgendaService) Unprioritized(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AgendaService.Unprioritized")
	defer span.End()

	fixtures, catalog := s.load(ctx)
	return UnprioritizedCompetitions(fixtures, catalog), nil
}

func (s *AgendaService) window(query AgendaQuery) (Window, error) {
	days := query.Days
	if days == 0 {
		days = DefaultAgendaDays
	}
	if days > MaxAgendaDays {
		return Window{}, fmt.Errorf("%w: days must be at most %d", ErrInvalidInput, MaxAgendaDays)
	}

	from := timeutil.Today(s.now(), s.location)
	if raw := strings.TrimSpace(query.From); raw != "" {
		parsed, err := timeutil.ParseDate(raw)
		if err != nil {
			return Window{}, fmt.Errorf("%w: from must be YYYY-MM-DD", ErrInvalidInput)
		}
		from = parsed
	}
	return Window{From: from, Days: days}, nil
}

// load reads fixtures and the catalog concurrently. A failed read degrades to
// an empty dataset.
func (s *AgendaService) load(ctx context.Context) ([]fixture.Fixture, competition.Catalog) {
	var (
		fixtures   []fixture.Fixture
		catalog    competition.Catalog
		fixtureErr error
		catalogErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		fixtures, fixtureErr = s.fixtureRepo.List(ctx)
	})
	wg.Go(func() {
		catalog, catalogErr = s.competitionRepo.LoadCatalog(ctx)
	})
	wg.Wait()

	if fixtureErr != nil {
		s.logger.WarnContext(ctx, "fixtures file unavailable", "error", fixtureErr)
		fixtures = nil
	}
	if catalogErr != nil {
		s.logger.WarnContext(ctx, "competition catalog unavailable, every competition ranks last", "error", catalogErr)
		catalog = competition.Catalog{}
	}
	return fixtures, catalog
}
