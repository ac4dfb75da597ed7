package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riskibarqy/agenda-fc/external/balldontlie"
	"github.com/riskibarqy/agenda-fc/external/footballdata"
	"github.com/riskibarqy/agenda-fc/internal/config"
	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
	cacherepo "github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/agenda-fc/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/agenda-fc/internal/platform/cache"
	idgen "github.com/riskibarqy/agenda-fc/internal/platform/id"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/metrics"
	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

// Container holds the wired services shared by the CLI and the API.
type Container struct {
	Config   config.Config
	Logger   *logging.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Service

	Leagues   *usecase.LeagueService
	Standings *usecase.StandingsService
	Reconcile *usecase.ReconcileService
	Season    *usecase.SeasonSyncService
	Games     *usecase.GameService
	Agenda    *usecase.AgendaService
	Football  *usecase.FootballCacheService
	Refresh   *usecase.RefreshService
}

type repositories struct {
	leagues      league.Repository
	games        game.Repository
	teams        team.Repository
	standings    standing.Repository
	fixtures     fixture.Repository
	competitions competition.Repository
}

func NewContainer(cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	catalogue, err := config.LoadLeagueCatalogue(cfg.LeaguesFile)
	if err != nil {
		return nil, err
	}
	leagues, err := catalogue.DomainLeagues()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(registry)
	store := jsonfile.NewStore(cfg.DataDir)
	repos := newRepositories(cfg, store, memory.NewLeagueRepository(leagues), logger)
	location := cfg.Location()

	var (
		results usecase.ResultsProvider
		seasons usecase.SeasonProvider
	)
	if cfg.BallDontLieAPIKey != "" {
		client := balldontlie.NewClient(balldontlie.ClientConfig{
			BaseURL:      cfg.BallDontLieBaseURL,
			Token:        cfg.BallDontLieAPIKey,
			Timeout:      cfg.BallDontLieTimeout,
			MaxRetries:   cfg.BallDontLieMaxRetries,
			RequestDelay: cfg.BallDontLieRequestDelay,
			Logger:       logger,
		})
		results, seasons = client, client
	}

	var football usecase.FootballDataProvider
	if cfg.FootballDataAPIKey != "" {
		football = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:    cfg.FootballDataBaseURL,
			Token:      cfg.FootballDataAPIKey,
			Timeout:    cfg.FootballDataTimeout,
			MaxRetries: 1,
			Logger:     logger,
		})
	}

	feeds := make([]usecase.FootballFeed, 0, len(catalogue.FootballFeeds))
	for _, feed := range catalogue.FootballFeeds {
		feeds = append(feeds, usecase.FootballFeed{Slug: feed.Slug, Code: feed.Code})
	}

	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.games, repos.teams, repos.standings, metricsSvc, logger)
	reconcileSvc := usecase.NewReconcileService(repos.leagues, repos.games, results, usecase.ReconcileConfig{
		Enabled:           results != nil,
		DateToleranceDays: cfg.ReconcileDateToleranceDays,
		Location:          location,
	}, metricsSvc, logger)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Metrics:   metricsSvc,
		Leagues:   usecase.NewLeagueService(repos.leagues, repos.teams),
		Standings: standingsSvc,
		Reconcile: reconcileSvc,
		Season: usecase.NewSeasonSyncService(repos.leagues, repos.games, seasons, usecase.SeasonSyncConfig{
			Enabled:  seasons != nil,
			Location: location,
		}, metricsSvc, logger),
		Games:  usecase.NewGameService(repos.leagues, repos.games, location, logger),
		Agenda: usecase.NewAgendaService(repos.fixtures, repos.competitions, location, metricsSvc, logger),
		Football: usecase.NewFootballCacheService(football, store, usecase.FootballCacheConfig{
			Enabled:      football != nil,
			Dir:          cfg.FootballCacheDir,
			RequestDelay: cfg.FootballDataRequestDelay,
			Feeds:        feeds,
		}, metricsSvc, logger),
		Refresh: usecase.NewRefreshService(repos.leagues, reconcileSvc, standingsSvc, idgen.NewUUIDGenerator(), cfg.RefreshWorkers, metricsSvc, logger),
	}, nil
}

// newRepositories backs every port with the data directory. Reads go through
// the modification-time aware cache when enabled.
func newRepositories(cfg config.Config, store *jsonfile.Store, leagues *memory.LeagueRepository, logger *logging.Logger) repositories {
	games := filesystem.NewGameRepository(store, leagues, logger)
	teams := filesystem.NewTeamRepository(store, leagues)
	standings := filesystem.NewStandingRepository(store, leagues)
	fixtures := filesystem.NewFixtureRepository(store, cfg.FixturesFile)
	competitions := filesystem.NewCompetitionRepository(store, cfg.CompetitionsFile)

	if !cfg.CacheEnabled {
		return repositories{
			leagues:      leagues,
			games:        games,
			teams:        teams,
			standings:    standings,
			fixtures:     fixtures,
			competitions: competitions,
		}
	}

	cache := basecache.NewStore(cfg.CacheTTL)
	return repositories{
		leagues:      cacherepo.NewLeagueRepository(leagues, cache),
		games:        cacherepo.NewGameRepository(games, cache),
		teams:        cacherepo.NewTeamRepository(teams, cache),
		standings:    cacherepo.NewStandingRepository(standings, cache),
		fixtures:     cacherepo.NewFixtureRepository(fixtures, cache),
		competitions: cacherepo.NewCompetitionRepository(competitions, cache),
	}
}

func NewHTTPServer(container *Container) (*http.Server, error) {
	cfg := container.Config
	handler := httpapi.NewHandler(
		container.Agenda,
		container.Leagues,
		container.Standings,
		container.Games,
		container.Logger,
	)
	router := httpapi.NewRouter(handler, metrics.Handler(container.Registry), container.Logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
