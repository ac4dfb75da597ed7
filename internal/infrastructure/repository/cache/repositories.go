package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
	basecache "github.com/riskibarqy/agenda-fc/internal/platform/cache"
)

// The versioned sources report the modification time of their backing file.
// A cached value is dropped as soon as that time moves.

type VersionedGames interface {
	game.Repository
	Version(ctx context.Context, leagueID string) (time.Time, error)
}

type VersionedStandings interface {
	standing.Repository
	Version(ctx context.Context, leagueID string) (time.Time, error)
}

type VersionedFixtures interface {
	fixture.Repository
	Version(ctx context.Context) (time.Time, error)
}

type VersionedCatalog interface {
	competition.Repository
	Version(ctx context.Context) (time.Time, error)
}

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", time.Time{}, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, time.Time{}, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

type GameRepository struct {
	next  VersionedGames
	cache *basecache.Store
}

func NewGameRepository(next VersionedGames, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) Load(ctx context.Context, leagueID string) ([]game.Record, error) {
	version, err := r.next.Version(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	key := "game:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, version, func(ctx context.Context) (any, error) {
		return r.next.Load(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Record)
	return game.CloneAll(items), nil
}

func (r *GameRepository) Save(ctx context.Context, leagueID string, records []game.Record) (bool, error) {
	changed, err := r.next.Save(ctx, leagueID, records)
	r.cache.Delete("game:list:" + leagueID)
	return changed, err
}

func (r *GameRepository) Replace(ctx context.Context, leagueID string, records []game.Record) (bool, error) {
	changed, err := r.next.Replace(ctx, leagueID, records)
	r.cache.Delete("game:list:" + leagueID)
	return changed, err
}

type StandingRepository struct {
	next  VersionedStandings
	cache *basecache.Store
}

func NewStandingRepository(next VersionedStandings, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) Load(ctx context.Context, leagueID string) ([]standing.Standing, error) {
	version, err := r.next.Version(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	key := "standing:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, version, func(ctx context.Context) (any, error) {
		return r.next.Load(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]standing.Standing)
	return append([]standing.Standing(nil), items...), nil
}

func (r *StandingRepository) Replace(ctx context.Context, leagueID string, rows []standing.Standing) (bool, error) {
	changed, err := r.next.Replace(ctx, leagueID, rows)
	r.cache.Delete("standing:list:" + leagueID)
	return changed, err
}

// TeamRepository caches rosters for the TTL only; rosters change by hand.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) LoadRoster(ctx context.Context, leagueID string) (team.Roster, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:roster:"+leagueID, time.Time{}, func(ctx context.Context) (any, error) {
		return r.next.LoadRoster(ctx, leagueID)
	})
	if err != nil {
		return team.Roster{}, err
	}

	roster, _ := v.(team.Roster)
	return roster, nil
}

type FixtureRepository struct {
	next  VersionedFixtures
	cache *basecache.Store
}

func NewFixtureRepository(next VersionedFixtures, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	version, err := r.next.Version(ctx)
	if err != nil {
		return nil, err
	}

	v, err := r.cache.GetOrLoad(ctx, "fixture:list", version, func(ctx context.Context) (any, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

type CompetitionRepository struct {
	next  VersionedCatalog
	cache *basecache.Store
}

func NewCompetitionRepository(next VersionedCatalog, cache *basecache.Store) *CompetitionRepository {
	return &CompetitionRepository{next: next, cache: cache}
}

// Catalog is immutable once built, so the cached value is shared.
func (r *CompetitionRepository) LoadCatalog(ctx context.Context) (competition.Catalog, error) {
	version, err := r.next.Version(ctx)
	if err != nil {
		return competition.Catalog{}, err
	}

	v, err := r.cache.GetOrLoad(ctx, "competition:catalog", version, func(ctx context.Context) (any, error) {
		return r.next.LoadCatalog(ctx)
	})
	if err != nil {
		return competition.Catalog{}, err
	}

	catalog, _ := v.(competition.Catalog)
	return catalog, nil
}
