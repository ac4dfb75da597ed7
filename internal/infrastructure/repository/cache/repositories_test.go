package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/agenda-fc/internal/platform/cache"
)

type countingGames struct {
	*memory.GameRepository
	mu      sync.Mutex
	loads   int
	version time.Time
}

func (c *countingGames) Load(ctx context.Context, leagueID string) ([]game.Record, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return c.GameRepository.Load(ctx, leagueID)
}

func (c *countingGames) Version(context.Context, string) (time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version, nil
}

func (c *countingGames) bump() {
	c.mu.Lock()
	c.version = c.version.Add(time.Second)
	c.mu.Unlock()
}

func TestGameRepository_ServesCachedUntilVersionMoves(t *testing.T) {
	t.Parallel()

	source := &countingGames{GameRepository: memory.NewGameRepository(memory.SeedGames()), version: time.Unix(100, 0)}
	repo := NewGameRepository(source, basecache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	_, err = repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	assert.Equal(t, 1, source.loads)

	*first[0].HomeScore = 1
	again, err := repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	assert.Equal(t, 112, *again[0].HomeScore, "callers get copies")

	source.bump()
	_, err = repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	assert.Equal(t, 2, source.loads)
}

func TestGameRepository_SaveInvalidates(t *testing.T) {
	t.Parallel()

	source := &countingGames{GameRepository: memory.NewGameRepository(memory.SeedGames())}
	repo := NewGameRepository(source, basecache.NewStore(time.Minute))
	ctx := context.Background()

	records, err := repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	_, err = repo.Save(ctx, memory.LeagueIDNBA, records[:1])
	require.NoError(t, err)

	reloaded, err := repo.Load(ctx, memory.LeagueIDNBA)
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
	assert.Equal(t, 2, source.loads)
}

type staticFixtures struct {
	*memory.FixtureRepository
	version time.Time
}

func (s staticFixtures) Version(context.Context) (time.Time, error) {
	return s.version, nil
}

func TestFixtureRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := NewFixtureRepository(staticFixtures{FixtureRepository: memory.NewFixtureRepository(memory.SeedFixtures())}, basecache.NewStore(0))
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	items[0] = fixture.Fixture{}

	again, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", again[0].ID)
}

func TestLeagueRepository_CachesLookups(t *testing.T) {
	t.Parallel()

	repo := NewLeagueRepository(memory.NewLeagueRepository(memory.SeedLeagues()), basecache.NewStore(time.Minute))
	l, ok, err := repo.GetByID(context.Background(), memory.LeagueIDNFL)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, l.AllowsTies)

	_, ok, err = repo.GetByID(context.Background(), "mlb")
	require.NoError(t, err)
	assert.False(t, ok)
}
