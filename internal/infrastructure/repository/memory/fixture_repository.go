package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
)

type FixtureRepository struct {
	mu    sync.RWMutex
	items []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	return &FixtureRepository{items: cloneFixtures(fixtures)}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneFixtures(r.items), nil
}

func (r *FixtureRepository) Replace(items []fixture.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = cloneFixtures(items)
}

func cloneFixtures(items []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		item.Channels = append([]string(nil), item.Channels...)
		out = append(out, item)
	}
	return out
}
