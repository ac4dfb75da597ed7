package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
)

type StandingRepository struct {
	mu       sync.RWMutex
	byLeague map[string][]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{byLeague: make(map[string][]standing.Standing)}
}

func (r *StandingRepository) Load(_ context.Context, leagueID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]standing.Standing(nil), r.byLeague[leagueID]...), nil
}

func (r *StandingRepository) Replace(_ context.Context, leagueID string, rows []standing.Standing) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLeague[leagueID] = append([]standing.Standing(nil), rows...)
	return true, nil
}
