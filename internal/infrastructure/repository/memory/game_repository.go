package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
)

type GameRepository struct {
	mu            sync.RWMutex
	gamesByLeague map[string][]game.Record
	saves         int
}

func NewGameRepository(gamesByLeague map[string][]game.Record) *GameRepository {
	items := make(map[string][]game.Record, len(gamesByLeague))
	for leagueID, records := range gamesByLeague {
		items[leagueID] = game.CloneAll(records)
	}
	return &GameRepository{gamesByLeague: items}
}

func (r *GameRepository) Load(_ context.Context, leagueID string) ([]game.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return game.CloneAll(r.gamesByLeague[leagueID]), nil
}

func (r *GameRepository) Save(_ context.Context, leagueID string, records []game.Record) (bool, error) {
	return r.write(leagueID, records), nil
}

func (r *GameRepository) Replace(_ context.Context, leagueID string, records []game.Record) (bool, error) {
	return r.write(leagueID, records), nil
}

func (r *GameRepository) write(leagueID string, records []game.Record) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gamesByLeague[leagueID] = game.CloneAll(records)
	r.saves++
	return true
}

// Saves counts Save and Replace calls.
func (r *GameRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.saves
}
