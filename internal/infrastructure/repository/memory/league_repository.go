package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
)

// LeagueRepository is the fixed league registry. Ids are matched
// case-insensitively and the first definition of an id wins.
type LeagueRepository struct {
	leagues []league.League
	index   map[string]int
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	repo := &LeagueRepository{
		leagues: make([]league.League, 0, len(leagues)),
		index:   make(map[string]int, len(leagues)),
	}
	for _, l := range leagues {
		key := leagueKey(l.ID)
		if key == "" {
			continue
		}
		if _, exists := repo.index[key]; exists {
			continue
		}
		repo.index[key] = len(repo.leagues)
		repo.leagues = append(repo.leagues, l)
	}
	return repo
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	out := make([]league.League, len(r.leagues))
	copy(out, r.leagues)
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	pos, ok := r.index[leagueKey(leagueID)]
	if !ok {
		return league.League{}, false, nil
	}
	return r.leagues[pos], true, nil
}

func leagueKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
