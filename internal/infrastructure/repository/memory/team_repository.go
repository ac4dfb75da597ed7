package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/agenda-fc/internal/domain/team"
)

type TeamRepository struct {
	mu              sync.RWMutex
	rostersByLeague map[string][]team.Entry
}

func NewTeamRepository(rostersByLeague map[string][]team.Entry) *TeamRepository {
	items := make(map[string][]team.Entry, len(rostersByLeague))
	for leagueID, entries := range rostersByLeague {
		items[leagueID] = append([]team.Entry(nil), entries...)
	}
	return &TeamRepository{rostersByLeague: items}
}

func (r *TeamRepository) LoadRoster(_ context.Context, leagueID string) (team.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return team.NewRoster(r.rostersByLeague[leagueID])
}
