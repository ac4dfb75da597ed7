package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
)

type CompetitionRepository struct {
	mu      sync.RWMutex
	catalog competition.Catalog
}

func NewCompetitionRepository(catalog competition.Catalog) *CompetitionRepository {
	return &CompetitionRepository{catalog: catalog}
}

func (r *CompetitionRepository) LoadCatalog(_ context.Context) (competition.Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.catalog, nil
}
