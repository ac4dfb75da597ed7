package filesystem

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
)

type competitionsDocument struct {
	Competitions []competitionDTO            `json:"competicoes"`
	Groups       map[string]priorityGroupDTO `json:"grupos_prioridade"`
}

type competitionDTO struct {
	ID            int    `json:"id"`
	Nome          string `json:"nome"`
	Pais          string `json:"pais"`
	Tipo          string `json:"tipo"`
	Descricao     string `json:"descricao"`
	Prioridade    int    `json:"prioridade"`
	Ativo         bool   `json:"ativo"`
	BandeiraEmoji string `json:"bandeiraEmoji"`
}

type priorityGroupDTO struct {
	Nome      string `json:"nome"`
	Cor       string `json:"cor"`
	Descricao string `json:"descricao"`
}

// CompetitionRepository loads the unified competition catalog.
type CompetitionRepository struct {
	store *jsonfile.Store
	name  string
}

func NewCompetitionRepository(store *jsonfile.Store, name string) *CompetitionRepository {
	return &CompetitionRepository{store: store, name: name}
}

func (r *CompetitionRepository) LoadCatalog(_ context.Context) (competition.Catalog, error) {
	var doc competitionsDocument
	if err := r.store.Read(r.name, &doc); err != nil {
		return competition.Catalog{}, err
	}

	items := make([]competition.Competition, 0, len(doc.Competitions))
	for _, dto := range doc.Competitions {
		items = append(items, competition.Competition{
			ID:          dto.ID,
			Name:        dto.Nome,
			Country:     dto.Pais,
			Type:        dto.Tipo,
			Description: dto.Descricao,
			Priority:    dto.Prioridade,
			Active:      dto.Ativo,
			Flag:        dto.BandeiraEmoji,
		})
	}

	groups := make(map[int]competition.PriorityGroup, len(doc.Groups))
	for key, dto := range doc.Groups {
		priority, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return competition.Catalog{}, fmt.Errorf("%w: priority group key %q", competition.ErrInvalidCatalog, key)
		}
		groups[priority] = competition.PriorityGroup{Name: dto.Nome, Color: dto.Cor, Description: dto.Descricao}
	}

	catalog, err := competition.NewCatalog(items, groups)
	if err != nil {
		return competition.Catalog{}, fmt.Errorf("load %s: %w", r.name, err)
	}
	return catalog, nil
}

func (r *CompetitionRepository) Version(_ context.Context) (time.Time, error) {
	return r.store.ModTime(r.name)
}
