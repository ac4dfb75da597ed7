package filesystem

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
)

type fixturesDocument struct {
	Fixtures []fixtureDTO `json:"jogosSemana"`
}

type fixtureDTO struct {
	ID              flexString `json:"id"`
	Data            string     `json:"data"`
	Campeonato      string     `json:"campeonato"`
	Time1           string     `json:"time1"`
	Time2           string     `json:"time2"`
	Hora            string     `json:"hora"`
	Canal           string     `json:"canal"`
	Divisao         string     `json:"divisao"`
	Fase            string     `json:"fase"`
	EventoNome      string     `json:"evento_nome"`
	EventoDescricao string     `json:"evento_descricao"`
}

// FixtureRepository reads the curated weekly fixture file.
type FixtureRepository struct {
	store *jsonfile.Store
	name  string
}

func NewFixtureRepository(store *jsonfile.Store, name string) *FixtureRepository {
	return &FixtureRepository{store: store, name: name}
}

func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	var doc fixturesDocument
	if err := r.store.Read(r.name, &doc); err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(doc.Fixtures))
	for _, dto := range doc.Fixtures {
		out = append(out, fixture.Fixture{
			ID:               string(dto.ID),
			Date:             strings.TrimSpace(dto.Data),
			Competition:      strings.TrimSpace(dto.Campeonato),
			Division:         strings.TrimSpace(dto.Divisao),
			Phase:            strings.TrimSpace(dto.Fase),
			HomeTeam:         strings.TrimSpace(dto.Time1),
			AwayTeam:         strings.TrimSpace(dto.Time2),
			EventName:        strings.TrimSpace(dto.EventoNome),
			EventDescription: strings.TrimSpace(dto.EventoDescricao),
			Time:             strings.TrimSpace(dto.Hora),
			Channels:         fixture.SplitChannels(dto.Canal),
		})
	}
	return out, nil
}

func (r *FixtureRepository) Version(_ context.Context) (time.Time, error) {
	return r.store.ModTime(r.name)
}
