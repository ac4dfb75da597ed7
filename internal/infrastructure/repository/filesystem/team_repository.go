package filesystem

import (
	"context"
	"fmt"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
)

type rosterDocument struct {
	Teams []teamDTO `json:"teams"`
}

type teamDTO struct {
	TeamID     flexString `json:"teamId"`
	TeamName   string     `json:"teamName"`
	TeamBadge  string     `json:"teamBadge"`
	Conference string     `json:"conference"`
	Division   string     `json:"division"`
}

type TeamRepository struct {
	store   *jsonfile.Store
	leagues league.Repository
}

func NewTeamRepository(store *jsonfile.Store, leagues league.Repository) *TeamRepository {
	return &TeamRepository{store: store, leagues: leagues}
}

func (r *TeamRepository) LoadRoster(ctx context.Context, leagueID string) (team.Roster, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return team.Roster{}, err
	}

	var doc rosterDocument
	if err := r.store.Read(l.RosterFile, &doc); err != nil {
		return team.Roster{}, err
	}

	entries := make([]team.Entry, 0, len(doc.Teams))
	for _, dto := range doc.Teams {
		entries = append(entries, team.Entry{
			ID:         string(dto.TeamID),
			Name:       dto.TeamName,
			Logo:       dto.TeamBadge,
			Conference: dto.Conference,
			Division:   dto.Division,
		})
	}
	roster, err := team.NewRoster(entries)
	if err != nil {
		return team.Roster{}, fmt.Errorf("roster league_id=%s: %w", leagueID, err)
	}
	return roster, nil
}
