package filesystem

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
)

type standingsDocument struct {
	Standings []standingDTO `json:"standings"`
}

// standingDTO keeps numeric fields as strings, which is how the pages read them.
type standingDTO struct {
	TeamID        flexString `json:"teamId"`
	TeamName      string     `json:"teamName"`
	TeamBadge     string     `json:"teamBadge"`
	Rank          flexInt    `json:"rank"`
	Conference    string     `json:"conference"`
	Division      string     `json:"division,omitempty"`
	IntWin        flexInt    `json:"intWin"`
	IntLoss       flexInt    `json:"intLoss"`
	IntTie        *flexInt   `json:"intTie,omitempty"`
	StrPercentage string     `json:"strPercentage"`
	StrStreak     string     `json:"strStreak"`
}

type StandingRepository struct {
	store   *jsonfile.Store
	leagues league.Repository
}

func NewStandingRepository(store *jsonfile.Store, leagues league.Repository) *StandingRepository {
	return &StandingRepository{store: store, leagues: leagues}
}

func (r *StandingRepository) Load(ctx context.Context, leagueID string) ([]standing.Standing, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return nil, err
	}

	var doc standingsDocument
	if err := r.store.Read(l.StandingsFile, &doc); err != nil {
		return nil, err
	}

	out := make([]standing.Standing, 0, len(doc.Standings))
	for _, dto := range doc.Standings {
		row := standing.Standing{
			TeamID:     string(dto.TeamID),
			TeamName:   dto.TeamName,
			Logo:       dto.TeamBadge,
			Conference: dto.Conference,
			Division:   dto.Division,
			Wins:       dto.IntWin.Int(),
			Losses:     dto.IntLoss.Int(),
			Percentage: dto.StrPercentage,
			Streak:     dto.StrStreak,
			Rank:       dto.Rank.Int(),
		}
		if dto.IntTie != nil {
			row.Ties = dto.IntTie.Int()
		}
		out = append(out, row)
	}
	return out, nil
}

// Replace rewrites the standings file. Ties are written only for leagues that allow them.
func (r *StandingRepository) Replace(ctx context.Context, leagueID string, rows []standing.Standing) (bool, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return false, err
	}

	doc := standingsDocument{Standings: make([]standingDTO, 0, len(rows))}
	for _, row := range rows {
		dto := standingDTO{
			TeamID:        flexString(row.TeamID),
			TeamName:      row.TeamName,
			TeamBadge:     row.Logo,
			Rank:          intField(row.Rank),
			Conference:    row.Conference,
			Division:      row.Division,
			IntWin:        intField(row.Wins),
			IntLoss:       intField(row.Losses),
			StrPercentage: row.Percentage,
			StrStreak:     row.Streak,
		}
		if l.AllowsTies {
			ties := intField(row.Ties)
			dto.IntTie = &ties
		}
		doc.Standings = append(doc.Standings, dto)
	}

	changed, err := r.store.Write(l.StandingsFile, doc)
	if err != nil {
		return false, fmt.Errorf("replace standings league_id=%s: %w", leagueID, err)
	}
	return changed, nil
}

func (r *StandingRepository) Version(ctx context.Context, leagueID string) (time.Time, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return time.Time{}, err
	}
	return r.store.ModTime(l.StandingsFile)
}

func intField(v int) flexInt {
	return newFlexInt(&v)
}

