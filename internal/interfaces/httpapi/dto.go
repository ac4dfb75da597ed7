package httpapi

import (
	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sport       string `json:"sport"`
	Ranking     string `json:"ranking"`
	AllowsTies  bool   `json:"allowsTies"`
	TotalRounds int    `json:"totalRounds,omitempty"`
}

type teamDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Logo       string `json:"logo,omitempty"`
	Conference string `json:"conference,omitempty"`
	Division   string `json:"division,omitempty"`
}

type StandingDTO struct {
	Rank       int    `json:"rank"`
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	Logo       string `json:"logo,omitempty"`
	Conference string `json:"conference,omitempty"`
	Division   string `json:"division,omitempty"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	Ties       *int   `json:"ties,omitempty"`
	Played     int    `json:"played"`
	Percentage string `json:"percentage"`
	Streak     string `json:"streak"`
}

type StandingGroupDTO struct {
	Name      string        `json:"name"`
	Standings []StandingDTO `json:"standings"`
}

type StandingsResponse struct {
	League leagueDTO          `json:"league"`
	Groups []StandingGroupDTO `json:"groups"`
}

type GameDTO struct {
	ID        string `json:"id,omitempty"`
	Round     *int   `json:"round,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time,omitempty"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	Status    string `json:"status"`
}

type GamesResponse struct {
	LeagueID     string    `json:"leagueId"`
	Date         string    `json:"date,omitempty"`
	Round        *int      `json:"round,omitempty"`
	CurrentRound *int      `json:"currentRound,omitempty"`
	Games        []GameDTO `json:"games"`
}

type FixtureDTO struct {
	ID               string   `json:"id,omitempty"`
	Date             string   `json:"date"`
	Time             string   `json:"time,omitempty"`
	Competition      string   `json:"competition"`
	Division         string   `json:"division,omitempty"`
	Phase            string   `json:"phase,omitempty"`
	HomeTeam         string   `json:"homeTeam,omitempty"`
	AwayTeam         string   `json:"awayTeam,omitempty"`
	EventName        string   `json:"eventName,omitempty"`
	EventDescription string   `json:"eventDescription,omitempty"`
	Channels         []string `json:"channels"`
	IsEvent          bool     `json:"isEvent"`
}

type AgendaGroupDTO struct {
	Key         string       `json:"key"`
	Competition string       `json:"competition"`
	Division    string       `json:"division,omitempty"`
	DisplayName string       `json:"displayName"`
	Priority    int          `json:"priority"`
	Flag        string       `json:"flag"`
	Fixtures    []FixtureDTO `json:"fixtures"`
}

type AgendaDayDTO struct {
	Date   string           `json:"date"`
	Groups []AgendaGroupDTO `json:"groups"`
}

type AgendaResponse struct {
	Filter       string         `json:"filter"`
	Competitions []string       `json:"competitions"`
	Days         []AgendaDayDTO `json:"days"`
}

type CompetitionDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Country     string `json:"country,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Priority    int    `json:"priority"`
	Flag        string `json:"flag"`
}

type unprioritizedDTO struct {
	Competitions []string `json:"competitions"`
	Count        int      `json:"count"`
}

func toLeagueDTO(l league.League) leagueDTO {
	return leagueDTO{
		ID:          l.ID,
		Name:        l.Name,
		Sport:       l.Sport,
		Ranking:     string(l.Ranking),
		AllowsTies:  l.AllowsTies,
		TotalRounds: l.TotalRounds,
	}
}

// NewStandingsResponse groups rows by conference, or by division for leagues
// ranked by division, keeping the stored order. Ties are only reported for
// leagues that allow them.
func NewStandingsResponse(l league.League, rows []standing.Standing) StandingsResponse {
	out := StandingsResponse{League: toLeagueDTO(l), Groups: []StandingGroupDTO{}}
	index := make(map[string]int, 8)
	for _, row := range rows {
		name := row.Conference
		if l.RanksByDivision() {
			name = row.Conference + " " + row.Division
		}
		pos, ok := index[name]
		if !ok {
			pos = len(out.Groups)
			index[name] = pos
			out.Groups = append(out.Groups, StandingGroupDTO{Name: name, Standings: []StandingDTO{}})
		}

		dto := StandingDTO{
			Rank:       row.Rank,
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			Logo:       row.Logo,
			Conference: row.Conference,
			Division:   row.Division,
			Wins:       row.Wins,
			Losses:     row.Losses,
			Played:     row.GamesPlayed(),
			Percentage: row.Percentage,
			Streak:     row.Streak,
		}
		if l.AllowsTies {
			ties := row.Ties
			dto.Ties = &ties
		}
		out.Groups[pos].Standings = append(out.Groups[pos].Standings, dto)
	}
	return out
}

func NewGamesResponse(view usecase.GamesView) GamesResponse {
	out := GamesResponse{
		LeagueID:     view.LeagueID,
		Date:         view.Date,
		Round:        view.Round,
		CurrentRound: view.CurrentRound,
		Games:        make([]GameDTO, 0, len(view.Games)),
	}
	for _, record := range view.Games {
		out.Games = append(out.Games, GameDTO{
			ID:        record.ID,
			Round:     record.Round,
			Date:      record.Date,
			Time:      record.Time,
			HomeTeam:  record.HomeTeam,
			AwayTeam:  record.AwayTeam,
			HomeScore: record.HomeScore,
			AwayScore: record.AwayScore,
			Status:    string(record.Status),
		})
	}
	return out
}

func NewAgendaResponse(agenda usecase.Agenda) AgendaResponse {
	out := AgendaResponse{
		Filter:       agenda.Filter,
		Competitions: append([]string{}, agenda.Competitions...),
		Days:         make([]AgendaDayDTO, 0, len(agenda.Days)),
	}
	for _, day := range agenda.Days {
		dayDTO := AgendaDayDTO{Date: day.Date, Groups: make([]AgendaGroupDTO, 0, len(day.Groups))}
		for _, group := range day.Groups {
			groupDTO := AgendaGroupDTO{
				Key:         group.Key,
				Competition: group.Competition,
				Division:    group.Division,
				DisplayName: group.DisplayName,
				Priority:    group.Priority,
				Flag:        group.Flag,
				Fixtures:    make([]FixtureDTO, 0, len(group.Fixtures)),
			}
			for _, f := range group.Fixtures {
				groupDTO.Fixtures = append(groupDTO.Fixtures, toFixtureDTO(f))
			}
			dayDTO.Groups = append(dayDTO.Groups, groupDTO)
		}
		out.Days = append(out.Days, dayDTO)
	}
	return out
}

func toFixtureDTO(f fixture.Fixture) FixtureDTO {
	return FixtureDTO{
		ID:               f.ID,
		Date:             f.Date,
		Time:             f.Time,
		Competition:      f.Competition,
		Division:         f.Division,
		Phase:            f.Phase,
		HomeTeam:         f.HomeTeam,
		AwayTeam:         f.AwayTeam,
		EventName:        f.EventName,
		EventDescription: f.EventDescription,
		Channels:         append([]string{}, f.Channels...),
		IsEvent:          f.IsEvent(),
	}
}

func NewCompetitionsResponse(items []competition.Competition) []CompetitionDTO {
	out := make([]CompetitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, CompetitionDTO{
			ID:          item.ID,
			Name:        item.Name,
			Country:     item.Country,
			Type:        item.Type,
			Description: item.Description,
			Priority:    item.Priority,
			Flag:        item.Flag,
		})
	}
	return out
}
