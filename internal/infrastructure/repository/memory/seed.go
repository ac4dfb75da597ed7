package memory

import (
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
)

const (
	LeagueIDNBA = "nba"
	LeagueIDNFL = "nfl"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:            LeagueIDNBA,
			Name:          "NBA",
			Sport:         "basketball",
			Provider:      "balldontlie",
			Ranking:       league.RankByConference,
			LookbackDays:  2,
			PageDelay:     time.Second,
			GamesFile:     "importacoes-manuais/nba/jogos-nba.json",
			RosterFile:    "importacoes-manuais/nba/times.json",
			StandingsFile: "importacoes-manuais/nba/tabela.json",
		},
		{
			ID:            LeagueIDNFL,
			Name:          "NFL",
			Sport:         "american_football",
			Provider:      "balldontlie",
			Ranking:       league.RankByDivision,
			AllowsTies:    true,
			LookbackDays:  2,
			IncludeToday:  true,
			TotalRounds:   18,
			PageDelay:     13 * time.Second,
			GamesFile:     "importacoes-manuais/nfl/jogos-nfl.json",
			RosterFile:    "importacoes-manuais/nfl/times.json",
			StandingsFile: "importacoes-manuais/nfl/tabela.json",
		},
	}
}

func SeedRosters() map[string][]team.Entry {
	return map[string][]team.Entry{
		LeagueIDNBA: {
			{ID: "2", Name: "Boston Celtics", Conference: "East"},
			{ID: "20", Name: "New York Knicks", Conference: "East"},
			{ID: "14", Name: "Los Angeles Lakers", Conference: "West"},
			{ID: "10", Name: "Golden State Warriors", Conference: "West"},
		},
		LeagueIDNFL: {
			{ID: "12", Name: "Kansas City Chiefs", Conference: "AFC", Division: "West"},
			{ID: "13", Name: "Las Vegas Raiders", Conference: "AFC", Division: "West"},
			{ID: "24", Name: "Philadelphia Eagles", Conference: "NFC", Division: "East"},
			{ID: "9", Name: "Dallas Cowboys", Conference: "NFC", Division: "East"},
		},
	}
}

func SeedGames() map[string][]game.Record {
	finished := func(r game.Record, home, away int) game.Record {
		r.Finish(home, away)
		return r
	}
	round := func(v int) *int { return &v }

	return map[string][]game.Record{
		LeagueIDNBA: {
			finished(game.Record{ID: "nba-1", Date: "2025-10-21", Time: "20:30:00", HomeTeam: "Boston Celtics", AwayTeam: "New York Knicks"}, 112, 104),
			finished(game.Record{ID: "nba-2", Date: "2025-10-21", Time: "23:00:00", HomeTeam: "Golden State Warriors", AwayTeam: "Los Angeles Lakers"}, 119, 109),
			{ID: "nba-3", Date: "2025-10-23", Time: "20:00:00", HomeTeam: "New York Knicks", AwayTeam: "Los Angeles Lakers", Status: game.StatusNotStarted},
		},
		LeagueIDNFL: {
			finished(game.Record{ID: "nfl-1", Round: round(1), Date: "2025-09-04", Time: "21:20:00", HomeTeam: "Philadelphia Eagles", AwayTeam: "Dallas Cowboys"}, 24, 20),
			finished(game.Record{ID: "nfl-2", Round: round(1), Date: "2025-09-05", Time: "21:00:00", HomeTeam: "Kansas City Chiefs", AwayTeam: "Las Vegas Raiders"}, 17, 17),
			{ID: "nfl-3", Round: round(2), Date: "2025-09-14", Time: "17:00:00", HomeTeam: "Dallas Cowboys", AwayTeam: "Kansas City Chiefs", Status: game.StatusNotStarted},
		},
	}
}

func SeedCompetitions() (competition.Catalog, error) {
	return competition.NewCatalog([]competition.Competition{
		{ID: 1, Name: "Brasileirão Série A", Country: "Brasil", Type: "Liga", Priority: 1, Active: true, Flag: "🇧🇷"},
		{ID: 2, Name: "Libertadores", Country: "América do Sul", Type: "Copa", Priority: 2, Active: true, Flag: "🌎"},
		{ID: 3, Name: "Premier League", Country: "Inglaterra", Type: "Liga", Priority: 3, Active: true, Flag: "🏴"},
		{ID: 4, Name: "NBA", Country: "Estados Unidos", Type: "Liga", Priority: 4, Active: true, Flag: "🇺🇸"},
		{ID: 5, Name: "Fórmula 1", Country: "Mundial", Type: "Evento", Priority: 5, Active: true},
		{ID: 6, Name: "Copa do Nordeste", Country: "Brasil", Type: "Copa", Priority: 3, Active: false, Flag: "🇧🇷"},
	}, nil)
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{ID: "1", Date: "2025-10-18", Competition: "Brasileirão Série A", Time: "16:00", HomeTeam: "Flamengo", AwayTeam: "Palmeiras", Channels: []string{"Globo", "Premiere"}},
		{ID: "2", Date: "2025-10-18", Competition: "Premier League", Time: "08:30", HomeTeam: "Arsenal", AwayTeam: "Liverpool", Channels: []string{"ESPN"}},
		{ID: "3", Date: "2025-10-18", Competition: "Brasileirão Série A", Time: "18:30", HomeTeam: "Santos", AwayTeam: "Corinthians", Channels: []string{"Premiere"}},
		{ID: "4", Date: "2025-10-19", Competition: "Fórmula 1", Phase: "Corrida", Time: "16:00", EventName: "GP dos Estados Unidos", Channels: []string{"Band"}},
		{ID: "5", Date: "2025-10-19", Competition: "Copa Verde", Time: "20:00", HomeTeam: "Paysandu", AwayTeam: "Remo"},
		{ID: "6", Date: "2025-10-21", Competition: "NBA", Time: "20:30", HomeTeam: "Boston Celtics", AwayTeam: "New York Knicks", Channels: []string{"Prime Video"}},
	}
}
