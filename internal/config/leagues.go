package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"gopkg.in/yaml.v3"
)

// LeagueDefinition is one entry of the leagues file.
type LeagueDefinition struct {
	ID            string        `yaml:"id" validate:"required,lowercase,max=32"`
	Name          string        `yaml:"name" validate:"required"`
	Sport         string        `yaml:"sport" validate:"required,oneof=basketball american_football"`
	Provider      string        `yaml:"provider" validate:"required,oneof=balldontlie"`
	Ranking       string        `yaml:"ranking" validate:"required,oneof=conference division"`
	AllowsTies    bool          `yaml:"allows_ties"`
	LookbackDays  int           `yaml:"lookback_days" validate:"gte=0,lte=14"`
	IncludeToday  bool          `yaml:"include_today"`
	TotalRounds   int           `yaml:"total_rounds" validate:"gte=0"`
	PageDelay     time.Duration `yaml:"page_delay" validate:"gte=0"`
	GamesFile     string        `yaml:"games_file" validate:"required"`
	RosterFile    string        `yaml:"roster_file" validate:"required"`
	StandingsFile string        `yaml:"standings_file" validate:"required"`
}

// FootballFeed is one football-data.org competition mirrored into the cache directory.
type FootballFeed struct {
	Slug string `yaml:"slug" validate:"required"`
	Code string `yaml:"code" validate:"required,uppercase"`
}

type LeagueCatalogue struct {
	Leagues       []LeagueDefinition `yaml:"leagues" validate:"required,min=1,unique=ID,dive"`
	FootballFeeds []FootballFeed     `yaml:"football_feeds" validate:"unique=Code,dive"`
}

func DefaultLeagueCatalogue() LeagueCatalogue {
	return LeagueCatalogue{
		Leagues: []LeagueDefinition{
			{
				ID:            "nba",
				Name:          "NBA",
				Sport:         "basketball",
				Provider:      "balldontlie",
				Ranking:       string(league.RankByConference),
				LookbackDays:  2,
				PageDelay:     time.Second,
				GamesFile:     "importacoes-manuais/nba/jogos-nba.json",
				RosterFile:    "importacoes-manuais/nba/times.json",
				StandingsFile: "importacoes-manuais/nba/tabela.json",
			},
			{
				ID:            "nfl",
				Name:          "NFL",
				Sport:         "american_football",
				Provider:      "balldontlie",
				Ranking:       string(league.RankByDivision),
				AllowsTies:    true,
				LookbackDays:  2,
				IncludeToday:  true,
				TotalRounds:   18,
				PageDelay:     13 * time.Second,
				GamesFile:     "importacoes-manuais/nfl/jogos-nfl.json",
				RosterFile:    "importacoes-manuais/nfl/times.json",
				StandingsFile: "importacoes-manuais/nfl/tabela.json",
			},
		},
		FootballFeeds: []FootballFeed{
			{Slug: "brasileirao", Code: "BSA"},
			{Slug: "champions-league", Code: "CL"},
			{Slug: "premier-league", Code: "PL"},
			{Slug: "la-liga", Code: "PD"},
			{Slug: "serie-a", Code: "SA"},
			{Slug: "ligue-1", Code: "FL1"},
			{Slug: "bundesliga", Code: "BL1"},
			{Slug: "primeira-liga", Code: "PPL"},
		},
	}
}

// LoadLeagueCatalogue reads path, or returns the built-in defaults when path is empty.
func LoadLeagueCatalogue(path string) (LeagueCatalogue, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		catalogue := DefaultLeagueCatalogue()
		return catalogue, catalogue.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return LeagueCatalogue{}, fmt.Errorf("read leagues file: %w", err)
	}
	return ParseLeagueCatalogue(raw)
}

func ParseLeagueCatalogue(raw []byte) (LeagueCatalogue, error) {
	var catalogue LeagueCatalogue
	if err := yaml.Unmarshal(raw, &catalogue); err != nil {
		return LeagueCatalogue{}, fmt.Errorf("decode leagues file: %w", err)
	}
	for i := range catalogue.Leagues {
		catalogue.Leagues[i].ID = strings.TrimSpace(catalogue.Leagues[i].ID)
	}
	if err := catalogue.Validate(); err != nil {
		return LeagueCatalogue{}, err
	}
	return catalogue, nil
}

func (c LeagueCatalogue) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid leagues file: %w", err)
	}
	return nil
}

// DomainLeagues converts the definitions into domain leagues.
func (c LeagueCatalogue) DomainLeagues() ([]league.League, error) {
	out := make([]league.League, 0, len(c.Leagues))
	for _, def := range c.Leagues {
		l := league.League{
			ID:            def.ID,
			Name:          def.Name,
			Sport:         def.Sport,
			Provider:      def.Provider,
			Ranking:       league.RankingMode(def.Ranking),
			AllowsTies:    def.AllowsTies,
			LookbackDays:  def.LookbackDays,
			IncludeToday:  def.IncludeToday,
			TotalRounds:   def.TotalRounds,
			PageDelay:     def.PageDelay,
			GamesFile:     def.GamesFile,
			RosterFile:    def.RosterFile,
			StandingsFile: def.StandingsFile,
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
