package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownLeague = errors.New("unknown league")

type RankingMode string

const (
	RankByConference RankingMode = "conference"
	RankByDivision   RankingMode = "division"
)

// League describes one tracked league: where its files live, how it is ranked
// and how its results are fetched.
type League struct {
	ID            string
	Name          string
	Sport         string
	Provider      string
	Ranking       RankingMode
	AllowsTies    bool
	LookbackDays  int
	IncludeToday  bool
	TotalRounds   int
	PageDelay     time.Duration
	GamesFile     string
	RosterFile    string
	StandingsFile string
}

func (l League) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("league id is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league %s: name is required", l.ID)
	}
	if l.Ranking != RankByConference && l.Ranking != RankByDivision {
		return fmt.Errorf("league %s: unknown ranking mode %q", l.ID, l.Ranking)
	}
	if l.LookbackDays < 0 {
		return fmt.Errorf("league %s: lookback days must be >= 0", l.ID)
	}
	if l.GamesFile == "" || l.RosterFile == "" || l.StandingsFile == "" {
		return fmt.Errorf("league %s: games, roster and standings files are required", l.ID)
	}
	return nil
}

func (l League) RanksByDivision() bool {
	return l.Ranking == RankByDivision
}
