package standing

// Standing is one team's derived record within a league.
type Standing struct {
	TeamID     string
	TeamName   string
	Logo       string
	Conference string
	Division   string
	Wins       int
	Losses     int
	Ties       int
	Percentage string
	Streak     string
	Rank       int
}

func (s Standing) GamesPlayed() int {
	return s.Wins + s.Losses + s.Ties
}
