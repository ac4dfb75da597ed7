package balldontlie

import (
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

const statusFinal = "Final"

type gamesEnvelope struct {
	Data []gamePayload `json:"data"`
	Meta pageMeta      `json:"meta"`
}

type pageMeta struct {
	NextCursor *int64 `json:"next_cursor"`
	PerPage    int    `json:"per_page"`
}

type teamPayload struct {
	ID           int64  `json:"id"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// gamePayload covers both /v1/games and /nfl/v1/games. NBA sends a plain
// calendar date plus datetime; NFL sends the kickoff timestamp in date.
type gamePayload struct {
	ID               int64       `json:"id"`
	Date             string      `json:"date"`
	Datetime         string      `json:"datetime"`
	Season           int         `json:"season"`
	Week             int         `json:"week"`
	Status           string      `json:"status"`
	HomeTeam         teamPayload `json:"home_team"`
	VisitorTeam      teamPayload `json:"visitor_team"`
	HomeTeamScore    *int        `json:"home_team_score"`
	VisitorTeamScore *int        `json:"visitor_team_score"`
}

func (g gamePayload) toExternal() usecase.ExternalGame {
	out := usecase.ExternalGame{
		ExternalID: strconv.FormatInt(g.ID, 10),
		Season:     g.Season,
		Week:       g.Week,
		HomeTeam:   teamName(g.HomeTeam),
		AwayTeam:   teamName(g.VisitorTeam),
		Status:     strings.TrimSpace(g.Status),
	}

	date := strings.TrimSpace(g.Date)
	if kickoff, ok := parseTimestamp(g.Datetime); ok {
		out.KickoffAt = kickoff
	} else if kickoff, ok := parseTimestamp(date); ok {
		out.KickoffAt = kickoff
	}
	switch {
	case isCalendarDate(date):
		out.Date = date
	case !out.KickoffAt.IsZero():
		out.Date = out.KickoffAt.UTC().Format(time.DateOnly)
	case len(date) >= len(time.DateOnly):
		out.Date = date[:len(time.DateOnly)]
	}

	if g.HomeTeamScore != nil {
		out.HomeScore = *g.HomeTeamScore
	}
	if g.VisitorTeamScore != nil {
		out.AwayScore = *g.VisitorTeamScore
	}
	out.Final = strings.EqualFold(out.Status, statusFinal) && g.HomeTeamScore != nil && g.VisitorTeamScore != nil
	return out
}

func teamName(t teamPayload) string {
	if name := strings.TrimSpace(t.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(t.Name)
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func isCalendarDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}
