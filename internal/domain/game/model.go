package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusFinished   Status = "Finished"
)

var ErrInvalidRecord = errors.New("invalid game record")

// Record is the stored state of one scheduled or played game.
type Record struct {
	ID        string
	Round     *int
	Date      string
	Time      string
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	Status    Status
}

// Validate enforces two distinct teams, a calendar date, and scores present
// exactly when the game is finished.
func (r Record) Validate() error {
	if strings.TrimSpace(r.HomeTeam) == "" || strings.TrimSpace(r.AwayTeam) == "" {
		return fmt.Errorf("%w: id=%s: both team names are required", ErrInvalidRecord, r.ID)
	}
	if strings.TrimSpace(r.HomeTeam) == strings.TrimSpace(r.AwayTeam) {
		return fmt.Errorf("%w: id=%s: %q cannot play itself", ErrInvalidRecord, r.ID, r.HomeTeam)
	}
	if _, err := timeutil.ParseDate(r.Date); err != nil {
		return fmt.Errorf("%w: id=%s: date %q: %v", ErrInvalidRecord, r.ID, r.Date, err)
	}
	switch r.Status {
	case StatusFinished:
		if r.HomeScore == nil || r.AwayScore == nil {
			return fmt.Errorf("%w: id=%s: finished game without scores", ErrInvalidRecord, r.ID)
		}
	case StatusNotStarted:
		if r.HomeScore != nil || r.AwayScore != nil {
			return fmt.Errorf("%w: id=%s: scores on a game that has not started", ErrInvalidRecord, r.ID)
		}
	default:
		return fmt.Errorf("%w: id=%s: unknown status %q", ErrInvalidRecord, r.ID, r.Status)
	}
	return nil
}

func (r Record) IsFinished() bool {
	return r.Status == StatusFinished
}

// HasTeams reports whether the record is between a and b in either order.
func (r Record) HasTeams(a, b string) bool {
	home, away := strings.TrimSpace(r.HomeTeam), strings.TrimSpace(r.AwayTeam)
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return (home == a && away == b) || (home == b && away == a)
}

func (r Record) Involves(team string) bool {
	team = strings.TrimSpace(team)
	return strings.TrimSpace(r.HomeTeam) == team || strings.TrimSpace(r.AwayTeam) == team
}

// Finish stores the final score and marks the record finished.
func (r *Record) Finish(homeScore, awayScore int) {
	r.HomeScore = &homeScore
	r.AwayScore = &awayScore
	r.Status = StatusFinished
}

func (r Record) Day() (time.Time, error) {
	return timeutil.ParseDate(r.Date)
}

// Clone returns a deep copy so callers can mutate score pointers safely.
func (r Record) Clone() Record {
	out := r
	if r.Round != nil {
		v := *r.Round
		out.Round = &v
	}
	if r.HomeScore != nil {
		v := *r.HomeScore
		out.HomeScore = &v
	}
	if r.AwayScore != nil {
		v := *r.AwayScore
		out.AwayScore = &v
	}
	return out
}

func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
