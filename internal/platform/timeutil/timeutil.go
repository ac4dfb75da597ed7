package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in every data file (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ClockLayout is the kickoff time format stored on game records.
const ClockLayout = "15:04:05"

// DefaultZone is the zone used to decide which calendar day "today" is.
const DefaultZone = "America/Sao_Paulo"

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LoadZone resolves an IANA zone name, defaulting to DefaultZone.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}

// Today returns the calendar date of now in loc, at midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Lookback lists the dates before today, oldest first, optionally ending with today.
func Lookback(today time.Time, days int, includeToday bool) []string {
	out := make([]string, 0, days+1)
	for i := days; i >= 1; i-- {
		out = append(out, FormatDate(today.AddDate(0, 0, -i)))
	}
	if includeToday {
		out = append(out, FormatDate(today))
	}
	return out
}

// LocalKickoff converts an instant to the local calendar date and an HH:MM:00 clock.
func LocalKickoff(instant time.Time, loc *time.Location) (string, string) {
	if loc == nil {
		loc = time.UTC
	}
	local := instant.In(loc)
	return FormatDate(local), fmt.Sprintf("%02d:%02d:00", local.Hour(), local.Minute())
}
