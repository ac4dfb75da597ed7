package fixture

import (
	"strings"
)

const formulaOne = "Fórmula 1"

// Fixture is one scheduled event shown on the agenda.
type Fixture struct {
	ID               string
	Date             string
	Competition      string
	Division         string
	Phase            string
	HomeTeam         string
	AwayTeam         string
	EventName        string
	EventDescription string
	Time             string
	Channels         []string
}

// IsEvent reports whether the fixture is a non-team event such as a race.
func (f Fixture) IsEvent() bool {
	return strings.TrimSpace(f.EventName) != "" && strings.TrimSpace(f.HomeTeam) == "" && strings.TrimSpace(f.AwayTeam) == ""
}

// Group identifies the agenda group of a fixture. Unlike GroupKey it keeps
// competition and division apart, so "Copa" + "do Brasil" and
// "Copa do Brasil" stay distinct.
type Group struct {
	Competition string
	Division    string
}

// Group returns the trimmed competition and division of the fixture.
func (f Fixture) Group() Group {
	return Group{Competition: strings.TrimSpace(f.Competition), Division: strings.TrimSpace(f.Division)}
}

// GroupKey is the competition plus the division when there is one. It is for
// display only; use Group to bucket fixtures.
func (f Fixture) GroupKey() string {
	competition := strings.TrimSpace(f.Competition)
	if division := strings.TrimSpace(f.Division); division != "" {
		return competition + " " + division
	}
	return competition
}

// DisplayName renders "competition division (phase)". The phase is omitted for Formula 1.
func (f Fixture) DisplayName() string {
	name := f.GroupKey()
	phase := strings.TrimSpace(f.Phase)
	if phase != "" && strings.TrimSpace(f.Competition) != formulaOne {
		name += " (" + phase + ")"
	}
	return name
}

// SplitChannels turns "Globo / Premiere, ge" into its channel names.
func SplitChannels(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == ',' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// JoinChannels is the inverse of SplitChannels.
func JoinChannels(channels []string) string {
	return strings.Join(channels, " / ")
}
