package usecase

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/competition"
	"github.com/riskibarqy/agenda-fc/internal/domain/fixture"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

// FilterAll disables the competition filter. "todos" and the empty string are
// accepted as aliases.
const FilterAll = "all"

// Window selects fixtures dated in [From, From+Days). Days <= 0 leaves the end
// open and a zero From leaves the start open.
type Window struct {
	From time.Time
	Days int
}

func (w Window) contains(day time.Time) bool {
	if !w.From.IsZero() && day.Before(w.From) {
		return false
	}
	if w.Days > 0 && !day.Before(w.From.AddDate(0, 0, w.Days)) {
		return false
	}
	return true
}

type AgendaGroup struct {
	Key         string            `json:"key"`
	Competition string            `json:"competition"`
	Division    string            `json:"division,omitempty"`
	DisplayName string            `json:"display_name"`
	Priority    int               `json:"priority"`
	Flag        string            `json:"flag"`
	Fixtures    []fixture.Fixture `json:"fixtures"`
}

type AgendaDay struct {
	Date   string        `json:"date"`
	Groups []AgendaGroup `json:"groups"`
}

type Agenda struct {
	Filter       string      `json:"filter"`
	Days         []AgendaDay `json:"days"`
	Competitions []string    `json:"competitions"`
}

type AgendaReport struct {
	// UnknownCompetitions lists, sorted, the window's competitions that have no
	// active catalog entry. They are ranked last.
	UnknownCompetitions []string
	InvalidDates        int
}

// BuildAgenda buckets the window's fixtures by day and by competition plus
// division. Groups are ordered by competition priority then key, fixtures by
// kickoff time. The filter keeps groups of one competition; Competitions always
// describes the unfiltered window.
func BuildAgenda(fixtures []fixture.Fixture, window Window, catalog competition.Catalog, filter string) (Agenda, AgendaReport) {
	filter = normalizeFilter(filter)
	agenda := Agenda{Filter: filter, Days: []AgendaDay{}, Competitions: []string{}}
	var report AgendaReport

	type bucket struct {
		groups map[fixture.Group]*AgendaGroup
	}
	days := make(map[string]*bucket)
	competitions := make(map[string]struct{})
	unknown := make(map[string]struct{})

	for _, item := range fixtures {
		day, err := timeutil.ParseDate(item.Date)
		if err != nil {
			report.InvalidDates++
			continue
		}
		if !window.contains(day) {
			continue
		}

		name := strings.TrimSpace(item.Competition)
		competitions[name] = struct{}{}
		priority, known := catalog.Priority(name)
		if !known {
			unknown[name] = struct{}{}
		}

		date := timeutil.FormatDate(day)
		b, ok := days[date]
		if !ok {
			b = &bucket{groups: make(map[fixture.Group]*AgendaGroup)}
			days[date] = b
		}
		id := item.Group()
		group, ok := b.groups[id]
		if !ok {
			group = &AgendaGroup{
				Key:         item.GroupKey(),
				Competition: id.Competition,
				Division:    id.Division,
				Priority:    priority,
				Flag:        catalog.Flag(name),
			}
			b.groups[id] = group
		}
		group.Fixtures = append(group.Fixtures, item)
	}

	for name := range competitions {
		agenda.Competitions = append(agenda.Competitions, name)
	}
	sort.Strings(agenda.Competitions)
	for name := range unknown {
		report.UnknownCompetitions = append(report.UnknownCompetitions, name)
	}
	sort.Strings(report.UnknownCompetitions)

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		groups := make([]AgendaGroup, 0, len(days[date].groups))
		for _, group := range days[date].groups {
			if filter != FilterAll && group.Competition != filter {
				continue
			}
			sortByKickoffTime(group.Fixtures)
			group.DisplayName = group.Fixtures[0].DisplayName()
			groups = append(groups, *group)
		}
		if len(groups) == 0 {
			continue
		}
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].Priority != groups[j].Priority {
				return groups[i].Priority < groups[j].Priority
			}
			if groups[i].Key != groups[j].Key {
				return groups[i].Key < groups[j].Key
			}
			return groups[i].Competition < groups[j].Competition
		})
		agenda.Days = append(agenda.Days, AgendaDay{Date: date, Groups: groups})
	}
	return agenda, report
}

// UnprioritizedCompetitions lists, sorted and distinct, the competitions of
// fixtures that have no active catalog entry.
func UnprioritizedCompetitions(fixtures []fixture.Fixture, catalog competition.Catalog) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range fixtures {
		name := strings.TrimSpace(item.Competition)
		if name == "" {
			continue
		}
		if _, known := catalog.Priority(name); known {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalizeFilter(filter string) string {
	filter = strings.TrimSpace(filter)
	switch strings.ToLower(filter) {
	case "", FilterAll, "todos":
		return FilterAll
	default:
		return filter
	}
}

// sortByKickoffTime orders fixtures by "HH:MM" kickoff; unparseable times go
// last and keep their input order.
func sortByKickoffTime(items []fixture.Fixture) {
	sort.SliceStable(items, func(i, j int) bool {
		return kickoffMinutes(items[i].Time) < kickoffMinutes(items[j].Time)
	})
}

func kickoffMinutes(value string) int {
	const unknown = 24 * 60
	value = strings.TrimSpace(value)
	hour, minute, ok := strings.Cut(value, ":")
	if !ok {
		return unknown
	}
	if len(minute) > 2 {
		minute = minute[:2]
	}
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return unknown
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m < 0 || m > 59 {
		return unknown
	}
	return h*60 + m
}
