package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
)

const streakPlaceholder = "-"

// StandingsPolicy selects the ranking group: conference, or conference plus division.
type StandingsPolicy struct {
	ByDivision bool
}

type CalculationReport struct {
	FinishedGames  int
	InvalidRecords int
	// UnmappedTeams lists, sorted and distinct, team names of finished games
	// that are missing from the roster.
	UnmappedTeams []string
}

type outcome byte

const (
	outcomeWin  outcome = 'W'
	outcomeLoss outcome = 'L'
	outcomeTie  outcome = 'T'
)

type teamResult struct {
	date    string
	time    string
	index   int
	outcome outcome
}

type tally struct {
	entry   team.Entry
	wins    int
	losses  int
	ties    int
	results []teamResult
}

// CalculateStandings derives one standing per roster team from the finished
// records. It has no side effects and the output depends only on its inputs.
func CalculateStandings(records []game.Record, roster team.Roster, policy StandingsPolicy) ([]standing.Standing, CalculationReport) {
	entries := roster.Entries()
	tallies := make(map[string]*tally, len(entries))
	for _, entry := range entries {
		tallies[entry.Name] = &tally{entry: entry}
	}

	var report CalculationReport
	unmapped := make(map[string]struct{})
	for i, record := range records {
		if !record.IsFinished() {
			continue
		}
		if record.HomeScore == nil || record.AwayScore == nil || record.Validate() != nil {
			report.InvalidRecords++
			continue
		}

		home, homeOK := tallies[strings.TrimSpace(record.HomeTeam)]
		away, awayOK := tallies[strings.TrimSpace(record.AwayTeam)]
		if !homeOK {
			unmapped[strings.TrimSpace(record.HomeTeam)] = struct{}{}
		}
		if !awayOK {
			unmapped[strings.TrimSpace(record.AwayTeam)] = struct{}{}
		}
		if !homeOK || !awayOK {
			continue
		}

		report.FinishedGames++
		homeOutcome, awayOutcome := outcomes(*record.HomeScore, *record.AwayScore)
		home.add(homeOutcome, record, i)
		away.add(awayOutcome, record, i)
	}

	report.UnmappedTeams = make([]string, 0, len(unmapped))
	for name := range unmapped {
		report.UnmappedTeams = append(report.UnmappedTeams, name)
	}
	sort.Strings(report.UnmappedTeams)

	groups := make(map[string][]*tally)
	groupKeys := make([]string, 0)
	for _, entry := range entries {
		key := rankingGroupKey(entry, policy)
		if _, ok := groups[key]; !ok {
			groupKeys = append(groupKeys, key)
		}
		groups[key] = append(groups[key], tallies[entry.Name])
	}
	sort.Strings(groupKeys)

	out := make([]standing.Standing, 0, len(entries))
	for _, key := range groupKeys {
		members := groups[key]
		sort.SliceStable(members, func(i, j int) bool {
			if cmp := compareWinPercentage(members[i], members[j]); cmp != 0 {
				return cmp > 0
			}
			return members[i].entry.Name < members[j].entry.Name
		})
		for rank, t := range members {
			out = append(out, t.standing(rank+1))
		}
	}
	return out, report
}

// rankingGroupKey sorts conference first, then division. The separator sorts
// before any printable character so "East" groups precede "East Coast".
func rankingGroupKey(entry team.Entry, policy StandingsPolicy) string {
	key := strings.TrimSpace(entry.Conference)
	if policy.ByDivision {
		key += "\x00" + strings.TrimSpace(entry.Division)
	}
	return key
}

func outcomes(homeScore, awayScore int) (outcome, outcome) {
	switch {
	case homeScore > awayScore:
		return outcomeWin, outcomeLoss
	case homeScore < awayScore:
		return outcomeLoss, outcomeWin
	default:
		return outcomeTie, outcomeTie
	}
}

func (t *tally) add(o outcome, record game.Record, index int) {
	switch o {
	case outcomeWin:
		t.wins++
	case outcomeLoss:
		t.losses++
	default:
		t.ties++
	}
	t.results = append(t.results, teamResult{
		date:    strings.TrimSpace(record.Date),
		time:    strings.TrimSpace(record.Time),
		index:   index,
		outcome: o,
	})
}

func (t *tally) standing(rank int) standing.Standing {
	return standing.Standing{
		TeamID:     t.entry.ID,
		TeamName:   t.entry.Name,
		Logo:       t.entry.Logo,
		Conference: t.entry.Conference,
		Division:   t.entry.Division,
		Wins:       t.wins,
		Losses:     t.losses,
		Ties:       t.ties,
		Percentage: FormatWinPercentage(t.wins, t.losses, t.ties),
		Streak:     FormatStreak(recentOutcomes(t.results)),
		Rank:       rank,
	}
}

// compareWinPercentage compares (2w+t)/2gp exactly with integer cross products.
func compareWinPercentage(a, b *tally) int {
	an, ad := a.percentageFraction()
	bn, bd := b.percentageFraction()
	left, right := an*bd, bn*ad
	switch {
	case left > right:
		return 1
	case left < right:
		return -1
	default:
		return 0
	}
}

func (t *tally) percentageFraction() (int, int) {
	played := t.wins + t.losses + t.ties
	if played == 0 {
		return 0, 1
	}
	return 2*t.wins + t.ties, 2 * played
}

// FormatWinPercentage renders (w + t/2) / gp with three decimals and no leading
// zero: ".000" without games, ".667" for 2-1, "1.000" when unbeaten.
func FormatWinPercentage(wins, losses, ties int) string {
	played := wins + losses + ties
	if played <= 0 {
		return ".000"
	}
	pct := (float64(wins) + 0.5*float64(ties)) / float64(played)
	return strings.TrimPrefix(strconv.FormatFloat(pct, 'f', 3, 64), "0")
}

// FormatStreak takes outcomes most recent first ("WWL") and reports the
// leading run, e.g. "W2", or "-" when there are no games.
func FormatStreak(recentFirst string) string {
	if recentFirst == "" {
		return streakPlaceholder
	}
	latest := recentFirst[0]
	count := 0
	for count < len(recentFirst) && recentFirst[count] == latest {
		count++
	}
	return string(latest) + strconv.Itoa(count)
}

// recentOutcomes orders a team's games by date, kickoff time and list position,
// newest first.
func recentOutcomes(results []teamResult) string {
	ordered := append([]teamResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].date != ordered[j].date {
			return ordered[i].date > ordered[j].date
		}
		if ordered[i].time != ordered[j].time {
			return ordered[i].time > ordered[j].time
		}
		return ordered[i].index > ordered[j].index
	})

	var b strings.Builder
	b.Grow(len(ordered))
	for _, r := range ordered {
		b.WriteByte(byte(r.outcome))
	}
	return b.String()
}
