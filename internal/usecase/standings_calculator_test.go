package usecase

import (
	"testing"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/domain/team"
)

func finishedGame(id, date, home, away string, homeScore, awayScore int) game.Record {
	record := game.Record{ID: id, Date: date, Time: "20:00:00", HomeTeam: home, AwayTeam: away}
	record.Finish(homeScore, awayScore)
	return record
}

func pendingGame(id, date, home, away string) game.Record {
	return game.Record{ID: id, Date: date, Time: "20:00:00", HomeTeam: home, AwayTeam: away, Status: game.StatusNotStarted}
}

func mustRoster(t *testing.T, entries ...team.Entry) team.Roster {
	t.Helper()
	roster, err := team.NewRoster(entries)
	if err != nil {
		t.Fatalf("new roster: %v", err)
	}
	return roster
}

func standingByName(t *testing.T, rows []standing.Standing, name string) standing.Standing {
	t.Helper()
	for _, row := range rows {
		if row.TeamName == name {
			return row
		}
	}
	t.Fatalf("team %q missing from standings", name)
	return standing.Standing{}
}

func TestFormatWinPercentage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		wins, losses, ties int
		want               string
	}{
		{0, 0, 0, ".000"},
		{3, 0, 0, "1.000"},
		{2, 1, 0, ".667"},
		{1, 1, 0, ".500"},
		{0, 4, 0, ".000"},
		{1, 0, 1, ".750"},
		{10, 7, 0, ".588"},
	}
	for _, tc := range cases {
		if got := FormatWinPercentage(tc.wins, tc.losses, tc.ties); got != tc.want {
			t.Fatalf("FormatWinPercentage(%d,%d,%d)=%q want %q", tc.wins, tc.losses, tc.ties, got, tc.want)
		}
	}
}

func TestFormatStreak(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":      "-",
		"WWL":   "W2",
		"L":     "L1",
		"TTTWL": "T3",
	}
	for in, want := range cases {
		if got := FormatStreak(in); got != want {
			t.Fatalf("FormatStreak(%q)=%q want %q", in, got, want)
		}
	}
}

func TestCalculateStandings_CountsAndStreaks(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{ID: "1", Name: "Alpha", Conference: "East"},
		team.Entry{ID: "2", Name: "Bravo", Conference: "East"},
		team.Entry{ID: "3", Name: "Charlie", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("g1", "2025-01-01", "Alpha", "Bravo", 100, 90),
		finishedGame("g3", "2025-01-03", "Charlie", "Alpha", 80, 99),
		finishedGame("g2", "2025-01-02", "Bravo", "Alpha", 120, 119),
		pendingGame("g4", "2025-01-04", "Alpha", "Charlie"),
	}

	rows, report := CalculateStandings(records, roster, StandingsPolicy{})
	if report.FinishedGames != 3 {
		t.Fatalf("finished games: got=%d want=3", report.FinishedGames)
	}

	alpha := standingByName(t, rows, "Alpha")
	if alpha.Wins != 2 || alpha.Losses != 1 || alpha.Percentage != ".667" {
		t.Fatalf("unexpected alpha row: %+v", alpha)
	}
	// Most recent first: W (01-03), L (01-02), W (01-01).
	if alpha.Streak != "W1" {
		t.Fatalf("alpha streak: got=%s want=W1", alpha.Streak)
	}

	charlie := standingByName(t, rows, "Charlie")
	if charlie.Percentage != ".000" || charlie.Streak != "L1" {
		t.Fatalf("unexpected charlie row: %+v", charlie)
	}

	played := map[string]int{}
	for _, r := range records {
		if r.IsFinished() {
			played[r.HomeTeam]++
			played[r.AwayTeam]++
		}
	}
	for _, row := range rows {
		if row.GamesPlayed() != played[row.TeamName] {
			t.Fatalf("games played mismatch for %s: got=%d want=%d", row.TeamName, row.GamesPlayed(), played[row.TeamName])
		}
	}
}

func TestCalculateStandings_StreakCountsMostRecentRun(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Alpha", Conference: "East"},
		team.Entry{Name: "Bravo", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("g1", "2025-01-01", "Alpha", "Bravo", 1, 2),
		finishedGame("g2", "2025-01-02", "Alpha", "Bravo", 3, 2),
		finishedGame("g3", "2025-01-03", "Bravo", "Alpha", 0, 7),
	}

	rows, _ := CalculateStandings(records, roster, StandingsPolicy{})
	if got := standingByName(t, rows, "Alpha").Streak; got != "W2" {
		t.Fatalf("alpha streak: got=%s want=W2", got)
	}
	if got := standingByName(t, rows, "Bravo").Streak; got != "L2" {
		t.Fatalf("bravo streak: got=%s want=L2", got)
	}
}

func TestCalculateStandings_NoGamesUsesPlaceholders(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t, team.Entry{ID: "9", Name: "Idle", Conference: "West", Logo: "idle.png"})
	rows, _ := CalculateStandings(nil, roster, StandingsPolicy{})
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	want := standing.Standing{TeamID: "9", TeamName: "Idle", Logo: "idle.png", Conference: "West", Percentage: ".000", Streak: "-", Rank: 1}
	if rows[0] != want {
		t.Fatalf("unexpected row: got=%+v want=%+v", rows[0], want)
	}
}

func TestCalculateStandings_TiesAndDivisionRanking(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Raiders", Conference: "AFC", Division: "West"},
		team.Entry{Name: "Chiefs", Conference: "AFC", Division: "West"},
		team.Entry{Name: "Bills", Conference: "AFC", Division: "East"},
		team.Entry{Name: "Eagles", Conference: "NFC", Division: "East"},
	)
	records := []game.Record{
		finishedGame("1", "2025-09-07", "Chiefs", "Raiders", 17, 17),
		finishedGame("2", "2025-09-14", "Bills", "Chiefs", 20, 24),
		finishedGame("3", "2025-09-14", "Eagles", "Raiders", 30, 10),
	}

	rows, _ := CalculateStandings(records, roster, StandingsPolicy{ByDivision: true})

	order := make([]string, 0, len(rows))
	for _, row := range rows {
		order = append(order, row.Conference+"/"+row.Division+"/"+row.TeamName)
	}
	want := []string{"AFC/East/Bills", "AFC/West/Chiefs", "AFC/West/Raiders", "NFC/East/Eagles"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", order, want)
		}
	}

	chiefs := standingByName(t, rows, "Chiefs")
	if chiefs.Ties != 1 || chiefs.Wins != 1 || chiefs.Percentage != ".750" || chiefs.Streak != "W1" || chiefs.Rank != 1 {
		t.Fatalf("unexpected chiefs row: %+v", chiefs)
	}
	raiders := standingByName(t, rows, "Raiders")
	if raiders.Ties != 1 || raiders.Losses != 1 || raiders.Percentage != ".250" || raiders.Rank != 2 {
		t.Fatalf("unexpected raiders row: %+v", raiders)
	}
	for _, name := range []string{"Bills", "Eagles"} {
		if rank := standingByName(t, rows, name).Rank; rank != 1 {
			t.Fatalf("%s should lead its division, got rank %d", name, rank)
		}
	}
}

func TestCalculateStandings_RanksAreContiguousAndNameBreaksTies(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Delta", Conference: "East"},
		team.Entry{Name: "Alpha", Conference: "East"},
		team.Entry{Name: "Charlie", Conference: "East"},
		team.Entry{Name: "Bravo", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("1", "2025-01-01", "Delta", "Charlie", 2, 1),
		finishedGame("2", "2025-01-01", "Alpha", "Bravo", 2, 1),
	}

	rows, _ := CalculateStandings(records, roster, StandingsPolicy{})
	want := []string{"Alpha", "Delta", "Bravo", "Charlie"}
	for i, row := range rows {
		if row.TeamName != want[i] || row.Rank != i+1 {
			t.Fatalf("row %d: got=%s rank=%d want=%s rank=%d", i, row.TeamName, row.Rank, want[i], i+1)
		}
	}
}

func TestCalculateStandings_ReportsUnmappedTeams(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Alpha", Conference: "East"},
		team.Entry{Name: "Bravo", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("1", "2025-01-01", "Alpha", "Zulu", 2, 1),
		finishedGame("2", "2025-01-02", "Alpha", "Bravo", 2, 1),
	}

	rows, report := CalculateStandings(records, roster, StandingsPolicy{})
	if len(report.UnmappedTeams) != 1 || report.UnmappedTeams[0] != "Zulu" {
		t.Fatalf("unexpected unmapped teams: %v", report.UnmappedTeams)
	}
	if alpha := standingByName(t, rows, "Alpha"); alpha.Wins != 1 {
		t.Fatalf("game with unmapped team must be ignored, alpha wins=%d", alpha.Wins)
	}
}

func TestCalculateStandings_IsDeterministic(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Alpha", Conference: "East"},
		team.Entry{Name: "Bravo", Conference: "West"},
		team.Entry{Name: "Charlie", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("1", "2025-01-01", "Alpha", "Bravo", 2, 1),
		finishedGame("2", "2025-01-01", "Charlie", "Bravo", 2, 2),
		finishedGame("3", "2025-01-02", "Charlie", "Alpha", 5, 1),
	}

	first, _ := CalculateStandings(records, roster, StandingsPolicy{})
	second, _ := CalculateStandings(records, roster, StandingsPolicy{})

	a, err := sonic.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := sonic.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("standings differ between runs:\n%s\n%s", a, b)
	}
}

func TestCalculateStandings_SkipsTeamPlayingItself(t *testing.T) {
	t.Parallel()

	roster := mustRoster(t,
		team.Entry{Name: "Alpha", Conference: "East"},
		team.Entry{Name: "Bravo", Conference: "East"},
	)
	records := []game.Record{
		finishedGame("1", "2025-01-01", "Alpha", "Alpha", 3, 1),
		finishedGame("2", "2025-01-02", "Alpha", "Bravo", 2, 1),
	}

	rows, report := CalculateStandings(records, roster, StandingsPolicy{})
	if report.InvalidRecords != 1 || report.FinishedGames != 1 {
		t.Fatalf("expected one invalid and one counted game, got %+v", report)
	}
	alpha := standingByName(t, rows, "Alpha")
	if alpha.Wins != 1 || alpha.Losses != 0 || alpha.GamesPlayed() != 1 {
		t.Fatalf("self-played game must not count, got %+v", alpha)
	}
}
