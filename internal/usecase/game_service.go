package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
	"github.com/riskibarqy/agenda-fc/internal/platform/timeutil"
)

// CurrentRound is the first round that still has a game to play, or the last
// round when the season is complete. ok is false when no record has a round.
func CurrentRound(records []game.Record) (int, bool) {
	rounds := make(map[int]bool)
	for _, record := range records {
		if record.Round == nil {
			continue
		}
		pending := rounds[*record.Round]
		rounds[*record.Round] = pending || !record.IsFinished()
	}
	if len(rounds) == 0 {
		return 0, false
	}

	keys := make([]int, 0, len(rounds))
	for round := range rounds {
		keys = append(keys, round)
	}
	sort.Ints(keys)
	for _, round := range keys {
		if rounds[round] {
			return round, true
		}
	}
	return keys[len(keys)-1], true
}

// RecordsByRound returns the round's games ordered by date and kickoff time.
func RecordsByRound(records []game.Record, round int) []game.Record {
	out := make([]game.Record, 0)
	for _, record := range records {
		if record.Round != nil && *record.Round == round {
			out = append(out, record.Clone())
		}
	}
	sortByKickoff(out)
	return out
}

// RecordsByDate returns the day's games ordered by kickoff time.
func RecordsByDate(records []game.Record, date string) []game.Record {
	date = strings.TrimSpace(date)
	out := make([]game.Record, 0)
	for _, record := range records {
		if strings.TrimSpace(record.Date) == date {
			out = append(out, record.Clone())
		}
	}
	sortByKickoff(out)
	return out
}

func sortByKickoff(records []game.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Time < records[j].Time
	})
}

type GameQuery struct {
	Date  string
	Round *int
}

type GamesView struct {
	LeagueID     string        `json:"league_id"`
	Date         string        `json:"date,omitempty"`
	Round        *int          `json:"round,omitempty"`
	CurrentRound *int          `json:"current_round,omitempty"`
	Games        []game.Record `json:"games"`
}

// GameService serves game lists by day, for daily leagues, or by round.
type GameService struct {
	leagueRepo league.Repository
	gameRepo   game.Repository
	location   *time.Location
	logger     *logging.Logger
	now        func() time.Time
}

func NewGameService(leagueRepo league.Repository, gameRepo game.Repository, location *time.Location, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	if location == nil {
		location = time.UTC
	}

	return &GameService{
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

// List picks the view from the query: an explicit round, an explicit date, the
// current round for leagues played in rounds, or today otherwise.
func (s *GameService) List(ctx context.Context, leagueID string, query GameQuery) (GamesView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	defer span.End()

	l, err := getLeague(ctx, s.leagueRepo, leagueID)
	if err != nil {
		return GamesView{}, err
	}
	if query.Date != "" {
		if _, err := timeutil.ParseDate(query.Date); err != nil {
			return GamesView{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if query.Round != nil && (*query.Round < 1 || (l.TotalRounds > 0 && *query.Round > l.TotalRounds)) {
		return GamesView{}, fmt.Errorf("%w: round out of range", ErrInvalidInput)
	}

	records, err := s.gameRepo.Load(ctx, l.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "games file unavailable", "league_id", l.ID, "error", err)
		records = nil
	}

	view := GamesView{LeagueID: l.ID}
	if round, ok := CurrentRound(records); ok {
		view.CurrentRound = &round
	}

	switch {
	case query.Round != nil:
		round := *query.Round
		view.Round = &round
		view.Games = RecordsByRound(records, round)
	case query.Date != "":
		view.Date = query.Date
		view.Games = RecordsByDate(records, query.Date)
	case l.TotalRounds > 0 && view.CurrentRound != nil:
		round := *view.CurrentRound
		view.Round = &round
		view.Games = RecordsByRound(records, round)
	default:
		view.Date = timeutil.FormatDate(timeutil.Today(s.now(), s.location))
		view.Games = RecordsByDate(records, view.Date)
	}
	return view, nil
}
