package filesystem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/agenda-fc/internal/domain/game"
	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/platform/jsonfile"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

const (
	statusMatchFinished = "Match Finished"
	statusNotStarted    = "Not Started"
)

type gamesDocument struct {
	Events []json.RawMessage `json:"events"`
}

type eventDTO struct {
	IDEvent      flexString `json:"idEvent"`
	IntRound     *flexInt   `json:"intRound,omitempty"`
	DateEvent    string     `json:"dateEvent"`
	StrTime      string     `json:"strTime"`
	StrHomeTeam  string     `json:"strHomeTeam"`
	StrAwayTeam  string     `json:"strAwayTeam"`
	IntHomeScore flexInt    `json:"intHomeScore"`
	IntAwayScore flexInt    `json:"intAwayScore"`
	StrStatus    string     `json:"strStatus"`
}

// storedEvent is one entry of the events file. Entries that do not form a
// valid record keep their original bytes so writes can put them back untouched.
type storedEvent struct {
	raw    json.RawMessage
	record game.Record
	err    error
}

// GameRepository stores each league's game list in the events file format.
type GameRepository struct {
	store   *jsonfile.Store
	leagues league.Repository
	logger  *logging.Logger
}

func NewGameRepository(store *jsonfile.Store, leagues league.Repository, logger *logging.Logger) *GameRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameRepository{store: store, leagues: leagues, logger: logger}
}

func (r *GameRepository) Load(ctx context.Context, leagueID string) ([]game.Record, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return nil, err
	}

	events, err := r.readEvents(l.GamesFile)
	if err != nil {
		return nil, err
	}

	out := make([]game.Record, 0, len(events))
	for i, event := range events {
		if event.err != nil {
			r.logger.WarnContext(ctx, "skip invalid game record",
				"kind", "invalid_record",
				"league_id", leagueID,
				"index", i,
				"error", event.err,
			)
			continue
		}
		out = append(out, event.record)
	}
	return out, nil
}

// Save writes records back over the entries Load returned, position by
// position. Invalid entries stay where they were; extra records are appended.
func (r *GameRepository) Save(ctx context.Context, leagueID string, records []game.Record) (bool, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return false, err
	}

	existing, err := r.readEvents(l.GamesFile)
	if err != nil && !errors.Is(err, jsonfile.ErrNotExist) {
		return false, fmt.Errorf("save games league_id=%s: %w", leagueID, err)
	}

	events := make([]any, 0, max(len(existing), len(records)))
	next := 0
	for _, event := range existing {
		if event.err != nil {
			events = append(events, event.raw)
			continue
		}
		if next < len(records) {
			events = append(events, recordToEvent(records[next]))
			next++
		}
	}
	for ; next < len(records); next++ {
		events = append(events, recordToEvent(records[next]))
	}
	return r.write(ctx, l, events)
}

// Replace overwrites the games file with records only.
func (r *GameRepository) Replace(ctx context.Context, leagueID string, records []game.Record) (bool, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return false, err
	}

	events := make([]any, 0, len(records))
	for _, record := range records {
		events = append(events, recordToEvent(record))
	}
	return r.write(ctx, l, events)
}

func (r *GameRepository) write(ctx context.Context, l league.League, events []any) (bool, error) {
	doc := struct {
		Events []any `json:"events"`
	}{Events: events}

	changed, err := r.store.Write(l.GamesFile, doc)
	if err != nil {
		return false, fmt.Errorf("save games league_id=%s: %w", l.ID, err)
	}
	r.logger.DebugContext(ctx, "games file written", "league_id", l.ID, "file", l.GamesFile, "changed", changed)
	return changed, nil
}

func (r *GameRepository) readEvents(name string) ([]storedEvent, error) {
	var doc gamesDocument
	if err := r.store.Read(name, &doc); err != nil {
		return nil, err
	}

	out := make([]storedEvent, 0, len(doc.Events))
	for _, raw := range doc.Events {
		event := storedEvent{raw: raw}
		var dto eventDTO
		if err := sonic.Unmarshal(raw, &dto); err != nil {
			event.err = fmt.Errorf("%w: %v", game.ErrInvalidRecord, err)
		} else {
			event.record = eventToRecord(dto)
			event.err = event.record.Validate()
		}
		out = append(out, event)
	}
	return out, nil
}

// Version is the modification time of the league's games file.
func (r *GameRepository) Version(ctx context.Context, leagueID string) (time.Time, error) {
	l, err := resolveLeague(ctx, r.leagues, leagueID)
	if err != nil {
		return time.Time{}, err
	}
	return r.store.ModTime(l.GamesFile)
}

// eventToRecord normalizes legacy status strings. Older files store a score
// of 0 as null, so a finished event reads a missing score as 0.
func eventToRecord(dto eventDTO) game.Record {
	record := game.Record{
		ID:       string(dto.IDEvent),
		Date:     strings.TrimSpace(dto.DateEvent),
		Time:     strings.TrimSpace(dto.StrTime),
		HomeTeam: strings.TrimSpace(dto.StrHomeTeam),
		AwayTeam: strings.TrimSpace(dto.StrAwayTeam),
		Status:   game.StatusNotStarted,
	}
	if dto.IntRound != nil {
		record.Round = dto.IntRound.Ptr()
	}
	if isFinishedStatus(dto.StrStatus) {
		record.Finish(dto.IntHomeScore.Int(), dto.IntAwayScore.Int())
	}
	return record
}

func recordToEvent(record game.Record) eventDTO {
	dto := eventDTO{
		IDEvent:     flexString(record.ID),
		DateEvent:   record.Date,
		StrTime:     record.Time,
		StrHomeTeam: record.HomeTeam,
		StrAwayTeam: record.AwayTeam,
		StrStatus:   statusNotStarted,
	}
	if record.Round != nil {
		round := newFlexInt(record.Round)
		dto.IntRound = &round
	}
	if record.IsFinished() {
		dto.IntHomeScore = newFlexInt(record.HomeScore)
		dto.IntAwayScore = newFlexInt(record.AwayScore)
		dto.StrStatus = statusMatchFinished
	}
	return dto
}

func isFinishedStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "match finished", "finished", "final", "ft", "aot", "aet":
		return true
	default:
		return false
	}
}

func resolveLeague(ctx context.Context, leagues league.Repository, leagueID string) (league.League, error) {
	l, ok, err := leagues.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("resolve league %s: %w", leagueID, err)
	}
	if !ok {
		return league.League{}, fmt.Errorf("%w: %s", league.ErrUnknownLeague, leagueID)
	}
	return l, nil
}
