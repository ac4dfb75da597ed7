package httpapi

import (
	"net/http"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/agenda-fc/internal/domain/league"
	"github.com/riskibarqy/agenda-fc/internal/domain/standing"
	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

type gamesQueryRequest struct {
	Date  string `validate:"omitempty,datetime=2006-01-02,excluded_with=Round"`
	Round *int   `validate:"omitempty,gte=1"`
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toLeagueDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.leagueService.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams by league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamDTO{
			ID:         item.ID,
			Name:       item.Name,
			Logo:       item.Logo,
			Conference: item.Conference,
			Division:   item.Division,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// ListLeagueStandings reads the league definition and the stored table in
// parallel; the definition decides the grouping and whether ties are shown.
func (h *Handler) ListLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueStandings")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var (
		l         league.League
		rows      []standing.Standing
		leagueErr error
		rowsErr   error
		wg        conc.WaitGroup
	)
	wg.Go(func() {
		l, leagueErr = h.leagueService.GetLeague(ctx, leagueID)
	})
	wg.Go(func() {
		rows, rowsErr = h.standingsService.List(ctx, leagueID)
	})
	wg.Wait()

	if leagueErr != nil {
		writeError(ctx, w, leagueErr)
		return
	}
	if rowsErr != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "league_id", leagueID, "error", rowsErr)
		writeError(ctx, w, rowsErr)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewStandingsResponse(l, rows))
}

func (h *Handler) ListGamesByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	round, err := queryInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := gamesQueryRequest{
		Date:  strings.TrimSpace(r.URL.Query().Get("date")),
		Round: round,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.gameService.List(ctx, leagueID, usecase.GameQuery{Date: req.Date, Round: req.Round})
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewGamesResponse(view))
}
