package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/agenda-fc/internal/usecase"
)

type agendaQueryRequest struct {
	From        string `validate:"omitempty,datetime=2006-01-02"`
	Days        *int   `validate:"omitempty,gte=1,lte=31"`
	Competition string `validate:"omitempty,max=120"`
}

func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAgenda")
	defer span.End()

	days, err := queryInt(r, "days")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	req := agendaQueryRequest{
		From:        strings.TrimSpace(r.URL.Query().Get("from")),
		Days:        days,
		Competition: strings.TrimSpace(r.URL.Query().Get("competition")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.AgendaQuery{From: req.From, Competition: req.Competition}
	if req.Days != nil {
		query.Days = *req.Days
	}
	agenda, err := h.agendaService.Agenda(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "build agenda failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewAgendaResponse(agenda))
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.agendaService.Competitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, NewCompetitionsResponse(items))
}

func (h *Handler) ListUnprioritizedCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUnprioritizedCompetitions")
	defer span.End()

	names, err := h.agendaService.Unprioritized(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list unprioritized competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unprioritizedDTO{Competitions: names, Count: len(names)})
}
