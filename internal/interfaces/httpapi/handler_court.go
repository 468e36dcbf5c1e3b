package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	court := r.PathValue("court")
	match, err := h.sessionService.StartMatch(ctx, court)
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "court", court, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(match))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	court := r.PathValue("court")
	var req finishMatchRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	var games [2]session.Game
	for i, g := range req.Games {
		games[i] = session.Game{TeamA: *g.TeamA, TeamB: *g.TeamB}
	}

	result, err := h.sessionService.FinishMatch(ctx, usecase.FinishMatchInput{Court: court, Games: games})
	if err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "court", court, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finishResultToDTO(result))
}
