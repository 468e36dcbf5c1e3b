package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) ListQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListQueue")
	defer span.End()

	queue, err := h.sessionService.Queue(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list queue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, queueToDTO(queue))
}

func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Enqueue")
	defer span.End()

	var req teamsRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.sessionService.Enqueue(ctx, usecase.EnqueueInput{TeamA: req.TeamA, TeamB: req.TeamB})
	if err != nil {
		h.logger.WarnContext(ctx, "enqueue failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, queueEntryToDTO(entry))
}

func (h *Handler) RemoveQueueEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveQueueEntry")
	defer span.End()

	entryID := r.PathValue("entryID")
	removed, err := h.sessionService.RemoveQueueEntry(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove queue entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":      entryID,
		"removed": removed,
	})
}
