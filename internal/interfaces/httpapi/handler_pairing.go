package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) SuggestPairing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SuggestPairing")
	defer span.End()

	var req suggestPairingRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}

	suggestion, err := h.pairingService.Suggest(ctx, usecase.SuggestInput{Mode: req.Mode, Players: req.Players})
	if err != nil {
		h.logger.WarnContext(ctx, "suggest pairing failed", "mode", req.Mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suggestionToDTO(suggestion))
}

func (h *Handler) ConfirmPairing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmPairing")
	defer span.End()

	var req teamsRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.pairingService.Confirm(ctx, usecase.ConfirmInput{TeamA: req.TeamA, TeamB: req.TeamB})
	if err != nil {
		h.logger.WarnContext(ctx, "confirm pairing failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, queueEntryToDTO(entry))
}
