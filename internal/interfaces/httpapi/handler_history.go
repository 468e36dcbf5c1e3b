package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/courtside/internal/usecase"
)

const defaultArchivePageSize = 50

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHistory")
	defer span.End()

	records, err := h.sessionService.History(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(records))
}

func (h *Handler) ListArchivedHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListArchivedHistory")
	defer span.End()

	limit := defaultArchivePageSize
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	records, err := h.sessionService.ArchivedHistory(ctx, r.URL.Query().Get("court"), limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list archived history failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, historyToDTO(records))
}
