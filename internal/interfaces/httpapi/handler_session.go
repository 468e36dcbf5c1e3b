package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/courtside/internal/domain/session"
	"github.com/riskibarqy/courtside/internal/usecase"
)

func (h *Handler) SetupSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetupSession")
	defer span.End()

	var req setupSessionRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	players := make([]session.NewPlayer, 0, len(req.Players))
	for _, p := range req.Players {
		players = append(players, session.NewPlayer{Name: p.Name, Skill: session.SkillTier(strings.TrimSpace(p.Skill))})
	}

	overview, err := h.sessionService.Setup(ctx, usecase.SetupInput{Courts: req.Courts, Players: players})
	if err != nil {
		h.logger.WarnContext(ctx, "setup session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, overviewToDTO(overview))
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	overview, err := h.sessionService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.sessionService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	player, err := h.sessionService.AddPlayer(ctx, session.NewPlayer{
		Name:  req.Name,
		Skill: session.SkillTier(strings.TrimSpace(req.Skill)),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add player failed", "player", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(player))
}

func (h *Handler) MarkPlayerDone(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkPlayerDone")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	changed, err := h.sessionService.MarkDone(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "mark player done failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"name":    name,
		"changed": changed,
	})
}
