package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/session/setup", handler.SetupSession)
	mux.HandleFunc("GET /v1/session", handler.GetOverview)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.AddPlayer)
	mux.HandleFunc("POST /v1/players/{name}/done", handler.MarkPlayerDone)

	mux.HandleFunc("GET /v1/queue", handler.ListQueue)
	mux.HandleFunc("POST /v1/queue", handler.Enqueue)
	mux.HandleFunc("DELETE /v1/queue/{entryID}", handler.RemoveQueueEntry)

	mux.HandleFunc("POST /v1/courts/{court}/start", handler.StartMatch)
	mux.HandleFunc("POST /v1/courts/{court}/finish", handler.FinishMatch)

	mux.HandleFunc("GET /v1/history", handler.ListHistory)
	mux.HandleFunc("GET /v1/history/archive", handler.ListArchivedHistory)
}

func registerPairingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/pairings/suggest", handler.SuggestPairing)
	mux.HandleFunc("POST /v1/pairings/confirm", handler.ConfirmPairing)
}
