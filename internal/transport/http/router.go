package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"quest-client/internal/app"
)

// NewRouter exposes the quest service to a UI: a websocket for interactive use
// and read-only JSON endpoints.
func NewRouter(service *app.QuestService, logger *slog.Logger) http.Handler {
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			snap, err := service.Snapshot(r.Context())
			if err != nil {
				logger.Error("snapshot failed", "error", err)
				http.Error(w, "status unavailable", http.StatusInternalServerError)
				return
			}
			writeJSON(w, snap)
		})
		r.Get("/reward", func(w http.ResponseWriter, r *http.Request) {
			snap, err := service.Snapshot(r.Context())
			if err != nil {
				logger.Error("snapshot failed", "error", err)
				http.Error(w, "reward unavailable", http.StatusInternalServerError)
				return
			}
			writeJSON(w, snap.Tier)
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
