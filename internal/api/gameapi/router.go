package gameapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api"
	"github.com/wordduel/wordduel/internal/api/middleware"
	"github.com/wordduel/wordduel/internal/game"
	"github.com/wordduel/wordduel/internal/observer"
)

// RouterConfig holds configuration for the game authority router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *game.Controller
	HubManager *observer.HubManager
}

// NewRouter creates the game authority's HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	h := NewHandler(cfg.Controller, cfg.HubManager, cfg.Logger)

	r.HandleFunc("/game/start", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/game/move", h.Move).Methods(http.MethodPost)
	r.HandleFunc("/game/{roomId}", h.Get).Methods(http.MethodGet)

	// Observer channel
	r.HandleFunc("/ws", h.Subscribe).Methods(http.MethodGet)

	r.HandleFunc("/healthz", api.HealthHandler).Methods(http.MethodGet)

	return r
}
