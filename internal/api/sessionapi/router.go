package sessionapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api"
	"github.com/wordduel/wordduel/internal/api/middleware"
	"github.com/wordduel/wordduel/internal/session"
)

// RouterConfig holds configuration for the session authority router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *session.Controller
}

// NewRouter creates the session authority's HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	h := NewHandler(cfg.Controller)

	r.HandleFunc("/rooms/join", h.Join).Methods(http.MethodPost)
	r.HandleFunc("/rooms/update-state", h.UpdateState).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{roomId}", h.Get).Methods(http.MethodGet)

	r.HandleFunc("/healthz", api.HealthHandler).Methods(http.MethodGet)

	return r
}
