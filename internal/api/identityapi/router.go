package identityapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api"
	"github.com/wordduel/wordduel/internal/api/middleware"
	"github.com/wordduel/wordduel/internal/identity"
)

// RouterConfig holds configuration for the identity service router
type RouterConfig struct {
	Logger  *slog.Logger
	Service *identity.Service
}

// NewRouter creates the identity service's HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	h := NewHandler(cfg.Service)

	r.HandleFunc("/users/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}", h.Get).Methods(http.MethodGet)

	r.HandleFunc("/healthz", api.HealthHandler).Methods(http.MethodGet)

	return r
}
