package identityapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api/apierr"
	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/api/response"
	"github.com/wordduel/wordduel/internal/identity"
	"github.com/wordduel/wordduel/internal/model"
)

// Handler handles identity service endpoints
type Handler struct {
	service *identity.Service
}

// NewHandler creates a new identity handler
func NewHandler(service *identity.Service) *Handler {
	return &Handler{service: service}
}

// Login handles POST /users/login. Logging in with a known handle returns
// the existing identity; an unknown handle mints a new one.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id, err := h.service.Login(r.Context(), req.Username)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IdentityFromModel(id))
}

// Get handles GET /users/{userId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["userId"])

	id, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IdentityFromModel(id))
}
