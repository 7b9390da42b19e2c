package sessionapi

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api/apierr"
	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/api/response"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/session"
)

// Handler handles session authority endpoints
type Handler struct {
	controller *session.Controller
}

// NewHandler creates a new session handler
func NewHandler(controller *session.Controller) *Handler {
	return &Handler{controller: controller}
}

// Join handles POST /rooms/join
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("userId is required"))
		return
	}

	room, created, err := h.controller.RequestPairing(r.Context(), model.UserID(req.UserID))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.RoomFromModel(room))
}

// Get handles GET /rooms/{roomId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["roomId"])

	room, err := h.controller.GetRoom(r.Context(), roomID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// UpdateState handles POST /rooms/update-state, the reconciliation endpoint
// the game authority calls after each accepted move
func (h *Handler) UpdateState(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateRoomStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.RoomID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("roomId is required"))
		return
	}

	var update session.ReconcileUpdate
	if req.CurrentTurnUserID != nil {
		turn := model.UserID(*req.CurrentTurnUserID)
		update.CurrentTurnUserID = &turn
	}
	if req.RemainingAttempts != nil {
		update.RemainingAttempts = req.RemainingAttempts
	}
	if req.Status != nil {
		status := model.RoomStatus(*req.Status)
		update.Status = &status
	}

	room, err := h.controller.Reconcile(r.Context(), model.RoomID(req.RoomID), update)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}
