package gameapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordduel/wordduel/internal/api/apierr"
	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/api/response"
	"github.com/wordduel/wordduel/internal/game"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/observer"
)

// Handler handles game authority endpoints
type Handler struct {
	controller *game.Controller
	hubManager *observer.HubManager
	logger     *slog.Logger
}

// NewHandler creates a new game handler
func NewHandler(controller *game.Controller, hubManager *observer.HubManager, logger *slog.Logger) *Handler {
	return &Handler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Start handles POST /game/start, called by the session authority when a
// room pairs
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.RoomID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("roomId is required"))
		return
	}

	players := make([]model.UserID, len(req.Players))
	for i, p := range req.Players {
		players[i] = model.UserID(p)
	}

	state, err := h.controller.InitGame(
		r.Context(),
		model.RoomID(req.RoomID),
		players,
		model.UserID(req.CurrentTurnUserID),
		req.RemainingAttempts,
	)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(state))
}

// Move handles POST /game/move
func (h *Handler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.RoomID == "" || req.UserID == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("roomId and userId are required"))
		return
	}

	update, err := h.controller.SubmitMove(r.Context(), model.RoomID(req.RoomID), model.UserID(req.UserID), req.Guess)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, update)
}

// Get handles GET /game/{roomId}, the public snapshot a fresh subscriber
// fetches since subscribing replays no history
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["roomId"])

	state, err := h.controller.GetState(r.Context(), roomID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(state))
}

// Subscribe handles GET /ws, upgrading to a websocket observer connection
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	observer.ServeWS(w, r, h.hubManager, h.logger)
}
