// Package session implements the session authority: the matchmaking and
// room-lifecycle state machine. It owns which rooms exist, who is in them,
// and their WAITING -> IN_PROGRESS -> FINISHED phase; the live board itself
// belongs to the game authority and is only mirrored here through
// reconciliation.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wordduel/wordduel/internal/dependencies/clock"
	"github.com/wordduel/wordduel/internal/keylock"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage"
)

// DefaultAttempts is the attempt budget handed to new games
const DefaultAttempts = 6

// GameStarter initializes gameplay state on the game authority when a room
// pairs. Implemented by remote.GameClient in production.
type GameStarter interface {
	InitGame(ctx context.Context, roomID model.RoomID, players []model.UserID, currentTurn model.UserID, remainingAttempts int) error
}

// ReconcileUpdate carries the optional fields of a reconciliation call.
// Nil fields leave the corresponding room field untouched.
type ReconcileUpdate struct {
	CurrentTurnUserID *model.UserID
	RemainingAttempts *int
	Status            *model.RoomStatus
}

// Controller manages the room lifecycle state machine
type Controller struct {
	storage  storage.Storage
	game     GameStarter
	clock    clock.Clock
	logger   *slog.Logger
	attempts int

	// Pairing scans across rooms for the oldest WAITING one, so it is a
	// cross-room critical section and gets its own mutex. Reconciliation
	// touches exactly one room and only needs the per-room lock.
	pairing  sync.Mutex
	roomLock *keylock.KeyLock
}

// NewController creates a new session controller. attempts <= 0 selects
// DefaultAttempts.
func NewController(store storage.Storage, game GameStarter, clk clock.Clock, attempts int, logger *slog.Logger) *Controller {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Controller{
		storage:  store,
		game:     game,
		clock:    clk,
		logger:   logger.With(slog.String("component", "session")),
		attempts: attempts,
		roomLock: keylock.New(),
	}
}

// RequestPairing pairs the user into the oldest WAITING room, or creates a
// fresh WAITING room when none exists. The returned bool is true when a new
// room was created. Joining the room you are already waiting in fails with
// ErrDuplicateJoin.
//
// Pairing flips the room to IN_PROGRESS, gives the first (earliest-joined)
// player the opening turn, and tells the game authority to initialize
// gameplay state. The init call is best-effort: its failure is logged and the
// join still succeeds.
func (c *Controller) RequestPairing(ctx context.Context, userID model.UserID) (*model.Room, bool, error) {
	room, created, err := c.pair(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if !created && room.Status == model.RoomStatusInProgress {
		if err := c.game.InitGame(ctx, room.RoomID, room.Players, room.CurrentTurnUserID, room.RemainingAttempts); err != nil {
			c.logger.Error("failed to notify game authority of pairing",
				slog.String("room_id", string(room.RoomID)),
				slog.Any("error", err),
			)
		}
	}

	return room, created, nil
}

// pair runs the matchmaking state transition under the pairing mutex
func (c *Controller) pair(ctx context.Context, userID model.UserID) (*model.Room, bool, error) {
	c.pairing.Lock()
	defer c.pairing.Unlock()

	now := c.clock.Now()

	room, err := c.storage.FindWaitingRoom(ctx)
	if errors.Is(err, model.ErrRoomNotFound) {
		seq, err := c.storage.NextRoomSeq(ctx)
		if err != nil {
			return nil, false, err
		}

		room = &model.Room{
			RoomID:            model.RoomID(fmt.Sprintf("r%d", seq)),
			Players:           []model.UserID{userID},
			Status:            model.RoomStatusWaiting,
			CurrentTurnUserID: "",
			RemainingAttempts: c.attempts,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, false, err
		}

		c.logger.Info("room created",
			slog.String("room_id", string(room.RoomID)),
			slog.String("user_id", string(userID)),
		)
		return room, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if room.HasPlayer(userID) {
		return nil, false, model.ErrDuplicateJoin
	}

	room.Players = append(room.Players, userID)
	room.Status = model.RoomStatusInProgress
	room.CurrentTurnUserID = room.Players[0]
	room.RemainingAttempts = c.attempts
	room.UpdatedAt = now

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, false, err
	}

	c.logger.Info("room paired",
		slog.String("room_id", string(room.RoomID)),
		slog.String("user_id", string(userID)),
		slog.String("first_turn", string(room.CurrentTurnUserID)),
	)
	return room, false, nil
}

// GetRoom returns the current room snapshot
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.storage.GetRoom(ctx, id)
}

// Reconcile applies a status report from the game authority. Present fields
// overwrite the room's; the transition itself is not validated beyond room
// existence, since the game authority is the gameplay source of truth.
func (c *Controller) Reconcile(ctx context.Context, id model.RoomID, update ReconcileUpdate) (*model.Room, error) {
	c.roomLock.Lock(string(id))
	defer c.roomLock.Unlock(string(id))

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.CurrentTurnUserID != nil {
		room.CurrentTurnUserID = *update.CurrentTurnUserID
	}
	if update.RemainingAttempts != nil {
		room.RemainingAttempts = *update.RemainingAttempts
	}
	if update.Status != nil {
		room.Status = *update.Status
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}
