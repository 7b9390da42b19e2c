package storage

import (
	"context"

	"github.com/wordduel/wordduel/internal/model"
)

// Storage defines the interface for data persistence.
//
// Each service process owns its own Storage instance and only exercises its
// own slice of the interface: the session authority the room operations, the
// game authority the game-state operations, the identity service the identity
// operations. Authorities never share a store; all cross-authority state
// transfer goes through the reconciliation protocol.
type Storage interface {
	// Room operations (session authority)
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	// FindWaitingRoom returns the oldest room still in WAITING status, in
	// creation order, or model.ErrRoomNotFound when none exists.
	FindWaitingRoom(ctx context.Context) (*model.Room, error)
	// NextRoomSeq returns a monotonically increasing sequence used to mint
	// room IDs ("r1", "r2", ...).
	NextRoomSeq(ctx context.Context) (int64, error)

	// Game state operations (game authority)
	SaveGameState(ctx context.Context, state *model.GameState) error
	GetGameState(ctx context.Context, id model.RoomID) (*model.GameState, error)

	// Identity operations (identity service)
	SaveIdentity(ctx context.Context, identity *model.Identity) error
	GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error)
	GetIdentityByHandle(ctx context.Context, handle string) (*model.Identity, error)
	// NextUserSeq returns a monotonically increasing sequence used to mint
	// user IDs ("u1", "u2", ...).
	NextUserSeq(ctx context.Context) (int64, error)
}
