package redis

import (
	"fmt"

	"github.com/wordduel/wordduel/internal/model"
)

// Key prefix for all wordduel data
const keyPrefix = "wordduel"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomOrderKey returns the Redis key for the creation-ordered list of room IDs
func roomOrderKey() string {
	return fmt.Sprintf("%s:idx:room_order", keyPrefix)
}

// roomSeqKey returns the Redis key for the room ID sequence counter
func roomSeqKey() string {
	return fmt.Sprintf("%s:seq:room", keyPrefix)
}

// gameKey returns the Redis key for a GameState
func gameKey(id model.RoomID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// identityKey returns the Redis key for an Identity
func identityKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// handleIndexKey returns the Redis key for the handle -> user_id index
func handleIndexKey(handle string) string {
	return fmt.Sprintf("%s:idx:handle:%s", keyPrefix, handle)
}

// userSeqKey returns the Redis key for the user ID sequence counter
func userSeqKey() string {
	return fmt.Sprintf("%s:seq:user", keyPrefix)
}
