package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomStatus represents the lifecycle phase of a room.
// Transitions only ever move forward: WAITING -> IN_PROGRESS -> FINISHED.
type RoomStatus string

const (
	RoomStatusWaiting    RoomStatus = "WAITING"     // One player, joinable
	RoomStatusInProgress RoomStatus = "IN_PROGRESS" // Paired, game running
	RoomStatusFinished   RoomStatus = "FINISHED"    // Game over
)

// MaxRoomPlayers is the number of players a room pairs
const MaxRoomPlayers = 2

// Room is the session authority's record of a matchmaking session.
// It pairs exactly two players for one game. The session authority owns the
// lifecycle; turn and attempt fields are mirrored from the game authority via
// reconciliation and are eventually consistent, not transactionally joined.
type Room struct {
	RoomID            RoomID     `json:"roomId"`
	Players           []UserID   `json:"players"`
	Status            RoomStatus `json:"status"`
	CurrentTurnUserID UserID     `json:"currentTurnUserId"`
	RemainingAttempts int        `json:"remainingAttempts"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// HasPlayer reports whether the given user is a member of the room
func (r *Room) HasPlayer(userID UserID) bool {
	for _, p := range r.Players {
		if p == userID {
			return true
		}
	}
	return false
}

// IsJoinable reports whether the room can accept a second player
func (r *Room) IsJoinable() bool {
	return r.Status == RoomStatusWaiting && len(r.Players) < MaxRoomPlayers
}
