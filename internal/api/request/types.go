package request

// LoginRequest is the request body for logging in with a handle
type LoginRequest struct {
	Username string `json:"username"`
}

// JoinRoomRequest is the request body for requesting a pairing
type JoinRoomRequest struct {
	UserID string `json:"userId"`
}

// UpdateRoomStateRequest is the reconciliation request the game authority
// sends after each accepted move. Absent fields leave the stored value alone.
type UpdateRoomStateRequest struct {
	RoomID            string  `json:"roomId"`
	CurrentTurnUserID *string `json:"currentTurnUserId,omitempty"`
	RemainingAttempts *int    `json:"remainingAttempts,omitempty"`
	Status            *string `json:"status,omitempty"`
}

// StartGameRequest is the request body for initializing gameplay state
type StartGameRequest struct {
	RoomID            string   `json:"roomId"`
	Players           []string `json:"players"`
	CurrentTurnUserID string   `json:"currentTurnUserId,omitempty"`
	RemainingAttempts int      `json:"remainingAttempts,omitempty"`
}

// MoveRequest is the request body for submitting a guess
type MoveRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Guess  string `json:"guess"`
}
