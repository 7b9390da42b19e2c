package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrUserNotFound   = errors.New("user not found")
	ErrHandleRequired = errors.New("handle is required")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrDuplicateJoin = errors.New("user is already in the room")

	// Game errors
	ErrGameNotFound  = errors.New("game state not found")
	ErrPlayerCount   = errors.New("exactly two players are required")
	ErrGameOver      = errors.New("game is already finished")
	ErrWrongTurn     = errors.New("not this player's turn")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNotInGame     = errors.New("user is not a player in this game")
	ErrWordsNotReady = errors.New("word list is empty")
)
