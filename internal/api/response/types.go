package response

import (
	"sort"
	"time"

	"github.com/wordduel/wordduel/internal/model"
)

// Identity represents a user in API responses
type Identity struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// IdentityFromModel converts a model.Identity to a response Identity
func IdentityFromModel(id *model.Identity) Identity {
	return Identity{
		UserID:    string(id.UserID),
		Username:  id.Handle,
		CreatedAt: id.CreatedAt,
	}
}

// Room represents a room in API responses
type Room struct {
	RoomID            string    `json:"roomId"`
	Players           []string  `json:"players"`
	Status            string    `json:"status"`
	CurrentTurnUserID string    `json:"currentTurnUserId,omitempty"`
	RemainingAttempts int       `json:"remainingAttempts"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]string, len(r.Players))
	for i, p := range r.Players {
		players[i] = string(p)
	}
	return Room{
		RoomID:            string(r.RoomID),
		Players:           players,
		Status:            string(r.Status),
		CurrentTurnUserID: string(r.CurrentTurnUserID),
		RemainingAttempts: r.RemainingAttempts,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// Game is the public snapshot of a game in API responses. The secret word
// never leaves the game authority.
type Game struct {
	RoomID            string   `json:"roomId"`
	Players           []string `json:"players"`
	MaskedWord        string   `json:"maskedWord"`
	GuessedLetters    []string `json:"guessedLetters"`
	RemainingAttempts int      `json:"remainingAttempts"`
	CurrentTurnUserID string   `json:"currentTurnUserId"`
	WinnerUserID      string   `json:"winnerUserId,omitempty"`
	Status            string   `json:"status"`
}

// GameFromModel converts a model.GameState to a public response Game
func GameFromModel(g *model.GameState) Game {
	players := make([]string, len(g.Players))
	for i, p := range g.Players {
		players[i] = string(p)
	}
	letters := make([]string, 0, len(g.GuessedLetters))
	for l := range g.GuessedLetters {
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return Game{
		RoomID:            string(g.RoomID),
		Players:           players,
		MaskedWord:        g.MaskedWord,
		GuessedLetters:    letters,
		RemainingAttempts: g.RemainingAttempts,
		CurrentTurnUserID: string(g.CurrentTurnUserID),
		WinnerUserID:      string(g.WinnerUserID),
		Status:            string(g.Status()),
	}
}
