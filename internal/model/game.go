package model

import (
	"strings"
	"time"
)

// MaskRune is the placeholder shown for unrevealed letters
const MaskRune = '_'

// GameState is the game authority's record for one room, 1:1 with a room
// that has reached IN_PROGRESS. It is mutated only by accepted moves.
// GameState is internal to the game authority; clients only ever receive the
// public view built by Update, which omits the secret word.
type GameState struct {
	RoomID            RoomID          `json:"roomId"`
	Players           []UserID        `json:"players"`
	SecretWord        string          `json:"secretWord"`
	GuessedLetters    map[string]bool `json:"guessedLetters"`
	MaskedWord        string          `json:"maskedWord"`
	RemainingAttempts int             `json:"remainingAttempts"`
	CurrentTurnUserID UserID          `json:"currentTurnUserId"`
	WinnerUserID      UserID          `json:"winnerUserId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// IsTerminal reports whether the game accepts no further moves: either a
// winner is set or the attempt budget is exhausted.
func (g *GameState) IsTerminal() bool {
	return g.WinnerUserID != "" || g.RemainingAttempts <= 0
}

// Status maps the gameplay state onto the room lifecycle status reported
// back to the session authority. Won and lost both report FINISHED.
func (g *GameState) Status() RoomStatus {
	if g.IsTerminal() {
		return RoomStatusFinished
	}
	return RoomStatusInProgress
}

// OtherPlayer returns the member of Players that is not userID, or "" when
// userID is not a player.
func (g *GameState) OtherPlayer(userID UserID) UserID {
	for _, p := range g.Players {
		if p != userID {
			return p
		}
	}
	return ""
}

// HasPlayer reports whether the given user is a player in this game
func (g *GameState) HasPlayer(userID UserID) bool {
	for _, p := range g.Players {
		if p == userID {
			return true
		}
	}
	return false
}

// MaskWord renders word with every letter not present in guessed replaced by
// MaskRune. The masked word is always derivable from the secret word and the
// guessed-letter set; it is never updated independently.
func MaskWord(word string, guessed map[string]bool) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if guessed[string(r)] {
			b.WriteRune(r)
		} else {
			b.WriteRune(MaskRune)
		}
	}
	return b.String()
}

// GameUpdate is the public view of a game pushed to observers and returned
// from move submissions. It never exposes the secret word.
type GameUpdate struct {
	Event             string     `json:"event"`
	RoomID            RoomID     `json:"roomId"`
	MaskedWord        string     `json:"maskedWord"`
	RemainingAttempts int        `json:"remainingAttempts"`
	CurrentTurnUserID UserID     `json:"currentTurnUserId"`
	WinnerUserID      UserID     `json:"winnerUserId,omitempty"`
	Status            RoomStatus `json:"status"`
}

// EventGameUpdate is the event name carried by every observer push
const EventGameUpdate = "GAME_UPDATE"

// Update builds the public view of the game state
func (g *GameState) Update() GameUpdate {
	return GameUpdate{
		Event:             EventGameUpdate,
		RoomID:            g.RoomID,
		MaskedWord:        g.MaskedWord,
		RemainingAttempts: g.RemainingAttempts,
		CurrentTurnUserID: g.CurrentTurnUserID,
		WinnerUserID:      g.WinnerUserID,
		Status:            g.Status(),
	}
}
