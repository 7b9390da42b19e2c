// Package game implements the game authority: the gameplay state machine
// with turn enforcement, attempt accounting, and win/loss evaluation. After
// every accepted move it pushes the public view to the room's observers and
// reports turn/attempts/status back to the session authority, both
// best-effort.
package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wordduel/wordduel/internal/dependencies/clock"
	"github.com/wordduel/wordduel/internal/keylock"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage"
	"github.com/wordduel/wordduel/internal/words"
)

// DefaultAttempts is used when an init call carries no attempt budget
const DefaultAttempts = 6

// RoomReconciler reports the post-move room state back to the session
// authority. Implemented by remote.SessionClient in production.
type RoomReconciler interface {
	ReportRoomState(ctx context.Context, roomID model.RoomID, currentTurn model.UserID, remainingAttempts int, status model.RoomStatus) error
}

// Publisher delivers a public game view to the room's observers.
// Implemented by observer.HubManager.
type Publisher interface {
	Publish(roomID model.RoomID, update model.GameUpdate)
}

// Controller manages gameplay state per room
type Controller struct {
	storage    storage.Storage
	words      *words.Service
	reconciler RoomReconciler
	publisher  Publisher
	clock      clock.Clock
	logger     *slog.Logger

	roomLock *keylock.KeyLock
}

// NewController creates a new game controller
func NewController(
	store storage.Storage,
	wordService *words.Service,
	reconciler RoomReconciler,
	publisher Publisher,
	clk clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    store,
		words:      wordService,
		reconciler: reconciler,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With(slog.String("component", "game")),
		roomLock:   keylock.New(),
	}
}

// InitGame creates gameplay state for a freshly paired room: a secret word
// picked uniformly at random, an empty guessed-letter set, and the turn and
// attempt budget supplied by the session authority. A second call for the
// same room overwrites the prior state; the session authority only ever
// calls this once per room.
func (c *Controller) InitGame(ctx context.Context, roomID model.RoomID, players []model.UserID, currentTurn model.UserID, remainingAttempts int) (*model.GameState, error) {
	if len(players) != model.MaxRoomPlayers {
		return nil, model.ErrPlayerCount
	}
	if currentTurn == "" {
		currentTurn = players[0]
	}
	if remainingAttempts <= 0 {
		remainingAttempts = DefaultAttempts
	}

	word, err := c.words.Pick()
	if err != nil {
		return nil, err
	}

	c.roomLock.Lock(string(roomID))
	defer c.roomLock.Unlock(string(roomID))

	now := c.clock.Now()
	state := &model.GameState{
		RoomID:            roomID,
		Players:           players,
		SecretWord:        word,
		GuessedLetters:    make(map[string]bool),
		MaskedWord:        model.MaskWord(word, nil),
		RemainingAttempts: remainingAttempts,
		CurrentTurnUserID: currentTurn,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := c.storage.SaveGameState(ctx, state); err != nil {
		return nil, err
	}

	c.logger.Info("game initialized",
		slog.String("room_id", string(roomID)),
		slog.String("first_turn", string(currentTurn)),
		slog.Int("attempts", remainingAttempts),
	)

	c.publisher.Publish(roomID, state.Update())
	return state, nil
}

// GetState returns the current game state for a room
func (c *Controller) GetState(ctx context.Context, roomID model.RoomID) (*model.GameState, error) {
	return c.storage.GetGameState(ctx, roomID)
}

// SubmitMove applies one guess for the player whose turn it is.
//
// A single letter is added to the guessed set; a letter absent from the
// secret word costs an attempt, and resubmitting an already-guessed wrong
// letter costs an attempt again (reference-compatible budget policy). A
// multi-character guess is a full-word attempt: an exact match wins and
// reveals the word, a miss costs an attempt. The player who completes the
// reveal wins, whether by letters or by word. Attempts never go below zero;
// at zero with no winner the game is lost and terminal.
//
// The move commits locally first. Reconciliation to the session authority is
// best-effort and never rolls the move back; the observer push follows.
func (c *Controller) SubmitMove(ctx context.Context, roomID model.RoomID, userID model.UserID, guess string) (*model.GameUpdate, error) {
	c.roomLock.Lock(string(roomID))
	defer c.roomLock.Unlock(string(roomID))

	state, err := c.storage.GetGameState(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if state.IsTerminal() {
		return nil, model.ErrGameOver
	}
	if !state.HasPlayer(userID) {
		return nil, model.ErrNotInGame
	}
	if state.CurrentTurnUserID != userID {
		return nil, model.ErrWrongTurn
	}

	norm := strings.ToUpper(strings.TrimSpace(guess))
	if norm == "" {
		return nil, model.ErrInvalidGuess
	}

	if runes := []rune(norm); len(runes) == 1 {
		letter := runes[0]
		if letter < 'A' || letter > 'Z' {
			return nil, model.ErrInvalidGuess
		}
		state.GuessedLetters[string(letter)] = true
		if !strings.ContainsRune(state.SecretWord, letter) {
			state.RemainingAttempts--
		}
	} else {
		if norm == state.SecretWord {
			state.WinnerUserID = userID
			for _, r := range state.SecretWord {
				state.GuessedLetters[string(r)] = true
			}
		} else {
			state.RemainingAttempts--
		}
	}

	state.MaskedWord = model.MaskWord(state.SecretWord, state.GuessedLetters)

	// Completing the reveal wins, even letter by letter
	if state.WinnerUserID == "" && !strings.ContainsRune(state.MaskedWord, model.MaskRune) {
		state.WinnerUserID = userID
	}

	if state.RemainingAttempts < 0 {
		state.RemainingAttempts = 0
	}

	if !state.IsTerminal() {
		state.CurrentTurnUserID = state.OtherPlayer(userID)
	}
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGameState(ctx, state); err != nil {
		return nil, err
	}

	if state.IsTerminal() {
		c.logger.Info("game finished",
			slog.String("room_id", string(roomID)),
			slog.String("winner", string(state.WinnerUserID)),
			slog.Int("attempts_left", state.RemainingAttempts),
		)
	}

	// The move is committed; a reconciliation failure leaves the two
	// authorities briefly inconsistent but never fails the move
	if err := c.reconciler.ReportRoomState(ctx, roomID, state.CurrentTurnUserID, state.RemainingAttempts, state.Status()); err != nil {
		c.logger.Error("failed to reconcile room state",
			slog.String("room_id", string(roomID)),
			slog.Any("error", err),
		)
	}

	update := state.Update()
	c.publisher.Publish(roomID, update)
	return &update, nil
}
