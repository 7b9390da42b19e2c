package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordduel/wordduel/internal/model"
)

// TestFullDuel plays a complete duel through all three services: login,
// pairing, alternating guesses, win, and the session authority's mirror
// catching up after every move.
func TestFullDuel(t *testing.T) {
	duel := NewTestDuel()
	ctx := context.Background()

	// MANGO is index 2 in the built-in list
	duel.MockRandom.QueueIntn(2)

	alice, err := duel.IdentityService.Login(ctx, "alice")
	require.NoError(t, err)
	bob, err := duel.IdentityService.Login(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, model.UserID("u1"), alice.UserID)
	require.Equal(t, model.UserID("u2"), bob.UserID)

	room, created, err := duel.SessionController.RequestPairing(ctx, alice.UserID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoomStatusWaiting, room.Status)

	room, created, err = duel.SessionController.RequestPairing(ctx, bob.UserID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, model.RoomStatusInProgress, room.Status)

	// Pairing initialized gameplay state
	state, err := duel.GameController.GetState(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, "MANGO", state.SecretWord)
	assert.Equal(t, "_____", state.MaskedWord)
	assert.Equal(t, alice.UserID, state.CurrentTurnUserID)

	update, err := duel.GameController.SubmitMove(ctx, room.RoomID, alice.UserID, "M")
	require.NoError(t, err)
	assert.Equal(t, "M____", update.MaskedWord)

	// The session authority's mirror caught up
	room, err = duel.SessionController.GetRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, bob.UserID, room.CurrentTurnUserID)
	assert.Equal(t, 6, room.RemainingAttempts)

	update, err = duel.GameController.SubmitMove(ctx, room.RoomID, bob.UserID, "Z")
	require.NoError(t, err)
	assert.Equal(t, 5, update.RemainingAttempts)

	room, err = duel.SessionController.GetRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, 5, room.RemainingAttempts)

	update, err = duel.GameController.SubmitMove(ctx, room.RoomID, alice.UserID, "MANGO")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, update.WinnerUserID)
	assert.Equal(t, "MANGO", update.MaskedWord)

	room, err = duel.SessionController.GetRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusFinished, room.Status)

	// Finished rooms never unwind; a third player opens a fresh room
	_, err = duel.GameController.SubmitMove(ctx, room.RoomID, bob.UserID, "A")
	assert.ErrorIs(t, err, model.ErrGameOver)

	carol, err := duel.IdentityService.Login(ctx, "carol")
	require.NoError(t, err)
	room2, created, err := duel.SessionController.RequestPairing(ctx, carol.UserID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoomID("r2"), room2.RoomID)
}

func TestFactoryRejectsBadStorageType(t *testing.T) {
	_, err := NewIdentityApp(Config{StorageType: "bolt"})
	assert.Error(t, err)
}

func TestSessionAppRequiresGameURL(t *testing.T) {
	_, err := NewSessionApp(Config{})
	assert.Error(t, err)
}

func TestGameAppRequiresSessionURL(t *testing.T) {
	_, err := NewGameApp(Config{})
	assert.Error(t, err)
}
