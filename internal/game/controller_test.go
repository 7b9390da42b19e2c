package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordduel/wordduel/internal/dependencies/mocks"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage/memory"
	"github.com/wordduel/wordduel/internal/testutil"
	"github.com/wordduel/wordduel/internal/words"
)

type reconcileCall struct {
	roomID      model.RoomID
	currentTurn model.UserID
	attempts    int
	status      model.RoomStatus
}

// fakeReconciler records reconciliation reports and can be told to fail
type fakeReconciler struct {
	calls []reconcileCall
	err   error
}

func (f *fakeReconciler) ReportRoomState(ctx context.Context, roomID model.RoomID, currentTurn model.UserID, remainingAttempts int, status model.RoomStatus) error {
	f.calls = append(f.calls, reconcileCall{roomID, currentTurn, remainingAttempts, status})
	return f.err
}

// fakePublisher records pushed updates per room
type fakePublisher struct {
	updates map[model.RoomID][]model.GameUpdate
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{updates: make(map[model.RoomID][]model.GameUpdate)}
}

func (f *fakePublisher) Publish(roomID model.RoomID, update model.GameUpdate) {
	f.updates[roomID] = append(f.updates[roomID], update)
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	words      *words.Service
	reconciler *fakeReconciler
	publisher  *fakePublisher
	random     *mocks.MockRandom
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.random = mocks.NewMockRandom()
	s.words = words.New(s.random)
	s.reconciler = &fakeReconciler{}
	s.publisher = newFakePublisher()
	s.clock = mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	s.controller = NewController(s.storage, s.words, s.reconciler, s.publisher, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

// initMango starts a game for r1 with the secret word pinned to MANGO
func (s *ControllerSuite) initMango() {
	s.random.QueueIntn(2) // DefaultWords[2] == "MANGO"
	_, err := s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1", "u2"}, "u1", 6)
	s.Require().NoError(err)
}

// InitGame tests

func (s *ControllerSuite) TestInitGameCreatesMaskedState() {
	s.initMango()

	state, err := s.controller.GetState(s.ctx, "r1")
	s.Require().NoError(err)

	s.Equal("MANGO", state.SecretWord)
	s.Equal("_____", state.MaskedWord)
	s.Empty(state.GuessedLetters)
	s.Equal(6, state.RemainingAttempts)
	s.Equal(model.UserID("u1"), state.CurrentTurnUserID)
	s.Equal(model.UserID(""), state.WinnerUserID)
}

func (s *ControllerSuite) TestInitGamePushesInitialUpdate() {
	s.initMango()

	s.Require().Len(s.publisher.updates["r1"], 1)
	update := s.publisher.updates["r1"][0]
	s.Equal(model.EventGameUpdate, update.Event)
	s.Equal("_____", update.MaskedWord)
	s.Equal(model.RoomStatusInProgress, update.Status)
}

func (s *ControllerSuite) TestInitGameDefaultsTurnAndAttempts() {
	s.random.QueueIntn(0)
	state, err := s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1", "u2"}, "", 0)
	s.Require().NoError(err)

	s.Equal(model.UserID("u1"), state.CurrentTurnUserID)
	s.Equal(DefaultAttempts, state.RemainingAttempts)
}

func (s *ControllerSuite) TestInitGameRequiresTwoPlayers() {
	_, err := s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1"}, "u1", 6)
	s.ErrorIs(err, model.ErrPlayerCount)
}

func (s *ControllerSuite) TestInitGameOverwritesPriorState() {
	s.initMango()
	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.Require().NoError(err)

	s.random.QueueIntn(0) // "APPLE"
	_, err = s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1", "u2"}, "u1", 6)
	s.Require().NoError(err)

	state, err := s.controller.GetState(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal("APPLE", state.SecretWord)
	s.Empty(state.GuessedLetters)
}

// SubmitMove tests

func (s *ControllerSuite) TestReferenceScenario() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.Require().NoError(err)
	s.Equal("M____", update.MaskedWord)
	s.Equal(6, update.RemainingAttempts)
	s.Equal(model.UserID("u2"), update.CurrentTurnUserID)

	update, err = s.controller.SubmitMove(s.ctx, "r1", "u2", "Z")
	s.Require().NoError(err)
	s.Equal(5, update.RemainingAttempts)
	s.Equal(model.UserID("u1"), update.CurrentTurnUserID)

	update, err = s.controller.SubmitMove(s.ctx, "r1", "u1", "MANGO")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), update.WinnerUserID)
	s.Equal("MANGO", update.MaskedWord)
	s.Equal(model.RoomStatusFinished, update.Status)
}

func (s *ControllerSuite) TestCorrectLettersNeverCostAttempts() {
	s.initMango()

	// Alternating players spell out MANGO letter by letter
	moves := []struct {
		user   model.UserID
		letter string
	}{
		{"u1", "M"}, {"u2", "A"}, {"u1", "N"}, {"u2", "G"}, {"u1", "O"},
	}
	var update *model.GameUpdate
	var err error
	for _, m := range moves {
		update, err = s.controller.SubmitMove(s.ctx, "r1", m.user, m.letter)
		s.Require().NoError(err)
		s.Equal(6, update.RemainingAttempts)
	}

	// The mover who completed the reveal wins
	s.Equal("MANGO", update.MaskedWord)
	s.Equal(model.UserID("u1"), update.WinnerUserID)
}

func (s *ControllerSuite) TestWrongLetterCostsOneAttempt() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "Z")
	s.Require().NoError(err)
	s.Equal(5, update.RemainingAttempts)

	state, _ := s.controller.GetState(s.ctx, "r1")
	s.True(state.GuessedLetters["Z"])
}

func (s *ControllerSuite) TestRepeatedWrongLetterCostsAgain() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "Z")
	s.Require().NoError(err)
	update, err := s.controller.SubmitMove(s.ctx, "r1", "u2", "Z")
	s.Require().NoError(err)

	// Guessed set gains nothing, the budget still pays
	s.Equal(4, update.RemainingAttempts)
	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Len(state.GuessedLetters, 1)
}

func (s *ControllerSuite) TestRepeatedCorrectLetterIsFree() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.Require().NoError(err)
	update, err := s.controller.SubmitMove(s.ctx, "r1", "u2", "M")
	s.Require().NoError(err)

	s.Equal(6, update.RemainingAttempts)
	s.Equal("M____", update.MaskedWord)
}

func (s *ControllerSuite) TestWrongWordCostsOneAttempt() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "PEACH")
	s.Require().NoError(err)
	s.Equal(5, update.RemainingAttempts)
	s.Equal("_____", update.MaskedWord)
	s.Equal(model.UserID(""), update.WinnerUserID)
}

func (s *ControllerSuite) TestGuessIsNormalized() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "  mango ")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), update.WinnerUserID)
}

func (s *ControllerSuite) TestTurnAlternatesAfterEveryAcceptedMove() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "A")
	s.Require().NoError(err)
	s.Equal(model.UserID("u2"), update.CurrentTurnUserID)

	update, err = s.controller.SubmitMove(s.ctx, "r1", "u2", "N")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), update.CurrentTurnUserID)
}

func (s *ControllerSuite) TestWinningMoveKeepsTurnOnWinner() {
	s.initMango()

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "MANGO")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), update.CurrentTurnUserID)
}

func (s *ControllerSuite) TestWrongTurnRejectedAndStateUnchanged() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u2", "M")
	s.ErrorIs(err, model.ErrWrongTurn)

	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Empty(state.GuessedLetters)
	s.Equal(6, state.RemainingAttempts)
	s.Equal(model.UserID("u1"), state.CurrentTurnUserID)
}

func (s *ControllerSuite) TestConcurrentMovesSameTurnOnlyOneWins() {
	s.initMango()

	errs := make(chan error, 2)
	for _, guess := range []string{"M", "A"} {
		go func(guess string) {
			_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", guess)
			errs <- err
		}(guess)
	}

	var succeeded, wrongTurn int
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, model.ErrWrongTurn):
			wrongTurn++
		default:
			s.Require().NoError(err)
		}
	}

	// The moves serialize per room: the first flips the turn to u2, so the
	// second is rejected
	s.Equal(1, succeeded)
	s.Equal(1, wrongTurn)

	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Equal(model.UserID("u2"), state.CurrentTurnUserID)
	s.Len(state.GuessedLetters, 1)
	s.Equal(6, state.RemainingAttempts)
}

func (s *ControllerSuite) TestNonPlayerRejected() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u9", "M")
	s.ErrorIs(err, model.ErrNotInGame)

	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Empty(state.GuessedLetters)
	s.Equal(6, state.RemainingAttempts)
}

func (s *ControllerSuite) TestMoveAfterGameOverRejected() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "MANGO")
	s.Require().NoError(err)

	_, err = s.controller.SubmitMove(s.ctx, "r1", "u2", "A")
	s.ErrorIs(err, model.ErrGameOver)

	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Equal(model.UserID("u1"), state.WinnerUserID)
}

func (s *ControllerSuite) TestAttemptsExhaustedEndsGameWithNoWinner() {
	s.random.QueueIntn(2)
	_, err := s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1", "u2"}, "u1", 2)
	s.Require().NoError(err)

	_, err = s.controller.SubmitMove(s.ctx, "r1", "u1", "Z")
	s.Require().NoError(err)
	update, err := s.controller.SubmitMove(s.ctx, "r1", "u2", "X")
	s.Require().NoError(err)

	s.Equal(0, update.RemainingAttempts)
	s.Equal(model.UserID(""), update.WinnerUserID)
	s.Equal(model.RoomStatusFinished, update.Status)

	_, err = s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ControllerSuite) TestAttemptsNeverGoNegative() {
	s.random.QueueIntn(2)
	_, err := s.controller.InitGame(s.ctx, "r1", []model.UserID{"u1", "u2"}, "u1", 1)
	s.Require().NoError(err)

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "WRONGWORD")
	s.Require().NoError(err)
	s.Equal(0, update.RemainingAttempts)
}

func (s *ControllerSuite) TestInvalidGuesses() {
	s.initMango()

	for _, guess := range []string{"", "   ", "7", "!"} {
		_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", guess)
		s.ErrorIs(err, model.ErrInvalidGuess, "guess %q", guess)
	}

	// Rejected guesses leave the state untouched
	state, _ := s.controller.GetState(s.ctx, "r1")
	s.Equal(6, state.RemainingAttempts)
	s.Equal(model.UserID("u1"), state.CurrentTurnUserID)
}

func (s *ControllerSuite) TestMoveOnUnknownRoom() {
	_, err := s.controller.SubmitMove(s.ctx, "r9", "u1", "A")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Reconciliation and fan-out

func (s *ControllerSuite) TestEveryAcceptedMoveReconciles() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.Require().NoError(err)

	s.Require().Len(s.reconciler.calls, 1)
	call := s.reconciler.calls[0]
	s.Equal(model.RoomID("r1"), call.roomID)
	s.Equal(model.UserID("u2"), call.currentTurn)
	s.Equal(6, call.attempts)
	s.Equal(model.RoomStatusInProgress, call.status)
}

func (s *ControllerSuite) TestFinishingMoveReconcilesFinished() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "MANGO")
	s.Require().NoError(err)

	s.Require().Len(s.reconciler.calls, 1)
	s.Equal(model.RoomStatusFinished, s.reconciler.calls[0].status)
}

func (s *ControllerSuite) TestMoveCommitsWhenReconcileFails() {
	s.initMango()
	s.reconciler.err = errors.New("session authority unreachable")

	update, err := s.controller.SubmitMove(s.ctx, "r1", "u1", "M")
	s.Require().NoError(err)
	s.Equal("M____", update.MaskedWord)

	// Local state committed and the observer push still went out
	state, _ := s.controller.GetState(s.ctx, "r1")
	s.True(state.GuessedLetters["M"])
	s.Len(s.publisher.updates["r1"], 2) // init + move
}

func (s *ControllerSuite) TestRejectedMovesDoNotPush() {
	s.initMango()

	_, err := s.controller.SubmitMove(s.ctx, "r1", "u2", "M")
	s.ErrorIs(err, model.ErrWrongTurn)

	s.Len(s.publisher.updates["r1"], 1) // init only
	s.Empty(s.reconciler.calls)
}
