package factory

import (
	"context"
	"time"

	"github.com/wordduel/wordduel/internal/dependencies/mocks"
	"github.com/wordduel/wordduel/internal/game"
	"github.com/wordduel/wordduel/internal/identity"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/observer"
	"github.com/wordduel/wordduel/internal/session"
	"github.com/wordduel/wordduel/internal/storage/memory"
	"github.com/wordduel/wordduel/internal/testutil"
	"github.com/wordduel/wordduel/internal/words"
)

// localStarter forwards init-game calls to an in-process game controller,
// standing in for the HTTP client. The target is set after both controllers
// exist.
type localStarter struct {
	game *game.Controller
}

func (s *localStarter) InitGame(ctx context.Context, roomID model.RoomID, players []model.UserID, currentTurn model.UserID, remainingAttempts int) error {
	_, err := s.game.InitGame(ctx, roomID, players, currentTurn, remainingAttempts)
	return err
}

// localReconciler forwards room-state reports to an in-process session
// controller
type localReconciler struct {
	session *session.Controller
}

func (r *localReconciler) ReportRoomState(ctx context.Context, roomID model.RoomID, currentTurn model.UserID, remainingAttempts int, status model.RoomStatus) error {
	_, err := r.session.Reconcile(ctx, roomID, session.ReconcileUpdate{
		CurrentTurnUserID: &currentTurn,
		RemainingAttempts: &remainingAttempts,
		Status:            &status,
	})
	return err
}

// TestDuel wires all three services in-process with mocked clock and random,
// each with its own storage, for integration tests
type TestDuel struct {
	SessionController *session.Controller
	GameController    *game.Controller
	IdentityService   *identity.Service
	HubManager        *observer.HubManager
	WordService       *words.Service

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestDuel creates a fully wired in-process deployment
func NewTestDuel() *TestDuel {
	logger := testutil.NopLogger()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	wordService := words.New(mockRandom)
	hubManager := observer.NewHubManager(logger)

	starter := &localStarter{}
	reconciler := &localReconciler{}

	sessionController := session.NewController(memory.New(), starter, mockClock, 0, logger)
	gameController := game.NewController(memory.New(), wordService, reconciler, hubManager, mockClock, logger)

	starter.game = gameController
	reconciler.session = sessionController

	return &TestDuel{
		SessionController: sessionController,
		GameController:    gameController,
		IdentityService:   identity.New(memory.New(), mockClock, logger),
		HubManager:        hubManager,
		WordService:       wordService,
		MockClock:         mockClock,
		MockRandom:        mockRandom,
	}
}
