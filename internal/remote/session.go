package remote

import (
	"context"

	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/game"
	"github.com/wordduel/wordduel/internal/model"
)

// SessionClient calls the session authority over HTTP. It is the game
// authority's RoomReconciler.
type SessionClient struct {
	client
}

var _ game.RoomReconciler = (*SessionClient)(nil)

// NewSessionClient creates a client for the session authority at baseURL
func NewSessionClient(baseURL string) *SessionClient {
	return &SessionClient{client: newClient(baseURL)}
}

// ReportRoomState pushes the post-move turn, attempts, and status to the
// session authority's reconciliation endpoint
func (c *SessionClient) ReportRoomState(ctx context.Context, roomID model.RoomID, currentTurn model.UserID, remainingAttempts int, status model.RoomStatus) error {
	turn := string(currentTurn)
	st := string(status)

	req := request.UpdateRoomStateRequest{
		RoomID:            string(roomID),
		CurrentTurnUserID: &turn,
		RemainingAttempts: &remainingAttempts,
		Status:            &st,
	}
	return c.post(ctx, "/rooms/update-state", req, nil)
}
