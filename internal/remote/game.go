package remote

import (
	"context"

	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/session"
)

// GameClient calls the game authority over HTTP. It is the session
// authority's GameStarter.
type GameClient struct {
	client
}

var _ session.GameStarter = (*GameClient)(nil)

// NewGameClient creates a client for the game authority at baseURL
func NewGameClient(baseURL string) *GameClient {
	return &GameClient{client: newClient(baseURL)}
}

// InitGame asks the game authority to create gameplay state for a freshly
// paired room
func (c *GameClient) InitGame(ctx context.Context, roomID model.RoomID, players []model.UserID, currentTurn model.UserID, remainingAttempts int) error {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = string(p)
	}

	req := request.StartGameRequest{
		RoomID:            string(roomID),
		Players:           ids,
		CurrentTurnUserID: string(currentTurn),
		RemainingAttempts: remainingAttempts,
	}
	return c.post(ctx, "/game/start", req, nil)
}
