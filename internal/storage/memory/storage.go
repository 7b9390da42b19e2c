package memory

import (
	"context"
	"sync"

	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// State is lost on process restart; this is the documented durability model.
type Storage struct {
	mu sync.RWMutex

	rooms     map[model.RoomID]*model.Room
	roomOrder []model.RoomID // creation order, for the oldest-WAITING scan
	roomSeq   int64

	games map[model.RoomID]*model.GameState

	identities  map[model.UserID]*model.Identity
	handleIndex map[string]model.UserID
	userSeq     int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:       make(map[model.RoomID]*model.Room),
		games:       make(map[model.RoomID]*model.GameState),
		identities:  make(map[model.UserID]*model.Identity),
		handleIndex: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.RoomID]; !ok {
		s.roomOrder = append(s.roomOrder, room.RoomID)
	}
	s.rooms[room.RoomID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) FindWaitingRoom(ctx context.Context) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.roomOrder {
		if room := s.rooms[id]; room != nil && room.IsJoinable() {
			return room, nil
		}
	}
	return nil, model.ErrRoomNotFound
}

func (s *Storage) NextRoomSeq(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomSeq++
	return s.roomSeq, nil
}

// Game state operations

func (s *Storage) SaveGameState(ctx context.Context, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[state.RoomID] = state
	return nil
}

func (s *Storage) GetGameState(ctx context.Context, id model.RoomID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return state, nil
}

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[identity.UserID] = identity
	s.handleIndex[identity.Handle] = identity.UserID
	return nil
}

func (s *Storage) GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return identity, nil
}

func (s *Storage) GetIdentityByHandle(ctx context.Context, handle string) (*model.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.handleIndex[handle]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	identity, ok := s.identities[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return identity, nil
}

func (s *Storage) NextUserSeq(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	return s.userSeq, nil
}
