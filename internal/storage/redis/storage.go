package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	key := roomKey(room.RoomID)

	// Track creation order on first save only; resaves keep their slot
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.RoomTTL)
	if exists == 0 {
		pipe.RPush(ctx, roomOrderKey(), string(room.RoomID))
		if s.cfg.RoomTTL > 0 {
			pipe.Expire(ctx, roomOrderKey(), s.cfg.RoomTTL)
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) FindWaitingRoom(ctx context.Context) (*model.Room, error) {
	ids, err := s.client.LRange(ctx, roomOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		room, err := s.GetRoom(ctx, model.RoomID(id))
		if err != nil {
			if errors.Is(err, model.ErrRoomNotFound) {
				continue // Room may have expired
			}
			return nil, err
		}
		if room.IsJoinable() {
			return room, nil
		}
	}
	return nil, model.ErrRoomNotFound
}

func (s *Storage) NextRoomSeq(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, roomSeqKey()).Result()
}

// Game state operations

func (s *Storage) SaveGameState(ctx context.Context, state *model.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, gameKey(state.RoomID), data, s.cfg.GameTTL).Err()
}

func (s *Storage) GetGameState(ctx context.Context, id model.RoomID) (*model.GameState, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Identity operations

func (s *Storage) SaveIdentity(ctx context.Context, identity *model.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return err
	}

	// Pipeline keeps the record and the handle index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, identityKey(identity.UserID), data, s.cfg.IdentityTTL)
	pipe.Set(ctx, handleIndexKey(identity.Handle), string(identity.UserID), s.cfg.IdentityTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetIdentity(ctx context.Context, id model.UserID) (*model.Identity, error) {
	data, err := s.client.Get(ctx, identityKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var identity model.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *Storage) GetIdentityByHandle(ctx context.Context, handle string) (*model.Identity, error) {
	id, err := s.client.Get(ctx, handleIndexKey(handle)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetIdentity(ctx, model.UserID(id))
}

func (s *Storage) NextUserSeq(ctx context.Context) (int64, error) {
	return s.client.Incr(ctx, userSeqKey()).Result()
}
