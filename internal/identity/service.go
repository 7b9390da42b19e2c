// Package identity implements the identity collaborator: a handle -> stable
// user ID mapping with unauthenticated, idempotent login. The core services
// consume identities by ID only; this service is the thin shim that mints
// them.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wordduel/wordduel/internal/keylock"
	"github.com/wordduel/wordduel/internal/model"
	"github.com/wordduel/wordduel/internal/storage"

	"github.com/wordduel/wordduel/internal/dependencies/clock"
)

// Service maps handles to stable identifiers
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	handles *keylock.KeyLock
}

// New creates a new identity service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "identity")),
		handles: keylock.New(),
	}
}

// Login returns the identity for a handle, creating it on first use.
// The same handle always resolves to the same identifier; there is no
// authentication by contract.
func (s *Service) Login(ctx context.Context, handle string) (*model.Identity, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, model.ErrHandleRequired
	}

	// Serialize per handle so concurrent first logins mint one identity
	s.handles.Lock(handle)
	defer s.handles.Unlock(handle)

	identity, err := s.storage.GetIdentityByHandle(ctx, handle)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	seq, err := s.storage.NextUserSeq(ctx)
	if err != nil {
		return nil, err
	}

	identity = &model.Identity{
		UserID:    model.UserID(fmt.Sprintf("u%d", seq)),
		Handle:    handle,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveIdentity(ctx, identity); err != nil {
		return nil, err
	}

	s.logger.Info("identity created",
		slog.String("user_id", string(identity.UserID)),
		slog.String("handle", handle),
	)

	return identity, nil
}

// GetUser retrieves an identity by ID
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.Identity, error) {
	return s.storage.GetIdentity(ctx, id)
}
