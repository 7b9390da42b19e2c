package remote

import (
	"context"
	"fmt"

	"github.com/wordduel/wordduel/internal/api/request"
	"github.com/wordduel/wordduel/internal/api/response"
)

// IdentityClient calls the identity service over HTTP
type IdentityClient struct {
	client
}

// NewIdentityClient creates a client for the identity service at baseURL
func NewIdentityClient(baseURL string) *IdentityClient {
	return &IdentityClient{client: newClient(baseURL)}
}

// Login resolves a handle to its identity, minting one on first use
func (c *IdentityClient) Login(ctx context.Context, username string) (*response.Identity, error) {
	var id response.Identity
	if err := c.post(ctx, "/users/login", request.LoginRequest{Username: username}, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// GetUser fetches an identity by user id
func (c *IdentityClient) GetUser(ctx context.Context, userID string) (*response.Identity, error) {
	var id response.Identity
	if err := c.get(ctx, fmt.Sprintf("/users/%s", userID), &id); err != nil {
		return nil, err
	}
	return &id, nil
}
