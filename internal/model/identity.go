package model

import "time"

// UserID uniquely identifies a user across all services
type UserID string

// Identity represents a user known to the identity service.
// Identities are immutable once created and are referenced by ID everywhere
// else in the system.
type Identity struct {
	UserID    UserID    `json:"userId"`
	Handle    string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}
