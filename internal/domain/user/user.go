// Package user manages camper profiles: the nickname and avatar a user picks
// on first login, keyed by the identity provider's subject.
package user

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyRegistered is returned by Repository.Create when a profile with
// the same subject already exists.
var ErrAlreadyRegistered = errors.New("user already registered")

// Profile is one registered user's public profile.
type Profile struct {
	ID          uint      `json:"id"`
	Auth0UserID string    `json:"auth0_user_id"`
	Nickname    string    `json:"nickname"`
	Avatar      *string   `json:"avatar"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository defines the interface for profile data access. Lookups that find
// nothing return (nil, nil).
type Repository interface {
	GetByAuth0ID(ctx context.Context, auth0UserID string) (*Profile, error)

	// Create stores a new profile. A duplicate subject yields
	// ErrAlreadyRegistered.
	Create(ctx context.Context, p *Profile) error

	// Update replaces the nickname and avatar of an existing profile and
	// reports how many rows were affected.
	Update(ctx context.Context, auth0UserID, nickname string, avatar *string) (int64, error)
}
