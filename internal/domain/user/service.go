package user

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"djigbo-server/internal/utils/apperr"
)

const (
	// MaxNicknameLength bounds the display name.
	MaxNicknameLength = 50

	// MaxAvatarBytes caps the decoded avatar image size at 5MB.
	MaxAvatarBytes = 5 * 1024 * 1024
)

// Service exposes profile operations.
type Service struct {
	repo Repository
}

// NewService creates a user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Check returns the caller's profile, or nil when none is registered yet.
func (s *Service) Check(ctx context.Context, auth0UserID string) (*Profile, error) {
	p, err := s.repo.GetByAuth0ID(ctx, auth0UserID)
	if err != nil {
		return nil, apperr.Internal("failed to load user profile", err)
	}
	return p, nil
}

// Register creates the caller's profile. Registering twice is a conflict.
func (s *Service) Register(ctx context.Context, auth0UserID, nickname string, avatar *string) (*Profile, error) {
	nickname, avatar, err := validateProfileInput(nickname, avatar)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByAuth0ID(ctx, auth0UserID)
	if err != nil {
		return nil, apperr.Internal("failed to load user profile", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("user is already registered")
	}

	p := &Profile{Auth0UserID: auth0UserID, Nickname: nickname, Avatar: avatar}
	if err := s.repo.Create(ctx, p); err != nil {
		// Concurrent registrations can both pass the existence check above;
		// the store's unique index decides the loser.
		if errors.Is(err, ErrAlreadyRegistered) {
			return nil, apperr.Conflict("user is already registered")
		}
		return nil, apperr.Internal("failed to register user", err)
	}
	return p, nil
}

// Update replaces the caller's nickname and avatar.
func (s *Service) Update(ctx context.Context, auth0UserID, nickname string, avatar *string) (*Profile, error) {
	nickname, avatar, err := validateProfileInput(nickname, avatar)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.Update(ctx, auth0UserID, nickname, avatar)
	if err != nil {
		return nil, apperr.Internal("failed to update user profile", err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("user is not registered")
	}
	return s.Check(ctx, auth0UserID)
}

// Avatar returns a user's avatar data URL for public display, or a not-found
// error when the user has no avatar set.
func (s *Service) Avatar(ctx context.Context, auth0UserID string) (string, error) {
	p, err := s.repo.GetByAuth0ID(ctx, auth0UserID)
	if err != nil {
		return "", apperr.Internal("failed to load user profile", err)
	}
	if p == nil || p.Avatar == nil || *p.Avatar == "" {
		return "", apperr.NotFound("avatar not found")
	}
	return *p.Avatar, nil
}

func validateProfileInput(nickname string, avatar *string) (string, *string, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return "", nil, apperr.Validation("nickname is required")
	}
	if len(nickname) > MaxNicknameLength {
		return "", nil, apperr.Validation("nickname is too long")
	}
	if avatar != nil && *avatar != "" {
		if err := ValidateAvatar(*avatar); err != nil {
			return "", nil, err
		}
	} else {
		avatar = nil
	}
	return nickname, avatar, nil
}

// ValidateAvatar accepts either an external image URL or an inline image data
// URL bounded by MaxAvatarBytes.
func ValidateAvatar(avatar string) error {
	if strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		if _, err := url.ParseRequestURI(avatar); err != nil {
			return apperr.Validation("avatar URL is not valid")
		}
		return nil
	}
	return ValidateAvatarDataURL(avatar)
}

// ValidateAvatarDataURL checks that the avatar is an image data URL whose
// decoded payload fits within MaxAvatarBytes. Base64 inflates the payload by
// roughly a third, so the decoded size is derived from the encoded length.
func ValidateAvatarDataURL(dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return apperr.Validation("avatar must be an image data URL")
	}
	_, payload, found := strings.Cut(dataURL, ",")
	if !found || payload == "" {
		return apperr.Validation("avatar data URL carries no payload")
	}
	decodedSize := (len(payload) * 3) / 4
	if decodedSize > MaxAvatarBytes {
		return apperr.Validation("avatar exceeds the 5MB size limit")
	}
	return nil
}
