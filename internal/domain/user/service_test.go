package user

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djigbo-server/internal/utils/apperr"
)

type memRepo struct {
	profiles map[string]*Profile
	nextID   uint
}

func newMemRepo() *memRepo {
	return &memRepo{profiles: make(map[string]*Profile), nextID: 1}
}

func (m *memRepo) GetByAuth0ID(_ context.Context, auth0UserID string) (*Profile, error) {
	p, ok := m.profiles[auth0UserID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) Create(_ context.Context, p *Profile) error {
	if _, exists := m.profiles[p.Auth0UserID]; exists {
		return ErrAlreadyRegistered
	}
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.profiles[p.Auth0UserID] = &cp
	return nil
}

func (m *memRepo) Update(_ context.Context, auth0UserID, nickname string, avatar *string) (int64, error) {
	p, ok := m.profiles[auth0UserID]
	if !ok {
		return 0, nil
	}
	p.Nickname = nickname
	p.Avatar = avatar
	return 1, nil
}

func strPtr(s string) *string { return &s }

func TestService_Register(t *testing.T) {
	svc := NewService(newMemRepo())

	p, err := svc.Register(context.Background(), "auth0|u1", " Kofi ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Kofi", p.Nickname)
	assert.Nil(t, p.Avatar)

	_, err = svc.Register(context.Background(), "auth0|u1", "Kofi", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.TypeConflict, apperr.From(err).Type)
}

// blindRepo never sees existing rows on lookup, like a registration racing
// past the existence check while another one commits first.
type blindRepo struct{ *memRepo }

func (b *blindRepo) GetByAuth0ID(context.Context, string) (*Profile, error) { return nil, nil }

func TestService_Register_ConcurrentDuplicate(t *testing.T) {
	svc := NewService(&blindRepo{memRepo: newMemRepo()})

	_, err := svc.Register(context.Background(), "auth0|u1", "Kofi", nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "auth0|u1", "Kofi", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.TypeConflict, apperr.From(err).Type)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.Register(context.Background(), "auth0|u1", "   ", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.TypeValidation, apperr.From(err).Type)

	_, err = svc.Register(context.Background(), "auth0|u1", strings.Repeat("n", 51), nil)
	require.Error(t, err)
	assert.Equal(t, apperr.TypeValidation, apperr.From(err).Type)

	_, err = svc.Register(context.Background(), "auth0|u1", "Kofi", strPtr("ftp://example.com/pic.png"))
	require.Error(t, err)
	assert.Equal(t, apperr.TypeValidation, apperr.From(err).Type)
}

func TestService_Update(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "auth0|missing", "Ama", nil)
	require.Error(t, err)
	assert.Equal(t, apperr.TypeNotFound, apperr.From(err).Type)

	_, err = svc.Register(context.Background(), "auth0|u1", "Kofi", nil)
	require.NoError(t, err)

	p, err := svc.Update(context.Background(), "auth0|u1", "Ama", strPtr("data:image/png;base64,aGVsbG8="))
	require.NoError(t, err)
	assert.Equal(t, "Ama", p.Nickname)
	require.NotNil(t, p.Avatar)
}

func TestService_Avatar(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	_, err := svc.Avatar(context.Background(), "auth0|missing")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.Register(context.Background(), "auth0|u1", "Kofi", nil)
	require.NoError(t, err)
	_, err = svc.Avatar(context.Background(), "auth0|u1")
	assert.True(t, apperr.IsNotFound(err))

	_, err = svc.Register(context.Background(), "auth0|u2", "Ama", strPtr("data:image/png;base64,aGVsbG8="))
	require.NoError(t, err)
	avatar, err := svc.Avatar(context.Background(), "auth0|u2")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", avatar)
}

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		name    string
		avatar  string
		wantErr bool
	}{
		{"external https url", "https://example.com/a.png", false},
		{"external http url", "http://example.com/a.png", false},
		{"data url", "data:image/png;base64,aGVsbG8=", false},
		{"other scheme", "ftp://example.com/a.png", true},
		{"garbage", "not-an-avatar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvatar(tt.avatar)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAvatarDataURL(t *testing.T) {
	tests := []struct {
		name    string
		dataURL string
		wantErr bool
	}{
		{"valid png", "data:image/png;base64,aGVsbG8=", false},
		{"valid jpeg", "data:image/jpeg;base64,aGVsbG8=", false},
		{"not a data url", "https://example.com/a.png", true},
		{"wrong media type", "data:text/plain;base64,aGVsbG8=", true},
		{"missing payload", "data:image/png;base64,", true},
		{"no comma", "data:image/png;base64", true},
		{"oversized", "data:image/png;base64," + strings.Repeat("A", (MaxAvatarBytes/3)*4+8), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvatarDataURL(tt.dataURL)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
