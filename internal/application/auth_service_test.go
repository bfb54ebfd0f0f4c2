package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/pkg/helpers"
)

func newAuthService(repo *fakeUserRepo) *AuthService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, fakeHasher{}, jwt, nil, testLogger())
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(entity.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hashed:Secret123", Role: entity.RoleUser, IsActive: true})
	svc := newAuthService(repo)
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "bob@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = svc.Authenticate(ctx, "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(entity.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hashed:Secret123", Role: entity.RoleUser, IsActive: false})
	svc := newAuthService(repo)

	_, err := svc.Authenticate(context.Background(), "bob@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRefreshRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.add(entity.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hashed:Secret123", Role: entity.RoleAdmin, IsActive: true})
	svc := newAuthService(repo)
	ctx := context.Background()

	logged, pair, err := svc.Login(ctx, "bob@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	next, userID, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.NotEmpty(t, next.AccessToken)

	_, _, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// An access token is not a refresh token.
	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionResolvesActor(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.add(entity.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hashed:Secret123", Role: entity.RoleAdmin, IsActive: true})
	svc := newAuthService(repo)
	ctx := context.Background()

	_, pair, err := svc.Login(ctx, "bob@example.com", "Secret123")
	require.NoError(t, err)

	actor, err := svc.Session(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, actor.ID)
	assert.Equal(t, entity.RoleAdmin, actor.Role)
	assert.True(t, actor.IsAdmin())

	_, err = svc.Session(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
