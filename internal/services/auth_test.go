package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthIssueResolve(t *testing.T) {
	auth := NewAuthService("secret", "pointmall", time.Hour)

	token, err := auth.Issue("8f0c1f1e-0000-4000-8000-000000000001")
	require.NoError(t, err)

	sub, err := auth.Resolve(token)
	require.NoError(t, err)
	require.Equal(t, "8f0c1f1e-0000-4000-8000-000000000001", sub)
}

func TestAuthRejects(t *testing.T) {
	auth := NewAuthService("secret", "pointmall", time.Hour)
	token, err := auth.Issue("u-1")
	require.NoError(t, err)

	_, err = auth.Resolve("")
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Resolve(token + "x")
	require.ErrorIs(t, err, ErrUnauthorized)

	other := NewAuthService("other-secret", "pointmall", time.Hour)
	_, err = other.Resolve(token)
	require.ErrorIs(t, err, ErrUnauthorized)

	wrongIssuer := NewAuthService("secret", "someone-else", time.Hour)
	_, err = wrongIssuer.Resolve(token)
	require.ErrorIs(t, err, ErrUnauthorized)

	expired := NewAuthService("secret", "pointmall", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Resolve(token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountRegisterAndLogin(t *testing.T) {
	store := newMemStore()
	auth := NewAuthService("secret", "pointmall", time.Hour)
	svc := NewAccountService(store, auth, zap.NewNop())
	ctx := context.Background()

	user, err := svc.Register(ctx, " Reader@Example.com ", "secret123", "")
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", user.Email)
	require.Equal(t, "reader", user.Username)
	require.NotEmpty(t, user.UUID)
	require.NotEqual(t, "secret123", user.Password)

	_, err = svc.Register(ctx, "reader@example.com", "secret123", "")
	require.ErrorIs(t, err, ErrEmailTaken)
	_, err = svc.Register(ctx, "not-an-email", "secret123", "")
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(ctx, "short@example.com", "123", "")
	require.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.Login(ctx, "reader@example.com", "wrong-pass")
	require.ErrorIs(t, err, ErrValidation)

	logged, token, err := svc.Login(ctx, "READER@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)

	sub, err := auth.Resolve(token)
	require.NoError(t, err)
	found, err := svc.FindByUUID(ctx, sub)
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = svc.FindByUUID(ctx, "missing")
	require.ErrorIs(t, err, ErrAccountNotFound)
	require.ErrorIs(t, err, ErrUnauthorized)
}
