package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shophub/backend/internal/tokens"
)

var testSecret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Jane", "jane@example.com", "hunter2")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEmpty(t, token)
	require.NotEqual(t, "hunter2", user.PasswordHash)

	claims, err := tokens.AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)

	// Same email again conflicts.
	_, _, err = svc.Register(ctx, "Jane 2", "jane@example.com", "other")
	require.ErrorIs(t, err, ErrConflict)

	logged, loginToken, err := svc.Login(ctx, "jane@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, logged.ID)
	require.NotEmpty(t, loginToken)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}

	_, _, err := svc.Register(context.Background(), "", "jane@example.com", "x")
	require.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Register(context.Background(), "Jane", "jane@example.com", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLoginBadCredentials(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Jane", "jane@example.com", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong")
	require.ErrorIs(t, err, ErrValidation)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	require.ErrorIs(t, err, ErrValidation)
}

func TestMe(t *testing.T) {
	r := newTestRepo(t)
	svc := &AuthService{Repo: r, JWTSecret: testSecret}
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Jane", "jane@example.com", "hunter2")
	require.NoError(t, err)

	got, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "Jane", got.Name)

	_, err = svc.Me(ctx, user.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
}
