package usecase

import (
	"context"
	"testing"
	"time"

	"dental-clinic/config"
	"dental-clinic/internal/delivery/dto"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/repository"
	"dental-clinic/internal/testutil"
	"dental-clinic/pkg/actor"
	"dental-clinic/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUsecase(t *testing.T, env *testEnv) (AuthUsecase, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()
	mr, client := testutil.NewRedis(t)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	return NewAuthUsecase(env.db, env.log, repository.NewUserRepository(), jwtService, client, env.audit), jwtService, mr
}

func register(t *testing.T, ctx context.Context, uc AuthUsecase, username, role string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(ctx, &dto.RegisterRequest{
		Username: username,
		Password: "secret123",
		FullName: "Test " + username,
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestAuthRegister_Roles(t *testing.T) {
	env := newTestEnv(t)
	uc, _, _ := newAuthUsecase(t, env)
	ctx := context.Background()

	first := register(t, ctx, uc, "owner", "")
	assert.Equal(t, entity.RoleAdmin, first.Role)

	second := register(t, ctx, uc, "nurse", "")
	assert.Equal(t, entity.RoleStaff, second.Role)

	_, err := uc.Register(ctx, &dto.RegisterRequest{Username: "sneaky", Password: "secret123", FullName: "Sneaky", Role: entity.RoleDoctor})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	_, err = uc.Register(actor.WithUserID(ctx, second.ID), &dto.RegisterRequest{Username: "sneaky", Password: "secret123", FullName: "Sneaky", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	doctor := register(t, actor.WithUserID(ctx, first.ID), uc, "drwho", entity.RoleDoctor)
	assert.Equal(t, entity.RoleDoctor, doctor.Role)

	_, err = uc.Register(ctx, &dto.RegisterRequest{Username: "nurse", Password: "secret123", FullName: "Again"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthLogin(t *testing.T) {
	env := newTestEnv(t)
	uc, jwtService, mr := newAuthUsecase(t, env)
	ctx := context.Background()
	user := register(t, ctx, uc, "owner", "")

	_, err := uc.Login(ctx, &dto.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := uc.Login(ctx, &dto.LoginRequest{Username: "owner", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), tokens.ExpiresIn)
	require.NotNil(t, tokens.User)
	assert.Equal(t, user.ID, tokens.User.ID)

	access, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	refresh, err := jwtService.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)

	// each key points at its partner
	stored, err := mr.Get(jwt.SessionKey(jwt.AccessToken, user.ID, access.TokenID))
	require.NoError(t, err)
	assert.Equal(t, refresh.TokenID, stored)
	stored, err = mr.Get(jwt.SessionKey(jwt.RefreshToken, user.ID, refresh.TokenID))
	require.NoError(t, err)
	assert.Equal(t, access.TokenID, stored)
}

func TestAuthLogout_RevokesPair(t *testing.T) {
	env := newTestEnv(t)
	uc, jwtService, mr := newAuthUsecase(t, env)
	ctx := context.Background()
	user := register(t, ctx, uc, "owner", "")

	tokens, err := uc.Login(ctx, &dto.LoginRequest{Username: "owner", Password: "secret123"})
	require.NoError(t, err)
	access, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, user.ID, access.TokenID))
	assert.Empty(t, mr.Keys())

	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthRefreshToken_Rotates(t *testing.T) {
	env := newTestEnv(t)
	uc, jwtService, mr := newAuthUsecase(t, env)
	ctx := context.Background()
	user := register(t, ctx, uc, "owner", "")

	tokens, err := uc.Login(ctx, &dto.LoginRequest{Username: "owner", Password: "secret123"})
	require.NoError(t, err)
	oldAccess, err := jwtService.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)

	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	rotated, err := uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)
	assert.False(t, mr.Exists(jwt.SessionKey(jwt.AccessToken, user.ID, oldAccess.TokenID)))
	assert.Len(t, mr.Keys(), 2)

	// the old refresh token is single use
	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthCreateUser(t *testing.T) {
	env := newTestEnv(t)
	uc := NewAuthUsecase(env.db, env.log, repository.NewUserRepository(), nil, nil, env.audit)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, "seeded", "secret123", "Seeded Admin", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	_, err = uc.CreateUser(ctx, "other", "secret123", "Other", "superuser")
	assert.ErrorIs(t, err, ErrRoleNotAllowed)

	current, err := uc.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "seeded", current.Username)

	_, err = uc.GetCurrentUser(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
