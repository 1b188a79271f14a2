package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartil-app/recital-service/internal/models"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, zerolog.Nop())

	user, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Amina Yusuf",
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, models.RoleStudent.String(), user.Role)
	require.NotNil(t, user.Level)
	assert.Equal(t, models.LevelBeginner.String(), *user.Level)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	stored, err := userRepo.GetByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), zerolog.Nop())

	req := &models.RegisterRequest{
		Name:     "Amina Yusuf",
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	user, err := svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, user)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), zerolog.Nop())

	registered, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Amina Yusuf",
		Email:    "amina@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "amina@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	user, err = svc.Authenticate(ctx, "amina@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, user)
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), zerolog.Nop())

	user, err := svc.GetUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Nil(t, user)
}
