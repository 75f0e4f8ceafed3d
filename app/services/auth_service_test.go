package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ecommerce/app/dto"
	"github.com/shashiranjanraj/ecommerce/app/models"
	"github.com/shashiranjanraj/ecommerce/pkg/auth"
)

func registerReq(userName string) dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:            "Test",
		UserName:             userName,
		Email:                userName + "@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
	}
}

func TestRegisterAssignsUserRole(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Role{Name: models.RoleUser}).Error)
	svc := NewAuthService(db)

	user, err := svc.Register(ctx, registerReq("newbie"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.True(t, auth.CheckPassword(user.Password, "secret123"))

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, profile.HasRole(models.RoleUser))
	require.Equal(t, models.RoleUser, profile.PrimaryRole())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestDB(t))

	_, err := svc.Register(ctx, registerReq("taken"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("taken"))
	require.ErrorIs(t, err, ErrConflict)

	// Same email behind a different username is also a conflict.
	req := registerReq("different")
	req.Email = "taken@example.com"
	_, err = svc.Register(ctx, req)
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginByUsernameOrEmail(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Register(ctx, registerReq("carol"))
	require.NoError(t, err)

	byName, err := svc.Login(ctx, dto.LoginRequest{UserName: "carol", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, byName.AccessToken)
	require.NotEmpty(t, byName.RefreshToken)

	byEmail, err := svc.Login(ctx, dto.LoginRequest{UserName: "carol@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, byName.User.ID, byEmail.User.ID)

	claims, err := auth.ValidateToken(byName.AccessToken)
	require.NoError(t, err)
	require.Equal(t, byName.User.ID, claims.UserID)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newTestDB(t))

	_, err := svc.Register(ctx, registerReq("dave"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{UserName: "dave", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{UserName: "nobody", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
