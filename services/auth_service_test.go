package services_test

import (
	"context"
	"testing"
	"time"

	"qa-forum/config"
	"qa-forum/helper"
	"qa-forum/middleware"
	"qa-forum/models"
	"qa-forum/services"
	"qa-forum/testutil"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAuthService(store, helper.NewValidator(), testJWT)

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Username: "gopher",
		Email:    "gopher@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, registered.Profile.ID)
	assert.Equal(t, registered.User.ID, registered.Profile.UserID)
	assert.Equal(t, models.RoleMember, registered.User.Role)

	claims := &middleware.Claims{}
	_, err = jwt.ParseWithClaims(registered.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWT.Secret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, claims.ProfileID)
	assert.Equal(t, "member", claims.Role)

	_, err = svc.Register(ctx, models.RegisterRequest{Username: "other", Email: "gopher@example.com", Password: "secret123"})
	assert.ErrorAs(t, err, &models.ErrorConflict{})

	loggedIn, err := svc.Login(ctx, models.LoginRequest{Email: "gopher@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, loggedIn.Profile.ID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "gopher@example.com", Password: "wrong"})
	assert.ErrorAs(t, err, &models.ErrorUnauthorized{})

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorAs(t, err, &models.ErrorUnauthorized{})
}

func TestAuthService_RegisterValidation(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewAuthService(store, helper.NewValidator(), testJWT)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "ab", Email: "not-an-email", Password: "1"})

	var validation models.ErrorValidation
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "username")
	assert.Contains(t, validation.Fields, "email")
	assert.Contains(t, validation.Fields, "password")
}

func TestAuthService_Promote(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAuthService(store, helper.NewValidator(), testJWT)
	member := testutil.CreateMember(t, store, "member")

	user, err := svc.Promote(ctx, "member@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	reloaded, err := store.Users.GetByID(ctx, member.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, reloaded.Role)

	_, err = svc.Promote(ctx, "ghost@example.com")
	assert.ErrorAs(t, err, &models.ErrorNotFound{})
}
