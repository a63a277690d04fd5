package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
)

func TestRegisterDefaults(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.authSvc.Register(context.Background(), RegisterInput{
		Username:  "new@example.com",
		Password:  "password123",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Phone:     "+79990000000",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.Enabled)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestRegisterExplicitRole(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.authSvc.Register(context.Background(), RegisterInput{
		Username:  "admin@example.com",
		Password:  "password123",
		FirstName: "Anna",
		LastName:  "Orlova",
		Phone:     "+79990000001",
		Role:      entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "taken@example.com", entity.RoleUser, "password123")

	_, err := env.authSvc.Register(context.Background(), RegisterInput{
		Username:  "taken@example.com",
		Password:  "password123",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Phone:     "+79990000000",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	u, err := env.authSvc.Login(context.Background(), "ivan@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", u.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	// Unknown account and wrong password are indistinguishable.
	_, err := env.authSvc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authSvc.Login(context.Background(), "ivan@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
