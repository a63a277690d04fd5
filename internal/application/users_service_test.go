package application

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	"github.com/oksasatya/go-classifieds-api/pkg/helpers"
)

func TestSetPasswordUnknownAccountFailsClosed(t *testing.T) {
	env := newTestEnv(t)

	ok, err := env.usersSvc.SetPassword(context.Background(), "nobody@example.com", "whatever1", "newpassword1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetPasswordWrongCurrentFailsClosed(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	ok, err := env.usersSvc.SetPassword(context.Background(), u.Email, "wrongpass1", "newpassword1")
	require.NoError(t, err)
	assert.False(t, ok)

	// The stored hash is untouched.
	stored, err := env.users.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "password123"))
}

func TestSetPasswordSuccess(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	ok, err := env.usersSvc.SetPassword(context.Background(), u.Email, "password123", "newpassword1")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := env.users.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "newpassword1"))
	assert.False(t, helpers.CompareHashAndPassword(stored.Password, "password123"))
}

func TestUpdateProfileLeavesIdentityAlone(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	out, err := env.usersSvc.UpdateProfile(context.Background(), u.Email, UpdateUserInput{
		FirstName: "Sergey", LastName: "Sidorov", Phone: "+79991112233",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sergey", out.FirstName)

	stored, err := env.users.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.Email, stored.Email)
	assert.Equal(t, u.Role, stored.Role)
	assert.Equal(t, "Sergey", stored.FirstName)
}

func TestReplaceAvatarLeavesSingleFile(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	first, err := env.usersSvc.ReplaceAvatar(context.Background(), u.Email, []byte("one"), "a.png")
	require.NoError(t, err)
	second, err := env.usersSvc.ReplaceAvatar(context.Background(), u.Email, []byte("two"), "b.png")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(env.images.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := env.images.Read(second)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	stored, err := env.users.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, second, stored.Image)
}

func TestReplaceAvatarRejectsMissingExtension(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	_, err := env.usersSvc.ReplaceAvatar(context.Background(), u.Email, []byte("one"), "noextension")
	require.Error(t, err)

	stored, err := env.users.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Empty(t, stored.Image)
}

func TestDeleteMissingAccount(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin@example.com", entity.RoleAdmin, "password123")

	err := env.usersSvc.Delete(context.Background(), "admin@example.com", 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteForbiddenForOtherUser(t *testing.T) {
	env := newTestEnv(t)
	target := env.addUser(t, "target@example.com", entity.RoleUser, "password123")
	env.addUser(t, "other@example.com", entity.RoleUser, "password123")

	err := env.usersSvc.Delete(context.Background(), "other@example.com", target.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.users.GetByID(context.Background(), target.ID)
	assert.NoError(t, err)
}

func TestDeleteCascadeRemovesAdsAndFiles(t *testing.T) {
	env := newTestEnv(t)
	target := env.addUser(t, "target@example.com", entity.RoleUser, "password123")
	admin := env.addUser(t, "admin@example.com", entity.RoleAdmin, "password123")

	env.addAd(t, target)
	env.addAd(t, target)
	_, err := env.usersSvc.ReplaceAvatar(context.Background(), target.Email, []byte("avatar"), "me.png")
	require.NoError(t, err)

	require.NoError(t, env.usersSvc.Delete(context.Background(), admin.Email, target.ID))

	// Account, ads and every attachment file are gone.
	_, err = env.users.GetByID(context.Background(), target.ID)
	assert.Error(t, err)
	ads, err := env.ads.ListByAuthor(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Empty(t, ads)
	entries, err := os.ReadDir(env.images.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteOwnAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.addUser(t, "ivan@example.com", entity.RoleUser, "password123")

	require.NoError(t, env.usersSvc.Delete(context.Background(), u.Email, u.ID))

	_, err := env.usersSvc.Get(context.Background(), u.Email)
	assert.ErrorIs(t, err, ErrNotFound)
}
