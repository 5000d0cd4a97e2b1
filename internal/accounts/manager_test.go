package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doubtsolver/internal/store"
	"doubtsolver/models"
)

func TestLoginWithDefaultAccount(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(ctx, mem, nil)

	user, err := m.Login(ctx, "admin", "password123")
	require.NoError(t, err)
	want := models.User{Username: "admin", Email: "admin@example.com"}
	assert.Equal(t, want, user)

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, want, current)

	var saved models.User
	found, err := mem.Load(ctx, store.KeyActiveUser, &saved)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, saved)
}

func TestLoginWithWrongPasswordLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(ctx, mem, nil)

	_, err := m.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Empty(t, mem.Keys())

	_, err = m.Login(ctx, "student", "study123")
	require.NoError(t, err)
	_, err = m.Login(ctx, "student", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "student", current.Username)
}

func TestSignupLogoutLogin(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(ctx, mem, nil)

	user, err := m.Signup(ctx, "newuser", "pw1", "n@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.User{Username: "newuser", Email: "n@x.com"}, user)

	m.Logout(ctx)
	_, ok := m.Current()
	assert.False(t, ok)
	assert.NotContains(t, mem.Keys(), store.KeyActiveUser)
	assert.Contains(t, mem.Keys(), store.KeyAccounts, "logout keeps the credential table")

	reopened := NewManager(ctx, mem, nil)
	user, err = reopened.Login(ctx, "newuser", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "newuser@example.com", user.Email)
}

func TestSignupRequiresUsernameAndPassword(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, store.NewMemory(), nil)

	_, err := m.Signup(ctx, "  ", "pw", "a@b.c")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = m.Signup(ctx, "name", "", "a@b.c")
	assert.ErrorIs(t, err, ErrValidation)
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestSignupOverwritesExistingAccount(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, store.NewMemory(), nil)

	_, err := m.Signup(ctx, "admin", "fresh", "admin@school.edu")
	require.NoError(t, err)
	m.Logout(ctx)

	_, err = m.Login(ctx, "admin", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = m.Login(ctx, "admin", "fresh")
	assert.NoError(t, err)
}

func TestManagerRehydratesActiveUser(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Save(ctx, store.KeyActiveUser, models.User{Username: "user", Email: "user@example.com"}))

	m := NewManager(ctx, mem, nil)
	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "user", current.Username)
}

func TestManagerWithBrokenStorageKeepsSessionInMemory(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, brokenStore{}, nil)

	user, err := m.Signup(ctx, "offline", "pw", "o@x.com")
	require.NoError(t, err)
	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, user, current)

	_, err = m.Login(ctx, "admin", "password123")
	assert.NoError(t, err)
}

func TestResetRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	m := NewManager(ctx, mem, nil)
	_, err := m.Signup(ctx, "admin", "changed", "a@x.com")
	require.NoError(t, err)

	m.Reset(ctx)
	_, ok := m.Current()
	assert.False(t, ok)
	assert.Empty(t, mem.Keys())

	_, err = m.Login(ctx, "admin", "password123")
	assert.NoError(t, err)
}
