package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"doubtsolver/internal/accounts"
	"doubtsolver/internal/store"
)

func TestOpenDefaults(t *testing.T) {
	w := Open(context.Background(), store.NewMemory(), Options{})
	assert.True(t, w.DarkMode())
	assert.Len(t, w.Doubts.All(), 2)
	_, ok := w.Sessions.Current()
	assert.False(t, ok)
}

func TestThemeTogglePersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := Open(ctx, mem, Options{})

	assert.False(t, w.ToggleTheme(ctx))
	raw, ok := mem.Raw(store.KeyDarkMode)
	require.True(t, ok)
	assert.Equal(t, "false", string(raw))

	reopened := Open(ctx, mem, Options{})
	assert.False(t, reopened.DarkMode())
	assert.True(t, reopened.ToggleTheme(ctx))
}

func TestSetDarkModePersists(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := Open(ctx, mem, Options{})

	w.SetDarkMode(ctx, true)
	assert.True(t, w.DarkMode())
	w.SetDarkMode(ctx, false)
	assert.False(t, Open(ctx, mem, Options{}).DarkMode())
}

func TestDestructiveOperationsNeedConfirmation(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := Open(ctx, mem, Options{})
	before := w.Doubts.All()

	_, err := w.ClearResolved(ctx, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = w.ClearUnresolved(ctx, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.ErrorIs(t, w.ResetAll(ctx, false), ErrConfirmationRequired)

	assert.Equal(t, before, w.Doubts.All())
	assert.Empty(t, mem.Keys())

	removed, err := w.ClearResolved(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestResetAllRestoresFactoryState(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := Open(ctx, mem, Options{})

	_, err := w.Sessions.Signup(ctx, "newuser", "pw1", "n@x.com")
	require.NoError(t, err)
	_, err = w.Doubts.Add(ctx, "Math", "What is 2+2?")
	require.NoError(t, err)
	w.ToggleTheme(ctx)

	require.NoError(t, w.ResetAll(ctx, true))
	assert.Empty(t, mem.Keys())
	assert.True(t, w.DarkMode())
	assert.Len(t, w.Doubts.All(), 2)
	_, ok := w.Sessions.Current()
	assert.False(t, ok)

	_, err = w.Sessions.Login(ctx, "newuser", "pw1")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestOptionsSelectAccountsAndClock(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	w := Open(ctx, mem, Options{
		Accounts: func(s store.Store) accounts.AccountStore { return accounts.NewHashed(s, bcrypt.MinCost) },
		Now:      func() time.Time { return now },
	})

	doubt, err := w.Doubts.Add(ctx, "Chem", "What is a mole?")
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), doubt.ID)

	_, err = w.Sessions.Signup(ctx, "hashed", "secret", "h@x.com")
	require.NoError(t, err)
	var table map[string]string
	_, err = mem.Load(ctx, store.KeyAccounts, &table)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", table["hashed"])
}
