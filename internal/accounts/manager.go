package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/models"
)

type signupInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

var validate = validator.New()

// Manager owns the active user of one browser profile.
type Manager struct {
	store    store.Store
	accounts AccountStore
	current  *models.User
}

// NewManager rehydrates the active user from s. A nil AccountStore selects
// the plaintext table kept in the same store.
func NewManager(ctx context.Context, s store.Store, accounts AccountStore) *Manager {
	if s == nil {
		s = store.Unavailable{}
	}
	if accounts == nil {
		accounts = NewPlaintext(s)
	}
	m := &Manager{store: s, accounts: accounts}

	var saved models.User
	if store.Restore(ctx, s, store.KeyActiveUser, &saved) && saved.Username != "" {
		m.current = &saved
	}
	return m
}

// Accounts exposes the credential table used by the manager.
func (m *Manager) Accounts() AccountStore {
	return m.accounts
}

// Current returns the active user, if any.
func (m *Manager) Current() (models.User, bool) {
	if m.current == nil {
		return models.User{}, false
	}
	return *m.current, true
}

// Login activates username when password matches the credential table. On
// failure the active user is left as it was.
func (m *Manager) Login(ctx context.Context, username, password string) (models.User, error) {
	ok, err := m.accounts.Verify(ctx, username, password)
	if err != nil {
		applog.Error(ctx, "credential check failed", "username", username, "error", err)
		return models.User{}, fmt.Errorf("login %s: %w", username, ErrInvalidCredentials)
	}
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}

	user := models.User{Username: username, Email: models.SynthesizedEmail(username)}
	m.activate(ctx, user)
	applog.Debug(ctx, "user logged in", "username", username)
	return user, nil
}

// Signup registers username with password, overwriting any existing entry,
// and activates the new user.
func (m *Manager) Signup(ctx context.Context, username, password, email string) (models.User, error) {
	input := signupInput{Username: strings.TrimSpace(username), Password: password}
	if err := validate.Struct(input); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := m.accounts.Register(ctx, username, password); err != nil {
		applog.Warn(ctx, "failed to persist credentials, continuing with session only", "username", username, "error", err)
	}

	user := models.User{Username: username, Email: email}
	m.activate(ctx, user)
	applog.Debug(ctx, "user signed up", "username", username)
	return user, nil
}

// Logout clears the active user. The credential table is untouched.
func (m *Manager) Logout(ctx context.Context) {
	if m.current != nil {
		applog.Debug(ctx, "user logged out", "username", m.current.Username)
	}
	m.current = nil
	store.Forget(ctx, m.store, store.KeyActiveUser)
}

// Reset logs out and returns the credential table to the built-in accounts.
func (m *Manager) Reset(ctx context.Context) {
	m.Logout(ctx)
	if err := m.accounts.Reset(ctx); err != nil {
		applog.Warn(ctx, "failed to reset credential table", "error", err)
	}
}

func (m *Manager) activate(ctx context.Context, user models.User) {
	m.current = &user
	store.Persist(ctx, m.store, store.KeyActiveUser, user)
}
