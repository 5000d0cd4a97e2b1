// Package accounts validates logins against the credential table and tracks
// the single active user of a browser profile.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/models"
)

var (
	// ErrInvalidCredentials is returned when a username/password pair does not match.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	// ErrValidation marks a signup with a blank username or password.
	ErrValidation = errors.New("accounts: validation failed")
)

// AccountStore checks and records username/password pairs.
type AccountStore interface {
	Verify(ctx context.Context, username, password string) (bool, error)
	// Register inserts or overwrites the password for username.
	Register(ctx context.Context, username, password string) error
	// Reset returns the table to the built-in accounts.
	Reset(ctx context.Context) error
}

// Plaintext keeps the credential table as username to password, exactly as
// typed. Absent tables fall back to the built-in accounts.
type Plaintext struct {
	store store.Store
}

// NewPlaintext returns a plaintext account store persisted in s.
func NewPlaintext(s store.Store) *Plaintext {
	return &Plaintext{store: s}
}

func (p *Plaintext) table(ctx context.Context) map[string]string {
	var saved map[string]string
	if store.Restore(ctx, p.store, store.KeyAccounts, &saved) && saved != nil {
		return saved
	}
	return models.DefaultCredentials()
}

// Verify also accepts entries written by Hashed, so switching the table
// format does not lock out existing accounts.
func (p *Plaintext) Verify(ctx context.Context, username, password string) (bool, error) {
	stored, ok := p.table(ctx)[username]
	if !ok {
		return false, nil
	}
	if isHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, nil
	}
	return stored == password, nil
}

func (p *Plaintext) Register(ctx context.Context, username, password string) error {
	table := p.table(ctx)
	table[username] = password
	if err := p.store.Save(ctx, store.KeyAccounts, table); err != nil {
		return fmt.Errorf("register %s: %w", username, err)
	}
	return nil
}

func (p *Plaintext) Reset(ctx context.Context) error {
	return p.store.Remove(ctx, store.KeyAccounts)
}

// Hashed keeps bcrypt hashes in the credential table instead of passwords.
type Hashed struct {
	store store.Store
	cost  int
}

// NewHashed returns a bcrypt-backed account store persisted in s. A cost
// outside bcrypt's range selects bcrypt.DefaultCost.
func NewHashed(s store.Store, cost int) *Hashed {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hashed{store: s, cost: cost}
}

// Verify accepts plaintext entries left by Plaintext and rehashes them
// after a successful match.
func (h *Hashed) Verify(ctx context.Context, username, password string) (bool, error) {
	var saved map[string]string
	if !store.Restore(ctx, h.store, store.KeyAccounts, &saved) || saved == nil {
		stored, ok := models.DefaultCredentials()[username]
		return ok && stored == password, nil
	}
	stored, ok := saved[username]
	if !ok {
		return false, nil
	}
	if !isHash(stored) {
		if stored != password {
			return false, nil
		}
		h.upgrade(ctx, saved, username, password)
		return true, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare hash for %s: %w", username, err)
	}
	return true, nil
}

func (h *Hashed) upgrade(ctx context.Context, table map[string]string, username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		applog.Warn(ctx, "failed to rehash plaintext credential", "username", username, "error", err)
		return
	}
	table[username] = string(hash)
	if err := h.store.Save(ctx, store.KeyAccounts, table); err != nil {
		applog.Warn(ctx, "failed to persist rehashed credential", "username", username, "error", err)
	}
}

func (h *Hashed) Register(ctx context.Context, username, password string) error {
	var table map[string]string
	if !store.Restore(ctx, h.store, store.KeyAccounts, &table) || table == nil {
		seeded, err := h.hashAll(models.DefaultCredentials())
		if err != nil {
			return err
		}
		table = seeded
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", username, err)
	}
	table[username] = string(hash)
	if err := h.store.Save(ctx, store.KeyAccounts, table); err != nil {
		return fmt.Errorf("register %s: %w", username, err)
	}
	return nil
}

func (h *Hashed) Reset(ctx context.Context) error {
	return h.store.Remove(ctx, store.KeyAccounts)
}

func (h *Hashed) hashAll(plain map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(plain))
	for username, password := range plain {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return nil, fmt.Errorf("hash default account %s: %w", username, err)
		}
		out[username] = string(hash)
	}
	return out, nil
}

// isHash reports whether a credential entry is a bcrypt hash rather than a
// plaintext password.
func isHash(entry string) bool {
	_, err := bcrypt.Cost([]byte(entry))
	return err == nil
}
